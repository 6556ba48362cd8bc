// Copyright 2019 - 2025 The Samply Community
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cube

import (
	"fmt"
	"strings"
)

var strftimeDirectives = map[byte]string{
	'Y': "2006",
	'y': "06",
	'm': "01",
	'b': "Jan",
	'B': "January",
	'd': "02",
	'e': "_2",
	'j': "002",
	'H': "15",
	'I': "03",
	'p': "PM",
	'M': "04",
	'S': "05",
	'L': "000",
	'Z': "MST",
	'z': "-0700",
	'%': "%",
}

// StrftimeToLayout translates a strftime style format such as "%Y-%m-%d"
// into a Go time layout.
func StrftimeToLayout(format string) (string, error) {
	if format == "" {
		return "", fmt.Errorf("empty time format")
	}
	builder := strings.Builder{}
	for i := 0; i < len(format); i++ {
		if format[i] != '%' {
			builder.WriteByte(format[i])
			continue
		}
		if i+1 == len(format) {
			return "", fmt.Errorf("time format %q ends with a dangling %%", format)
		}
		i++
		layout, ok := strftimeDirectives[format[i]]
		if !ok {
			return "", fmt.Errorf("time format %q uses unsupported directive %%%c", format, format[i])
		}
		builder.WriteString(layout)
	}
	return builder.String(), nil
}
