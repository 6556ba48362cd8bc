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

package util

import (
	"fmt"
	"net/url"
	"os"
	"strings"
)

// ReadFiltersFromFile reads a file of URL encoded key=value pairs joined by
// `&` or newlines.
//
// The filename is expected to start with a `@` which is stripped of.
func ReadFiltersFromFile(filename string) (map[string]string, error) {
	b, err := os.ReadFile(strings.TrimPrefix(filename, "@"))
	if err != nil {
		return nil, fmt.Errorf("error while reading file: %s: %w", filename, err)
	}
	return ParseFilters(strings.Split(strings.TrimSpace(string(b)), "\n"))
}

// ParseFilters parses key=value expressions. Expressions may carry several
// pairs joined by `&`. Values are URL decoded. A key given twice is an error,
// an observation can't match two values of one component.
func ParseFilters(expressions []string) (map[string]string, error) {
	filters := make(map[string]string)
	for _, expression := range expressions {
		expression = strings.TrimSpace(expression)
		if expression == "" {
			continue
		}
		q, err := url.ParseQuery(expression)
		if err != nil {
			return nil, fmt.Errorf("error while parsing filter `%s`: %w", expression, err)
		}
		for key, values := range q {
			if _, ok := filters[key]; ok || len(values) > 1 {
				return nil, fmt.Errorf("filter key `%s` is given more than once", key)
			}
			if values[0] == "" && !strings.Contains(expression, key+"=") {
				return nil, fmt.Errorf("filter `%s` misses a value", key)
			}
			filters[key] = values[0]
		}
	}
	return filters, nil
}
