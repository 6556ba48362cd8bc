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
	"strings"
	"time"
)

// CommandStats summarizes a command that moved observations, either from an
// endpoint or into a file.
type CommandStats struct {
	TotalObservations int
	Values            []float64
	Unit              string
	TotalBytes        int64
	TotalDuration     time.Duration
	Error             *ErrorResponse
}

func (cs *CommandStats) String() string {

	builder := strings.Builder{}
	builder.WriteString(fmt.Sprintf("Observations	[total]			%d\n", cs.TotalObservations))

	if len(cs.Values) > 0 {
		s := CalculateValueStatistics(cs.Values)
		builder.WriteString(fmt.Sprintf("Values		[min, mean, 50, 95, 99, max]	%s", s))
		if cs.Unit != "" {
			builder.WriteString(" " + cs.Unit)
		}
		builder.WriteString("\n")
	}

	builder.WriteString(fmt.Sprintf("Duration	[total]			%s\n", FmtDurationHumanReadable(cs.TotalDuration)))
	builder.WriteString(fmt.Sprintf("Bytes		[total]			%s\n", FmtBytesHumanReadable(float32(cs.TotalBytes))))

	if cs.Error != nil {
		builder.WriteString("\nServer Error:\n")
		builder.WriteString(Indent(2, cs.Error.String()))
	}

	return builder.String()
}
