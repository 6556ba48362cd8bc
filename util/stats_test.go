// Copyright 2019 - 2021 The Samply Community
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
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCalculateValueStatistics_emptyValueSet(t *testing.T) {
	statistics := CalculateValueStatistics([]float64{})
	assert.Equal(t, ValueStatistics{}, statistics)
}

func TestCalculateValueStatistics_singleValue(t *testing.T) {
	statistics := CalculateValueStatistics([]float64{42})
	assert.Equal(t, 1, statistics.Count)
	assert.Equal(t, 42.0, statistics.Min)
	assert.Equal(t, 42.0, statistics.Mean)
	assert.Equal(t, 42.0, statistics.Q50)
	assert.Equal(t, 42.0, statistics.Q95)
	assert.Equal(t, 42.0, statistics.Q99)
	assert.Equal(t, 42.0, statistics.Max)
}

func TestCalculateValueStatistics(t *testing.T) {
	values := []float64{7700, 0, 30, 10, 20}
	statistics := CalculateValueStatistics(values)

	assert.Equal(t, 5, statistics.Count)
	assert.Equal(t, 0.0, statistics.Min)
	assert.Equal(t, 1552.0, statistics.Mean)
	assert.Equal(t, 20.0, statistics.Q50)
	assert.Equal(t, 7700.0, statistics.Q99)
	assert.Equal(t, 7700.0, statistics.Max)
	assert.Equal(t, []float64{7700, 0, 30, 10, 20}, values, "input must stay unsorted")
}

func TestValueStatistics_String(t *testing.T) {
	statistics := ValueStatistics{Count: 3, Min: 1, Mean: 2.3333333, Q50: 2, Q95: 4, Q99: 4, Max: 4}
	assert.Equal(t, "1, 2.33, 2, 4, 4, 4", statistics.String())
}

func TestFmtValue(t *testing.T) {
	assert.Equal(t, "7700", FmtValue(7700))
	assert.Equal(t, "0.5", FmtValue(0.5))
	assert.Equal(t, "12.35", FmtValue(12.345678))
	assert.Equal(t, "2.38", FmtValue(2.375))
	assert.Equal(t, "-2.38", FmtValue(-2.375))
}

func TestFmtBytesHumanReadable(t *testing.T) {
	byteUnitMappings := map[float32]string{
		1:                               "B",
		float32(10 * math.Pow(1024, 1)): "KiB",
		float32(10 * math.Pow(1024, 2)): "MiB",
		float32(10 * math.Pow(1024, 3)): "GiB",
		float32(10 * math.Pow(1024, 4)): "TiB",
		float32(10 * math.Pow(1024, 5)): "PiB",
		float32(10 * math.Pow(1024, 6)): "PiB",
	}

	for bytes, unit := range byteUnitMappings {
		t.Run(unit, func(t *testing.T) {
			humanReadableResult := FmtBytesHumanReadable(bytes)
			assert.True(t, strings.HasSuffix(humanReadableResult, unit))
		})
	}
}

func TestFmtDurationHumanReadable(t *testing.T) {
	durationFormatMappings := map[string]string{
		"0s512ms":   "512ms",
		"1012ms":    "1.012s",
		"1000ms":    "1s",
		"2800ms":    "2.8s",
		"60000ms":   "1m0s",
		"620000ms":  "10m20s",
		"3600000ms": "1h0m0s",
	}

	for duration, format := range durationFormatMappings {
		t.Run(format, func(t *testing.T) {
			d, _ := time.ParseDuration(duration)

			humanReadableResult := FmtDurationHumanReadable(d)
			assert.Equal(t, format, humanReadableResult)
		})
	}
}
