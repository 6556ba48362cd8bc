package util

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/stat"
)

// ValueStatistics represents statistics about measured values.
// Comprises count, min, mean and max as well as different
// percentiles (50, 95 and 99).
type ValueStatistics struct {
	Count                         int
	Min, Mean, Q50, Q95, Q99, Max float64
}

// CalculateValueStatistics calculates the ValueStatistics of values. values
// is left untouched.
func CalculateValueStatistics(values []float64) ValueStatistics {
	if len(values) == 0 {
		return ValueStatistics{}
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	return ValueStatistics{
		Count: len(sorted),
		Min:   floats.Min(sorted),
		Mean:  stat.Mean(sorted, nil),
		Q50:   stat.Quantile(0.5, stat.Empirical, sorted, nil),
		Q95:   stat.Quantile(0.95, stat.Empirical, sorted, nil),
		Q99:   stat.Quantile(0.99, stat.Empirical, sorted, nil),
		Max:   floats.Max(sorted),
	}
}

// String renders min, mean, 50, 95, 99 and max in that order.
func (s ValueStatistics) String() string {
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s", FmtValue(s.Min), FmtValue(s.Mean), FmtValue(s.Q50),
		FmtValue(s.Q95), FmtValue(s.Q99), FmtValue(s.Max))
}

// FmtValue formats a measured value with at most two decimals and without
// trailing zeros.
func FmtValue(v float64) string {
	return strconv.FormatFloat(scalar.Round(v, 2), 'f', -1, 64)
}

// FmtBytesHumanReadable takes an amount of bytes and returns them in a human readable form
// up to a unit of PiB.
func FmtBytesHumanReadable(bytes float32) string {
	units := []string{"B", "KiB", "MiB", "GiB", "TiB", "PiB"}

	var unitIdx int
	for {
		if bytes <= 1024 || (unitIdx+1) > len(units)-1 {
			break
		}

		bytes = bytes / 1024
		unitIdx++
	}

	return fmt.Sprintf("%.2f %s", bytes, units[unitIdx])
}

// FmtDurationHumanReadable takes a duration and returns it in a human readable form.
// This is basically equivalent to time.Duration.Round(time.Second) with the following differences:
//   - durations under a minute get printed with millisecond precision
//   - durations equal or above a minute get printed with second precision
func FmtDurationHumanReadable(d time.Duration) string {
	if d.Milliseconds() < 60000 {
		return d.Round(time.Millisecond).String()
	}
	return d.Round(time.Second).String()
}
