package quant

import (
	"math"
	"time"

	"RiskPulse/pkg/util"
)

// The numeric pipeline computes with plain float64 and lets NaN/Inf
// propagate; this file is the single sanitizing boundary applied to
// every value before it crosses the system boundary.

// IsFinite reports whether v is a real number (not NaN or ±Inf).
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Sanitize maps a possibly-undefined value to a nullable one.
func Sanitize(v float64) *float64 {
	if !IsFinite(v) {
		return nil
	}
	return &v
}

// SanitizeSeries maps a value slice to nullable form, preserving
// positions: undefined entries become nil rather than being dropped.
func SanitizeSeries(values []float64) []*float64 {
	out := make([]*float64, len(values))
	for i, v := range values {
		out[i] = Sanitize(v)
	}
	return out
}

// TrimSeries drops rows whose value is non-finite and formats the
// surviving dates as YYYY-MM-DD. Both outputs stay the same length.
func TrimSeries(dates []time.Time, values []float64) ([]string, []float64) {
	outDates := make([]string, 0, len(dates))
	outValues := make([]float64, 0, len(values))
	for i, v := range values {
		if !IsFinite(v) {
			continue
		}
		outDates = append(outDates, util.FormatDate(dates[i]))
		outValues = append(outValues, v)
	}
	return outDates, outValues
}
