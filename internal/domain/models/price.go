package models

import "time"

// PricePoint is one daily close observation.
type PricePoint struct {
	Date  time.Time
	Close float64
}

// PriceSeries is an ordered daily close history for one ticker.
// Dates are strictly increasing with no duplicates; the provider
// guarantees this before the series enters the pipeline.
type PriceSeries struct {
	Ticker string
	Points []PricePoint
}

// Len returns the number of observations.
func (s PriceSeries) Len() int { return len(s.Points) }

// Closes returns the close prices in date order.
func (s PriceSeries) Closes() []float64 {
	out := make([]float64, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.Close
	}
	return out
}

// Dates returns the observation dates in order.
func (s PriceSeries) Dates() []time.Time {
	out := make([]time.Time, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.Date
	}
	return out
}

// ReturnPoint is one daily percentage return.
type ReturnPoint struct {
	Date   time.Time
	Return float64
}

// ReturnSeries is the daily percentage-return series derived from a
// PriceSeries. It is one element shorter than its source and its dates
// are a suffix of the source dates.
type ReturnSeries struct {
	Ticker string
	Points []ReturnPoint
}

// Len returns the number of return observations.
func (s ReturnSeries) Len() int { return len(s.Points) }

// Values returns the returns in date order.
func (s ReturnSeries) Values() []float64 {
	out := make([]float64, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.Return
	}
	return out
}

// AlignedReturns is a date-aligned return table across several tickers.
// Every column has exactly one finite value per row; rows are
// chronological. Columns share the Dates index.
type AlignedReturns struct {
	Dates   []time.Time
	Tickers []string
	Columns map[string][]float64
}

// Rows returns the number of aligned dates.
func (a AlignedReturns) Rows() int { return len(a.Dates) }
