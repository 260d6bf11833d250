package models

import "time"

// TrainingSample is one engineered feature row for the direction
// classifier. Rows are produced per ticker, never mixed across tickers
// during computation, and only emitted when every feature and the
// next-day label are defined.
type TrainingSample struct {
	Ticker string
	Date   time.Time
	SMA10  float64
	SMA50  float64
	RSI    float64
	Label  int // 1 = next-day return > 0
}
