package models

import "time"

// Numeric fields that can be mathematically undefined are pointers:
// nil marshals to JSON null, never NaN or Infinity.

// PortfolioAnalysis is the scalar metric bundle plus the trimmed daily
// return series for a portfolio. DailyReturns and Dates are parallel.
type PortfolioAnalysis struct {
	Portfolio    []PortfolioEntry `json:"portfolio"`
	MeanReturn   *float64         `json:"mean_return"`
	Volatility   *float64         `json:"volatility"`
	SharpeRatio  *float64         `json:"sharpe_ratio"`
	MaxDrawdown  *float64         `json:"max_drawdown"`
	DailyReturns []float64        `json:"daily_returns"`
	Dates        []string         `json:"dates"`
}

// RiskReport is the historical-simulation VaR/ES result.
type RiskReport struct {
	ConfidenceLevel   float64   `json:"confidence_level"`
	ValueAtRisk       *float64  `json:"value_at_risk"`
	ExpectedShortfall *float64  `json:"expected_shortfall"`
	DailyReturns      []float64 `json:"daily_returns"`
	Dates             []string  `json:"dates"`
}

// IndicatorSeries holds per-date indicator arrays for one stock, all
// parallel to Dates. nil entries mark warm-up rows where the window
// has insufficient history.
type IndicatorSeries struct {
	Symbol  string     `json:"symbol"`
	Dates   []string   `json:"dates"`
	SMA10   []*float64 `json:"sma_10"`
	SMA50   []*float64 `json:"sma_50"`
	RSI     []*float64 `json:"rsi"`
	BBUpper []*float64 `json:"bb_upper"`
	BBLower []*float64 `json:"bb_lower"`
	MACD    []*float64 `json:"macd"`
	Signal  []*float64 `json:"signal_line"`
	Beta    *float64   `json:"beta"`
}

// Prediction statuses.
const (
	PredictionOK               = "ok"
	PredictionInsufficientData = "insufficient_data"
)

// Prediction is the next-day direction call for a stock. Direction is
// "up" or "down" when Status is ok, empty otherwise.
type Prediction struct {
	Status      string   `json:"status"`
	Direction   string   `json:"direction,omitempty"`
	Probability *float64 `json:"probability,omitempty"`
}

// StockAnalysis is the per-stock summary endpoint payload.
type StockAnalysis struct {
	Symbol           string     `json:"symbol"`
	AverageReturn    *float64   `json:"average_return"`
	Volatility       *float64   `json:"volatility"`
	Prediction       Prediction `json:"prediction"`
	HistoricalPrices []float64  `json:"historical_prices"`
	Dates            []string   `json:"dates"`
}

// TickerInfo is one entry of the curated symbol catalog.
type TickerInfo struct {
	Symbol string `json:"symbol" yaml:"symbol"`
	Name   string `json:"name" yaml:"name"`
}

// AnalysisEvent is published after each completed computation so
// downstream consumers can track portfolio activity.
type AnalysisEvent struct {
	Kind        string    `json:"kind"` // "portfolio_analyze" | "portfolio_var" | "stock_analyze"
	Symbols     []string  `json:"symbols"`
	At          time.Time `json:"at"`
	MeanReturn  *float64  `json:"mean_return,omitempty"`
	Volatility  *float64  `json:"volatility,omitempty"`
	ValueAtRisk *float64  `json:"value_at_risk,omitempty"`
}
