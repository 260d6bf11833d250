package models

// Requests for the analytics HTTP endpoints. Defined in domain for consistency and reuse.

// PortfolioEntry is one (ticker, weight) pair. Weights are used as
// supplied; they are not normalized to sum to 1.
type PortfolioEntry struct {
	Ticker string  `json:"ticker" validate:"required,min=1"`
	Weight float64 `json:"weight" validate:"required,gt=0"`
}

// PortfolioRequest is the body of the portfolio analyze/var endpoints.
type PortfolioRequest struct {
	Portfolio       []PortfolioEntry `json:"portfolio" validate:"required,min=1,dive"`
	ConfidenceLevel float64          `json:"confidence_level" default:"0.95" validate:"gte=0,lte=1"`
	Period          string           `json:"period" default:"1y" validate:"oneof=1mo 3mo 6mo 1y 2y 5y"`
}

// Tickers returns the request symbols in order.
func (r *PortfolioRequest) Tickers() []string {
	out := make([]string, len(r.Portfolio))
	for i, e := range r.Portfolio {
		out[i] = e.Ticker
	}
	return out
}

// Weights returns the ticker → weight map.
func (r *PortfolioRequest) Weights() map[string]float64 {
	out := make(map[string]float64, len(r.Portfolio))
	for _, e := range r.Portfolio {
		out[e.Ticker] = e.Weight
	}
	return out
}

// StockRequest is the query side of the per-stock endpoints.
type StockRequest struct {
	Symbol string `param:"symbol" json:"symbol" validate:"required,min=1"`
	Period string `query:"period" json:"period" default:"1y" validate:"oneof=1mo 3mo 6mo 1y 2y 5y"`
}
