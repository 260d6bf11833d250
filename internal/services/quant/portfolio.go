package quant

import (
	"math"

	"RiskPulse/internal/domain/models"
)

// MetricsParams carries the Sharpe-ratio conventions. Two variants of
// the ratio circulate (raw daily vs annualized); this implementation
// annualizes by sqrt(TradingDays), the standard definition.
type MetricsParams struct {
	AnnualRiskFree float64
	TradingDays    float64
}

// DefaultMetricsParams returns the conventional 2% annual risk-free
// rate over 252 trading days.
func DefaultMetricsParams() MetricsParams {
	return MetricsParams{AnnualRiskFree: 0.02, TradingDays: 252}
}

// PortfolioStats is the raw metric bundle. Values may be NaN/Inf when
// mathematically undefined; callers sanitize at the boundary.
type PortfolioStats struct {
	MeanReturn  float64
	Volatility  float64
	SharpeRatio float64
	MaxDrawdown float64
}

// PortfolioMetrics computes the weighted statistics of an aligned
// return table. Weights are used as supplied (no normalization); a
// weight set that does not exactly cover the table's tickers is a
// WeightMismatch.
func PortfolioMetrics(table models.AlignedReturns, weights map[string]float64, p MetricsParams) (PortfolioStats, error) {
	if err := checkWeights(table, weights); err != nil {
		return PortfolioStats{}, err
	}
	if table.Rows() == 0 {
		return PortfolioStats{}, models.ErrInsufficientData
	}

	// mean_return = Σ_i mean(returns_i) * w_i
	var meanRet float64
	for _, t := range table.Tickers {
		meanRet += mean(table.Columns[t]) * weights[t]
	}

	// volatility = sqrt(wᵀ Cov w), sample covariance
	var quad float64
	for _, a := range table.Tickers {
		for _, b := range table.Tickers {
			quad += weights[a] * weights[b] * covariance(table.Columns[a], table.Columns[b])
		}
	}
	vol := math.Sqrt(quad)

	dailyRF := p.AnnualRiskFree / p.TradingDays
	sharpe := (meanRet - dailyRF) / vol * math.Sqrt(p.TradingDays)

	return PortfolioStats{
		MeanReturn:  meanRet,
		Volatility:  vol,
		SharpeRatio: sharpe,
		MaxDrawdown: maxDrawdown(table),
	}, nil
}

// CombinedReturns dots each aligned row with the weight vector,
// producing the portfolio's daily return sequence.
func CombinedReturns(table models.AlignedReturns, weights map[string]float64) ([]float64, error) {
	if err := checkWeights(table, weights); err != nil {
		return nil, err
	}
	out := make([]float64, table.Rows())
	for _, t := range table.Tickers {
		w := weights[t]
		for i, r := range table.Columns[t] {
			out[i] += w * r
		}
	}
	return out, nil
}

func checkWeights(table models.AlignedReturns, weights map[string]float64) error {
	if len(weights) != len(table.Tickers) {
		return models.ErrWeightMismatch
	}
	for _, t := range table.Tickers {
		if _, ok := weights[t]; !ok {
			return models.ErrWeightMismatch
		}
	}
	return nil
}

// maxDrawdown builds each ticker's cumulative-value curve and returns
// the most negative decline from a running peak, across all tickers
// and dates. Never positive.
func maxDrawdown(table models.AlignedReturns) float64 {
	worst := 0.0
	for _, t := range table.Tickers {
		cum := 1.0
		peak := math.Inf(-1)
		for _, r := range table.Columns[t] {
			cum *= 1 + r
			if cum > peak {
				peak = cum
			}
			if dd := cum/peak - 1; dd < worst {
				worst = dd
			}
		}
	}
	return worst
}

// Mean returns the arithmetic mean, NaN for an empty slice.
func Mean(xs []float64) float64 { return mean(xs) }

// StdDev returns the sample standard deviation, NaN for fewer than
// two observations.
func StdDev(xs []float64) float64 { return math.Sqrt(covariance(xs, xs)) }

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return math.NaN()
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// covariance is the sample covariance (n-1 denominator). NaN for
// fewer than two observations, matching the undefined-variance case.
func covariance(xs, ys []float64) float64 {
	n := len(xs)
	if n < 2 || n != len(ys) {
		return math.NaN()
	}
	mx, my := mean(xs), mean(ys)
	sum := 0.0
	for i := range xs {
		sum += (xs[i] - mx) * (ys[i] - my)
	}
	return sum / float64(n-1)
}
