package quant

import (
	"math"

	"RiskPulse/internal/domain/models"
	"RiskPulse/pkg/util"
)

// Rolling and exponential indicators over a single close-price series.
// Warm-up positions where the window has insufficient history are NaN;
// the sanitizing boundary turns them into explicit nulls.

// SMA computes the simple moving average over a trailing window. The
// first window-1 positions are NaN.
func SMA(values []float64, window int) []float64 {
	out := nanSlice(len(values))
	if window <= 0 || len(values) < window {
		return out
	}
	sum := 0.0
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}
		if i >= window-1 {
			out[i] = sum / float64(window)
		}
	}
	return out
}

// RollingStd computes the trailing sample standard deviation.
func RollingStd(values []float64, window int) []float64 {
	out := nanSlice(len(values))
	if window <= 1 || len(values) < window {
		return out
	}
	for i := window - 1; i < len(values); i++ {
		win := values[i-window+1 : i+1]
		m := mean(win)
		sum := 0.0
		for _, v := range win {
			sum += (v - m) * (v - m)
		}
		out[i] = math.Sqrt(sum / float64(window-1))
	}
	return out
}

// RSI computes the relative strength index from simple trailing means
// of gains and losses (not Wilder smoothing): 100 - 100/(1 + RS). A
// window of pure gains saturates at 100; a flat window, where both
// averages are zero, is undefined.
func RSI(closes []float64, period int) []float64 {
	out := nanSlice(len(closes))
	if period <= 0 || len(closes) < period+1 {
		return out
	}
	gains := make([]float64, len(closes))
	losses := make([]float64, len(closes))
	for i := 1; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			gains[i] = change
		} else {
			losses[i] = -change
		}
	}
	var gainSum, lossSum float64
	for i := 1; i < len(closes); i++ {
		gainSum += gains[i]
		lossSum += losses[i]
		if i > period {
			gainSum -= gains[i-period]
			lossSum -= losses[i-period]
		}
		if i < period {
			continue
		}
		avgGain := gainSum / float64(period)
		avgLoss := lossSum / float64(period)
		switch {
		case avgLoss > 0:
			out[i] = 100 - 100/(1+avgGain/avgLoss)
		case avgGain > 0:
			out[i] = 100 // all gains, RS → ∞
		}
	}
	return out
}

// EMA computes the exponentially weighted average with smoothing
// 2/(span+1), seeded by the first value, no bias adjustment.
func EMA(values []float64, span int) []float64 {
	out := nanSlice(len(values))
	if len(values) == 0 || span <= 0 {
		return out
	}
	alpha := 2 / float64(span+1)
	out[0] = values[0]
	for i := 1; i < len(values); i++ {
		out[i] = alpha*values[i] + (1-alpha)*out[i-1]
	}
	return out
}

// MACD returns EMA_12 - EMA_26 and its EMA_9 signal line.
func MACD(closes []float64) (macd, signal []float64) {
	fast := EMA(closes, 12)
	slow := EMA(closes, 26)
	macd = make([]float64, len(closes))
	for i := range closes {
		macd[i] = fast[i] - slow[i]
	}
	signal = EMA(macd, 9)
	return macd, signal
}

// Bollinger returns the SMA_20 ± 2σ_20 bands.
func Bollinger(closes []float64) (upper, lower []float64) {
	sma := SMA(closes, 20)
	std := RollingStd(closes, 20)
	upper = make([]float64, len(closes))
	lower = make([]float64, len(closes))
	for i := range closes {
		upper[i] = sma[i] + 2*std[i]
		lower[i] = sma[i] - 2*std[i]
	}
	return upper, lower
}

// Beta computes Cov(stock, benchmark) / Var(benchmark) over the dates
// where both return series have finite values. NaN when fewer than
// two overlapping observations exist or the benchmark has no variance.
func Beta(stock, benchmark models.ReturnSeries) float64 {
	bench := make(map[int64]float64, benchmark.Len())
	for _, p := range benchmark.Points {
		if IsFinite(p.Return) {
			bench[util.DayKey(p.Date).Unix()] = p.Return
		}
	}
	var xs, ys []float64
	for _, p := range stock.Points {
		if !IsFinite(p.Return) {
			continue
		}
		if b, ok := bench[util.DayKey(p.Date).Unix()]; ok {
			xs = append(xs, p.Return)
			ys = append(ys, b)
		}
	}
	return covariance(xs, ys) / covariance(ys, ys)
}

func nanSlice(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}
