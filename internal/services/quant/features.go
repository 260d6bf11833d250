package quant

import (
	"sort"

	"RiskPulse/internal/domain/models"
	"RiskPulse/internal/domain/service"
)

// Classifier feature windows.
const (
	FeatureSMAFast = 10
	FeatureSMASlow = 50
	FeatureRSI     = 14
)

// BuildSamples engineers training rows for one ticker: SMA_10, SMA_50
// and RSI_14 features with a next-day direction label (1 iff the next
// day's return is positive). Rows with any undefined feature or
// without a defined next-day label are dropped, so the last row never
// survives.
func BuildSamples(series models.PriceSeries) []models.TrainingSample {
	closes := series.Closes()
	if len(closes) < 2 {
		return nil
	}
	smaFast := SMA(closes, FeatureSMAFast)
	smaSlow := SMA(closes, FeatureSMASlow)
	rsi := RSI(closes, FeatureRSI)

	samples := make([]models.TrainingSample, 0, len(closes))
	for i := 0; i < len(closes)-1; i++ {
		if !IsFinite(smaFast[i]) || !IsFinite(smaSlow[i]) || !IsFinite(rsi[i]) {
			continue
		}
		nextReturn := closes[i+1]/closes[i] - 1
		label := 0
		if nextReturn > 0 {
			label = 1
		}
		samples = append(samples, models.TrainingSample{
			Ticker: series.Ticker,
			Date:   series.Points[i].Date,
			SMA10:  smaFast[i],
			SMA50:  smaSlow[i],
			RSI:    rsi[i],
			Label:  label,
		})
	}
	return samples
}

// BuildDataset runs BuildSamples per ticker independently (features
// never cross ticker boundaries) and concatenates the results in
// deterministic ticker order.
func BuildDataset(histories map[string]models.PriceSeries) []models.TrainingSample {
	tickers := make([]string, 0, len(histories))
	for t := range histories {
		tickers = append(tickers, t)
	}
	sort.Strings(tickers)

	var out []models.TrainingSample
	for _, t := range tickers {
		out = append(out, BuildSamples(histories[t])...)
	}
	return out
}

// LatestFeatures extracts the classifier input for the most recent
// observation. Components the rolling windows could not produce are
// nil, which the classifier must treat as insufficient data.
func LatestFeatures(series models.PriceSeries) service.FeatureVector {
	closes := series.Closes()
	if len(closes) == 0 {
		return service.FeatureVector{}
	}
	last := len(closes) - 1
	smaFast := SMA(closes, FeatureSMAFast)
	smaSlow := SMA(closes, FeatureSMASlow)
	rsi := RSI(closes, FeatureRSI)
	return service.FeatureVector{
		SMA10: Sanitize(smaFast[last]),
		SMA50: Sanitize(smaSlow[last]),
		RSI:   Sanitize(rsi[last]),
	}
}
