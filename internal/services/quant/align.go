package quant

import (
	"sort"

	"RiskPulse/internal/domain/models"
	"RiskPulse/pkg/util"
)

// Align joins per-ticker return series into a single date-aligned
// table. Only dates present in every series survive, and a non-finite
// value in any column drops the whole row. Rows stay chronological.
func Align(series map[string]models.ReturnSeries) (models.AlignedReturns, error) {
	if len(series) == 0 {
		return models.AlignedReturns{}, models.ErrEmptyAlignment
	}

	tickers := make([]string, 0, len(series))
	for t := range series {
		tickers = append(tickers, t)
	}
	sort.Strings(tickers)

	// Per-ticker lookup of finite values by calendar day.
	byDay := make(map[string]map[int64]float64, len(tickers))
	for t, s := range series {
		m := make(map[int64]float64, s.Len())
		for _, p := range s.Points {
			if IsFinite(p.Return) {
				m[util.DayKey(p.Date).Unix()] = p.Return
			}
		}
		byDay[t] = m
	}

	// Walk the first ticker's dates in order and keep the intersection.
	out := models.AlignedReturns{
		Tickers: tickers,
		Columns: make(map[string][]float64, len(tickers)),
	}
	first := series[tickers[0]]
	for _, p := range first.Points {
		day := util.DayKey(p.Date)
		key := day.Unix()
		present := true
		for _, t := range tickers {
			if _, ok := byDay[t][key]; !ok {
				present = false
				break
			}
		}
		if !present {
			continue
		}
		out.Dates = append(out.Dates, day)
		for _, t := range tickers {
			out.Columns[t] = append(out.Columns[t], byDay[t][key])
		}
	}

	if len(out.Dates) == 0 {
		return models.AlignedReturns{}, models.ErrEmptyAlignment
	}
	return out, nil
}
