package quant

import (
	"fmt"

	"RiskPulse/internal/domain/models"
)

// DailyReturns converts a close-price series into daily percentage
// returns, r_i = p_i/p_{i-1} - 1. The undefined first point is
// dropped, so the result is one element shorter and its dates are a
// suffix of the source dates.
func DailyReturns(s models.PriceSeries) (models.ReturnSeries, error) {
	if s.Len() < 2 {
		return models.ReturnSeries{}, fmt.Errorf("%s: need at least 2 prices, have %d: %w",
			s.Ticker, s.Len(), models.ErrInsufficientData)
	}
	points := make([]models.ReturnPoint, 0, s.Len()-1)
	for i := 1; i < len(s.Points); i++ {
		points = append(points, models.ReturnPoint{
			Date:   s.Points[i].Date,
			Return: s.Points[i].Close/s.Points[i-1].Close - 1,
		})
	}
	return models.ReturnSeries{Ticker: s.Ticker, Points: points}, nil
}
