package forecast

import "app/models"

// Trend classification kicks in once the split-half change exceeds 15%.
const trendThreshold = 0.15

// estimate derives the stock-independent forecast fields from a product's
// daily series: flat average extrapolation, split-period trend, a randomized
// seasonality multiplier and a sample-size confidence tier.
func (e *Engine) estimate(series *DailySeries) models.DemandForecast {
	quantities := series.sortedQuantities()

	dailyAvg := mean(quantities)

	forecast := models.DemandForecast{
		ProductID:             series.ProductID,
		ProductName:           series.ProductName,
		DailyConsumptionAvg:   dailyAvg,
		WeeklyConsumptionAvg:  dailyAvg * 7,
		MonthlyConsumptionAvg: dailyAvg * 30,
		Trend:                 classifyTrend(quantities),
		SeasonalityFactor:     1.0 + (e.randFn()*0.2 - 0.1),
		ConfidenceLevel:       confidenceLevel(series.DayCount()),
	}
	return forecast
}

// classifyTrend splits the date-sorted quantities at floor(n/2) and compares
// the half means. A zero previous-half mean yields stable regardless of the
// recent half (division guard, known coarseness).
func classifyTrend(sorted []float64) string {
	mid := len(sorted) / 2
	previousAvg := mean(sorted[:mid])
	recentAvg := mean(sorted[mid:])

	if previousAvg <= 0 {
		return models.TrendStable
	}
	change := (recentAvg - previousAvg) / previousAvg
	switch {
	case change > trendThreshold:
		return models.TrendIncreasing
	case change < -trendThreshold:
		return models.TrendDecreasing
	default:
		return models.TrendStable
	}
}

// confidenceLevel is based purely on how many distinct days of data exist.
func confidenceLevel(dayCount int) string {
	switch {
	case dayCount > 60:
		return models.ConfidenceHigh
	case dayCount > 30:
		return models.ConfidenceMedium
	default:
		return models.ConfidenceLow
	}
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
