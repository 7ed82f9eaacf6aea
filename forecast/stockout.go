package forecast

import (
	"math"
	"time"
)

const (
	// adjustedDailyFloor prevents division by zero and caps the projected
	// horizon when consumption is effectively zero.
	adjustedDailyFloor = 0.1
	// stockoutHorizonDays is the furthest horizon a stockout date is
	// projected for; anything beyond it is "no imminent stockout".
	stockoutHorizonDays = 365

	// Reorder suggestions cover 14 days of projected consumption with a
	// 30% safety margin.
	reorderCoverageDays = 14
	reorderSafetyMargin = 1.3

	// NoStockout is the days-until-stockout sentinel meaning no imminent
	// stockout risk (or unknown).
	NoStockout = -1
)

// adjustedDaily applies the seasonality multiplier to the daily average and
// floors the result.
func adjustedDaily(dailyAvg, seasonalityFactor float64) float64 {
	return math.Max(dailyAvg*seasonalityFactor, adjustedDailyFloor)
}

// predictStockout projects how many days the current stock lasts at the
// seasonality-adjusted consumption rate. Projections outside (0, 365) days
// collapse to the NoStockout sentinel with no date. Exactly zero days also
// collapses to the sentinel: zero stock under non-trivial consumption is
// reported as "not urgent" rather than "already out" (pinned current
// behavior, see TestPredictStockoutZeroDaysKeepsSentinel).
func predictStockout(now time.Time, currentStock, dailyAvg, seasonalityFactor float64) (int, *time.Time) {
	adjusted := adjustedDaily(dailyAvg, seasonalityFactor)
	days := int(math.Floor(currentStock / adjusted))
	if days <= 0 || days >= stockoutHorizonDays {
		return NoStockout, nil
	}
	date := now.AddDate(0, 0, days)
	return days, &date
}

// suggestReorder sizes a reorder to the coverage window plus safety margin.
func suggestReorder(adjusted float64) int {
	return int(math.Ceil(adjusted * reorderCoverageDays * reorderSafetyMargin))
}
