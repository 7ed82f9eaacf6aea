package models

import "time"

// ConsumptionRecord is one dated, summed quantity of a product used or sold.
// Records are immutable once fetched; the source may have already summed
// several transactions into one per-day row.
type ConsumptionRecord struct {
	Date        time.Time `json:"date"`
	ProductID   string    `json:"product_id"`
	ProductName string    `json:"product_name"`
	Quantity    float64   `json:"quantity_consumed"`
	UnitCost    float64   `json:"unit_cost"`
}

// HistoricalSale is the display projection of one aggregated day of
// consumption, decorated with calendar fields for charting.
type HistoricalSale struct {
	Date         string  `json:"date"`
	ProductID    string  `json:"product_id"`
	ProductName  string  `json:"product_name"`
	QuantitySold float64 `json:"quantity_sold"`
	Revenue      float64 `json:"revenue"`
	DayOfWeek    string  `json:"day_of_week"`
	Month        int     `json:"month"`
}

// Trend classification for a product's consumption.
const (
	TrendIncreasing = "increasing"
	TrendStable     = "stable"
	TrendDecreasing = "decreasing"
)

// Confidence tiers for a forecast, based purely on sample size.
const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"
)

// DemandForecast is the full per-product forecast published by a refresh
// cycle. DaysUntilStockout uses -1 as a "no imminent stockout" sentinel.
type DemandForecast struct {
	ProductID             string  `json:"product_id"`
	ProductName           string  `json:"product_name"`
	CurrentStock          float64 `json:"current_stock"`
	DailyConsumptionAvg   float64 `json:"daily_consumption_avg"`
	WeeklyConsumptionAvg  float64 `json:"weekly_consumption_avg"`
	MonthlyConsumptionAvg float64 `json:"monthly_consumption_avg"`
	PredictedStockoutDate *string `json:"predicted_stockout_date"`
	DaysUntilStockout     int     `json:"days_until_stockout"`
	SuggestedReorderQty   int     `json:"suggested_reorder_quantity"`
	ConfidenceLevel       string  `json:"confidence_level"`
	Trend                 string  `json:"trend"`
	SeasonalityFactor     float64 `json:"seasonality_factor"`
}

// TrendReport is the display-friendly projection of a forecast's trend.
type TrendReport struct {
	ProductID       string    `json:"product_id"`
	ProductName     string    `json:"product_name"`
	TrendDirection  string    `json:"trend_direction"` // up, down or stable
	TrendPercentage float64   `json:"trend_percentage"`
	Period          string    `json:"period"` // weekly or monthly
	LastUpdated     time.Time `json:"last_updated"`
}

// Product is a catalog entry, used for the synthetic-series fallback.
type Product struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	UnitCost float64 `json:"cost_per_unit"`
}

// ProductStock is the current stock level and unit cost for one product.
type ProductStock struct {
	CurrentStock float64 `json:"current_stock"`
	UnitCost     float64 `json:"cost_per_unit"`
}
