package forecast

import (
	"context"
	"log"
	"sort"
	"time"
)

const dateLayout = "2006-01-02"

// DailySeries is a product's consumption history, one summed value per
// calendar day.
type DailySeries struct {
	ProductID   string
	ProductName string
	UnitCost    float64
	days        map[string]float64
}

func newDailySeries(productID, productName string, unitCost float64) *DailySeries {
	return &DailySeries{
		ProductID:   productID,
		ProductName: productName,
		UnitCost:    unitCost,
		days:        make(map[string]float64),
	}
}

// add sums the quantity into the given day. Multiple records for the same
// product on the same date must not double count.
func (s *DailySeries) add(date time.Time, quantity float64) {
	s.days[date.Format(dateLayout)] += quantity
}

// DayCount returns the number of distinct days with data.
func (s *DailySeries) DayCount() int {
	return len(s.days)
}

// sortedDays returns the day keys in ascending date order.
func (s *DailySeries) sortedDays() []string {
	keys := make([]string, 0, len(s.days))
	for k := range s.days {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// sortedQuantities returns the per-day quantities in ascending date order.
func (s *DailySeries) sortedQuantities() []float64 {
	keys := s.sortedDays()
	out := make([]float64, len(keys))
	for i, k := range keys {
		out[i] = s.days[k]
	}
	return out
}

// buildSeries fetches the trailing lookback window of consumption for a
// restaurant and groups it into per-product daily series. When the fetch
// fails, or yields no records, a synthetic series is generated from the
// product catalog so a freshly onboarded restaurant still gets forecasts.
// The returned order preserves first appearance, and synthetic reports
// whether the data was generated rather than fetched.
func (e *Engine) buildSeries(ctx context.Context, restaurantID string) (map[string]*DailySeries, []string, bool, error) {
	from := e.nowFn().AddDate(0, 0, -e.lookbackDays)

	records, err := e.history.ConsumptionHistory(ctx, restaurantID, from)
	if err != nil {
		log.Printf("Consumption history fetch failed for restaurant %s, generating synthetic series: %v", restaurantID, err)
		return e.synthesizeSeries(ctx, restaurantID)
	}
	if len(records) == 0 {
		return e.synthesizeSeries(ctx, restaurantID)
	}

	series := make(map[string]*DailySeries)
	order := make([]string, 0)
	for _, rec := range records {
		s, ok := series[rec.ProductID]
		if !ok {
			s = newDailySeries(rec.ProductID, rec.ProductName, rec.UnitCost)
			series[rec.ProductID] = s
			order = append(order, rec.ProductID)
		}
		s.add(rec.Date, rec.Quantity)
	}
	return series, order, false, nil
}

// synthesizeSeries generates a deterministic-shape fallback history: one
// record per day for up to ten catalog products, quantity uniform in [1, 20].
func (e *Engine) synthesizeSeries(ctx context.Context, restaurantID string) (map[string]*DailySeries, []string, bool, error) {
	products, err := e.catalog.Products(ctx, restaurantID, syntheticProductLimit)
	if err != nil {
		return nil, nil, true, ErrNoData
	}
	if len(products) == 0 {
		return nil, nil, true, ErrNoData
	}

	series := make(map[string]*DailySeries)
	order := make([]string, 0, len(products))
	today := e.nowFn()
	for _, p := range products {
		s := newDailySeries(p.ID, p.Name, p.UnitCost)
		for i := 0; i < e.lookbackDays; i++ {
			day := today.AddDate(0, 0, -i)
			quantity := float64(int(e.randFn()*20) + 1)
			s.add(day, quantity)
		}
		series[p.ID] = s
		order = append(order, p.ID)
	}
	return series, order, true, nil
}
