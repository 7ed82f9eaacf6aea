package forecast

import (
	"context"
	"errors"
	"log"
	"math"
	"math/rand"
	"sort"
	"sync"
	"time"

	"app/models"
)

// ErrNoData means a refresh found nothing to forecast: no consumption
// history and no catalog products to synthesize from. It is distinct from a
// transient fetch failure so callers can tell "nothing to show yet" from
// "something broke".
var ErrNoData = errors.New("no consumption data available")

const (
	defaultLookbackDays   = 90
	defaultStockTimeout   = 5 * time.Second
	syntheticProductLimit = 10
)

// HistoryStore fetches consumption events for a restaurant from a date onward.
type HistoryStore interface {
	ConsumptionHistory(ctx context.Context, restaurantID string, from time.Time) ([]models.ConsumptionRecord, error)
}

// StockStore fetches a product's current stock level and unit cost.
type StockStore interface {
	ProductStock(ctx context.Context, productID string) (models.ProductStock, error)
}

// CatalogStore lists a restaurant's products, used only for the
// synthetic-series fallback.
type CatalogStore interface {
	Products(ctx context.Context, restaurantID string, limit int) ([]models.Product, error)
}

// Engine turns historical consumption into per-product demand forecasts and
// keeps the last published set per restaurant.
type Engine struct {
	history HistoryStore
	stock   StockStore
	catalog CatalogStore

	lookbackDays int
	stockTimeout time.Duration
	nowFn        func() time.Time
	randFn       func() float64

	mu          sync.Mutex
	restaurants map[string]*restaurantState
}

// restaurantState is one restaurant's published forecast set. refreshMu
// serializes refresh cycles; mu guards the published data.
type restaurantState struct {
	refreshMu sync.Mutex

	mu        sync.RWMutex
	forecasts []models.DemandForecast
	synthetic bool
	updatedAt time.Time
}

// NewEngine wires an engine over its data sources with production defaults
// (90-day lookback, real clock and random source).
func NewEngine(history HistoryStore, stock StockStore, catalog CatalogStore) *Engine {
	return &Engine{
		history:      history,
		stock:        stock,
		catalog:      catalog,
		lookbackDays: defaultLookbackDays,
		stockTimeout: defaultStockTimeout,
		nowFn:        time.Now,
		randFn:       rand.Float64,
		restaurants:  make(map[string]*restaurantState),
	}
}

// SetLookback overrides the history window in days.
func (e *Engine) SetLookback(days int) {
	if days > 0 {
		e.lookbackDays = days
	}
}

// SetStockTimeout overrides the per-product stock lookup timeout.
func (e *Engine) SetStockTimeout(d time.Duration) {
	if d > 0 {
		e.stockTimeout = d
	}
}

// SetClock injects the time source. Tests use this for deterministic dates.
func (e *Engine) SetClock(nowFn func() time.Time) {
	e.nowFn = nowFn
}

// SetRand injects the uniform [0,1) random source feeding the seasonality
// factor, synthetic data and trend percentages.
func (e *Engine) SetRand(randFn func() float64) {
	e.randFn = randFn
}

func (e *Engine) state(restaurantID string) *restaurantState {
	e.mu.Lock()
	defer e.mu.Unlock()
	st, ok := e.restaurants[restaurantID]
	if !ok {
		st = &restaurantState{}
		e.restaurants[restaurantID] = st
	}
	return st
}

// Refresh recomputes and atomically republishes the restaurant's full
// forecast set. At most one refresh runs per restaurant at a time; concurrent
// callers queue behind the one in progress. Per-product stock lookups fan out
// with individual timeouts and their failures never abort the batch.
func (e *Engine) Refresh(ctx context.Context, restaurantID string) ([]models.DemandForecast, error) {
	st := e.state(restaurantID)
	st.refreshMu.Lock()
	defer st.refreshMu.Unlock()

	series, order, synthetic, err := e.buildSeries(ctx, restaurantID)
	if err != nil {
		if errors.Is(err, ErrNoData) {
			st.publish([]models.DemandForecast{}, false, e.nowFn())
			return []models.DemandForecast{}, ErrNoData
		}
		return nil, err
	}

	forecasts := make([]models.DemandForecast, len(order))
	for i, productID := range order {
		f := e.estimate(series[productID])
		// Placeholder until the live stock lookup resolves.
		f.CurrentStock = float64(int(e.randFn()*100) + 20)
		e.applyStockout(&f)
		forecasts[i] = f
	}

	var wg sync.WaitGroup
	for i := range forecasts {
		wg.Add(1)
		go func(f *models.DemandForecast) {
			defer wg.Done()
			lookupCtx, cancel := context.WithTimeout(ctx, e.stockTimeout)
			defer cancel()
			ps, err := e.stock.ProductStock(lookupCtx, f.ProductID)
			if err != nil {
				log.Printf("Stock lookup failed for product %s, keeping estimated stock: %v", f.ProductID, err)
				return
			}
			f.CurrentStock = ps.CurrentStock
			e.applyStockout(f)
		}(&forecasts[i])
	}
	wg.Wait()

	// Shutdown mid-refresh discards the partial cycle; the previously
	// published set stays the last known good state.
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	st.publish(forecasts, synthetic, e.nowFn())
	return forecasts, nil
}

// applyStockout recomputes the stock-dependent forecast fields from the
// forecast's current stock.
func (e *Engine) applyStockout(f *models.DemandForecast) {
	adjusted := adjustedDaily(f.DailyConsumptionAvg, f.SeasonalityFactor)
	days, date := predictStockout(e.nowFn(), f.CurrentStock, f.DailyConsumptionAvg, f.SeasonalityFactor)
	f.DaysUntilStockout = days
	f.PredictedStockoutDate = nil
	if date != nil {
		formatted := date.Format(dateLayout)
		f.PredictedStockoutDate = &formatted
	}
	f.SuggestedReorderQty = suggestReorder(adjusted)
}

func (st *restaurantState) publish(forecasts []models.DemandForecast, synthetic bool, at time.Time) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.forecasts = forecasts
	st.synthetic = synthetic
	st.updatedAt = at
}

func (st *restaurantState) snapshot() ([]models.DemandForecast, bool, time.Time) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	out := make([]models.DemandForecast, len(st.forecasts))
	copy(out, st.forecasts)
	return out, st.synthetic, st.updatedAt
}

// Forecasts returns a copy of the last published set for a restaurant.
func (e *Engine) Forecasts(restaurantID string) []models.DemandForecast {
	forecasts, _, _ := e.state(restaurantID).snapshot()
	return forecasts
}

// Snapshot returns the last published set together with whether it was built
// from synthetic data and when it was published.
func (e *Engine) Snapshot(restaurantID string) ([]models.DemandForecast, bool, time.Time) {
	return e.state(restaurantID).snapshot()
}

// TopDemand returns up to n forecasts with positive daily consumption,
// highest first. The sort is stable so ties keep their refresh-cycle order.
func (e *Engine) TopDemand(restaurantID string, n int) []models.DemandForecast {
	forecasts := e.Forecasts(restaurantID)
	filtered := make([]models.DemandForecast, 0, len(forecasts))
	for _, f := range forecasts {
		if f.DailyConsumptionAvg > 0 {
			filtered = append(filtered, f)
		}
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].DailyConsumptionAvg > filtered[j].DailyConsumptionAvg
	})
	if n >= 0 && len(filtered) > n {
		filtered = filtered[:n]
	}
	return filtered
}

// CriticalStock returns forecasts projected to stock out within
// thresholdDays, soonest first. Products carrying the no-stockout sentinel
// are excluded.
func (e *Engine) CriticalStock(restaurantID string, thresholdDays int) []models.DemandForecast {
	forecasts := e.Forecasts(restaurantID)
	filtered := make([]models.DemandForecast, 0, len(forecasts))
	for _, f := range forecasts {
		if f.DaysUntilStockout > 0 && f.DaysUntilStockout <= thresholdDays {
			filtered = append(filtered, f)
		}
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].DaysUntilStockout < filtered[j].DaysUntilStockout
	})
	return filtered
}

// Trends projects the published forecasts into display-friendly trend
// reports. The percentage is synthesized (5-30% up, 5-25% down) the way the
// original dashboard renders it, through the injected random source.
func (e *Engine) Trends(restaurantID string) []models.TrendReport {
	forecasts, _, updatedAt := e.state(restaurantID).snapshot()
	reports := make([]models.TrendReport, 0, len(forecasts))
	for _, f := range forecasts {
		var direction string
		var percentage float64
		switch f.Trend {
		case models.TrendIncreasing:
			direction = "up"
			percentage = e.randFn()*25 + 5
		case models.TrendDecreasing:
			direction = "down"
			percentage = -(e.randFn()*20 + 5)
		default:
			direction = "stable"
		}
		reports = append(reports, models.TrendReport{
			ProductID:       f.ProductID,
			ProductName:     f.ProductName,
			TrendDirection:  direction,
			TrendPercentage: math.Round(percentage*100) / 100,
			Period:          "weekly",
			LastUpdated:     updatedAt,
		})
	}
	return reports
}

// History rebuilds the aggregated daily history for display: one row per
// product per day, decorated with calendar fields.
func (e *Engine) History(ctx context.Context, restaurantID string) ([]models.HistoricalSale, error) {
	series, order, _, err := e.buildSeries(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	sales := make([]models.HistoricalSale, 0)
	for _, productID := range order {
		s := series[productID]
		for _, day := range s.sortedDays() {
			date, err := time.Parse(dateLayout, day)
			if err != nil {
				continue
			}
			quantity := s.days[day]
			sales = append(sales, models.HistoricalSale{
				Date:         day,
				ProductID:    s.ProductID,
				ProductName:  s.ProductName,
				QuantitySold: quantity,
				Revenue:      quantity * s.UnitCost,
				DayOfWeek:    date.Weekday().String(),
				Month:        int(date.Month()),
			})
		}
	}
	return sales, nil
}
