package forecast

import (
	"testing"
	"time"
)

func TestPredictStockoutScenario(t *testing.T) {
	// current_stock=100, daily_avg=10, seasonality=1.0 -> 10 days out.
	days, date := predictStockout(testNow, 100, 10, 1.0)
	if days != 10 {
		t.Fatalf("days = %d; want 10", days)
	}
	if date == nil {
		t.Fatal("expected a stockout date")
	}
	want := testNow.AddDate(0, 0, 10)
	if !date.Equal(want) {
		t.Fatalf("date = %v; want %v", date, want)
	}
}

func TestPredictStockoutZeroConsumptionFloors(t *testing.T) {
	// Zero consumption floors adjusted daily at 0.1: 50/0.1 = 500 days,
	// beyond the 365-day horizon, so no date and the sentinel.
	days, date := predictStockout(testNow, 50, 0, 1.0)
	if days != NoStockout {
		t.Fatalf("days = %d; want sentinel %d", days, NoStockout)
	}
	if date != nil {
		t.Fatalf("expected nil date, got %v", date)
	}
}

func TestPredictStockoutZeroDaysKeepsSentinel(t *testing.T) {
	// Exactly-zero remaining days reports "not urgent" rather than
	// "already out". Pinned until product intent says otherwise.
	days, date := predictStockout(testNow, 0, 10, 1.0)
	if days != NoStockout {
		t.Fatalf("days = %d; want sentinel %d", days, NoStockout)
	}
	if date != nil {
		t.Fatalf("expected nil date, got %v", date)
	}

	// Sub-day remainders floor to zero and collapse the same way.
	days, _ = predictStockout(time.Now(), 5, 10, 1.0)
	if days != NoStockout {
		t.Fatalf("days for half-day stock = %d; want sentinel %d", days, NoStockout)
	}
}

func TestPredictStockoutHorizonBoundary(t *testing.T) {
	days, date := predictStockout(testNow, 364, 1, 1.0)
	if days != 364 || date == nil {
		t.Fatalf("364-day projection: days = %d, date = %v; want 364 with date", days, date)
	}

	days, date = predictStockout(testNow, 365, 1, 1.0)
	if days != NoStockout || date != nil {
		t.Fatalf("365-day projection: days = %d, date = %v; want sentinel and nil", days, date)
	}
}

func TestSuggestReorderScenario(t *testing.T) {
	// ceil(10 * 14 * 1.3) = 182.
	if got := suggestReorder(10); got != 182 {
		t.Fatalf("suggestReorder(10) = %d; want 182", got)
	}
}

func TestSuggestReorderMonotonic(t *testing.T) {
	prev := 0
	for _, adjusted := range []float64{0.1, 0.5, 1, 2, 4, 8, 16, 32, 64} {
		got := suggestReorder(adjusted)
		if got < prev {
			t.Fatalf("suggestReorder(%v) = %d decreased below %d", adjusted, got, prev)
		}
		prev = got
	}
}

func TestAdjustedDailyFloor(t *testing.T) {
	cases := []struct {
		daily, seasonality, want float64
	}{
		{10, 1.0, 10},
		{10, 0.5, 5},
		{0, 1.0, 0.1},
		{0.05, 1.0, 0.1},
	}
	for _, c := range cases {
		if got := adjustedDaily(c.daily, c.seasonality); got != c.want {
			t.Fatalf("adjustedDaily(%v, %v) = %v; want %v", c.daily, c.seasonality, got, c.want)
		}
	}
}
