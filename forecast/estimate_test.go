package forecast

import (
	"testing"
	"time"

	"app/models"
)

func seriesFromDaily(quantities []float64) *DailySeries {
	s := newDailySeries("p1", "Flour", 2)
	for i, q := range quantities {
		s.add(testNow.AddDate(0, 0, -len(quantities)+i), q)
	}
	return s
}

func TestEstimateAverages(t *testing.T) {
	e := newTestEngine(&fakeHistory{}, &fakeStock{}, &fakeCatalog{})

	cases := []struct {
		name       string
		quantities []float64
		wantDaily  float64
	}{
		{"constant", []float64{10, 10, 10, 10}, 10},
		{"mixed", []float64{4, 6, 8}, 6},
		{"single day", []float64{7}, 7},
		{"all zero", []float64{0, 0, 0}, 0},
	}

	for _, c := range cases {
		f := e.estimate(seriesFromDaily(c.quantities))
		if f.DailyConsumptionAvg != c.wantDaily {
			t.Fatalf("%s: daily avg = %v; want %v", c.name, f.DailyConsumptionAvg, c.wantDaily)
		}
		if f.WeeklyConsumptionAvg != c.wantDaily*7 {
			t.Fatalf("%s: weekly avg = %v; want %v", c.name, f.WeeklyConsumptionAvg, c.wantDaily*7)
		}
		if f.MonthlyConsumptionAvg != c.wantDaily*30 {
			t.Fatalf("%s: monthly avg = %v; want %v", c.name, f.MonthlyConsumptionAvg, c.wantDaily*30)
		}
	}
}

func TestEstimateEmptySeries(t *testing.T) {
	e := newTestEngine(&fakeHistory{}, &fakeStock{}, &fakeCatalog{})
	f := e.estimate(newDailySeries("p1", "Flour", 2))
	if f.DailyConsumptionAvg != 0 {
		t.Fatalf("daily avg for empty series = %v; want 0", f.DailyConsumptionAvg)
	}
	if f.Trend != models.TrendStable {
		t.Fatalf("trend for empty series = %q; want stable", f.Trend)
	}
}

func halves(first, second float64, daysPerHalf int) []float64 {
	out := make([]float64, 0, daysPerHalf*2)
	for i := 0; i < daysPerHalf; i++ {
		out = append(out, first)
	}
	for i := 0; i < daysPerHalf; i++ {
		out = append(out, second)
	}
	return out
}

func TestClassifyTrend(t *testing.T) {
	cases := []struct {
		name       string
		quantities []float64
		want       string
	}{
		{"thirty percent up", halves(10, 13, 45), models.TrendIncreasing},
		{"thirty percent down", halves(10, 7, 45), models.TrendDecreasing},
		{"within threshold", halves(10, 11, 45), models.TrendStable},
		{"exactly fifteen percent", halves(10, 11.5, 45), models.TrendStable},
		{"flat", halves(10, 10, 45), models.TrendStable},
		{"zero previous half", halves(0, 10, 10), models.TrendStable},
		{"all zero", halves(0, 0, 10), models.TrendStable},
	}

	for _, c := range cases {
		if got := classifyTrend(c.quantities); got != c.want {
			t.Fatalf("%s: classifyTrend = %q; want %q", c.name, got, c.want)
		}
	}
}

func TestConfidenceLevelTiers(t *testing.T) {
	cases := []struct {
		days int
		want string
	}{
		{61, models.ConfidenceHigh},
		{90, models.ConfidenceHigh},
		{60, models.ConfidenceMedium},
		{31, models.ConfidenceMedium},
		{30, models.ConfidenceLow},
		{10, models.ConfidenceLow},
		{0, models.ConfidenceLow},
	}

	for _, c := range cases {
		if got := confidenceLevel(c.days); got != c.want {
			t.Fatalf("confidenceLevel(%d) = %q; want %q", c.days, got, c.want)
		}
	}
}

func TestSeasonalityEnvelope(t *testing.T) {
	e := newTestEngine(&fakeHistory{}, &fakeStock{}, &fakeCatalog{})

	// The factor must stay inside 1.0 +/- 0.1 across the random range.
	for _, r := range []float64{0, 0.25, 0.5, 0.75, 0.999} {
		e.SetRand(func() float64 { return r })
		f := e.estimate(seriesFromDaily([]float64{10, 10}))
		if f.SeasonalityFactor < 0.9 || f.SeasonalityFactor > 1.1 {
			t.Fatalf("seasonality factor %v outside [0.9, 1.1] for rand %v", f.SeasonalityFactor, r)
		}
	}

	e.SetRand(func() float64 { return 0.5 })
	f := e.estimate(seriesFromDaily([]float64{10, 10}))
	if f.SeasonalityFactor != 1.0 {
		t.Fatalf("seasonality factor for rand 0.5 = %v; want 1.0", f.SeasonalityFactor)
	}
}

func TestConfidenceCountsDistinctDays(t *testing.T) {
	e := newTestEngine(&fakeHistory{}, &fakeStock{}, &fakeCatalog{})

	// 62 records landing on 31 distinct days: medium, not high.
	s := newDailySeries("p1", "Flour", 2)
	for i := 0; i < 31; i++ {
		day := testNow.AddDate(0, 0, -i)
		s.add(day, 5)
		s.add(day.Add(2*time.Hour), 5)
	}
	f := e.estimate(s)
	if f.ConfidenceLevel != models.ConfidenceMedium {
		t.Fatalf("confidence = %q; want medium", f.ConfidenceLevel)
	}
}
