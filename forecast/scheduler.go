package forecast

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"
)

// RestaurantStore lists the restaurants the scheduler keeps forecasts warm for.
type RestaurantStore interface {
	ActiveRestaurantIDs(ctx context.Context) ([]string, error)
}

// Scheduler refreshes every active restaurant once at Start and then on a
// fixed interval. It owns its goroutine; Stop waits for it to exit.
type Scheduler struct {
	engine      *Engine
	restaurants RestaurantStore
	interval    time.Duration

	lifecycle sync.Mutex
	cancel    context.CancelFunc
	done      chan struct{}
}

// NewScheduler builds a scheduler over the engine. A non-positive interval
// falls back to one hour.
func NewScheduler(engine *Engine, restaurants RestaurantStore, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = time.Hour
	}
	return &Scheduler{
		engine:      engine,
		restaurants: restaurants,
		interval:    interval,
	}
}

// Start launches the refresh loop. Calling Start on a running scheduler is a
// no-op.
func (s *Scheduler) Start(ctx context.Context) {
	s.lifecycle.Lock()
	defer s.lifecycle.Unlock()
	if s.cancel != nil {
		return
	}
	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})

	go func() {
		defer close(s.done)
		s.refreshAll(ctx)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.refreshAll(ctx)
			}
		}
	}()
}

// Stop cancels the loop and waits for the in-flight cycle to finish. A
// refresh interrupted by Stop discards its partial data; the previously
// published sets remain intact.
func (s *Scheduler) Stop() {
	s.lifecycle.Lock()
	defer s.lifecycle.Unlock()
	if s.cancel == nil {
		return
	}
	s.cancel()
	<-s.done
	s.cancel = nil
	s.done = nil
}

func (s *Scheduler) refreshAll(ctx context.Context) {
	ids, err := s.restaurants.ActiveRestaurantIDs(ctx)
	if err != nil {
		log.Printf("Scheduled refresh skipped, restaurant listing failed: %v", err)
		return
	}
	for _, id := range ids {
		if ctx.Err() != nil {
			return
		}
		if _, err := s.engine.Refresh(ctx, id); err != nil {
			if errors.Is(err, ErrNoData) {
				log.Printf("Scheduled refresh for restaurant %s: no historical data yet", id)
				continue
			}
			log.Printf("Scheduled refresh failed for restaurant %s: %v", id, err)
		}
	}
}
