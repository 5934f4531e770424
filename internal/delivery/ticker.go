package delivery

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"swiftkart/internal/domain"
)

// Ticker tracks active cutoff timers and, once per second, recomputes each
// one's remaining time from the wall clock. Expired timers leave the
// observable set; remaining time is never reported negative. Timers are
// registered by the resolver and read by the UI; the ticker creates none of
// its own.
type Ticker struct {
	mu     sync.Mutex
	timers map[string]*cutoffTimer
	now    func() time.Time
	stop   context.CancelFunc
}

type cutoffTimer struct {
	provider  string
	cutoff    time.Time
	remaining domain.Remaining
}

func NewTicker() *Ticker {
	return &Ticker{timers: make(map[string]*cutoffTimer), now: time.Now}
}

// Register adds a cutoff timer and returns its id. A cutoff already in the
// past is dropped on the next tick.
func (t *Ticker) Register(provider string, cutoff time.Time) string {
	t.mu.Lock()
	defer t.mu.Unlock()
	id := uuid.NewString()
	tm := &cutoffTimer{provider: provider, cutoff: cutoff}
	tm.remaining = decompose(cutoff.Sub(t.now()))
	t.timers[id] = tm
	return id
}

// Snapshot returns the active countdowns, soonest cutoff first.
func (t *Ticker) Snapshot() []domain.Countdown {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]domain.Countdown, 0, len(t.timers))
	for id, tm := range t.timers {
		out = append(out, domain.Countdown{
			ID:        id,
			Provider:  tm.provider,
			Cutoff:    tm.cutoff,
			Remaining: tm.remaining,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Cutoff.Before(out[j].Cutoff) })
	return out
}

// Run drives the one-second loop until ctx is cancelled or Stop is called.
func (t *Ticker) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	t.mu.Lock()
	t.stop = cancel
	t.mu.Unlock()

	tick := time.NewTicker(time.Second)
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-tick.C:
			t.tick()
		}
	}
}

// Stop cancels a running loop. Safe to call when Run was never started.
func (t *Ticker) Stop() {
	t.mu.Lock()
	stop := t.stop
	t.mu.Unlock()
	if stop != nil {
		stop()
	}
}

// tick recomputes every timer against the wall clock. Recomputing from the
// cutoff timestamp, rather than decrementing, keeps the countdown correct
// across suspend/resume.
func (t *Ticker) tick() {
	t.mu.Lock()
	defer t.mu.Unlock()
	now := t.now()
	for id, tm := range t.timers {
		left := tm.cutoff.Sub(now)
		if left <= 0 {
			delete(t.timers, id)
			continue
		}
		tm.remaining = decompose(left)
	}
}

func decompose(d time.Duration) domain.Remaining {
	if d < 0 {
		d = 0
	}
	ms := d.Milliseconds()
	return domain.Remaining{
		Hours:   int(ms / (1000 * 60 * 60)),
		Minutes: int(ms % (1000 * 60 * 60) / (1000 * 60)),
		Seconds: int(ms % (1000 * 60) / 1000),
	}
}
