package poll

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"hostel-client/internal/metrics"
)

// FetchFunc is the work a poller repeats. It must honor ctx: after Stop the
// context is cancelled, so a late response resolves into a no-op instead of
// updating detached state.
type FetchFunc func(ctx context.Context) error

type State int32

const (
	StateIdle State = iota
	StateScheduled
	StateFetching
)

// TimeOfDay is a wall-clock refresh point, e.g. 07:30.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay parses "HH:MM".
func ParseTimeOfDay(s string) (TimeOfDay, bool) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return TimeOfDay{}, false
	}
	hour, err1 := strconv.Atoi(parts[0])
	minute, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return TimeOfDay{}, false
	}
	return TimeOfDay{Hour: hour, Minute: minute}, true
}

// Poller re-invokes a fetch on an interval and/or at fixed wall-clock times.
// At most one fetch is in flight at a time: a tick that lands during a slow
// fetch is skipped, never queued. Failures land in the error slot and the
// schedule keeps going.
type Poller struct {
	name        string
	logger      *zap.Logger
	metrics     *metrics.Metrics
	now         func() time.Time
	granularity time.Duration

	mu     sync.Mutex
	ctx    context.Context
	cancel context.CancelFunc

	state    atomic.Int32
	inFlight atomic.Bool

	errMu   sync.Mutex
	lastErr error

	firedMu   sync.Mutex
	lastFired string // minute marker, fires at most once per matching minute
}

type Option func(*Poller)

func WithLogger(logger *zap.Logger) Option {
	return func(p *Poller) { p.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(p *Poller) { p.metrics = m }
}

// WithClock overrides wall-clock reads for ScheduleAt. Tests only.
func WithClock(now func() time.Time) Option {
	return func(p *Poller) { p.now = now }
}

// WithGranularity overrides how often ScheduleAt checks the clock
// (default one minute).
func WithGranularity(d time.Duration) Option {
	return func(p *Poller) { p.granularity = d }
}

func New(name string, opts ...Option) *Poller {
	p := &Poller{
		name:        name,
		logger:      zap.L().Named("poll." + name),
		metrics:     metrics.Nop(),
		now:         time.Now,
		granularity: time.Minute,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Start begins periodic invocation: one fetch immediately (the mount fetch),
// then one per interval.
func (p *Poller) Start(fetch FetchFunc, interval time.Duration) {
	ctx := p.attach()

	go func() {
		p.tryFetch(ctx, fetch)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				p.tryFetch(ctx, fetch)
			}
		}
	}()
}

// ScheduleAt triggers an extra fetch whenever the wall clock matches one of
// the given times, checked at the configured granularity. A matching minute
// fires at most once.
func (p *Poller) ScheduleAt(fetch FetchFunc, times []TimeOfDay) {
	ctx := p.attach()

	go func() {
		ticker := time.NewTicker(p.granularity)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				p.checkClock(ctx, fetch, times)
			}
		}
	}()
}

func (p *Poller) checkClock(ctx context.Context, fetch FetchFunc, times []TimeOfDay) {
	now := p.now()
	for _, t := range times {
		if now.Hour() != t.Hour || now.Minute() != t.Minute {
			continue
		}

		marker := now.Format("2006-01-02 15:04")
		p.firedMu.Lock()
		if p.lastFired == marker {
			p.firedMu.Unlock()
			return
		}
		p.lastFired = marker
		p.firedMu.Unlock()

		p.tryFetch(ctx, fetch)
		return
	}
}

// attach lazily creates the poller's cancellation scope and moves the state
// machine out of Idle.
func (p *Poller) attach() context.Context {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cancel == nil {
		ctx, cancel := context.WithCancel(context.Background())
		p.cancel = cancel
		p.ctx = ctx
	}
	p.state.CompareAndSwap(int32(StateIdle), int32(StateScheduled))
	return p.ctx
}

func (p *Poller) tryFetch(ctx context.Context, fetch FetchFunc) {
	if !p.inFlight.CompareAndSwap(false, true) {
		p.metrics.PollSkips.WithLabelValues(p.name).Inc()
		p.logger.Debug("tick skipped, fetch still in flight")
		return
	}
	p.metrics.PollTicks.WithLabelValues(p.name).Inc()
	p.state.Store(int32(StateFetching))

	go func() {
		defer func() {
			p.inFlight.Store(false)
			p.state.CompareAndSwap(int32(StateFetching), int32(StateScheduled))
		}()

		err := fetch(ctx)
		if ctx.Err() != nil {
			// Stale response after Stop; drop it.
			return
		}
		p.setErr(err)
		if err != nil {
			p.metrics.PollErrs.WithLabelValues(p.name).Inc()
			p.logger.Warn("fetch failed, schedule continues", zap.Error(err))
		}
	}()
}

// Stop cancels all timers and in-flight work. Safe to call repeatedly.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
		p.ctx = nil
	}
	p.state.Store(int32(StateIdle))
}

// LastErr returns the outcome of the most recent completed fetch: nil after
// a success, the swallowed error after a failure.
func (p *Poller) LastErr() error {
	p.errMu.Lock()
	defer p.errMu.Unlock()
	return p.lastErr
}

func (p *Poller) setErr(err error) {
	p.errMu.Lock()
	defer p.errMu.Unlock()
	p.lastErr = err
}

func (p *Poller) State() State {
	return State(p.state.Load())
}
