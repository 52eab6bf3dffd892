package availability

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"delivery-relay/internal/domain"
	"delivery-relay/internal/logx"
)

// Poll interval bounds.
const (
	MinPollInterval     = 10 * time.Second
	MaxPollInterval     = 30 * time.Second
	DefaultPollInterval = 15 * time.Second
)

// ClampInterval maps d into [MinPollInterval, MaxPollInterval]; zero means default.
func ClampInterval(d time.Duration) time.Duration {
	switch {
	case d <= 0:
		return DefaultPollInterval
	case d < MinPollInterval:
		return MinPollInterval
	case d > MaxPollInterval:
		return MaxPollInterval
	default:
		return d
	}
}

// Poller refreshes availability on a fixed interval and hands every result
// to onResult. Ticks bypass the availability cache. After Stop returns no
// further fetch is started, an in-flight fetch is cancelled and no result is
// delivered.
type Poller struct {
	svc          fetcher
	interval     time.Duration
	onResult     func(Result)
	logger       logx.Logger
	newScheduler func() scheduler

	mu      sync.Mutex
	sched   scheduler
	ctx     context.Context
	runCtx  context.Context
	cancel  context.CancelFunc
	origin  domain.Coordinate
	gen     uint64
	running bool
}

// NewPoller creates a stopped Poller.
func NewPoller(svc fetcher, interval time.Duration, onResult func(Result), logger logx.Logger) *Poller {
	if logger == nil {
		logger = logx.Nop()
	}
	return &Poller{
		svc:          svc,
		interval:     ClampInterval(interval),
		onResult:     onResult,
		logger:       logger.With(logx.String("component", "availability_poller")),
		newScheduler: func() scheduler { return cron.New() },
	}
}

// Interval returns the effective poll interval.
func (p *Poller) Interval() time.Duration { return p.interval }

// Start begins polling origin. Calling Start on a running poller restarts it.
// Cancelling ctx has the same effect on fetches as Stop.
func (p *Poller) Start(ctx context.Context, origin domain.Coordinate) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.stopLocked()
	p.ctx = ctx
	p.origin = origin
	return p.startLocked()
}

// Retarget switches to a new origin and restarts the schedule.
func (p *Poller) Retarget(origin domain.Coordinate) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.origin = origin
	if !p.running {
		return nil
	}
	p.stopLocked()
	return p.startLocked()
}

// Stop cancels the schedule. It is safe to call more than once.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
}

// Running reports whether a schedule is active.
func (p *Poller) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

func (p *Poller) startLocked() error {
	p.gen++
	gen := p.gen
	sched := p.newScheduler()
	spec := fmt.Sprintf("@every %s", p.interval)
	if _, err := sched.AddFunc(spec, func() { p.tick(gen) }); err != nil {
		return fmt.Errorf("schedule availability poll: %w", err)
	}
	p.runCtx, p.cancel = context.WithCancel(p.ctx)
	sched.Start()
	p.sched = sched
	p.running = true
	p.logger.Debug("availability polling started",
		logx.Duration("interval", p.interval),
		logx.Float64("lat", p.origin.Lat),
		logx.Float64("lon", p.origin.Lon),
	)
	return nil
}

func (p *Poller) stopLocked() {
	if !p.running {
		return
	}
	p.gen++
	p.running = false
	p.cancel()
	p.sched.Stop()
	p.sched = nil
	p.logger.Debug("availability polling stopped")
}

func (p *Poller) current(gen uint64) (context.Context, domain.Coordinate, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.running || p.gen != gen {
		return nil, domain.Coordinate{}, false
	}
	return p.runCtx, p.origin, true
}

func (p *Poller) tick(gen uint64) {
	ctx, origin, ok := p.current(gen)
	if !ok || ctx.Err() != nil {
		return
	}
	res, err := p.svc.Fresh(ctx, origin)
	if err != nil {
		return
	}
	if _, _, ok := p.current(gen); !ok {
		return
	}
	if p.onResult != nil {
		p.onResult(res)
	}
}
