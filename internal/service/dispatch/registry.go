package dispatch

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"delivery-relay/internal/apperr"
	"delivery-relay/internal/domain"
	"delivery-relay/internal/logx"
	"delivery-relay/internal/service/availability"
)

const (
	defaultIdleTTL = 10 * time.Minute
	minSweepEvery  = 30 * time.Second
)

type poller interface {
	Start(ctx context.Context, origin domain.Coordinate) error
	Stop()
}

// janitor is the subset of *cron.Cron driving the idle sweep.
type janitor interface {
	AddFunc(spec string, cmd func()) (cron.EntryID, error)
	Start()
	Stop() context.Context
}

type session struct {
	orch     *Orchestrator
	poller   poller
	cancel   context.CancelFunc
	lastSeen time.Time
}

// RegistryConfig stores Registry settings.
type RegistryConfig struct {
	PollInterval time.Duration
	// IdleTTL closes a session nobody has read for that long.
	IdleTTL time.Duration
}

// Registry keeps the open sessions of the service. Every session owns an
// availability poller that refreshes its pools until it is closed,
// confirmed or left idle for IdleTTL.
type Registry struct {
	svc        *Service
	interval   time.Duration
	idleTTL    time.Duration
	logger     logx.Logger
	now        func() time.Time
	newPoller  func(o *Orchestrator) poller
	newJanitor func() janitor

	mu       sync.Mutex
	sessions map[string]*session
	janitor  janitor
}

// NewRegistry creates an empty Registry.
func NewRegistry(svc *Service, cfg RegistryConfig, logger logx.Logger) *Registry {
	if logger == nil {
		logger = logx.Nop()
	}
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = defaultIdleTTL
	}
	r := &Registry{
		svc:        svc,
		interval:   availability.ClampInterval(cfg.PollInterval),
		idleTTL:    cfg.IdleTTL,
		logger:     logger.With(logx.String("component", "dispatch_registry")),
		now:        time.Now,
		newJanitor: func() janitor { return cron.New() },
		sessions:   make(map[string]*session),
	}
	r.newPoller = func(o *Orchestrator) poller {
		return availability.NewPoller(svc.avail, r.interval, o.RefreshPools, r.logger)
	}
	return r
}

// Open starts a session for orderID and its poller.
func (r *Registry) Open(ctx context.Context, orderID int64, hint Hint) (*Orchestrator, error) {
	orch, err := r.svc.Open(ctx, orderID, hint)
	if err != nil {
		return nil, err
	}

	pctx, cancel := context.WithCancel(context.Background())
	p := r.newPoller(orch)
	if err := p.Start(pctx, orch.Snapshot().Plan.Origin); err != nil {
		cancel()
		return nil, fmt.Errorf("start availability polling: %w", err)
	}

	r.mu.Lock()
	if err := r.ensureJanitorLocked(); err != nil {
		r.mu.Unlock()
		p.Stop()
		cancel()
		return nil, err
	}
	r.sessions[orch.ID()] = &session{orch: orch, poller: p, cancel: cancel, lastSeen: r.now()}
	n := len(r.sessions)
	r.mu.Unlock()

	r.logger.Info("assignment session opened",
		logx.String("session_id", orch.ID()),
		logx.Int64("order_id", orderID),
		logx.Int("open_sessions", n),
	)
	return orch, nil
}

// Get returns an open session and marks it as seen.
func (r *Registry) Get(id string) (*Orchestrator, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: session %q", apperr.ErrNotFound, id)
	}
	s.lastSeen = r.now()
	return s.orch, nil
}

// Confirm submits the session and closes it on success.
func (r *Registry) Confirm(ctx context.Context, id string) (Confirmation, error) {
	orch, err := r.Get(id)
	if err != nil {
		return Confirmation{}, err
	}
	conf, err := orch.ConfirmAssignment(ctx)
	if err != nil {
		return Confirmation{}, err
	}
	_ = r.Close(id)
	return conf, nil
}

// Close stops the session poller and forgets the session.
func (r *Registry) Close(id string) error {
	r.mu.Lock()
	s, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: session %q", apperr.ErrNotFound, id)
	}
	s.stop()
	return nil
}

// SweepIdle closes the sessions not read for IdleTTL and returns how many.
func (r *Registry) SweepIdle() int {
	cutoff := r.now().Add(-r.idleTTL)

	r.mu.Lock()
	var idle []*session
	for id, s := range r.sessions {
		if s.lastSeen.Before(cutoff) {
			idle = append(idle, s)
			delete(r.sessions, id)
		}
	}
	r.mu.Unlock()

	for _, s := range idle {
		s.stop()
		r.logger.Info("idle assignment session closed",
			logx.String("session_id", s.orch.ID()),
			logx.Time("last_seen", s.lastSeen),
		)
	}
	return len(idle)
}

// CloseAll stops every session and the idle sweep, on shutdown.
func (r *Registry) CloseAll() {
	r.mu.Lock()
	all := r.sessions
	r.sessions = make(map[string]*session)
	j := r.janitor
	r.janitor = nil
	r.mu.Unlock()

	if j != nil {
		j.Stop()
	}
	for _, s := range all {
		s.stop()
	}
}

// Len returns the number of open sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

func (r *Registry) ensureJanitorLocked() error {
	if r.janitor != nil {
		return nil
	}
	every := r.idleTTL / 2
	if every < minSweepEvery {
		every = minSweepEvery
	}
	j := r.newJanitor()
	if _, err := j.AddFunc(fmt.Sprintf("@every %s", every), func() { r.SweepIdle() }); err != nil {
		return fmt.Errorf("schedule idle session sweep: %w", err)
	}
	j.Start()
	r.janitor = j
	return nil
}

func (s *session) stop() {
	s.poller.Stop()
	s.cancel()
}
