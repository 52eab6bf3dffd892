package availability

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/require"

	"delivery-relay/internal/cache"
	"delivery-relay/internal/domain"
)

type fakeScheduler struct {
	mu      sync.Mutex
	specs   []string
	jobs    []func()
	started bool
	stopped bool
}

func (f *fakeScheduler) AddFunc(spec string, cmd func()) (cron.EntryID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.specs = append(f.specs, spec)
	f.jobs = append(f.jobs, cmd)
	return cron.EntryID(len(f.jobs)), nil
}

func (f *fakeScheduler) Start() {
	f.mu.Lock()
	f.started = true
	f.mu.Unlock()
}

func (f *fakeScheduler) Stop() context.Context {
	f.mu.Lock()
	f.stopped = true
	f.mu.Unlock()
	return context.Background()
}

func (f *fakeScheduler) fire() {
	f.mu.Lock()
	jobs := append([]func(){}, f.jobs...)
	f.mu.Unlock()
	for _, j := range jobs {
		j()
	}
}

type fetcherFunc func(context.Context, domain.Coordinate) (Result, error)

func (f fetcherFunc) Fresh(ctx context.Context, c domain.Coordinate) (Result, error) {
	return f(ctx, c)
}

type pollerHarness struct {
	poller  *Poller
	scheds  []*fakeScheduler
	mu      sync.Mutex
	fetches []domain.Coordinate
	results []Result
}

func newHarness(interval time.Duration) *pollerHarness {
	h := &pollerHarness{}
	fetch := fetcherFunc(func(_ context.Context, c domain.Coordinate) (Result, error) {
		h.mu.Lock()
		h.fetches = append(h.fetches, c)
		h.mu.Unlock()
		return Result{Kind: KindLive, Origin: c}, nil
	})
	h.poller = NewPoller(fetch, interval, func(r Result) {
		h.mu.Lock()
		h.results = append(h.results, r)
		h.mu.Unlock()
	}, nil)
	h.poller.newScheduler = func() scheduler {
		s := &fakeScheduler{}
		h.scheds = append(h.scheds, s)
		return s
	}
	return h
}

func (h *pollerHarness) fetchCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.fetches)
}

func TestClampInterval(t *testing.T) {
	t.Parallel()

	require.Equal(t, DefaultPollInterval, ClampInterval(0))
	require.Equal(t, MinPollInterval, ClampInterval(time.Second))
	require.Equal(t, MaxPollInterval, ClampInterval(time.Minute))
	require.Equal(t, 20*time.Second, ClampInterval(20*time.Second))
}

func TestPoller_TicksDeliverResults(t *testing.T) {
	t.Parallel()

	h := newHarness(0)
	origin := domain.Coordinate{Lat: 4, Lon: 9}
	require.NoError(t, h.poller.Start(context.Background(), origin))
	require.Len(t, h.scheds, 1)
	require.Equal(t, []string{"@every 15s"}, h.scheds[0].specs)
	require.True(t, h.scheds[0].started)

	h.scheds[0].fire()
	h.scheds[0].fire()
	require.Equal(t, 2, h.fetchCount())
	require.Len(t, h.results, 2)
	require.Equal(t, origin, h.results[0].Origin)
}

func TestPoller_NoFetchAfterStop(t *testing.T) {
	t.Parallel()

	h := newHarness(10 * time.Second)
	require.NoError(t, h.poller.Start(context.Background(), domain.Coordinate{Lat: 1, Lon: 1}))
	h.poller.Stop()
	h.poller.Stop()

	require.True(t, h.scheds[0].stopped)
	require.False(t, h.poller.Running())

	// a tick already queued by the scheduler must be a no-op
	h.scheds[0].fire()
	require.Equal(t, 0, h.fetchCount())
	require.Empty(t, h.results)
}

func TestPoller_RetargetRestartsWithNewOrigin(t *testing.T) {
	t.Parallel()

	h := newHarness(10 * time.Second)
	require.NoError(t, h.poller.Start(context.Background(), domain.Coordinate{Lat: 1, Lon: 1}))

	next := domain.Coordinate{Lat: 2, Lon: 2}
	require.NoError(t, h.poller.Retarget(next))
	require.Len(t, h.scheds, 2)
	require.True(t, h.scheds[0].stopped)

	h.scheds[0].fire()
	require.Equal(t, 0, h.fetchCount())

	h.scheds[1].fire()
	require.Equal(t, 1, h.fetchCount())
	require.Equal(t, next, h.fetches[0])
}

func TestPoller_RetargetWhileStoppedDoesNotStart(t *testing.T) {
	t.Parallel()

	h := newHarness(0)
	require.NoError(t, h.poller.Retarget(domain.Coordinate{Lat: 3, Lon: 3}))
	require.Empty(t, h.scheds)
	require.False(t, h.poller.Running())
}

func TestPoller_CanceledContextSkipsFetch(t *testing.T) {
	t.Parallel()

	h := newHarness(0)
	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, h.poller.Start(ctx, domain.Coordinate{Lat: 1, Lon: 1}))
	cancel()

	h.scheds[0].fire()
	require.Equal(t, 0, h.fetchCount())
}

func TestPoller_RealCronAcceptsSpec(t *testing.T) {
	t.Parallel()

	p := NewPoller(fetcherFunc(func(context.Context, domain.Coordinate) (Result, error) {
		return Result{}, nil
	}), 12*time.Second, nil, nil)
	require.NoError(t, p.Start(context.Background(), domain.Coordinate{Lat: 1, Lon: 1}))
	require.True(t, p.Running())
	p.Stop()
	require.False(t, p.Running())
}

func TestPoller_StopCancelsInFlightFetch(t *testing.T) {
	t.Parallel()

	entered := make(chan struct{})
	done := make(chan error, 1)
	var delivered bool
	p := NewPoller(fetcherFunc(func(ctx context.Context, _ domain.Coordinate) (Result, error) {
		close(entered)
		<-ctx.Done()
		done <- ctx.Err()
		return Result{}, ctx.Err()
	}), 0, func(Result) { delivered = true }, nil)
	sched := &fakeScheduler{}
	p.newScheduler = func() scheduler { return sched }

	require.NoError(t, p.Start(context.Background(), domain.Coordinate{Lat: 1, Lon: 1}))

	ticked := make(chan struct{})
	go func() {
		sched.fire()
		close(ticked)
	}()
	<-entered
	p.Stop()

	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("fetch was not cancelled by Stop")
	}
	<-ticked
	require.False(t, delivered)
}

func TestPoller_TicksBypassAvailabilityCache(t *testing.T) {
	t.Parallel()

	var (
		mu       sync.Mutex
		calls    int
		couriers = append([]domain.Courier(nil), twoCouriers...)
	)
	svc := NewService(listerFunc(func(context.Context, domain.Coordinate) ([]domain.Courier, error) {
		mu.Lock()
		defer mu.Unlock()
		calls++
		return append([]domain.Courier(nil), couriers...), nil
	}), cache.NewMemory(), Config{CacheTTL: time.Minute}, nil, nil)

	var results []Result
	p := NewPoller(svc, 15*time.Second, func(r Result) { results = append(results, r) }, nil)
	sched := &fakeScheduler{}
	p.newScheduler = func() scheduler { return sched }
	require.NoError(t, p.Start(context.Background(), domain.Coordinate{Lat: 4.05, Lon: 9.7}))
	defer p.Stop()

	sched.fire()

	// courier 2 goes offline between two ticks
	mu.Lock()
	couriers = couriers[:1]
	mu.Unlock()
	sched.fire()

	mu.Lock()
	require.Equal(t, 2, calls)
	mu.Unlock()
	require.Len(t, results, 2)
	require.Len(t, results[0].Couriers, 2)
	require.Len(t, results[1].Couriers, 1)
	require.Equal(t, int64(1), results[1].Couriers[0].ID)
}
