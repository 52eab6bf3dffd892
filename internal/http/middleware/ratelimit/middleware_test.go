package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	testlog "delivery-relay/internal/testutil"
)

type stubLimiter struct {
	allow bool
	wait  time.Duration
	keys  []string
}

func (s *stubLimiter) Allow(key string) (bool, time.Duration) {
	s.keys = append(s.keys, key)
	return s.allow, s.wait
}

func TestMiddleware_Allows_RequestPassesToNext(t *testing.T) {
	t.Parallel()

	nextCalled := 0
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled++
		w.WriteHeader(http.StatusOK)
	})

	lim := &stubLimiter{allow: true}
	h := New(nil, nil, lim).Handler()(next)

	r := httptest.NewRequest(http.MethodGet, "http://relay/orders/10", nil)
	r.RemoteAddr = "1.2.3.4:5678"
	w := httptest.NewRecorder()

	h.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 1, nextCalled)
	require.Equal(t, []string{"1.2.3.4"}, lim.keys)
}

func TestMiddleware_Blocks_Returns429AndIncrementsCounter(t *testing.T) {
	t.Parallel()

	nextCalled := 0
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled++
	})

	counter := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ratelimit_denied_total",
		Help: "denied requests",
	})
	rec := testlog.New()

	h := New(rec.Logger(), counter, &stubLimiter{wait: 2500 * time.Millisecond}).Handler()(next)

	r := httptest.NewRequest(http.MethodPost, "http://relay/assignment/sessions/x/confirm", nil)
	r.RemoteAddr = "1.2.3.4:5678"
	w := httptest.NewRecorder()

	h.ServeHTTP(w, r)

	require.Equal(t, 0, nextCalled)
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	require.Equal(t, "application/json", w.Header().Get("Content-Type"))
	require.Equal(t, "3", w.Header().Get("Retry-After"))
	require.JSONEq(t, rejectBody, w.Body.String())
	require.InDelta(t, 1, testutil.ToFloat64(counter), 1e-9)

	e, ok := rec.Find("warn", "rate limit exceeded")
	require.True(t, ok)
	ip, _ := e.Field("ip")
	require.Equal(t, "1.2.3.4", ip)
}

func TestRetryAfterSeconds_AtLeastOne(t *testing.T) {
	t.Parallel()

	require.Equal(t, 1, retryAfterSeconds(0))
	require.Equal(t, 1, retryAfterSeconds(0.2))
	require.Equal(t, 2, retryAfterSeconds(1.01))
}

func TestClientIP(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"10.0.0.7:443":   "10.0.0.7",
		"[::1]:8080":     "::1",
		"not-a-hostport": "not-a-hostport",
		"":               "unknown",
	}
	for addr, want := range cases {
		r := httptest.NewRequest(http.MethodGet, "http://relay/", nil)
		r.RemoteAddr = addr
		require.Equal(t, want, clientIP(r), addr)
	}
}
