// Package pprofserver exposes runtime profiles under /debug, open to
// loopback callers and to basic-auth holders otherwise.
package pprofserver

import (
	"crypto/subtle"
	"net"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// Config stores profiling endpoint settings.
type Config struct {
	Enabled bool
	User    string
	Pass    string
}

// Mount registers the profiler under /debug when enabled.
func Mount(r chi.Router, cfg Config) {
	if !cfg.Enabled {
		return
	}
	r.With(Guard(cfg)).Mount("/debug", chimw.Profiler())
}

// Guard admits loopback requests and requests carrying the configured
// credentials. Without credentials only loopback is admitted.
func Guard(cfg Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isLoopback(r.RemoteAddr) || authorized(r, cfg) {
				next.ServeHTTP(w, r)
				return
			}
			w.Header().Set("WWW-Authenticate", `Basic realm="relay-debug"`)
			http.Error(w, "unauthorized", http.StatusUnauthorized)
		})
	}
}

func authorized(r *http.Request, cfg Config) bool {
	if cfg.User == "" || cfg.Pass == "" {
		return false
	}
	u, p, ok := r.BasicAuth()
	return ok && secureEq(u, cfg.User) && secureEq(p, cfg.Pass)
}

func secureEq(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

func isLoopback(remoteAddr string) bool {
	host := remoteAddr
	if h, _, err := net.SplitHostPort(remoteAddr); err == nil {
		host = h
	}
	ip := net.ParseIP(strings.TrimSpace(host))
	return ip != nil && ip.IsLoopback()
}
