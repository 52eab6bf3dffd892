package pprofserver

import (
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

func teapot() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
}

func basic(u, p string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(u+":"+p))
}

func TestGuard(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		cfg    Config
		remote string
		auth   string
		want   int
	}{
		{"loopback without creds", Config{}, "127.0.0.1:12345", "", http.StatusTeapot},
		{"ipv6 loopback", Config{}, "[::1]:12345", "", http.StatusTeapot},
		{"remote, nothing configured", Config{}, "8.8.8.8:54444", basic("", ""), http.StatusUnauthorized},
		{"remote, wrong password", Config{User: "u", Pass: "p"}, "8.8.8.8:54444", basic("u", "WRONG"), http.StatusUnauthorized},
		{"remote, no header", Config{User: "u", Pass: "p"}, "8.8.8.8:54444", "", http.StatusUnauthorized},
		{"remote, right creds", Config{User: "u", Pass: "p"}, "8.8.8.8:54444", basic("u", "p"), http.StatusTeapot},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, "http://relay/debug/pprof/", nil)
			req.RemoteAddr = tc.remote
			if tc.auth != "" {
				req.Header.Set("Authorization", tc.auth)
			}
			rr := httptest.NewRecorder()
			Guard(tc.cfg)(teapot()).ServeHTTP(rr, req)

			require.Equal(t, tc.want, rr.Code)
			if tc.want == http.StatusUnauthorized {
				require.NotEmpty(t, rr.Header().Get("WWW-Authenticate"))
			}
		})
	}
}

func TestMount_DisabledRegistersNothing(t *testing.T) {
	t.Parallel()

	r := chi.NewRouter()
	Mount(r, Config{})

	req := httptest.NewRequest(http.MethodGet, "/debug/pprof/", nil)
	req.RemoteAddr = "127.0.0.1:1"
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	require.Equal(t, http.StatusNotFound, rr.Code)
}

func TestMount_EnabledServesVars(t *testing.T) {
	t.Parallel()

	r := chi.NewRouter()
	Mount(r, Config{Enabled: true})

	req := httptest.NewRequest(http.MethodGet, "/debug/vars", nil)
	req.RemoteAddr = "127.0.0.1:1"
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
}
