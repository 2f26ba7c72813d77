// Package pprofserver exposes runtime profiles on a separate listener.
package pprofserver

import (
	"crypto/subtle"
	"net"
	"net/http"
	"net/http/pprof"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"service-courier-tracking/internal/logx"
)

// Config stores pprof server settings. Requests from loopback skip auth;
// everything else needs basic auth and is denied when no credentials are set.
type Config struct {
	Addr string
	User string
	Pass string
}

var namedProfiles = []string{"heap", "goroutine", "allocs", "block", "mutex", "threadcreate"}

// New returns the pprof HTTP server.
func New(cfg Config, logger logx.Logger) *http.Server {
	return &http.Server{
		Addr:              cfg.Addr,
		Handler:           Handler(cfg, logger),
		ReadHeaderTimeout: 5 * time.Second,
	}
}

// Handler returns the guarded profile routes.
func Handler(cfg Config, logger logx.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(guard(cfg, logger))

	r.Route("/debug/pprof", func(r chi.Router) {
		r.HandleFunc("/", pprof.Index)
		r.HandleFunc("/profile", pprof.Profile)
		r.HandleFunc("/symbol", pprof.Symbol)
		r.HandleFunc("/trace", pprof.Trace)
		r.HandleFunc("/cmdline", pprof.Cmdline)
		for _, name := range namedProfiles {
			r.Handle("/"+name, pprof.Handler(name))
		}
	})
	return r
}

func guard(cfg Config, logger logx.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isLoopback(r.RemoteAddr) || validCredentials(r, cfg) {
				next.ServeHTTP(w, r)
				return
			}
			logger.Warn("pprof access denied",
				logx.Event("pprof_access_denied"),
				logx.String("remote_addr", r.RemoteAddr),
				logx.String("path", r.URL.Path),
			)
			w.Header().Set("WWW-Authenticate", `Basic realm="pprof"`)
			http.Error(w, "unauthorized", http.StatusUnauthorized)
		})
	}
}

func validCredentials(r *http.Request, cfg Config) bool {
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
	host := strings.TrimSpace(remoteAddr)
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}
