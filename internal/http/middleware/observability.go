package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"service-courier-tracking/internal/logx"
)

// HTTPMetrics holds the request collectors. Nil fields are skipped.
type HTTPMetrics struct {
	Requests *prometheus.CounterVec
	Duration *prometheus.HistogramVec
}

// Observability records request count and latency labelled by route
// pattern, and writes one access log line per request. Server errors are
// logged at error level, client errors at warn.
func Observability(logger logx.Logger, m HTTPMetrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			code := ww.Status()
			if code == 0 {
				code = http.StatusOK
			}
			elapsed := time.Since(start)
			labels := []string{r.Method, routePattern(r), strconv.Itoa(code)}

			if m.Requests != nil {
				m.Requests.WithLabelValues(labels...).Inc()
			}
			if m.Duration != nil {
				m.Duration.WithLabelValues(labels...).Observe(elapsed.Seconds())
			}

			fields := []logx.Field{
				logx.Event("http_request"),
				logx.String("req_id", chimw.GetReqID(r.Context())),
				logx.String("method", r.Method),
				logx.String("path", labels[1]),
				logx.Int("status", code),
				logx.Duration("duration", elapsed),
			}
			switch {
			case code >= http.StatusInternalServerError:
				logger.Error("http request", fields...)
			case code >= http.StatusBadRequest:
				logger.Warn("http request", fields...)
			default:
				logger.Info("http request", fields...)
			}
		})
	}
}

// routePattern keeps label cardinality bounded: /orders/{id}/tracking
// rather than one series per order.
func routePattern(r *http.Request) string {
	if rc := chi.RouteContext(r.Context()); rc != nil {
		if p := rc.RoutePattern(); p != "" {
			return p
		}
	}
	return r.URL.Path
}
