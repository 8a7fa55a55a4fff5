package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/intunemindset/IM-BookingService/pkg/metrics"
)

// statusRecorder перехватывает статус ответа для метрик
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// MetricsMiddleware собирает HTTP-метрики: количество, длительность,
// число запросов в обработке. Лейбл path берется из шаблона роута,
// а не из сырого URL, чтобы не взрывать кардинальность
func MetricsMiddleware(collector *metrics.Metrics) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			path := r.URL.Path
			if route := mux.CurrentRoute(r); route != nil {
				if tmpl, err := route.GetPathTemplate(); err == nil {
					path = tmpl
				}
			}

			collector.HTTPRequestsInFlight.Inc()
			defer collector.HTTPRequestsInFlight.Dec()

			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			collector.HTTPRequestsTotal.
				WithLabelValues(r.Method, path, strconv.Itoa(rec.status)).Inc()
			collector.HTTPRequestDuration.
				WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
		})
	}
}
