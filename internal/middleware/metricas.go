package middleware

import (
	"net/http"
	"time"

	"github.com/rafaelgpo/microblog/internal/metrics"
)

// NewMetricasMiddleware retorna o middleware que registra o código de
// status e a latência de cada requisição no coletor.
func NewMetricasMiddleware(collector metrics.MetricsCollector) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			rec := &statusRecorder{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
			}

			next.ServeHTTP(rec, r)

			collector.RecordHTTPStatus(rec.statusCode)
			collector.RecordHTTPLatency(time.Since(start))
		})
	}
}
