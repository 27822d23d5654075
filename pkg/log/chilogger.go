package log

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Logger returns chi middleware that logs each request through zap.
// Prometheus scrapes of /metrics land at debug so a long batch does not
// flood the console every scrape interval.
func Logger(l *zap.Logger, name string) func(next http.Handler) http.Handler {
	if l == nil {
		panic("log.Logger received a nil *zap.Logger")
	}

	logger := l.WithOptions(zap.AddCallerSkip(1)).Named(name)

	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			defer func() {
				statusCode := ww.Status()
				fields := []zap.Field{
					zap.String("http_method", r.Method),
					zap.String("http_path", r.URL.Path),
					zap.String("remote_addr", r.RemoteAddr),
					zap.Int("http_status_code", statusCode),
					zap.Int64("response_bytes", int64(ww.BytesWritten())),
					zap.Duration("latency", time.Since(start)),
				}

				switch {
				case statusCode >= 500:
					logger.Error("request completed", fields...)
				case statusCode >= 400:
					logger.Warn("request completed", fields...)
				case isScrape(r.Method, r.URL.Path):
					logger.Debug("request completed", fields...)
				default:
					logger.Info("request completed", fields...)
				}
			}()

			next.ServeHTTP(ww, r)
		}
		return http.HandlerFunc(fn)
	}
}

func isScrape(method string, path string) bool {
	return method == http.MethodGet && (path == "/metrics" || path == "/health")
}
