package middleware

import (
	"bytes"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/trace"
)

// SetChain wraps handler with the given middlewares, outermost first.
func SetChain(handler http.Handler, middlewares ...func(http.Handler) http.Handler) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		handler = middlewares[i](handler)
	}
	return handler
}

// SetRouteChain wraps a single route handler with per-route middlewares,
// outermost first.
func SetRouteChain(handler http.HandlerFunc, middlewares ...func(http.HandlerFunc) http.HandlerFunc) http.HandlerFunc {
	for i := len(middlewares) - 1; i >= 0; i-- {
		handler = middlewares[i](handler)
	}
	return handler
}

// HTTPResponseTraceInjection copies the active trace id onto the response so
// clients can reference it in support requests.
func HTTPResponseTraceInjection(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sc := trace.SpanContextFromContext(r.Context())
		if sc.HasTraceID() {
			w.Header().Set("X-Trace-Id", sc.TraceID().String())
		}
		next.ServeHTTP(w, r)
	})
}

type statusCapturingWriter struct {
	http.ResponseWriter
	statusCode int
}

func (w *statusCapturingWriter) WriteHeader(code int) {
	w.statusCode = code
	w.ResponseWriter.WriteHeader(code)
}

type HTTPRequestLogger struct {
	logger          *logrus.Logger
	debug           bool
	escalationLevel int
}

// NewHTTPRequestLogger logs every request; responses at or above
// escalationLevel are logged as errors.
func NewHTTPRequestLogger(logger *logrus.Logger, debug bool, escalationLevel int) *HTTPRequestLogger {
	return &HTTPRequestLogger{
		logger:          logger,
		debug:           debug,
		escalationLevel: escalationLevel,
	}
}

func (l *HTTPRequestLogger) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fields := logrus.Fields{
			"method": r.Method,
			"path":   r.URL.Path,
		}

		if l.debug {
			bodyBytes, _ := io.ReadAll(r.Body)
			r.Body.Close()
			r.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
			fields["body"] = string(bodyBytes)
		}

		cw := &statusCapturingWriter{ResponseWriter: w, statusCode: http.StatusOK}

		start := time.Now()
		next.ServeHTTP(cw, r)

		fields["status_code"] = cw.statusCode
		fields["duration"] = time.Since(start).String()

		entry := l.logger.WithContext(r.Context()).WithFields(fields)
		if cw.statusCode >= l.escalationLevel {
			entry.Error("http request")
			return
		}
		entry.Info("http request")
	})
}
