package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/google/uuid"
	middleware "github.com/oapi-codegen/nethttp-middleware"
	"github.com/rs/cors"
)

const (
	requestIdHeader = "X-Request-Id"
)

type middlewareFunc func(next http.Handler) http.Handler

// useMiddlewares wraps in order, so the last middleware given runs first.
func useMiddlewares(r http.Handler, middlewares ...middlewareFunc) http.Handler {
	s := r

	for _, mw := range middlewares {
		s = mw(s)
	}

	return s
}

func (a *API) requestIdMiddleware() middlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestId, err := uuid.Parse(r.Header.Get(requestIdHeader))
			if err != nil {
				requestId = uuid.New()
			}

			w.Header().Set(requestIdHeader, requestId.String())

			next.ServeHTTP(w, r.WithContext(ctxWithRequestId(r.Context(), requestId)))
		})
	}
}

func (a *API) requestLoggerMiddleware() middlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := a.logger
			if requestId, ok := getRequestIdFromCtx(r.Context()); ok {
				logger = logger.With(slog.String("request-id", requestId.String()))
			}

			next.ServeHTTP(w, r.WithContext(ctxWithLogger(r.Context(), logger)))
		})
	}
}

func (a *API) loggingMiddleware() middlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			loggingRW := newLoggingResponseWriter(w)

			next.ServeHTTP(loggingRW, r)

			a.getLoggerOrBaseLogger(r.Context()).InfoContext(r.Context(),
				"Access log",
				slog.String("latency", formatDuration(time.Since(start))),
				slog.Int64("request-content-length", r.ContentLength),
				slog.Int("resp-body-size", loggingRW.responseSize),
				slog.String("host", r.Host),
				slog.String("method", r.Method),
				slog.Int("status-code", loggingRW.statusCode),
				slog.String("path", r.URL.Path),
			)
		})
	}
}

func (a *API) openapiValidateMiddleware(swagger *openapi3.T) middlewareFunc {
	return middleware.OapiRequestValidatorWithOptions(swagger, &middleware.Options{
		ErrorHandlerWithOpts: func(ctx context.Context, err error, w http.ResponseWriter, r *http.Request, opts middleware.ErrorHandlerOpts) {
			var e Error

			var requestErr *openapi3filter.RequestError
			if errors.As(err, &requestErr) {
				e = Error{
					Message: err.Error(),
					Code:    InputValidationError,
				}
			} else if opts.StatusCode == http.StatusNotFound {
				e = Error{
					Message: "Route not found",
					Code:    NotFound,
				}
			} else {
				e = Error{
					Message: err.Error(),
					Code:    InternalError,
				}
			}
			jsonBody, err := json.Marshal(&e)
			if err != nil {
				a.getLoggerOrBaseLogger(ctx).Error("failed to marshal input validation error resp", "error", err)
				jsonBody = []byte("{\"message\": \"input is invalid\", \"code\": \"InputValidationError\"}")
			}

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(opts.StatusCode)
			w.Write(jsonBody)
		},
	})
}

func (a *API) corsMiddleware() middlewareFunc {
	var serverCors *cors.Cors

	switch a.env {
	case LOCAL:
		serverCors = cors.AllowAll()
	case PROD:
		serverCors = cors.New(cors.Options{
			AllowedOrigins: a.settings.AllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost},
			AllowedHeaders: []string{"Content-Type", requestIdHeader},
			ExposedHeaders: []string{requestIdHeader},
			MaxAge:         300,
		})
	}

	return serverCors.Handler
}

type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode   int
	responseSize int
}

func newLoggingResponseWriter(w http.ResponseWriter) *loggingResponseWriter {
	return &loggingResponseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

func (lrw *loggingResponseWriter) WriteHeader(statusCode int) {
	lrw.statusCode = statusCode
	lrw.ResponseWriter.WriteHeader(statusCode)
}

func (lrw *loggingResponseWriter) Write(data []byte) (int, error) {
	size, err := lrw.ResponseWriter.Write(data)
	lrw.responseSize += size
	return size, err
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (lrw *loggingResponseWriter) Unwrap() http.ResponseWriter {
	return lrw.ResponseWriter
}

// formatDuration formats a duration to one decimal point.
func formatDuration(d time.Duration) string {
	div := time.Duration(10)
	switch {
	case d > time.Second:
		d = d.Round(time.Second / div)
	case d > time.Millisecond:
		d = d.Round(time.Millisecond / div)
	case d > time.Microsecond:
		d = d.Round(time.Microsecond / div)
	case d > time.Nanosecond:
		d = d.Round(time.Nanosecond / div)
	}
	return d.String()
}
