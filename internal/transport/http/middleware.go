package httptransport

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"keel-relay/internal/logging"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httplog/v3"
)

func APILogMiddleware() func(http.Handler) http.Handler {
	return accessLogMiddleware(logging.Writer())
}

// accessLogMiddleware never writes above warn; relay failures are logged at
// error by the handler.
func accessLogMiddleware(w io.Writer) func(http.Handler) http.Handler {
	return httplog.RequestLogger(
		slog.New(&levelCapHandler{
			Handler: slog.NewJSONHandler(w, &slog.HandlerOptions{}),
			max:     slog.LevelWarn,
		}),
		&httplog.Options{
			Level:              slog.LevelInfo,
			Schema:             httplog.Schema{ResponseStatus: "status", ResponseDuration: "duration_ms"},
			LogRequestBody:     func(*http.Request) bool { return false },
			LogResponseBody:    func(*http.Request) bool { return false },
			LogRequestHeaders:  []string{},
			LogResponseHeaders: []string{},
			LogExtraAttrs: func(req *http.Request, _ string, _ int) []slog.Attr {
				rc := chi.RouteContext(req.Context())
				route := req.URL.Path
				if rc != nil && rc.RoutePattern() != "" {
					route = rc.RoutePattern()
				}
				return []slog.Attr{
					slog.String("request_id", chimw.GetReqID(req.Context())),
					slog.String("method", req.Method),
					slog.String("route", route),
					slog.String("path", req.URL.Path),
				}
			},
		},
	)
}

type levelCapHandler struct {
	slog.Handler
	max slog.Level
}

func (h *levelCapHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.Handler.Enabled(ctx, min(level, h.max))
}

func (h *levelCapHandler) Handle(ctx context.Context, r slog.Record) error {
	if r.Level > h.max {
		r.Level = h.max
	}
	return h.Handler.Handle(ctx, r)
}

func (h *levelCapHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &levelCapHandler{Handler: h.Handler.WithAttrs(attrs), max: h.max}
}

func (h *levelCapHandler) WithGroup(name string) slog.Handler {
	return &levelCapHandler{Handler: h.Handler.WithGroup(name), max: h.max}
}

// RequestBodyCaptureMiddleware attaches up to maxCaptureBytes of the inbound
// body to the access log line. The handler still sees the full body.
func RequestBodyCaptureMiddleware(maxCaptureBytes int) func(http.Handler) http.Handler {
	if maxCaptureBytes <= 0 {
		maxCaptureBytes = 4096
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqBody, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
			if err != nil {
				reqBody = nil
			}
			r.Body = io.NopCloser(bytes.NewReader(reqBody))

			next.ServeHTTP(w, r)

			reqLog := reqBody
			if len(reqLog) > maxCaptureBytes {
				reqLog = reqLog[:maxCaptureBytes]
			}
			httplog.SetAttrs(r.Context(), slog.Any("request_body", parseMaybeJSON(reqLog)))
			httplog.SetAttrs(r.Context(), slog.Bool("request_body_truncated", len(reqBody) > maxCaptureBytes))
		})
	}
}

func parseMaybeJSON(b []byte) any {
	if len(b) == 0 {
		return ""
	}
	var out any
	if err := json.Unmarshal(b, &out); err == nil {
		return out
	}
	return string(b)
}
