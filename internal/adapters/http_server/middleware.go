package httpserver

import (
	"context"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"ski_planner/internal/adapters/observability"
)

// UserHeader carries the caller identity set by the auth gateway in front of the API.
const UserHeader = "X-User-ID"

type ctxKey int

const userKey ctxKey = iota

// Timeout answers 503 with a problem body once d has elapsed.
func Timeout(d time.Duration) func(http.Handler) http.Handler {
	body := `{"type":"about:blank","title":"Timeout","status":503,"detail":"request took too long"}`
	return func(next http.Handler) http.Handler { return http.TimeoutHandler(next, d, body) }
}

// ---- Identity middleware ----

// Identity requires UserHeader and stores the caller in the request context.
func Identity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uid := strings.TrimSpace(r.Header.Get(UserHeader))
		if uid == "" {
			writeProblem(w, http.StatusUnauthorized, "Unauthorized", "missing "+UserHeader+" header")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userKey, uid)))
	})
}

func userFrom(ctx context.Context) string {
	uid, _ := ctx.Value(userKey).(string)
	return uid
}

// ---- status-recording ResponseWriter ----

type srw struct {
	http.ResponseWriter
	status int
	wrote  bool
}

func (w *srw) WriteHeader(code int) {
	if !w.wrote {
		w.status = code
		w.wrote = true
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *srw) Write(b []byte) (int, error) {
	if !w.wrote {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

func (w *srw) Status() int {
	if w.status == 0 {
		return http.StatusOK
	}
	return w.status
}

// routeOf returns the matched chi pattern, or the raw path when nothing matched.
func routeOf(r *http.Request) string {
	if rc := chi.RouteContext(r.Context()); rc != nil {
		if p := rc.RoutePattern(); p != "" {
			return p
		}
	}
	return r.URL.Path
}

// ---- Metrics middleware ----

func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &srw{ResponseWriter: w}
		next.ServeHTTP(sw, r)
		observability.ObserveHTTP(routeOf(r), r.Method, sw.Status(), time.Since(start))
	})
}

// ---- Structured logging middleware ----

// Logger writes one line per request: error level for 5xx, warn for 4xx.
func Logger(l zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &srw{ResponseWriter: w}
			// Identity runs deeper in the chain; read the header directly.
			user := strings.TrimSpace(r.Header.Get(UserHeader))
			next.ServeHTTP(sw, r)

			status := sw.Status()
			ev := l.Info()
			switch {
			case status >= 500:
				ev = l.Error()
			case status >= 400:
				ev = l.Warn()
			}
			if user != "" {
				ev = ev.Str("user_id", user)
			}
			ev.Str("request_id", chimw.GetReqID(r.Context())).
				Str("route", routeOf(r)).
				Str("method", r.Method).
				Int("status", status).
				Dur("duration", time.Since(start)).
				Str("remote", remoteHost(r.RemoteAddr)).
				Msg("http_request")
		})
	}
}

// remoteHost strips the port. RealIP runs earlier and rewrites RemoteAddr.
func remoteHost(addr string) string {
	if host, _, err := net.SplitHostPort(addr); err == nil && host != "" {
		return host
	}
	return addr
}
