// Package httpapi exposes a replay.Controller over HTTP: JSON endpoints for
// the catalog and transport commands, and a server-sent event stream of
// every frame the session reaches.
package httpapi

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/katalvlaran/stepwise/apikey"
	"github.com/katalvlaran/stepwise/catalog"
	"github.com/katalvlaran/stepwise/ratelimit"
	"github.com/katalvlaran/stepwise/replay"
)

// SessionHeader optionally names the session a command targets. A command
// carrying an outdated id is refused with 409 instead of acting on the
// newer session.
const SessionHeader = "X-Stepwise-Session"

// ErrOptionViolation reports an invalid Option or missing collaborator.
var ErrOptionViolation = errors.New("httpapi: invalid option")

// Options configures a Server.
type Options struct {
	Logger      *slog.Logger
	Limiter     *ratelimit.Limiter
	Keeper      *apikey.Keeper
	EventBuffer int
	err         error
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns slog.Default(), no quota and no credential store.
func DefaultOptions() Options {
	return Options{Logger: slog.Default(), EventBuffer: 64}
}

// WithLogger sets the request and broker logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithLimiter enables the /v1/quota endpoints. The limiter meters
// generative-text requests made by clients; replay commands never count.
func WithLimiter(l *ratelimit.Limiter) Option {
	return func(o *Options) { o.Limiter = l }
}

// WithKeeper enables the /v1/apikey endpoints.
func WithKeeper(k *apikey.Keeper) Option {
	return func(o *Options) { o.Keeper = k }
}

// WithEventBuffer sets the per-subscriber event queue length.
func WithEventBuffer(n int) Option {
	return func(o *Options) {
		if n < 1 {
			o.err = fmt.Errorf("%w: event buffer must be positive, got %d", ErrOptionViolation, n)
			return
		}
		o.EventBuffer = n
	}
}

// Server binds a controller and a catalog to HTTP routes.
type Server struct {
	ctrl   *replay.Controller
	cat    *catalog.Catalog
	opts   Options
	log    *slog.Logger
	events *broker
	cancel func()
}

// New subscribes to ctrl and returns a Server. Call Close to unsubscribe.
func New(ctrl *replay.Controller, cat *catalog.Catalog, opts ...Option) (*Server, error) {
	if ctrl == nil || cat == nil {
		return nil, fmt.Errorf("%w: controller and catalog are required", ErrOptionViolation)
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	s := &Server{ctrl: ctrl, cat: cat, opts: o, log: o.Logger, events: newBroker(o.EventBuffer, o.Logger)}
	s.cancel = ctrl.Subscribe(s.events.publish)

	return s, nil
}

// Close detaches from the controller and ends every event stream.
func (s *Server) Close() {
	s.cancel()
	s.events.close()
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/v1", func(r chi.Router) {
		r.Get("/scenarios", s.handleScenarios)
		r.Get("/scenarios/{name}", s.handleScenario)

		r.Route("/session", func(r chi.Router) {
			r.Get("/", s.handleSession)
			r.Get("/events", s.handleEvents)
			r.Get("/listing", s.handleListing)

			r.Post("/", s.handleLoad)

			r.Group(func(r chi.Router) {
				r.Use(s.sameSession)
				r.Post("/play", s.handlePlay)
				r.Post("/pause", s.handlePause)
				r.Post("/forward", s.handleForward)
				r.Post("/backward", s.handleBackward)
				r.Post("/reset", s.handleReset)
				r.Post("/seek", s.handleSeek)
				r.Post("/speed", s.handleSpeed)
			})
		})

		r.Get("/quota", s.handleQuota)
		r.Post("/quota", s.handleQuotaRecord)

		r.Route("/apikey", func(r chi.Router) {
			r.Get("/", s.handleKeyPresence)
			r.Put("/", s.handleKeySave)
			r.Delete("/", s.handleKeyClear)
		})
	})

	return r
}

// requestLogger logs one structured line per request.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"elapsed", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
