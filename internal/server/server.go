// Package server hosts the mock form backend: the JSON API, the HTML page
// with its live websocket sessions, the no-script form post and the OpenAPI
// description.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	theme "github.com/goliatone/go-theme"
	"go.uber.org/zap"

	"github.com/goliatone/go-formschema/internal/live"
	"github.com/goliatone/go-formschema/internal/theming"
	"github.com/goliatone/go-formschema/pkg/api"
	"github.com/goliatone/go-formschema/pkg/model"
	"github.com/goliatone/go-formschema/pkg/notify"
	"github.com/goliatone/go-formschema/pkg/openapi"
	"github.com/goliatone/go-formschema/pkg/render"
	"github.com/goliatone/go-formschema/pkg/renderers/tui"
	"github.com/goliatone/go-formschema/pkg/renderers/vanilla"
)

// Route paths besides the API endpoints in package api.
const (
	PathPage    = "/"
	PathStatic  = "/static"
	PathLive    = "/api/live"
	PathOpenAPI = "/openapi.json"
	PathHealth  = "/healthz"
	PathAssets  = "/assets"
)

// Option configures a Server.
type Option func(*Server)

// WithDelay sets the artificial delay of the API and live sessions.
func WithDelay(d time.Duration) Option {
	return func(s *Server) {
		s.delay = d
	}
}

// WithLogger sets the server logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithThemeSelector selects themes from the "theme" and "variant" query
// parameters, falling back to the selector's defaults.
func WithThemeSelector(sel *theming.Selector) Option {
	return func(s *Server) {
		s.themes = sel
	}
}

// WithNotifier adds a sink receiving every toast raised by server-side
// controllers.
func WithNotifier(n notify.Notifier) Option {
	return func(s *Server) {
		s.notifier = n
	}
}

// Server wires the backend, renderers and routes.
type Server struct {
	fields   []model.FieldSchema
	delay    time.Duration
	logger   *zap.Logger
	themes   *theming.Selector
	notifier notify.Notifier

	backend   *Backend
	shell     render.Renderer
	renderers *render.Registry
	live      *live.Handler
	openapi   []byte
	router    chi.Router
}

// New validates fields and assembles the server.
func New(fields []model.FieldSchema, opts ...Option) (*Server, error) {
	if err := model.ValidateFields(fields); err != nil {
		return nil, fmt.Errorf("server: %w", err)
	}

	s := &Server{
		fields: fields,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	s.backend = NewBackend(fields, s.delay)

	shell, err := vanilla.New(vanilla.WithLiveEndpoint(PathLive))
	if err != nil {
		return nil, fmt.Errorf("server: %w", err)
	}
	s.shell = shell

	static, err := vanilla.New()
	if err != nil {
		return nil, fmt.Errorf("server: %w", err)
	}
	s.renderers = render.NewRegistry()
	s.renderers.MustRegister(static)
	s.renderers.MustRegister(tui.New(tui.WithOutputFormat(tui.OutputFormatPrettyText)))

	s.live = live.NewHandler(s.backend, s.backend, static,
		live.WithLogger(s.logger.Named("live")),
		live.WithNotifier(s.notifier),
		live.WithThemeResolver(s.resolveTheme),
	)

	doc, err := openapi.MarshalDocument(openapi.Info{}, fields)
	if err != nil {
		return nil, fmt.Errorf("server: %w", err)
	}
	s.openapi = doc

	s.router = s.routes()
	return s, nil
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger(s.logger.Named("http")))
	r.Use(middleware.Recoverer)
	r.Use(delayOverride)

	r.HandleFunc(api.PathFields, s.handleFields)
	r.HandleFunc(api.PathSubmit, s.handleSubmit)
	r.Get(PathLive, s.live.ServeHTTP)

	r.Get(PathPage, s.handlePage)
	r.Post(PathPage, s.handlePost)
	r.Get(PathStatic, s.handleStatic)

	r.Get(PathOpenAPI, s.handleOpenAPI)
	r.Get(PathHealth, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle(PathAssets+"/*", http.StripPrefix(PathAssets+"/", http.FileServer(http.FS(vanilla.AssetsFS()))))
	return r
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Backend exposes the mock backend, e.g. for in-process clients.
func (s *Server) Backend() *Backend {
	return s.backend
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// within grace.
func (s *Server) ListenAndServe(ctx context.Context, addr string, grace time.Duration) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("server: listen: %w", err)
	}
	return s.Serve(ctx, listener, grace)
}

// Serve is ListenAndServe over an existing listener.
func (s *Server) Serve(ctx context.Context, listener net.Listener, grace time.Duration) error {
	httpServer := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", zap.String("addr", listener.Addr().String()))
		errCh <- httpServer.Serve(listener)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server: serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()
	s.logger.Info("server shutting down", zap.Duration("grace", grace))
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	return nil
}

func (s *Server) resolveTheme(r *http.Request) *theme.RendererConfig {
	if s.themes == nil {
		return nil
	}
	query := r.URL.Query()
	cfg, err := s.themes.Resolve(query.Get("theme"), query.Get("variant"), vanilla.DefaultPartials())
	if err != nil {
		s.logger.Debug("theme fallback", zap.Error(err))
		cfg, err = s.themes.Resolve("", "", vanilla.DefaultPartials())
		if err != nil {
			return nil
		}
	}
	return cfg
}
