// Package live serves websocket form sessions. Each connection owns one
// form.Controller: field edits are validated as they arrive and the rendered
// field list, per-field errors, busy state and toasts are pushed back.
package live

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	theme "github.com/goliatone/go-theme"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/goliatone/go-formschema/pkg/form"
	"github.com/goliatone/go-formschema/pkg/notify"
	"github.com/goliatone/go-formschema/pkg/render"
)

// ThemeResolver picks the theme config for a connection from its upgrade
// request. A nil config renders with built-in templates.
type ThemeResolver func(r *http.Request) *theme.RendererConfig

// Option configures a Handler.
type Option func(*Handler)

// WithLogger sets the handler logger.
func WithLogger(l *zap.Logger) Option {
	return func(h *Handler) {
		if l != nil {
			h.logger = l
		}
	}
}

// WithNotifier adds a sink that receives every toast alongside the socket.
func WithNotifier(n notify.Notifier) Option {
	return func(h *Handler) {
		h.notifier = n
	}
}

// WithThemeResolver sets how the theme is chosen per connection.
func WithThemeResolver(fn ThemeResolver) Option {
	return func(h *Handler) {
		h.theme = fn
	}
}

// WithOriginPatterns allows cross-origin upgrades from the given host
// patterns.
func WithOriginPatterns(patterns ...string) Option {
	return func(h *Handler) {
		h.origins = append(h.origins, patterns...)
	}
}

// Handler upgrades requests and runs one session per connection.
type Handler struct {
	source    form.FieldSource
	submitter form.Submitter
	renderer  render.Renderer
	notifier  notify.Notifier
	theme     ThemeResolver
	origins   []string
	logger    *zap.Logger
}

// NewHandler builds a live handler. renderer produces the field markup sent
// in "fields" messages.
func NewHandler(source form.FieldSource, submitter form.Submitter, renderer render.Renderer, opts ...Option) *Handler {
	h := &Handler{
		source:    source,
		submitter: submitter,
		renderer:  renderer,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(h)
		}
	}
	return h
}

// ServeHTTP upgrades to a websocket and runs the message loop until the
// client goes away.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: h.origins,
	})
	if err != nil {
		h.logger.Warn("live: websocket accept", zap.Error(err))
		return
	}
	defer conn.CloseNow()

	ctx, cancel := context.WithCancel(r.Context())
	sess := newSession(conn, h.logger)
	defer func() {
		cancel()
		sess.wait()
	}()

	var themeCfg *theme.RendererConfig
	if h.theme != nil {
		themeCfg = h.theme(r)
	}

	ctrl := form.New(
		form.WithSubmitter(h.submitter),
		form.WithNotifier(notify.Multi(sess, h.notifier)),
		form.WithLogger(sess.logger),
	)

	sess.send(ctx, ServerMessage{Type: TypeSession, ID: sess.id})
	sess.logger.Debug("live: session started")

	ctrl.BeginLoading()
	if err := ctrl.LoadFields(ctx, h.source); err == nil {
		h.sendFields(ctx, sess, ctrl, themeCfg)
	}

	for {
		var msg ClientMessage
		if err := wsjson.Read(ctx, conn, &msg); err != nil {
			if status := websocket.CloseStatus(err); status != -1 {
				sess.logger.Debug("live: connection closed", zap.Int("status", int(status)))
			} else if !errors.Is(err, context.Canceled) {
				sess.logger.Debug("live: read", zap.Error(err))
			}
			return
		}

		switch msg.Type {
		case TypeChange:
			h.handleChange(ctx, sess, ctrl, msg)
		case TypeSubmit:
			h.handleSubmit(ctx, sess, ctrl)
		case TypePing:
			sess.send(ctx, ServerMessage{Type: TypePong})
		default:
			sess.send(ctx, ServerMessage{Type: TypeError, Message: "unknown message type: " + msg.Type})
		}
	}
}

func (h *Handler) sendFields(ctx context.Context, sess *session, ctrl *form.Controller, cfg *theme.RendererConfig) {
	html, err := h.renderer.Render(ctx, ctrl.Snapshot(), render.RenderOptions{
		Theme:      cfg,
		Registrar:  ctrl,
		FieldsOnly: true,
	})
	if err != nil {
		sess.logger.Error("live: render fields", zap.Error(err))
		sess.send(ctx, ServerMessage{Type: TypeError, Message: "could not render form"})
		return
	}
	sess.send(ctx, ServerMessage{Type: TypeFields, HTML: string(html)})
}

func (h *Handler) handleChange(ctx context.Context, sess *session, ctrl *form.Controller, msg ClientMessage) {
	violation, failed, err := ctrl.Change(msg.Key, msg.Value)
	if err != nil {
		sess.send(ctx, ServerMessage{Type: TypeError, Key: msg.Key, Message: err.Error()})
		return
	}
	sess.send(ctx, ServerMessage{
		Type:    TypeField,
		Key:     msg.Key,
		Invalid: failed,
		Error:   violation.Message,
	})
}

// handleSubmit runs the submission off the read loop so further messages
// (and a second, rejected submit) are still processed while it is in flight.
func (h *Handler) handleSubmit(ctx context.Context, sess *session, ctrl *form.Controller) {
	if ctrl.IsBusy() {
		return
	}
	sess.goSubmit(func() {
		sess.send(ctx, ServerMessage{Type: TypeBusy, Submitting: true})
		echo, err := ctrl.Submit(ctx)
		switch {
		case err == nil:
			sess.send(ctx, ServerMessage{Type: TypeSubmitted, Payload: echo})
		case errors.Is(err, form.ErrSubmitInProgress):
			return
		case !errors.Is(err, form.ErrInvalid):
			sess.logger.Debug("live: submit", zap.Error(err))
		}
		sess.send(ctx, ServerMessage{Type: TypeErrors, Errors: ctrl.Snapshot().Errors})
		sess.send(ctx, ServerMessage{Type: TypeBusy, Submitting: false})
	})
}

// session is the per-connection write side. It also forwards controller
// notifications as toast messages.
type session struct {
	id     string
	conn   *websocket.Conn
	logger *zap.Logger

	mu       sync.Mutex
	inflight sync.WaitGroup
}

var _ notify.Notifier = (*session)(nil)

func newSession(conn *websocket.Conn, logger *zap.Logger) *session {
	id := uuid.NewString()
	return &session{
		id:     id,
		conn:   conn,
		logger: logger.With(zap.String("session", id)),
	}
}

func (s *session) send(ctx context.Context, msg ServerMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := wsjson.Write(ctx, s.conn, msg); err != nil {
		s.logger.Debug("live: write", zap.String("type", msg.Type), zap.Error(err))
	}
}

// Notify forwards n as a toast message.
func (s *session) Notify(ctx context.Context, n notify.Notification) error {
	s.send(ctx, ServerMessage{Type: TypeToast, Notification: &n})
	return nil
}

func (s *session) goSubmit(fn func()) {
	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		fn()
	}()
}

func (s *session) wait() {
	s.inflight.Wait()
}
