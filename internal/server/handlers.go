package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/goliatone/go-formschema/pkg/api"
	"github.com/goliatone/go-formschema/pkg/form"
	"github.com/goliatone/go-formschema/pkg/model"
	"github.com/goliatone/go-formschema/pkg/notify"
	"github.com/goliatone/go-formschema/pkg/render"
)

const (
	maxBodyBytes       = 1 << 20
	messageInvalidJSON = "Invalid JSON body"
	messageCancelled   = "Request cancelled"
)

func (s *Server) handleFields(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.methodNotAllowed(w, r, http.MethodGet)
		return
	}
	fields, err := s.backend.Fields(r.Context())
	if err != nil {
		s.writeJSON(w, http.StatusServiceUnavailable, api.Fail(messageCancelled))
		return
	}
	s.writeJSON(w, http.StatusOK, api.OK(fields))
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.methodNotAllowed(w, r, http.MethodPost)
		return
	}

	var payload model.Payload
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&payload); err != nil || payload == nil {
		s.writeJSON(w, http.StatusBadRequest, api.Fail(messageInvalidJSON))
		return
	}

	echo, err := s.backend.Submit(r.Context(), payload)
	if err != nil {
		s.writeJSON(w, http.StatusServiceUnavailable, api.Fail(messageCancelled))
		return
	}
	s.writeJSON(w, http.StatusOK, api.OK(echo))
}

// handlePage serves the loading shell; the runtime script fetches the fields
// over the live endpoint.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	ctrl := form.New()
	ctrl.BeginLoading()
	s.render(w, r, s.shell, ctrl.Snapshot(), render.RenderOptions{
		Action: PathPage,
		Theme:  s.resolveTheme(r),
	}, http.StatusOK)
}

// handleStatic renders the loaded form with the renderer named by the
// "renderer" query parameter.
func (s *Server) handleStatic(w http.ResponseWriter, r *http.Request) {
	renderer, err := s.renderers.Get(strings.TrimSpace(r.URL.Query().Get("renderer")))
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	ctrl := s.newController(nil)
	ctrl.Load(s.backend.Schema())
	s.render(w, r, renderer, ctrl.Snapshot(), render.RenderOptions{
		Action:    PathPage,
		Theme:     s.resolveTheme(r),
		Registrar: ctrl,
	}, http.StatusOK)
}

// handlePost processes a plain form post with a fresh controller and
// re-renders the form with inline errors or the resulting toast.
func (s *Server) handlePost(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form body", http.StatusBadRequest)
		return
	}

	recorder := notify.NewRecorder()
	ctrl := s.newController(recorder)
	ctrl.Load(s.backend.Schema())

	for _, field := range s.backend.Schema() {
		if field.Disabled {
			continue
		}
		// Unchecked checkboxes and unselected radios are absent from the
		// post body and count as empty.
		if _, _, err := ctrl.Change(field.Key, r.PostForm.Get(field.Key)); err != nil {
			s.logger.Warn("form post change", zap.String("key", field.Key), zap.Error(err))
		}
	}

	status := http.StatusOK
	if _, err := ctrl.Submit(r.Context()); err != nil {
		switch {
		case errors.Is(err, form.ErrInvalid):
			status = http.StatusUnprocessableEntity
		default:
			status = http.StatusBadGateway
		}
	}

	renderer, err := s.renderers.Get("")
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	s.render(w, r, renderer, ctrl.Snapshot(), render.RenderOptions{
		Action:        PathPage,
		Notifications: recorder.Drain(),
		Theme:         s.resolveTheme(r),
		Registrar:     ctrl,
	}, status)
}

func (s *Server) handleOpenAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(s.openapi)
}

func (s *Server) newController(n notify.Notifier) *form.Controller {
	return form.New(
		form.WithSubmitter(s.backend),
		form.WithNotifier(notify.Multi(n, s.notifier)),
		form.WithLogger(s.logger.Named("form")),
	)
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, renderer render.Renderer, state form.State, opts render.RenderOptions, status int) {
	body, err := renderer.Render(r.Context(), state, opts)
	if err != nil {
		s.logger.Error("render", zap.String("renderer", renderer.Name()), zap.Error(err))
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", renderer.ContentType())
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// methodNotAllowed answers after the same artificial delay as a served
// request. A request cancelled while waiting gets no response.
func (s *Server) methodNotAllowed(w http.ResponseWriter, r *http.Request, allowed ...string) {
	if err := s.backend.wait(r.Context()); err != nil {
		return
	}
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	s.writeJSON(w, http.StatusMethodNotAllowed, api.Fail(api.MessageMethodNotAllowed))
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	if err := api.WriteJSON(w, status, v); err != nil {
		s.logger.Warn("write response", zap.Error(err))
	}
}
