package render

import (
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formschema/pkg/notify"
)

// RenderOptions carry per-request data that does not belong to the form state
// itself.
type RenderOptions struct {
	// Action is the URL the no-script form posts to. Empty renders no action
	// attribute.
	Action string
	// Notifications are toasts to display with this render.
	Notifications []notify.Notification
	// Theme supplies resolved partials, tokens and asset URLs. Nil uses the
	// renderer's built-in templates.
	Theme *theme.RendererConfig
	// Registrar, when set, is handed every field as it is rendered.
	Registrar Registrar
	// FieldsOnly renders the field list without the page chrome. The live
	// runtime uses it to swap fields in place.
	FieldsOnly bool
}
