package components

import "github.com/goliatone/go-formschema/pkg/model"

const (
	partialPrefix  = "forms."
	templatePrefix = "templates/components/"
)

// PartialKey is the theme partial that overrides the template of widget,
// e.g. "forms.select".
func PartialKey(widget model.Widget) string {
	return partialPrefix + string(widget)
}

// TemplateName is the built-in template of widget.
func TemplateName(widget model.Widget) string {
	return templatePrefix + string(widget) + ".tmpl"
}
