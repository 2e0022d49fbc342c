package template

import "io"

// TemplateRenderer renders named or inline templates. Each method returns the
// output and also copies it to any extra writers.
type TemplateRenderer interface {
	// Render treats nameOrSource as inline source when it contains template
	// tags, otherwise as a template name.
	Render(nameOrSource string, data any, out ...io.Writer) (string, error)
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(source string, data any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
	// GlobalContext merges data into the context of every later render.
	GlobalContext(data any) error
}
