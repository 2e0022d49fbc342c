package tui

// OutputFormat selects what Render produces.
type OutputFormat string

const (
	// OutputFormatJSON renders the current payload as indented JSON.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatPrettyText renders a "Label: value" summary with inline
	// errors and toasts.
	OutputFormatPrettyText OutputFormat = "pretty"
)

// Theme holds the plain-text prefixes of prompts and status lines.
type Theme struct {
	PromptPrefix string
	InfoPrefix   string
	ErrorPrefix  string
}

// DefaultTheme marks status lines with "i" and validation errors with "x".
var DefaultTheme = Theme{
	InfoPrefix:  "i ",
	ErrorPrefix: "x ",
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithPromptDriver replaces the survey driver.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Renderer) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithOutputFormat selects the Render output.
func WithOutputFormat(format OutputFormat) Option {
	return func(r *Renderer) {
		if format != "" {
			r.outputFormat = format
		}
	}
}

// WithTheme replaces DefaultTheme.
func WithTheme(theme Theme) Option {
	return func(r *Renderer) {
		r.theme = theme
	}
}

// WithMaxAttempts caps the prompts per field; Collect fails with
// ErrTooManyAttempts once a field has been answered invalidly n times.
// n <= 0 means no cap.
func WithMaxAttempts(n int) Option {
	return func(r *Renderer) {
		r.maxAttempts = n
	}
}
