package model

// Options configures Normalize. Options are constructed by the public
// adapter in pkg/model.
type Options struct {
	Labeler func(string) string
}

func defaultOptions() Options {
	return Options{
		Labeler: DefaultLabeler,
	}
}
