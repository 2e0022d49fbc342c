package form

import "errors"

var (
	// ErrNotLoaded is returned by handlers that need a field list before one
	// has been loaded.
	ErrNotLoaded = errors.New("form: fields not loaded")
	// ErrUnknownField is returned when a handler receives a key that is not
	// part of the loaded schema.
	ErrUnknownField = errors.New("form: unknown field")
	// ErrInvalid is returned by Submit when at least one field fails
	// validation. No submission is attempted.
	ErrInvalid = errors.New("form: validation failed")
	// ErrSubmitInProgress is returned by Submit while a previous submission
	// is still outstanding.
	ErrSubmitInProgress = errors.New("form: submit in progress")
	// ErrNoSubmitter is returned by Submit when the controller has no
	// Submitter configured.
	ErrNoSubmitter = errors.New("form: submitter not configured")
)

// userMessage extracts a human message from errors that carry one (for
// example api.Error). Other errors yield "".
func userMessage(err error) string {
	var carrier interface{ ErrorMessage() string }
	if errors.As(err, &carrier) {
		return carrier.ErrorMessage()
	}
	return ""
}
