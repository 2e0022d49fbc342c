package form

import (
	"maps"
	"slices"

	"github.com/goliatone/go-formschema/pkg/model"
)

// Phase tracks where a form is in its lifecycle.
type Phase string

const (
	PhaseIdle         Phase = "idle"
	PhaseLoading      Phase = "loading"
	PhaseLoaded       Phase = "loaded"
	PhaseSubmitting   Phase = "submitting"
	PhaseSubmitted    Phase = "submitted"
	PhaseSubmitFailed Phase = "submit_failed"
)

// State is a point-in-time copy of a controller's FormState. A key present in
// Errors means the field is invalid, even if its message is empty.
type State struct {
	Phase      Phase               `json:"phase"`
	Fields     []model.FieldSchema `json:"fields,omitempty"`
	Values     map[string]any      `json:"values"`
	Errors     map[string]string   `json:"errors"`
	Loading    bool                `json:"loading"`
	Submitting bool                `json:"submitting"`
}

// HasError reports whether key currently has an error.
func (s State) HasError(key string) bool {
	_, ok := s.Errors[key]
	return ok
}

// Valid reports whether no field has an error.
func (s State) Valid() bool {
	return len(s.Errors) == 0
}

// Value returns the current value of key.
func (s State) Value(key string) any {
	return s.Values[key]
}

func (s State) clone() State {
	return State{
		Phase:      s.Phase,
		Fields:     slices.Clone(s.Fields),
		Values:     maps.Clone(s.Values),
		Errors:     maps.Clone(s.Errors),
		Loading:    s.Loading,
		Submitting: s.Submitting,
	}
}
