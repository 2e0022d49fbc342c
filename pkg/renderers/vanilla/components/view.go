package components

// FieldView is the template-facing shape of one field. Every value is
// pre-formatted as a string so templates never format numbers themselves.
type FieldView struct {
	ID          string       `json:"id"`
	Key         string       `json:"key"`
	Type        string       `json:"type"`
	Widget      string       `json:"widget"`
	InputType   string       `json:"input_type"`
	Label       string       `json:"label"`
	Placeholder string       `json:"placeholder,omitempty"`
	Value       string       `json:"value"`
	Checked     bool         `json:"checked"`
	Required    bool         `json:"required"`
	Disabled    bool         `json:"disabled"`
	Hidden      bool         `json:"hidden"`
	Invalid     bool         `json:"invalid"`
	Error       string       `json:"error"`
	Min         string       `json:"min,omitempty"`
	Max         string       `json:"max,omitempty"`
	Step        string       `json:"step,omitempty"`
	Options     []OptionView `json:"options,omitempty"`
}

// OptionView is one choice of a select or radio field.
type OptionView struct {
	Label    string `json:"label"`
	Value    string `json:"value"`
	Disabled bool   `json:"disabled"`
	Selected bool   `json:"selected"`
}
