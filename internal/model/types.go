package model

// FieldType is the closed set of field kinds a schema may declare.
type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypeEmail    FieldType = "email"
	FieldTypeTel      FieldType = "tel"
	FieldTypeDate     FieldType = "date"
	FieldTypeDateTime FieldType = "datetime"
	FieldTypeTime     FieldType = "time"
	FieldTypeURL      FieldType = "url"
	FieldTypePassword FieldType = "password"
	FieldTypeHidden   FieldType = "hidden"
	FieldTypeNumber   FieldType = "number"
	FieldTypeSelect   FieldType = "select"
	FieldTypeCheckbox FieldType = "checkbox"
	FieldTypeRadio    FieldType = "radio"
	FieldTypeTextarea FieldType = "textarea"
)

// FieldTypes lists every declared field type in schema order.
func FieldTypes() []FieldType {
	return []FieldType{
		FieldTypeText,
		FieldTypeEmail,
		FieldTypeTel,
		FieldTypeDate,
		FieldTypeDateTime,
		FieldTypeTime,
		FieldTypeURL,
		FieldTypePassword,
		FieldTypeHidden,
		FieldTypeNumber,
		FieldTypeSelect,
		FieldTypeCheckbox,
		FieldTypeRadio,
		FieldTypeTextarea,
	}
}

// RequiresOptions reports whether the type renders a choice between options.
func (t FieldType) RequiresOptions() bool {
	return t == FieldTypeSelect || t == FieldTypeRadio
}

// RuleKind identifies a validation constraint. The same identifiers key the
// ErrorMessages map.
type RuleKind string

const (
	RuleRequired  RuleKind = "required"
	RulePattern   RuleKind = "pattern"
	RuleMinLength RuleKind = "minLength"
	RuleMaxLength RuleKind = "maxLength"
	RuleMin       RuleKind = "min"
	RuleMax       RuleKind = "max"
)

// Input checks run after the schema rules. They reject raw input the field
// cannot hold: text in a number field, or a value that is not an enabled
// option. Their messages may be set in ErrorMessages like any rule.
const (
	RuleNumber RuleKind = "number"
	RuleOption RuleKind = "option"
)

// RuleKinds returns the rule kinds in evaluation order.
func RuleKinds() []RuleKind {
	return []RuleKind{RuleRequired, RulePattern, RuleMinLength, RuleMaxLength, RuleMin, RuleMax}
}

// ErrorMessages maps a rule kind to the message shown when it fails.
type ErrorMessages map[RuleKind]string

// Option is a single choice of a select or radio field.
type Option struct {
	Label    string `json:"label" yaml:"label"`
	Value    string `json:"value" yaml:"value"`
	Disabled bool   `json:"disabled,omitempty" yaml:"disabled,omitempty"`
}

// FieldSchema describes one form field as served by the fields endpoint.
// Numeric bounds are pointers so an explicit zero is distinguishable from an
// absent bound.
type FieldSchema struct {
	Key           string        `json:"key" yaml:"key"`
	Type          FieldType     `json:"type" yaml:"type"`
	Label         string        `json:"label" yaml:"label"`
	Placeholder   string        `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Required      bool          `json:"required" yaml:"required"`
	Value         any           `json:"value,omitempty" yaml:"value,omitempty"`
	Disabled      bool          `json:"disabled,omitempty" yaml:"disabled,omitempty"`
	Pattern       string        `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	MinLength     int           `json:"minLength,omitempty" yaml:"minLength,omitempty"`
	MaxLength     int           `json:"maxLength,omitempty" yaml:"maxLength,omitempty"`
	Min           *float64      `json:"min,omitempty" yaml:"min,omitempty"`
	Max           *float64      `json:"max,omitempty" yaml:"max,omitempty"`
	Step          *float64      `json:"step,omitempty" yaml:"step,omitempty"`
	ErrorMessages ErrorMessages `json:"errorMessages,omitempty" yaml:"errorMessages,omitempty"`
	Options       []Option      `json:"options,omitempty" yaml:"options,omitempty"`
}

// Message returns the configured message for kind, or "" when absent.
func (f FieldSchema) Message(kind RuleKind) string {
	if f.ErrorMessages == nil {
		return ""
	}
	return f.ErrorMessages[kind]
}

// Payload is the flat key/value mapping sent to the submit endpoint.
type Payload map[string]any
