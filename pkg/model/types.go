package model

import internalmodel "github.com/goliatone/go-formschema/internal/model"

// FieldType re-exports the internal FieldType enumeration.
type FieldType = internalmodel.FieldType

const (
	FieldTypeText     = internalmodel.FieldTypeText
	FieldTypeEmail    = internalmodel.FieldTypeEmail
	FieldTypeTel      = internalmodel.FieldTypeTel
	FieldTypeDate     = internalmodel.FieldTypeDate
	FieldTypeDateTime = internalmodel.FieldTypeDateTime
	FieldTypeTime     = internalmodel.FieldTypeTime
	FieldTypeURL      = internalmodel.FieldTypeURL
	FieldTypePassword = internalmodel.FieldTypePassword
	FieldTypeHidden   = internalmodel.FieldTypeHidden
	FieldTypeNumber   = internalmodel.FieldTypeNumber
	FieldTypeSelect   = internalmodel.FieldTypeSelect
	FieldTypeCheckbox = internalmodel.FieldTypeCheckbox
	FieldTypeRadio    = internalmodel.FieldTypeRadio
	FieldTypeTextarea = internalmodel.FieldTypeTextarea
)

// RuleKind re-exports the validation rule identifiers.
type RuleKind = internalmodel.RuleKind

const (
	RuleRequired  = internalmodel.RuleRequired
	RulePattern   = internalmodel.RulePattern
	RuleMinLength = internalmodel.RuleMinLength
	RuleMaxLength = internalmodel.RuleMaxLength
	RuleMin       = internalmodel.RuleMin
	RuleMax       = internalmodel.RuleMax
	RuleNumber    = internalmodel.RuleNumber
	RuleOption    = internalmodel.RuleOption
)

// Widget re-exports the widget families.
type Widget = internalmodel.Widget

const (
	WidgetInput    = internalmodel.WidgetInput
	WidgetSelect   = internalmodel.WidgetSelect
	WidgetCheckbox = internalmodel.WidgetCheckbox
	WidgetRadio    = internalmodel.WidgetRadio
	WidgetTextarea = internalmodel.WidgetTextarea
)

type (
	FieldSchema           = internalmodel.FieldSchema
	Option                = internalmodel.Option
	ErrorMessages         = internalmodel.ErrorMessages
	Payload               = internalmodel.Payload
	FieldError            = internalmodel.FieldError
	UnknownFieldTypeError = internalmodel.UnknownFieldTypeError
)

// FieldTypes lists every declared field type.
func FieldTypes() []FieldType { return internalmodel.FieldTypes() }

// RuleKinds lists rule kinds in evaluation order.
func RuleKinds() []RuleKind { return internalmodel.RuleKinds() }

// Widgets lists the widget families.
func Widgets() []Widget { return internalmodel.Widgets() }

// WidgetFor maps a field type to its widget family and panics on unknown
// types.
func WidgetFor(t FieldType) Widget { return internalmodel.WidgetFor(t) }

// InputType returns the native input type for single-line widgets.
func InputType(t FieldType) string { return internalmodel.InputType(t) }

// ValidateFields checks field list invariants (unique keys, options, known
// types, compilable patterns).
func ValidateFields(fields []FieldSchema) error { return internalmodel.ValidateFields(fields) }

// Float returns a pointer to v, handy when declaring numeric bounds.
func Float(v float64) *float64 { return &v }
