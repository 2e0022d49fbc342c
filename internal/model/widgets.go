package model

import "fmt"

// Widget is the concrete input family a field type renders as.
type Widget string

const (
	WidgetInput    Widget = "input"
	WidgetSelect   Widget = "select"
	WidgetCheckbox Widget = "checkbox"
	WidgetRadio    Widget = "radio"
	WidgetTextarea Widget = "textarea"
)

// Widgets lists the widget families in render order.
func Widgets() []Widget {
	return []Widget{WidgetInput, WidgetSelect, WidgetCheckbox, WidgetRadio, WidgetTextarea}
}

// UnknownFieldTypeError is raised (as a panic value) when a schema declares a
// type the renderers do not know. It signals schema/renderer drift.
type UnknownFieldTypeError struct {
	Type FieldType
}

func (e UnknownFieldTypeError) Error() string {
	return fmt.Sprintf("model: unhandled field type %q", string(e.Type))
}

// WidgetFor maps a field type to its widget family. Every declared type maps
// to exactly one widget; anything else panics with UnknownFieldTypeError.
func WidgetFor(t FieldType) Widget {
	switch t {
	case FieldTypeText, FieldTypeEmail, FieldTypeTel, FieldTypeDate, FieldTypeDateTime,
		FieldTypeTime, FieldTypeURL, FieldTypePassword, FieldTypeHidden, FieldTypeNumber:
		return WidgetInput
	case FieldTypeSelect:
		return WidgetSelect
	case FieldTypeCheckbox:
		return WidgetCheckbox
	case FieldTypeRadio:
		return WidgetRadio
	case FieldTypeTextarea:
		return WidgetTextarea
	}
	panic(UnknownFieldTypeError{Type: t})
}

// InputType returns the native input type used by single-line widgets.
// Email, tel and url stay plain text so the pattern rule owns their format.
func InputType(t FieldType) string {
	switch t {
	case FieldTypeDate:
		return "date"
	case FieldTypeDateTime:
		return "datetime-local"
	case FieldTypeTime:
		return "time"
	case FieldTypePassword:
		return "password"
	case FieldTypeNumber:
		return "number"
	default:
		return "text"
	}
}

// IsKnown reports whether t is one of the declared field types.
func (t FieldType) IsKnown() bool {
	for _, known := range FieldTypes() {
		if known == t {
			return true
		}
	}
	return false
}
