// Package model defines the field schema consumed by the rule compiler, the
// renderers and the form controller. Types live in internal/model and are
// re-exported here. A FieldSchema carries its declared type (a closed enum),
// label, placeholder, default value, constraints (pattern, minLength,
// maxLength, min, max, step) and the error message shown for each
// constraint kind. Numeric bounds are pointers: an explicit 0 is a real
// bound. Select and radio fields carry an ordered option list.
//
// Decoding helpers accept JSON (the wire format of the fields endpoint) and
// YAML (schema files on disk) and normalise the result so missing labels are
// derived from field keys.
package model
