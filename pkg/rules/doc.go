// Package rules compiles a field schema into an ordered validation rule set
// and evaluates values against it. Compilation is a pure function of the
// schema: the same FieldSchema always yields an equal RuleSet.
//
// Rules run in a fixed order (required, pattern, minLength, maxLength, min,
// max) and evaluation stops at the first violation. Empty values only ever
// fail the required rule.
package rules
