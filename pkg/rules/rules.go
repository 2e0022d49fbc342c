package rules

import (
	"regexp"
	"strconv"
	"sync"

	"github.com/goliatone/go-formschema/pkg/model"
)

// Rule is one active constraint of a field. Params are kept as plain data so
// rule sets compare structurally; regular expressions are compiled lazily
// through a shared cache.
type Rule struct {
	Kind    model.RuleKind `json:"kind"`
	Message string         `json:"message"`
	Pattern string         `json:"pattern,omitempty"`
	Limit   float64        `json:"limit,omitempty"`
}

// RuleSet is the compiled, ordered set of rules for one field.
type RuleSet struct {
	Key   string          `json:"key"`
	Type  model.FieldType `json:"type"`
	Rules []Rule          `json:"rules,omitempty"`
}

// Violation reports the first failing rule for a value.
type Violation struct {
	Kind    model.RuleKind `json:"kind"`
	Message string         `json:"message"`
}

const defaultRequiredMessage = "This field is required"

// Compile derives the rule set for field. A rule is active when:
//   - required: Required is true
//   - pattern: Pattern is non-empty
//   - minLength/maxLength: the bound is > 0
//   - min/max: the bound is present, including an explicit 0
//
// Compile panics when the pattern does not compile; field schemas are trusted
// input and a broken pattern is a programming error (see lint.Fields).
func Compile(field model.FieldSchema) RuleSet {
	set := RuleSet{Key: field.Key, Type: field.Type}

	if field.Required {
		msg := field.Message(model.RuleRequired)
		if msg == "" {
			msg = defaultRequiredMessage
		}
		set.Rules = append(set.Rules, Rule{Kind: model.RuleRequired, Message: msg})
	}
	if field.Pattern != "" {
		mustPattern(field.Pattern)
		set.Rules = append(set.Rules, Rule{
			Kind:    model.RulePattern,
			Message: field.Message(model.RulePattern),
			Pattern: field.Pattern,
		})
	}
	if field.MinLength > 0 {
		set.Rules = append(set.Rules, Rule{
			Kind:    model.RuleMinLength,
			Message: field.Message(model.RuleMinLength),
			Limit:   float64(field.MinLength),
		})
	}
	if field.MaxLength > 0 {
		set.Rules = append(set.Rules, Rule{
			Kind:    model.RuleMaxLength,
			Message: field.Message(model.RuleMaxLength),
			Limit:   float64(field.MaxLength),
		})
	}
	if field.Min != nil {
		set.Rules = append(set.Rules, Rule{
			Kind:    model.RuleMin,
			Message: field.Message(model.RuleMin),
			Limit:   *field.Min,
		})
	}
	if field.Max != nil {
		set.Rules = append(set.Rules, Rule{
			Kind:    model.RuleMax,
			Message: field.Message(model.RuleMax),
			Limit:   *field.Max,
		})
	}
	return set
}

// CompileAll compiles every field, keyed by field key.
func CompileAll(fields []model.FieldSchema) map[string]RuleSet {
	out := make(map[string]RuleSet, len(fields))
	for _, field := range fields {
		out[field.Key] = Compile(field)
	}
	return out
}

// Has reports whether a rule of kind is active.
func (s RuleSet) Has(kind model.RuleKind) bool {
	_, ok := s.Rule(kind)
	return ok
}

// Rule returns the active rule of kind.
func (s RuleSet) Rule(kind model.RuleKind) (Rule, bool) {
	for _, rule := range s.Rules {
		if rule.Kind == kind {
			return rule, true
		}
	}
	return Rule{}, false
}

// Check evaluates value against the rules in order and returns the first
// violation.
func (s RuleSet) Check(value any) (Violation, bool) {
	empty := IsEmpty(value)
	for _, rule := range s.Rules {
		if rule.Kind == model.RuleRequired {
			if empty {
				return Violation{Kind: rule.Kind, Message: rule.Message}, true
			}
			continue
		}
		if empty {
			continue
		}
		if !rule.passes(value) {
			return Violation{Kind: rule.Kind, Message: rule.Message}, true
		}
	}
	return Violation{}, false
}

func (r Rule) passes(value any) bool {
	switch r.Kind {
	case model.RulePattern:
		return mustPattern(r.Pattern).MatchString(Stringify(value))
	case model.RuleMinLength:
		return float64(runeLen(Stringify(value))) >= r.Limit
	case model.RuleMaxLength:
		return float64(runeLen(Stringify(value))) <= r.Limit
	case model.RuleMin:
		n, ok := Number(value)
		return !ok || n >= r.Limit
	case model.RuleMax:
		n, ok := Number(value)
		return !ok || n <= r.Limit
	default:
		return true
	}
}

var patternCache sync.Map

func mustPattern(expr string) *regexp.Regexp {
	if cached, ok := patternCache.Load(expr); ok {
		return cached.(*regexp.Regexp)
	}
	re := regexp.MustCompile(expr)
	actual, _ := patternCache.LoadOrStore(expr, re)
	return actual.(*regexp.Regexp)
}

func runeLen(s string) int {
	return len([]rune(s))
}

// IsEmpty reports whether value counts as unset for the required rule: nil,
// an empty string, or an unchecked checkbox.
func IsEmpty(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case bool:
		return !v
	case *float64:
		return v == nil
	default:
		return false
	}
}

// Stringify renders a value the way an input widget would show it.
func Stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

// Number converts numeric values (and numeric strings) to float64.
func Number(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
