// Package lint checks field schema documents before they are served. The
// structure is checked against an embedded CUE schema; rules CUE cannot
// express (key uniqueness, Go regular expressions, bound ordering) are
// checked on the decoded field list.
package lint

import (
	_ "embed"
	"fmt"
	"os"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formschema/pkg/model"
)

//go:embed schema.cue
var schemaSource string

// Severity ranks an issue.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

func (s Severity) String() string { return string(s) }

// Issue is one problem found in a document. Path addresses the offending
// node, e.g. "[2].options".
type Issue struct {
	Path     string
	Severity Severity
	Message  string
}

func (i Issue) String() string {
	path := i.Path
	if path == "" {
		path = "(root)"
	}
	return fmt.Sprintf("%s %s: %s", i.Severity, path, i.Message)
}

// Report collects the issues of one document.
type Report struct {
	Source string
	Issues []Issue
}

// Failed reports whether the document has errors, or warnings when strict.
func (r Report) Failed(strict bool) bool {
	for _, issue := range r.Issues {
		if issue.Severity == SeverityError || strict {
			return true
		}
	}
	return false
}

// Errors returns the issues with error severity.
func (r Report) Errors() []Issue {
	var out []Issue
	for _, issue := range r.Issues {
		if issue.Severity == SeverityError {
			out = append(out, issue)
		}
	}
	return out
}

// Option configures a Linter.
type Option func(*Linter)

// WithWarnings toggles the message coverage warnings. Enabled by default.
func WithWarnings(enabled bool) Option {
	return func(l *Linter) {
		l.warnings = enabled
	}
}

// Linter validates field documents. It is safe to reuse but not for
// concurrent use.
type Linter struct {
	ctx      *cue.Context
	schema   cue.Value
	warnings bool
}

// New compiles the embedded schema.
func New(options ...Option) (*Linter, error) {
	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("lint: compile schema: %w", err)
	}
	l := &Linter{ctx: ctx, schema: schema, warnings: true}
	for _, opt := range options {
		if opt != nil {
			opt(l)
		}
	}
	return l, nil
}

// LintFile reads and lints path.
func (l *Linter) LintFile(path string) (Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Report{Source: path}, fmt.Errorf("lint: read %s: %w", path, err)
	}
	return l.Lint(path, data)
}

// Lint checks a JSON or YAML field list. The error is non-nil only when
// data cannot be parsed at all; schema problems are reported as issues.
func (l *Linter) Lint(source string, data []byte) (Report, error) {
	report := Report{Source: source}

	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return report, fmt.Errorf("lint: parse %s: %w", source, err)
	}

	doc := l.ctx.Encode(map[string]any{"fields": raw})
	if err := doc.Err(); err != nil {
		return report, fmt.Errorf("lint: encode %s: %w", source, err)
	}
	if err := l.schema.Unify(doc).Validate(cue.Concrete(true)); err != nil {
		report.Issues = append(report.Issues, structuralIssues(err)...)
	}

	fields, err := model.ParseFieldsYAML(data)
	if err == nil {
		report.Issues = append(report.Issues, l.fieldIssues(fields)...)
	}

	slices.SortStableFunc(report.Issues, func(a, b Issue) int {
		return strings.Compare(a.Path, b.Path)
	})
	report.Issues = slices.Compact(report.Issues)
	return report, nil
}

func structuralIssues(err error) []Issue {
	var issues []Issue
	for _, e := range cueerrors.Errors(err) {
		format, args := e.Msg()
		issues = append(issues, Issue{
			Path:     formatPath(e.Path()),
			Severity: SeverityError,
			Message:  fmt.Sprintf(format, args...),
		})
	}
	return issues
}

// formatPath turns a CUE path below "fields" into index notation.
func formatPath(path []string) string {
	if len(path) > 0 && path[0] == "fields" {
		path = path[1:]
	}
	var b strings.Builder
	for _, elem := range path {
		if _, err := strconv.Atoi(elem); err == nil {
			b.WriteString("[" + elem + "]")
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(elem)
	}
	return b.String()
}

func (l *Linter) fieldIssues(fields []model.FieldSchema) []Issue {
	var issues []Issue
	add := func(idx int, suffix string, severity Severity, format string, args ...any) {
		issues = append(issues, Issue{
			Path:     fmt.Sprintf("[%d]%s", idx, suffix),
			Severity: severity,
			Message:  fmt.Sprintf(format, args...),
		})
	}

	seen := make(map[string]int, len(fields))
	for idx, field := range fields {
		if field.Key != "" {
			if first, dup := seen[field.Key]; dup {
				add(idx, ".key", SeverityError, "duplicate key %q (first declared at [%d])", field.Key, first)
			} else {
				seen[field.Key] = idx
			}
		}
		if field.Pattern != "" {
			if _, err := regexp.Compile(field.Pattern); err != nil {
				add(idx, ".pattern", SeverityError, "invalid pattern: %v", err)
			}
		}
		if field.MinLength > 0 && field.MaxLength > 0 && field.MinLength > field.MaxLength {
			add(idx, ".minLength", SeverityError, "minLength %d exceeds maxLength %d", field.MinLength, field.MaxLength)
		}
		if field.Min != nil && field.Max != nil && *field.Min > *field.Max {
			add(idx, ".min", SeverityError, "min %v exceeds max %v", *field.Min, *field.Max)
		}
		if field.Type.RequiresOptions() && field.Value != nil {
			if msg := defaultOptionProblem(field); msg != "" {
				add(idx, ".value", SeverityWarning, "%s", msg)
			}
		}
		if l.warnings {
			for _, kind := range missingMessages(field) {
				add(idx, ".errorMessages", SeverityWarning, "no message for active rule %q", string(kind))
			}
			for _, kind := range unusedMessages(field) {
				add(idx, ".errorMessages."+string(kind), SeverityWarning, "message for inactive rule %q", string(kind))
			}
		}
	}
	return issues
}

func defaultOptionProblem(field model.FieldSchema) string {
	value := fmt.Sprint(field.Value)
	for _, opt := range field.Options {
		if opt.Value != value {
			continue
		}
		if opt.Disabled {
			return fmt.Sprintf("default %q selects a disabled option", value)
		}
		return ""
	}
	return fmt.Sprintf("default %q matches no option", value)
}

func activeRules(field model.FieldSchema) []model.RuleKind {
	var kinds []model.RuleKind
	if field.Required {
		kinds = append(kinds, model.RuleRequired)
	}
	if field.Pattern != "" {
		kinds = append(kinds, model.RulePattern)
	}
	if field.MinLength > 0 {
		kinds = append(kinds, model.RuleMinLength)
	}
	if field.MaxLength > 0 {
		kinds = append(kinds, model.RuleMaxLength)
	}
	if field.Min != nil {
		kinds = append(kinds, model.RuleMin)
	}
	if field.Max != nil {
		kinds = append(kinds, model.RuleMax)
	}
	return kinds
}

func missingMessages(field model.FieldSchema) []model.RuleKind {
	var out []model.RuleKind
	for _, kind := range activeRules(field) {
		if field.Message(kind) == "" {
			out = append(out, kind)
		}
	}
	return out
}

func unusedMessages(field model.FieldSchema) []model.RuleKind {
	active := activeRules(field)
	var out []model.RuleKind
	for _, kind := range model.RuleKinds() {
		if _, ok := field.ErrorMessages[kind]; ok && !slices.Contains(active, kind) {
			out = append(out, kind)
		}
	}
	return out
}
