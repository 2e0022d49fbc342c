package notify

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew_SanitizesAndAssignsID(t *testing.T) {
	n := Destructive("Uh oh! Something went wrong.", `<script>alert(1)</script>bad <b>gateway</b>`)
	if n.ID == "" {
		t.Fatalf("expected id")
	}
	if n.Severity != SeverityDestructive {
		t.Fatalf("unexpected severity %q", n.Severity)
	}
	if n.Description != "bad gateway" {
		t.Fatalf("expected markup stripped, got %q", n.Description)
	}
	if other := Normal("x", ""); other.ID == n.ID {
		t.Fatalf("expected distinct ids")
	}
}

func TestPlainText(t *testing.T) {
	cases := map[string]string{
		"<b></b>":               "",
		"  ":                    "",
		"<i>Bad</i> &amp; gone": "Bad & gone",
		"plain":                 "plain",
	}
	for in, want := range cases {
		if got := PlainText(in); got != want {
			t.Errorf("PlainText(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRecorder(t *testing.T) {
	rec := NewRecorder()
	if _, ok := rec.Last(); ok {
		t.Fatalf("expected empty recorder")
	}
	_ = rec.Notify(context.Background(), Normal("one", ""))
	_ = rec.Notify(context.Background(), Normal("two", ""))

	last, ok := rec.Last()
	if !ok || last.Title != "two" {
		t.Fatalf("unexpected last %+v", last)
	}
	if got := rec.Drain(); len(got) != 2 {
		t.Fatalf("expected 2 drained, got %d", len(got))
	}
	if len(rec.All()) != 0 {
		t.Fatalf("expected drain to clear")
	}
}

func TestMulti_JoinsErrors(t *testing.T) {
	rec := NewRecorder()
	boom := errors.New("boom")
	failing := Func(func(context.Context, Notification) error { return boom })

	err := Multi(rec, nil, failing).Notify(context.Background(), Normal("hi", ""))
	if !errors.Is(err, boom) {
		t.Fatalf("expected joined error, got %v", err)
	}
	if len(rec.All()) != 1 {
		t.Fatalf("expected recorder to receive notification")
	}
}

func TestLogger_UsesSeverityLevel(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	n := NewLogger(zap.New(core))

	_ = n.Notify(context.Background(), Normal("Form Submitted", ""))
	_ = n.Notify(context.Background(), Destructive("Uh oh! Something went wrong.", "Error on form submit"))

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Level != zapcore.InfoLevel || entries[1].Level != zapcore.WarnLevel {
		t.Fatalf("unexpected levels %v %v", entries[0].Level, entries[1].Level)
	}
}

func TestTerminal_WritesTitleAndDescription(t *testing.T) {
	var buf bytes.Buffer
	term := NewTerminal(&buf)
	if err := term.Notify(context.Background(), Destructive("Failed", "Error on GET form fields")); err != nil {
		t.Fatalf("notify: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Failed") || !strings.Contains(out, "Error on GET form fields") {
		t.Fatalf("unexpected output %q", out)
	}
}
