package theming

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	theme "github.com/goliatone/go-theme"
	"github.com/google/go-cmp/cmp"
)

func acmeManifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    "acme",
		Version: "1.0.0",
		Tokens: map[string]string{
			"fs-brand": "#123456",
		},
		Templates: map[string]string{
			"forms.input": "themes/acme/input.tmpl",
		},
		Assets: theme.Assets{
			Prefix: "/assets/themes/acme/",
			Files: map[string]string{
				"vanilla.stylesheet": "theme.css",
			},
		},
		Variants: map[string]theme.Variant{
			"dark": {
				Tokens: map[string]string{
					"fs-brand": "#654321",
				},
				Templates: map[string]string{
					"forms.checkbox": "themes/acme/dark/checkbox.tmpl",
				},
				Assets: theme.Assets{
					Files: map[string]string{
						"vanilla.script": "runtime.dark.js",
					},
				},
			},
		},
	}
}

var fallbacks = map[string]string{
	"forms.input":    "templates/components/input.tmpl",
	"forms.checkbox": "templates/components/checkbox.tmpl",
	"forms.textarea": "templates/components/textarea.tmpl",
}

func TestSelectorDefaults(t *testing.T) {
	selector, err := NewSelector("", VariantDark)
	if err != nil {
		t.Fatalf("new selector: %v", err)
	}

	selection, err := selector.Select("", "")
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if selection.Theme != DefaultName || selection.Variant != VariantDark {
		t.Fatalf("unexpected selection %s/%s", selection.Theme, selection.Variant)
	}
	if diff := cmp.Diff([]string{DefaultName}, selector.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
}

func TestSelectorDefaultVariantOnlyWhenDeclared(t *testing.T) {
	selector, err := NewSelector("acme", "sepia", acmeManifest())
	if err != nil {
		t.Fatalf("new selector: %v", err)
	}

	selection, err := selector.Select("", "")
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if selection.Theme != "acme" || selection.Variant != "" {
		t.Fatalf("unexpected selection %s/%q", selection.Theme, selection.Variant)
	}
}

func TestSelectorUnknown(t *testing.T) {
	selector, err := NewSelector("", "", acmeManifest())
	if err != nil {
		t.Fatalf("new selector: %v", err)
	}

	if _, err := selector.Select("missing", ""); !errors.Is(err, ErrUnknownTheme) {
		t.Fatalf("expected ErrUnknownTheme, got %v", err)
	}
	if _, err := selector.Select("acme", "sepia"); !errors.Is(err, ErrUnknownVariant) {
		t.Fatalf("expected ErrUnknownVariant, got %v", err)
	}
	if _, err := NewSelector("missing", ""); !errors.Is(err, ErrUnknownTheme) {
		t.Fatalf("expected ErrUnknownTheme for default, got %v", err)
	}
}

func TestConfigMergesVariant(t *testing.T) {
	selector, err := NewSelector("acme", "", acmeManifest())
	if err != nil {
		t.Fatalf("new selector: %v", err)
	}

	cfg, err := selector.Resolve("acme", "dark", fallbacks)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	if cfg.Theme != "acme" || cfg.Variant != "dark" {
		t.Fatalf("unexpected config identity %s/%s", cfg.Theme, cfg.Variant)
	}
	wantPartials := map[string]string{
		"forms.input":    "themes/acme/input.tmpl",
		"forms.checkbox": "themes/acme/dark/checkbox.tmpl",
		"forms.textarea": "templates/components/textarea.tmpl",
	}
	if diff := cmp.Diff(wantPartials, cfg.Partials); diff != "" {
		t.Fatalf("partials mismatch (-want +got):\n%s", diff)
	}
	if cfg.Tokens["fs-brand"] != "#654321" || cfg.CSSVars["--fs-brand"] != "#654321" {
		t.Fatalf("variant token not applied: %v / %v", cfg.Tokens, cfg.CSSVars)
	}
	if got := cfg.AssetURL("vanilla.script"); got != "/assets/themes/acme/runtime.dark.js" {
		t.Fatalf("unexpected script url %q", got)
	}
	if got := cfg.AssetURL("vanilla.stylesheet"); got != "/assets/themes/acme/theme.css" {
		t.Fatalf("unexpected stylesheet url %q", got)
	}
	if got := cfg.AssetURL("unknown"); got != "" {
		t.Fatalf("expected empty url for unknown asset, got %q", got)
	}
}

func TestConfigBaseDoesNotMutateFallbacks(t *testing.T) {
	selection := &theme.Selection{Theme: "acme", Manifest: acmeManifest()}
	before := map[string]string{"forms.input": "base.tmpl"}

	cfg := Config(selection, before)

	if cfg.Partials["forms.input"] != "themes/acme/input.tmpl" {
		t.Fatalf("manifest template should override fallback, got %q", cfg.Partials["forms.input"])
	}
	if before["forms.input"] != "base.tmpl" {
		t.Fatalf("fallback map mutated")
	}
	if cfg.Tokens["fs-brand"] != "#123456" {
		t.Fatalf("base token expected, got %q", cfg.Tokens["fs-brand"])
	}
	if Config(nil, fallbacks) != nil {
		t.Fatalf("nil selection should yield nil config")
	}
}

func TestLoadManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "theme.yaml")
	doc := `name: ocean
version: "0.1.0"
tokens:
  fs-brand: "#0077be"
variants:
  dark:
    tokens:
      fs-brand: "#003f5c"
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	manifest, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if manifest.Name != "ocean" || manifest.Tokens["fs-brand"] != "#0077be" {
		t.Fatalf("unexpected manifest %+v", manifest)
	}
	if manifest.Variants["dark"].Tokens["fs-brand"] != "#003f5c" {
		t.Fatalf("variant tokens not decoded: %+v", manifest.Variants)
	}

	if _, err := ParseManifest([]byte("version: 1")); err == nil {
		t.Fatalf("expected error for nameless manifest")
	}
}
