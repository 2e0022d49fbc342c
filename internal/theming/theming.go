// Package theming resolves go-theme manifests into renderer configuration.
package theming

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultName is the built-in theme registered by NewSelector.
	DefaultName = "formschema"
	// VariantDark is the built-in dark variant.
	VariantDark = "dark"
)

var (
	ErrUnknownTheme   = errors.New("theming: unknown theme")
	ErrUnknownVariant = errors.New("theming: unknown variant")
)

// Default returns the built-in manifest. Token names match the custom
// properties declared by the vanilla stylesheet.
func Default() *theme.Manifest {
	return &theme.Manifest{
		Name:    DefaultName,
		Version: "1.0.0",
		Tokens: map[string]string{
			"fs-brand":       "#7d56f4",
			"fs-destructive": "#e5484d",
			"fs-border":      "#d4d4d8",
			"fs-muted":       "#71717a",
			"fs-radius":      "0.5rem",
		},
		Variants: map[string]theme.Variant{
			VariantDark: {
				Tokens: map[string]string{
					"fs-border": "#3f3f46",
					"fs-muted":  "#a1a1aa",
				},
			},
		},
	}
}

// Selector picks a manifest and variant by name. It satisfies
// theme.ThemeSelector.
type Selector struct {
	manifests      map[string]*theme.Manifest
	defaultTheme   string
	defaultVariant string
}

var _ theme.ThemeSelector = (*Selector)(nil)

// NewSelector registers the built-in manifest plus manifests. Later manifests
// replace earlier ones with the same name. An empty defaultTheme selects the
// built-in theme.
func NewSelector(defaultTheme, defaultVariant string, manifests ...*theme.Manifest) (*Selector, error) {
	registry := theme.NewRegistry()
	s := &Selector{
		manifests:      map[string]*theme.Manifest{},
		defaultTheme:   strings.TrimSpace(defaultTheme),
		defaultVariant: strings.TrimSpace(defaultVariant),
	}
	if s.defaultTheme == "" {
		s.defaultTheme = DefaultName
	}

	for _, manifest := range append([]*theme.Manifest{Default()}, manifests...) {
		if manifest == nil {
			continue
		}
		if _, seen := s.manifests[manifest.Name]; !seen {
			if err := registry.Register(manifest); err != nil {
				return nil, fmt.Errorf("theming: register %q: %w", manifest.Name, err)
			}
		}
		s.manifests[manifest.Name] = manifest
	}

	if _, err := s.Select("", ""); err != nil {
		return nil, err
	}
	return s, nil
}

// Select resolves name and variant, substituting the defaults for empty
// values. The default variant only applies when the chosen manifest declares
// it.
func (s *Selector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = s.defaultTheme
	}
	manifest, ok := s.manifests[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTheme, name)
	}

	variant = strings.TrimSpace(variant)
	if variant == "" {
		if _, ok := manifest.Variants[s.defaultVariant]; ok {
			variant = s.defaultVariant
		}
	} else if _, ok := manifest.Variants[variant]; !ok {
		return nil, fmt.Errorf("%w: %q for theme %q", ErrUnknownVariant, variant, name)
	}

	return &theme.Selection{
		Theme:    name,
		Variant:  variant,
		Manifest: manifest,
	}, nil
}

// Names lists the registered themes in sorted order.
func (s *Selector) Names() []string {
	names := make([]string, 0, len(s.manifests))
	for name := range s.manifests {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Config derives renderer configuration from a selection. Partials layer as
// fallbacks, then manifest templates, then variant templates; tokens and
// asset files let the variant override the base.
func Config(selection *theme.Selection, fallbacks map[string]string) *theme.RendererConfig {
	if selection == nil || selection.Manifest == nil {
		return nil
	}
	manifest := selection.Manifest
	variant, hasVariant := manifest.Variants[selection.Variant]

	tokens := maps.Clone(manifest.Tokens)
	if tokens == nil {
		tokens = map[string]string{}
	}
	partials := maps.Clone(fallbacks)
	if partials == nil {
		partials = map[string]string{}
	}
	maps.Copy(partials, manifest.Templates)
	files := maps.Clone(manifest.Assets.Files)
	if files == nil {
		files = map[string]string{}
	}
	prefix := manifest.Assets.Prefix

	if hasVariant {
		maps.Copy(tokens, variant.Tokens)
		maps.Copy(partials, variant.Templates)
		maps.Copy(files, variant.Assets.Files)
		if variant.Assets.Prefix != "" {
			prefix = variant.Assets.Prefix
		}
	}

	cssVars := make(map[string]string, len(tokens))
	for name, value := range tokens {
		cssVars["--"+name] = value
	}

	prefix = strings.TrimRight(prefix, "/")
	return &theme.RendererConfig{
		Theme:    selection.Theme,
		Variant:  selection.Variant,
		Tokens:   tokens,
		CSSVars:  cssVars,
		Partials: partials,
		AssetURL: func(key string) string {
			file, ok := files[key]
			if !ok || file == "" {
				return ""
			}
			if prefix == "" {
				return file
			}
			return prefix + "/" + strings.TrimLeft(file, "/")
		},
	}
}

// Resolve selects name/variant and derives the renderer configuration.
func (s *Selector) Resolve(name, variant string, fallbacks map[string]string) (*theme.RendererConfig, error) {
	selection, err := s.Select(name, variant)
	if err != nil {
		return nil, err
	}
	return Config(selection, fallbacks), nil
}

// LoadManifest reads a YAML manifest from path.
func LoadManifest(path string) (*theme.Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("theming: read manifest: %w", err)
	}
	return ParseManifest(data)
}

// ParseManifest decodes a YAML manifest.
func ParseManifest(data []byte) (*theme.Manifest, error) {
	var manifest theme.Manifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("theming: decode manifest: %w", err)
	}
	if strings.TrimSpace(manifest.Name) == "" {
		return nil, errors.New("theming: manifest name is required")
	}
	return &manifest, nil
}
