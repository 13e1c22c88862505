package render

import (
	"fmt"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// ThemeContext is the resolved theme handed to templates.
type ThemeContext struct {
	Name    string
	Variant string
	Tokens  map[string]string
	CSSVars map[string]string
	Style   string
}

// DefaultManifest returns the built-in light/dark theme.
func DefaultManifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    "contact",
		Version: "1.0.0",
		Tokens: map[string]string{
			"brand":      "#2563eb",
			"background": "#ffffff",
			"foreground": "#111827",
			"danger":     "#dc2626",
			"success":    "#16a34a",
			"radius":     "6px",
		},
		Variants: map[string]theme.Variant{
			"dark": {
				Tokens: map[string]string{
					"background": "#111827",
					"foreground": "#f9fafb",
				},
			},
		},
	}
}

// RegisterManifest validates manifest by registering it with a go-theme
// registry.
func RegisterManifest(manifest *theme.Manifest) error {
	if manifest == nil {
		return fmt.Errorf("render: theme manifest is nil")
	}
	registry := theme.NewRegistry()
	if err := registry.Register(manifest); err != nil {
		return fmt.Errorf("render: register theme %q: %w", manifest.Name, err)
	}
	return nil
}

// ResolveTheme merges the variant tokens over the manifest tokens. Unknown
// variants fall back to the base tokens.
func ResolveTheme(manifest *theme.Manifest, variant string) ThemeContext {
	if manifest == nil {
		return ThemeContext{}
	}
	variant = strings.TrimSpace(variant)

	tokens := make(map[string]string, len(manifest.Tokens))
	for key, value := range manifest.Tokens {
		tokens[key] = value
	}
	if v, ok := manifest.Variants[variant]; ok {
		for key, value := range v.Tokens {
			tokens[key] = value
		}
	} else {
		variant = ""
	}

	vars := make(map[string]string, len(tokens))
	for key, value := range tokens {
		vars["--"+key] = value
	}

	return ThemeContext{
		Name:    manifest.Name,
		Variant: variant,
		Tokens:  tokens,
		CSSVars: vars,
		Style:   cssVarsStyle(vars),
	}
}

func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, key+": "+vars[key])
	}
	return strings.Join(parts, "; ")
}
