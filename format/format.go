// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package format

import (
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// ParseFunc turns raw file bytes into a nested string-keyed document. A nil
// error with an empty or non-mapping result is possible; callers must gate
// on IsUsable before treating the parse as a success.
type ParseFunc func([]byte) (map[string]any, error)

// Spec identifies one supported configuration dialect: a symbolic name, the
// file-name patterns it claims, and its parse function. Position in the
// registry slice is the dialect's priority rank.
type Spec struct {
	Name     string
	Patterns []string
	Parse    ParseFunc
}

// Registry returns the closed, ordered table of supported dialects. The
// order is the tie-breaking priority when several dialects claim the same
// file, and it is part of the public contract: toml, yaml, json, ini, xml,
// hcl. Adding a dialect means adding an entry here, nothing is registered
// at runtime.
func Registry() []Spec {
	return []Spec{
		{Name: "toml", Patterns: []string{"*.toml"}, Parse: parseTOML},
		{Name: "yaml", Patterns: []string{"*.yaml", "*.yml"}, Parse: parseYAML},
		{Name: "json", Patterns: []string{"*.json", "*.jsonc"}, Parse: parseJSON},
		{Name: "ini", Patterns: []string{"*.ini", "*.cfg"}, Parse: parseINI},
		{Name: "xml", Patterns: []string{"*.xml"}, Parse: parseXML},
		{Name: "hcl", Patterns: []string{"*.hcl", "*.tf"}, Parse: parseHCL},
	}
}

// Select returns the named subset of the registry, in the caller's order.
// An unknown name is a definition-time programming error.
func Select(names ...string) ([]Spec, error) {
	byName := make(map[string]Spec)
	for _, s := range Registry() {
		byName[s.Name] = s
	}

	specs := make([]Spec, 0, len(names))
	for _, n := range names {
		s, ok := byName[strings.ToLower(n)]
		if !ok {
			return nil, fmt.Errorf("unknown format %q", n)
		}
		specs = append(specs, s)
	}
	return specs, nil
}

// ByName returns the registry entry for one dialect name.
func ByName(name string) (Spec, bool) {
	for _, s := range Registry() {
		if s.Name == strings.ToLower(name) {
			return s, true
		}
	}
	return Spec{}, false
}

// ByExtension returns the registry entry whose default patterns claim the
// given file extension (with or without the leading dot). Used for remote
// candidates, which get exactly one format inferred from the URL extension.
func ByExtension(ext string) (Spec, bool) {
	ext = strings.TrimPrefix(strings.ToLower(ext), ".")
	if ext == "" {
		return Spec{}, false
	}
	name := "probe." + ext
	for _, s := range Registry() {
		if s.match(name) {
			return s, true
		}
	}
	return Spec{}, false
}

// WithPatterns returns a copy of the spec claiming different file-name
// patterns, parse function unchanged. This is how a dialect is matched
// against a non-standard extension.
func (s Spec) WithPatterns(patterns ...string) Spec {
	s.Patterns = patterns
	return s
}

// Matches reports whether the spec's patterns claim the given path. Patterns
// are matched against the path's base name, case-insensitively; extensions
// are conventionally lowercase but files are not.
func (s Spec) Matches(p string) bool {
	return s.match(filepath.Base(filepath.FromSlash(p)))
}

func (s Spec) match(base string) bool {
	base = strings.ToLower(base)
	for _, pat := range s.Patterns {
		if ok, err := doublestar.Match(strings.ToLower(pat), base); err == nil && ok {
			return true
		}
	}
	return false
}

// IsUsable reports whether a parse result is a usable document: a non-empty
// mapping at the top level. Scalar-rooted, list-rooted, null and empty
// results all count as parse failures for resolution purposes.
func IsUsable(doc map[string]any) bool {
	return len(doc) > 0
}

// ExtOf returns the extension of a path or URL, suitable for ByExtension.
// For URLs the extension comes from the path component, so query strings
// and fragments never leak into it.
func ExtOf(p string) string {
	if strings.Contains(p, "://") {
		if u, err := url.Parse(p); err == nil {
			return path.Ext(u.Path)
		}
	}
	return path.Ext(filepath.ToSlash(p))
}
