// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package pattern

import (
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/mitchellh/go-homedir"
)

// ErrInvalidPattern is returned when a raw search pattern is syntactically
// malformed. It always indicates a programming error in the embedding CLI,
// never a runtime condition, so callers should surface it.
var ErrInvalidPattern = errors.New("invalid search pattern")

// FlagSet controls how a raw search pattern is compiled and matched.
//
// The zero value is not useful; start from DefaultFlags. CaseFold is a
// tri-state so the platform convention can be overridden explicitly in
// either direction.
type FlagSet struct {
	// CaseFold forces case-insensitive (true) or case-sensitive (false)
	// matching. When nil, the host platform convention applies:
	// insensitive on windows and darwin, sensitive elsewhere.
	CaseFold *bool
	// Recursive enables ** segment expansion. When off, ** degrades to *.
	Recursive bool
	// Dots includes dot-files in matches.
	Dots bool
	// Braces enables {a,b} expansion. When off, braces match literally.
	Braces bool
	// Tilde enables leading-~ home directory expansion at compile time.
	Tilde bool
}

// DefaultFlags returns the default matching behavior: recursive **, dot-files
// included, brace expansion and tilde expansion on, case sensitivity per
// platform convention. Matching is always restricted to regular files; there
// is deliberately no flag to lift that.
func DefaultFlags() FlagSet {
	return FlagSet{
		Recursive: true,
		Dots:      true,
		Braces:    true,
		Tilde:     true,
	}
}

// fold reports whether matching should be case-insensitive.
func (f FlagSet) fold() bool {
	if f.CaseFold != nil {
		return *f.CaseFold
	}
	return runtime.GOOS == "windows" || runtime.GOOS == "darwin"
}

// rule is one compiled alternative of the raw pattern.
type rule struct {
	glob    string
	exclude bool
}

// Compiled is an immutable, platform-normalized matching predicate built
// from one raw search pattern. Construct with Compile.
type Compiled struct {
	raw      string
	fold     bool
	dots     bool
	includes []rule
	excludes []rule
}

// Raw returns the original pattern text the predicate was compiled from.
func (c *Compiled) Raw() string {
	return c.raw
}

// Compile turns a raw glob-like pattern into a matching predicate.
//
// The raw pattern may contain |-delimited alternatives; each is compiled
// independently and the set unioned. An alternative with a leading ! is an
// exclusion rule, evaluated after all inclusion rules. Forward slashes are
// accepted regardless of host platform. A leading ~ is expanded to the
// user's home directory at compile time when the Tilde flag is set.
func Compile(raw string, flags FlagSet) (*Compiled, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("%w: empty pattern", ErrInvalidPattern)
	}

	c := &Compiled{
		raw:  raw,
		fold: flags.fold(),
		dots: flags.Dots,
	}

	for _, alt := range strings.Split(raw, "|") {
		alt = strings.TrimSpace(alt)
		if alt == "" {
			return nil, fmt.Errorf("%w: unterminated alternation in %q", ErrInvalidPattern, raw)
		}

		exclude := false
		if strings.HasPrefix(alt, "!") {
			exclude = true
			alt = alt[1:]
			if alt == "" {
				return nil, fmt.Errorf("%w: bare ! alternative in %q", ErrInvalidPattern, raw)
			}
		}

		glob, err := normalize(alt, flags)
		if err != nil {
			return nil, err
		}

		r := rule{glob: glob, exclude: exclude}
		if exclude {
			c.excludes = append(c.excludes, r)
		} else {
			c.includes = append(c.includes, r)
		}
	}

	if len(c.includes) == 0 {
		return nil, fmt.Errorf("%w: only exclusion rules in %q", ErrInvalidPattern, raw)
	}

	return c, nil
}

// normalize expands and validates a single alternative, returning the glob
// that will be handed to the matcher.
func normalize(alt string, flags FlagSet) (string, error) {
	if flags.Tilde && strings.HasPrefix(alt, "~") {
		expanded, err := homedir.Expand(alt)
		if err != nil {
			return "", fmt.Errorf("%w: %q: %v", ErrInvalidPattern, alt, err)
		}
		alt = expanded
	}

	// Match internally on slash-separated paths, whatever the host.
	alt = filepath.ToSlash(alt)

	if !flags.Recursive {
		alt = strings.ReplaceAll(alt, "**", "*")
	}

	if !flags.Braces {
		alt = strings.NewReplacer("{", "\\{", "}", "\\}").Replace(alt)
	} else if err := checkBraces(alt); err != nil {
		return "", err
	}

	if !doublestar.ValidatePattern(alt) {
		return "", fmt.Errorf("%w: %q", ErrInvalidPattern, alt)
	}

	return alt, nil
}

// checkBraces rejects unbalanced brace expressions up front. doublestar
// tolerates some of these, but the engine's contract is to fail compile.
func checkBraces(glob string) error {
	depth := 0
	escaped := false
	for _, r := range glob {
		switch {
		case escaped:
			escaped = false
		case r == '\\':
			escaped = true
		case r == '{':
			depth++
		case r == '}':
			depth--
			if depth < 0 {
				return fmt.Errorf("%w: unbalanced braces in %q", ErrInvalidPattern, glob)
			}
		}
	}
	if depth != 0 {
		return fmt.Errorf("%w: unbalanced braces in %q", ErrInvalidPattern, glob)
	}
	return nil
}

// Match reports whether the given slash-separated file path satisfies the
// predicate: at least one inclusion rule matches and no exclusion rule does.
// Callers are expected to feed regular files only; the File Locator enforces
// the files-only restriction before matching.
func (c *Compiled) Match(path string) bool {
	path = filepath.ToSlash(path)

	if !c.dots && hasDotSegment(path) {
		return false
	}
	if !c.matchAny(c.includes, path) {
		return false
	}
	return !c.matchAny(c.excludes, path)
}

// hasDotSegment reports whether any path segment is a dot-file or
// dot-directory.
func hasDotSegment(path string) bool {
	for _, seg := range strings.Split(path, "/") {
		if strings.HasPrefix(seg, ".") && seg != "." && seg != ".." {
			return true
		}
	}
	return false
}

func (c *Compiled) matchAny(rules []rule, path string) bool {
	for _, r := range rules {
		glob, candidate := r.glob, path
		if c.fold {
			glob = strings.ToLower(glob)
			candidate = strings.ToLower(candidate)
		}
		ok, err := doublestar.Match(glob, candidate)
		if err != nil {
			// Validated at compile time; a match error here means the
			// predicate was constructed by hand.
			continue
		}
		if ok {
			return true
		}
	}
	return false
}

// IsAbs reports whether any inclusion rule is an absolute path glob. The
// locator uses this to decide whether to match candidates by absolute path
// in addition to root-relative path.
func (c *Compiled) IsAbs() bool {
	for _, r := range c.includes {
		if strings.HasPrefix(r.glob, "/") || filepath.IsAbs(filepath.FromSlash(r.glob)) {
			return true
		}
	}
	return false
}
