// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package locate

import (
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/apex/log"

	"github.com/cfgctl/cfgctl/pattern"
)

// DefaultRoots returns the platform-conventional search roots for a program:
// the per-OS user configuration directory keyed by program name, then the
// directory itself. Both are overridable by the embedding CLI.
func DefaultRoots(program string) []string {
	var roots []string
	if dir, err := os.UserConfigDir(); err == nil {
		roots = append(roots, filepath.Join(dir, program), dir)
	}
	return roots
}

// IsURL reports whether the location is a remote http(s) resource rather
// than a filesystem pattern or path.
func IsURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// Candidates walks each root in order and returns every regular file whose
// root-relative path (or absolute path, for absolute patterns) satisfies the
// compiled predicate.
//
// Ordering is deterministic: roots in caller order, entries within a
// directory in lexical order, directories descended depth-first. Two calls
// against an unchanged tree yield the identical slice. Symlinked
// directories are followed, with a visited set on resolved paths to keep
// the walk finite; missing roots are skipped with a debug line.
func Candidates(roots []string, pat *pattern.Compiled, sink log.Interface) []string {
	var out []string

	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil || !info.IsDir() {
			sink.Debugf("skipping search root: root=%s err=%v", root, err)
			continue
		}

		w := &walker{
			root:     root,
			pat:      pat,
			sink:     sink,
			visited:  make(map[string]bool),
			absMatch: pat.IsAbs(),
		}
		w.walk(root, "")
		out = append(out, w.found...)
	}

	return out
}

type walker struct {
	root     string
	pat      *pattern.Compiled
	sink     log.Interface
	visited  map[string]bool
	absMatch bool
	found    []string
}

// walk descends dir depth-first. rel is the slash-separated path of dir
// relative to the walk root ("" at the root itself).
func (w *walker) walk(dir, rel string) {
	if resolved, err := filepath.EvalSymlinks(dir); err == nil {
		if w.visited[resolved] {
			return
		}
		w.visited[resolved] = true
	}

	entries, err := os.ReadDir(dir) // sorted by name
	if err != nil {
		w.sink.Debugf("unreadable directory: dir=%s err=%v", dir, err)
		return
	}

	for _, entry := range entries {
		abs := filepath.Join(dir, entry.Name())
		childRel := path.Join(rel, entry.Name())

		typ := entry.Type()
		if typ&fs.ModeSymlink != 0 {
			// Follow the link to decide what it is.
			st, err := os.Stat(abs)
			if err != nil {
				continue
			}
			if st.IsDir() {
				w.walk(abs, childRel)
				continue
			}
			if !st.Mode().IsRegular() {
				continue
			}
		} else if entry.IsDir() {
			w.walk(abs, childRel)
			continue
		} else if !typ.IsRegular() {
			continue
		}

		// Directory-only results are excluded by construction: only
		// regular files reach the predicate.
		if w.pat.Match(childRel) || (w.absMatch && w.pat.Match(abs)) {
			w.found = append(w.found, abs)
		}
	}
}
