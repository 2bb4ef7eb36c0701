// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package pattern compiles user-supplied glob-like search specifications
// into normalized, platform-correct matching predicates.
//
// A raw pattern is a |-delimited list of alternatives. Each alternative is a
// glob supporting * and ** wildcards and {a,b} brace groups. A leading !
// turns an alternative into an exclusion rule, evaluated after all inclusion
// rules; a leading ~ expands to the user's home directory at compile time.
//
// Examples:
//
//   - "myapp.*"                      : any myapp.<ext> file under a root
//   - "**/myapp.{toml,yaml}"         : recursive, two extensions
//   - "~/.myapp/*.toml|!**/backup.*" : home-rooted, excluding backups
//
// Patterns are compiled once, at option-definition time, and are immutable
// thereafter. Matches are restricted to regular files; directories are never
// produced and that restriction cannot be disabled.
package pattern
