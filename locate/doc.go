// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package locate discovers candidate configuration files.
//
// Candidates walks one or more search roots and yields every regular file
// matching a compiled search pattern, in an order that is deterministic for
// an unchanged filesystem: roots in caller order, lexical order within each
// directory, depth-first descent, symlinked directories followed. The walk
// is read-only and synchronous.
//
// A remote candidate is different: a single http(s) URL is exactly one
// candidate, fetched with a bounded timeout instead of walked, and it never
// goes through pattern matching.
package locate
