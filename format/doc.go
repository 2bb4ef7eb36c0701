// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package format holds the closed registry of configuration dialects the
// engine can parse: TOML, YAML, JSON (including commented JWCC), INI (with
// %(key)s interpolation and JSON-shaped list values), XML and HCL.
//
// Each dialect is a Spec: a name, the file-name patterns it claims, and a
// parse function from raw bytes to a nested string-keyed document. The
// registry slice order is the dialect priority order and is part of the
// public contract; when two dialects claim the same file, the earlier entry
// is tried first and the first usable parse wins.
//
// Caveat: a file that is valid under two dialects with different semantics
// (some documents parse as both YAML and INI, for instance) is resolved by
// declaration order, full stop. The engine never cross-checks a second
// dialect once one has produced a usable document.
package format
