// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package cliflag bridges the resolution engine to urfave/cli/v3.
//
// It converts a cli.Command tree into the engine's schema description,
// harvests explicitly-set flag values and bound environment values, and
// installs resolved values back onto flags as value sources so the cli
// machinery observes the engine's precedence without further wiring. Decode
// additionally maps a resolution result onto a plain struct for CLIs that
// prefer typed config objects over flag lookups.
package cliflag
