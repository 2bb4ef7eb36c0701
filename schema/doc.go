// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package schema models the embedding CLI's parameter tree and maps it onto
// parsed configuration documents.
//
// A Command tree mirrors the CLI's command/subcommand hierarchy; Flatten
// turns it into a mapping from fully qualified dotted ids
// (e.g. "my-cli.subcommand.int_param") to parameter nodes, and Project does
// the converse: it walks a parsed document along those dotted paths and
// pulls out whichever raw values exist, tolerating missing levels and
// ignoring unknown keys.
//
// The tree is an explicit, statically constructed description handed over
// by the embedding CLI. The engine does no reflection of its own.
package schema
