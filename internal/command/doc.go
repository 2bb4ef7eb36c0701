// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package command implements the cfgctl CLI subcommands.
//
// The CLI is a debugging surface for the resolution engine: given a YAML
// schema description of some CLI's parameter tree, "resolve" runs a pass
// and prints every resolved value with its provenance, "get" queries the
// raw discovered document with a gjson path, and "formats" lists the
// dialect registry in priority order.
package command
