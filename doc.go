// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package cfgctl resolves configuration for command-line applications: it
// locates candidate files with glob search patterns, parses them against an
// ordered registry of dialects (TOML, YAML, JSON/JWCC, INI, XML, HCL),
// projects the winning document onto the CLI's parameter schema, and merges
// CLI values, file values, environment values and static defaults under a
// fixed precedence.
//
// One call does everything:
//
//	tree := &schema.Command{Name: "myapp", Params: []*schema.Node{
//		{Name: "verbose", Type: schema.TypeBool, Default: false},
//	}}
//	res, err := cfgctl.Resolve(ctx, tree, cfgctl.Options{Program: "myapp"})
//
// Resolution is a single synchronous pass with no shared state between
// passes. Precedence, highest first: CLI, configuration file, environment,
// default. The first candidate/format pair that yields a non-empty mapping
// wins and the search stops; "nothing found" is a normal outcome, not an
// error. Strict mode turns unknown document keys into a fatal StrictError
// naming the first offending key.
package cfgctl
