// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cfgctl

import (
	"encoding/json"

	"github.com/tidwall/gjson"
)

// Provenance records which input ultimately supplied a resolved value. It
// determines nothing about correctness, only observability: a trace line or
// an introspection command can say where a value came from.
type Provenance string

const (
	ProvenanceCLI     Provenance = "cli"
	ProvenanceFile    Provenance = "config-file"
	ProvenanceEnv     Provenance = "env"
	ProvenanceDefault Provenance = "default"
)

// ResolvedValue is the final value bound to one parameter, tagged with its
// provenance. Exactly one provenance per parameter per resolution pass.
type ResolvedValue struct {
	ID         string
	Value      any
	Provenance Provenance
}

// Source identifies which file or URL produced the winning document and
// which dialect parsed it.
type Source struct {
	Path   string
	Format string
	Remote bool
}

// Result is everything one resolution pass produced: the per-parameter
// resolved values, the full unprojected document, the winning source (nil
// when no configuration was found, which is not an error), and whether the
// pass ran strict. It is handed to the embedding CLI whole; nothing is
// smuggled through context metadata.
type Result struct {
	Values   map[string]ResolvedValue
	Document map[string]any
	Source   *Source
	Strict   bool
}

// Found reports whether any configuration document was discovered.
func (r *Result) Found() bool {
	return r.Source != nil
}

// Value returns the resolved value for a dotted id.
func (r *Result) Value(id string) (ResolvedValue, bool) {
	rv, ok := r.Values[id]
	return rv, ok
}

// Query runs a gjson path query against the raw, unprojected document. This
// is the introspection surface: it sees garbage sections and excluded keys
// alike, independent of what was actually bound to parameters.
func (r *Result) Query(path string) gjson.Result {
	if len(r.Document) == 0 {
		return gjson.Result{}
	}
	raw, err := json.Marshal(r.Document)
	if err != nil {
		return gjson.Result{}
	}
	return gjson.GetBytes(raw, path)
}
