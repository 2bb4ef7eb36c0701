// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cfgctl

import (
	"github.com/cfgctl/cfgctl/schema"
)

// resolveValues merges the four value inputs into one resolved value per
// parameter, applying the fixed precedence: CLI value, then projected
// document value, then environment value, then the parameter's static
// default.
//
// An excluded id never reads from the projection, even when the document
// supplies a value for it; CLI and environment still apply. The function is
// pure: identical inputs always yield identical output.
func resolveValues(
	flat map[string]*schema.Node,
	cliValues map[string]any,
	projected map[string]any,
	envValues map[string]any,
	excluded map[string]bool,
) map[string]ResolvedValue {

	out := make(map[string]ResolvedValue, len(flat))

	for _, id := range schema.IDs(flat) {
		node := flat[id]

		rv := ResolvedValue{ID: id, Value: node.Default, Provenance: ProvenanceDefault}

		switch {
		case has(cliValues, id):
			rv.Value, rv.Provenance = cliValues[id], ProvenanceCLI
		case !excluded[id] && has(projected, id):
			rv.Value, rv.Provenance = projected[id], ProvenanceFile
		case has(envValues, id):
			rv.Value, rv.Provenance = envValues[id], ProvenanceEnv
		}

		out[id] = rv
	}

	return out
}

func has(m map[string]any, id string) bool {
	_, ok := m[id]
	return ok
}
