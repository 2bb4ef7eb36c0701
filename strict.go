// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cfgctl

import (
	"fmt"
	"sort"

	"github.com/cfgctl/cfgctl/schema"
)

// StrictError reports the first configuration key that the schema does not
// recognize. It is a user-facing, process-terminating error, distinct from
// the silently-recovered per-candidate parse failures.
type StrictError struct {
	Key    string
	Source string
}

func (e *StrictError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("unknown configuration key %q in %s", e.Key, e.Source)
	}
	return fmt.Sprintf("unknown configuration key %q", e.Key)
}

// validateStrict walks every leaf key path of the document and reports the
// first one whose dotted id is neither a known parameter nor excluded.
// Traversal is depth-first with keys sorted at each level, so "first" is
// deterministic across passes. It halts on the first offender; it does not
// accumulate violations.
func validateStrict(doc map[string]any, known map[string]*schema.Node, excluded map[string]bool) *StrictError {
	return strictWalk(doc, "", known, excluded)
}

func strictWalk(node map[string]any, prefix string, known map[string]*schema.Node, excluded map[string]bool) *StrictError {
	keys := make([]string, 0, len(node))
	for k := range node {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		id := k
		if prefix != "" {
			id = prefix + schema.Sep + k
		}

		// Excluded ids are exempt wholesale, subtrees included.
		if excluded[id] {
			continue
		}
		if _, ok := known[id]; ok {
			continue
		}

		if child, ok := schema.AsMap(node[k]); ok {
			if err := strictWalk(child, id, known, excluded); err != nil {
				return err
			}
			continue
		}

		return &StrictError{Key: id}
	}

	return nil
}
