// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sep joins command path segments and parameter names into dotted ids.
const Sep = "."

// ErrUnknownExclusion is returned when an excluded id names no parameter in
// the schema. It surfaces at CLI-definition time, not at invocation time.
var ErrUnknownExclusion = errors.New("excluded id not present in schema")

// ValueType is the expected type of one parameter. The engine itself never
// coerces; the type travels with the node so the binding collaborator can.
type ValueType string

const (
	TypeString ValueType = "string"
	TypeBool   ValueType = "bool"
	TypeInt    ValueType = "int"
	TypeFloat  ValueType = "float"
	TypeList   ValueType = "list"
	TypeAny    ValueType = "any"
)

// Node describes a single CLI option or argument: its local name, expected
// value type, static default, and whether it is excluded from file-based
// configurability. Nodes are built once by the embedding CLI; the engine
// performs no reflection to discover them.
type Node struct {
	Name     string    `yaml:"name"`
	Type     ValueType `yaml:"type"`
	Default  any       `yaml:"default"`
	Excluded bool      `yaml:"excluded"`
}

// Command is one level of the CLI's command tree: a name, the parameters
// defined at that level, and subcommands.
type Command struct {
	Name     string     `yaml:"name"`
	Params   []*Node    `yaml:"params"`
	Commands []*Command `yaml:"commands"`
}

// Flatten walks the command tree and returns every parameter keyed by its
// fully qualified dotted id, root-to-leaf: root command name, intermediate
// subcommand names, local parameter name.
func Flatten(root *Command) map[string]*Node {
	flat := make(map[string]*Node)
	if root == nil {
		return flat
	}
	flattenInto(flat, root.Name, root)
	return flat
}

func flattenInto(flat map[string]*Node, prefix string, cmd *Command) {
	for _, p := range cmd.Params {
		flat[prefix+Sep+p.Name] = p
	}
	for _, sub := range cmd.Commands {
		flattenInto(flat, prefix+Sep+sub.Name, sub)
	}
}

// IDs returns the sorted dotted ids of a flattened schema.
func IDs(flat map[string]*Node) []string {
	ids := make([]string, 0, len(flat))
	for id := range flat {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Excluded collects the dotted ids flagged Excluded in the schema, merged
// with any extra ids the caller supplies.
func Excluded(flat map[string]*Node, extra ...string) map[string]bool {
	out := make(map[string]bool)
	for id, n := range flat {
		if n.Excluded {
			out[id] = true
		}
	}
	for _, id := range extra {
		out[id] = true
	}
	return out
}

// VerifyExclusions confirms every caller-supplied excluded id names a real
// parameter. A miss is a programming error in the embedding CLI and is
// reported eagerly so it cannot hide until some invocation happens to
// exercise it.
func VerifyExclusions(flat map[string]*Node, excluded []string) error {
	for _, id := range excluded {
		if _, ok := flat[id]; !ok {
			return fmt.Errorf("%w: %s", ErrUnknownExclusion, id)
		}
	}
	return nil
}

// Project walks the document along each dotted id and returns the raw value
// found there, when one exists. Missing intermediate levels mean "no value
// at this path", never an error, and document keys that correspond to no
// known id are ignored; in non-strict mode garbage sections are simply
// skipped. Values pass through unmodified.
func Project(doc map[string]any, ids []string) map[string]any {
	out := make(map[string]any)
	if len(doc) == 0 {
		return out
	}
	for _, id := range ids {
		if v, ok := Lookup(doc, id); ok {
			out[id] = v
		}
	}
	return out
}

// Lookup descends the document tree one dotted segment at a time.
func Lookup(doc map[string]any, id string) (any, bool) {
	var current any = doc
	for _, seg := range strings.Split(id, Sep) {
		m, ok := AsMap(current)
		if !ok {
			return nil, false
		}
		current, ok = m[seg]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// AsMap normalizes the map shapes the dialect parsers can produce.
func AsMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			ks, ok := k.(string)
			if !ok {
				return nil, false
			}
			out[ks] = val
		}
		return out, true
	default:
		return nil, false
	}
}
