// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package format

import (
	"encoding/json"
	"fmt"
	"math/big"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/clbanning/mxj/v2"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/tailscale/hujson"
	"github.com/zclconf/go-cty/cty"
	"gopkg.in/ini.v1"
	"gopkg.in/yaml.v3"
)

func parseTOML(b []byte) (map[string]any, error) {
	var doc map[string]any
	if err := toml.Unmarshal(b, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func parseYAML(b []byte) (map[string]any, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// parseJSON accepts both plain JSON and the commented/trailing-comma JWCC
// superset; hujson standardizes the latter down to plain JSON first.
func parseJSON(b []byte) (map[string]any, error) {
	std, err := hujson.Standardize(b)
	if err != nil {
		return nil, err
	}
	var doc map[string]any
	if err := json.Unmarshal(std, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// parseINI maps sections to nested documents. Keys in the DEFAULT section
// land at the document root. A dotted section name ([app.sub]) nests one
// level per segment so INI files address the same dotted ids as the other
// dialects. Values pass through %(key)s interpolation, then through a JSON
// decode attempt so that numbers, booleans and bracketed lists survive as
// typed values rather than strings.
func parseINI(b []byte) (map[string]any, error) {
	f, err := ini.Load(b)
	if err != nil {
		return nil, err
	}

	doc := make(map[string]any)
	for _, section := range f.Sections() {
		target := doc
		if section.Name() != ini.DefaultSection {
			for _, seg := range strings.Split(section.Name(), ".") {
				next, ok := target[seg].(map[string]any)
				if !ok {
					next = make(map[string]any)
					target[seg] = next
				}
				target = next
			}
		}
		for _, key := range section.Keys() {
			target[key.Name()] = iniValue(key.String())
		}
	}

	// A file with nothing but an empty DEFAULT section is empty.
	if len(doc) == 0 {
		return nil, nil
	}
	return doc, nil
}

// iniValue upgrades an interpolated INI string to a typed value when the
// text happens to be valid JSON. Plain words stay strings.
func iniValue(s string) any {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return s
	}
	var v any
	if err := json.Unmarshal([]byte(trimmed), &v); err == nil {
		return v
	}
	return s
}

// parseXML keeps the document's root element as the top-level key, matching
// the natural <myapp><sub>...</sub></myapp> layout against dotted ids. All
// leaf values are strings; coercion is the binding collaborator's job.
func parseXML(b []byte) (map[string]any, error) {
	m, err := mxj.NewMapXml(b)
	if err != nil {
		return nil, err
	}
	return map[string]any(m), nil
}

// parseHCL evaluates attributes as literals (nil EvalContext) and nests
// blocks by type, then by label. Repeated blocks of the same type merge,
// later over earlier.
func parseHCL(b []byte) (map[string]any, error) {
	f, diags := hclparse.NewParser().ParseHCL(b, "config.hcl")
	if diags.HasErrors() {
		return nil, diags
	}

	body, ok := f.Body.(*hclsyntax.Body)
	if !ok {
		return nil, fmt.Errorf("unexpected hcl body type %T", f.Body)
	}

	return hclBody(body)
}

func hclBody(body *hclsyntax.Body) (map[string]any, error) {
	doc := make(map[string]any)

	for name, attr := range body.Attributes {
		val, diags := attr.Expr.Value(&hcl.EvalContext{})
		if diags.HasErrors() {
			return nil, diags
		}
		doc[name] = ctyToGo(val)
	}

	for _, block := range body.Blocks {
		inner, err := hclBody(block.Body)
		if err != nil {
			return nil, err
		}
		// Labels nest one map level each, innermost holding the body.
		for i := len(block.Labels) - 1; i >= 0; i-- {
			inner = map[string]any{block.Labels[i]: inner}
		}

		if existing, ok := doc[block.Type].(map[string]any); ok {
			mergeInto(existing, inner)
		} else {
			doc[block.Type] = inner
		}
	}

	return doc, nil
}

func mergeInto(dst, src map[string]any) {
	for k, v := range src {
		if sv, ok := v.(map[string]any); ok {
			if dv, ok := dst[k].(map[string]any); ok {
				mergeInto(dv, sv)
				continue
			}
		}
		dst[k] = v
	}
}

// ctyToGo converts an evaluated cty value to the engine's generic document
// representation.
func ctyToGo(val cty.Value) any {
	if val.IsNull() || !val.IsKnown() {
		return nil
	}

	t := val.Type()
	switch {
	case t == cty.String:
		return val.AsString()
	case t == cty.Bool:
		return val.True()
	case t == cty.Number:
		bf := val.AsBigFloat()
		if i, acc := bf.Int64(); acc == big.Exact {
			return i
		}
		f, _ := bf.Float64()
		return f
	case t.IsTupleType() || t.IsListType() || t.IsSetType():
		var items []any
		for it := val.ElementIterator(); it.Next(); {
			_, ev := it.Element()
			items = append(items, ctyToGo(ev))
		}
		return items
	case t.IsObjectType() || t.IsMapType():
		m := make(map[string]any)
		for it := val.ElementIterator(); it.Next(); {
			kv, ev := it.Element()
			m[kv.AsString()] = ctyToGo(ev)
		}
		return m
	default:
		return nil
	}
}
