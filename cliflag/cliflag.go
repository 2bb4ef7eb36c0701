// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cliflag

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/urfave/cli/v3"

	"github.com/cfgctl/cfgctl"
	"github.com/cfgctl/cfgctl/schema"
)

// FromCommand walks a cli.Command tree and builds the equivalent schema
// description: one Node per flag, one nested Command per subcommand. The
// engine never inspects cli types itself; this bridge is the only place
// that knows both models.
func FromCommand(cmd *cli.Command) *schema.Command {
	out := &schema.Command{Name: cmd.Name}

	for _, f := range cmd.Flags {
		if node := nodeFromFlag(f); node != nil {
			out.Params = append(out.Params, node)
		}
	}
	for _, sub := range cmd.Commands {
		out.Commands = append(out.Commands, FromCommand(sub))
	}

	return out
}

// nodeFromFlag derives a schema node from one flag. Unknown flag kinds get
// TypeAny and a nil default; hidden flags still participate so config files
// can set them, matching how env sources already behave.
func nodeFromFlag(f cli.Flag) *schema.Node {
	names := f.Names()
	if len(names) == 0 {
		return nil
	}

	node := &schema.Node{Name: names[0], Type: schema.TypeAny}
	switch fl := f.(type) {
	case *cli.StringFlag:
		node.Type, node.Default = schema.TypeString, fl.Value
	case *cli.BoolFlag:
		node.Type, node.Default = schema.TypeBool, fl.Value
	case *cli.IntFlag:
		node.Type, node.Default = schema.TypeInt, fl.Value
	case *cli.FloatFlag:
		node.Type, node.Default = schema.TypeFloat, fl.Value
	case *cli.StringSliceFlag:
		node.Type, node.Default = schema.TypeList, fl.Value
	}
	return node
}

// Exclude flags the named dotted ids as non-configurable in the schema
// tree. Unknown ids are reported immediately: this runs at CLI-definition
// time, where a typo is a programmer error rather than a user's.
func Exclude(tree *schema.Command, ids ...string) error {
	flat := schema.Flatten(tree)
	if err := schema.VerifyExclusions(flat, ids); err != nil {
		return err
	}
	for _, id := range ids {
		flat[id].Excluded = true
	}
	return nil
}

// CLIValues harvests explicitly-set flag values from a parsed command tree,
// keyed by dotted id. Unset flags are absent, so the resolver can tell "not
// given" from "given the zero value".
func CLIValues(cmd *cli.Command) map[string]any {
	out := make(map[string]any)
	harvest(cmd, cmd.Name, out)
	return out
}

func harvest(cmd *cli.Command, prefix string, out map[string]any) {
	for _, f := range cmd.Flags {
		names := f.Names()
		if len(names) == 0 {
			continue
		}
		if cmd.IsSet(names[0]) {
			out[prefix+schema.Sep+names[0]] = cmd.Value(names[0])
		}
	}
	for _, sub := range cmd.Commands {
		harvest(sub, prefix+schema.Sep+sub.Name, out)
	}
}

// EnvName is the conventional environment variable for a dotted id:
// uppercased, dots and dashes flattened to underscores
// (my-cli.sub.count -> MY_CLI_SUB_COUNT).
func EnvName(id string) string {
	return strings.ToUpper(strings.NewReplacer(".", "_", "-", "_").Replace(id))
}

// EnvValues harvests bound environment values for every schema parameter.
func EnvValues(flat map[string]*schema.Node) map[string]any {
	out := make(map[string]any)
	for _, id := range schema.IDs(flat) {
		if v, ok := os.LookupEnv(EnvName(id)); ok {
			out[id] = v
		}
	}
	return out
}

// resolvedSource exposes one resolved value as a cli.ValueSource so the
// flag machinery picks it up whenever the user did not pass the flag
// explicitly.
type resolvedSource struct {
	id    string
	value string
}

func (s *resolvedSource) Lookup() (string, bool) { return s.value, true }
func (s *resolvedSource) String() string         { return fmt.Sprintf("resolved value %q", s.id) }
func (s *resolvedSource) GoString() string       { return fmt.Sprintf("&resolvedSource{%q}", s.id) }

// Attach appends a value source for every resolved non-default value to the
// corresponding flag's source chain. Call it after Resolve and before Run;
// precedence then falls out of the cli machinery itself: an explicit flag
// beats the source, the source beats the flag's static default.
func Attach(res *cfgctl.Result, cmd *cli.Command) {
	attach(res, cmd, cmd.Name)
}

func attach(res *cfgctl.Result, cmd *cli.Command, prefix string) {
	for _, f := range cmd.Flags {
		names := f.Names()
		if len(names) == 0 {
			continue
		}
		rv, ok := res.Value(prefix + schema.Sep + names[0])
		if !ok || rv.Provenance == cfgctl.ProvenanceDefault {
			continue
		}
		src := &resolvedSource{id: rv.ID, value: stringify(rv.Value)}
		appendSource(f, src)
	}
	for _, sub := range cmd.Commands {
		attach(res, sub, prefix+schema.Sep+sub.Name)
	}
}

func appendSource(f cli.Flag, src cli.ValueSource) {
	switch fl := f.(type) {
	case *cli.StringFlag:
		fl.Sources.Chain = append(fl.Sources.Chain, src)
	case *cli.BoolFlag:
		fl.Sources.Chain = append(fl.Sources.Chain, src)
	case *cli.IntFlag:
		fl.Sources.Chain = append(fl.Sources.Chain, src)
	case *cli.FloatFlag:
		fl.Sources.Chain = append(fl.Sources.Chain, src)
	case *cli.StringSliceFlag:
		fl.Sources.Chain = append(fl.Sources.Chain, src)
	}
}

// stringify renders a raw document value the way the flag parser expects it
// on the command line. Lists become comma-separated, everything else goes
// through %v.
func stringify(v any) string {
	if items, ok := v.([]any); ok {
		parts := make([]string, len(items))
		for i, item := range items {
			parts[i] = fmt.Sprintf("%v", item)
		}
		return strings.Join(parts, ",")
	}
	return fmt.Sprintf("%v", v)
}

// Decode maps the resolved values onto a caller struct, nesting by dotted
// id and coercing weakly (document scalars are frequently strings). Field
// names bind via the "config" tag.
func Decode(res *cfgctl.Result, target any) error {
	nested := make(map[string]any)
	for id, rv := range res.Values {
		segs := strings.Split(id, schema.Sep)
		m := nested
		for _, seg := range segs[:len(segs)-1] {
			next, ok := m[seg].(map[string]any)
			if !ok {
				next = make(map[string]any)
				m[seg] = next
			}
			m = next
		}
		m[segs[len(segs)-1]] = rv.Value
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "config",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	return dec.Decode(nested)
}
