// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/cfgctl/cfgctl"
	"github.com/cfgctl/cfgctl/schema"
)

func resolveCommandBuilder() *cli.Command {
	return &cli.Command{
		Name:      "resolve",
		Usage:     "run one resolution pass and print resolved values",
		ArgsUsage: "<schema.yaml>",
		Flags: append(NewDiscoveryFlags(),
			&cli.BoolFlag{
				Name:    "json",
				Aliases: []string{"j"},
				Usage:   "emit the full result as JSON",
				Value:   false,
			},
			&cli.BoolFlag{
				Name:  "doc",
				Usage: "include the raw document in output",
				Value: false,
			},
		),
		Action: resolveCommandAction,
	}
}

func resolveCommandAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() < 1 {
		return fmt.Errorf("schema file argument is required")
	}

	tree, err := LoadSchemaFile(cmd.Args().First())
	if err != nil {
		return err
	}

	res, err := cfgctl.Resolve(ctx, tree, optionsFromCmd(cmd, tree))
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return spitJSON(res, cmd.Bool("doc"))
	}
	return spitText(res, tree, cmd.Bool("doc"))
}

// spitText prints one line per parameter plus a source trailer.
func spitText(res *cfgctl.Result, tree *schema.Command, withDoc bool) error {
	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tVALUE\tPROVENANCE")
	for _, id := range schema.IDs(schema.Flatten(tree)) {
		rv := res.Values[id]
		fmt.Fprintf(w, "%s\t%v\t%s\n", id, rv.Value, rv.Provenance)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if res.Found() {
		fmt.Printf("\nsource: %s (%s)\n", res.Source.Path, res.Source.Format)
	} else {
		fmt.Println("\nsource: none (env/defaults only)")
	}

	if withDoc && res.Found() {
		raw, err := json.MarshalIndent(res.Document, "", "  ")
		if err != nil {
			return err
		}
		fmt.Printf("\n%s\n", raw)
	}
	return nil
}

func spitJSON(res *cfgctl.Result, withDoc bool) error {
	payload := map[string]any{
		"values": res.Values,
		"source": res.Source,
		"strict": res.Strict,
	}
	if withDoc {
		payload["document"] = res.Document
	}
	raw, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(raw))
	return nil
}
