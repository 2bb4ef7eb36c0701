// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"sort"

	"github.com/urfave/cli/v3"
)

// InitApp constructs the cfgctl CLI: a thin debugging shell around the
// resolution engine. Each subcommand loads a schema description, runs one
// resolution pass, and prints what the engine saw.
func InitApp(ctx context.Context) (*cli.Command, error) {
	app := &cli.Command{
		Name:  "cfgctl",
		Usage: "Configuration Resolution Control",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "version",
				Aliases:     []string{"v"},
				Usage:       "cfgctl version info",
				HideDefault: true,
			},
		},
	}

	app.Commands = append(app.Commands,
		resolveCommandBuilder(),
		getCommandBuilder(),
		formatsCommandBuilder(),
	)

	// Make sure flags are sorted for the --help text.
	for _, cmd := range app.Commands {
		sort.Slice(cmd.Flags, func(i, j int) bool {
			return cmd.Flags[i].Names()[0] < cmd.Flags[j].Names()[0]
		})
	}

	return app, nil
}
