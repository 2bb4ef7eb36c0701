// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/cfgctl/cfgctl"
)

func getCommandBuilder() *cli.Command {
	return &cli.Command{
		Name:      "get",
		Usage:     "query the raw discovered document with a gjson path",
		ArgsUsage: "<schema.yaml> <path>",
		Flags:     NewDiscoveryFlags(),
		Action:    getCommandAction,
	}
}

// getCommandAction resolves as usual but reads from the unprojected
// document, so garbage sections and excluded keys are visible here even
// though they never bind to parameters.
func getCommandAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() < 2 {
		return fmt.Errorf("schema file and query path arguments are required")
	}

	tree, err := LoadSchemaFile(cmd.Args().First())
	if err != nil {
		return err
	}

	res, err := cfgctl.Resolve(ctx, tree, optionsFromCmd(cmd, tree))
	if err != nil {
		return err
	}
	if !res.Found() {
		return fmt.Errorf("no configuration document found")
	}

	hit := res.Query(cmd.Args().Get(1))
	if !hit.Exists() {
		return fmt.Errorf("no value at path %q in %s", cmd.Args().Get(1), res.Source.Path)
	}

	fmt.Println(hit.String())
	return nil
}
