// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/cfgctl/cfgctl/format"
)

func formatsCommandBuilder() *cli.Command {
	return &cli.Command{
		Name:   "formats",
		Usage:  "list supported dialects in priority order",
		Action: formatsCommandAction,
	}
}

func formatsCommandAction(ctx context.Context, cmd *cli.Command) error {
	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "RANK\tNAME\tPATTERNS")
	for i, spec := range format.Registry() {
		fmt.Fprintf(w, "%d\t%s\t%s\n", i+1, spec.Name, strings.Join(spec.Patterns, " "))
	}
	return w.Flush()
}
