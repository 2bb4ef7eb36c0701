// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"strings"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/cfgctl/cfgctl"
	"github.com/cfgctl/cfgctl/cliflag"
	"github.com/cfgctl/cfgctl/internal/log"
	"github.com/cfgctl/cfgctl/schema"
)

// NewDiscoveryFlags returns the flags shared by every command that runs a
// resolution pass: where to look, what to look for, and how strictly.
func NewDiscoveryFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "pattern",
			Aliases: []string{"p"},
			Usage:   "search pattern (|-alternation, ! exclusion, ~ home)",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("CFGCTL_PATTERN"),
			),
		},
		&cli.StringSliceFlag{
			Name:    "root",
			Aliases: []string{"r"},
			Usage:   "search root directory (repeatable)",
		},
		&cli.StringFlag{
			Name:    "location",
			Aliases: []string{"L"},
			Usage:   "explicit config file path or http(s) URL, bypasses search",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("CFGCTL_LOCATION"),
			),
		},
		&cli.StringFlag{
			Name:  "formats",
			Usage: "comma-separated dialect subset, in priority order",
		},
		&cli.StringFlag{
			Name:  "exclude",
			Usage: "comma-separated dotted ids barred from file configuration",
		},
		&cli.BoolFlag{
			Name:  "strict",
			Usage: "reject documents containing keys unknown to the schema",
			Value: false,
		},
		&cli.DurationFlag{
			Name:  "timeout",
			Usage: "remote fetch timeout",
			Value: 10 * time.Second,
		},
	}
}

// optionsFromCmd translates discovery flags into engine options for the
// given schema tree. Environment values are harvested with the
// conventional MY_CLI_SUB_COUNT naming.
func optionsFromCmd(cmd *cli.Command, tree *schema.Command) cfgctl.Options {
	opts := cfgctl.Options{
		Program:   tree.Name,
		Pattern:   cmd.String("pattern"),
		Location:  cmd.String("location"),
		Roots:     cmd.StringSlice("root"),
		Strict:    cmd.Bool("strict"),
		Timeout:   cmd.Duration("timeout"),
		EnvValues: cliflag.EnvValues(schema.Flatten(tree)),
		Log:       log.Sink(),
	}

	if spec := cmd.String("formats"); spec != "" {
		opts.Formats = splitList(spec)
	}
	if spec := cmd.String("exclude"); spec != "" {
		opts.Exclude = splitList(spec)
	}

	log.Tracef("discovery options: pattern=%q location=%q roots=%v formats=%v strict=%t timeout=%s",
		opts.Pattern, opts.Location, opts.Roots, opts.Formats, opts.Strict, opts.Timeout)
	for id, v := range opts.EnvValues {
		log.Tracef("env value bound: id=%s value=%v", id, v)
	}

	return opts
}

func splitList(spec string) []string {
	var out []string
	for _, part := range strings.Split(spec, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
