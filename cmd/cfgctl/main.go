// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/cfgctl/cfgctl"
	"github.com/cfgctl/cfgctl/internal/command"
	"github.com/cfgctl/cfgctl/internal/log"
	"github.com/cfgctl/cfgctl/internal/version"
)

var ctx = context.Background()

func main() {
	os.Exit(realMain())
}

// handleVersion checks for --version/-v and returns whether it was handled.
func handleVersion(args []string) bool {
	for _, a := range args {
		if a == "--version" || a == "-v" {
			fmt.Println(version.Version)
			return true
		}
	}
	return false
}

// handleNakedCommand appends --help if no command is provided.
func handleNakedCommand(args []string) []string {
	if len(args) <= 1 {
		return append(args, "--help")
	}
	return args
}

// initAndRunApp initializes the app and runs it, returning the exit code.
// Strict-mode violations get their own exit code so wrappers can tell a
// user configuration error from an engine failure.
func initAndRunApp(args []string) int {
	app, err := command.InitApp(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.WithError(err).Debug("app init failed")
		return 1
	}

	if err := app.Run(ctx, args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.WithError(err).Debug("app run failed")

		var strictErr *cfgctl.StrictError
		if errors.As(err, &strictErr) {
			return 3
		}
		return 2
	}

	return 0
}

func realMain() int {
	log.InitLogger()

	args := os.Args
	log.Debugf("args captured: args=%v", args)

	if handleVersion(args) {
		return 0
	}

	args = handleNakedCommand(args)

	return initAndRunApp(args)
}
