// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/staranto/parkmenugo/internal/command"
	mylog "github.com/staranto/parkmenugo/internal/log"
	"github.com/staranto/parkmenugo/internal/version"
)

var ctx = context.Background()

func main() {
	os.Exit(realMain())
}

func realMain() int {
	// Best-effort: a .env in the CWD is a convenience, not a requirement.
	_ = godotenv.Load()

	mylog.InitLogger()

	args := os.Args

	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "No command specified.")
		args = append(args, "--help")
	}

	// Short-circuit --version/-v and honor --debug anywhere on the line.
	for _, a := range args {
		switch a {
		case "--version", "-v":
			fmt.Println(version.Version)
			return 0
		case "--debug":
			mylog.SetDebug()
		}
	}

	app, err := command.InitApp(ctx, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if err := app.Run(ctx, args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	return 0
}
