// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"sort"

	"github.com/urfave/cli/v3"
)

func InitApp(ctx context.Context, args []string) (*cli.Command, error) {
	app := &cli.Command{
		Name:  "parkmenu",
		Usage: "Theme park dining menus, fetched and cached",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "version",
				Aliases:     []string{"v"},
				Usage:       "parkmenu version info",
				HideDefault: true,
			},
			&cli.BoolFlag{
				Name:        "debug",
				Usage:       "enable debug logging",
				HideDefault: true,
			},
		},
	}

	app.Commands = append(app.Commands,
		CleanCommandBuilder(),
		CompletionCommandBuilder(),
		FetchCommandBuilder(),
		ServeCommandBuilder(),
	)

	// Make sure flags are sorted for the --help text.
	for _, cmd := range app.Commands {
		sort.Slice(cmd.Flags, func(i, j int) bool {
			return cmd.Flags[i].Names()[0] < cmd.Flags[j].Names()[0]
		})
	}

	return app, nil
}
