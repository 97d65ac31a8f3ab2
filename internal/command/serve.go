// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"

	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/staranto/parkmenugo/internal/config"
	"github.com/staranto/parkmenugo/internal/version"
	"github.com/staranto/parkmenugo/internal/web"
)

const (
	defaultHost         = "0.0.0.0"
	defaultPort         = 5000
	defaultMaxDaysAhead = 7
)

// ServeCommandAction starts the web UI over the fetch pipeline.
func ServeCommandAction(ctx context.Context, cmd *cli.Command) error {
	maxAhead, _ := config.GetInt("web.max_days_ahead", defaultMaxDaysAhead)
	refresh, _ := config.GetBool("web.enable_refresh", true)
	selector, _ := config.GetBool("web.enable_date_selector", true)
	favorites, _ := config.GetBool("web.enable_favorites", false)
	date, _ := config.GetString("api.date", "")

	srv := web.New(NewFetcher(), web.Options{
		DefaultDate:        date,
		MaxDaysAhead:       maxAhead,
		EnableRefresh:      refresh,
		EnableDateSelector: selector,
		EnableFavorites:    favorites,
		Version:            version.Version,
	})

	return srv.Run(cmd.String("host"), int(cmd.Int("port")))
}

// ServeCommandBuilder constructs the cli.Command definition for the "serve"
// command.
func ServeCommandBuilder() *cli.Command {
	return &cli.Command{
		Name:      "serve",
		Usage:     "serve the menu browser web UI",
		UsageText: `parkmenu serve [options]`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "host",
				Aliases: []string{"H"},
				Usage:   "address to bind",
				Sources: cli.NewValueSourceChain(
					cli.EnvVar("PARKMENU_WEB_HOST"),
					yaml.YAML("web.host", altsrc.StringSourcer(cfg.Source)),
				),
				Value: defaultHost,
			},
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "port to bind",
				Sources: cli.NewValueSourceChain(
					cli.EnvVar("PARKMENU_WEB_PORT"),
					yaml.YAML("web.port", altsrc.StringSourcer(cfg.Source)),
				),
				Value: defaultPort,
			},
		},
		Action: ServeCommandAction,
	}
}
