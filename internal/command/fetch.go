// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/parkmenugo/internal/fetcher"
	"github.com/staranto/parkmenugo/internal/output"
	"github.com/staranto/parkmenugo/internal/park"
)

// FetchCommandAction runs one fetch cycle for the selected date and emits
// the flattened menu-item report through the common output pipeline.
func FetchCommandAction(ctx context.Context, cmd *cli.Command) error {
	date := cmd.String("date")

	f := NewFetcher()

	var res fetcher.Result
	if cmd.Bool("refresh") {
		var removed int
		res, removed = f.Refresh(ctx, date)
		log.Debugf("refresh purged %d cache files", removed)
	} else {
		res = f.Venues(ctx, date)
	}

	if res.Empty() && res.Reason != fetcher.ReasonNone {
		return fmt.Errorf("fetch for %s failed: %s", date, res.Reason)
	}
	items, _ := park.Flatten(res.Venues, cmd.Bool("beverages"))
	log.Infof("%d venues, %d menu items (%s)", len(res.Venues), len(items), res.Source)

	return output.SliceDiceSpit(items, cmd, os.Stdout)
}

// FetchCommandBuilder constructs the cli.Command definition for the "fetch"
// command, wiring flags and the action handler.
func FetchCommandBuilder() *cli.Command {
	return (&CommandBuilder{
		Name:      "fetch",
		Usage:     "fetch dining venues and menus for a date",
		UsageText: `parkmenu fetch [options]`,
		Flags: []cli.Flag{
			NewDateFlag("fetch"),
			&cli.BoolFlag{
				Name:        "beverages",
				Aliases:     []string{"b"},
				Usage:       "report beverage items instead of food",
				HideDefault: true,
			},
			&cli.BoolFlag{
				Name:        "refresh",
				Aliases:     []string{"r"},
				Usage:       "purge cached data for the date before fetching",
				HideDefault: true,
			},
		},
		Action: FetchCommandAction,
	}).Build()
}
