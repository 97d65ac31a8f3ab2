// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

// CleanCommandAction evicts cache files older than --days, or everything
// for a specific --date.
func CleanCommandAction(ctx context.Context, cmd *cli.Command) error {
	store := NewStore()

	if date := cmd.String("date"); date != "" {
		removed, err := store.DeleteMatching(date)
		if err != nil {
			return fmt.Errorf("failed to clean cache for %s: %w", date, err)
		}
		fmt.Fprintf(os.Stdout, "Removed %d cache files for %s\n", removed, date)
		return nil
	}

	removed, err := store.EvictOlderThan(int(cmd.Int("days")))
	if err != nil {
		return fmt.Errorf("failed to evict cache: %w", err)
	}
	fmt.Fprintf(os.Stdout, "Removed %d cache files\n", removed)
	return nil
}

// CleanCommandBuilder constructs the cli.Command definition for the "clean"
// command.
func CleanCommandBuilder() *cli.Command {
	return &cli.Command{
		Name:      "clean",
		Usage:     "evict stale cache files",
		UsageText: `parkmenu clean [options]`,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "days",
				Usage: "evict files older than this many days",
				Value: 7, //nolint:mnd
			},
			&cli.StringFlag{
				Name:    "date",
				Aliases: []string{"d"},
				Usage:   "remove all cache files for one date instead",
				Validator: func(value string) error {
					if value == "" {
						return nil
					}
					return FlagValidators(value, DateValidator)
				},
			},
		},
		Action: CleanCommandAction,
	}
}
