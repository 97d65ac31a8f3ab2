// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/staranto/parkmenugo/internal/api"
	"github.com/staranto/parkmenugo/internal/cache"
	"github.com/staranto/parkmenugo/internal/config"
	"github.com/staranto/parkmenugo/internal/fetcher"
)

const (
	defaultCacheDir   = "cache"
	defaultCacheHours = 6
)

// NewStore builds the cache store from config.
func NewStore() *cache.Store {
	dir, _ := config.GetString("cache.dir", defaultCacheDir)
	enabled, _ := config.GetBool("cache.enabled", true)
	hours, _ := config.GetInt("cache.hours", defaultCacheHours)
	return cache.Open(dir, enabled, hours)
}

// NewFetcher builds the full fetch pipeline from config.
func NewFetcher() *fetcher.Fetcher {
	return fetcher.New(api.FromConfig(), NewStore())
}

// CommandBuilder constructs a cli.Command for the parkmenu subcommands using
// a consistent pattern: custom flags first, then the global flag set, with
// the shared Before validator wired in.
type CommandBuilder struct {
	Name      string
	Usage     string
	UsageText string
	Flags     []cli.Flag
	Action    func(context.Context, *cli.Command) error
}

// Build returns a configured cli.Command from the builder.
func (cb *CommandBuilder) Build() *cli.Command {
	return &cli.Command{
		Name:      cb.Name,
		Usage:     cb.Usage,
		UsageText: cb.UsageText,
		Flags:     append(cb.Flags, NewGlobalFlags(cb.Name)...),
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			return ctx, GlobalFlagsValidator(ctx, c)
		},
		Action: cb.Action,
	}
}
