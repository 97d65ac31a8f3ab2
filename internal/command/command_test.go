// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateValidator(t *testing.T) {
	assert.NoError(t, DateValidator("2024-06-01"))
	assert.Error(t, DateValidator("06/01/2024"))
	assert.Error(t, DateValidator("2024-13-01"))
	assert.Error(t, DateValidator("tomorrow"))
	assert.Error(t, DateValidator(42))
}

func TestOutputValidator(t *testing.T) {
	for _, v := range []string{"text", "json", "raw", "yaml"} {
		assert.NoError(t, OutputValidator(v))
	}
	assert.Error(t, OutputValidator("xml"))
}

func TestInitApp(t *testing.T) {
	app, err := InitApp(context.Background(), []string{"parkmenu"})
	require.NoError(t, err)
	assert.Equal(t, "parkmenu", app.Name)

	var names []string
	for _, cmd := range app.Commands {
		names = append(names, cmd.Name)
	}
	assert.ElementsMatch(t, []string{"clean", "completion", "fetch", "serve"}, names)

	// Flags must be sorted for the --help text.
	for _, cmd := range app.Commands {
		sorted := sort.SliceIsSorted(cmd.Flags, func(i, j int) bool {
			return cmd.Flags[i].Names()[0] < cmd.Flags[j].Names()[0]
		})
		assert.True(t, sorted, "%s flags not sorted", cmd.Name)
	}
}

func TestNewGlobalFlags(t *testing.T) {
	flags := NewGlobalFlags("fetch")

	var names []string
	for _, f := range flags {
		names = append(names, f.Names()[0])
	}
	assert.ElementsMatch(t, []string{"attrs", "color", "filter", "output", "sort", "titles"}, names)
}
