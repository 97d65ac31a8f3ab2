// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDoc = `# parkmenu fetch

Short description

Fetch dining venues and menus for a park date
and report the flattened menu items.

Quick examples

` + "```" + `
# Fetch today's menus
parkmenu fetch

# Fetch a specific date as JSON
parkmenu   fetch --date 2025-07-04   --output json
` + "```" + `

Flags and related docs

- ` + "`--date, -d`" + ` park date to query
`

func TestShortDescription(t *testing.T) {
	got := shortDescription(sampleDoc)
	assert.Equal(t, "Fetch dining venues and menus for a park date and report the flattened menu items.", got)

	assert.Empty(t, shortDescription("# no sections here"))
}

func TestQuickExamples(t *testing.T) {
	exs := quickExamples(sampleDoc)
	require.Len(t, exs, 2)
	assert.Equal(t, example{Desc: "Fetch today's menus", Cmd: "parkmenu fetch"}, exs[0])
	assert.Equal(t, "parkmenu fetch --date 2025-07-04 --output json", exs[1].Cmd,
		"whitespace runs collapsed")

	assert.Nil(t, quickExamples("# no examples"))
}

func TestTLDR(t *testing.T) {
	p := page{Command: "fetch", Short: "Fetch menus.", Examples: []example{
		{Desc: "Fetch today's menus", Cmd: "parkmenu fetch"},
	}}

	out := p.tldr()
	assert.Contains(t, out, "# parkmenu-fetch")
	assert.Contains(t, out, "> Fetch menus.")
	assert.Contains(t, out, "`parkmenu fetch`")

	// No examples falls back to --help.
	empty := page{Command: "serve"}
	assert.Contains(t, empty.tldr(), "`parkmenu serve --help`")
}

func TestGenerate(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "docs", "commands"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "docs", "commands", "fetch.md"), []byte(sampleDoc), 0o644))

	require.NoError(t, generate(root, true))

	assert.FileExists(t, filepath.Join(root, "docs", "man", "share", "man1", "parkmenu-fetch.1"))
	tldr, err := os.ReadFile(filepath.Join(root, "docs", "tldr", "parkmenu-fetch.md"))
	require.NoError(t, err)
	assert.Contains(t, string(tldr), "# parkmenu-fetch")

	// Empty commands dir is an error.
	emptyRoot := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(emptyRoot, "docs", "commands"), 0o755))
	assert.Error(t, generate(emptyRoot, true))
}
