// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"github.com/urfave/cli/v3"

	"github.com/staranto/parkmenugo/internal/park"
)

func TestBuildFilters(t *testing.T) {
	tests := []struct {
		name string
		spec string
		want []Filter
	}{
		{"empty spec", "", nil},
		{"equals", "land=Frontierland", []Filter{{Key: "land", Operand: "=", Target: "Frontierland"}}},
		{"negated equals", "land!=Frontierland", []Filter{{Key: "land", Negate: true, Operand: "=", Target: "Frontierland"}}},
		{"regex", "category~beer|wine", []Filter{{Key: "category", Operand: "~", Target: "beer|wine"}}},
		{"prefix", "name^Mickey", []Filter{{Key: "name", Operand: "^", Target: "Mickey"}}},
		{
			"multiple",
			"land=Frontierland,cost!=N/A",
			[]Filter{
				{Key: "land", Operand: "=", Target: "Frontierland"},
				{Key: "cost", Negate: true, Operand: "=", Target: "N/A"},
			},
		},
		{"invalid entry skipped", "garbage", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildFilters(tt.spec))
		})
	}
}

func TestApplyFilters(t *testing.T) {
	row := gjson.Parse(`{"name":"Gumbo","land":"New Orleans Square","cost":"$14"}`)

	tests := []struct {
		name string
		spec string
		want bool
	}{
		{"no filters passes", "", true},
		{"equals match", "land=new orleans square", true},
		{"equals miss", "land=Frontierland", false},
		{"negated equals", "land!=Frontierland", true},
		{"prefix", "name^gum", true},
		{"regex", "cost~^\\$\\d+$", true},
		{"missing key fails", "bogus=x", false},
		{"all must match", "name=Gumbo,land=Frontierland", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, applyFilters(row, BuildFilters(tt.spec)))
		})
	}
}

// newTestCommand runs a throwaway cli.Command so flag values are populated
// the same way production invocations populate them.
func newTestCommand(t *testing.T, args ...string) *cli.Command {
	t.Helper()

	var captured *cli.Command
	cmd := &cli.Command{
		Name: "test",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "output", Value: "text"},
			&cli.StringFlag{Name: "filter"},
			&cli.StringFlag{Name: "sort"},
			&cli.StringFlag{Name: "attrs"},
			&cli.BoolFlag{Name: "titles"},
			&cli.BoolFlag{Name: "color"},
		},
		Action: func(_ context.Context, c *cli.Command) error {
			captured = c
			return nil
		},
	}
	require.NoError(t, cmd.Run(context.Background(), append([]string{"test"}, args...)))
	require.NotNil(t, captured)
	return captured
}

func sampleItems() []park.MenuItem {
	return []park.MenuItem{
		{Name: "Gumbo", Restaurant: "Blue Bayou", Cost: "$14", Land: "New Orleans Square", MealPeriod: "Lunch", Category: "Entrees"},
		{Name: "Churro", Restaurant: "Churro Cart", Cost: "$6", Land: "Frontierland", MealPeriod: "All Day", Category: "Snacks"},
		{Name: "Cola", Restaurant: "Churro Cart", Cost: "N/A", Land: "Frontierland", MealPeriod: "All Day", Category: "Beverages"},
	}
}

func TestSliceDiceSpit_JSON(t *testing.T) {
	cmd := newTestCommand(t, "--output", "json", "--filter", "land=Frontierland", "--sort", "name")

	var buf bytes.Buffer
	require.NoError(t, SliceDiceSpit(sampleItems(), cmd, &buf))

	var rows []map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "Churro", rows[0]["name"])
	assert.Equal(t, "Cola", rows[1]["name"])
	assert.Equal(t, "N/A", rows[1]["cost"])
}

func TestSliceDiceSpit_Text(t *testing.T) {
	cmd := newTestCommand(t, "--titles")

	var buf bytes.Buffer
	require.NoError(t, SliceDiceSpit(sampleItems(), cmd, &buf))

	out := buf.String()
	assert.Contains(t, out, "Gumbo")
	assert.Contains(t, out, "Blue Bayou")
	assert.Contains(t, out, "name", "titles requested")
}

func TestSliceDiceSpit_AttrsSelectColumns(t *testing.T) {
	cmd := newTestCommand(t, "--output", "json", "--attrs", "name,category")

	var buf bytes.Buffer
	require.NoError(t, SliceDiceSpit(sampleItems(), cmd, &buf))

	var rows []map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rows))
	require.Len(t, rows, 3)
	assert.Contains(t, rows[0], "name")
	assert.Contains(t, rows[0], "category")
	assert.NotContains(t, rows[0], "cost")
}

func TestSliceDiceSpit_EmptyDataset(t *testing.T) {
	cmd := newTestCommand(t)

	var buf bytes.Buffer
	require.NoError(t, SliceDiceSpit([]park.MenuItem{}, cmd, &buf))
	assert.Empty(t, buf.String())
}

func TestInterfaceToString(t *testing.T) {
	assert.Equal(t, "", InterfaceToString(nil))
	assert.Equal(t, "-", InterfaceToString(nil, "-"))
	assert.Equal(t, "-", InterfaceToString("", "-"))
	assert.Equal(t, "x", InterfaceToString("x"))
	assert.Equal(t, "true", InterfaceToString(true))
	assert.Equal(t, "12", InterfaceToString(float64(12)))
	assert.Equal(t, "12.5", InterfaceToString(12.5))
}
