// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package output renders a menu-item dataset per command flags: filter,
// sort, then spit as a table, JSON, or YAML.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/apex/log"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"github.com/tidwall/gjson"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v2"

	"github.com/staranto/parkmenugo/internal/config"
)

// DefaultColumns mirrors the classic fetch report: item, venue, cost, land,
// meal period.
var DefaultColumns = []string{"name", "restaurant_name", "cost", "land", "time_till_close"}

// SliceDiceSpit filters, sorts, and renders a dataset. The dataset is any
// JSON-marshalable slice whose elements carry the menu-item keys.
func SliceDiceSpit(dataset any, cmd *cli.Command, w io.Writer) error {
	if w == nil {
		w = os.Stdout
	}

	raw, err := json.Marshal(dataset)
	if err != nil {
		return fmt.Errorf("failed to marshal dataset: %w", err)
	}

	// If raw, just dump it and go home.
	outputFmt := cmd.String("output")
	if outputFmt == "raw" {
		_, _ = w.Write(raw)
		return nil
	}

	columns := DefaultColumns
	if extras := cmd.String("attrs"); extras != "" {
		columns = strings.Split(extras, ",")
	}

	filters := BuildFilters(cmd.String("filter"))

	// Filter first so the sort and render work on a smaller dataset.
	//nolint:prealloc
	var rows []map[string]interface{}
	for _, candidate := range gjson.ParseBytes(raw).Array() {
		if !applyFilters(candidate, filters) {
			continue
		}
		row := make(map[string]interface{}, len(columns))
		for _, col := range columns {
			row[col] = candidate.Get(col).Value()
		}
		rows = append(rows, row)
	}

	sortDataset(rows, cmd.String("sort"))

	switch outputFmt {
	case "json":
		out, err := json.Marshal(rows)
		if err != nil {
			return fmt.Errorf("failed to marshal output: %w", err)
		}
		_, _ = w.Write(out)
	case "yaml":
		out, err := yaml.Marshal(rows)
		if err != nil {
			return fmt.Errorf("failed to marshal output: %w", err)
		}
		_, _ = w.Write(out)
	default:
		TableWriter(rows, columns, cmd, w)
	}

	return nil
}

// sortDataset orders rows by a comma-separated list of keys, string-wise.
func sortDataset(rows []map[string]interface{}, spec string) {
	if spec == "" {
		return
	}
	keys := strings.Split(spec, ",")

	sort.SliceStable(rows, func(i, j int) bool {
		for _, key := range keys {
			a := InterfaceToString(rows[i][key])
			b := InterfaceToString(rows[j][key])
			if a != b {
				return a < b
			}
		}
		return false
	})
}

// TableWriter renders the result set in a tabular form honoring color,
// titles and padding options.
func TableWriter(resultSet []map[string]interface{}, columns []string, cmd *cli.Command, w io.Writer) {
	if len(resultSet) == 0 {
		return
	}

	var (
		headerStyle  = lipgloss.NewStyle().Align(lipgloss.Left)
		cellStyle    = lipgloss.NewStyle().Padding(0, 0).Align(lipgloss.Left)
		evenRowStyle = cellStyle
		oddRowStyle  = cellStyle
	)

	if cmd.Bool("color") {
		headerColor, evenColor, oddColor := getColors("colors")

		headerStyle = headerStyle.Foreground(lipgloss.Color(headerColor))
		evenRowStyle = evenRowStyle.Foreground(lipgloss.Color(evenColor))
		oddRowStyle = oddRowStyle.Foreground(lipgloss.Color(oddColor))
	}

	var rows [][]string
	for _, result := range resultSet {
		row := make([]string, 0, len(columns))
		for _, col := range columns {
			row = append(row, InterfaceToString(result[col], "-"))
		}
		rows = append(rows, row)
	}

	t := table.New().
		BorderBottom(false).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			pad, _ := config.GetInt("padding", 0)

			var style lipgloss.Style
			switch {
			case row == table.HeaderRow:
				style = headerStyle
			case row%2 == 0:
				style = evenRowStyle
			default:
				style = oddRowStyle
			}

			if col > 0 {
				style = style.PaddingLeft(pad)
			}

			return style
		}).
		Headers().
		Rows(rows...)

	if cmd.Bool("titles") {
		// https://github.com/charmbracelet/lipgloss/issues/261
		t = t.Headers(columns...).BorderHeader(false)
	}

	fmt.Fprintln(w, t)
}

// getColors returns configured color values for table rendering.
func getColors(key string) (header string, even string, odd string) {
	header, _ = config.GetString(fmt.Sprintf("%s.title", key), "#f6be00")
	even, _ = config.GetString(fmt.Sprintf("%s.even", key), "#ffffff")
	odd, _ = config.GetString(fmt.Sprintf("%s.odd", key), "#00c8f0")
	return
}

// InterfaceToString converts supported primitive values to a string. A
// custom empty value may be provided.
func InterfaceToString(value interface{}, emptyValue ...string) string {
	if len(emptyValue) == 0 {
		emptyValue = []string{""}
	}

	switch v := value.(type) {
	case nil:
		return emptyValue[0]
	case string:
		if v == "" {
			return emptyValue[0]
		}
		return v
	case bool:
		return fmt.Sprintf("%v", v)
	case float64:
		// JSON numbers arrive as float64; trim the pointless .000000.
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d", int64(v))
		}
		return fmt.Sprintf("%v", v)
	default:
		log.Debugf("unexpected value type %T", value)
		return fmt.Sprintf("%v", v)
	}
}
