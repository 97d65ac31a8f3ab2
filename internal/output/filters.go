// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"regexp"
	"strings"

	"github.com/apex/log"
	"github.com/tidwall/gjson"
)

// filterRegex parses a filter expression into key, operator, and target.
// Operators are one of = ^ ~, optionally prefixed with '!' for negation.
var filterRegex = regexp.MustCompile(`^(.*?)(!?[=^~])(.*)$`)

// Filter is a single parsed --filter expression.
type Filter struct {
	Key     string
	Negate  bool
	Operand string
	Target  string
}

// BuildFilters parses a comma-separated filter spec. Malformed entries are
// logged and skipped rather than rejecting the whole spec.
func BuildFilters(spec string) []Filter {
	//nolint:prealloc
	var filters []Filter

	// If there are no filters specified, go home early.
	if spec == "" {
		return filters
	}

	for _, filterSpec := range strings.Split(spec, ",") {
		parts := filterRegex.FindStringSubmatch(filterSpec)
		if parts == nil {
			log.Error("invalid filter: " + filterSpec)
			continue
		}

		negate := strings.HasPrefix(parts[2], "!")
		if negate {
			parts[2] = strings.TrimPrefix(parts[2], "!")
		}

		filters = append(filters, Filter{
			Key:     parts[1],
			Negate:  negate,
			Operand: parts[2],
			Target:  parts[3],
		})
	}

	return filters
}

// applyFilters returns true if the candidate row matches all filters.
func applyFilters(candidate gjson.Result, filters []Filter) bool {
	// No filters, so go home early.
	if len(filters) == 0 {
		return true
	}

	for _, filter := range filters {
		value := candidate.Get(filter.Key)
		if !value.Exists() {
			return false
		}

		matched := checkOperand(value.String(), filter)
		if filter.Negate {
			matched = !matched
		}
		if !matched {
			return false
		}
	}

	return true
}

func checkOperand(value string, filter Filter) bool {
	switch filter.Operand {
	case "=":
		return strings.EqualFold(value, filter.Target)
	case "^":
		return strings.HasPrefix(strings.ToLower(value), strings.ToLower(filter.Target))
	case "~":
		re, err := regexp.Compile("(?i)" + filter.Target)
		if err != nil {
			log.Error("invalid filter regex: " + filter.Target)
			return false
		}
		return re.MatchString(value)
	default:
		return false
	}
}
