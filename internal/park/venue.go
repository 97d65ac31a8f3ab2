// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package park holds the dining data model and the parser that flattens the
// upstream explorer-service JSON into it.
package park

import (
	"sort"
	"strings"
)

// Coordinate is one entrance location of a venue.
type Coordinate struct {
	Entrance  string `json:"entrance"`
	Latitude  string `json:"latitude"`
	Longitude string `json:"longitude"`
}

// Thumbnail is the finder media thumbnail of a venue.
type Thumbnail struct {
	URL string `json:"url"`
	Alt string `json:"alt"`
}

// Media wraps the subset of upstream media we keep.
type Media struct {
	Thumbnail *Thumbnail `json:"thumbnail,omitempty"`
}

// MenuItem is one sellable item within a venue's menu. The time_till_close
// tag is a misnomer inherited from the upstream schema: it has always held
// the meal period's display name, and cached extraction files depend on the
// tag, so it stays.
type MenuItem struct {
	Name        string `json:"name"`
	Restaurant  string `json:"restaurant_name"`
	Cost        string `json:"cost"`
	Land        string `json:"land"`
	MealPeriod  string `json:"time_till_close"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// Venue is a dining location from the upstream listing. It is built fresh
// per fetch cycle (or loaded verbatim from a cached extraction file) and
// never mutated afterwards.
type Venue struct {
	ID             string       `json:"id"`
	Name           string       `json:"name"`
	URL            string       `json:"url"`
	Slug           string       `json:"url_friendly_id"`
	Land           string       `json:"location_name"`
	EntityType     string       `json:"entity_type"`
	MaxPartySize   string       `json:"maximum_party_size"`
	QuickService   bool         `json:"quick_service"`
	FacilityID     string       `json:"facility_id"`
	PriceRange     []string     `json:"price_range"`
	Cuisines       []string     `json:"cuisine_types"`
	ServiceTypes   []string     `json:"dining_types"`
	Coordinates    []Coordinate `json:"coordinates"`
	AdditionalInfo string       `json:"additional_info"`
	ProductURLs    []string     `json:"product_urls"`
	Media          Media        `json:"media"`
	MenuItems      []MenuItem   `json:"menu_items"`
}

// beverageKeywords classify a menu category as a beverage for the UI tabs.
var beverageKeywords = []string{"beverage", "drink", "beer", "wine", "cocktail"}

// IsBeverage reports whether a category string names a beverage group.
func IsBeverage(category string) bool {
	c := strings.ToLower(category)
	for _, kw := range beverageKeywords {
		if strings.Contains(c, kw) {
			return true
		}
	}
	return false
}

// Flatten returns the menu items of all venues, filtered to beverages or
// food, plus the sorted set of lands seen across every item (the land list
// is tab-independent so the UI filter doesn't flap between tabs).
func Flatten(venues []Venue, beverages bool) ([]MenuItem, []string) {
	var items []MenuItem
	lands := map[string]bool{}

	for _, v := range venues {
		for _, item := range v.MenuItems {
			lands[item.Land] = true
			if IsBeverage(item.Category) == beverages {
				items = append(items, item)
			}
		}
	}

	sorted := make([]string, 0, len(lands))
	for land := range lands {
		sorted = append(sorted, land)
	}
	sort.Strings(sorted)

	return items, sorted
}
