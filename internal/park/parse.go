// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package park

import (
	"sort"

	"github.com/apex/log"
	"github.com/tidwall/gjson"
)

// ParseVenues flattens a raw listing response into Venue records. Each
// entity yields a Venue, and an embedded "marker" sub-entity yields a second
// one. Records without a stable id are dropped; duplicate ids keep the first
// occurrence, whichever side it came from.
func ParseVenues(data []byte) []Venue {
	results := gjson.GetBytes(data, "results")
	if !results.Exists() {
		log.Debug("listing response has no results array")
		return nil
	}

	var venues []Venue
	seen := map[string]bool{}

	accept := func(v Venue) {
		if v.ID == "" || seen[v.ID] {
			return
		}
		seen[v.ID] = true
		venues = append(venues, v)
	}

	for _, entity := range results.Array() {
		accept(parseVenue(entity))

		if marker := entity.Get("marker"); marker.Exists() && len(marker.Map()) > 0 {
			accept(parseMarker(entity, marker))
		}
	}

	return venues
}

func parseVenue(entity gjson.Result) Venue {
	v := Venue{
		ID:             entity.Get("id").String(),
		Name:           stringOr(entity.Get("name"), "Unknown"),
		URL:            entity.Get("url").String(),
		Slug:           entity.Get("urlFriendlyId").String(),
		Land:           entity.Get("locationName").String(),
		EntityType:     entity.Get("entityType").String(),
		MaxPartySize:   entity.Get("maximumPartySize").String(),
		QuickService:   entity.Get("quickServiceAvailable").Bool(),
		FacilityID:     entity.Get("facilityId").String(),
		PriceRange:     stringSlice(entity.Get("facets.priceRange")),
		Cuisines:       stringSlice(entity.Get("facets.cuisine")),
		ServiceTypes:   stringSlice(entity.Get("facets.tableService")),
		AdditionalInfo: entity.Get("generalPurposeStrings.diningAdditionalInfo").String(),
		ProductURLs:    stringSlice(entity.Get("productUrls")),
		Coordinates:    parseCoordinates(entity.Get("restaurants")),
	}

	if thumb := entity.Get("media.finderStandardThumb"); thumb.Exists() {
		v.Media.Thumbnail = &Thumbnail{
			URL: thumb.Get("url").String(),
			Alt: thumb.Get("alt").String(),
		}
	}

	return v
}

// parseMarker builds the secondary Venue carried by an entity's map marker.
// It has its own id/name/coordinates but inherits the parent's land.
func parseMarker(entity, marker gjson.Result) Venue {
	v := Venue{
		ID:         marker.Get("id").String(),
		Name:       stringOr(marker.Get("name"), "Unknown"),
		URL:        marker.Get("url").String(),
		Slug:       marker.Get("urlFriendlyId").String(),
		Land:       entity.Get("locationName").String(),
		EntityType: "restaurant",
	}

	lat, lng := marker.Get("lat"), marker.Get("lng")
	if lat.Exists() && lng.Exists() {
		v.Coordinates = append(v.Coordinates, Coordinate{
			Entrance:  "Main",
			Latitude:  lat.String(),
			Longitude: lng.String(),
		})
	}

	return v
}

// parseCoordinates collects GPS entrances from every associated restaurant
// record. Entrances within one record are emitted in sorted key order so the
// output is deterministic.
func parseCoordinates(restaurants gjson.Result) []Coordinate {
	var coords []Coordinate

	for _, rest := range restaurants.Array() {
		m := rest.Get("coordinates").Map()
		entrances := make([]string, 0, len(m))
		for entrance := range m {
			entrances = append(entrances, entrance)
		}
		sort.Strings(entrances)

		for _, entrance := range entrances {
			gps := m[entrance].Get("gps")
			if !gps.Exists() {
				continue
			}
			coords = append(coords, Coordinate{
				Entrance:  entrance,
				Latitude:  gps.Get("latitude").String(),
				Longitude: gps.Get("longitude").String(),
			})
		}
	}

	return coords
}

// ParseMenuItems flattens one venue's raw menu response into MenuItem
// records, preserving the source order of meal periods, groups, and items.
// A response without meal periods yields an empty slice, not an error.
func ParseMenuItems(data []byte, restaurant, land string) []MenuItem {
	var items []MenuItem

	for _, period := range gjson.GetBytes(data, "mealPeriods").Array() {
		periodName := stringOr(period.Get("name"), "Unknown")

		for _, group := range period.Get("groups").Array() {
			category := stringOr(group.Get("name"), "Unknown")

			for _, item := range group.Get("items").Array() {
				items = append(items, MenuItem{
					Name:        stringOr(item.Get("title"), "Unknown"),
					Restaurant:  restaurant,
					Cost:        itemCost(item),
					Land:        land,
					MealPeriod:  periodName,
					Description: item.Get("description").String(),
					Category:    category,
				})
			}
		}
	}

	return items
}

// itemCost takes the first price entry's without-tax value. No price means
// the literal "N/A", with no dollar sign.
func itemCost(item gjson.Result) string {
	prices := item.Get("prices").Array()
	if len(prices) == 0 {
		return "N/A"
	}
	price := prices[0].Get("withoutTax")
	if !price.Exists() {
		return "N/A"
	}
	return "$" + price.String()
}

// stringOr substitutes fallback only when the key is absent; a present but
// empty value passes through untouched.
func stringOr(r gjson.Result, fallback string) string {
	if !r.Exists() {
		return fallback
	}
	return r.String()
}

func stringSlice(r gjson.Result) []string {
	arr := r.Array()
	if len(arr) == 0 {
		return nil
	}
	out := make([]string, 0, len(arr))
	for _, v := range arr {
		out = append(out, v.String())
	}
	return out
}
