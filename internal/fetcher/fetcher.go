// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package fetcher sequences one fetch cycle: whole-date cache check, auth,
// listing, per-venue menus, extraction persist. Everything degrades to an
// empty result with a tagged reason; nothing here is fatal to the caller.
package fetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/apex/log"

	"github.com/staranto/parkmenugo/internal/api"
	"github.com/staranto/parkmenugo/internal/cache"
	"github.com/staranto/parkmenugo/internal/park"
)

// Cache categories. The filename prefix is the only persisted index, so
// these strings are part of the on-disk format.
const (
	CategoryAuth    = "auth_response"
	CategoryListing = "venues_response"
	CategoryMenu    = "menu_response"
	CategoryExtract = "extracted_venues"
)

// Source says where a Result's data came from.
type Source int

const (
	SourceEmpty Source = iota
	SourceCache
	SourceLive
)

func (s Source) String() string {
	switch s {
	case SourceCache:
		return "cache"
	case SourceLive:
		return "live"
	default:
		return "empty"
	}
}

// Reason qualifies an empty Result so callers and tests can tell "no data
// existed" from "a transient failure happened".
type Reason int

const (
	ReasonNone Reason = iota
	ReasonAuthFailed
	ReasonListFailed
)

func (r Reason) String() string {
	switch r {
	case ReasonAuthFailed:
		return "auth-failed"
	case ReasonListFailed:
		return "list-failed"
	default:
		return "none"
	}
}

// Result is the tagged outcome of one fetch cycle.
type Result struct {
	Venues []park.Venue
	Source Source
	Reason Reason
}

// Empty reports whether the cycle produced no venues at all.
func (r Result) Empty() bool { return len(r.Venues) == 0 }

// Fetcher is the orchestrator facade over the API client and cache store.
type Fetcher struct {
	client *api.Client
	store  *cache.Store
}

func New(client *api.Client, store *cache.Store) *Fetcher {
	return &Fetcher{client: client, store: store}
}

// Store exposes the underlying cache for status/eviction surfaces.
func (f *Fetcher) Store() *cache.Store { return f.store }

// Venues runs one fetch cycle for date (YYYY-MM-DD). A fresh whole-date
// extraction short-circuits the cycle with zero network calls.
func (f *Fetcher) Venues(ctx context.Context, date string) Result {
	if path, ok := f.store.FindLatest(CategoryExtract, "", date); ok && f.store.IsFresh(path) {
		venues, err := loadExtraction(path)
		if err == nil {
			log.Debugf("using cached extraction %s (%d venues)", path, len(venues))
			return Result{Venues: venues, Source: SourceCache}
		}
		// Unreadable extraction file; fall through to a live fetch.
		log.WithError(err).Warnf("failed to read cached extraction %s", path)
	}

	token, authBody, err := f.client.AcquireToken(ctx)
	if len(authBody) > 0 {
		f.persist(CategoryAuth, "", "", authBody)
	}
	if err != nil {
		log.WithError(err).Error("failed to acquire auth token")
		return Result{Source: SourceEmpty, Reason: ReasonAuthFailed}
	}

	raw, err := f.client.ListVenues(ctx, token, date)
	if err != nil {
		log.WithError(err).Error("failed to fetch venue listing")
		return Result{Source: SourceEmpty, Reason: ReasonListFailed}
	}
	// Raw listings are persisted unconditionally; the short-circuit above is
	// the only thing that skips this call.
	f.persist(CategoryListing, "", "", raw)

	venues := park.ParseVenues(raw)
	for i := range venues {
		if venues[i].Slug == "" {
			continue
		}
		venues[i].MenuItems = f.menuItems(ctx, venues[i], date)
	}

	if out, err := json.MarshalIndent(venues, "", "  "); err == nil {
		f.persist(CategoryExtract, "", date, out)
	} else {
		log.WithError(err).Warn("failed to marshal extraction")
	}

	return Result{Venues: venues, Source: SourceLive}
}

// Refresh deletes every cache file whose name contains the date substring,
// then runs a fresh cycle. Returns the result and the number of files gone.
func (f *Fetcher) Refresh(ctx context.Context, date string) (Result, int) {
	removed, err := f.store.DeleteMatching(date)
	if err != nil {
		log.WithError(err).Warnf("failed to purge cache for %s", date)
	}
	log.Debugf("refresh purged %d cache files for %s", removed, date)
	return f.Venues(ctx, date), removed
}

// menuItems resolves one venue's menu, cache first. Every failure path
// degrades to an empty list for that venue rather than aborting the cycle.
func (f *Fetcher) menuItems(ctx context.Context, v park.Venue, date string) []park.MenuItem {
	if path, ok := f.store.FindLatest(CategoryMenu, v.Slug, date); ok && f.store.IsFresh(path) {
		if data, err := os.ReadFile(path); err == nil {
			log.Debugf("using cached menu for %s from %s", v.Name, path)
			return park.ParseMenuItems(data, v.Name, v.Land)
		}
	}

	raw, err := f.client.FetchMenu(ctx, v.Slug)
	if err != nil {
		log.WithError(err).Warnf("failed to fetch menu for %s", v.Name)
		return nil
	}
	f.persist(CategoryMenu, v.Slug, date, raw)

	return park.ParseMenuItems(raw, v.Name, v.Land)
}

func (f *Fetcher) persist(category, key, date string, payload []byte) {
	if _, err := f.store.Write(category, key, date, payload); err != nil {
		log.WithError(err).Warnf("failed to cache %s", cache.Key(category, key, date))
	}
}

func loadExtraction(path string) ([]park.Venue, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read extraction: %w", err)
	}
	var venues []park.Venue
	if err := json.Unmarshal(data, &venues); err != nil {
		return nil, fmt.Errorf("failed to parse extraction: %w", err)
	}
	return venues, nil
}
