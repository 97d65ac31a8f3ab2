// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package cache is a flat directory of timestamped JSON files. The filename
// is the whole index: {category}_{key}_{date}_{YYYYMMDD_HHMMSS}.json, with
// empty segments elided. The newest file for a prefix is authoritative.
package cache

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/apex/log"
)

// Mode is the storage mode of the cache directory, probed once at startup.
// On a read-only mount the store never writes and treats any existing file
// as fresh, for deployments where cache population happens out-of-band.
type Mode int

const (
	ModeReadWrite Mode = iota
	ModeReadOnly
)

func (m Mode) String() string {
	if m == ModeReadOnly {
		return "read-only"
	}
	return "read-write"
}

const stampLayout = "20060102_150405"

// Store is a file-based cache with time-based expiry.
type Store struct {
	dir     string
	enabled bool
	hours   int
	mode    Mode
}

// DetectMode probe-writes into dir to decide whether the store is writable.
func DetectMode(dir string) Mode {
	probe := filepath.Join(dir, ".probe")
	if err := os.WriteFile(probe, []byte{}, 0o600); err != nil {
		log.Infof("cache dir %s is not writable, treating as read-only", dir)
		return ModeReadOnly
	}
	_ = os.Remove(probe)
	return ModeReadWrite
}

// New builds a Store over dir. The directory is created if missing (best
// effort; a failure there just means the probe will flag it read-only).
// hours is the freshness window for IsFresh.
func New(dir string, enabled bool, hours int, mode Mode) *Store {
	return &Store{
		dir:     dir,
		enabled: enabled,
		hours:   hours,
		mode:    mode,
	}
}

// Open creates dir if needed, probes it, and returns the Store.
func Open(dir string, enabled bool, hours int) *Store {
	if err := os.MkdirAll(dir, 0o755); err != nil { //nolint:mnd
		log.WithError(err).Infof("failed to create cache directory %s", dir)
	}
	return New(dir, enabled, hours, DetectMode(dir))
}

func (s *Store) Dir() string   { return s.dir }
func (s *Store) Enabled() bool { return s.enabled }
func (s *Store) Mode() Mode    { return s.mode }
func (s *Store) Hours() int    { return s.hours }

// Key joins the non-empty name segments with "_". It is exported so tests
// and callers can reason about filenames without duplicating the scheme.
func Key(category, key, date string) string {
	parts := make([]string, 0, 3) //nolint:mnd
	for _, p := range []string{category, key, date} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, "_")
}

// Write persists payload under a new timestamp-suffixed filename and returns
// the path. It never overwrites: a same-second collision gets a counter
// suffix. Disabled or read-only stores are a logged no-op, not an error;
// permission failures on a nominally writable store are returned so the
// caller can decide how loud to be.
func (s *Store) Write(category, key, date string, payload []byte) (string, error) {
	if !s.enabled {
		return "", nil
	}
	if s.mode == ModeReadOnly {
		log.Debugf("cache read-only, skipping write of %s", Key(category, key, date))
		return "", nil
	}

	stamp := time.Now().Format(stampLayout)
	name := fmt.Sprintf("%s_%s.json", Key(category, key, date), stamp)
	path := filepath.Join(s.dir, name)

	// Collisions only happen when two writes land in the same second.
	for n := 1; ; n++ {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			break
		}
		path = filepath.Join(s.dir, fmt.Sprintf("%s_%s_%d.json", Key(category, key, date), stamp, n))
	}

	if err := os.WriteFile(path, payload, os.FileMode(0o600)); err != nil { //nolint:mnd
		if os.IsPermission(err) {
			log.WithError(err).Infof("cache write skipped (permission): %s", path)
			return "", nil
		}
		return "", fmt.Errorf("failed to write to cache: %w", err)
	}
	return path, nil
}

// stampRe is the trailing timestamp of a cache filename, with the optional
// same-second collision counter.
var stampRe = regexp.MustCompile(`^\d{8}_\d{6}(_\d+)?\.json$`)

// FindLatest returns the path of the newest file whose name starts with
// {category}_{key}_{date}_. If none match, it retries without the date
// segment for backward compatibility with pre-dated cache files. The
// fallback accepts only true legacy names (prefix followed by nothing but
// the timestamp), so a file written for a different date never satisfies
// another date's lookup.
func (s *Store) FindLatest(category, key, date string) (string, bool) {
	if date != "" {
		if p, ok := s.latestWithPrefix(Key(category, key, date)+"_", false); ok {
			return p, true
		}
	}
	return s.latestWithPrefix(Key(category, key, "")+"_", true)
}

func (s *Store) latestWithPrefix(prefix string, legacyOnly bool) (string, bool) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return "", false
	}

	var (
		latest   string
		latestAt time.Time
	)
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, ".json") {
			continue
		}
		if legacyOnly && !stampRe.MatchString(strings.TrimPrefix(name, prefix)) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if latest == "" || info.ModTime().After(latestAt) {
			latest = filepath.Join(s.dir, name)
			latestAt = info.ModTime()
		}
	}

	return latest, latest != ""
}

// IsFresh reports whether path is recent enough to serve. On a read-only
// store any existing file is fresh regardless of age.
func (s *Store) IsFresh(path string) bool {
	return s.IsFreshFor(path, s.hours)
}

// IsFreshFor is IsFresh with an explicit window.
func (s *Store) IsFreshFor(path string, hours int) bool {
	if !s.enabled || path == "" {
		return false
	}

	info, err := os.Stat(path)
	if err != nil {
		return false
	}

	if s.mode == ModeReadOnly {
		return true
	}

	return time.Since(info.ModTime()) < time.Duration(hours)*time.Hour
}

// EvictOlderThan removes every JSON file whose modification time precedes
// now minus days, and reports how many went. Failures on individual files
// are logged, not raised.
func (s *Store) EvictOlderThan(days int) (int, error) {
	if days <= 0 {
		log.Debug("cache eviction disabled")
		return 0, nil
	}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return 0, fmt.Errorf("failed to scan cache directory: %w", err)
	}

	maxAge := time.Duration(days) * 24 * time.Hour //nolint:mnd
	removed := 0
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if time.Since(info.ModTime()) <= maxAge {
			continue
		}
		path := filepath.Join(s.dir, e.Name())
		if err := os.Remove(path); err == nil {
			removed++
			log.Debugf("removed cache file %s", path)
		} else {
			log.WithError(err).Warnf("failed to remove cache file %s", path)
		}
	}

	return removed, nil
}

// DeleteMatching removes every JSON file whose name contains substr. It
// backs the web refresh endpoint, which purges one date before re-fetching.
func (s *Store) DeleteMatching(substr string) (int, error) {
	if substr == "" {
		return 0, nil
	}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return 0, fmt.Errorf("failed to scan cache directory: %w", err)
	}

	removed := 0
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") || !strings.Contains(e.Name(), substr) {
			continue
		}
		path := filepath.Join(s.dir, e.Name())
		if err := os.Remove(path); err == nil {
			removed++
		} else {
			log.WithError(err).Warnf("failed to remove cache file %s", path)
		}
	}

	return removed, nil
}

// LatestModTime returns the newest modification time across all JSON files,
// skipping hidden files. Backs the "last updated" indicator in the UI.
func (s *Store) LatestModTime() (time.Time, bool) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return time.Time{}, false
	}

	var (
		latest time.Time
		found  bool
	)
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, ".") || !strings.HasSuffix(name, ".json") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if !found || info.ModTime().After(latest) {
			latest = info.ModTime()
			found = true
		}
	}

	return latest, found
}
