// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package web is the thin view layer over the fetcher: one page of menu
// items plus operational endpoints for refresh, status, and eviction.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"os"
	"time"

	"github.com/apex/log"
	"github.com/dustin/go-humanize"
	"github.com/gin-gonic/gin"

	"github.com/staranto/parkmenugo/internal/fetcher"
	"github.com/staranto/parkmenugo/internal/park"
)

//go:embed templates/*.html
var templatesFS embed.FS

const dateLayout = "2006-01-02"

// Options are the feature flags and limits the UI honors.
type Options struct {
	DefaultDate        string // empty means "today", resolved per request
	MaxDaysAhead       int
	EnableRefresh      bool
	EnableDateSelector bool
	EnableFavorites    bool
	Version            string
}

// Server wires the fetcher to the gin engine.
type Server struct {
	fetcher *fetcher.Fetcher
	opts    Options
}

func New(f *fetcher.Fetcher, opts Options) *Server {
	if opts.MaxDaysAhead <= 0 {
		opts.MaxDaysAhead = 7 //nolint:mnd
	}
	return &Server{fetcher: f, opts: opts}
}

// Router builds the gin engine with all routes and templates registered.
func (s *Server) Router() *gin.Engine {
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())

	tmpl := template.Must(template.ParseFS(templatesFS, "templates/*.html"))
	r.SetHTMLTemplate(tmpl)

	r.GET("/", s.index)
	r.GET("/health", s.health)
	r.POST("/api/refresh", s.refresh)
	r.GET("/api/status", s.status)
	r.POST("/api/evict", s.evict)

	r.NoRoute(func(c *gin.Context) {
		c.HTML(http.StatusNotFound, "error.html", gin.H{"error": "Page not found"})
	})

	return r
}

// Run serves until the listener fails.
func (s *Server) Run(host string, port int) error {
	addr := fmt.Sprintf("%s:%d", host, port)
	log.Infof("serving on http://%s", addr)
	return s.Router().Run(addr)
}

// dateOption is one entry of the date selector.
type dateOption struct {
	Value   string
	Display string
}

func (s *Server) defaultDate(today time.Time) string {
	if s.opts.DefaultDate != "" {
		return s.opts.DefaultDate
	}
	return today.Format(dateLayout)
}

// clampDate validates a user-selected date and clamps it into the
// [today, today+MaxDaysAhead] window; anything unparsable becomes default.
func (s *Server) clampDate(selected string, today time.Time) string {
	fallback := s.defaultDate(today)
	// Parse in today's zone; UTC midnight vs local midnight would push the
	// furthest allowed date past maxDate east of Greenwich.
	d, err := time.ParseInLocation(dateLayout, selected, today.Location())
	if err != nil {
		return fallback
	}
	maxDate := today.AddDate(0, 0, s.opts.MaxDaysAhead)
	if d.Before(today) || d.After(maxDate) {
		return fallback
	}
	return selected
}

func (s *Server) availableDates(today time.Time) []dateOption {
	options := make([]dateOption, 0, s.opts.MaxDaysAhead+1)
	for i := 0; i <= s.opts.MaxDaysAhead; i++ {
		d := today.AddDate(0, 0, i)
		display := d.Format("Mon Jan 02")
		switch i {
		case 0:
			display = "Today"
		case 1:
			display = "Tomorrow"
		}
		options = append(options, dateOption{Value: d.Format(dateLayout), Display: display})
	}
	return options
}

func today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

func (s *Server) index(c *gin.Context) {
	tab := c.DefaultQuery("tab", "food")
	if tab != "beverages" {
		tab = "food"
	}

	now := today()
	date := s.clampDate(c.DefaultQuery("date", s.defaultDate(now)), now)

	res := s.fetcher.Venues(c.Request.Context(), date)
	if res.Empty() && res.Reason != fetcher.ReasonNone {
		log.Errorf("fetch for %s returned no data: %s", date, res.Reason)
	}

	items, lands := park.Flatten(res.Venues, tab == "beverages")

	lastUpdated := "never"
	if at, ok := s.fetcher.Store().LatestModTime(); ok {
		lastUpdated = humanize.Time(at)
	}

	c.HTML(http.StatusOK, "index.html", gin.H{
		"menu_items":           items,
		"locations":            lands,
		"active_tab":           tab,
		"selected_date":        date,
		"available_dates":      s.availableDates(now),
		"show_refresh":         s.opts.EnableRefresh,
		"enable_favorites":     s.opts.EnableFavorites,
		"enable_date_selector": s.opts.EnableDateSelector,
		"data_source":          res.Source.String(),
		"last_updated":         lastUpdated,
	})
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "parkmenu",
		"version": s.opts.Version,
	})
}

func (s *Server) refresh(c *gin.Context) {
	if !s.opts.EnableRefresh {
		c.JSON(http.StatusForbidden, gin.H{"error": "Refresh disabled"})
		return
	}

	var body struct {
		Date string `json:"date"`
	}
	_ = c.ShouldBindJSON(&body) // empty body means default date

	now := today()
	date := s.clampDate(body.Date, now)

	res, removed := s.fetcher.Refresh(c.Request.Context(), date)
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   fmt.Sprintf("Refreshed data for %d venues on %s", len(res.Venues), date),
		"removed":   removed,
		"source":    res.Source.String(),
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (s *Server) status(c *gin.Context) {
	store := s.fetcher.Store()

	lastUpdated := ""
	if at, ok := store.LatestModTime(); ok {
		lastUpdated = at.Format(time.RFC3339)
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"config": gin.H{
			"default_date":    s.defaultDate(today()),
			"cache_enabled":   store.Enabled(),
			"cache_hours":     store.Hours(),
			"cache_mode":      store.Mode().String(),
			"refresh_enabled": s.opts.EnableRefresh,
		},
		"last_updated": lastUpdated,
		"timestamp":    time.Now().Format(time.RFC3339),
	})
}

func (s *Server) evict(c *gin.Context) {
	var body struct {
		Days int `json:"days"`
	}
	_ = c.ShouldBindJSON(&body)
	if body.Days <= 0 {
		body.Days = 7 //nolint:mnd
	}

	removed, err := s.fetcher.Store().EvictOlderThan(body.Days)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"removed": removed,
		"days":    body.Days,
	})
}
