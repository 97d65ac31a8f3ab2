// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package api wraps the park's public finder API: one cookie-bearing
// session reused across the auth, listing, and menu calls of a fetch cycle.
package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	"github.com/apex/log"
	"github.com/google/uuid"

	"github.com/staranto/parkmenugo/internal/config"
)

const (
	DefaultBaseURL     = "https://disneyland.disney.go.com"
	DefaultDestination = "dlr/80008297"
	DefaultUserAgent   = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36"

	authzPath = "/finder/api/v1/authz/public"
	menuPath  = "/dining/dinemenu/api/menu"

	// tokenCookie is where the authz endpoint parks the bearer token.
	tokenCookie = "__d"
)

// Options configure a Client. Zero values fall back to defaults.
type Options struct {
	BaseURL     string
	Destination string
	UserAgent   string
	Timeout     time.Duration
}

// Client is the session-scoped API wrapper. One Client is expected per fetch
// cycle; the cookie jar carries the auth state between calls.
type Client struct {
	base         string
	destination  string
	userAgent    string
	conversation string
	http         *http.Client
}

// New builds a Client with a fresh cookie jar and conversation id.
func New(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Destination == "" {
		opts.Destination = DefaultDestination
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second //nolint:mnd
	}

	// cookiejar.New never fails with a nil options struct.
	jar, _ := cookiejar.New(nil)

	return &Client{
		base:         opts.BaseURL,
		destination:  opts.Destination,
		userAgent:    opts.UserAgent,
		conversation: uuid.NewString(),
		http: &http.Client{
			Jar:     jar,
			Timeout: opts.Timeout,
		},
	}
}

// FromConfig builds a Client from the config file / env settings.
func FromConfig() *Client {
	base, _ := config.GetString("api.base_url", DefaultBaseURL)
	dest, _ := config.GetString("api.destination", DefaultDestination)
	ua, _ := config.GetString("user_agent", DefaultUserAgent)
	timeout := config.GetDuration("api.timeout", 30*time.Second) //nolint:mnd

	// api.retries is accepted for compatibility but fetch logic is
	// deliberately single-shot; see the fetcher.
	if retries, err := config.GetInt("api.retries", 3); err == nil && retries != 3 { //nolint:mnd
		log.Debugf("api.retries=%d configured but retries are not implemented", retries)
	}

	return New(Options{BaseURL: base, Destination: dest, UserAgent: ua, Timeout: timeout})
}

// AcquireToken POSTs an empty JSON body to the authz endpoint and reads the
// bearer token from the session cookie. The raw response body is returned so
// the caller can persist it alongside the other payloads.
func (c *Client) AcquireToken(ctx context.Context) (string, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+authzPath, bytes.NewBufferString("{}"))
	if err != nil {
		return "", nil, fmt.Errorf("failed to create authz request: %w", err)
	}
	c.applyHeaders(req)

	body, resp, err := c.do(req)
	if err != nil {
		return "", nil, err
	}

	// The token may arrive on this response or already sit in the jar.
	for _, ck := range resp.Cookies() {
		if ck.Name == tokenCookie {
			return ck.Value, body, nil
		}
	}
	if u, err := url.Parse(c.base); err == nil {
		for _, ck := range c.http.Jar.Cookies(u) {
			if ck.Name == tokenCookie {
				return ck.Value, body, nil
			}
		}
	}

	return "", body, fmt.Errorf("authz response did not set the %s cookie", tokenCookie)
}

// ListVenues GETs the destination/date-scoped dining listing using the
// bearer token from AcquireToken.
func (c *Client) ListVenues(ctx context.Context, token, date string) ([]byte, error) {
	u := fmt.Sprintf("%s/finder/api/v1/explorer-service/list-ancestor-entities/%s;entityType=destination/%s/dining",
		c.base, c.destination, date)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create listing request: %w", err)
	}
	c.applyHeaders(req)
	req.Header.Set("Authorization", "Bearer "+token)

	body, _, err := c.do(req)
	return body, err
}

// FetchMenu GETs one venue's menu by its url-friendly id.
func (c *Client) FetchMenu(ctx context.Context, slug string) ([]byte, error) {
	u, err := url.Parse(c.base + menuPath)
	if err != nil {
		return nil, fmt.Errorf("failed to build menu url: %w", err)
	}
	q := u.Query()
	q.Set("searchTerm", slug)
	q.Set("language", "en-us")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create menu request: %w", err)
	}
	c.applyHeaders(req)

	body, _, err := c.do(req)
	return body, err
}

// applyHeaders sets the fixed header set used on every call.
func (c *Client) applyHeaders(req *http.Request) {
	if u, err := url.Parse(c.base); err == nil {
		req.Host = u.Host
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Language", "en_US")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Origin", c.base)
	req.Header.Set("Referer", c.base+"/dining/")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Sec-Fetch-Site", "same-origin")
	req.Header.Set("Sec-Fetch-Mode", "cors")
	req.Header.Set("Sec-Fetch-Dest", "empty")
	// Upstream correlates the calls of one session by this oddly-named
	// header; the name is theirs, not ours.
	req.Header.Set("Undefined", c.conversation)
}

// do executes the request, slurps the body, and fails on non-2xx.
func (c *Client) do(req *http.Request) ([]byte, *http.Response, error) {
	log.Debugf("%s %s", req.Method, req.URL)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp, fmt.Errorf("failed to read response: %w", err)
	}

	log.Debugf("%s %s -> %d (%d bytes)", req.Method, req.URL.Path, resp.StatusCode, len(body))

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return body, resp, fmt.Errorf("%s returned %s", req.URL.Path, resp.Status)
	}

	return body, resp, nil
}
