// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(srv *httptest.Server) *Client {
	return New(Options{BaseURL: srv.URL, Destination: "dlr/80008297"})
}

func TestAcquireToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/finder/api/v1/authz/public", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.NotEmpty(t, r.Header.Get("Undefined"), "conversation id header")

		http.SetCookie(w, &http.Cookie{Name: "__d", Value: "tok-123"})
		w.Write([]byte(`{"isLoggedIn":false}`))
	}))
	defer srv.Close()

	token, body, err := newTestClient(srv).AcquireToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-123", token)
	assert.JSONEq(t, `{"isLoggedIn":false}`, string(body))
}

func TestAcquireToken_NoCookie(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	_, _, err := newTestClient(srv).AcquireToken(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "__d")
}

func TestAcquireToken_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, _, err := newTestClient(srv).AcquireToken(context.Background())
	assert.Error(t, err)
}

func TestListVenues(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t,
			"/finder/api/v1/explorer-service/list-ancestor-entities/dlr/80008297;entityType=destination/2024-06-01/dining",
			r.URL.Path)
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		w.Write([]byte(`{"results":[]}`))
	}))
	defer srv.Close()

	body, err := newTestClient(srv).ListVenues(context.Background(), "tok-123", "2024-06-01")
	require.NoError(t, err)
	assert.JSONEq(t, `{"results":[]}`, string(body))
}

func TestListVenues_Non2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := newTestClient(srv).ListVenues(context.Background(), "bad", "2024-06-01")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestFetchMenu(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/dining/dinemenu/api/menu", r.URL.Path)
		assert.Equal(t, "blue-bayou-restaurant", r.URL.Query().Get("searchTerm"))
		assert.Equal(t, "en-us", r.URL.Query().Get("language"))
		w.Write([]byte(`{"mealPeriods":[]}`))
	}))
	defer srv.Close()

	body, err := newTestClient(srv).FetchMenu(context.Background(), "blue-bayou-restaurant")
	require.NoError(t, err)
	assert.JSONEq(t, `{"mealPeriods":[]}`, string(body))
}

func TestCookieJarCarriesSession(t *testing.T) {
	var sawCookie bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/finder/api/v1/authz/public":
			http.SetCookie(w, &http.Cookie{Name: "__d", Value: "tok-xyz"})
			w.Write([]byte(`{}`))
		default:
			if ck, err := r.Cookie("__d"); err == nil && ck.Value == "tok-xyz" {
				sawCookie = true
			}
			w.Write([]byte(`{"mealPeriods":[]}`))
		}
	}))
	defer srv.Close()

	c := newTestClient(srv)
	_, _, err := c.AcquireToken(context.Background())
	require.NoError(t, err)
	_, err = c.FetchMenu(context.Background(), "anything")
	require.NoError(t, err)
	assert.True(t, sawCookie, "second call reuses the session cookie")
}
