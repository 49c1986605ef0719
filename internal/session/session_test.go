// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2/memstore"

	"github.com/olegiv/gov-portal/internal/testutil"
)

func TestNew_Stores(t *testing.T) {
	sm := New(nil, time.Hour, true)
	if _, ok := sm.Store.(*memstore.MemStore); !ok {
		t.Errorf("Store = %T, want *memstore.MemStore", sm.Store)
	}

	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	sm = New(db, time.Hour, true)
	if _, ok := sm.Store.(*sqlite3store.SQLite3Store); !ok {
		t.Errorf("Store = %T, want *sqlite3store.SQLite3Store", sm.Store)
	}
}

func TestNew_DevMode(t *testing.T) {
	sm := New(nil, 0, true)

	if sm.Cookie.Secure {
		t.Error("expected Cookie.Secure = false in dev mode")
	}
	if sm.Cookie.Name == CookieName {
		t.Error("expected default cookie name in dev mode")
	}
	if sm.Lifetime != 24*time.Hour {
		t.Errorf("Lifetime = %v, want 24h", sm.Lifetime)
	}
}

func TestNew_ProductionMode(t *testing.T) {
	sm := New(nil, 2*time.Hour, false)

	if !sm.Cookie.Secure {
		t.Error("expected Cookie.Secure = true in production mode")
	}
	if sm.Cookie.Name != CookieName {
		t.Errorf("cookie name = %q, want %q", sm.Cookie.Name, CookieName)
	}
	if sm.Cookie.Path != "/" {
		t.Errorf("expected Cookie.Path = '/', got %q", sm.Cookie.Path)
	}
	if !sm.Cookie.HttpOnly || sm.Cookie.SameSite != http.SameSiteLaxMode {
		t.Error("expected HttpOnly Lax cookie")
	}
	if sm.Lifetime != 2*time.Hour {
		t.Errorf("Lifetime = %v, want 2h", sm.Lifetime)
	}
}

func TestPortalKeyRoundTrip(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	sm := New(db, time.Hour, true)

	var cookie *http.Cookie
	put := sm.LoadAndSave(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sm.Put(r.Context(), PortalKey, "abc")
	}))
	rec := httptest.NewRecorder()
	put.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	for _, c := range rec.Result().Cookies() {
		if c.Name == sm.Cookie.Name {
			cookie = c
		}
	}
	if cookie == nil {
		t.Fatal("no session cookie set")
	}

	var got string
	get := sm.LoadAndSave(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = sm.GetString(r.Context(), PortalKey)
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	get.ServeHTTP(httptest.NewRecorder(), req)

	if got != "abc" {
		t.Errorf("GetString = %q, want abc", got)
	}
}
