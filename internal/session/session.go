// Package session configures the HTTP session manager that binds a browser
// to its portal instance.
package session

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/alexedwards/scs/v2/memstore"
)

// CookieName is the session cookie name outside development.
const CookieName = "__Host-portal"

// PortalKey is the session key holding the browser's portal instance id.
const PortalKey = "portal_id"

// New creates a session manager. Sessions live in the sessions table of db
// when it is non-nil and in memory otherwise.
func New(db *sql.DB, lifetime time.Duration, isDev bool) *scs.SessionManager {
	sm := scs.New()

	if db != nil {
		sm.Store = sqlite3store.New(db)
	} else {
		sm.Store = memstore.New()
	}

	if lifetime <= 0 {
		lifetime = 24 * time.Hour
	}
	sm.Lifetime = lifetime
	sm.Cookie.HttpOnly = true
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Path = "/"
	sm.Cookie.Secure = !isDev

	// The __Host- prefix requires Secure and Path=/.
	if !isDev {
		sm.Cookie.Name = CookieName
	}

	return sm
}
