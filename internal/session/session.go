// Package session holds the per-request session object the HTTP handlers read
// and write. Values are strings keyed by the domain.Session* constants.
package session

import (
	"crypto/sha256"
	"io"
	"log/slog"
	"net/http"

	"github.com/gorilla/sessions"
	"golang.org/x/crypto/hkdf"
)

// Options returns the cookie options shared by every backend.
func Options(maxAge int, secure bool) *sessions.Options {
	return &sessions.Options{
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// DeriveKeys expands one secret into independent HMAC and AES-256 keys.
func DeriveKeys(secret []byte) (hashKey, blockKey []byte) {
	return expand(secret, "session hash key", 64), expand(secret, "session block key", 32)
}

func expand(secret []byte, info string, n int) []byte {
	key := make([]byte, n)
	// hkdf only fails past 255 digests of output.
	if _, err := io.ReadFull(hkdf.New(sha256.New, secret, nil, []byte(info)), key); err != nil {
		panic(err)
	}
	return key
}

// NewCookieStore returns a client-side store whose cookie is signed and
// encrypted with keys derived from secret. Codes parked in the session must
// not be readable by the browser holding it.
func NewCookieStore(secret []byte, opts *sessions.Options) *sessions.CookieStore {
	store := sessions.NewCookieStore(DeriveKeys(secret))
	store.Options = opts
	store.MaxAge(opts.MaxAge)
	return store
}

// Manager loads sessions from a gorilla sessions.Store.
type Manager struct {
	store sessions.Store
	name  string
}

func NewManager(store sessions.Store, name string) *Manager {
	return &Manager{store: store, name: name}
}

// Load returns the session for r. A cookie that fails to decode (tampered,
// expired or signed with a rotated key) yields a fresh empty session.
func (m *Manager) Load(r *http.Request) *Session {
	raw, err := m.store.Get(r, m.name)
	if err != nil {
		slog.WarnContext(r.Context(), "discarding unreadable session", "err", err)
		if raw == nil {
			raw = sessions.NewSession(m.store, m.name)
		}
		raw.Values = make(map[interface{}]interface{})
		raw.IsNew = true
	}
	return &Session{raw: raw}
}

// Session is the mutable per-request view of the visitor's session.
// Changes are only persisted by Save.
type Session struct {
	raw *sessions.Session
}

// Get returns the string stored under key. Empty values count as missing.
func (s *Session) Get(key string) (string, bool) {
	v, ok := s.raw.Values[key].(string)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

func (s *Session) Set(key, value string) {
	s.raw.Values[key] = value
}

func (s *Session) Delete(keys ...string) {
	for _, k := range keys {
		delete(s.raw.Values, k)
	}
}

// Clear drops every value and expires the session on the next Save.
func (s *Session) Clear() {
	for k := range s.raw.Values {
		delete(s.raw.Values, k)
	}
	s.raw.Options.MaxAge = -1
}

func (s *Session) Save(r *http.Request, w http.ResponseWriter) error {
	return s.raw.Save(r, w)
}
