// Package session stores the authenticated upstream session. The cookie
// value lives in the OS credential store; session.json next to the runtime
// data carries only metadata about it.
package session

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/zalando/go-keyring"

	"draftkit/internal/apperr"
	"draftkit/internal/config"
)

const (
	// Service name for the OS credential store.
	credentialService = "draftkit"
	// Key for the upstream session cookie.
	sessionCookieKey = "session_cookie"
)

// Session is an authenticated upstream session.
type Session struct {
	// Cookie is the session cookie value. Never written to disk.
	Cookie string `json:"-"`
	// ExpiresAt is the Unix timestamp the session expires at, 0 when the
	// upstream issued a browser-lifetime cookie with no expiry.
	ExpiresAt int64 `json:"expires_at,omitempty"`
	// Domain the cookie is valid for.
	Domain string `json:"domain"`
}

// IsExpired reports whether the session is past its expiry. Sessions with
// no expiry info are assumed valid and fail on use if they are not.
func (s *Session) IsExpired() bool {
	return s.ExpiresAt != 0 && s.ExpiresAt <= time.Now().Unix()
}

// IsExpiringSoon reports whether the session expires within 24 hours.
func (s *Session) IsExpiringSoon() bool {
	return s.ExpiresAt != 0 && s.ExpiresAt <= time.Now().Add(24*time.Hour).Unix()
}

// Manager reads and writes the stored session.
type Manager struct {
	paths   config.DataPaths
	service string
}

func NewManager(paths config.DataPaths) *Manager {
	return &Manager{paths: paths, service: credentialService}
}

// metadata is the session.json shape. The cookie itself is referenced by
// credential-store key only.
type metadata struct {
	CookieRef string `json:"cookie_ref"`
	ExpiresAt int64  `json:"expires_at,omitempty"`
	Domain    string `json:"domain"`
}

// Save stores the cookie in the credential store and writes the metadata
// file. The metadata write goes through a temp file and rename.
func (m *Manager) Save(s *Session) error {
	if s.Cookie == "" {
		return apperr.InvalidInputf("session cookie cannot be empty")
	}

	if err := keyring.Set(m.service, sessionCookieKey, s.Cookie); err != nil {
		return apperr.Transientf("storing session cookie in credential store: %v", err)
	}

	meta := metadata{
		CookieRef: sessionCookieKey,
		ExpiresAt: s.ExpiresAt,
		Domain:    s.Domain,
	}
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return apperr.Transientf("encoding session metadata: %v", err)
	}

	path := m.paths.SessionFile()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return apperr.Transientf("creating data directory: %v", err)
	}
	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0o600); err != nil {
		return apperr.Transientf("writing session metadata: %v", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return apperr.Transientf("moving session metadata into place: %v", err)
	}
	return nil
}

// Load returns the stored session. A missing metadata file or a missing
// credential-store entry both come back as NotFound.
func (m *Manager) Load() (*Session, error) {
	data, err := os.ReadFile(m.paths.SessionFile())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperr.NotFoundf("not authenticated; run draftkit auth")
		}
		return nil, apperr.Transientf("reading session metadata: %v", err)
	}

	var meta metadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, apperr.Statef("session metadata is corrupt; run draftkit auth: %v", err)
	}

	cookie, err := keyring.Get(m.service, sessionCookieKey)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return nil, apperr.NotFoundf("session cookie missing from credential store; run draftkit auth")
		}
		return nil, apperr.Transientf("reading session cookie from credential store: %v", err)
	}

	return &Session{
		Cookie:    cookie,
		ExpiresAt: meta.ExpiresAt,
		Domain:    meta.Domain,
	}, nil
}

// Exists reports whether a session is stored, without touching the
// credential store.
func (m *Manager) Exists() bool {
	info, err := os.Stat(m.paths.SessionFile())
	return err == nil && info.Mode().IsRegular()
}

// Clear removes the stored session. Clearing when nothing is stored is
// not an error.
func (m *Manager) Clear() error {
	if err := keyring.Delete(m.service, sessionCookieKey); err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return apperr.Transientf("removing session cookie from credential store: %v", err)
	}
	if err := os.Remove(m.paths.SessionFile()); err != nil && !os.IsNotExist(err) {
		return apperr.Transientf("removing session metadata: %v", err)
	}
	return nil
}
