package session

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// The token is persisted the way the browser build stored it: a single
// cookie-like record under the hexToken key, with an expiry attribute.
const cookieName = "hexToken"

// CookieStore is the file-backed persistence for the session token.
type CookieStore struct {
	path string
}

func NewCookieStore(path string) *CookieStore {
	return &CookieStore{path: path}
}

// ReadToken returns the persisted token, or empty when none is stored or the
// stored record has expired. An expired record is equivalent to no record.
func (s *CookieStore) ReadToken() (string, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}

		return "", err
	}

	token, expires := parseCookie(string(raw))
	if token == "" {
		return "", nil
	}

	if !expires.IsZero() && expires.Before(time.Now()) {
		return "", nil
	}

	return token, nil
}

func (s *CookieStore) WriteToken(token string, expires time.Time) error {
	record := fmt.Sprintf("%s=%s; expires=%s; path=/",
		cookieName, token, expires.UTC().Format(time.RFC1123))

	return os.WriteFile(s.path, []byte(record), 0o600)
}

func (s *CookieStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return err
	}

	return nil
}

// parseCookie splits the record on "; " and each attribute on "=".
func parseCookie(raw string) (string, time.Time) {
	var token string

	var expires time.Time

	for _, part := range strings.Split(strings.TrimSpace(raw), "; ") {
		name, value, found := strings.Cut(part, "=")
		if !found {
			continue
		}

		switch name {
		case cookieName:
			token = value
		case "expires":
			if parsed, err := time.Parse(time.RFC1123, value); err == nil {
				expires = parsed
			}
		}
	}

	return token, expires
}
