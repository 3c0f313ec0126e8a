package session

import (
	"context"
	"log/slog"
	"sync"

	"github.com/hexadmin/catalog-console/internal/client"
)

type Status int

const (
	StatusUnknown Status = iota
	StatusUnauthenticated
	StatusAuthenticated
)

// Gate owns the session token and the authenticated/unauthenticated state.
// It is the only writer of the token; every other component reads it through
// the TokenSource interface.
type Gate struct {
	mu     sync.Mutex
	log    *slog.Logger
	store  *CookieStore
	token  string
	status Status
}

func NewGate(store *CookieStore, log *slog.Logger) *Gate {
	return &Gate{log: log, store: store, status: StatusUnknown}
}

// Token implements client.TokenSource.
func (g *Gate) Token() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.token
}

func (g *Gate) Status() Status {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.status
}

func (g *Gate) Authenticated() bool {
	return g.Status() == StatusAuthenticated
}

// Restore reads the persisted token and verifies it against the session-check
// endpoint. An absent token means unauthenticated with no network call; a
// failed check means unauthenticated with no retry loop.
func (g *Gate) Restore(ctx context.Context, api client.Client) Status {
	token, err := g.store.ReadToken()
	if err != nil {
		g.log.Warn("Session cookie is unreadable", slog.String("error", err.Error()))
		g.set("", StatusUnauthenticated)

		return StatusUnauthenticated
	}

	if token == "" {
		g.set("", StatusUnauthenticated)

		return StatusUnauthenticated
	}

	// Attach the token before the check so the check call carries it.
	g.set(token, StatusUnknown)

	if err := api.CheckSession(ctx); err != nil {
		g.log.Info("Stored session was rejected", slog.String("error", err.Error()))
		g.set("", StatusUnauthenticated)

		return StatusUnauthenticated
	}

	g.set(token, StatusAuthenticated)

	return StatusAuthenticated
}

// Login exchanges credentials for a token and persists it with its expiry.
// On failure the gate's state is left untouched for a corrected retry.
func (g *Gate) Login(ctx context.Context, api client.Client, username, password string) error {
	result, err := api.Login(ctx, username, password)
	if err != nil {
		return err
	}

	if err := g.store.WriteToken(result.Token, result.Expired); err != nil {
		// A session that does not survive a restart is still a session.
		g.log.Warn("Failed to persist session cookie", slog.String("error", err.Error()))
	}

	g.set(result.Token, StatusAuthenticated)

	return nil
}

func (g *Gate) Logout() {
	if err := g.store.Clear(); err != nil {
		g.log.Warn("Failed to clear session cookie", slog.String("error", err.Error()))
	}

	g.set("", StatusUnauthenticated)
}

func (g *Gate) set(token string, status Status) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.token = token
	g.status = status
}
