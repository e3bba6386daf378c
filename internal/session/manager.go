package session

import (
	"context"
	"fmt"

	"fitcoach-web/internal/fitapi"
)

// State is the session resolution state.
type State int

const (
	// Unresolved covers the interval between construction and the first
	// Hydrate or SignIn outcome.
	Unresolved State = iota
	Authenticated
	Anonymous
)

func (s State) String() string {
	switch s {
	case Authenticated:
		return "authenticated"
	case Anonymous:
		return "anonymous"
	default:
		return "unresolved"
	}
}

// ProfileFetcher is the slice of the API client the manager needs.
type ProfileFetcher interface {
	Me(ctx context.Context, token string) (fitapi.User, error)
}

// Listener observes state transitions.
type Listener func(State, *fitapi.User)

// Manager owns the authenticated-user view for one request scope. It is the
// single writer of the credential store: handlers never touch cookies
// directly.
//
// The manager is not goroutine-safe; one instance serves one request.
type Manager struct {
	store     Store
	api       ProfileFetcher
	cache     ProfileCache // optional
	state     State
	user      *fitapi.User
	listeners []Listener
}

func NewManager(store Store, api ProfileFetcher, cache ProfileCache) *Manager {
	return &Manager{store: store, api: api, cache: cache, state: Unresolved}
}

func (m *Manager) State() State        { return m.state }
func (m *Manager) Authenticated() bool { return m.state == Authenticated }

// User returns the cached profile, nil unless Authenticated.
func (m *Manager) User() *fitapi.User { return m.user }

// Credential exposes the persisted token pair for outbound API calls.
func (m *Manager) Credential() (Credential, bool) { return m.store.Credential() }

// OnChange registers a listener for state transitions. Listeners fire
// synchronously, in registration order.
func (m *Manager) OnChange(fn Listener) {
	m.listeners = append(m.listeners, fn)
}

// Hydrate resolves the session from the persisted credential. It runs at
// most once: after the session has resolved (including via SignIn) it is a
// no-op, so a late hydration can never clobber a newer sign-in.
//
// Failures are silent: a rejected or unreachable profile fetch collapses the
// session to Anonymous and discards the credential.
func (m *Manager) Hydrate(ctx context.Context) {
	if m.state != Unresolved {
		return
	}

	cred, ok := m.store.Credential()
	if !ok {
		m.setState(Anonymous, nil)
		return
	}

	if m.cache != nil {
		if u, hit := m.cache.Get(ctx, cred.AccessToken); hit {
			m.setState(Authenticated, &u)
			return
		}
	}

	u, err := m.api.Me(ctx, cred.AccessToken)
	if err != nil {
		m.discard(ctx, cred)
		return
	}
	if m.cache != nil {
		m.cache.Put(ctx, cred.AccessToken, u)
	}
	m.setState(Authenticated, &u)
}

// SignIn persists the token pair and resolves the profile. On failure the
// credential is discarded and the error is returned so the login form can
// show it; this is the only observable session failure.
func (m *Manager) SignIn(ctx context.Context, accessToken, refreshToken string) (fitapi.User, error) {
	cred := Credential{AccessToken: accessToken, RefreshToken: refreshToken}
	m.store.Set(cred)

	u, err := m.api.Me(ctx, accessToken)
	if err != nil {
		m.discard(ctx, cred)
		return fitapi.User{}, fmt.Errorf("session: sign-in profile fetch: %w", err)
	}

	if m.cache != nil {
		m.cache.Put(ctx, accessToken, u)
	}
	m.setState(Authenticated, &u)
	return u, nil
}

// SignOut clears the credential and any cached session artifacts and moves
// to Anonymous. Unconditional; cannot fail.
func (m *Manager) SignOut(ctx context.Context) {
	if cred, ok := m.store.Credential(); ok && m.cache != nil {
		m.cache.Drop(ctx, cred.AccessToken)
	}
	m.store.Clear()
	m.setState(Anonymous, nil)
}

func (m *Manager) discard(ctx context.Context, cred Credential) {
	if m.cache != nil {
		m.cache.Drop(ctx, cred.AccessToken)
	}
	m.store.Clear()
	m.setState(Anonymous, nil)
}

func (m *Manager) setState(s State, u *fitapi.User) {
	m.state = s
	m.user = u
	for _, fn := range m.listeners {
		fn(s, u)
	}
}
