package session

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"stride-storefront/internal/api"
	"stride-storefront/internal/kvstore"
	"stride-storefront/internal/metrics"
)

// Storage keys owned by this package.
const (
	KeyUserEmail   = "user_email"
	KeyAccessToken = "access_token"
)

// GuestUser is the sentinel identity when nobody is logged in.
const GuestUser = "guest"

// Authenticator is the slice of the backend client the session needs.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (string, error)
	Signup(ctx context.Context, req api.SignupRequest) error
}

// Manager owns the current user identity and tells interested parties
// (the cart, mainly) when it changes. Changes are observed two ways:
// the store subscription for notified writes, plus a bounded fallback
// poll for writes that bypass notifications.
type Manager struct {
	store kvstore.Store
	auth  Authenticator
	log   *zap.Logger
	poll  time.Duration

	mu        sync.Mutex
	lastKnown string
	nextSub   int
	subs      map[int]func(user string)
}

func NewManager(store kvstore.Store, auth Authenticator, poll time.Duration, log *zap.Logger) *Manager {
	m := &Manager{
		store: store,
		auth:  auth,
		log:   log,
		poll:  poll,
		subs:  make(map[int]func(string)),
	}
	m.lastKnown = m.Current(context.Background())
	return m
}

// Current returns the active user key, GuestUser when unauthenticated.
func (m *Manager) Current(ctx context.Context) string {
	email, ok, err := m.store.Get(ctx, KeyUserEmail)
	if err != nil {
		m.log.Warn("identity read failed, assuming guest", zap.Error(err))
		return GuestUser
	}
	if !ok || email == "" {
		return GuestUser
	}
	return email
}

// Token returns the access token, or "" when absent or expired. An
// expired token reads as unauthenticated so order placement falls back
// to the local path instead of failing against the backend.
func (m *Manager) Token(ctx context.Context) string {
	token, ok, err := m.store.Get(ctx, KeyAccessToken)
	if err != nil || !ok || token == "" {
		return ""
	}
	if exp, found := tokenExpiry(token); found && time.Now().After(exp) {
		m.log.Debug("access token expired", zap.Time("expired_at", exp))
		return ""
	}
	return token
}

// Authenticated reports whether a usable access token is present.
func (m *Manager) Authenticated(ctx context.Context) bool {
	return m.Token(ctx) != ""
}

// Login authenticates against the backend and persists the identity.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	token, err := m.auth.Login(ctx, email, password)
	if err != nil {
		return err
	}

	if err := m.store.Set(ctx, KeyAccessToken, token); err != nil {
		return err
	}
	if err := m.store.Set(ctx, KeyUserEmail, email); err != nil {
		return err
	}

	m.checkIdentity(ctx)
	return nil
}

// Signup registers a new account. It does not log the user in.
func (m *Manager) Signup(ctx context.Context, req api.SignupRequest) error {
	return m.auth.Signup(ctx, req)
}

// Logout clears the persisted identity, reverting to guest.
func (m *Manager) Logout(ctx context.Context) error {
	if err := m.store.Remove(ctx, KeyAccessToken); err != nil {
		return err
	}
	if err := m.store.Remove(ctx, KeyUserEmail); err != nil {
		return err
	}

	m.checkIdentity(ctx)
	return nil
}

// OnChange registers fn to run whenever the active user key changes.
func (m *Manager) OnChange(fn func(user string)) (cancel func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextSub
	m.nextSub++
	m.subs[id] = fn

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.subs, id)
	}
}

// Run watches for identity changes until ctx is canceled: a store
// subscription for notified writes, and a poll for the rest.
func (m *Manager) Run(ctx context.Context) {
	unsubscribe := m.store.Subscribe(KeyUserEmail, func(kvstore.Event) {
		m.checkIdentity(ctx)
	})
	defer unsubscribe()

	ticker := time.NewTicker(m.poll)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.checkIdentity(ctx)
		}
	}
}

// checkIdentity compares the persisted identity against the last known
// one and fans out on mismatch. Safe to call from any of the change
// sources; duplicates are absorbed by the comparison.
func (m *Manager) checkIdentity(ctx context.Context) {
	current := m.Current(ctx)

	m.mu.Lock()
	if current == m.lastKnown {
		m.mu.Unlock()
		return
	}
	previous := m.lastKnown
	m.lastKnown = current
	fns := make([]func(string), 0, len(m.subs))
	for _, fn := range m.subs {
		fns = append(fns, fn)
	}
	m.mu.Unlock()

	metrics.IdentitySwitches.Inc()
	m.log.Info("active user changed",
		zap.String("from", previous),
		zap.String("to", current))

	for _, fn := range fns {
		fn(current)
	}
}
