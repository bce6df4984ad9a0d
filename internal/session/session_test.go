package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"stride-storefront/internal/api"
	"stride-storefront/internal/kvstore"
)

// MockAuthenticator is a mock implementation of the Authenticator interface
type MockAuthenticator struct {
	mock.Mock
}

func (m *MockAuthenticator) Login(ctx context.Context, email, password string) (string, error) {
	args := m.Called(ctx, email, password)
	return args.String(0), args.Error(1)
}

func (m *MockAuthenticator) Signup(ctx context.Context, req api.SignupRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func signedToken(t *testing.T, sub string, exp time.Time) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": sub,
		"exp": exp.Unix(),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func TestManager_CurrentDefaultsToGuest(t *testing.T) {
	store := kvstore.NewMemory()
	m := NewManager(store, new(MockAuthenticator), time.Second, zap.NewNop())

	assert.Equal(t, GuestUser, m.Current(context.Background()))
}

func TestManager_LoginPersistsIdentityAndNotifies(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemory()
	auth := new(MockAuthenticator)
	m := NewManager(store, auth, time.Second, zap.NewNop())

	auth.On("Login", ctx, "a@stride.example", "secret").Return("tok-123", nil).Once()

	var mu sync.Mutex
	var seen []string
	cancel := m.OnChange(func(user string) {
		mu.Lock()
		seen = append(seen, user)
		mu.Unlock()
	})
	defer cancel()

	require.NoError(t, m.Login(ctx, "a@stride.example", "secret"))

	assert.Equal(t, "a@stride.example", m.Current(ctx))
	assert.Equal(t, "tok-123", m.Token(ctx))
	assert.True(t, m.Authenticated(ctx))

	mu.Lock()
	assert.Equal(t, []string{"a@stride.example"}, seen)
	mu.Unlock()

	auth.AssertExpectations(t)
}

func TestManager_LoginFailureLeavesGuest(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemory()
	auth := new(MockAuthenticator)
	m := NewManager(store, auth, time.Second, zap.NewNop())

	auth.On("Login", ctx, "a@stride.example", "wrong").
		Return("", &api.StatusError{Code: 401, Detail: "Incorrect email or password"}).Once()

	err := m.Login(ctx, "a@stride.example", "wrong")

	require.Error(t, err)
	assert.Equal(t, GuestUser, m.Current(ctx))
	assert.False(t, m.Authenticated(ctx))
}

func TestManager_LogoutRevertsToGuest(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemory()
	auth := new(MockAuthenticator)
	m := NewManager(store, auth, time.Second, zap.NewNop())

	auth.On("Login", ctx, "a@stride.example", "secret").Return("tok-123", nil).Once()
	require.NoError(t, m.Login(ctx, "a@stride.example", "secret"))

	var mu sync.Mutex
	var last string
	cancel := m.OnChange(func(user string) {
		mu.Lock()
		last = user
		mu.Unlock()
	})
	defer cancel()

	require.NoError(t, m.Logout(ctx))

	assert.Equal(t, GuestUser, m.Current(ctx))
	assert.Empty(t, m.Token(ctx))
	mu.Lock()
	assert.Equal(t, GuestUser, last)
	mu.Unlock()
}

func TestManager_PollDetectsDirectStoreWrite(t *testing.T) {
	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	store := kvstore.NewMemory()
	m := NewManager(store, new(MockAuthenticator), 10*time.Millisecond, zap.NewNop())

	changed := make(chan string, 1)
	cancel := m.OnChange(func(user string) { changed <- user })
	defer cancel()

	go m.Run(ctx)

	// Simulate another feature writing the identity key directly.
	require.NoError(t, store.Set(ctx, KeyUserEmail, "b@stride.example"))

	select {
	case user := <-changed:
		assert.Equal(t, "b@stride.example", user)
	case <-time.After(time.Second):
		t.Fatal("identity change never detected")
	}
}

func TestManager_ExpiredTokenReadsAsUnauthenticated(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemory()
	m := NewManager(store, new(MockAuthenticator), time.Second, zap.NewNop())

	expired := signedToken(t, "a@stride.example", time.Now().Add(-time.Hour))
	require.NoError(t, store.Set(ctx, KeyAccessToken, expired))

	assert.Empty(t, m.Token(ctx))
	assert.False(t, m.Authenticated(ctx))
}

func TestManager_ValidTokenIsReturned(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemory()
	m := NewManager(store, new(MockAuthenticator), time.Second, zap.NewNop())

	valid := signedToken(t, "a@stride.example", time.Now().Add(time.Hour))
	require.NoError(t, store.Set(ctx, KeyAccessToken, valid))

	assert.Equal(t, valid, m.Token(ctx))
	assert.Equal(t, "a@stride.example", TokenSubject(valid))
}

func TestManager_OpaqueTokenIsUsedAsIs(t *testing.T) {
	// Not every deployment issues JWTs; an opaque token has no known
	// expiry and must pass through untouched.
	ctx := context.Background()
	store := kvstore.NewMemory()
	m := NewManager(store, new(MockAuthenticator), time.Second, zap.NewNop())

	require.NoError(t, store.Set(ctx, KeyAccessToken, "opaque-token"))

	assert.Equal(t, "opaque-token", m.Token(ctx))
	assert.Empty(t, TokenSubject("opaque-token"))
}
