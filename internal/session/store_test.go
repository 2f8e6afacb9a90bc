package session

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leish-app/leish-go/internal/api"
	"github.com/leish-app/leish-go/internal/models"
	"github.com/leish-app/leish-go/internal/storage"

	_ "modernc.org/sqlite"
)

// ---- helpers ----

func setupStore(t *testing.T) *storage.Service {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, storage.RunMigrations(context.Background(), db))
	return storage.NewService(storage.NewSQLiteRepository(db), nil)
}

// fakeAuth implements services.AuthService for store tests.
type fakeAuth struct {
	loginResp  *models.AuthResponse
	loginErr   error
	signupResp *models.AuthResponse
	signupErr  error
	logoutErr  error

	logoutCalls int
}

func (f *fakeAuth) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	return f.loginResp, f.loginErr
}

func (f *fakeAuth) Signup(ctx context.Context, email, password, name string) (*models.AuthResponse, error) {
	return f.signupResp, f.signupErr
}

func (f *fakeAuth) Logout(ctx context.Context) error {
	f.logoutCalls++
	return f.logoutErr
}

func (f *fakeAuth) CurrentUser(ctx context.Context) *models.User { return nil }

func (f *fakeAuth) IsAuthenticated(ctx context.Context) bool { return false }

func (f *fakeAuth) StoredUser(ctx context.Context) *models.User { return nil }

func (f *fakeAuth) RefreshSession(ctx context.Context) (string, error) { return "", nil }

func (f *fakeAuth) UpdateProfile(ctx context.Context, req models.UpdateProfileRequest) (*models.User, error) {
	return nil, nil
}

func (f *fakeAuth) TokenExpiresAt(ctx context.Context) (time.Time, bool) {
	return time.Time{}, false
}

// emptyError has no message; used to exercise fallback messages.
type emptyError struct{}

func (emptyError) Error() string { return "" }

// ---- tests ----

func TestLogin_Success(t *testing.T) {
	user := &models.User{ID: "1", Email: "test@example.com", Name: "Test User"}
	fa := &fakeAuth{loginResp: &models.AuthResponse{User: user, Token: "auth-token-123"}}
	s := New(fa, setupStore(t), nil)

	got, err := s.Login(context.Background(), "test@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, user, got)

	state := s.State()
	assert.Equal(t, user, state.User)
	assert.Equal(t, "auth-token-123", state.Token)
	assert.False(t, state.IsLoading)
	assert.Empty(t, state.Error)
}

func TestLogin_FailureReportsOnBothChannels(t *testing.T) {
	fa := &fakeAuth{loginErr: errors.New("Invalid credentials")}
	s := New(fa, setupStore(t), nil)

	_, err := s.Login(context.Background(), "test@example.com", "wrong")
	require.EqualError(t, err, "Invalid credentials")

	state := s.State()
	assert.Equal(t, "Invalid credentials", state.Error)
	assert.Nil(t, state.User)
	assert.Empty(t, state.Token)
	assert.False(t, state.IsLoading)
}

func TestLogin_FailureKeepsPreviousSession(t *testing.T) {
	user := &models.User{ID: "1", Name: "Existing"}
	fa := &fakeAuth{loginResp: &models.AuthResponse{User: user, Token: "tok-1"}}
	s := New(fa, setupStore(t), nil)
	ctx := context.Background()

	_, err := s.Login(ctx, "test@example.com", "password123")
	require.NoError(t, err)

	fa.loginResp = nil
	fa.loginErr = errors.New("Invalid credentials")

	_, err = s.Login(ctx, "test@example.com", "wrong")
	require.Error(t, err)

	// The previous session stays in place; only the error field changes.
	state := s.State()
	assert.Equal(t, user, state.User)
	assert.Equal(t, "tok-1", state.Token)
	assert.Equal(t, "Invalid credentials", state.Error)
}

func TestLogin_UsesAPIErrorMessage(t *testing.T) {
	fa := &fakeAuth{loginErr: &api.Error{Kind: api.KindHTTP, Status: 401, Message: "Session expired"}}
	s := New(fa, setupStore(t), nil)

	_, err := s.Login(context.Background(), "test@example.com", "pw")
	require.Error(t, err)
	assert.Equal(t, "Session expired", s.State().Error)
}

func TestLogin_EmptyMessageFallsBack(t *testing.T) {
	fa := &fakeAuth{loginErr: emptyError{}}
	s := New(fa, setupStore(t), nil)

	_, err := s.Login(context.Background(), "test@example.com", "pw")
	require.Error(t, err)
	assert.Equal(t, "Login failed", s.State().Error)
}

func TestSignup_Success(t *testing.T) {
	user := &models.User{ID: "2", Email: "new@example.com", Name: "New User"}
	fa := &fakeAuth{signupResp: &models.AuthResponse{User: user, Token: "fresh"}}
	s := New(fa, setupStore(t), nil)

	got, err := s.Signup(context.Background(), "new@example.com", "password123", "New User")
	require.NoError(t, err)
	assert.Equal(t, user, got)

	state := s.State()
	assert.Equal(t, user, state.User)
	assert.Equal(t, "fresh", state.Token)
	assert.False(t, state.IsLoading)
}

func TestSignup_EmptyMessageFallsBack(t *testing.T) {
	fa := &fakeAuth{signupErr: emptyError{}}
	s := New(fa, setupStore(t), nil)

	_, err := s.Signup(context.Background(), "new@example.com", "password123", "New User")
	require.Error(t, err)
	assert.Equal(t, "Signup failed", s.State().Error)
}

func TestInitialize_AdoptsStoredSession(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	user := &models.User{ID: "1", Email: "test@example.com", Name: "Test User"}
	require.NoError(t, store.SetAuthToken(ctx, "stored-token-123"))
	require.NoError(t, store.SetUserData(ctx, user))

	s := New(&fakeAuth{}, store, nil)
	s.Initialize(ctx)

	state := s.State()
	assert.Equal(t, "stored-token-123", state.Token)
	assert.Equal(t, user, state.User)
	assert.True(t, state.IsInitialized)
	assert.False(t, state.IsLoading)
}

func TestInitialize_EmptyStorageStillInitializes(t *testing.T) {
	s := New(&fakeAuth{}, setupStore(t), nil)
	s.Initialize(context.Background())

	state := s.State()
	assert.Nil(t, state.User)
	assert.Empty(t, state.Token)
	assert.True(t, state.IsInitialized)
	assert.False(t, state.IsLoading)
}

func TestInitialize_TokenWithoutUserIsNotAdopted(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	require.NoError(t, store.SetAuthToken(ctx, "orphan-token"))

	s := New(&fakeAuth{}, store, nil)
	s.Initialize(ctx)

	state := s.State()
	assert.Empty(t, state.Token)
	assert.Nil(t, state.User)
	assert.True(t, state.IsInitialized)
}

func TestLogout_ClearsSession(t *testing.T) {
	user := &models.User{ID: "1"}
	fa := &fakeAuth{loginResp: &models.AuthResponse{User: user, Token: "tok"}}
	s := New(fa, setupStore(t), nil)
	ctx := context.Background()

	_, err := s.Login(ctx, "test@example.com", "password123")
	require.NoError(t, err)

	s.Logout(ctx)

	assert.Equal(t, 1, fa.logoutCalls)
	state := s.State()
	assert.Nil(t, state.User)
	assert.Empty(t, state.Token)
	assert.False(t, state.IsLoading)
}

func TestLogout_UnexpectedFailureKeepsLocalSession(t *testing.T) {
	user := &models.User{ID: "1"}
	fa := &fakeAuth{
		loginResp: &models.AuthResponse{User: user, Token: "tok"},
		logoutErr: errors.New("wipe failed"),
	}
	s := New(fa, setupStore(t), nil)
	ctx := context.Background()

	_, err := s.Login(ctx, "test@example.com", "password123")
	require.NoError(t, err)

	s.Logout(ctx)

	// Fail safe: stay logged in locally when the clearing step fails.
	state := s.State()
	assert.Equal(t, user, state.User)
	assert.Equal(t, "tok", state.Token)
	assert.False(t, state.IsLoading)
}

func TestClearError_Idempotent(t *testing.T) {
	s := New(&fakeAuth{}, setupStore(t), nil)

	s.ClearError()
	assert.Empty(t, s.State().Error)

	s.SetError("boom")
	s.ClearError()
	assert.Empty(t, s.State().Error)

	s.ClearError()
	assert.Empty(t, s.State().Error)
}

func TestRawSetters(t *testing.T) {
	s := New(&fakeAuth{}, setupStore(t), nil)
	user := &models.User{ID: "42"}

	s.SetUser(user)
	s.SetToken("manual-token")
	s.SetLoading(true)
	s.SetError("manual error")

	state := s.State()
	assert.Equal(t, user, state.User)
	assert.Equal(t, "manual-token", state.Token)
	assert.True(t, state.IsLoading)
	assert.Equal(t, "manual error", state.Error)
	// Setters never touch the initialized flag.
	assert.False(t, state.IsInitialized)
}

func TestSubscribe_NotifiesAndUnsubscribes(t *testing.T) {
	s := New(&fakeAuth{}, setupStore(t), nil)

	var seen []State
	unsubscribe := s.Subscribe(func(st State) { seen = append(seen, st) })

	s.SetToken("t1")
	s.SetToken("t2")
	require.Len(t, seen, 2)
	assert.Equal(t, "t1", seen[0].Token)
	assert.Equal(t, "t2", seen[1].Token)

	unsubscribe()
	s.SetToken("t3")
	assert.Len(t, seen, 2)
}
