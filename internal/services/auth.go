// Package services contains the application services of the Leish client.
// This file defines the authentication service: durable login/signup,
// best-effort logout, and housekeeping of the persisted session.
package services

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"

	"github.com/leish-app/leish-go/internal/api"
	"github.com/leish-app/leish-go/internal/logging"
	"github.com/leish-app/leish-go/internal/models"
	"github.com/leish-app/leish-go/internal/storage"
)

// Client is the slice of the API surface the auth service depends on.
// *api.Client satisfies it; tests provide fakes.
type Client interface {
	Login(ctx context.Context, email, password string) (*models.AuthResponse, error)
	Signup(ctx context.Context, email, password, name string) (*models.AuthResponse, error)
	Logout(ctx context.Context)
	CurrentUser(ctx context.Context) (*models.User, error)
	RefreshToken(ctx context.Context) (string, error)
	Put(ctx context.Context, endpoint string, body, out any) error
}

// AuthService defines the authentication operations of the client.
//
// Contract:
//   - Login, Signup, RefreshSession, UpdateProfile are durable: API and
//     storage failures propagate and the caller must handle them.
//   - Logout is best-effort against the server but always clears local
//     state; only the local clearing step can fail.
//   - CurrentUser, IsAuthenticated, StoredUser are advisory: failures are
//     logged and reported as absent values.
//
// All methods honor context cancellation/timeouts.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*models.AuthResponse, error)
	Signup(ctx context.Context, email, password, name string) (*models.AuthResponse, error)
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) *models.User
	IsAuthenticated(ctx context.Context) bool
	StoredUser(ctx context.Context) *models.User
	RefreshSession(ctx context.Context) (string, error)
	UpdateProfile(ctx context.Context, req models.UpdateProfileRequest) (*models.User, error)
	TokenExpiresAt(ctx context.Context) (time.Time, bool)
}

// authService is the concrete AuthService backed by the remote API client
// and the device-local store.
type authService struct {
	client   Client
	store    *storage.Service
	validate *validator.Validate
	log      logging.Logger
}

// NewAuthService constructs an AuthService bound to the given API client
// and storage service.
func NewAuthService(client Client, store *storage.Service, log logging.Logger) AuthService {
	if log == nil {
		log = logging.Nop()
	}
	return &authService{
		client:   client,
		store:    store,
		validate: validator.New(),
		log:      log,
	}
}

// Login authenticates against the backend and persists token, user record
// and email, in that order. Storage failures propagate: a login whose
// outcome could not be made durable is reported as failed.
func (a *authService) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	req := models.LoginRequest{Email: email, Password: password}
	if err := a.validate.Struct(req); err != nil {
		return nil, api.NewValidationError(err)
	}

	resp, err := a.client.Login(ctx, email, password)
	if err != nil {
		a.log.Error(ctx, "login failed", "email", email, "err", err)
		return nil, err
	}

	if err := a.persistSession(ctx, resp, email); err != nil {
		return nil, err
	}
	return resp, nil
}

// Signup creates an account and persists the returned session the same way
// Login does.
func (a *authService) Signup(ctx context.Context, email, password, name string) (*models.AuthResponse, error) {
	req := models.SignupRequest{Email: email, Password: password, Name: name}
	if err := a.validate.Struct(req); err != nil {
		return nil, api.NewValidationError(err)
	}

	resp, err := a.client.Signup(ctx, email, password, name)
	if err != nil {
		a.log.Error(ctx, "signup failed", "email", email, "err", err)
		return nil, err
	}

	if err := a.persistSession(ctx, resp, email); err != nil {
		return nil, err
	}
	return resp, nil
}

func (a *authService) persistSession(ctx context.Context, resp *models.AuthResponse, email string) error {
	if resp.Token != "" {
		if err := a.store.SetAuthToken(ctx, resp.Token); err != nil {
			return api.NewStorageError(err)
		}
	}
	if resp.User != nil {
		if err := a.store.SetUserData(ctx, resp.User); err != nil {
			return api.NewStorageError(err)
		}
		if err := a.store.SetUserEmail(ctx, email); err != nil {
			return api.NewStorageError(err)
		}
	}
	return nil
}

// Logout notifies the backend (best-effort, the client swallows its own
// failure) and then unconditionally clears the persisted auth state.
// Failure to reach the server never blocks local sign-out.
func (a *authService) Logout(ctx context.Context) error {
	a.client.Logout(ctx)

	if err := a.store.ClearAuth(ctx); err != nil {
		return api.NewStorageError(err)
	}
	return nil
}

// CurrentUser fetches the account behind the current token. Advisory: any
// failure is logged and reported as nil.
func (a *authService) CurrentUser(ctx context.Context) *models.User {
	user, err := a.client.CurrentUser(ctx)
	if err != nil {
		a.log.Warn(ctx, "failed to fetch current user", "err", err)
		return nil
	}
	return user
}

// IsAuthenticated reports whether a token is currently persisted.
func (a *authService) IsAuthenticated(ctx context.Context) bool {
	return a.store.AuthToken(ctx) != ""
}

// StoredUser returns the persisted user record, or nil.
func (a *authService) StoredUser(ctx context.Context) *models.User {
	return a.store.UserData(ctx)
}

// RefreshSession rotates the token on the backend and persists the
// replacement. Returns the new token.
func (a *authService) RefreshSession(ctx context.Context) (string, error) {
	token, err := a.client.RefreshToken(ctx)
	if err != nil {
		return "", err
	}
	if err := a.store.SetAuthToken(ctx, token); err != nil {
		return "", api.NewStorageError(err)
	}
	return token, nil
}

// UpdateProfile replaces the profile fields of the current account and
// persists the updated record the backend returns.
func (a *authService) UpdateProfile(ctx context.Context, req models.UpdateProfileRequest) (*models.User, error) {
	if err := a.validate.Struct(req); err != nil {
		return nil, api.NewValidationError(err)
	}

	var resp struct {
		User *models.User `json:"user"`
	}
	if err := a.client.Put(ctx, "/users/me", req, &resp); err != nil {
		return nil, err
	}

	if resp.User != nil {
		if err := a.store.SetUserData(ctx, resp.User); err != nil {
			return nil, api.NewStorageError(err)
		}
	}
	return resp.User, nil
}

// TokenExpiresAt inspects the persisted token's exp claim without verifying
// the signature. Returns false when no token is stored, the token is not a
// JWT, or it carries no expiry.
func (a *authService) TokenExpiresAt(ctx context.Context) (time.Time, bool) {
	token := a.store.AuthToken(ctx)
	if token == "" {
		return time.Time{}, false
	}

	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}
