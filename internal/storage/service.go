package storage

import (
	"context"
	"encoding/json"

	"github.com/leish-app/leish-go/internal/logging"
	"github.com/leish-app/leish-go/internal/models"
)

// Namespaced keys of the durable store.
const (
	keyAuthToken   = "leish:auth_token"
	keyUserEmail   = "leish:user_email"
	keyUserData    = "leish:user_data"
	keyPreferences = "leish:preferences"
)

// Service is the typed wrapper over the key-value repository.
//
// Writes are durable operations: failures propagate to the caller. Reads are
// advisory: any fault is logged and reported as an absent value, so callers
// never have to distinguish "missing" from "unreadable".
type Service struct {
	repo Repository
	log  logging.Logger
}

func NewService(repo Repository, log logging.Logger) *Service {
	if log == nil {
		log = logging.Nop()
	}
	return &Service{repo: repo, log: log}
}

func (s *Service) SetAuthToken(ctx context.Context, token string) error {
	return s.repo.Set(ctx, keyAuthToken, []byte(token))
}

// AuthToken returns the persisted token, or "" when absent or unreadable.
func (s *Service) AuthToken(ctx context.Context) string {
	v, err := s.repo.Get(ctx, keyAuthToken)
	if err != nil {
		s.log.Error(ctx, "failed to read auth token", "err", err)
		return ""
	}
	return string(v)
}

func (s *Service) RemoveAuthToken(ctx context.Context) error {
	return s.repo.Delete(ctx, keyAuthToken)
}

func (s *Service) SetUserEmail(ctx context.Context, email string) error {
	return s.repo.Set(ctx, keyUserEmail, []byte(email))
}

// UserEmail returns the persisted email, or "" when absent or unreadable.
func (s *Service) UserEmail(ctx context.Context) string {
	v, err := s.repo.Get(ctx, keyUserEmail)
	if err != nil {
		s.log.Error(ctx, "failed to read user email", "err", err)
		return ""
	}
	return string(v)
}

func (s *Service) SetUserData(ctx context.Context, user *models.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return &Error{Op: "set", Key: keyUserData, Err: err}
	}
	return s.repo.Set(ctx, keyUserData, data)
}

// UserData returns the persisted user record, or nil when absent, unreadable
// or corrupt.
func (s *Service) UserData(ctx context.Context) *models.User {
	v, err := s.repo.Get(ctx, keyUserData)
	if err != nil {
		s.log.Error(ctx, "failed to read user data", "err", err)
		return nil
	}
	if len(v) == 0 {
		return nil
	}
	var user models.User
	if err := json.Unmarshal(v, &user); err != nil {
		s.log.Error(ctx, "failed to decode user data", "err", err)
		return nil
	}
	return &user
}

// SetPreference merges key=value into the preference blob. The read-modify-
// write is not atomic: concurrent preference writes are last-writer-wins.
func (s *Service) SetPreference(ctx context.Context, key string, value any) error {
	prefs := s.preferences(ctx)
	prefs[key] = value

	data, err := json.Marshal(prefs)
	if err != nil {
		return &Error{Op: "set", Key: keyPreferences, Err: err}
	}
	return s.repo.Set(ctx, keyPreferences, data)
}

// Preference returns the stored value for key, or nil when absent.
func (s *Service) Preference(ctx context.Context, key string) any {
	return s.preferences(ctx)[key]
}

func (s *Service) preferences(ctx context.Context) map[string]any {
	v, err := s.repo.Get(ctx, keyPreferences)
	if err != nil {
		s.log.Error(ctx, "failed to read preferences", "err", err)
		return map[string]any{}
	}
	if len(v) == 0 {
		return map[string]any{}
	}
	prefs := map[string]any{}
	if err := json.Unmarshal(v, &prefs); err != nil {
		s.log.Error(ctx, "failed to decode preferences", "err", err)
		return map[string]any{}
	}
	return prefs
}

// ClearAuth removes the token, email and user record. Preferences survive.
func (s *Service) ClearAuth(ctx context.Context) error {
	for _, key := range []string{keyAuthToken, keyUserEmail, keyUserData} {
		if err := s.repo.Delete(ctx, key); err != nil {
			return err
		}
	}
	return nil
}

// ClearAll wipes the whole store, preferences included.
func (s *Service) ClearAll(ctx context.Context) error {
	return s.repo.Clear(ctx)
}
