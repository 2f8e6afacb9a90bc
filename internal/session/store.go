// Package session holds the in-memory reactive session state: the current
// user, token, and the loading/initialized/error flags the UI renders from.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/leish-app/leish-go/internal/api"
	"github.com/leish-app/leish-go/internal/logging"
	"github.com/leish-app/leish-go/internal/models"
	"github.com/leish-app/leish-go/internal/services"
	"github.com/leish-app/leish-go/internal/storage"
)

// Fallback messages applied when a failure carries no message of its own.
const (
	loginFallback  = "Login failed"
	signupFallback = "Signup failed"
)

// State is a snapshot of the session store.
//
// User and Token are set and cleared together by the actions; only the raw
// setters can leave them transiently inconsistent. IsInitialized flips
// false→true exactly once, inside Initialize, on every outcome.
type State struct {
	User          *models.User
	Token         string
	IsLoading     bool
	IsInitialized bool
	Error         string
}

// Store is an explicitly constructed, dependency-injected state container.
// One instance per application context; UI layers receive it by reference.
//
// The mutex guards field access only. Actions are deliberately not mutually
// exclusive: two overlapping Login calls race on the final write and the
// last to resolve wins, matching the accepted single-user client behavior.
type Store struct {
	auth  services.AuthService
	store *storage.Service
	log   logging.Logger

	mu      sync.Mutex
	state   State
	subs    map[int]func(State)
	nextSub int
}

func New(auth services.AuthService, store *storage.Service, log logging.Logger) *Store {
	if log == nil {
		log = logging.Nop()
	}
	return &Store{
		auth:  auth,
		store: store,
		log:   log,
		subs:  make(map[int]func(State)),
	}
}

// State returns a snapshot of the current session state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe registers fn to be called with a snapshot after every state
// change. The returned function unsubscribes.
func (s *Store) Subscribe(fn func(State)) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// set applies a mutation and notifies subscribers outside the lock.
func (s *Store) set(mutate func(*State)) {
	s.mu.Lock()
	mutate(&s.state)
	snapshot := s.state
	subs := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(snapshot)
	}
}

// Raw setters. No side effects, no validation; they exist for direct control
// (test harnesses, session restoration) and bypass the user+token coupling
// the actions maintain.

func (s *Store) SetUser(user *models.User) { s.set(func(st *State) { st.User = user }) }

func (s *Store) SetToken(token string) { s.set(func(st *State) { st.Token = token }) }

func (s *Store) SetLoading(loading bool) { s.set(func(st *State) { st.IsLoading = loading }) }

func (s *Store) SetError(msg string) { s.set(func(st *State) { st.Error = msg }) }

// ClearError resets the error field. Idempotent.
func (s *Store) ClearError() { s.set(func(st *State) { st.Error = "" }) }

// Initialize adopts a persisted session, if any, into memory. Storage
// faults are logged by the storage layer and read as absent values, never
// surfaced. Whatever happens, the store ends not-loading and initialized.
//
// Idempotent in effect but not guarded against re-entry: concurrent calls
// perform independent storage reads.
func (s *Store) Initialize(ctx context.Context) {
	s.set(func(st *State) { st.IsLoading = true })

	token := s.store.AuthToken(ctx)
	user := s.store.UserData(ctx)

	s.set(func(st *State) {
		if token != "" && user != nil {
			st.Token = token
			st.User = user
		}
		st.IsLoading = false
		st.IsInitialized = true
	})
}

// Login runs the auth flow and mirrors the outcome into state. On failure
// the error is both stored in State.Error and returned, so the UI may react
// through either channel.
func (s *Store) Login(ctx context.Context, email, password string) (*models.User, error) {
	s.set(func(st *State) {
		st.IsLoading = true
		st.Error = ""
	})

	resp, err := s.auth.Login(ctx, email, password)
	if err != nil {
		s.set(func(st *State) {
			st.Error = errorMessage(err, loginFallback)
			st.IsLoading = false
		})
		return nil, err
	}

	s.set(func(st *State) {
		st.User = resp.User
		st.Token = resp.Token
		st.IsLoading = false
	})
	return resp.User, nil
}

// Signup mirrors Login with the signup flow and fallback message.
func (s *Store) Signup(ctx context.Context, email, password, name string) (*models.User, error) {
	s.set(func(st *State) {
		st.IsLoading = true
		st.Error = ""
	})

	resp, err := s.auth.Signup(ctx, email, password, name)
	if err != nil {
		s.set(func(st *State) {
			st.Error = errorMessage(err, signupFallback)
			st.IsLoading = false
		})
		return nil, err
	}

	s.set(func(st *State) {
		st.User = resp.User
		st.Token = resp.Token
		st.IsLoading = false
	})
	return resp.User, nil
}

// Logout signs out and clears the in-memory session. If the local clearing
// step fails the store stops loading but keeps user and token: staying
// signed in locally beats pretending a wipe happened.
func (s *Store) Logout(ctx context.Context) {
	s.set(func(st *State) { st.IsLoading = true })

	if err := s.auth.Logout(ctx); err != nil {
		s.log.Error(ctx, "logout failed", "err", err)
		s.set(func(st *State) { st.IsLoading = false })
		return
	}

	s.set(func(st *State) {
		st.User = nil
		st.Token = ""
		st.IsLoading = false
	})
}

// errorMessage extracts the user-facing message from err, preferring the
// normalized API message, falling back to fallback when empty.
func errorMessage(err error, fallback string) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return fallback
}
