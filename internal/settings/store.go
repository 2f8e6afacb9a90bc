// Package settings holds the app-wide settings state: API base URL, theme
// and language. Purely in-memory and independent of the session store.
package settings

import "sync"

// Theme is the UI color scheme preference.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
	ThemeAuto  Theme = "auto"
)

// Valid reports whether t is one of the known themes.
func (t Theme) Valid() bool {
	switch t {
	case ThemeLight, ThemeDark, ThemeAuto:
		return true
	}
	return false
}

const (
	DefaultTheme    = ThemeAuto
	DefaultLanguage = "en"
)

// State is a snapshot of the settings store.
type State struct {
	APIURL   string
	Theme    Theme
	Language string
}

// Store is a plain synchronous state container. Three independent fields,
// no cross-field invariants, no persistence.
type Store struct {
	mu    sync.Mutex
	state State
}

// New builds a Store with the given API URL (normally from configuration)
// and the default theme and language.
func New(apiURL string) *Store {
	return &Store{state: State{
		APIURL:   apiURL,
		Theme:    DefaultTheme,
		Language: DefaultLanguage,
	}}
}

func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Store) SetAPIURL(url string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.APIURL = url
}

func (s *Store) SetTheme(theme Theme) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Theme = theme
}

func (s *Store) SetLanguage(lang string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Language = lang
}
