package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_Defaults(t *testing.T) {
	s := New("https://api.example.com")

	state := s.State()
	assert.Equal(t, "https://api.example.com", state.APIURL)
	assert.Equal(t, ThemeAuto, state.Theme)
	assert.Equal(t, "en", state.Language)
}

func TestSetters_AreIndependent(t *testing.T) {
	s := New("https://api.example.com")

	s.SetTheme(ThemeDark)
	state := s.State()
	assert.Equal(t, ThemeDark, state.Theme)
	assert.Equal(t, "https://api.example.com", state.APIURL)
	assert.Equal(t, "en", state.Language)

	s.SetLanguage("de")
	state = s.State()
	assert.Equal(t, "de", state.Language)
	assert.Equal(t, ThemeDark, state.Theme)

	s.SetAPIURL("https://staging.example.com")
	state = s.State()
	assert.Equal(t, "https://staging.example.com", state.APIURL)
	assert.Equal(t, "de", state.Language)
}

func TestTheme_Valid(t *testing.T) {
	assert.True(t, ThemeLight.Valid())
	assert.True(t, ThemeDark.Valid())
	assert.True(t, ThemeAuto.Valid())
	assert.False(t, Theme("sepia").Valid())
}
