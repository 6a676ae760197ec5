package perifa_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/perifanotoque/perifa/pkg/perifa"
	"github.com/perifanotoque/perifa/pkg/perifa/platform/memory"
)

const darkQuery = "(prefers-color-scheme: dark)"

func newSwitcher(t *testing.T, w *memory.Window) *perifa.ThemeSwitcher {
	t.Helper()
	opts, _ := quietOptions()
	s := perifa.NewThemeSwitcher(w, perifa.ThemeSwitcherOptions{WidgetOptions: opts})
	require.NoError(t, s.Init())
	return s
}

func rootTheme(w *memory.Window) string {
	v, _ := w.Document().DocumentElement().GetAttribute("data-theme")
	return v
}

func TestThemeStoredPreferenceWins(t *testing.T) {
	t.Parallel()

	w := newWindow(t)
	require.NoError(t, w.Storage().SetItem("perifa-theme-preference", "dark"))

	s := newSwitcher(t, w)
	require.Equal(t, perifa.ThemeDark, s.Current())
	require.Equal(t, "dark", rootTheme(w))
	require.True(t, s.Ready())

	// A saved choice is not overridden by the system scheme.
	w.SetMediaMatches(darkQuery, true)
	w.SetMediaMatches(darkQuery, false)
	require.Equal(t, perifa.ThemeDark, s.Current())
}

func TestThemeFollowsSystemWhileUnset(t *testing.T) {
	t.Parallel()

	w := newWindow(t)
	w.SetMediaMatches(darkQuery, true)

	s := newSwitcher(t, w)
	require.Equal(t, perifa.ThemeDark, s.Current())

	w.SetMediaMatches(darkQuery, false)
	require.Equal(t, perifa.ThemeLight, s.Current())
	require.Equal(t, "light", rootTheme(w))

	s.Toggle()
	require.Equal(t, perifa.ThemeDark, s.Current())
	saved, ok := w.Storage().GetItem("perifa-theme-preference")
	require.True(t, ok)
	require.Equal(t, "dark", saved)

	w.SetMediaMatches(darkQuery, true)
	w.SetMediaMatches(darkQuery, false)
	require.Equal(t, perifa.ThemeDark, s.Current())
}

func TestThemeToggleButtonsAndTransition(t *testing.T) {
	t.Parallel()

	w := newWindow(t)
	s := newSwitcher(t, w)
	require.Equal(t, perifa.ThemeLight, s.Current())

	body := w.Document().Body()
	w.Advance(300 * time.Millisecond)
	require.False(t, body.HasClass("theme-transition"))

	w.Click(w.Document().GetElementByID("theme-toggle"))
	require.Equal(t, "dark", rootTheme(w))
	require.True(t, body.HasClass("theme-transition"))

	w.Advance(200 * time.Millisecond)
	w.Click(w.Document().GetElementByID("theme-toggle-desktop"))
	require.Equal(t, "light", rootTheme(w))

	// The second switch restarts the transition window.
	w.Advance(200 * time.Millisecond)
	require.True(t, body.HasClass("theme-transition"))
	w.Advance(100 * time.Millisecond)
	require.False(t, body.HasClass("theme-transition"))
}

func TestThemeStorageFailureKeepsTheme(t *testing.T) {
	t.Parallel()

	w := newWindow(t)
	w.Storage().WriteErr = errors.New("quota exceeded")
	opts, logs := quietOptions()
	s := perifa.NewThemeSwitcher(w, perifa.ThemeSwitcherOptions{WidgetOptions: opts})
	require.NoError(t, s.Init())

	s.Toggle()
	require.Equal(t, perifa.ThemeDark, s.Current())
	require.Equal(t, "dark", rootTheme(w))
	require.Contains(t, logs.String(), "Failed to save theme preference")
	_, ok := w.Storage().GetItem("perifa-theme-preference")
	require.False(t, ok)
}

func TestThemeSetTheme(t *testing.T) {
	t.Parallel()

	w := newWindow(t)
	s := newSwitcher(t, w)

	require.NoError(t, s.SetTheme("dark"))
	require.Equal(t, "dark", rootTheme(w))

	err := s.SetTheme("blue")
	require.ErrorIs(t, err, perifa.ErrInvalidTheme)
	require.Equal(t, perifa.ThemeDark, s.Current())

	_, err = perifa.ParseTheme("")
	require.ErrorIs(t, err, perifa.ErrInvalidTheme)
}

func TestThemeIgnoresInvalidStoredValue(t *testing.T) {
	t.Parallel()

	w := newWindow(t)
	require.NoError(t, w.Storage().SetItem("perifa-theme-preference", "sepia"))
	w.SetMediaMatches(darkQuery, true)

	s := newSwitcher(t, w)
	require.Equal(t, perifa.ThemeDark, s.Current())
}

func TestThemeWithoutToggles(t *testing.T) {
	t.Parallel()

	w := memory.MustNew(barePage, memory.Options{})
	opts, _ := quietOptions()
	s := perifa.NewThemeSwitcher(w, perifa.ThemeSwitcherOptions{WidgetOptions: opts})

	err := s.Init()
	require.True(t, perifa.IsConfigurationError(err))
	require.False(t, s.Ready())
	require.False(t, w.Document().DocumentElement().HasAttribute("data-theme"))
}
