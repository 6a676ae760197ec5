package perifa

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/perifanotoque/perifa/pkg/perifa/constants"
	"github.com/perifanotoque/perifa/pkg/perifa/dom"
	"github.com/perifanotoque/perifa/pkg/perifa/internal"
)

// Theme is a color scheme of the site.
type Theme int

const (
	ThemeLight Theme = iota
	ThemeDark
)

func (t Theme) String() string {
	if t == ThemeDark {
		return "dark"
	}
	return "light"
}

// ParseTheme maps "light" or "dark" to a Theme.
func ParseTheme(name string) (Theme, error) {
	switch name {
	case "light":
		return ThemeLight, nil
	case "dark":
		return ThemeDark, nil
	default:
		return ThemeLight, fmt.Errorf("%w: %q", ErrInvalidTheme, name)
	}
}

// ThemeSwitcherOptions configures a ThemeSwitcher.
type ThemeSwitcherOptions struct {
	WidgetOptions
	StorageKey string        // localStorage key of the saved preference
	Transition time.Duration // Lifetime of the body transition class
}

// ThemeSwitcher applies the light or dark theme through the data-theme
// attribute of the root element. A saved preference wins over the system
// color scheme; the system scheme is followed live only while nothing is
// saved.
type ThemeSwitcher struct {
	win    dom.Window
	doc    dom.Document
	logger *slog.Logger

	storageKey string
	transition time.Duration

	current    Theme
	fade       dom.Timer
	releases   dom.Releases
	ready      bool
	mobile     dom.Element
	desktop    dom.Element
	systemDark dom.MediaQuery
}

// NewThemeSwitcher returns an uninitialized switcher. Call Init once the page
// is parsed.
func NewThemeSwitcher(win dom.Window, opts ThemeSwitcherOptions) *ThemeSwitcher {
	// Set defaults
	if opts.StorageKey == "" {
		opts.StorageKey = constants.DefaultThemeStorageKey
	}
	if opts.Transition <= 0 {
		opts.Transition = constants.ThemeTransitionDelay
	}

	return &ThemeSwitcher{
		win:        win,
		doc:        win.Document(),
		logger:     internal.LoggerOr(opts.Logger),
		storageKey: opts.StorageKey,
		transition: opts.Transition,
	}
}

// Init finds the theme toggles, applies the initial theme and starts
// following the system color scheme. With neither toggle on the page it logs
// a warning, applies nothing and returns a *ConfigurationError.
func (s *ThemeSwitcher) Init() error {
	if s.ready {
		return nil
	}

	s.mobile = s.doc.GetElementByID(constants.ThemeToggleID)
	s.desktop = s.doc.GetElementByID(constants.ThemeToggleDesktopID)
	if s.mobile == nil && s.desktop == nil {
		s.logger.Warn("Theme toggles not found; theme switcher disabled")
		return NewConfigurationError("theme switcher", "")
	}

	s.systemDark = s.win.MatchMedia(constants.DarkColorSchemeQuery)
	s.load()

	s.releases.Add(s.systemDark.OnChange(func(matches bool) {
		if _, saved := s.saved(); saved {
			return
		}
		theme := ThemeLight
		if matches {
			theme = ThemeDark
		}
		s.logger.Debug("System color scheme changed", "theme", theme.String())
		s.apply(theme)
	}))

	for _, toggle := range []dom.Element{s.mobile, s.desktop} {
		if toggle != nil {
			s.releases.Add(toggle.AddEventListener("click", func(*dom.Event) {
				s.Toggle()
			}))
		}
	}

	s.ready = true
	return nil
}

func (s *ThemeSwitcher) load() {
	if theme, ok := s.saved(); ok {
		s.logger.Debug("Theme loaded from storage", "theme", theme.String())
		s.apply(theme)
		return
	}

	theme := ThemeLight
	if s.systemDark.Matches() {
		theme = ThemeDark
	}
	s.logger.Debug("Theme detected from system", "theme", theme.String())
	s.apply(theme)
}

// saved returns the stored preference. Unparseable values count as unset.
func (s *ThemeSwitcher) saved() (Theme, bool) {
	raw, ok := s.win.LocalStorage().GetItem(s.storageKey)
	if !ok || raw == "" {
		return ThemeLight, false
	}
	theme, err := ParseTheme(raw)
	if err != nil {
		s.logger.Warn("Ignoring stored theme", "value", raw, "error", err)
		return ThemeLight, false
	}
	return theme, true
}

func (s *ThemeSwitcher) apply(theme Theme) {
	s.current = theme

	if root := s.doc.DocumentElement(); root != nil {
		root.SetAttribute(constants.ThemeAttribute, theme.String())
	}

	body := s.doc.Body()
	if body == nil {
		return
	}
	body.AddClass(constants.ThemeTransitionClass)
	if s.fade != nil {
		s.fade.Stop()
	}
	s.fade = s.win.AfterFunc(s.transition, func() {
		body.RemoveClass(constants.ThemeTransitionClass)
	})
}

func (s *ThemeSwitcher) save(theme Theme) {
	if err := s.win.LocalStorage().SetItem(s.storageKey, theme.String()); err != nil {
		s.logger.Error("Failed to save theme preference", "theme", theme.String(), "error", err)
	}
}

// Toggle flips between light and dark and saves the choice.
func (s *ThemeSwitcher) Toggle() {
	next := ThemeDark
	if s.current == ThemeDark {
		next = ThemeLight
	}
	s.logger.Debug("Switching theme", "from", s.current.String(), "to", next.String())
	s.apply(next)
	s.save(next)
}

// SetTheme applies and saves the named theme. Names other than "light" and
// "dark" return ErrInvalidTheme and change nothing.
func (s *ThemeSwitcher) SetTheme(name string) error {
	theme, err := ParseTheme(name)
	if err != nil {
		s.logger.Error("Invalid theme", "theme", name)
		return err
	}
	s.apply(theme)
	s.save(theme)
	return nil
}

// Current returns the theme in effect.
func (s *ThemeSwitcher) Current() Theme {
	return s.current
}

// Ready reports whether at least one toggle was found.
func (s *ThemeSwitcher) Ready() bool {
	return s.ready
}

// Dispose detaches the toggles and stops following the system scheme.
func (s *ThemeSwitcher) Dispose() {
	s.releases.ReleaseAll()
	if s.fade != nil {
		s.fade.Stop()
	}
	s.ready = false
}
