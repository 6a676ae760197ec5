// Package constants defines the DOM contract and timing values shared across
// the perifa runtime.
package constants

import (
	"os"
	"time"
)

// Development is the environment variable value for development mode.
const Development = "DEV"

// EnvironmentEnvVar selects the runtime environment of native tools.
const EnvironmentEnvVar = "PERIFA_ENVIRONMENT"

// IsDevMode returns true if running in development mode (PERIFA_ENVIRONMENT=DEV).
func IsDevMode() bool {
	return os.Getenv(EnvironmentEnvVar) == Development
}

// Element ids the host page and the route fragments provide.
const (
	ContentContainerID   = "app-content"
	HamburgerID          = "hamburger"
	MenuID               = "menu"
	MenuOverlayID        = "menu-overlay"
	ThemeToggleID        = "theme-toggle"
	ThemeToggleDesktopID = "theme-toggle-desktop"
	ConfigScriptID       = "perifa-config"
	RegistrationFormID   = "cadastro-form"
	SubmitButtonID       = "submitBtn"
)

// Attributes and classes the router and widgets read or toggle.
const (
	RouteAttribute       = "data-route"
	ThemeAttribute       = "data-theme"
	MenuItemClass        = "menu-item"
	ActiveClass          = "active"
	MenuOpenClass        = "menu-open"
	ThemeTransitionClass = "theme-transition"
)

// Routes registered by the site.
const (
	RouteHome         = "/"
	RouteProjects     = "/projeto"
	RouteRegistration = "/cadastro"
)

// Default timing constants.
const (
	DefaultFadeDelay       = 150 * time.Millisecond // Content fade-out before the swap
	DefaultLoadDelay       = 50 * time.Millisecond  // Settle time before a view initializer runs
	DefaultPulseDuration   = 150 * time.Millisecond // Section click pulse on the home page
	DefaultSubmitDelay     = 2 * time.Second        // Simulated registration round trip
	ToastShowDelay         = 10 * time.Millisecond  // Insertion to toast-show
	HideAnimationDuration  = 300 * time.Millisecond // Hiding class to removal, all widgets
	ThemeTransitionDelay   = 300 * time.Millisecond // theme-transition class lifetime
	DefaultToastDuration   = 4 * time.Second
	WarningToastDuration   = 5 * time.Second
	ErrorToastDuration     = 6 * time.Second
	DefaultAlertDuration   = 5 * time.Second
	InlineAlertDuration    = 10 * time.Second
	MobileBreakpoint       = 768 // px; wider viewports close the mobile menu
	DefaultMaxToasts       = 5
	DarkColorSchemeQuery   = "(prefers-color-scheme: dark)"
	DefaultThemeStorageKey = "perifa-theme-preference"
)
