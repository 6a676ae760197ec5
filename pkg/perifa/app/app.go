// Package app assembles the Perifa no Toque site from the runtime's
// components.
//
// New builds every service against a dom.Window and registers the site's
// routes; Start initializes the page-level widgets and shows the route in the
// address bar. Each widget that cannot find its elements stays inert without
// affecting the others.
//
//	site, err := app.New(browser.New(), app.Options{})
//	if err != nil {
//		return err
//	}
//	site.Run()
package app

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/perifanotoque/perifa/pkg/perifa"
	"github.com/perifanotoque/perifa/pkg/perifa/constants"
	"github.com/perifanotoque/perifa/pkg/perifa/dom"
	"github.com/perifanotoque/perifa/pkg/perifa/internal"
	"github.com/perifanotoque/perifa/pkg/perifa/pages"
	"github.com/perifanotoque/perifa/pkg/perifa/router"
	"github.com/perifanotoque/perifa/pkg/perifa/templates"
)

// Options configures the site.
type Options struct {
	// Config is TOML applied over the built-in configuration. Empty reads
	// the page's #perifa-config script.
	Config string
	Site   *templates.Site // Page content; nil uses templates.DefaultSite
	Logger *slog.Logger
}

// App is the assembled site.
type App struct {
	Toasts    *perifa.ToastSystem
	Modals    *perifa.ModalSystem
	Alerts    *perifa.AlertSystem
	Inline    *perifa.InlineAlerts
	Menu      *perifa.HamburgerMenu
	Theme     *perifa.ThemeSwitcher
	Router    *router.Router
	Templates *templates.Registry

	win      dom.Window
	logger   *slog.Logger
	messages *perifa.Messages
}

// New builds the services of the site and registers its routes. It fails only
// when the configuration or the page fragments cannot be loaded.
func New(win dom.Window, opts Options) (*App, error) {
	override := opts.Config
	if override == "" {
		if script := win.Document().GetElementByID(constants.ConfigScriptID); script != nil {
			override = script.TextContent()
		}
	}

	cfg, err := internal.LoadConfig(override)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if cfg.LogLevel != "" {
		perifa.SetRawLogLevel(cfg.LogLevel)
	}

	a := &App{
		win:      win,
		logger:   internal.LoggerOr(opts.Logger),
		messages: perifa.NewMessages(win.Language(), cfg.Locale),
	}

	a.Templates, err = templates.New(templates.Options{Site: opts.Site, Logger: a.logger})
	if err != nil {
		return nil, fmt.Errorf("loading templates: %w", err)
	}

	widgets := perifa.WidgetOptions{Logger: a.logger, Messages: a.messages}
	a.Toasts = perifa.NewToastSystem(win, perifa.ToastSystemOptions{
		WidgetOptions: widgets,
		Position:      perifa.ParseToastPosition(cfg.Toasts.Position),
		MaxToasts:     cfg.Toasts.Max,
	})
	a.Modals = perifa.NewModalSystem(win, widgets)
	a.Alerts = perifa.NewAlertSystem(win, widgets)
	a.Inline = perifa.NewInlineAlerts(win, widgets)
	a.Menu = perifa.NewHamburgerMenu(win, widgets)
	a.Theme = perifa.NewThemeSwitcher(win, perifa.ThemeSwitcherOptions{
		WidgetOptions: widgets,
		StorageKey:    cfg.Theme.StorageKey,
		Transition:    cfg.Theme.Transition,
	})

	a.Router = router.New(win, router.Options{
		ContainerID:  cfg.Router.ContainerID,
		FadeDelay:    cfg.Router.FadeDelay,
		LoadDelay:    cfg.Router.LoadDelay,
		Titles:       cfg.Router.Titles,
		DefaultTitle: cfg.Router.DefaultTitle,
		Menu:         a.Menu,
		Logger:       a.logger,
	})

	deps := pages.Deps{
		Toasts:    a.Toasts,
		Dialogs:   a.Modals,
		Navigator: a.Router,
		Messages:  a.messages,
		Logger:    a.logger,
	}
	a.Router.
		AddRoute(constants.RouteHome, a.Templates.Renderer(templates.Home), pages.Home(win, deps)).
		AddRoute(constants.RouteProjects, a.Templates.Renderer(templates.Projects), nil).
		AddRoute(constants.RouteRegistration, a.Templates.Renderer(templates.Registration), pages.Cadastro(win, deps))

	return a, nil
}

// Start initializes the menu, the theme switcher and the router, then shows
// the initial route. Components whose elements are missing stay inert; their
// errors are joined into the result.
func (a *App) Start() error {
	var errs []error

	if err := a.Menu.Init(); err != nil {
		errs = append(errs, err)
	}
	if err := a.Theme.Init(); err != nil {
		errs = append(errs, err)
	}
	if err := a.Router.Init(); err != nil {
		errs = append(errs, err)
	} else {
		a.Router.LoadInitialRoute()
	}

	a.logger.Info("Site started",
		"language", a.messages.Language().String(),
		"route", a.Router.CurrentRoute(),
		"menu", a.Menu.Ready(),
		"theme", a.Theme.Ready(),
		"router", a.Router.Ready(),
	)
	return errors.Join(errs...)
}

// Run starts the site once the document is parsed.
func (a *App) Run() {
	a.win.OnReady(func() {
		if err := a.Start(); err != nil {
			a.logger.Warn("Site started with components disabled", "error", err)
		}
	})
}

// Messages returns the copy the site is shown in.
func (a *App) Messages() *perifa.Messages {
	return a.messages
}

// Dispose detaches every listener the site attached and closes what is on
// screen.
func (a *App) Dispose() {
	a.Router.Dispose()
	a.Menu.Dispose()
	a.Theme.Dispose()
	a.Toasts.CloseAll()
	a.Modals.CloseAll()
	a.Modals.Dispose()
	a.Alerts.Dispose()
	a.Inline.Dispose()
}
