package router

import (
	"log/slog"
	"strings"
	"time"

	"go.uber.org/atomic"

	"github.com/perifanotoque/perifa/pkg/perifa"
	"github.com/perifanotoque/perifa/pkg/perifa/constants"
	"github.com/perifanotoque/perifa/pkg/perifa/dom"
	"github.com/perifanotoque/perifa/pkg/perifa/internal"
)

// Home is the path unknown routes redirect to.
const Home = constants.RouteHome

// RenderFunc returns the HTML fragment of a view. The markup is trusted and
// inserted as is.
type RenderFunc func() string

// Disposer tears down whatever an Initializer attached. Nil means there is
// nothing to tear down.
type Disposer func()

// Initializer attaches the behavior of a view after it has been rendered. It
// runs once per render of its route.
type Initializer func() Disposer

// Route is a registered view.
type Route struct {
	Path   string
	Render RenderFunc
	OnLoad Initializer // Optional
}

// MenuCloser is the mobile menu that a menu item click should close.
type MenuCloser interface {
	IsMenuOpen() bool
	Close()
}

// Options configures a Router.
type Options struct {
	ContainerID  string            // Id of the content container (default "app-content")
	FadeDelay    time.Duration     // Fade-out before the content swap (default 150ms)
	LoadDelay    time.Duration     // Swap to OnLoad (default 50ms)
	Titles       map[string]string // Document title per path
	DefaultTitle string            // Title of paths missing from Titles (default "Perifa no Toque")
	Menu         MenuCloser        // Optional
	Logger       *slog.Logger
}

// Router renders the view of the current path into the content container and
// keeps browser history in step with it.
type Router struct {
	win    dom.Window
	doc    dom.Document
	logger *slog.Logger
	opts   Options

	routes    map[string]Route
	container dom.Element
	current   string

	ready    atomic.Bool
	renders  atomic.Int64
	timers   *dom.Timers // fade and load of the in-flight render
	dispose  Disposer    // teardown of the live view
	releases dom.Releases
}

// New creates a router. Register routes with AddRoute and call Init once the
// page is parsed.
func New(win dom.Window, opts Options) *Router {
	// Set defaults
	if opts.ContainerID == "" {
		opts.ContainerID = constants.ContentContainerID
	}
	if opts.FadeDelay <= 0 {
		opts.FadeDelay = constants.DefaultFadeDelay
	}
	if opts.LoadDelay <= 0 {
		opts.LoadDelay = constants.DefaultLoadDelay
	}
	if opts.DefaultTitle == "" {
		opts.DefaultTitle = "Perifa no Toque"
	}

	return &Router{
		win:    win,
		doc:    win.Document(),
		logger: internal.LoggerOr(opts.Logger),
		opts:   opts,
		routes: make(map[string]Route),
		timers: dom.NewTimers(win),
	}
}

// AddRoute registers the view for path, replacing any earlier registration.
// Paths are opaque keys and are not validated.
func (r *Router) AddRoute(path string, render RenderFunc, onLoad Initializer) *Router {
	r.routes[path] = Route{Path: path, Render: render, OnLoad: onLoad}
	return r
}

// Route returns the registration for path.
func (r *Router) Route(path string) (Route, bool) {
	route, ok := r.routes[path]
	return route, ok
}

// Init finds the content container and starts intercepting route links and
// history navigation. Without a container the router logs an error, stays
// inert and returns a *perifa.ConfigurationError. Calling Init again after a
// success is a no-op.
func (r *Router) Init() error {
	if r.ready.Load() {
		return nil
	}

	r.container = r.doc.GetElementByID(r.opts.ContainerID)
	if r.container == nil {
		err := perifa.NewConfigurationError("router", r.opts.ContainerID)
		r.logger.Error("Router content container not found", "id", r.opts.ContainerID, "error", err)
		return err
	}

	r.releases.Add(r.doc.AddEventListener("click", r.handleLinkClick))
	r.releases.Add(r.doc.AddEventListener("click", r.handleMenuClick))
	r.releases.Add(r.win.AddEventListener("popstate", func(e *dom.Event) {
		if e.State != nil && e.State.Route != "" {
			r.LoadRoute(e.State.Route, false)
		}
	}))

	r.ready.Store(true)
	r.logger.Debug("Router initialized", "container", r.opts.ContainerID)
	return nil
}

// handleLinkClick navigates for [data-route] elements that are not menu
// items; those go through handleMenuClick so a click navigates once.
func (r *Router) handleLinkClick(e *dom.Event) {
	if e.Target == nil {
		return
	}
	link := e.Target.Closest("[" + constants.RouteAttribute + "]")
	if link == nil || link.HasClass(constants.MenuItemClass) {
		return
	}
	e.PreventDefault()
	path, _ := link.GetAttribute(constants.RouteAttribute)
	r.Navigate(path)
}

func (r *Router) handleMenuClick(e *dom.Event) {
	if e.Target == nil {
		return
	}
	item := e.Target.Closest("." + constants.MenuItemClass)
	if item == nil || !item.HasAttribute(constants.RouteAttribute) {
		return
	}
	e.PreventDefault()
	path, _ := item.GetAttribute(constants.RouteAttribute)
	r.Navigate(path)

	if r.opts.Menu != nil && r.opts.Menu.IsMenuOpen() {
		r.opts.Menu.Close()
	}
}

// Navigate shows path and pushes a history entry for it.
func (r *Router) Navigate(path string) {
	r.LoadRoute(path, true)
}

// LoadRoute shows the view registered for path. Unknown paths are logged and
// redirect home; when home itself is unknown nothing happens. With push set a
// history entry {route: path} with URL #path is added.
func (r *Router) LoadRoute(path string, push bool) {
	if !r.ready.Load() {
		r.logger.Warn("Router not ready; ignoring navigation", "path", path, "error", perifa.ErrNotReady)
		return
	}

	route, ok := r.routes[path]
	if !ok {
		r.logger.Warn("Route not found", "path", path, "error", perifa.ErrRouteNotFound)
		if path != Home {
			r.LoadRoute(Home, push)
		}
		return
	}

	r.current = path
	if push {
		r.win.History().PushState(dom.HistoryState{Route: path}, "#"+path)
	}

	r.render(route)
	r.highlightMenu(path)
	r.win.ScrollTo(0, 0)
	r.updateTitle(path)
}

// LoadInitialRoute shows the path in the address bar fragment, or home when
// the fragment is empty, without pushing history.
func (r *Router) LoadInitialRoute() {
	path := strings.TrimPrefix(r.win.Location().Hash(), "#")
	if path == "" {
		path = Home
	}
	r.LoadRoute(path, false)
}

// render fades the container out, swaps in the view and runs its initializer.
// Starting a render cancels the steps of the previous one that have not run.
func (r *Router) render(route Route) {
	r.timers.StopAll()
	n := r.renders.Inc()

	r.container.SetStyle("opacity", "0")

	r.timers.After(r.opts.FadeDelay, func() {
		r.teardown()

		html := ""
		if route.Render != nil {
			html = route.Render()
		}
		r.container.SetInnerHTML(html)
		r.container.SetStyle("opacity", "1")
		r.logger.Debug("View rendered", "path", route.Path, "render", n)

		if route.OnLoad == nil {
			return
		}
		r.timers.After(r.opts.LoadDelay, func() {
			r.dispose = route.OnLoad()
		})
	})
}

// teardown runs the disposer of the live view.
func (r *Router) teardown() {
	if r.dispose != nil {
		dispose := r.dispose
		r.dispose = nil
		dispose()
	}
}

func (r *Router) highlightMenu(path string) {
	for _, item := range r.doc.QuerySelectorAll("." + constants.MenuItemClass) {
		item.RemoveClass(constants.ActiveClass)
		if route, ok := item.GetAttribute(constants.RouteAttribute); ok && route == path {
			item.AddClass(constants.ActiveClass)
		}
	}
}

func (r *Router) updateTitle(path string) {
	title, ok := r.opts.Titles[path]
	if !ok {
		title = r.opts.DefaultTitle
	}
	r.doc.SetTitle(title)
}

// CurrentRoute returns the path shown last, or "" before the first
// navigation.
func (r *Router) CurrentRoute() string {
	return r.current
}

// Ready reports whether Init succeeded.
func (r *Router) Ready() bool {
	return r.ready.Load()
}

// Dispose detaches the router's listeners, cancels a pending render and tears
// down the live view. The router is inert afterwards.
func (r *Router) Dispose() {
	r.timers.StopAll()
	r.teardown()
	r.releases.ReleaseAll()
	r.ready.Store(false)
}
