package perifa

import (
	"log/slog"
	"strings"

	"github.com/perifanotoque/perifa/pkg/perifa/constants"
	"github.com/perifanotoque/perifa/pkg/perifa/dom"
	"github.com/perifanotoque/perifa/pkg/perifa/internal"
)

// HamburgerMenu drives the mobile navigation drawer: #hamburger toggles #menu
// and the #menu-overlay behind it.
type HamburgerMenu struct {
	win      dom.Window
	doc      dom.Document
	logger   *slog.Logger
	messages *Messages

	hamburger dom.Element
	menu      dom.Element
	overlay   dom.Element
	releases  dom.Releases
	ready     bool
}

// NewHamburgerMenu returns an uninitialized menu. Call Init once the page is
// parsed.
func NewHamburgerMenu(win dom.Window, opts WidgetOptions) *HamburgerMenu {
	return &HamburgerMenu{
		win:      win,
		doc:      win.Document(),
		logger:   internal.LoggerOr(opts.Logger),
		messages: internal.MessagesOr(opts.Messages),
	}
}

// Init looks up the menu elements and attaches its listeners. When any of them
// is missing it logs a warning, leaves the menu inert and returns a
// *ConfigurationError.
func (h *HamburgerMenu) Init() error {
	if h.ready {
		return nil
	}

	h.hamburger = h.doc.GetElementByID(constants.HamburgerID)
	h.menu = h.doc.GetElementByID(constants.MenuID)
	h.overlay = h.doc.GetElementByID(constants.MenuOverlayID)

	var missing []string
	for _, required := range []struct {
		id string
		el dom.Element
	}{
		{constants.HamburgerID, h.hamburger},
		{constants.MenuID, h.menu},
		{constants.MenuOverlayID, h.overlay},
	} {
		if required.el == nil {
			missing = append(missing, required.id)
		}
	}
	if len(missing) > 0 {
		err := NewConfigurationError("hamburger menu", "")
		if len(missing) == 1 {
			err.ElementID = missing[0]
		}
		h.logger.Warn("Hamburger menu elements not found; menu disabled", "missing", strings.Join(missing, ","))
		return err
	}

	h.releases.Add(h.hamburger.AddEventListener("click", func(*dom.Event) {
		h.Toggle()
	}))
	h.releases.Add(h.overlay.AddEventListener("click", func(*dom.Event) {
		h.Close()
	}))
	for _, item := range h.menu.QuerySelectorAll("." + constants.MenuItemClass) {
		h.releases.Add(item.AddEventListener("click", func(*dom.Event) {
			if h.IsMenuOpen() {
				h.Close()
			}
		}))
	}
	h.releases.Add(h.doc.AddEventListener("keydown", func(e *dom.Event) {
		if e.Key == "Escape" && h.IsMenuOpen() {
			h.Close()
		}
	}))
	h.releases.Add(h.win.AddEventListener("resize", func(*dom.Event) {
		if h.win.InnerWidth() > constants.MobileBreakpoint && h.IsMenuOpen() {
			h.Close()
		}
	}))

	h.ready = true
	h.logger.Debug("Hamburger menu initialized")
	return nil
}

// Toggle opens a closed menu and closes an open one.
func (h *HamburgerMenu) Toggle() {
	if h.IsMenuOpen() {
		h.Close()
	} else {
		h.Open()
	}
}

// Open shows the drawer and focuses its first item.
func (h *HamburgerMenu) Open() {
	if !h.ready {
		return
	}
	h.hamburger.AddClass(constants.ActiveClass)
	h.menu.AddClass(constants.ActiveClass)
	h.overlay.AddClass(constants.ActiveClass)
	if body := h.doc.Body(); body != nil {
		body.AddClass(constants.MenuOpenClass)
	}
	h.hamburger.SetAttribute("aria-label", h.messages.Get("MenuCloseLabel"))

	if first := h.menu.QuerySelector("." + constants.MenuItemClass); first != nil {
		first.Focus()
	}
}

// Close hides the drawer.
func (h *HamburgerMenu) Close() {
	if !h.ready {
		return
	}
	h.hamburger.RemoveClass(constants.ActiveClass)
	h.menu.RemoveClass(constants.ActiveClass)
	h.overlay.RemoveClass(constants.ActiveClass)
	if body := h.doc.Body(); body != nil {
		body.RemoveClass(constants.MenuOpenClass)
	}
	h.hamburger.SetAttribute("aria-label", h.messages.Get("MenuOpenLabel"))
}

// IsMenuOpen reports whether the drawer is showing.
func (h *HamburgerMenu) IsMenuOpen() bool {
	return h.ready && h.hamburger.HasClass(constants.ActiveClass)
}

// Ready reports whether Init succeeded.
func (h *HamburgerMenu) Ready() bool {
	return h.ready
}

// Dispose detaches every listener and makes the menu inert again.
func (h *HamburgerMenu) Dispose() {
	h.releases.ReleaseAll()
	h.ready = false
}
