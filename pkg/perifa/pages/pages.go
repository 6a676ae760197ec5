// Package pages attaches the behavior of the site's views after the router
// has rendered them.
//
// Each constructor returns a router.Initializer. The router runs it once per
// render of its route and calls the returned disposer before the next render,
// so listeners and timers never outlive the markup they were attached to.
//
// Collaborators are passed in through Deps rather than looked up globally:
//
//	r.AddRoute(constants.RouteHome, fragments.Renderer(templates.Home), pages.Home(win, deps))
package pages

import (
	"log/slog"
	"time"

	"github.com/perifanotoque/perifa/pkg/perifa"
	"github.com/perifanotoque/perifa/pkg/perifa/constants"
	"github.com/perifanotoque/perifa/pkg/perifa/internal"
)

// Notifier shows toasts. *perifa.ToastSystem implements it.
type Notifier interface {
	Info(title, message string, opts perifa.ToastOptions) *perifa.Toast
	Success(title, message string, opts perifa.ToastOptions) *perifa.Toast
	Error(title, message string, opts perifa.ToastOptions) *perifa.Toast
}

// Dialogs shows modal dialogs. *perifa.ModalSystem implements it.
type Dialogs interface {
	Success(title, message string, opts perifa.ModalOptions) *perifa.Modal
}

// Navigator moves to another route. *router.Router implements it.
type Navigator interface {
	Navigate(path string)
}

// Deps are the collaborators of the page behaviors. Every service is
// optional; a missing one turns the matching feedback into a log line, and a
// missing Dialogs falls back to window.alert.
type Deps struct {
	Toasts    Notifier
	Dialogs   Dialogs
	Navigator Navigator
	Messages  *perifa.Messages
	Logger    *slog.Logger

	PulseDuration time.Duration // Section click feedback on the home page (default 150ms)
	SubmitDelay   time.Duration // Processing toast to success dialog (default 2s)
}

func (d Deps) withDefaults() Deps {
	// Set defaults
	if d.PulseDuration <= 0 {
		d.PulseDuration = constants.DefaultPulseDuration
	}
	if d.SubmitDelay <= 0 {
		d.SubmitDelay = constants.DefaultSubmitDelay
	}
	d.Messages = internal.MessagesOr(d.Messages)
	d.Logger = internal.LoggerOr(d.Logger)
	return d
}

func (d Deps) info(title, message string, opts perifa.ToastOptions) {
	if d.Toasts == nil {
		d.Logger.Info("Notification", "title", title, "message", message)
		return
	}
	d.Toasts.Info(title, message, opts)
}

func (d Deps) success(title, message string) {
	if d.Toasts == nil {
		d.Logger.Info("Notification", "title", title, "message", message)
		return
	}
	d.Toasts.Success(title, message, perifa.ToastOptions{})
}

func (d Deps) error(title, message string) {
	if d.Toasts == nil {
		d.Logger.Warn("Notification", "title", title, "message", message)
		return
	}
	d.Toasts.Error(title, message, perifa.ToastOptions{})
}
