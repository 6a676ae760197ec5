package perifa

import (
	"fmt"
	"html/template"
	"log/slog"
	"time"

	"go.uber.org/atomic"

	"github.com/perifanotoque/perifa/pkg/perifa/constants"
	"github.com/perifanotoque/perifa/pkg/perifa/dom"
	"github.com/perifanotoque/perifa/pkg/perifa/internal"
)

var toastTemplate = template.Must(template.New("toast").Parse(
	`<div class="toast-header">{{.Icon}}<div class="toast-content">` +
		`{{if .Title}}<h4 class="toast-title">{{.Title}}</h4>{{end}}` +
		`{{if .Message}}<p class="toast-message">{{.Message}}</p>{{end}}</div>` +
		`{{if .Closable}}<button class="toast-close" aria-label="{{.CloseLabel}}">&times;</button>{{end}}</div>` +
		`{{with .Action}}<div class="toast-actions"><button class="toast-action" data-action="{{.Type}}">{{.Text}}</button></div>{{end}}` +
		`{{if .Progress}}<div class="toast-progress"><div class="toast-progress-bar"></div></div>{{end}}`,
))

// ToastAction adds a button to a toast.
type ToastAction struct {
	Text     string
	Type     string // data-action value, for styling
	Callback func() // Optional; runs before the toast closes
	KeepOpen bool   // Leave the toast open after the callback
}

// ToastOptions describes one toast. Title and Message are plain text.
type ToastOptions struct {
	Type       MessageType
	Title      string
	Message    string
	Duration   time.Duration // Auto-dismiss delay; zero picks the type's default
	Persistent bool          // Never auto-dismiss
	NoClose    bool          // Hide the close button
	NoIcon     bool
	Size       Size
	Position   ToastPosition // Moves the container when set
	Action     *ToastAction
	Progress   bool // Show a countdown bar
}

func (o ToastOptions) duration() time.Duration {
	if o.Duration > 0 {
		return o.Duration
	}
	switch o.Type {
	case TypeError:
		return constants.ErrorToastDuration
	case TypeWarning:
		return constants.WarningToastDuration
	default:
		return constants.DefaultToastDuration
	}
}

// Toast is a toast on screen.
type Toast struct {
	ID      string
	Element dom.Element

	system   *ToastSystem
	timers   *dom.Timers
	releases dom.Releases
	closed   bool
}

// Close starts the hide animation and removes the toast after it. Closing
// twice is a no-op.
func (t *Toast) Close() {
	if t.closed {
		return
	}
	t.closed = true
	t.timers.StopAll()
	t.system.forget(t)

	t.Element.RemoveClass("toast-show")
	fadeOut(t.system.win, t.Element, "toast-hiding", t.releases.ReleaseAll)
}

// Closed reports whether Close has been called.
func (t *Toast) Closed() bool {
	return t.closed
}

func (t *Toast) discard() {
	t.closed = true
	t.timers.StopAll()
	t.releases.ReleaseAll()
}

// ToastSystemOptions configures a ToastSystem.
type ToastSystemOptions struct {
	WidgetOptions
	Position  ToastPosition // Initial container position (default top-right)
	MaxToasts int           // Visible toasts before the oldest are closed (default 5)
}

// ToastSystem shows transient notifications stacked in a corner of the page.
type ToastSystem struct {
	win      dom.Window
	doc      dom.Document
	logger   *slog.Logger
	messages *Messages

	container dom.Element
	position  ToastPosition
	maxToasts int
	counter   atomic.Int64
	live      []*Toast // oldest first
}

// NewToastSystem creates the toast container and appends it to the body.
func NewToastSystem(win dom.Window, opts ToastSystemOptions) *ToastSystem {
	// Set defaults
	if opts.Position == ToastPositionCurrent {
		opts.Position = ToastTopRight
	}
	if opts.MaxToasts <= 0 {
		opts.MaxToasts = constants.DefaultMaxToasts
	}

	s := &ToastSystem{
		win:       win,
		doc:       win.Document(),
		logger:    internal.LoggerOr(opts.Logger),
		messages:  internal.MessagesOr(opts.Messages),
		maxToasts: opts.MaxToasts,
	}
	s.createContainer(opts.Position)
	return s
}

// createContainer replaces the container. Toasts in the old one go with it.
func (s *ToastSystem) createContainer(position ToastPosition) {
	if s.container != nil {
		s.container.Remove()
	}
	for _, t := range s.live {
		t.discard()
	}
	s.live = nil

	c := s.doc.CreateElement("div")
	c.SetClassName("toast-container toast-container-" + position.String())
	c.SetAttribute("aria-live", "polite")
	c.SetAttribute("aria-atomic", "true")
	appendToBody(s.doc, c)

	s.container = c
	s.position = position
}

// Show displays a toast and returns its handle.
func (s *ToastSystem) Show(opts ToastOptions) *Toast {
	if opts.Position != ToastPositionCurrent && opts.Position != s.position {
		s.createContainer(opts.Position)
	}
	s.limit()

	id := fmt.Sprintf("toast-%d", s.counter.Inc())
	el := s.doc.CreateElement("div")
	el.SetAttribute("id", id)
	el.SetClassName(classList(
		"toast",
		"toast-"+opts.Type.String(),
		sizeClass("toast", opts.Size),
		noClass(opts.NoIcon, "toast-no-icon"),
		noClass(opts.NoClose, "toast-no-close"),
		noClass(opts.Progress, "toast-with-progress"),
	))
	el.SetAttribute("role", "alert")
	el.SetInnerHTML(s.render(opts))
	s.container.InsertBefore(el, s.container.FirstChild())

	t := &Toast{ID: id, Element: el, system: s, timers: dom.NewTimers(s.win)}
	s.live = append(s.live, t)

	t.timers.After(constants.ToastShowDelay, func() {
		el.AddClass("toast-show")
	})

	duration := opts.duration()
	if opts.Progress && !opts.Persistent {
		if bar := el.QuerySelector(".toast-progress-bar"); bar != nil {
			bar.SetStyle("animation-duration", fmt.Sprintf("%dms", duration.Milliseconds()))
			bar.AddClass("toast-progress-active")
		}
	}
	if !opts.Persistent {
		t.timers.After(duration, t.Close)
	}

	s.wire(t, opts.Action)

	s.logger.Debug("Toast shown", "id", id, "type", opts.Type.String(), "title", opts.Title)
	return t
}

func (s *ToastSystem) render(opts ToastOptions) string {
	data := struct {
		Icon       template.HTML
		Title      string
		Message    string
		Closable   bool
		CloseLabel string
		Action     *ToastAction
		Progress   bool
	}{
		Title:      opts.Title,
		Message:    opts.Message,
		Closable:   !opts.NoClose,
		CloseLabel: s.messages.Get("ToastCloseLabel"),
		Action:     opts.Action,
		Progress:   opts.Progress,
	}
	if !opts.NoIcon {
		data.Icon = iconHTML(opts.Type, "toast-icon")
	}
	return renderTemplate(s.logger, toastTemplate, data)
}

func (s *ToastSystem) wire(t *Toast, action *ToastAction) {
	el := t.Element

	if btn := el.QuerySelector(".toast-close"); btn != nil {
		t.releases.Add(btn.AddEventListener("click", func(*dom.Event) {
			t.Close()
		}))
	}

	if action != nil {
		if btn := el.QuerySelector(".toast-action"); btn != nil {
			t.releases.Add(btn.AddEventListener("click", func(*dom.Event) {
				if action.Callback != nil {
					action.Callback()
				}
				if !action.KeepOpen {
					t.Close()
				}
			}))
		}
	}

	t.releases.Add(el.AddEventListener("mouseenter", func(*dom.Event) {
		el.AddClass("toast-paused")
	}))
	t.releases.Add(el.AddEventListener("mouseleave", func(*dom.Event) {
		el.RemoveClass("toast-paused")
	}))
}

// limit closes the oldest toasts so a new one fits under the cap.
func (s *ToastSystem) limit() {
	for len(s.live) >= s.maxToasts {
		s.live[0].Close()
	}
}

func (s *ToastSystem) forget(t *Toast) {
	for i, live := range s.live {
		if live == t {
			s.live = append(s.live[:i], s.live[i+1:]...)
			return
		}
	}
}

// Success shows a success toast.
func (s *ToastSystem) Success(title, message string, opts ToastOptions) *Toast {
	opts.Type, opts.Title, opts.Message = TypeSuccess, title, message
	return s.Show(opts)
}

// Error shows an error toast, six seconds unless opts says otherwise.
func (s *ToastSystem) Error(title, message string, opts ToastOptions) *Toast {
	opts.Type, opts.Title, opts.Message = TypeError, title, message
	return s.Show(opts)
}

// Warning shows a warning toast, five seconds unless opts says otherwise.
func (s *ToastSystem) Warning(title, message string, opts ToastOptions) *Toast {
	opts.Type, opts.Title, opts.Message = TypeWarning, title, message
	return s.Show(opts)
}

// Info shows an informational toast.
func (s *ToastSystem) Info(title, message string, opts ToastOptions) *Toast {
	opts.Type, opts.Title, opts.Message = TypeInfo, title, message
	return s.Show(opts)
}

// CloseAll closes every visible toast.
func (s *ToastSystem) CloseAll() {
	for _, t := range append([]*Toast(nil), s.live...) {
		t.Close()
	}
}

// SetPosition moves the container. Toasts on screen are dropped.
func (s *ToastSystem) SetPosition(position ToastPosition) {
	if position == ToastPositionCurrent {
		return
	}
	s.createContainer(position)
}

// SetMaxToasts changes the cap for toasts shown from now on.
func (s *ToastSystem) SetMaxToasts(max int) {
	if max > 0 {
		s.maxToasts = max
	}
}

// Visible returns the number of toasts that are not closing.
func (s *ToastSystem) Visible() int {
	return len(s.live)
}

// Container returns the current toast container.
func (s *ToastSystem) Container() dom.Element {
	return s.container
}

func noClass(set bool, class string) string {
	if set {
		return class
	}
	return ""
}
