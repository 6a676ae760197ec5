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

var alertTemplate = template.Must(template.New("alert").Parse(
	`{{.Icon}}<div class="alert-content">` +
		`{{if .Title}}<h4 class="alert-title">{{.Title}}</h4>{{end}}` +
		`{{if .Message}}<p class="alert-message">{{.Message}}</p>{{end}}</div>` +
		`{{if .Closable}}<button class="alert-close" aria-label="{{.CloseLabel}}">&times;</button>{{end}}`,
))

// AlertOptions describes a floating or inline alert. Title and Message are
// plain text.
type AlertOptions struct {
	Type        MessageType
	Title       string
	Message     string
	Duration    time.Duration // Floating alerts only; zero means five seconds
	Persistent  bool          // Never auto-dismiss
	NotClosable bool          // Hide the close button
	NoIcon      bool
	Size        Size
	Position    AlertPosition // Floating alerts only; moves the container when set
}

// Alert is a floating or inline alert on screen.
type Alert struct {
	ID      string
	Element dom.Element

	scheduler dom.Scheduler
	timer     dom.Timer
	releases  dom.Releases
	closed    bool
}

// Close fades the alert out and removes it. Closing twice is a no-op.
func (a *Alert) Close() {
	if a.closed {
		return
	}
	a.closed = true
	if a.timer != nil {
		a.timer.Stop()
	}
	if !fadeOut(a.scheduler, a.Element, "hiding", a.releases.ReleaseAll) {
		a.releases.ReleaseAll()
	}
}

// Closed reports whether Close has been called.
func (a *Alert) Closed() bool {
	return a.closed
}

// alertSet renders alerts and tracks the ones it created so that document
// level close clicks reach the right handle.
type alertSet struct {
	win      dom.Window
	doc      dom.Document
	logger   *slog.Logger
	messages *Messages

	live []*Alert
}

func newAlertSet(win dom.Window, opts WidgetOptions) alertSet {
	return alertSet{
		win:      win,
		doc:      win.Document(),
		logger:   internal.LoggerOr(opts.Logger),
		messages: internal.MessagesOr(opts.Messages),
	}
}

func (s *alertSet) build(id string, opts AlertOptions, extra string) *Alert {
	el := s.doc.CreateElement("div")
	if id != "" {
		el.SetAttribute("id", id)
	}
	el.SetClassName(classList(
		"alert",
		"alert-"+opts.Type.String(),
		extra,
		sizeClass("alert", opts.Size),
		noClass(opts.NoIcon, "alert-no-icon"),
		noClass(opts.NotClosable, "alert-no-close"),
	))
	el.SetAttribute("role", "alert")

	data := struct {
		Icon       template.HTML
		Title      string
		Message    string
		Closable   bool
		CloseLabel string
	}{
		Title:      opts.Title,
		Message:    opts.Message,
		Closable:   !opts.NotClosable,
		CloseLabel: s.messages.Get("AlertCloseLabel"),
	}
	if !opts.NoIcon {
		data.Icon = iconHTML(opts.Type, "alert-icon")
	}
	el.SetInnerHTML(renderTemplate(s.logger, alertTemplate, data))

	a := &Alert{ID: id, Element: el, scheduler: s.win}
	a.releases.Add(func() { s.forget(a) })
	s.live = append(s.live, a)
	return a
}

func (s *alertSet) arm(a *Alert, d time.Duration) {
	a.timer = s.win.AfterFunc(d, a.Close)
}

func (s *alertSet) forget(a *Alert) {
	for i, live := range s.live {
		if live == a {
			s.live = append(s.live[:i], s.live[i+1:]...)
			return
		}
	}
}

// closeElement closes the alert rendered as el, or fades el out when it is
// static markup from the page.
func (s *alertSet) closeElement(el dom.Element) {
	for _, a := range s.live {
		if a.Element.Same(el) {
			a.Close()
			return
		}
	}
	fadeOut(s.win, el, "hiding", nil)
}

// closeClicks handles clicks on any .alert-close inside an element matching
// selector, including alerts written directly into the page.
func (s *alertSet) closeClicks(selector string) dom.Release {
	return s.doc.AddEventListener("click", func(e *dom.Event) {
		if e.Target == nil || !e.Target.HasClass("alert-close") {
			return
		}
		if el := e.Target.Closest(selector); el != nil {
			s.closeElement(el)
		}
	})
}

// AlertSystem shows floating alerts in a fixed container.
type AlertSystem struct {
	alertSet

	container dom.Element
	position  AlertPosition
	counter   atomic.Int64
	release   dom.Release
}

// NewAlertSystem creates the alert container and starts handling close
// buttons of every .alert on the page.
func NewAlertSystem(win dom.Window, opts WidgetOptions) *AlertSystem {
	s := &AlertSystem{alertSet: newAlertSet(win, opts)}
	s.createContainer(AlertTopRight)
	s.release = s.closeClicks(".alert")
	return s
}

func (s *AlertSystem) createContainer(position AlertPosition) {
	if s.container != nil {
		s.container.Remove()
	}
	c := s.doc.CreateElement("div")
	c.SetClassName(position.containerClass())
	appendToBody(s.doc, c)
	s.container = c
	s.position = position
}

// Show displays a floating alert and returns its handle.
func (s *AlertSystem) Show(opts AlertOptions) *Alert {
	if opts.Position != AlertPositionCurrent && opts.Position.containerClass() != s.position.containerClass() {
		s.createContainer(opts.Position)
	}

	a := s.build(fmt.Sprintf("alert-%d", s.counter.Inc()), opts, "")
	s.container.AppendChild(a.Element)

	if !opts.Persistent {
		d := opts.Duration
		if d <= 0 {
			d = constants.DefaultAlertDuration
		}
		s.arm(a, d)
	}

	s.logger.Debug("Alert shown", "id", a.ID, "type", opts.Type.String(), "title", opts.Title)
	return a
}

// Success shows a success alert.
func (s *AlertSystem) Success(title, message string, opts AlertOptions) *Alert {
	opts.Type, opts.Title, opts.Message = TypeSuccess, title, message
	return s.Show(opts)
}

// Error shows an error alert.
func (s *AlertSystem) Error(title, message string, opts AlertOptions) *Alert {
	opts.Type, opts.Title, opts.Message = TypeError, title, message
	return s.Show(opts)
}

// Warning shows a warning alert.
func (s *AlertSystem) Warning(title, message string, opts AlertOptions) *Alert {
	opts.Type, opts.Title, opts.Message = TypeWarning, title, message
	return s.Show(opts)
}

// Info shows an informational alert.
func (s *AlertSystem) Info(title, message string, opts AlertOptions) *Alert {
	opts.Type, opts.Title, opts.Message = TypeInfo, title, message
	return s.Show(opts)
}

// CloseAll closes every .alert on the page, inline ones included.
func (s *AlertSystem) CloseAll() {
	for _, el := range s.doc.QuerySelectorAll(".alert") {
		s.closeElement(el)
	}
}

// SetPosition recreates the container at position. Alerts on screen are
// dropped with the old container.
func (s *AlertSystem) SetPosition(position AlertPosition) {
	if position == AlertPositionCurrent {
		return
	}
	s.createContainer(position)
}

// Container returns the current alert container.
func (s *AlertSystem) Container() dom.Element {
	return s.container
}

// Dispose stops handling close clicks.
func (s *AlertSystem) Dispose() {
	if s.release != nil {
		s.release()
		s.release = nil
	}
}
