// Package memory implements the dom interfaces on an in-memory HTML tree.
//
// Timers run on a virtual Clock that only moves when a test (or a native
// tool) advances it, which makes the router's fade sequence and every widget
// timeout deterministic. The helpers on Window (Click, Input, Submit, ...)
// reproduce the browser's default actions closely enough for the runtime's
// needs: clicks on disabled controls are swallowed, submit buttons submit
// their form and reset buttons reset it unless the click was cancelled.
package memory

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/perifanotoque/perifa/pkg/perifa/dom"
)

// ErrStorageUnavailable is returned by Storage writes while writes are
// disabled.
var ErrStorageUnavailable = errors.New("storage unavailable")

// Options configures a memory window.
type Options struct {
	Hash       string // initial location hash, e.g. "#/projeto"
	Language   string // navigator language (default "pt-BR")
	InnerWidth int    // viewport width in CSS pixels (default 1024)
}

// Window is an in-memory browsing context.
type Window struct {
	clock     *Clock
	doc       *Document
	history   *History
	location  *location
	storage   *Storage
	media     map[string]*MediaQuery
	listeners listenerSet

	language string
	width    int
	scrollX  int
	scrollY  int

	// ConfirmFunc answers window.confirm prompts. Nil answers false.
	ConfirmFunc func(message string) bool

	alerts   []string
	confirms []string
}

// New parses markup as a full HTML document and returns a window showing it.
func New(markup string, opts Options) (*Window, error) {
	root, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}

	w := &Window{
		clock:     NewClock(),
		doc:       newDocument(root),
		location:  &location{},
		storage:   NewStorage(),
		media:     make(map[string]*MediaQuery),
		listeners: make(listenerSet),
		language:  opts.Language,
		width:     opts.InnerWidth,
	}
	if w.language == "" {
		w.language = "pt-BR"
	}
	if w.width == 0 {
		w.width = 1024
	}
	w.location.setURL(opts.Hash)
	w.history = newHistory(w, opts.Hash)
	return w, nil
}

// MustNew is New for tests and fixtures; it panics on parse errors.
func MustNew(markup string, opts Options) *Window {
	w, err := New(markup, opts)
	if err != nil {
		panic(err)
	}
	return w
}

func (w *Window) AfterFunc(d time.Duration, fn func()) dom.Timer {
	return w.clock.AfterFunc(d, fn)
}

func (w *Window) Document() dom.Document {
	return w.doc
}

func (w *Window) History() dom.History {
	return w.history
}

func (w *Window) Location() dom.Location {
	return w.location
}

func (w *Window) LocalStorage() dom.Storage {
	return w.storage
}

func (w *Window) MatchMedia(query string) dom.MediaQuery {
	return w.mediaQuery(query)
}

func (w *Window) mediaQuery(query string) *MediaQuery {
	mq, ok := w.media[query]
	if !ok {
		mq = &MediaQuery{listeners: make(listenerSet)}
		w.media[query] = mq
	}
	return mq
}

func (w *Window) AddEventListener(eventType string, fn dom.Listener) dom.Release {
	return w.listeners.add(eventType, fn)
}

func (w *Window) dispatchWindow(e *dom.Event) {
	w.listeners.fire(e)
}

func (w *Window) ScrollTo(x, y int) {
	w.scrollX, w.scrollY = x, y
}

func (w *Window) InnerWidth() int {
	return w.width
}

func (w *Window) Language() string {
	return w.language
}

func (w *Window) Alert(message string) {
	w.alerts = append(w.alerts, message)
}

func (w *Window) Confirm(message string) bool {
	w.confirms = append(w.confirms, message)
	if w.ConfirmFunc == nil {
		return false
	}
	return w.ConfirmFunc(message)
}

func (w *Window) RequestAnimationFrame(fn func()) {
	w.clock.AfterFunc(16*time.Millisecond, fn)
}

func (w *Window) OnReady(fn func()) {
	fn()
}

// Clock returns the virtual clock driving the window's timers.
func (w *Window) Clock() *Clock {
	return w.clock
}

// Advance is shorthand for Clock().Advance(d).
func (w *Window) Advance(d time.Duration) {
	w.clock.Advance(d)
}

// Doc returns the concrete document.
func (w *Window) Doc() *Document {
	return w.doc
}

// Session returns the concrete session history.
func (w *Window) Session() *History {
	return w.history
}

// Storage returns the concrete local storage.
func (w *Window) Storage() *Storage {
	return w.storage
}

// Scroll returns the last scroll position.
func (w *Window) Scroll() (x, y int) {
	return w.scrollX, w.scrollY
}

// Alerts returns every message passed to Alert.
func (w *Window) Alerts() []string {
	return w.alerts
}

// Confirms returns every message passed to Confirm.
func (w *Window) Confirms() []string {
	return w.confirms
}

// ActiveElement returns the focused element, if any.
func (w *Window) ActiveElement() dom.Element {
	return w.doc.wrap(w.doc.active)
}

// SetMediaMatches updates a media query and notifies its change listeners
// when the result flips.
func (w *Window) SetMediaMatches(query string, matches bool) {
	mq := w.mediaQuery(query)
	if mq.matches == matches {
		return
	}
	mq.matches = matches
	mq.listeners.fire(&dom.Event{Type: "change", Matches: matches})
}

// Resize changes the viewport width and fires resize.
func (w *Window) Resize(width int) {
	w.width = width
	w.dispatchWindow(&dom.Event{Type: "resize"})
}

// Dispatch fires a bubbling event of the given type at el.
func (w *Window) Dispatch(el dom.Element, eventType string) *dom.Event {
	e := &dom.Event{Type: eventType, Target: el}
	w.doc.dispatch(node(el), e, true)
	return e
}

// Click clicks el and runs the default action of submit and reset controls.
// Clicks on disabled form controls are dropped.
func (w *Window) Click(el dom.Element) *dom.Event {
	e := &dom.Event{Type: "click", Target: el}
	if el.Disabled() && isFormControl(el) {
		return e
	}
	w.doc.dispatch(node(el), e, true)
	if e.DefaultPrevented() {
		return e
	}
	switch {
	case isSubmitControl(el):
		if form := el.Closest("form"); form != nil {
			w.Submit(form)
		}
	case el.TagName() == "input" && el.Type() == "reset":
		if form := el.Closest("form"); form != nil {
			form.Reset()
		}
	}
	return e
}

// Submit fires submit at form.
func (w *Window) Submit(form dom.Element) *dom.Event {
	return w.Dispatch(form, "submit")
}

// Input sets the value of el and fires input.
func (w *Window) Input(el dom.Element, value string) *dom.Event {
	el.SetValue(value)
	return w.Dispatch(el, "input")
}

// Select picks the option at index of a select element and fires change.
func (w *Window) Select(el dom.Element, index int) *dom.Event {
	if me, ok := el.(*Element); ok {
		me.SetSelectedIndex(index)
	}
	return w.Dispatch(el, "change")
}

// KeyDown fires a keydown for key at the focused element, or at the body
// when nothing attached to the document has focus.
func (w *Window) KeyDown(key string) *dom.Event {
	target := w.ActiveElement()
	if target == nil || !target.Connected() {
		target = w.doc.Body()
	}
	e := &dom.Event{Type: "keydown", Key: key, Target: target}
	w.doc.dispatch(node(target), e, true)
	return e
}

// Hover fires mouseenter, which does not bubble.
func (w *Window) Hover(el dom.Element) {
	w.doc.dispatch(node(el), &dom.Event{Type: "mouseenter", Target: el}, false)
}

// Unhover fires mouseleave, which does not bubble.
func (w *Window) Unhover(el dom.Element) {
	w.doc.dispatch(node(el), &dom.Event{Type: "mouseleave", Target: el}, false)
}

func node(el dom.Element) *html.Node {
	if me, ok := el.(*Element); ok && me != nil {
		return me.n
	}
	return nil
}

func isFormControl(el dom.Element) bool {
	switch el.TagName() {
	case "input", "button", "select", "textarea":
		return true
	}
	return false
}

func isSubmitControl(el dom.Element) bool {
	switch el.TagName() {
	case "input":
		return el.Type() == "submit"
	case "button":
		return el.Type() == "submit"
	}
	return false
}

// MediaQuery is a media query whose result tests set explicitly.
type MediaQuery struct {
	matches   bool
	listeners listenerSet
}

func (m *MediaQuery) Matches() bool {
	return m.matches
}

func (m *MediaQuery) OnChange(fn func(matches bool)) dom.Release {
	return m.listeners.add("change", func(e *dom.Event) { fn(e.Matches) })
}

// Storage is an in-memory localStorage.
type Storage struct {
	items map[string]string

	// WriteErr, when set, makes every write fail with it.
	WriteErr error
}

// NewStorage creates an empty store.
func NewStorage() *Storage {
	return &Storage{items: make(map[string]string)}
}

func (s *Storage) GetItem(key string) (string, bool) {
	v, ok := s.items[key]
	return v, ok
}

func (s *Storage) SetItem(key, value string) error {
	if s.WriteErr != nil {
		return s.WriteErr
	}
	s.items[key] = value
	return nil
}

func (s *Storage) RemoveItem(key string) error {
	if s.WriteErr != nil {
		return s.WriteErr
	}
	delete(s.items, key)
	return nil
}
