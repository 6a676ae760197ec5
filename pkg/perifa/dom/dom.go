// Package dom describes the slice of the browser object model the perifa
// runtime depends on.
//
// The interfaces carry no build tags so every component compiles and tests
// natively. platform/browser implements them on top of syscall/js and
// platform/memory implements them on an in-memory HTML tree with a virtual
// clock.
package dom

import "time"

// Release detaches whatever was attached when it was returned. Calling it more
// than once is a no-op.
type Release func()

// Listener handles a dispatched event.
type Listener func(e *Event)

// Event is the portion of a DOM event the runtime reads.
type Event struct {
	Type    string
	Target  Element
	Key     string        // keydown
	State   *HistoryState // popstate
	Matches bool          // media query change

	defaultPrevented   bool
	propagationStopped bool
}

// PreventDefault marks the event so the host skips its default action.
func (e *Event) PreventDefault() {
	e.defaultPrevented = true
}

// DefaultPrevented reports whether PreventDefault was called.
func (e *Event) DefaultPrevented() bool {
	return e.defaultPrevented
}

// StopPropagation stops the event from bubbling further.
func (e *Event) StopPropagation() {
	e.propagationStopped = true
}

// PropagationStopped reports whether StopPropagation was called.
func (e *Event) PropagationStopped() bool {
	return e.propagationStopped
}

// Element is a single DOM element.
type Element interface {
	ID() string
	TagName() string // lower case
	Type() string    // "select-one" for single selects, the type attribute for inputs

	GetAttribute(name string) (string, bool)
	SetAttribute(name, value string)
	RemoveAttribute(name string)
	HasAttribute(name string) bool

	AddClass(names ...string)
	RemoveClass(names ...string)
	HasClass(name string) bool
	SetClassName(className string)

	SetStyle(property, value string)
	Style(property string) string

	InnerHTML() string
	SetInnerHTML(markup string)
	TextContent() string

	QuerySelector(selector string) Element
	QuerySelectorAll(selector string) []Element
	Closest(selector string) Element
	Matches(selector string) bool
	Parent() Element
	PreviousElementSibling() Element
	FirstChild() Element

	AppendChild(child Element)
	InsertBefore(child, ref Element)
	Remove()
	Connected() bool

	AddEventListener(eventType string, fn Listener) Release
	Focus()

	Value() string
	SetValue(value string)
	SelectedIndex() int
	Disabled() bool
	SetDisabled(disabled bool)
	Reset()

	// Same reports whether both handles point at the same node.
	Same(other Element) bool
}

// Document is the page document.
type Document interface {
	GetElementByID(id string) Element
	QuerySelector(selector string) Element
	QuerySelectorAll(selector string) []Element
	CreateElement(tag string) Element
	Body() Element
	DocumentElement() Element
	Title() string
	SetTitle(title string)
	AddEventListener(eventType string, fn Listener) Release
}

// HistoryState is the state object the router pushes into browser history.
type HistoryState struct {
	Route string `json:"route"`
}

// History is the session history of the window.
type History interface {
	PushState(state HistoryState, url string)
	State() *HistoryState
	Length() int
}

// Location exposes the address bar.
type Location interface {
	Hash() string
}

// Storage is a string key/value store such as localStorage.
type Storage interface {
	GetItem(key string) (string, bool)
	SetItem(key, value string) error
	RemoveItem(key string) error
}

// MediaQuery is a live media query list.
type MediaQuery interface {
	Matches() bool
	OnChange(fn func(matches bool)) Release
}

// Timer is a scheduled callback.
type Timer interface {
	// Stop cancels the callback. It reports whether the call stopped the
	// timer before it fired.
	Stop() bool
}

// Scheduler schedules deferred callbacks on the event loop.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

// Window is the browsing context.
type Window interface {
	Scheduler

	Document() Document
	History() History
	Location() Location
	LocalStorage() Storage
	MatchMedia(query string) MediaQuery

	AddEventListener(eventType string, fn Listener) Release
	ScrollTo(x, y int)
	InnerWidth() int
	Language() string

	Alert(message string)
	Confirm(message string) bool
	RequestAnimationFrame(fn func())

	// OnReady runs fn once the document has been parsed.
	OnReady(fn func())
}
