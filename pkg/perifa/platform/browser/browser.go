//go:build js && wasm

// Package browser implements the dom interfaces on top of syscall/js for the
// GOOS=js GOARCH=wasm build.
package browser

import (
	"fmt"
	"strings"
	"time"

	"syscall/js"

	"github.com/perifanotoque/perifa/pkg/perifa/dom"
)

// Window wraps the global window object.
type Window struct {
	global js.Value
	doc    *Document
}

// New returns the current browsing context.
func New() *Window {
	global := js.Global()
	return &Window{
		global: global,
		doc:    &Document{v: global.Get("document")},
	}
}

func (w *Window) Document() dom.Document {
	return w.doc
}

func (w *Window) History() dom.History {
	return history{v: w.global.Get("history")}
}

func (w *Window) Location() dom.Location {
	return location{v: w.global.Get("location")}
}

func (w *Window) LocalStorage() (s dom.Storage) {
	defer func() {
		if r := recover(); r != nil {
			s = storage{err: fmt.Errorf("localStorage: %v", r)}
		}
	}()
	v := w.global.Get("localStorage")
	if v.IsUndefined() || v.IsNull() {
		return storage{err: fmt.Errorf("localStorage: not available")}
	}
	return storage{v: v}
}

func (w *Window) MatchMedia(query string) dom.MediaQuery {
	return mediaQuery{v: w.global.Call("matchMedia", query)}
}

func (w *Window) AddEventListener(eventType string, fn dom.Listener) dom.Release {
	return listen(w.global, eventType, fn)
}

func (w *Window) ScrollTo(x, y int) {
	w.global.Call("scrollTo", x, y)
}

func (w *Window) InnerWidth() int {
	return w.global.Get("innerWidth").Int()
}

func (w *Window) Language() string {
	nav := w.global.Get("navigator")
	if lang := nav.Get("language"); lang.Type() == js.TypeString {
		return lang.String()
	}
	return ""
}

func (w *Window) Alert(message string) {
	w.global.Call("alert", message)
}

func (w *Window) Confirm(message string) bool {
	return w.global.Call("confirm", message).Truthy()
}

func (w *Window) RequestAnimationFrame(fn func()) {
	var cb js.Func
	cb = js.FuncOf(func(this js.Value, args []js.Value) any {
		cb.Release()
		fn()
		return nil
	})
	w.global.Call("requestAnimationFrame", cb)
}

func (w *Window) OnReady(fn func()) {
	doc := w.global.Get("document")
	if doc.Get("readyState").String() != "loading" {
		fn()
		return
	}
	var release dom.Release
	release = listen(doc, "DOMContentLoaded", func(*dom.Event) {
		release()
		fn()
	})
}

func (w *Window) AfterFunc(d time.Duration, fn func()) dom.Timer {
	t := &timer{global: w.global}
	t.cb = js.FuncOf(func(this js.Value, args []js.Value) any {
		t.fired = true
		t.cb.Release()
		fn()
		return nil
	})
	t.id = w.global.Call("setTimeout", t.cb, d.Milliseconds())
	return t
}

type timer struct {
	global  js.Value
	id      js.Value
	cb      js.Func
	fired   bool
	stopped bool
}

func (t *timer) Stop() bool {
	if t.fired || t.stopped {
		return false
	}
	t.stopped = true
	t.global.Call("clearTimeout", t.id)
	t.cb.Release()
	return true
}

// listen attaches fn to target and returns a release that detaches it and
// frees the js.Func.
func listen(target js.Value, eventType string, fn dom.Listener) dom.Release {
	cb := js.FuncOf(func(this js.Value, args []js.Value) any {
		if len(args) == 0 {
			return nil
		}
		raw := args[0]
		e := toEvent(raw)
		fn(e)
		if e.DefaultPrevented() {
			raw.Call("preventDefault")
		}
		if e.PropagationStopped() {
			raw.Call("stopPropagation")
		}
		return nil
	})
	target.Call("addEventListener", eventType, cb)

	released := false
	return func() {
		if released {
			return
		}
		released = true
		target.Call("removeEventListener", eventType, cb)
		cb.Release()
	}
}

func toEvent(raw js.Value) *dom.Event {
	e := &dom.Event{Type: raw.Get("type").String()}

	if target := elementTarget(raw.Get("target")); target.Truthy() {
		e.Target = wrap(target)
	}
	if key := raw.Get("key"); key.Type() == js.TypeString {
		e.Key = key.String()
	}
	if matches := raw.Get("matches"); matches.Type() == js.TypeBoolean {
		e.Matches = matches.Bool()
	}
	if state := raw.Get("state"); state.Type() == js.TypeObject && !state.IsNull() {
		if route := state.Get("route"); route.Type() == js.TypeString {
			e.State = &dom.HistoryState{Route: route.String()}
		}
	}
	return e
}

// elementTarget returns the element an event targets. Text nodes resolve to
// their parent. Window, MediaQueryList and other non-node targets yield
// undefined.
func elementTarget(target js.Value) js.Value {
	if !target.Truthy() {
		return js.Undefined()
	}
	nodeType := target.Get("nodeType")
	if nodeType.Type() != js.TypeNumber {
		return js.Undefined()
	}
	switch nodeType.Int() {
	case 1:
		return target
	case 3:
		return target.Get("parentElement")
	default:
		return js.Undefined()
	}
}

type history struct {
	v js.Value
}

func (h history) PushState(state dom.HistoryState, url string) {
	h.v.Call("pushState", map[string]any{"route": state.Route}, "", url)
}

func (h history) State() *dom.HistoryState {
	state := h.v.Get("state")
	if state.Type() != js.TypeObject || state.IsNull() {
		return nil
	}
	route := state.Get("route")
	if route.Type() != js.TypeString {
		return nil
	}
	return &dom.HistoryState{Route: route.String()}
}

func (h history) Length() int {
	return h.v.Get("length").Int()
}

type location struct {
	v js.Value
}

func (l location) Hash() string {
	return l.v.Get("hash").String()
}

type storage struct {
	v   js.Value
	err error
}

func (s storage) GetItem(key string) (value string, ok bool) {
	if s.err != nil {
		return "", false
	}
	defer func() {
		if r := recover(); r != nil {
			value, ok = "", false
		}
	}()
	v := s.v.Call("getItem", key)
	if v.IsNull() || v.IsUndefined() {
		return "", false
	}
	return v.String(), true
}

func (s storage) SetItem(key, value string) (err error) {
	if s.err != nil {
		return s.err
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("localStorage.setItem: %v", r)
		}
	}()
	s.v.Call("setItem", key, value)
	return nil
}

func (s storage) RemoveItem(key string) (err error) {
	if s.err != nil {
		return s.err
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("localStorage.removeItem: %v", r)
		}
	}()
	s.v.Call("removeItem", key)
	return nil
}

type mediaQuery struct {
	v js.Value
}

func (m mediaQuery) Matches() bool {
	return m.v.Get("matches").Bool()
}

func (m mediaQuery) OnChange(fn func(matches bool)) dom.Release {
	return listen(m.v, "change", func(e *dom.Event) { fn(e.Matches) })
}

// Document wraps window.document.
type Document struct {
	v js.Value
}

func (d *Document) GetElementByID(id string) dom.Element {
	return wrap(d.v.Call("getElementById", id))
}

func (d *Document) QuerySelector(selector string) dom.Element {
	return querySelector(d.v, selector)
}

func (d *Document) QuerySelectorAll(selector string) []dom.Element {
	return querySelectorAll(d.v, selector)
}

func (d *Document) CreateElement(tag string) dom.Element {
	return wrap(d.v.Call("createElement", tag))
}

func (d *Document) Body() dom.Element {
	return wrap(d.v.Get("body"))
}

func (d *Document) DocumentElement() dom.Element {
	return wrap(d.v.Get("documentElement"))
}

func (d *Document) Title() string {
	return d.v.Get("title").String()
}

func (d *Document) SetTitle(title string) {
	d.v.Set("title", title)
}

func (d *Document) AddEventListener(eventType string, fn dom.Listener) dom.Release {
	return listen(d.v, eventType, fn)
}

func querySelector(v js.Value, selector string) (el dom.Element) {
	defer func() {
		if r := recover(); r != nil {
			el = nil
		}
	}()
	return wrap(v.Call("querySelector", selector))
}

func querySelectorAll(v js.Value, selector string) (out []dom.Element) {
	defer func() {
		if r := recover(); r != nil {
			out = nil
		}
	}()
	list := v.Call("querySelectorAll", selector)
	n := list.Get("length").Int()
	out = make([]dom.Element, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, wrap(list.Call("item", i)))
	}
	return out
}

func wrap(v js.Value) dom.Element {
	if v.IsNull() || v.IsUndefined() {
		return nil
	}
	return &Element{v: v}
}

func unwrap(el dom.Element) js.Value {
	if e, ok := el.(*Element); ok && e != nil {
		return e.v
	}
	return js.Null()
}

// Element wraps a DOM element.
type Element struct {
	v js.Value
}

func (e *Element) ID() string {
	return e.v.Get("id").String()
}

func (e *Element) TagName() string {
	return strings.ToLower(e.v.Get("tagName").String())
}

func (e *Element) Type() string {
	if t := e.v.Get("type"); t.Type() == js.TypeString {
		return t.String()
	}
	return ""
}

func (e *Element) GetAttribute(name string) (string, bool) {
	v := e.v.Call("getAttribute", name)
	if v.IsNull() {
		return "", false
	}
	return v.String(), true
}

func (e *Element) SetAttribute(name, value string) {
	e.v.Call("setAttribute", name, value)
}

func (e *Element) RemoveAttribute(name string) {
	e.v.Call("removeAttribute", name)
}

func (e *Element) HasAttribute(name string) bool {
	return e.v.Call("hasAttribute", name).Bool()
}

func (e *Element) AddClass(names ...string) {
	e.v.Get("classList").Call("add", toArgs(names)...)
}

func (e *Element) RemoveClass(names ...string) {
	e.v.Get("classList").Call("remove", toArgs(names)...)
}

func (e *Element) HasClass(name string) bool {
	return e.v.Get("classList").Call("contains", name).Bool()
}

func (e *Element) SetClassName(className string) {
	e.v.Set("className", className)
}

func (e *Element) SetStyle(property, value string) {
	style := e.v.Get("style")
	if value == "" {
		style.Call("removeProperty", property)
		return
	}
	style.Call("setProperty", property, value)
}

func (e *Element) Style(property string) string {
	return e.v.Get("style").Call("getPropertyValue", property).String()
}

func (e *Element) InnerHTML() string {
	return e.v.Get("innerHTML").String()
}

func (e *Element) SetInnerHTML(markup string) {
	e.v.Set("innerHTML", markup)
}

func (e *Element) TextContent() string {
	return e.v.Get("textContent").String()
}

func (e *Element) QuerySelector(selector string) dom.Element {
	return querySelector(e.v, selector)
}

func (e *Element) QuerySelectorAll(selector string) []dom.Element {
	return querySelectorAll(e.v, selector)
}

func (e *Element) Closest(selector string) (el dom.Element) {
	defer func() {
		if r := recover(); r != nil {
			el = nil
		}
	}()
	return wrap(e.v.Call("closest", selector))
}

func (e *Element) Matches(selector string) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			ok = false
		}
	}()
	return e.v.Call("matches", selector).Bool()
}

func (e *Element) Parent() dom.Element {
	return wrap(e.v.Get("parentElement"))
}

func (e *Element) PreviousElementSibling() dom.Element {
	return wrap(e.v.Get("previousElementSibling"))
}

func (e *Element) FirstChild() dom.Element {
	return wrap(e.v.Get("firstElementChild"))
}

func (e *Element) AppendChild(child dom.Element) {
	e.v.Call("appendChild", unwrap(child))
}

func (e *Element) InsertBefore(child, ref dom.Element) {
	e.v.Call("insertBefore", unwrap(child), unwrap(ref))
}

func (e *Element) Remove() {
	e.v.Call("remove")
}

func (e *Element) Connected() bool {
	return e.v.Get("isConnected").Bool()
}

func (e *Element) AddEventListener(eventType string, fn dom.Listener) dom.Release {
	return listen(e.v, eventType, fn)
}

func (e *Element) Focus() {
	e.v.Call("focus")
}

func (e *Element) Value() string {
	if v := e.v.Get("value"); v.Type() == js.TypeString {
		return v.String()
	}
	return ""
}

func (e *Element) SetValue(value string) {
	e.v.Set("value", value)
}

func (e *Element) SelectedIndex() int {
	if v := e.v.Get("selectedIndex"); v.Type() == js.TypeNumber {
		return v.Int()
	}
	return -1
}

func (e *Element) Disabled() bool {
	return e.v.Get("disabled").Truthy()
}

func (e *Element) SetDisabled(disabled bool) {
	e.v.Set("disabled", disabled)
}

func (e *Element) Reset() {
	if e.v.Get("reset").Type() == js.TypeFunction {
		e.v.Call("reset")
	}
}

func (e *Element) Same(other dom.Element) bool {
	o, ok := other.(*Element)
	return ok && o != nil && e.v.Equal(o.v)
}

func toArgs(names []string) []any {
	args := make([]any, len(names))
	for i, n := range names {
		args[i] = n
	}
	return args
}
