package memory

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/perifanotoque/perifa/pkg/perifa/dom"
)

// Element is an element node of a memory Document.
type Element struct {
	n   *html.Node
	doc *Document
}

func (e *Element) selection() *goquery.Selection {
	return goquery.NewDocumentFromNode(e.n).Selection
}

func (e *Element) ID() string {
	return attr(e.n, "id")
}

func (e *Element) TagName() string {
	return e.n.Data
}

func (e *Element) Type() string {
	switch e.n.Data {
	case "input":
		if t := strings.ToLower(attr(e.n, "type")); t != "" {
			return t
		}
		return "text"
	case "select":
		if hasAttr(e.n, "multiple") {
			return "select-multiple"
		}
		return "select-one"
	case "textarea":
		return "textarea"
	case "button":
		if t := strings.ToLower(attr(e.n, "type")); t != "" {
			return t
		}
		return "submit"
	}
	return ""
}

func (e *Element) GetAttribute(name string) (string, bool) {
	if !hasAttr(e.n, name) {
		return "", false
	}
	return attr(e.n, name), true
}

func (e *Element) SetAttribute(name, value string) {
	setAttr(e.n, name, value)
}

func (e *Element) RemoveAttribute(name string) {
	removeAttr(e.n, name)
}

func (e *Element) HasAttribute(name string) bool {
	return hasAttr(e.n, name)
}

func (e *Element) classes() []string {
	return strings.Fields(attr(e.n, "class"))
}

func (e *Element) AddClass(names ...string) {
	current := e.classes()
	for _, name := range names {
		if !contains(current, name) {
			current = append(current, name)
		}
	}
	setAttr(e.n, "class", strings.Join(current, " "))
}

func (e *Element) RemoveClass(names ...string) {
	if !hasAttr(e.n, "class") {
		return
	}
	kept := make([]string, 0)
	for _, c := range e.classes() {
		if !contains(names, c) {
			kept = append(kept, c)
		}
	}
	setAttr(e.n, "class", strings.Join(kept, " "))
}

func (e *Element) HasClass(name string) bool {
	return contains(e.classes(), name)
}

func (e *Element) SetClassName(className string) {
	setAttr(e.n, "class", className)
}

func (e *Element) SetStyle(property, value string) {
	decls := parseStyle(attr(e.n, "style"))
	out := decls[:0]
	replaced := false
	for _, d := range decls {
		if d[0] == property {
			replaced = true
			if value == "" {
				continue
			}
			d[1] = value
		}
		out = append(out, d)
	}
	if !replaced && value != "" {
		out = append(out, [2]string{property, value})
	}
	if len(out) == 0 {
		removeAttr(e.n, "style")
		return
	}
	setAttr(e.n, "style", formatStyle(out))
}

func (e *Element) Style(property string) string {
	for _, d := range parseStyle(attr(e.n, "style")) {
		if d[0] == property {
			return d[1]
		}
	}
	return ""
}

func (e *Element) InnerHTML() string {
	var buf bytes.Buffer
	for c := e.n.FirstChild; c != nil; c = c.NextSibling {
		_ = html.Render(&buf, c)
	}
	return buf.String()
}

func (e *Element) SetInnerHTML(markup string) {
	nodes, err := html.ParseFragment(strings.NewReader(markup), e.n)
	if err != nil {
		return
	}
	for c := e.n.FirstChild; c != nil; {
		next := c.NextSibling
		e.n.RemoveChild(c)
		c = next
	}
	for _, n := range nodes {
		e.n.AppendChild(n)
	}
}

func (e *Element) TextContent() string {
	return textOf(e.n)
}

func (e *Element) QuerySelector(selector string) dom.Element {
	sel := e.selection().Find(selector).First()
	if sel.Length() == 0 {
		return nil
	}
	return e.doc.wrap(sel.Nodes[0])
}

func (e *Element) QuerySelectorAll(selector string) []dom.Element {
	return e.doc.wrapAll(e.selection().Find(selector).Nodes)
}

func (e *Element) Closest(selector string) dom.Element {
	sel := e.selection().Closest(selector)
	if sel.Length() == 0 {
		return nil
	}
	return e.doc.wrap(sel.Nodes[0])
}

func (e *Element) Matches(selector string) bool {
	return e.selection().Is(selector)
}

func (e *Element) Parent() dom.Element {
	return e.doc.wrap(e.n.Parent)
}

func (e *Element) PreviousElementSibling() dom.Element {
	for s := e.n.PrevSibling; s != nil; s = s.PrevSibling {
		if s.Type == html.ElementNode {
			return e.doc.wrap(s)
		}
	}
	return nil
}

func (e *Element) FirstChild() dom.Element {
	for c := e.n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			return e.doc.wrap(c)
		}
	}
	return nil
}

func (e *Element) AppendChild(child dom.Element) {
	c, ok := child.(*Element)
	if !ok {
		return
	}
	detach(c.n)
	e.n.AppendChild(c.n)
}

func (e *Element) InsertBefore(child, ref dom.Element) {
	c, ok := child.(*Element)
	if !ok {
		return
	}
	r, ok := ref.(*Element)
	if !ok || r == nil || r.n.Parent != e.n {
		e.AppendChild(child)
		return
	}
	detach(c.n)
	e.n.InsertBefore(c.n, r.n)
}

func (e *Element) Remove() {
	detach(e.n)
}

func (e *Element) Connected() bool {
	for n := e.n; n != nil; n = n.Parent {
		if n == e.doc.root {
			return true
		}
	}
	return false
}

func (e *Element) AddEventListener(eventType string, fn dom.Listener) dom.Release {
	return e.doc.listen(e.n, eventType, fn)
}

func (e *Element) Focus() {
	e.doc.active = e.n
}

func (e *Element) Value() string {
	switch e.n.Data {
	case "select":
		opts := e.options()
		idx := e.SelectedIndex()
		if idx < 0 || idx >= len(opts) {
			return ""
		}
		return optionValue(opts[idx])
	case "textarea":
		if v, ok := e.doc.values[e.n]; ok {
			return v
		}
		return textOf(e.n)
	}
	if v, ok := e.doc.values[e.n]; ok {
		return v
	}
	return attr(e.n, "value")
}

func (e *Element) SetValue(value string) {
	if e.n.Data == "select" {
		e.doc.selection[e.n] = -1
		for i, o := range e.options() {
			if optionValue(o) == value {
				e.doc.selection[e.n] = i
				break
			}
		}
		return
	}
	e.doc.values[e.n] = value
}

// SetSelectedIndex selects the option at index i of a select element.
func (e *Element) SetSelectedIndex(i int) {
	e.doc.selection[e.n] = i
}

func (e *Element) SelectedIndex() int {
	if e.n.Data != "select" {
		return -1
	}
	if idx, ok := e.doc.selection[e.n]; ok {
		return idx
	}
	opts := e.options()
	for i, o := range opts {
		if hasAttr(o, "selected") {
			return i
		}
	}
	if len(opts) > 0 {
		return 0
	}
	return -1
}

func (e *Element) options() []*html.Node {
	return e.selection().Find("option").Nodes
}

func (e *Element) Disabled() bool {
	return hasAttr(e.n, "disabled")
}

func (e *Element) SetDisabled(disabled bool) {
	if disabled {
		setAttr(e.n, "disabled", "")
		return
	}
	removeAttr(e.n, "disabled")
}

// Reset restores every form control below the element to its default value.
func (e *Element) Reset() {
	for _, n := range e.selection().Find("input, textarea, select").Nodes {
		delete(e.doc.values, n)
		delete(e.doc.selection, n)
	}
}

func (e *Element) Same(other dom.Element) bool {
	o, ok := other.(*Element)
	return ok && o != nil && o.n == e.n
}

func detach(n *html.Node) {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

func optionValue(o *html.Node) string {
	if hasAttr(o, "value") {
		return attr(o, "value")
	}
	return strings.TrimSpace(textOf(o))
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func parseStyle(style string) [][2]string {
	var out [][2]string
	for _, decl := range strings.Split(style, ";") {
		prop, val, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		prop = strings.TrimSpace(prop)
		if prop == "" {
			continue
		}
		out = append(out, [2]string{prop, strings.TrimSpace(val)})
	}
	return out
}

func formatStyle(decls [][2]string) string {
	parts := make([]string, 0, len(decls))
	for _, d := range decls {
		parts = append(parts, d[0]+": "+d[1])
	}
	return strings.Join(parts, "; ")
}
