package memory

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/perifanotoque/perifa/pkg/perifa/dom"
)

type listenerEntry struct {
	fn      dom.Listener
	removed bool
}

type listenerSet map[string][]*listenerEntry

func (ls listenerSet) add(eventType string, fn dom.Listener) dom.Release {
	entry := &listenerEntry{fn: fn}
	ls[eventType] = append(ls[eventType], entry)
	return func() {
		if entry.removed {
			return
		}
		entry.removed = true
		live := ls[eventType][:0]
		for _, e := range ls[eventType] {
			if e != entry {
				live = append(live, e)
			}
		}
		ls[eventType] = live
	}
}

func (ls listenerSet) fire(e *dom.Event) {
	snapshot := append([]*listenerEntry(nil), ls[e.Type]...)
	for _, entry := range snapshot {
		if entry.removed {
			continue
		}
		entry.fn(e)
	}
}

func (ls listenerSet) count(eventType string) int {
	return len(ls[eventType])
}

// Document is an in-memory HTML document.
type Document struct {
	root      *html.Node
	listeners map[*html.Node]listenerSet
	values    map[*html.Node]string
	selection map[*html.Node]int
	active    *html.Node
}

func newDocument(root *html.Node) *Document {
	return &Document{
		root:      root,
		listeners: make(map[*html.Node]listenerSet),
		values:    make(map[*html.Node]string),
		selection: make(map[*html.Node]int),
	}
}

func (d *Document) wrap(n *html.Node) dom.Element {
	if n == nil || n.Type != html.ElementNode {
		return nil
	}
	return &Element{n: n, doc: d}
}

func (d *Document) wrapAll(nodes []*html.Node) []dom.Element {
	out := make([]dom.Element, 0, len(nodes))
	for _, n := range nodes {
		if n.Type == html.ElementNode {
			out = append(out, &Element{n: n, doc: d})
		}
	}
	return out
}

func (d *Document) listen(n *html.Node, eventType string, fn dom.Listener) dom.Release {
	set, ok := d.listeners[n]
	if !ok {
		set = make(listenerSet)
		d.listeners[n] = set
	}
	return set.add(eventType, fn)
}

// dispatch fires e on target and, when bubbles is set, on each ancestor up
// to the document node.
func (d *Document) dispatch(target *html.Node, e *dom.Event, bubbles bool) {
	for n := target; n != nil; n = n.Parent {
		if set, ok := d.listeners[n]; ok {
			set.fire(e)
		}
		if !bubbles || e.PropagationStopped() {
			return
		}
	}
}

// ListenerCount returns how many listeners of eventType are attached to el.
func (d *Document) ListenerCount(el dom.Element, eventType string) int {
	me, ok := el.(*Element)
	if !ok {
		return 0
	}
	set, ok := d.listeners[me.n]
	if !ok {
		return 0
	}
	return set.count(eventType)
}

func (d *Document) GetElementByID(id string) dom.Element {
	var found *html.Node
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if found != nil {
			return
		}
		if n.Type == html.ElementNode && attr(n, "id") == id {
			found = n
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(d.root)
	return d.wrap(found)
}

func (d *Document) QuerySelector(selector string) dom.Element {
	sel := goquery.NewDocumentFromNode(d.root).Find(selector).First()
	if sel.Length() == 0 {
		return nil
	}
	return d.wrap(sel.Nodes[0])
}

func (d *Document) QuerySelectorAll(selector string) []dom.Element {
	return d.wrapAll(goquery.NewDocumentFromNode(d.root).Find(selector).Nodes)
}

func (d *Document) CreateElement(tag string) dom.Element {
	tag = strings.ToLower(tag)
	return d.wrap(&html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	})
}

func (d *Document) Body() dom.Element {
	return d.QuerySelector("body")
}

func (d *Document) DocumentElement() dom.Element {
	return d.QuerySelector("html")
}

func (d *Document) Title() string {
	if t := d.QuerySelector("title"); t != nil {
		return t.TextContent()
	}
	return ""
}

func (d *Document) SetTitle(title string) {
	t := d.QuerySelector("title")
	if t == nil {
		head := d.QuerySelector("head")
		if head == nil {
			return
		}
		t = d.CreateElement("title")
		head.AppendChild(t)
	}
	t.SetInnerHTML(html.EscapeString(title))
}

func (d *Document) AddEventListener(eventType string, fn dom.Listener) dom.Release {
	return d.listen(d.root, eventType, fn)
}

// Render serializes the whole document.
func (d *Document) Render() string {
	var buf bytes.Buffer
	_ = html.Render(&buf, d.root)
	return buf.String()
}

func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

func hasAttr(n *html.Node, name string) bool {
	for _, a := range n.Attr {
		if a.Key == name {
			return true
		}
	}
	return false
}

func setAttr(n *html.Node, name, value string) {
	for i, a := range n.Attr {
		if a.Key == name {
			n.Attr[i].Val = value
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: name, Val: value})
}

func removeAttr(n *html.Node, name string) {
	kept := n.Attr[:0]
	for _, a := range n.Attr {
		if a.Key != name {
			kept = append(kept, a)
		}
	}
	n.Attr = kept
}

func textOf(n *html.Node) string {
	var b strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}
