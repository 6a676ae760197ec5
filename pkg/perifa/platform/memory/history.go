package memory

import (
	"strings"

	"github.com/perifanotoque/perifa/pkg/perifa/dom"
)

// HistoryEntry is a single session history entry.
type HistoryEntry struct {
	State *dom.HistoryState
	URL   string
}

// History is a session history with a cursor for back and forward
// navigation. Pushing discards every entry after the cursor, like a browser.
type History struct {
	win     *Window
	entries []HistoryEntry
	cursor  int
}

func newHistory(win *Window, initialURL string) *History {
	return &History{
		win:     win,
		entries: []HistoryEntry{{URL: initialURL}},
	}
}

// PushState adds an entry after the current one and moves to it.
func (h *History) PushState(state dom.HistoryState, url string) {
	s := state
	h.entries = append(h.entries[:h.cursor+1], HistoryEntry{State: &s, URL: url})
	h.cursor = len(h.entries) - 1
	h.win.location.setURL(url)
}

// State returns the state of the current entry.
func (h *History) State() *dom.HistoryState {
	return h.entries[h.cursor].State
}

// Length returns the number of entries.
func (h *History) Length() int {
	return len(h.entries)
}

// Peek returns the current entry.
func (h *History) Peek() HistoryEntry {
	return h.entries[h.cursor]
}

// Back moves one entry back and fires popstate. It reports whether there
// was an entry to go back to.
func (h *History) Back() bool {
	return h.Go(-1)
}

// Forward moves one entry forward and fires popstate.
func (h *History) Forward() bool {
	return h.Go(1)
}

// Go moves delta entries and fires popstate.
func (h *History) Go(delta int) bool {
	target := h.cursor + delta
	if target < 0 || target >= len(h.entries) || delta == 0 {
		return false
	}
	h.cursor = target
	entry := h.entries[target]
	h.win.location.setURL(entry.URL)
	h.win.dispatchWindow(&dom.Event{Type: "popstate", State: entry.State})
	return true
}

type location struct {
	hash string
}

func (l *location) Hash() string {
	return l.hash
}

func (l *location) setURL(url string) {
	if i := strings.IndexByte(url, '#'); i >= 0 {
		l.hash = url[i:]
		return
	}
	l.hash = ""
}
