package perifa

import (
	"fmt"
	"html/template"
	"log/slog"

	"go.uber.org/atomic"

	"github.com/perifanotoque/perifa/pkg/perifa/constants"
	"github.com/perifanotoque/perifa/pkg/perifa/dom"
	"github.com/perifanotoque/perifa/pkg/perifa/internal"
)

var modalTemplate = template.Must(template.New("modal").Parse(
	`<div class="modal-header">{{.Icon}}<div class="modal-header-content">` +
		`{{if .Title}}<h3 class="modal-title" id="{{.ID}}-title">{{.Title}}</h3>{{end}}</div>` +
		`{{if .Closable}}<button class="modal-close" aria-label="{{.CloseLabel}}">&times;</button>{{end}}</div>` +
		`<div class="modal-body">{{if .Message}}<div class="modal-message">{{.Message}}</div>{{end}}</div>` +
		`<div class="modal-footer">{{range .Buttons}}` +
		`<button class="modal-btn modal-btn-{{.Variant}}" data-action="{{.Action}}"{{if .Disabled}} disabled{{end}}>{{.Text}}</button>` +
		`{{end}}</div>`,
))

const focusableSelector = `button, [href], input, select, textarea, [tabindex]:not([tabindex="-1"])`

// ModalButton is a footer button.
type ModalButton struct {
	Text     string
	Action   ModalAction
	Variant  string // primary, secondary, success, danger or warning (default secondary)
	Disabled bool
}

// ModalOptions describes one modal. Title and Message are plain text.
type ModalOptions struct {
	Type          MessageType
	Title         string
	Message       string
	Size          Size // Normal renders as medium
	NotClosable   bool // No close button; Escape and backdrop clicks are ignored
	NoBackdrop    bool // Backdrop clicks do not close
	NotCentered   bool
	Buttons       []ModalButton // Nil picks the type's default buttons
	CustomContent string        // Trusted markup replacing header, body and footer

	OnShow func(dialog dom.Element)
	OnHide func(dialog dom.Element)

	// OnConfirm and OnCancel report whether the modal should close. Nil
	// callbacks close it.
	OnConfirm func(m *Modal) bool
	OnCancel  func(m *Modal) bool
}

// Modal is an open modal dialog.
type Modal struct {
	ID      string
	Overlay dom.Element
	Dialog  dom.Element

	opts     ModalOptions
	system   *ModalSystem
	releases dom.Releases
	closing  bool
}

// Close runs the hide animation, removes the modal and then calls OnHide.
// Closing twice is a no-op.
func (m *Modal) Close() {
	if m.closing {
		return
	}
	m.closing = true
	m.Overlay.AddClass("modal-hiding")
	m.Dialog.AddClass("modal-hiding")

	s := m.system
	s.win.AfterFunc(constants.HideAnimationDuration, func() {
		m.releases.ReleaseAll()
		m.Overlay.Remove()
		s.forget(m)
		if len(s.active) == 0 {
			if body := s.doc.Body(); body != nil {
				body.SetStyle("overflow", "")
			}
		}
		if m.opts.OnHide != nil {
			m.opts.OnHide(m.Dialog)
		}
	})
}

// Closing reports whether Close has been called.
func (m *Modal) Closing() bool {
	return m.closing
}

func (m *Modal) closable() bool {
	return !m.opts.NotClosable
}

func (m *Modal) handle(action ModalAction) {
	shouldClose := true
	switch action {
	case ModalActionConfirm:
		if m.opts.OnConfirm != nil {
			shouldClose = m.opts.OnConfirm(m)
		}
	case ModalActionCancel:
		if m.opts.OnCancel != nil {
			shouldClose = m.opts.OnCancel(m)
		}
	}
	if shouldClose {
		m.Close()
	}
}

// ModalSystem shows blocking dialogs. Modals stack; Escape closes the top one.
type ModalSystem struct {
	win      dom.Window
	doc      dom.Document
	logger   *slog.Logger
	messages *Messages

	active  []*Modal // bottom first
	counter atomic.Int64
	release dom.Release
}

// NewModalSystem creates a modal system and starts listening for Escape.
func NewModalSystem(win dom.Window, opts WidgetOptions) *ModalSystem {
	s := &ModalSystem{
		win:      win,
		doc:      win.Document(),
		logger:   internal.LoggerOr(opts.Logger),
		messages: internal.MessagesOr(opts.Messages),
	}
	s.release = s.doc.AddEventListener("keydown", s.handleKeyDown)
	return s
}

func (s *ModalSystem) handleKeyDown(e *dom.Event) {
	if e.Key != "Escape" {
		return
	}
	top := s.Active()
	if top != nil && top.closable() {
		top.Close()
	}
}

// Show opens a modal and returns its handle.
func (s *ModalSystem) Show(opts ModalOptions) *Modal {
	id := fmt.Sprintf("modal-%d", s.counter.Inc())

	overlay := s.doc.CreateElement("div")
	overlay.SetClassName("modal-overlay")
	overlay.SetAttribute("aria-hidden", "true")

	size := opts.Size
	if size == SizeNormal {
		size = SizeMedium
	}
	dialog := s.doc.CreateElement("div")
	dialog.SetAttribute("id", id)
	dialog.SetClassName(classList(
		"modal",
		"modal-"+opts.Type.String(),
		"modal-"+size.String(),
		noClass(!opts.NotCentered, "modal-centered"),
	))
	dialog.SetAttribute("role", "dialog")
	dialog.SetAttribute("aria-modal", "true")
	dialog.SetAttribute("aria-labelledby", id+"-title")

	content := opts.CustomContent
	if content == "" {
		content = s.render(id, opts)
	}
	dialog.SetInnerHTML(content)

	overlay.AppendChild(dialog)
	appendToBody(s.doc, overlay)

	m := &Modal{ID: id, Overlay: overlay, Dialog: dialog, opts: opts, system: s}
	s.active = append(s.active, m)
	s.wire(m)

	if body := s.doc.Body(); body != nil {
		body.SetStyle("overflow", "hidden")
	}
	s.win.RequestAnimationFrame(func() {
		if m.closing {
			return
		}
		overlay.AddClass("modal-show")
		dialog.AddClass("modal-show")
		if first := dialog.QuerySelector(focusableSelector); first != nil {
			first.Focus()
		}
		if opts.OnShow != nil {
			opts.OnShow(dialog)
		}
	})

	s.logger.Debug("Modal shown", "id", id, "type", opts.Type.String(), "title", opts.Title)
	return m
}

func (s *ModalSystem) render(id string, opts ModalOptions) string {
	buttons := opts.Buttons
	if buttons == nil {
		buttons = s.defaultButtons(opts.Type)
	}
	for i := range buttons {
		if buttons[i].Variant == "" {
			buttons[i].Variant = "secondary"
		}
	}

	data := struct {
		ID         string
		Icon       template.HTML
		Title      string
		Message    string
		Closable   bool
		CloseLabel string
		Buttons    []ModalButton
	}{
		ID:         id,
		Icon:       iconHTML(opts.Type, "modal-icon modal-icon-"+opts.Type.String()),
		Title:      opts.Title,
		Message:    opts.Message,
		Closable:   !opts.NotClosable,
		CloseLabel: s.messages.Get("ModalCloseLabel"),
		Buttons:    buttons,
	}
	return renderTemplate(s.logger, modalTemplate, data)
}

func (s *ModalSystem) defaultButtons(t MessageType) []ModalButton {
	switch t {
	case TypeConfirm:
		return []ModalButton{
			{Text: s.messages.Get("ModalCancel"), Action: ModalActionCancel, Variant: "secondary"},
			{Text: s.messages.Get("ModalConfirm"), Action: ModalActionConfirm, Variant: "primary"},
		}
	case TypeError:
		return []ModalButton{
			{Text: s.messages.Get("ModalUnderstood"), Action: ModalActionConfirm, Variant: "danger"},
		}
	case TypeWarning:
		return []ModalButton{
			{Text: s.messages.Get("ModalCancel"), Action: ModalActionCancel, Variant: "secondary"},
			{Text: s.messages.Get("ModalContinue"), Action: ModalActionConfirm, Variant: "warning"},
		}
	default:
		return []ModalButton{
			{Text: s.messages.Get("ModalAccept"), Action: ModalActionConfirm, Variant: "primary"},
		}
	}
}

func (s *ModalSystem) wire(m *Modal) {
	if !m.opts.NoBackdrop {
		m.releases.Add(m.Overlay.AddEventListener("click", func(e *dom.Event) {
			if e.Target != nil && e.Target.Same(m.Overlay) && m.closable() {
				m.Close()
			}
		}))
	}

	if btn := m.Dialog.QuerySelector(".modal-close"); btn != nil {
		m.releases.Add(btn.AddEventListener("click", func(*dom.Event) {
			m.Close()
		}))
	}

	for _, btn := range m.Dialog.QuerySelectorAll(".modal-btn") {
		action := parseModalAction(btn)
		m.releases.Add(btn.AddEventListener("click", func(*dom.Event) {
			m.handle(action)
		}))
	}
}

func parseModalAction(btn dom.Element) ModalAction {
	v, _ := btn.GetAttribute("data-action")
	switch v {
	case "confirm":
		return ModalActionConfirm
	case "cancel":
		return ModalActionCancel
	default:
		return ModalActionDismiss
	}
}

func (s *ModalSystem) forget(m *Modal) {
	for i, a := range s.active {
		if a == m {
			s.active = append(s.active[:i], s.active[i+1:]...)
			return
		}
	}
}

// Alert shows an informational modal.
func (s *ModalSystem) Alert(title, message string, opts ModalOptions) *Modal {
	opts.Type, opts.Title, opts.Message = TypeInfo, title, message
	return s.Show(opts)
}

// Success shows a success modal.
func (s *ModalSystem) Success(title, message string, opts ModalOptions) *Modal {
	opts.Type, opts.Title, opts.Message = TypeSuccess, title, message
	return s.Show(opts)
}

// Error shows an error modal.
func (s *ModalSystem) Error(title, message string, opts ModalOptions) *Modal {
	opts.Type, opts.Title, opts.Message = TypeError, title, message
	return s.Show(opts)
}

// Warning shows a warning modal.
func (s *ModalSystem) Warning(title, message string, opts ModalOptions) *Modal {
	opts.Type, opts.Title, opts.Message = TypeWarning, title, message
	return s.Show(opts)
}

// Confirm asks a yes/no question. The channel receives true when a confirm
// button is pressed and false when the modal is cancelled or dismissed in any
// other way. It receives exactly one value.
func (s *ModalSystem) Confirm(title, message string, opts ModalOptions) <-chan bool {
	answer := make(chan bool, 1)
	answered := false
	resolve := func(v bool) {
		if answered {
			return
		}
		answered = true
		answer <- v
	}

	onConfirm, onCancel, onHide := opts.OnConfirm, opts.OnCancel, opts.OnHide
	opts.OnConfirm = func(m *Modal) bool {
		resolve(true)
		if onConfirm != nil {
			return onConfirm(m)
		}
		return true
	}
	opts.OnCancel = func(m *Modal) bool {
		resolve(false)
		if onCancel != nil {
			return onCancel(m)
		}
		return true
	}
	opts.OnHide = func(dialog dom.Element) {
		resolve(false)
		if onHide != nil {
			onHide(dialog)
		}
	}

	opts.Type, opts.Title, opts.Message = TypeConfirm, title, message
	s.Show(opts)
	return answer
}

// CloseAll closes every open modal.
func (s *ModalSystem) CloseAll() {
	for _, m := range append([]*Modal(nil), s.active...) {
		m.Close()
	}
}

// Active returns the topmost modal that is not closing, or nil.
func (s *ModalSystem) Active() *Modal {
	for i := len(s.active) - 1; i >= 0; i-- {
		if !s.active[i].closing {
			return s.active[i]
		}
	}
	return nil
}

// Open returns the number of modals on screen, closing ones included.
func (s *ModalSystem) Open() int {
	return len(s.active)
}

// Dispose stops listening for Escape. Open modals are left alone.
func (s *ModalSystem) Dispose() {
	if s.release != nil {
		s.release()
		s.release = nil
	}
}
