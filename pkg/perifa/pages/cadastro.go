package pages

import (
	"errors"
	"strings"

	"github.com/perifanotoque/perifa/pkg/perifa"
	"github.com/perifanotoque/perifa/pkg/perifa/constants"
	"github.com/perifanotoque/perifa/pkg/perifa/dom"
	"github.com/perifanotoque/perifa/pkg/perifa/router"
)

const processingToastDuration = constants.DefaultSubmitDelay

// Cadastro returns the initializer of the registration view. It keeps the
// submit button disabled until every required field is filled, validates on
// submit, simulates the round trip and confirms with a success dialog. The
// reset button asks before clearing the form.
func Cadastro(win dom.Window, deps Deps) router.Initializer {
	deps = deps.withDefaults()

	return func() router.Disposer {
		f := &registrationForm{
			win:    win,
			deps:   deps,
			fields: make(map[string]dom.Element),
			timers: dom.NewTimers(win),
		}
		if err := f.bind(); err != nil {
			deps.Logger.Warn("Registration form not found; behavior disabled", "error", err)
			return nil
		}
		return f.dispose
	}
}

type registrationForm struct {
	win  dom.Window
	deps Deps

	form     dom.Element
	submit   dom.Element
	ids      []string
	fields   map[string]dom.Element
	timers   *dom.Timers
	releases dom.Releases
}

func (f *registrationForm) bind() error {
	doc := f.win.Document()
	f.form = doc.GetElementByID(constants.RegistrationFormID)
	if f.form == nil {
		return perifa.NewConfigurationError("cadastro", constants.RegistrationFormID)
	}
	f.submit = doc.GetElementByID(constants.SubmitButtonID)

	for _, id := range RequiredFields() {
		f.ids = append(f.ids, id)
		field := doc.GetElementByID(id)
		if field == nil {
			f.deps.Logger.Warn("Required field missing from registration form", "id", id)
			continue
		}
		f.fields[id] = field
		f.releases.Add(field.AddEventListener("input", f.refresh))
		f.releases.Add(field.AddEventListener("change", f.refresh))
	}

	f.releases.Add(f.form.AddEventListener("submit", f.handleSubmit))
	if reset := f.form.QuerySelector(`input[type="reset"], button[type="reset"]`); reset != nil {
		f.releases.Add(reset.AddEventListener("click", f.handleReset))
	}

	f.updateSubmit()
	return nil
}

func (f *registrationForm) refresh(*dom.Event) {
	f.updateSubmit()
}

// complete reports whether every required field has a value. Selects count
// once an option past the placeholder is picked. A field absent from the page
// is never filled.
func (f *registrationForm) complete() bool {
	for _, id := range f.ids {
		field, ok := f.fields[id]
		if !ok {
			return false
		}
		if field.Type() == "select-one" {
			if field.SelectedIndex() > 0 || field.Value() != "" {
				continue
			}
			return false
		}
		if strings.TrimSpace(field.Value()) == "" {
			return false
		}
	}
	return true
}

func (f *registrationForm) updateSubmit() {
	if f.submit != nil {
		f.submit.SetDisabled(!f.complete())
	}
}

func (f *registrationForm) value(id string) string {
	if field, ok := f.fields[id]; ok {
		return field.Value()
	}
	return ""
}

// label returns the text of the label right before the field, or the id.
func (f *registrationForm) label(id string) string {
	field, ok := f.fields[id]
	if !ok {
		return id
	}
	if prev := field.PreviousElementSibling(); prev != nil && prev.TagName() == "label" {
		return strings.TrimSpace(prev.TextContent())
	}
	return id
}

func (f *registrationForm) handleSubmit(e *dom.Event) {
	e.PreventDefault()
	msgs := f.deps.Messages

	err := Validate(NewRegistration(f.value))
	var missing *ValidationError
	switch {
	case errors.As(err, &missing):
		labels := make([]string, len(missing.Fields))
		for i, id := range missing.Fields {
			labels[i] = f.label(id)
		}
		f.deps.error(msgs.Get("FormRequiredTitle"), msgs.Format("FormRequiredMessage", map[string]any{
			"Fields": strings.Join(labels, ", "),
		}))
		return
	case errors.Is(err, ErrInvalidEmail):
		f.deps.error(msgs.Get("FormInvalidEmailTitle"), msgs.Get("FormInvalidEmailMessage"))
		return
	case err != nil:
		f.deps.Logger.Error("Registration validation failed", "error", err)
		return
	}

	f.deps.info(msgs.Get("FormProcessingTitle"), msgs.Get("FormProcessingMessage"), perifa.ToastOptions{
		Duration: processingToastDuration,
	})
	f.timers.After(f.deps.SubmitDelay, f.confirmSent)
}

func (f *registrationForm) confirmSent() {
	msgs := f.deps.Messages
	f.deps.Logger.Info("Registration sent", "form", constants.RegistrationFormID)

	if f.deps.Dialogs == nil {
		f.win.Alert(msgs.Get("FormSentFallback"))
		f.clear()
		return
	}

	f.deps.Dialogs.Success(msgs.Get("FormSuccessTitle"), msgs.Get("FormSuccessMessage"), perifa.ModalOptions{
		Buttons: []perifa.ModalButton{
			{Text: msgs.Get("FormSuccessButton"), Action: perifa.ModalActionConfirm, Variant: "success"},
		},
		OnConfirm: func(*perifa.Modal) bool {
			f.clear()
			f.deps.success(msgs.Get("FormDoneTitle"), msgs.Get("FormDoneMessage"))
			return true
		},
	})
}

func (f *registrationForm) handleReset(e *dom.Event) {
	e.PreventDefault()
	msgs := f.deps.Messages

	if !f.win.Confirm(msgs.Get("FormResetConfirm")) {
		f.deps.info(msgs.Get("FormCancelledTitle"), msgs.Get("FormCancelledMessage"), perifa.ToastOptions{})
		return
	}
	f.clear()
	f.deps.info(msgs.Get("FormClearedTitle"), msgs.Get("FormClearedMessage"), perifa.ToastOptions{})
}

func (f *registrationForm) clear() {
	f.form.Reset()
	if f.submit != nil {
		f.submit.SetDisabled(true)
	}
}

func (f *registrationForm) dispose() {
	f.timers.StopAll()
	f.releases.ReleaseAll()
}
