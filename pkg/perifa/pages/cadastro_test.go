package pages_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/perifanotoque/perifa/pkg/perifa"
	"github.com/perifanotoque/perifa/pkg/perifa/dom"
	"github.com/perifanotoque/perifa/pkg/perifa/pages"
	"github.com/perifanotoque/perifa/pkg/perifa/platform/memory"
	"github.com/perifanotoque/perifa/pkg/perifa/templates"
)

var volunteer = map[string]string{
	"inome":      "Ana",
	"isobrenome": "Souza",
	"inascim":    "2001-04-12",
	"icpf":       "123.456.789-00",
	"iemail":     "ana@exemplo.com.br",
	"itel":       "(11) 91234-5678",
}

// fill completes every required field of the registration form.
func fill(win *memory.Window) {
	doc := win.Document()
	for id, v := range volunteer {
		win.Input(doc.GetElementByID(id), v)
	}
	win.Select(doc.GetElementByID("iarea"), 2)
	win.Select(doc.GetElementByID("itemp"), 1)
}

func registrationPage(t *testing.T, deps pages.Deps) (*memory.Window, func()) {
	t.Helper()

	win := renderedPage(t, templates.Registration)
	dispose := pages.Cadastro(win, deps)()
	require.NotNil(t, dispose)
	return win, dispose
}

func submitButton(win *memory.Window) dom.Element {
	return win.Document().GetElementByID("submitBtn")
}

func TestSubmitEnablement(t *testing.T) {
	t.Parallel()

	f := newFixture()
	win, dispose := registrationPage(t, f.deps())
	defer dispose()
	doc := win.Document()

	require.True(t, submitButton(win).Disabled())

	fill(win)
	require.False(t, submitButton(win).Disabled())

	win.Input(doc.GetElementByID("icpf"), "   ")
	require.True(t, submitButton(win).Disabled())
	win.Input(doc.GetElementByID("icpf"), "123")
	require.False(t, submitButton(win).Disabled())

	// Back to the placeholder option.
	win.Select(doc.GetElementByID("itemp"), 0)
	require.True(t, submitButton(win).Disabled())
	win.Select(doc.GetElementByID("itemp"), 3)
	require.False(t, submitButton(win).Disabled())

	// The optional field does not matter.
	win.Input(doc.GetElementByID("iint"), "")
	require.False(t, submitButton(win).Disabled())
}

func TestSubmitReportsMissingFields(t *testing.T) {
	t.Parallel()

	f := newFixture()
	win, dispose := registrationPage(t, f.deps())
	defer dispose()
	doc := win.Document()

	win.Input(doc.GetElementByID("inome"), "Ana")
	win.Input(doc.GetElementByID("iemail"), "ana@exemplo.com")
	win.Select(doc.GetElementByID("iarea"), 1)

	e := win.Submit(doc.GetElementByID("cadastro-form"))
	require.True(t, e.DefaultPrevented())

	require.Len(t, f.toasts.shown, 1)
	n := f.toasts.shown[0]
	require.Equal(t, "error", n.kind)
	require.Equal(t, "Campos obrigatórios", n.title)
	require.Equal(t, "Por favor, preencha os seguintes campos: "+
		"Sobrenome *:, Data de Nascimento *, CPF *, Celular *, Disponibilidade de tempo", n.message)

	require.Equal(t, "Ana", doc.GetElementByID("inome").Value())
	win.Advance(5 * time.Second)
	require.Empty(t, f.dialogs.shown)
}

func TestSubmitRejectsInvalidEmail(t *testing.T) {
	t.Parallel()

	f := newFixture()
	win, dispose := registrationPage(t, f.deps())
	defer dispose()
	doc := win.Document()

	fill(win)
	win.Input(doc.GetElementByID("iemail"), "ana@exemplo")
	win.Click(submitButton(win))

	require.Equal(t, []string{"Email inválido"}, f.toasts.titles())
	require.Equal(t, "Por favor, insira um endereço de email válido.", f.toasts.shown[0].message)
	require.Equal(t, "ana@exemplo", doc.GetElementByID("iemail").Value())

	win.Advance(5 * time.Second)
	require.Empty(t, f.dialogs.shown)
}

func TestSubmitSuccess(t *testing.T) {
	t.Parallel()

	f := newFixture()
	win, dispose := registrationPage(t, f.deps())
	defer dispose()
	doc := win.Document()

	fill(win)
	e := win.Click(submitButton(win))
	require.False(t, e.DefaultPrevented())

	require.Equal(t, []string{"Processando..."}, f.toasts.titles())
	require.Equal(t, 2*time.Second, f.toasts.shown[0].opts.Duration)

	win.Advance(1999 * time.Millisecond)
	require.Empty(t, f.dialogs.shown)
	win.Advance(time.Millisecond)
	require.Len(t, f.dialogs.shown, 1)

	d := f.dialogs.shown[0]
	require.Equal(t, "Excelente!", d.title)
	require.Equal(t, []perifa.ModalButton{
		{Text: "Perfeito", Action: perifa.ModalActionConfirm, Variant: "success"},
	}, d.opts.Buttons)

	require.Equal(t, "Ana", doc.GetElementByID("inome").Value())
	require.True(t, d.opts.OnConfirm(nil))

	require.Equal(t, "", doc.GetElementByID("inome").Value())
	require.Equal(t, 0, doc.GetElementByID("iarea").SelectedIndex())
	require.True(t, submitButton(win).Disabled())
	require.Equal(t, []string{"Processando...", "Pronto!"}, f.toasts.titles())
	require.Equal(t, "success", f.toasts.shown[1].kind)
	require.Equal(t, "Formulário enviado e limpo", f.toasts.shown[1].message)
}

func TestSubmitFallsBackToAlert(t *testing.T) {
	t.Parallel()

	f := newFixture()
	deps := f.deps()
	deps.Dialogs = nil
	win, dispose := registrationPage(t, deps)
	defer dispose()

	fill(win)
	win.Click(submitButton(win))
	win.Advance(2 * time.Second)

	require.Equal(t, []string{"Formulário enviado com sucesso!"}, win.Alerts())
	require.Equal(t, "", win.Document().GetElementByID("itel").Value())
	require.True(t, submitButton(win).Disabled())
}

func TestSubmitWithModalSystem(t *testing.T) {
	t.Parallel()

	f := newFixture()
	deps := f.deps()
	win := renderedPage(t, templates.Registration)
	opts := perifa.WidgetOptions{Logger: deps.Logger, Messages: deps.Messages}
	toasts := perifa.NewToastSystem(win, perifa.ToastSystemOptions{WidgetOptions: opts})
	dialogs := perifa.NewModalSystem(win, opts)
	deps.Toasts, deps.Dialogs = toasts, dialogs
	defer pages.Cadastro(win, deps)()()

	fill(win)
	win.Click(submitButton(win))
	win.Advance(2 * time.Second)
	require.Equal(t, 1, dialogs.Open())

	btn := dialogs.Active().Dialog.QuerySelector(".modal-btn")
	require.Equal(t, "Perfeito", btn.TextContent())
	require.True(t, btn.HasClass("modal-btn-success"))

	win.Click(btn)
	win.Advance(300 * time.Millisecond)
	require.Equal(t, 0, dialogs.Open())
	require.Equal(t, "", win.Document().GetElementByID("icpf").Value())
	require.Equal(t, "Pronto!", toasts.Container().QuerySelector(".toast .toast-title").TextContent())
}

func TestDisposeCancelsPendingSubmit(t *testing.T) {
	t.Parallel()

	f := newFixture()
	win, dispose := registrationPage(t, f.deps())

	form := win.Document().GetElementByID("cadastro-form")
	require.Equal(t, 1, win.Doc().ListenerCount(form, "submit"))

	fill(win)
	win.Click(submitButton(win))
	dispose()
	win.Advance(5 * time.Second)

	require.Empty(t, f.dialogs.shown)
	require.Equal(t, 0, win.Doc().ListenerCount(form, "submit"))
	require.Equal(t, 0, win.Doc().ListenerCount(win.Document().GetElementByID("inome"), "input"))
}

func TestResetAsksFirst(t *testing.T) {
	t.Parallel()

	f := newFixture()
	win, dispose := registrationPage(t, f.deps())
	defer dispose()
	doc := win.Document()
	reset := doc.QuerySelector(`input[type="reset"]`)

	fill(win)
	win.ConfirmFunc = func(string) bool { return false }
	e := win.Click(reset)
	require.True(t, e.DefaultPrevented())
	require.Equal(t, "Ana", doc.GetElementByID("inome").Value())
	require.False(t, submitButton(win).Disabled())
	require.Equal(t, []string{"Cancelado"}, f.toasts.titles())

	win.ConfirmFunc = func(string) bool { return true }
	win.Click(reset)
	require.Equal(t, "", doc.GetElementByID("inome").Value())
	require.True(t, submitButton(win).Disabled())
	require.Equal(t, []string{"Cancelado", "Formulário limpo"}, f.toasts.titles())

	require.Len(t, win.Confirms(), 2)
	require.Contains(t, win.Confirms()[0], "Tem certeza de que deseja limpar todos os campos?")
}

func TestCadastroWithoutForm(t *testing.T) {
	t.Parallel()

	win := contentPage(`<p>sem formulário</p>`)
	f := newFixture()

	require.Nil(t, pages.Cadastro(win, f.deps())())
	require.Contains(t, f.logs.String(), "Registration form not found")
}

func TestMissingRequiredFieldKeepsSubmitDisabled(t *testing.T) {
	t.Parallel()

	win := renderedPage(t, templates.Registration)
	doc := win.Document()
	doc.GetElementByID("itel").Remove()

	f := newFixture()
	dispose := pages.Cadastro(win, f.deps())()
	require.NotNil(t, dispose)
	defer dispose()

	for id, v := range volunteer {
		if el := doc.GetElementByID(id); el != nil {
			win.Input(el, v)
		}
	}
	win.Select(doc.GetElementByID("iarea"), 2)
	win.Select(doc.GetElementByID("itemp"), 1)

	require.True(t, submitButton(win).Disabled())
	require.Contains(t, f.logs.String(), "Required field missing from registration form")
	require.Contains(t, f.logs.String(), `"id":"itel"`)
}
