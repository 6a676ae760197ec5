package pages_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/perifanotoque/perifa/pkg/perifa"
	"github.com/perifanotoque/perifa/pkg/perifa/pages"
	"github.com/perifanotoque/perifa/pkg/perifa/platform/memory"
	"github.com/perifanotoque/perifa/pkg/perifa/templates"
)

// renderedPage returns a window whose content container holds the named
// route fragment.
func renderedPage(t *testing.T, name string) *memory.Window {
	t.Helper()

	reg, err := templates.New(templates.Options{})
	require.NoError(t, err)
	fragment, err := reg.Render(name)
	require.NoError(t, err)

	return contentPage(fragment)
}

func contentPage(content string) *memory.Window {
	return memory.MustNew(`<!DOCTYPE html><html><head><title></title></head><body>`+
		`<main id="app-content">`+content+`</main></body></html>`, memory.Options{})
}

type notification struct {
	kind    string
	title   string
	message string
	opts    perifa.ToastOptions
}

type fakeToasts struct {
	shown []notification
}

func (f *fakeToasts) record(kind, title, message string, opts perifa.ToastOptions) *perifa.Toast {
	f.shown = append(f.shown, notification{kind: kind, title: title, message: message, opts: opts})
	return nil
}

func (f *fakeToasts) Info(title, message string, opts perifa.ToastOptions) *perifa.Toast {
	return f.record("info", title, message, opts)
}

func (f *fakeToasts) Success(title, message string, opts perifa.ToastOptions) *perifa.Toast {
	return f.record("success", title, message, opts)
}

func (f *fakeToasts) Error(title, message string, opts perifa.ToastOptions) *perifa.Toast {
	return f.record("error", title, message, opts)
}

func (f *fakeToasts) titles() []string {
	titles := make([]string, len(f.shown))
	for i, n := range f.shown {
		titles[i] = n.title
	}
	return titles
}

type dialog struct {
	title   string
	message string
	opts    perifa.ModalOptions
}

type fakeDialogs struct {
	shown []dialog
}

func (f *fakeDialogs) Success(title, message string, opts perifa.ModalOptions) *perifa.Modal {
	f.shown = append(f.shown, dialog{title: title, message: message, opts: opts})
	return nil
}

type fakeNavigator struct {
	paths []string
}

func (f *fakeNavigator) Navigate(path string) {
	f.paths = append(f.paths, path)
}

type fixture struct {
	toasts  *fakeToasts
	dialogs *fakeDialogs
	nav     *fakeNavigator
	logs    *bytes.Buffer
}

func (f *fixture) deps() pages.Deps {
	return pages.Deps{
		Toasts:    f.toasts,
		Dialogs:   f.dialogs,
		Navigator: f.nav,
		Messages:  perifa.NewMessages("pt-BR"),
		Logger:    slog.New(slog.NewJSONHandler(f.logs, &slog.HandlerOptions{Level: slog.LevelDebug})),
	}
}

func newFixture() *fixture {
	return &fixture{
		toasts:  &fakeToasts{},
		dialogs: &fakeDialogs{},
		nav:     &fakeNavigator{},
		logs:    &bytes.Buffer{},
	}
}
