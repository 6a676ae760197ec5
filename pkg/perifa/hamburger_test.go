package perifa_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/perifanotoque/perifa/pkg/perifa"
	"github.com/perifanotoque/perifa/pkg/perifa/platform/memory"
)

func TestHamburgerMissingElements(t *testing.T) {
	t.Parallel()

	w := memory.MustNew(barePage, memory.Options{})
	opts, logs := quietOptions()
	menu := perifa.NewHamburgerMenu(w, opts)

	err := menu.Init()
	require.Error(t, err)
	require.True(t, perifa.IsConfigurationError(err))
	require.ErrorIs(t, err, perifa.ErrContainerNotFound)
	require.False(t, menu.Ready())
	require.Contains(t, logs.String(), "hamburger,menu,menu-overlay")

	menu.Toggle()
	menu.Open()
	require.False(t, menu.IsMenuOpen())
}

func TestHamburgerToggle(t *testing.T) {
	t.Parallel()

	w := newWindow(t)
	opts, _ := quietOptions()
	menu := perifa.NewHamburgerMenu(w, opts)
	require.NoError(t, menu.Init())
	require.NoError(t, menu.Init())
	require.True(t, menu.Ready())

	doc := w.Document()
	hamburger := doc.GetElementByID("hamburger")

	w.Click(hamburger)
	require.True(t, menu.IsMenuOpen())
	for _, id := range []string{"hamburger", "menu", "menu-overlay"} {
		require.True(t, doc.GetElementByID(id).HasClass("active"), id)
	}
	require.True(t, doc.Body().HasClass("menu-open"))
	label, _ := hamburger.GetAttribute("aria-label")
	require.Equal(t, "Fechar menu de navegação", label)
	require.Equal(t, "Início", w.ActiveElement().TextContent())

	w.Click(hamburger)
	require.False(t, menu.IsMenuOpen())
	require.False(t, doc.Body().HasClass("menu-open"))
	label, _ = hamburger.GetAttribute("aria-label")
	require.Equal(t, "Abrir menu de navegação", label)
	require.Equal(t, 1, w.Doc().ListenerCount(hamburger, "click"))
}

func TestHamburgerClosesOn(t *testing.T) {
	t.Parallel()

	cases := map[string]func(w *memory.Window){
		"overlay click": func(w *memory.Window) {
			w.Click(w.Document().GetElementByID("menu-overlay"))
		},
		"menu item click": func(w *memory.Window) {
			w.Click(w.Document().QuerySelector(".menu-item"))
		},
		"escape": func(w *memory.Window) {
			w.KeyDown("Escape")
		},
		"desktop resize": func(w *memory.Window) {
			w.Resize(1024)
		},
	}

	for name, act := range cases {
		w := newWindow(t)
		opts, _ := quietOptions()
		menu := perifa.NewHamburgerMenu(w, opts)
		require.NoError(t, menu.Init())

		menu.Open()
		require.True(t, menu.IsMenuOpen(), name)
		act(w)
		require.False(t, menu.IsMenuOpen(), name)
	}
}

func TestHamburgerStaysOpen(t *testing.T) {
	t.Parallel()

	w := newWindow(t)
	opts, _ := quietOptions()
	menu := perifa.NewHamburgerMenu(w, opts)
	require.NoError(t, menu.Init())

	menu.Open()
	w.Resize(700)
	w.KeyDown("Enter")
	require.True(t, menu.IsMenuOpen())

	menu.Dispose()
	require.False(t, menu.Ready())
	require.Equal(t, 0, w.Doc().ListenerCount(w.Document().GetElementByID("hamburger"), "click"))
}
