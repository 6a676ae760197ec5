package router_test

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/perifanotoque/perifa/pkg/perifa/platform/memory"
	"github.com/perifanotoque/perifa/pkg/perifa/router"
)

const examplePage = `<!DOCTYPE html><html><head><title></title></head><body>
<nav><a class="menu-item" data-route="/" href="#">Início</a><a class="menu-item" data-route="/projeto" href="#">Projetos</a></nav>
<main id="app-content"></main>
</body></html>`

var discard = slog.New(slog.NewJSONHandler(io.Discard, nil))

// Example demonstrates route registration, the initial render and a menu
// click.
func Example() {
	win := memory.MustNew(examplePage, memory.Options{})

	r := router.New(win, router.Options{
		Titles: map[string]string{
			"/":        "Início - Perifa no Toque",
			"/projeto": "Projetos - Perifa no Toque",
		},
		Logger: discard,
	})

	r.AddRoute("/", func() string { return "<h1>Início</h1>" }, func() router.Disposer {
		fmt.Println("home behavior attached")
		return func() { fmt.Println("home behavior removed") }
	}).AddRoute("/projeto", func() string { return "<h1>Projetos</h1>" }, nil)

	if err := r.Init(); err != nil {
		fmt.Println(err)
		return
	}

	r.LoadInitialRoute()
	win.Advance(200 * time.Millisecond)

	win.Click(win.Document().QuerySelector(`.menu-item[data-route="/projeto"]`))
	win.Advance(200 * time.Millisecond)

	fmt.Println(r.CurrentRoute(), win.Location().Hash())
	fmt.Println(win.Document().Title())
	fmt.Println(win.Document().GetElementByID("app-content").InnerHTML())

	// Output:
	// home behavior attached
	// home behavior removed
	// /projeto #/projeto
	// Projetos - Perifa no Toque
	// <h1>Projetos</h1>
}

// Example_redirectHome shows that unknown paths fall back to "/".
func Example_redirectHome() {
	win := memory.MustNew(examplePage, memory.Options{})

	r := router.New(win, router.Options{Logger: discard})
	r.AddRoute("/", func() string { return "<h1>Início</h1>" }, nil)
	_ = r.Init()

	r.Navigate("/nao-existe")
	win.Advance(150 * time.Millisecond)

	fmt.Println(r.CurrentRoute(), win.Location().Hash())
	fmt.Println(win.Document().Title())

	// Output:
	// / #/
	// Perifa no Toque
}

// Example_missingContainer shows the router staying inert on a page without
// a content container.
func Example_missingContainer() {
	win := memory.MustNew(`<html><body></body></html>`, memory.Options{})

	r := router.New(win, router.Options{Logger: discard})
	r.AddRoute("/", func() string { return "" }, nil)

	err := r.Init()
	fmt.Println(err)

	r.Navigate("/")
	fmt.Printf("ready=%v current=%q\n", r.Ready(), r.CurrentRoute())

	// Output:
	// perifa: router: #app-content: container element not found
	// ready=false current=""
}
