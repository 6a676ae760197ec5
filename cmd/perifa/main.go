//go:build js && wasm

// Command perifa is the browser runtime of the Perifa no Toque site. Build it
// with GOOS=js GOARCH=wasm and load it from the host page next to Go's
// wasm_exec.js.
package main

import (
	"os"

	"github.com/perifanotoque/perifa/pkg/perifa"
	"github.com/perifanotoque/perifa/pkg/perifa/app"
	"github.com/perifanotoque/perifa/pkg/perifa/platform/browser"
)

func main() {
	perifa.Init(perifa.Options{LogWriter: os.Stdout})
	logger := perifa.GetLogger()

	site, err := app.New(browser.New(), app.Options{})
	if err != nil {
		logger.Error("Failed to build site", "error", err)
		os.Exit(1)
	}
	site.Run()

	// Callbacks registered with the page need the Go runtime alive.
	select {}
}
