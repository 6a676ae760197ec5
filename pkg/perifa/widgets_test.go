package perifa_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/perifanotoque/perifa/pkg/perifa"
	"github.com/perifanotoque/perifa/pkg/perifa/platform/memory"
)

const widgetPage = `<!DOCTYPE html>
<html><head><title>Perifa no Toque</title></head>
<body>
<header>
  <button id="hamburger" aria-label="Abrir menu de navegação"></button>
  <button id="theme-toggle-desktop"></button>
  <nav id="menu">
    <a class="menu-item" data-route="/" href="#">Início</a>
    <a class="menu-item" data-route="/projeto" href="#">Projetos</a>
    <button id="theme-toggle"></button>
  </nav>
  <div id="menu-overlay"></div>
</header>
<main id="app-content">
  <div id="form-box"><form id="cadastro-form"></form></div>
  <div class="alert alert-info" id="static-alert">
    <p class="alert-message">Aviso fixo</p>
    <button class="alert-close">&times;</button>
  </div>
</main>
</body></html>`

const barePage = `<!DOCTYPE html><html><head></head><body><main></main></body></html>`

func newWindow(t *testing.T) *memory.Window {
	t.Helper()
	return memory.MustNew(widgetPage, memory.Options{})
}

// quietOptions returns widget options whose logs go to a buffer.
func quietOptions() (perifa.WidgetOptions, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return perifa.WidgetOptions{Logger: logger}, &buf
}
