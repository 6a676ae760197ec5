// Package templates holds the HTML fragments rendered into the content
// container for each route.
//
// Fragments are html/template files embedded in the binary. Longer prose is
// written in Markdown next to them and converted with goldmark through the
// markdown template function. Every fragment is rendered once, when the
// Registry is built, so route renders are plain string lookups.
package templates

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"sort"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/perifanotoque/perifa/pkg/perifa/internal"
)

//go:embed fragments
var fragments embed.FS

// Fragment names.
const (
	Home         = "home"
	Projects     = "projeto"
	Registration = "cadastro"
)

// ErrUnknownTemplate is returned for a fragment name that was never defined.
var ErrUnknownTemplate = errors.New("unknown template")

// Project is a card on the projects page. Source names a Markdown file in the
// fragments directory.
type Project struct {
	Title  string
	Source string
}

// Select is a required select control of the registration form.
type Select struct {
	Name    string
	ID      string
	Options []string
}

// Site is the data every fragment is rendered with.
type Site struct {
	Name         string
	Address      string
	Phone        string
	Email        string
	VideoID      string // YouTube id of the home page video; empty hides it
	Projects     []Project
	Areas        Select
	Availability Select
}

// DefaultSite returns the content of the Perifa no Toque site.
func DefaultSite() Site {
	return Site{
		Name:    "PERIFA NO TOQUE",
		Address: "R. da Resistência, 123. Bairro Submundo, Itaquaquecetuba - SP",
		Phone:   "(11) 9 8765-4321",
		Email:   "contato@ongpnt.org",
		VideoID: "4EpIzcqRWAg",
		Projects: []Project{
			{Title: "Oficina Mimitos", Source: "oficina-mimitos.md"},
			{Title: "Voz é poder", Source: "voz-e-poder.md"},
			{Title: "Batalha no Toque", Source: "batalha-no-toque.md"},
		},
		Areas: Select{
			Name: "area",
			ID:   "iarea",
			Options: []string{
				"Planejamento de Eventos",
				"Oficinas de Dança",
				"Comunicação e Redes Sociais",
				"Captação de Recursos",
			},
		},
		Availability: Select{
			Name:    "temp",
			ID:      "itemp",
			Options: []string{"Manhã", "Tarde", "Noite", "Fim de Semana"},
		},
	}
}

// Options configures a Registry.
type Options struct {
	Site   *Site // Content to render; nil uses DefaultSite
	Logger *slog.Logger
}

// Registry maps fragment names to rendered HTML.
type Registry struct {
	rendered map[string]string
	logger   *slog.Logger
}

// New parses and renders every fragment.
func New(opts Options) (*Registry, error) {
	// Set defaults
	site := DefaultSite()
	if opts.Site != nil {
		site = *opts.Site
	}

	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Typographer),
	)

	root, err := fs.Sub(fragments, "fragments")
	if err != nil {
		return nil, fmt.Errorf("opening fragments: %w", err)
	}

	t, err := template.New("").Funcs(template.FuncMap{
		"markdown": markdownFunc(md, root),
	}).ParseFS(root, "*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing fragments: %w", err)
	}

	r := &Registry{
		rendered: make(map[string]string),
		logger:   internal.LoggerOr(opts.Logger),
	}
	for _, name := range []string{Home, Projects, Registration} {
		var buf bytes.Buffer
		if err := t.ExecuteTemplate(&buf, name, site); err != nil {
			return nil, fmt.Errorf("rendering %s: %w", name, err)
		}
		r.rendered[name] = buf.String()
	}
	return r, nil
}

// markdownFunc converts a Markdown file from dir to HTML.
func markdownFunc(md goldmark.Markdown, dir fs.FS) func(name string) (template.HTML, error) {
	return func(name string) (template.HTML, error) {
		src, err := fs.ReadFile(dir, name)
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", name, err)
		}
		var buf bytes.Buffer
		if err := md.Convert(src, &buf); err != nil {
			return "", fmt.Errorf("converting %s: %w", name, err)
		}
		return template.HTML(buf.String()), nil
	}
}

// Render returns the HTML of the named fragment.
func (r *Registry) Render(name string) (string, error) {
	html, ok := r.rendered[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownTemplate, name)
	}
	return html, nil
}

// Renderer returns a render function for the router. An unknown name logs an
// error and renders an empty view.
func (r *Registry) Renderer(name string) func() string {
	html, err := r.Render(name)
	if err != nil {
		r.logger.Error("Template not found", "name", name, "error", err)
	}
	return func() string {
		return html
	}
}

// Names returns the fragment names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.rendered))
	for name := range r.rendered {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
