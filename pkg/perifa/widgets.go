package perifa

import (
	"html/template"
	"log/slog"
	"strings"

	"github.com/perifanotoque/perifa/pkg/perifa/constants"
	"github.com/perifanotoque/perifa/pkg/perifa/dom"
	"github.com/perifanotoque/perifa/pkg/perifa/icons"
)

// WidgetOptions is shared by the constructors of every widget system.
type WidgetOptions struct {
	Logger   *slog.Logger
	Messages *Messages
}

// fadeOut adds class to el and detaches it once the hide animation is over.
// It reports false when el was already fading out.
func fadeOut(s dom.Scheduler, el dom.Element, class string, done func()) bool {
	if el.HasClass(class) {
		return false
	}
	el.AddClass(class)
	s.AfterFunc(constants.HideAnimationDuration, func() {
		el.Remove()
		if done != nil {
			done()
		}
	})
	return true
}

func iconHTML(kind MessageType, class string) template.HTML {
	return template.HTML(icons.Markup(kind, class))
}

func renderTemplate(logger *slog.Logger, t *template.Template, data any) string {
	var b strings.Builder
	if err := t.Execute(&b, data); err != nil {
		logger.Error("Failed to render widget markup", "template", t.Name(), "error", err)
		return ""
	}
	return b.String()
}

// classList joins the non-empty names.
func classList(names ...string) string {
	kept := names[:0]
	for _, n := range names {
		if n != "" {
			kept = append(kept, n)
		}
	}
	return strings.Join(kept, " ")
}

// sizeClass returns prefix-size, or "" for the normal size.
func sizeClass(prefix string, s Size) string {
	if s == SizeNormal {
		return ""
	}
	return prefix + "-" + s.String()
}

func appendToBody(doc dom.Document, el dom.Element) {
	if body := doc.Body(); body != nil {
		body.AppendChild(el)
	}
}
