package perifa

import (
	"github.com/perifanotoque/perifa/pkg/perifa/constants"
	"github.com/perifanotoque/perifa/pkg/perifa/dom"
)

// InlineAlerts places alerts inside page content, such as above a form.
type InlineAlerts struct {
	alertSet

	release dom.Release
}

// NewInlineAlerts returns an inline alert service and starts handling close
// buttons of .alert-inline elements.
func NewInlineAlerts(win dom.Window, opts WidgetOptions) *InlineAlerts {
	s := &InlineAlerts{alertSet: newAlertSet(win, opts)}
	s.release = s.closeClicks(".alert-inline")
	return s
}

// Show inserts an alert as the first child of container. The alert closes
// after ten seconds unless opts.Persistent is set; Duration and Position are
// ignored.
func (s *InlineAlerts) Show(container dom.Element, opts AlertOptions) *Alert {
	if container == nil {
		s.logger.Error("Container not found for inline alert")
		return nil
	}

	a := s.build("", opts, "alert-inline")
	container.InsertBefore(a.Element, container.FirstChild())

	if !opts.Persistent {
		s.arm(a, constants.InlineAlertDuration)
	}
	return a
}

// ShowIn is Show for the first element matching selector. It returns nil when
// nothing matches.
func (s *InlineAlerts) ShowIn(selector string, opts AlertOptions) *Alert {
	container := s.doc.QuerySelector(selector)
	if container == nil {
		s.logger.Error("Container not found for inline alert", "selector", selector)
		return nil
	}
	return s.Show(container, opts)
}

// Success shows a success alert in container.
func (s *InlineAlerts) Success(container dom.Element, title, message string, opts AlertOptions) *Alert {
	opts.Type, opts.Title, opts.Message = TypeSuccess, title, message
	return s.Show(container, opts)
}

// Error shows an error alert in container.
func (s *InlineAlerts) Error(container dom.Element, title, message string, opts AlertOptions) *Alert {
	opts.Type, opts.Title, opts.Message = TypeError, title, message
	return s.Show(container, opts)
}

// Warning shows a warning alert in container.
func (s *InlineAlerts) Warning(container dom.Element, title, message string, opts AlertOptions) *Alert {
	opts.Type, opts.Title, opts.Message = TypeWarning, title, message
	return s.Show(container, opts)
}

// Info shows an informational alert in container.
func (s *InlineAlerts) Info(container dom.Element, title, message string, opts AlertOptions) *Alert {
	opts.Type, opts.Title, opts.Message = TypeInfo, title, message
	return s.Show(container, opts)
}

// CloseAll closes every .alert-inline on the page.
func (s *InlineAlerts) CloseAll() {
	for _, el := range s.doc.QuerySelectorAll(".alert-inline") {
		s.closeElement(el)
	}
}

// Dispose stops handling close clicks.
func (s *InlineAlerts) Dispose() {
	if s.release != nil {
		s.release()
		s.release = nil
	}
}
