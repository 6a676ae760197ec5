package pages

import (
	"strings"
	"time"

	"github.com/perifanotoque/perifa/pkg/perifa"
	"github.com/perifanotoque/perifa/pkg/perifa/constants"
	"github.com/perifanotoque/perifa/pkg/perifa/dom"
	"github.com/perifanotoque/perifa/pkg/perifa/router"
)

// homeToastDuration is how long the invitation toast stays up.
const homeToastDuration = 5 * time.Second

// homeMessages picks the invitation text by a keyword of the section title.
// The first match wins.
var homeMessages = []struct {
	keyword string
	id      string
}{
	{"Quem somos", "HomeMessageAbout"},
	{"Missão", "HomeMessageMission"},
	{"Contato", "HomeMessageContact"},
}

// Home returns the initializer of the home view. A click on a content section
// pulses it and invites the visitor to register with a toast whose action
// opens the registration route. Clicks on links are left to the router.
func Home(win dom.Window, deps Deps) router.Initializer {
	deps = deps.withDefaults()

	return func() router.Disposer {
		doc := win.Document()
		container := doc.GetElementByID(constants.ContentContainerID)
		if container == nil {
			deps.Logger.Warn("Home view without content container", "id", constants.ContentContainerID)
			return nil
		}

		timers := dom.NewTimers(win)
		var releases dom.Releases

		for _, section := range doc.QuerySelectorAll("main section") {
			section.SetStyle("cursor", "pointer")
		}

		releases.Add(container.AddEventListener("click", func(e *dom.Event) {
			if e.Target == nil || e.Target.Closest("a") != nil {
				return
			}
			section := e.Target.Closest("main section")
			if section == nil {
				return
			}

			section.SetStyle("transform", "scale(0.98)")
			timers.After(deps.PulseDuration, func() {
				section.SetStyle("transform", "")
			})

			title := section.QuerySelector("h2")
			if title == nil {
				return
			}
			invite(deps, title.TextContent())
		}))

		return func() {
			timers.StopAll()
			releases.ReleaseAll()
		}
	}
}

func invite(deps Deps, sectionTitle string) {
	id := "HomeMessageDefault"
	for _, m := range homeMessages {
		if strings.Contains(sectionTitle, m.keyword) {
			id = m.id
			break
		}
	}

	deps.info(deps.Messages.Get("HomeToastTitle"), deps.Messages.Get(id), perifa.ToastOptions{
		Duration: homeToastDuration,
		Position: perifa.ToastTopRight,
		Action: &perifa.ToastAction{
			Text: deps.Messages.Get("HomeActionRegister"),
			Type: "register",
			Callback: func() {
				if deps.Navigator != nil {
					deps.Navigator.Navigate(constants.RouteRegistration)
				}
			},
		},
	})
}
