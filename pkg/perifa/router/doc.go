// Package router is the single-page router of the site: a table of views
// keyed by path and the lifecycle that swaps them in and out of the content
// container.
//
// # Basic Usage
//
//	r := router.New(win, router.Options{
//	    Titles: map[string]string{"/": "Início - Perifa no Toque"},
//	    Menu:   hamburgerMenu,
//	})
//
//	r.AddRoute("/", fragments.Renderer(templates.Home), homeBehavior).
//	    AddRoute("/projeto", fragments.Renderer(templates.Projects), nil)
//
//	if err := r.Init(); err != nil {
//	    // No #app-content on the page; the router stays inert.
//	}
//	r.LoadInitialRoute()
//
// # Navigation
//
// Navigate and clicks on [data-route] elements push a history entry
// {route: path} with the URL #path. Back and forward replay entries through
// popstate without pushing again. Unknown paths redirect to "/".
//
// # View Lifecycle
//
// A render fades the container out, replaces its markup after FadeDelay and
// calls the route's Initializer LoadDelay later. The Disposer an Initializer
// returns runs right before the next view's markup replaces its own, so page
// behaviors never have to look for listeners left behind by an earlier
// render. Starting a render cancels the pending steps of the previous one:
// only the last of several quick navigations runs its Initializer.
package router
