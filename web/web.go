// Package web holds the host page of the site.
//
// The page carries the DOM contract the runtime expects: the content
// container, the menu, the theme toggles and an optional TOML configuration
// block. The dev server serves it when no web directory is given, next to the
// compiled perifa.wasm and Go's wasm_exec.js.
package web

import (
	"embed"
	"io/fs"
)

//go:embed index.html
var files embed.FS

// IndexFile is the name of the host page.
const IndexFile = "index.html"

// FS returns the embedded host files.
func FS() fs.FS {
	return files
}

// Index returns the host page markup.
func Index() string {
	b, err := files.ReadFile(IndexFile)
	if err != nil {
		// The file is embedded at build time.
		panic(err)
	}
	return string(b)
}
