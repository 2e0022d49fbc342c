package vanilla

import (
	"embed"
	"io/fs"
)

// Asset file names inside AssetsFS.
const (
	StylesheetName    = "formschema.css"
	RuntimeScriptName = "formschema-runtime.js"
)

//go:embed templates
var templateFiles embed.FS

//go:embed assets
var assetFiles embed.FS

var assetsRoot = mustSub(assetFiles, "assets")

// TemplatesFS returns the built-in page and widget templates, rooted so that
// names read "templates/form.tmpl".
func TemplatesFS() fs.FS {
	return templateFiles
}

// AssetsFS returns the stylesheet and runtime script served under /assets.
func AssetsFS() fs.FS {
	return assetsRoot
}

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}
