package formschema

import (
	"io/fs"

	"github.com/goliatone/go-formschema/pkg/renderers/vanilla"
)

// RuntimeAssetsFS exposes the stylesheet and the browser runtime that drives
// live validation, so Go applications can serve them next to rendered forms.
//
// Typical mount:
//
//	mux.Handle("/assets/",
//	  http.StripPrefix("/assets/",
//	    http.FileServerFS(formschema.RuntimeAssetsFS()),
//	  ),
//	)
func RuntimeAssetsFS() fs.FS {
	return vanilla.AssetsFS()
}
