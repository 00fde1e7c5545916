package templated

import (
	"embed"
	"io/fs"

	"github.com/goliatone/go-templated/pkg/renderers/vanilla"
)

// RuntimeScriptName is the browser controller bundled under pkg/runtime/assets.
const RuntimeScriptName = "templated-attribute.js"

//go:embed pkg/runtime/assets/*.js
var embeddedRuntimeAssets embed.FS

// RuntimeAssetsFS exposes the browser field controller (committed under
// pkg/runtime/assets) so Go applications can serve it next to the rendered
// forms.
//
// Typical mount:
//
//	mux.Handle("/runtime/",
//	  http.StripPrefix("/runtime/",
//	    http.FileServerFS(templated.RuntimeAssetsFS()),
//	  ),
//	)
func RuntimeAssetsFS() fs.FS {
	sub, err := fs.Sub(embeddedRuntimeAssets, "pkg/runtime/assets")
	if err != nil {
		return embeddedRuntimeAssets
	}
	return sub
}

// StylesheetFS exposes the stylesheet dimming fields that show their template.
func StylesheetFS() fs.FS {
	return vanilla.AssetsFS()
}
