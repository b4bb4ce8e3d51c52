package web

import (
	"embed"
)

//go:embed templates
var Assets embed.FS

// GetTemplatesFS returns the embedded filesystem.
func GetTemplatesFS() embed.FS {
	return Assets
}
