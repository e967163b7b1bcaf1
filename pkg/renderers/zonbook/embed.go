package zonbook

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tmpl
var templates embed.FS

// TemplatesFS returns the built-in zonbook templates.
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(templates, "templates")
	if err != nil {
		panic(err)
	}
	return sub
}

func builtinTemplate() string {
	data, err := templates.ReadFile("templates/document.tmpl")
	if err != nil {
		panic(err)
	}
	return string(data)
}
