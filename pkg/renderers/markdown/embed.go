package markdown

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tmpl
var templates embed.FS

// TemplatesFS returns the built-in markdown templates. Callers may pass the
// filesystem to a template store to reuse or extend them.
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(templates, "templates")
	if err != nil {
		// The embed directive guarantees the subpath exists, so panic is
		// acceptable here.
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
