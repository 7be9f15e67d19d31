package prompt

import (
	"embed"
	"io/fs"
)

// DefaultTemplate names the bundled extraction prompt template.
const DefaultTemplate = "extraction.tpl"

//go:embed templates/*.tpl
var embeddedTemplates embed.FS

// TemplatesFS exposes the bundled templates rooted at the templates
// directory.
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return embeddedTemplates
	}
	return sub
}
