package reports

import (
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/page.html
var templateFS embed.FS

// TemplateLoader handles loading the page template
type TemplateLoader struct{}

// NewTemplateLoader creates a new template loader
func NewTemplateLoader() *TemplateLoader {
	return &TemplateLoader{}
}

// LoadPageTemplate parses the embedded page template
func (t *TemplateLoader) LoadPageTemplate() (*template.Template, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/page.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse page template: %w", err)
	}
	return tmpl, nil
}
