package reports

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"agroclimate/internal/charts"
	"agroclimate/internal/config"
	"agroclimate/internal/logger"
	"agroclimate/internal/models"
)

// StylesheetPath is served by the host, never generated here
const StylesheetPath = "/static/style.css"

const introMarkdown = `This visualization presents **simulated** data for various climate parameters relevant to irrigation in %s.
The data spans from %s to %s, including both historical and projected values.
Please note that this is simulated data and should not be used for actual planning or decision-making.`

// HTMLBuilder assembles the page from a dataset
type HTMLBuilder struct {
	templateLoader *TemplateLoader
	goldmark       goldmark.Markdown
	charts         *charts.ChartGenerator
	log            *logger.Logger
}

// NewHTMLBuilder creates an HTML builder drawing charts with chartGen
func NewHTMLBuilder(chartGen *charts.ChartGenerator) *HTMLBuilder {
	// raw HTML stays disabled: the prose carries the location name
	md := goldmark.New(
		goldmark.WithExtensions(extension.Typographer),
		goldmark.WithRendererOptions(html.WithXHTML()),
	)

	return &HTMLBuilder{
		templateLoader: NewTemplateLoader(),
		goldmark:       md,
		charts:         chartGen,
		log:            logger.GetGlobalLogger().WithComponent("html-builder"),
	}
}

// markdownPunct is the ASCII punctuation CommonMark allows to be backslash-escaped
const markdownPunct = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// escapeMarkdown backslash-escapes punctuation so text renders literally
func escapeMarkdown(text string) string {
	var b strings.Builder
	for _, r := range text {
		if strings.ContainsRune(markdownPunct, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// TemplateData represents the data structure for the page template
type TemplateData struct {
	Location    models.Location
	EChartsJS   string
	LeafletCSS  string
	LeafletJS   string
	CSSFilePath string
	Map         template.HTML
	Intro       template.HTML
	Sections    []SectionData
	GeneratedAt string
	Version     string
}

// SectionData is one series block of the page
type SectionData struct {
	Name        string
	Slug        string
	Chart       template.HTML
	Script      template.HTML
	Image       template.URL
	Explanation template.HTML
}

// ConvertMarkdownToHTML converts markdown to HTML using goldmark
func (h *HTMLBuilder) ConvertMarkdownToHTML(markdownContent string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := h.goldmark.Convert([]byte(markdownContent), &buf); err != nil {
		return "", fmt.Errorf("failed to convert markdown: %w", err)
	}
	return template.HTML(buf.String()), nil
}

// Build renders the complete HTML document for the dataset. Any failing
// step fails the whole page.
func (h *HTMLBuilder) Build(ds *models.Dataset) (string, error) {
	data, err := h.templateData(ds)
	if err != nil {
		return "", err
	}

	tmpl, err := h.templateLoader.LoadPageTemplate()
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	h.log.Debug("page built", map[string]interface{}{
		"location": ds.Location.Name,
		"sections": len(data.Sections),
		"bytes":    buf.Len(),
	})
	return buf.String(), nil
}

func (h *HTMLBuilder) templateData(ds *models.Dataset) (TemplateData, error) {
	mapSnippet, err := h.charts.MapSnippet(ds.Location)
	if err != nil {
		return TemplateData{}, fmt.Errorf("failed to build map: %w", err)
	}

	intro, err := h.ConvertMarkdownToHTML(fmt.Sprintf(introMarkdown,
		escapeMarkdown(ds.Location.Name),
		ds.Window.Start.Format(models.DateLayout),
		ds.Window.End.Format(models.DateLayout)))
	if err != nil {
		return TemplateData{}, err
	}

	snippets, err := h.charts.GenerateEChartsSnippets(ds.Reports)
	if err != nil {
		return TemplateData{}, fmt.Errorf("failed to build charts: %w", err)
	}

	sections := make([]SectionData, len(ds.Reports))
	for i, r := range ds.Reports {
		explanation, err := h.ConvertMarkdownToHTML(r.Explanation)
		if err != nil {
			return TemplateData{}, err
		}
		image, err := h.charts.PNGDataURI(r.Series)
		if err != nil {
			return TemplateData{}, fmt.Errorf("failed to build chart image: %w", err)
		}
		sections[i] = SectionData{
			Name:        r.Series.Name,
			Slug:        r.Series.Slug(),
			Chart:       template.HTML(snippets[i].Div),
			Script:      template.HTML(snippets[i].Script),
			Image:       template.URL(image),
			Explanation: explanation,
		}
	}

	return TemplateData{
		Location:    ds.Location,
		EChartsJS:   charts.EChartsCDN,
		LeafletCSS:  charts.LeafletCSS,
		LeafletJS:   charts.LeafletJS,
		CSSFilePath: StylesheetPath,
		Map:         template.HTML(mapSnippet.HTML()),
		Intro:       intro,
		Sections:    sections,
		GeneratedAt: ds.GeneratedAt.UTC().Format(time.RFC3339),
		Version:     config.GetVersion(),
	}, nil
}
