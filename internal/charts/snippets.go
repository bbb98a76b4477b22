package charts

import (
	"encoding/json"
	"fmt"

	echarts "github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"agroclimate/internal/models"
)

// EChartsCDN is the script every line snippet depends on
const EChartsCDN = "https://cdn.jsdelivr.net/npm/echarts@5.4.3/dist/echarts.min.js"

// ChartSnippet represents an embeddable chart fragment.
// Div holds a single root <div id="..."></div>, Script the <script> block that
// initializes the chart inside it.
type ChartSnippet struct {
	ID     string
	Title  string
	Div    string
	Script string
}

// HTML returns the div followed by its script
func (s ChartSnippet) HTML() string {
	return s.Div + "\n" + s.Script
}

// ContainerID returns the id of the element a series chart is drawn into
func ContainerID(s models.Series) string {
	return "chart-" + s.Slug()
}

// LineSnippet builds a go-echarts line of value over date for one series
func (cg *ChartGenerator) LineSnippet(s models.Series) (ChartSnippet, error) {
	if s.Len() == 0 {
		return ChartSnippet{}, fmt.Errorf("series %q has no points", s.Name)
	}

	id := ContainerID(s)
	title := s.Name + " over Time"
	height := fmt.Sprintf("%dpx", cg.height)

	line := echarts.NewLine()
	line.SetGlobalOptions(
		echarts.WithInitializationOpts(opts.Initialization{
			ChartID: id,
			Width:   "100%",
			Height:  height,
		}),
		echarts.WithTitleOpts(opts.Title{Title: title}),
		echarts.WithTooltipOpts(opts.Tooltip{Show: true, Trigger: "axis"}),
		echarts.WithXAxisOpts(opts.XAxis{Name: "Date"}),
		echarts.WithYAxisOpts(opts.YAxis{Name: s.Name}),
		echarts.WithDataZoomOpts(opts.DataZoom{Type: "inside", Start: 0, End: 100}),
	)

	data := make([]opts.LineData, s.Len())
	for i, p := range s.Points {
		data[i] = opts.LineData{Value: p.Value}
	}
	line.SetXAxis(s.Dates()).AddSeries(s.Name, data)

	// Validate copies the x axis data into the option
	line.Validate()
	optJSON, err := json.Marshal(line.JSON())
	if err != nil {
		return ChartSnippet{}, fmt.Errorf("failed to marshal chart option for %s: %w", s.Name, err)
	}

	div := fmt.Sprintf(`<div id="%s" class="chart-container" style="width:100%%;height:%s;"></div>`, id, height)
	script := fmt.Sprintf(`<script>(function(){var el=document.getElementById('%s');if(!el||typeof echarts==='undefined')return;var c=echarts.init(el);var option=%s;c.setOption(option);window.addEventListener('resize',function(){c.resize();});})();</script>`, id, string(optJSON))

	return ChartSnippet{ID: id, Title: title, Div: div, Script: script}, nil
}

// GenerateEChartsSnippets builds one line snippet per report, in order
func (cg *ChartGenerator) GenerateEChartsSnippets(reports []models.SeriesReport) ([]ChartSnippet, error) {
	snippets := make([]ChartSnippet, 0, len(reports))
	for _, r := range reports {
		snippet, err := cg.LineSnippet(r.Series)
		if err != nil {
			return nil, err
		}
		snippets = append(snippets, snippet)
	}
	return snippets, nil
}
