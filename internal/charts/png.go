package charts

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"agroclimate/internal/models"
)

const pngWidth = 900

// RenderPNG draws a static line chart of the series, for clients without JavaScript
func (cg *ChartGenerator) RenderPNG(s models.Series, w io.Writer) error {
	if s.Len() < 2 {
		return fmt.Errorf("series %q needs at least two points, has %d", s.Name, s.Len())
	}

	xValues := make([]time.Time, s.Len())
	for i, p := range s.Points {
		xValues[i] = p.Date
	}

	graph := chart.Chart{
		Title: s.Name + " over Time",
		TitleStyle: chart.Style{
			FontSize:  14,
			FontColor: drawing.ColorBlack,
		},
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
		Width:  pngWidth,
		Height: cg.height,
		XAxis: chart.XAxis{
			Name:           "Date",
			ValueFormatter: chart.TimeDateValueFormatter,
		},
		YAxis: chart.YAxis{
			Name: s.Name,
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name: s.Name,
				Style: chart.Style{
					StrokeColor: drawing.Color{R: 51, G: 102, B: 204, A: 255},
					StrokeWidth: 1,
				},
				XValues: xValues,
				YValues: s.Values(),
			},
		},
	}

	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("failed to render %s chart: %w", s.Name, err)
	}
	return nil
}

// WritePNGs renders every series of the dataset into the output directory
// and returns the written file paths.
func (cg *ChartGenerator) WritePNGs(ds *models.Dataset) ([]string, error) {
	if cg.outputDir == "" {
		return nil, fmt.Errorf("no output directory configured")
	}
	if err := os.MkdirAll(cg.outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create chart directory %s: %w", cg.outputDir, err)
	}

	var files []string
	for _, r := range ds.Reports {
		filename := filepath.Join(cg.outputDir, r.Series.Slug()+".png")
		if err := cg.writePNG(r.Series, filename); err != nil {
			return files, err
		}
		files = append(files, filename)
	}
	return files, nil
}

func (cg *ChartGenerator) writePNG(s models.Series, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}
	return cg.renderAndClose(s, f)
}

// renderAndClose renders into wc and closes it; a failed close fails the write
func (cg *ChartGenerator) renderAndClose(s models.Series, wc io.WriteCloser) (err error) {
	defer func() {
		if cerr := wc.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s chart: %w", s.Name, cerr)
		}
	}()
	return cg.RenderPNG(s, wc)
}

// PNGDataURI renders the series as an inline data: URI, so a page can carry
// an image of exactly the values it charts.
func (cg *ChartGenerator) PNGDataURI(s models.Series) (string, error) {
	var buf bytes.Buffer
	if err := cg.RenderPNG(s, &buf); err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
