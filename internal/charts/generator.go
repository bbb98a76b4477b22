package charts

// DefaultHeight is the pixel height of every chart and of the map
const DefaultHeight = 400

// ChartGenerator builds the chart and map fragments of the page
type ChartGenerator struct {
	outputDir string
	height    int
}

// NewChartGenerator creates a chart generator. outputDir is only needed
// when PNG files are written to disk.
func NewChartGenerator(outputDir string, height int) *ChartGenerator {
	if height <= 0 {
		height = DefaultHeight
	}
	return &ChartGenerator{
		outputDir: outputDir,
		height:    height,
	}
}

// Height returns the configured chart height in pixels
func (cg *ChartGenerator) Height() int {
	return cg.height
}
