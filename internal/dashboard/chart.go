package dashboard

import (
	"fmt"
	"io"
	"strconv"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	apperrors "github.com/lueurxax/launch-dashboard/internal/core/errors"
)

// Image formats served by the chart endpoints.
const (
	FormatSVG = "svg"
	FormatPNG = "png"
)

// Chart rendering defaults.
const (
	defaultChartWidth  = 800
	defaultChartHeight = 450
	scatterDotWidth    = 6
	classAxisMin       = -0.5
	classAxisMax       = 1.5
	noDataLabel        = "No data"
	contentTypeSVG     = "image/svg+xml"
	contentTypePNG     = "image/png"
)

// ChartOptions controls rendered chart dimensions.
type ChartOptions struct {
	Width  int
	Height int
}

func (o ChartOptions) size() (int, int) {
	w, h := o.Width, o.Height
	if w <= 0 {
		w = defaultChartWidth
	}

	if h <= 0 {
		h = defaultChartHeight
	}

	return w, h
}

func rendererFor(format string) (chart.RendererProvider, string, error) {
	switch format {
	case FormatSVG:
		return chart.SVG, contentTypeSVG, nil
	case FormatPNG:
		return chart.PNG, contentTypePNG, nil
	default:
		return nil, "", fmt.Errorf("%w: %q", apperrors.ErrUnsupportedFormat, format)
	}
}

// ContentType returns the MIME type for a chart image format.
func ContentType(format string) (string, error) {
	_, ct, err := rendererFor(format)
	return ct, err
}

func seriesColor(i int) drawing.Color {
	return chart.GetDefaultColor(i)
}

func seriesColorHex(i int) string {
	c := seriesColor(i)
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// RenderPie draws the pie figure in the given format.
// A figure with no non-zero slice is drawn as a single grey "No data" sector.
func RenderPie(w io.Writer, fig PieFigure, format string, opts ChartOptions) error {
	provider, _, err := rendererFor(format)
	if err != nil {
		return err
	}

	width, height := opts.size()

	values := make([]chart.Value, 0, len(fig.Slices))

	for _, s := range fig.Slices {
		if s.Count <= 0 {
			continue
		}

		values = append(values, chart.Value{
			Label: s.Label + " (" + strconv.Itoa(s.Count) + ")",
			Value: float64(s.Count),
		})
	}

	if len(values) == 0 {
		values = []chart.Value{{
			Label: noDataLabel,
			Value: 1,
			Style: chart.Style{FillColor: chart.ColorLightGray},
		}}
	}

	pie := chart.PieChart{
		Title:  fig.Title,
		Width:  width,
		Height: height,
		Values: values,
	}

	if err := pie.Render(provider, w); err != nil {
		return fmt.Errorf("render pie chart: %w", err)
	}

	return nil
}

// RenderScatter draws the scatter figure in the given format. The x axis is
// fixed to the figure's range; the y axis spans both outcome classes.
func RenderScatter(w io.Writer, fig ScatterFigure, format string, opts ChartOptions) error {
	provider, _, err := rendererFor(format)
	if err != nil {
		return err
	}

	width, height := opts.size()

	xMin, xMax := fig.XRange.Low, fig.XRange.High
	if xMax <= xMin {
		// go-chart cannot lay out ticks on a zero-width range
		xMax = xMin + 1
	}

	series := make([]chart.Series, 0, len(fig.Series)+1)

	for i, s := range fig.Series {
		xs := make([]float64, len(s.Points))
		ys := make([]float64, len(s.Points))

		for j, p := range s.Points {
			xs[j] = p.PayloadMassKg
			ys[j] = float64(p.Class)
		}

		series = append(series, chart.ContinuousSeries{
			Name:    s.BoosterVersion,
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeWidth: chart.Disabled,
				DotWidth:    scatterDotWidth,
				DotColor:    seriesColor(i),
			},
		})
	}

	if len(series) == 0 {
		series = append(series, chart.ContinuousSeries{
			Name:    noDataLabel,
			XValues: []float64{xMin},
			YValues: []float64{0},
			Style:   chart.Style{StrokeWidth: chart.Disabled, DotWidth: chart.Disabled},
		})
	}

	graph := chart.Chart{
		Title:  fig.Title,
		Width:  width,
		Height: height,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.XAxis{
			Name:  fig.XAxis,
			Range: &chart.ContinuousRange{Min: xMin, Max: xMax},
		},
		YAxis: chart.YAxis{
			Name:  fig.YAxis,
			// ticks also bound the axis, so the padding ticks carry no label
			Ticks: []chart.Tick{
				{Value: classAxisMin},
				{Value: 0, Label: "0"},
				{Value: 1, Label: "1"},
				{Value: classAxisMax},
			},
		},
		Series: series,
	}

	if len(fig.Series) > 0 {
		graph.Elements = []chart.Renderable{chart.LegendLeft(&graph)}
	}

	if err := graph.Render(provider, w); err != nil {
		return fmt.Errorf("render scatter chart: %w", err)
	}

	return nil
}
