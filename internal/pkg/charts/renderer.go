// Package charts wraps go-chart behind the single rendering call the
// statistics diagrams need: labeled values in, PNG bytes out.
package charts

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
)

// Style selects the rendered chart shape.
type Style string

const (
	StyleBar  Style = "bar"
	StylePie  Style = "pie"
	StyleLine Style = "line"
)

// Point is one labeled value of a chart.
type Point struct {
	Label string
	Value float64
}

// RenderPNG renders the points in the requested style and returns the PNG
// bytes. Pie charts need a positive total; the other styles accept zero
// values.
func RenderPNG(style Style, title string, points []Point) ([]byte, error) {
	if len(points) == 0 {
		return nil, fmt.Errorf("no data points to render")
	}

	var buf bytes.Buffer
	var err error

	switch style {
	case StyleBar:
		err = renderBar(&buf, title, points)
	case StylePie:
		err = renderPie(&buf, title, points)
	case StyleLine:
		err = renderLine(&buf, title, points)
	default:
		return nil, fmt.Errorf("unsupported chart style: %s", style)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to render %s chart: %w", style, err)
	}

	return buf.Bytes(), nil
}

func renderBar(buf *bytes.Buffer, title string, points []Point) error {
	bars := make([]chart.Value, 0, len(points))
	for _, p := range points {
		bars = append(bars, chart.Value{Label: p.Label, Value: p.Value})
	}

	graph := chart.BarChart{
		Title:    title,
		Width:    1000,
		Height:   600,
		BarWidth: 60,
		Bars:     bars,
		XAxis: chart.Style{
			TextRotationDegrees: 45,
		},
	}

	return graph.Render(chart.PNG, buf)
}

func renderPie(buf *bytes.Buffer, title string, points []Point) error {
	var total float64
	values := make([]chart.Value, 0, len(points))
	for _, p := range points {
		total += p.Value
		values = append(values, chart.Value{Label: p.Label, Value: p.Value})
	}
	if total <= 0 {
		return fmt.Errorf("pie chart requires a positive total, got %v", total)
	}

	graph := chart.PieChart{
		Title:  title,
		Width:  800,
		Height: 800,
		Values: values,
	}

	return graph.Render(chart.PNG, buf)
}

func renderLine(buf *bytes.Buffer, title string, points []Point) error {
	// A line series needs at least two points; a single group is drawn flat.
	if len(points) == 1 {
		points = append(points, points[0])
	}

	xs := make([]float64, 0, len(points))
	ys := make([]float64, 0, len(points))
	ticks := make([]chart.Tick, 0, len(points))
	for i, p := range points {
		x := float64(i)
		xs = append(xs, x)
		ys = append(ys, p.Value)
		ticks = append(ticks, chart.Tick{Value: x, Label: p.Label})
	}

	graph := chart.Chart{
		Title:  title,
		Width:  1000,
		Height: 600,
		XAxis: chart.XAxis{
			Ticks: ticks,
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				XValues: xs,
				YValues: ys,
			},
		},
	}

	return graph.Render(chart.PNG, buf)
}
