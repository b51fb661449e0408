package report

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/de-tools/solar-atlas/pkg/models/domain"
	"github.com/wcharczuk/go-chart/v2"
)

const (
	defaultChartWidth  = 1024
	defaultChartHeight = 400
	minBarWidth        = 12
)

// ChartRasterizer draws a chart series into a PNG image.
type ChartRasterizer interface {
	Rasterize(series *domain.ChartSeries) ([]byte, error)
}

type barChartRasterizer struct {
	width  int
	height int
}

func NewChartRasterizer() ChartRasterizer {
	return &barChartRasterizer{
		width:  defaultChartWidth,
		height: defaultChartHeight,
	}
}

// Rasterize draws one bar per label on a fixed 0..Max value axis.
func (r *barChartRasterizer) Rasterize(series *domain.ChartSeries) ([]byte, error) {
	if series == nil || len(series.Values) == 0 {
		return nil, errors.New("chart has no data")
	}
	if len(series.Labels) != len(series.Values) {
		return nil, fmt.Errorf("chart has %d labels for %d values", len(series.Labels), len(series.Values))
	}

	bars := make([]chart.Value, 0, len(series.Values))
	for i, v := range series.Values {
		bars = append(bars, chart.Value{Label: series.Labels[i], Value: v})
	}

	maxValue := series.Max
	if maxValue <= 0 {
		maxValue = 100
	}

	graph := chart.BarChart{
		Width:    r.width,
		Height:   r.height,
		BarWidth: max(minBarWidth, r.width/(len(bars)*3)),
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 10, Bottom: 10},
		},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: maxValue},
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render bar chart: %w", err)
	}
	return buf.Bytes(), nil
}
