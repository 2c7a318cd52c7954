package presentation

import "nlp-dashboard/internal/models"

const (
	chartHeight     = 400
	barColor        = "rgb(158,202,225)"
	barLineColor    = "rgb(8,48,107)"
	barLineWidth    = 1.5
	barOpacity      = 0.6
	backgroundColor = "white"
	gridColor       = "#EBF0F8"
)

// BuildEntityChart plots entity salience, one bar per row in row order.
func BuildEntityChart(rows []models.EntityRow) Figure {
	x := make([]string, len(rows))
	y := make([]float64, len(rows))
	for i, r := range rows {
		x[i], y[i] = r.Entity, r.Salience
	}
	return barFigure(x, y, axis("Entity"), axis("Salience"))
}

// BuildCategoryChart plots category confidence on a fixed [0, 1] axis, keeping row order on x.
func BuildCategoryChart(rows []models.CategoryRow) Figure {
	x := make([]string, len(rows))
	y := make([]float64, len(rows))
	for i, r := range rows {
		x[i], y[i] = r.Category, r.Confidence
	}

	xAxis := axis("Category")
	xAxis.CategoryOrder = "array"
	xAxis.CategoryArray = x

	yAxis := axis("Confidence")
	yAxis.Range = []float64{0, 1}

	return barFigure(x, y, xAxis, yAxis)
}

func barFigure(x []string, y []float64, xAxis, yAxis Axis) Figure {
	return Figure{
		Data: []BarTrace{{
			Type: "bar",
			X:    x,
			Y:    y,
			Marker: Marker{
				Color: barColor,
				Line:  MarkerLine{Color: barLineColor, Width: barLineWidth},
			},
			Opacity: barOpacity,
		}},
		Layout: Layout{
			Height:       chartHeight,
			Margin:       Margin{L: 10, R: 10, T: 5, B: 5, Pad: 5},
			PaperBGColor: backgroundColor,
			PlotBGColor:  backgroundColor,
			XAxis:        xAxis,
			YAxis:        yAxis,
		},
	}
}

func axis(title string) Axis {
	return Axis{
		Title:         AxisTitle{Text: title},
		FixedRange:    true,
		GridColor:     gridColor,
		ZeroLineColor: gridColor,
	}
}
