// Package presentation turns analysis rows into the figures, blocks and stat strings the page renders.
package presentation

// Figure is a Plotly figure: traces plus layout, serialized as-is to the browser.
type Figure struct {
	Data   []BarTrace `json:"data"`
	Layout Layout     `json:"layout"`
}

type BarTrace struct {
	Type    string    `json:"type"`
	X       []string  `json:"x"`
	Y       []float64 `json:"y"`
	Marker  Marker    `json:"marker"`
	Opacity float64   `json:"opacity"`
}

type Marker struct {
	Color string     `json:"color"`
	Line  MarkerLine `json:"line"`
}

type MarkerLine struct {
	Color string  `json:"color"`
	Width float64 `json:"width"`
}

type Layout struct {
	Height       int    `json:"height"`
	Margin       Margin `json:"margin"`
	PaperBGColor string `json:"paper_bgcolor"`
	PlotBGColor  string `json:"plot_bgcolor"`
	XAxis        Axis   `json:"xaxis"`
	YAxis        Axis   `json:"yaxis"`
}

type Margin struct {
	L   int `json:"l"`
	R   int `json:"r"`
	T   int `json:"t"`
	B   int `json:"b"`
	Pad int `json:"pad"`
}

type Axis struct {
	Title         AxisTitle `json:"title"`
	FixedRange    bool      `json:"fixedrange"`
	GridColor     string    `json:"gridcolor"`
	ZeroLineColor string    `json:"zerolinecolor"`
	Range         []float64 `json:"range,omitempty"`
	CategoryOrder string    `json:"categoryorder,omitempty"`
	CategoryArray []string  `json:"categoryarray,omitempty"`
}

type AxisTitle struct {
	Text string `json:"text"`
}
