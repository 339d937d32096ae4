package vgsurface

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg/draw"

	"github.com/susji/lilchart/chart"
)

// Plotter embeds a chart in a gonum plot. The chart takes the whole data
// area of the plot and brings its own axes, so callers usually hide the
// plot axes.
type Plotter struct {
	Chart    *chart.Chart
	Progress float64

	// Frame and Err hold the outcome of the last Plot call.
	Frame *chart.Frame
	Err   error
}

var (
	_ plot.Plotter    = (*Plotter)(nil)
	_ plot.DataRanger = (*Plotter)(nil)
)

// NewPlotter returns a plotter drawing ch at progress.
func NewPlotter(ch *chart.Chart, progress float64) *Plotter {
	return &Plotter{Chart: ch, Progress: progress}
}

func (p *Plotter) Plot(c draw.Canvas, plt *plot.Plot) {
	size := chart.Size{
		Width:  float64(c.Max.X - c.Min.X),
		Height: float64(c.Max.Y - c.Min.Y),
	}
	s := NewIn(c)
	p.Frame, p.Err = p.Chart.Render(s, size, p.Progress)
}

// DataRange spans the entry indices and values so that plot axes, when
// shown, line up with the entries.
func (p *Plotter) DataRange() (xmin, xmax, ymin, ymax float64) {
	entries := p.Chart.Entries
	if len(entries) == 0 {
		return 0, 0, 0, 0
	}
	xmax = float64(len(entries) - 1)
	ymin, ymax = entries[0].Value, entries[0].Value
	for _, e := range entries[1:] {
		ymin = min(ymin, e.Value)
		ymax = max(ymax, e.Value)
	}
	return 0, xmax, ymin, ymax
}

// Titled returns a plot with the given title holding only ch.
func Titled(ch *chart.Chart, title string, progress float64) (*plot.Plot, *Plotter) {
	plt := plot.New()
	plt.Title.Text = title
	plt.HideAxes()
	plt.BackgroundColor = ch.Config.BackgroundColor
	pl := NewPlotter(ch, progress)
	plt.Add(pl)
	return plt, pl
}
