// tinchart draws a single chart from a spreadsheet. Each row of the sheet
// is one entry: label in the first column, value in the second, and an
// optional value label and #rrggbb colour in the third and fourth.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image/color"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/xuri/excelize/v2"
	"gonum.org/v1/plot/vg"

	"github.com/susji/lilchart/chart"
	"github.com/susji/lilchart/chart/vgsurface"
)

var default_color = color.NRGBA{R: 0x20, G: 0x60, B: 0xc0, A: 0xff}

type params struct {
	path_xlsx, sheet, path_out, format string
	kind, title                        string
	width, height, progress            float64
	header                             bool
}

func parse_color(s string) (color.NRGBA, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return color.NRGBA{}, err
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}, nil
}

func rows_to_entries(rows [][]string, header bool) ([]chart.Entry, error) {
	entries := []chart.Entry{}
	in_err := false
	for n, row := range rows {
		if header && n == 0 {
			continue
		}
		if len(row) == 0 || (len(row) == 1 && strings.TrimSpace(row[0]) == "") {
			continue
		}
		if len(row) < 2 {
			log.Printf("row %d: wanted at least two columns, got %d\n", n+1, len(row))
			in_err = true
			continue
		}
		val, err := strconv.ParseFloat(strings.TrimSpace(row[1]), 64)
		if err != nil {
			log.Printf("row %d: bad value: %v\n", n+1, err)
			in_err = true
			continue
		}
		e := chart.Entry{
			Label: row[0],
			Value: val,
			Color: default_color,
		}
		if len(row) > 2 {
			e.ValueLabel = row[2]
		}
		if len(row) > 3 && row[3] != "" {
			c, err := parse_color(strings.TrimSpace(row[3]))
			if err != nil {
				log.Printf("row %d: bad color: %v\n", n+1, err)
				in_err = true
				continue
			}
			e.Color = c
		}
		entries = append(entries, e)
	}
	if in_err {
		return nil, errors.New("sheet contained errors")
	}
	if len(entries) == 0 {
		return nil, errors.New("sheet contains no entries")
	}
	return entries, nil
}

func load_entries(path, sheet string, header bool) ([]chart.Entry, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Println("warning: error when closing workbook: ", err)
		}
	}()
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, errors.New("workbook has no sheets")
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("cannot read sheet %q: %w", sheet, err)
	}
	return rows_to_entries(rows, header)
}

func parse_kind(s string) (chart.Kind, error) {
	switch s {
	case "point":
		return chart.KindPoint, nil
	case "line":
		return chart.KindLine, nil
	}
	return chart.KindPoint, fmt.Errorf("unknown chart kind: %q", s)
}

func run(p *params) error {
	kind, err := parse_kind(p.kind)
	if err != nil {
		return err
	}
	if !(p.progress >= 0 && p.progress <= 1) {
		return fmt.Errorf("progress %v not within [0, 1]", p.progress)
	}
	if p.width <= 0 || p.height <= 0 {
		return errors.New("width and height must be positive")
	}
	entries, err := load_entries(p.path_xlsx, p.sheet, p.header)
	if err != nil {
		return err
	}
	c := chart.New(chart.DefaultConfig(kind), entries)

	out, err := os.Create(p.path_out)
	if err != nil {
		return err
	}
	if p.title == "" {
		_, err = vgsurface.Render(out, c, chart.Size{Width: p.width, Height: p.height}, p.format, p.progress)
	} else {
		err = render_titled(out, c, p)
	}
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		if rerr := os.Remove(p.path_out); rerr != nil {
			log.Println("warning: cannot remove partial output: ", rerr)
		}
	}
	return err
}

// render_titled draws c under a title by letting gonum/plot lay out the
// title and padding around it.
func render_titled(w io.Writer, c *chart.Chart, p *params) error {
	plt, pl := vgsurface.Titled(c, p.title, p.progress)
	wt, err := plt.WriterTo(vg.Length(p.width), vg.Length(p.height), p.format)
	if err != nil {
		return err
	}
	if pl.Err != nil {
		return pl.Err
	}
	_, err = wt.WriteTo(w)
	return err
}

func main() {
	p := &params{}

	flag.StringVar(&p.path_xlsx, "xlsx", "", "Path to the workbook to chart")
	flag.StringVar(&p.sheet, "sheet", "", "Sheet to read, the first one if empty")
	flag.StringVar(&p.path_out, "out", "chart.svg", "Path of the image to write")
	flag.StringVar(&p.format, "format", "svg", "Image format: svg, png, pdf, eps, jpg or tif")
	flag.StringVar(&p.kind, "kind", "point", "Chart kind: point or line")
	flag.StringVar(&p.title, "title", "", "Title drawn above the chart")
	flag.Float64Var(&p.width, "width", 600, "Image width")
	flag.Float64Var(&p.height, "height", 300, "Image height")
	flag.Float64Var(&p.progress, "progress", 1, "Animation progress to draw, within [0, 1]")
	flag.BoolVar(&p.header, "header", false, "Skip the first row of the sheet")
	flag.Parse()

	if p.path_xlsx == "" {
		log.Fatal("missing -xlsx")
	}
	if err := run(p); err != nil {
		log.Fatal(err)
	}
	log.Println("wrote ", p.path_out)
}
