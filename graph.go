package main

import (
	"math"
	"strconv"

	"github.com/susji/lilchart/chart"
)

func val_to_unit_prefix_base10(v float64) (bool, float64, string) {
	var d int64
	var s string

	switch {
	case v >= 1000*1000*1000*1000*1000*1000:
		d = 1000 * 1000 * 1000 * 1000 * 1000 * 1000
		s = "E"
	case v >= 1000*1000*1000*1000*1000:
		d = 1000 * 1000 * 1000 * 1000 * 1000
		s = "P"
	case v >= 1000*1000*1000*1000:
		d = 1000 * 1000 * 1000 * 1000
		s = "T"
	case v >= 1000*1000*1000:
		d = 1000 * 1000 * 1000
		s = "G"
	case v >= 1000*1000:
		d = 1000 * 1000
		s = "M"
	case v >= 1000:
		d = 1000
		s = "k"
	default:
		return false, v, ""
	}
	return true, v / float64(d), s
}

func val_to_unit_prefix_base2(v float64) (bool, float64, string) {
	var d int64
	var s string

	switch {
	case v >= 1024*1024*1024*1024*1024*1024:
		d = 1024 * 1024 * 1024 * 1024 * 1024 * 1024
		s = "Ei"
	case v >= 1024*1024*1024*1024*1024:
		d = 1024 * 1024 * 1024 * 1024 * 1024
		s = "Pi"
	case v >= 1024*1024*1024*1024:
		d = 1024 * 1024 * 1024 * 1024
		s = "Ti"
	case v >= 1024*1024*1024:
		d = 1024 * 1024 * 1024
		s = "Gi"
	case v >= 1024*1024:
		d = 1024 * 1024
		s = "Mi"
	case v >= 1024:
		d = 1024
		s = "Ki"
	default:
		return false, v, ""
	}
	return true, v / float64(d), s
}

func val_format_for_printing(v float64) string {
	return strconv.FormatFloat(v, 'g', 3, 64)
}

// val_formatter returns the formatter for tick and value labels of a
// metric. Prefixes are chosen by magnitude so negative values get them too.
func val_formatter(opts graph_options) func(float64) string {
	var transform func(float64) (bool, float64, string)
	switch {
	case opts.kilo:
		transform = val_to_unit_prefix_base10
	case opts.kibi:
		transform = val_to_unit_prefix_base2
	default:
		return val_format_for_printing
	}
	return func(v float64) string {
		changed, vt, s := transform(math.Abs(v))
		if !changed {
			return val_format_for_printing(v)
		}
		if v < 0 {
			vt = -vt
		}
		return val_format_for_printing(vt) + " " + s
	}
}

func graph_config(m *metric, sconfig *config_serve) chart.Config {
	opts := m.options
	cfg := chart.DefaultConfig(opts.kind)
	cfg.Margin = sconfig.label_text_size
	cfg.LabelTextSize = sconfig.label_text_size
	cfg.YAxisTextSize = sconfig.label_text_size
	cfg.TooltipTextSize = 1.5 * sconfig.label_text_size
	cfg.TooltipYOffset = sconfig.label_text_size
	cfg.TooltipRadius = sconfig.label_text_size / 2
	cfg.BackgroundColor = COLOR_BG
	cfg.YAxisTextColor = COLOR_LABEL
	cfg.FormatTick = val_formatter(opts)

	cfg.LineMode = opts.line
	cfg.PointMode = opts.points
	cfg.LabelOrientation = opts.labels
	cfg.ValueLabelOrientation = opts.value_labels
	if opts.value_labels == chart.OrientationDefault {
		cfg.ValueLabelOrientation = chart.OrientationNone
	}

	cfg.ShowYAxisText = !opts.y_axis_hidden
	cfg.ShowYAxisLines = !opts.y_axis_hidden
	cfg.YAxisPosition = opts.y_axis
	if opts.y_ticks > 0 {
		cfg.YAxisMaxTicks = opts.y_ticks
	}
	cfg.MinValue = opts.y_min
	cfg.MaxValue = opts.y_max

	if opts.area_alpha != nil {
		cfg.LineAreaAlpha = *opts.area_alpha
		cfg.PointAreaAlpha = *opts.area_alpha
	}
	cfg.YFadeOut = opts.fade
	cfg.TooltipEnabled = opts.tooltip
	return cfg
}

// graph_build turns the datapoints of m into a chart. When the metric has
// a band, from and to hold the datapoints of the band metrics; all series
// are cut to their common latest length so that indices correspond.
func graph_build(m *metric, dps, from, to []datapoint, sconfig *config_serve) *chart.Chart {
	cfg := graph_config(m, sconfig)
	fg := COLOR_FG
	if m.options.color != nil {
		fg = *m.options.color
	}

	// A band whose metrics have no datapoints yet is left out.
	band := m.options.band_from != "" && len(from) > 0 && len(to) > 0
	n := len(dps)
	if band {
		n = min(n, len(from), len(to))
		from = from[len(from)-n:]
		to = to[len(to)-n:]
	}
	dps = dps[len(dps)-n:]

	entries := make([]chart.Entry, n)
	for i, dp := range dps {
		entries[i] = chart.Entry{
			Value:      dp.value,
			Label:      dp.ts.Local().Format(sconfig.timestamp_format),
			ValueLabel: cfg.FormatTick(dp.value),
			Color:      fg,
		}
	}
	c := chart.New(cfg, entries)
	if band {
		c.AreaEntries = make([]chart.AreaEntry, n)
		for i := range c.AreaEntries {
			c.AreaEntries[i] = chart.AreaEntry{
				FromValue: from[i].value,
				ToValue:   to[i].value,
				Color:     COLOR_BAND,
			}
		}
	}
	return c
}
