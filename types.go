package main

import (
	"image/color"
	"time"

	"github.com/susji/tinyini"

	"github.com/susji/lilchart/chart"
)

type config struct {
	sections map[string]tinyini.Section
}

type config_measure struct {
	path_db         string
	shell           string
	measure_period  time.Duration
	retention_time  time.Duration
	prune_db_period time.Duration
}

type config_serve struct {
	path_db        string
	path_template  string
	measure_period time.Duration

	listen_addr string

	width, height  int
	graph_format   string
	graph_mimetype string

	max_entries        int
	autorefresh_period time.Duration
	label_text_size    float64
	timestamp_format   string
}

type params_render struct {
	config_path string
	out_dir     string
	frames      int
	metric      string
}

// graph_options are the per-metric chart settings given in the third field
// of a metric line.
type graph_options struct {
	kind         chart.Kind
	line         chart.LineMode
	points       chart.PointMode
	labels       chart.Orientation
	value_labels chart.Orientation

	y_axis        chart.Position
	y_axis_hidden bool
	y_ticks       int
	y_min, y_max  *float64

	area_alpha *uint8
	fade       bool
	tooltip    bool
	color      *color.NRGBA

	band_from, band_to string

	kilo, kibi bool
}

type metric struct {
	name, description, command string
	options                    graph_options
}

type measurement struct {
	metric *metric
	value  float64
}

type datapoint struct {
	ts    time.Time
	value float64
}

const (
	DB_TASK_PRUNE_TABLE = iota
	DB_TASK_INSERT
)

type db_task struct {
	kind int

	prune_metric_name      string
	prune_retention_period time.Duration

	insert_measurement *measurement
}
