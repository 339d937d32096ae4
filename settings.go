package main

import (
	"image/color"
	"regexp"
	"time"
)

const (
	FLAG_CONFIG_PATH    = "config-path"
	DEFAULT_CONFIG_PATH = "/etc/lilchart/lilchart.ini"
	HELP_CONFIG_PATH    = "Filepath to lilchart configuration file"

	FLAG_OUT_DIR    = "out-dir"
	DEFAULT_OUT_DIR = "."
	HELP_OUT_DIR    = "Directory where rendered charts are written"

	FLAG_FRAMES    = "frames"
	DEFAULT_FRAMES = 1
	HELP_FRAMES    = "How many animation frames to render per chart"

	FLAG_METRIC = "metric"
	HELP_METRIC = "Render only this metric"

	DEFAULT_DB_PATH = "/var/lilchart/db/lilchart.sqlite"
	DEFAULT_SHELL   = "/bin/sh"
	DEFAULT_ADDR    = "localhost:15515"
)

const (
	DEFAULT_GRAPH_WIDTH        = 600
	DEFAULT_GRAPH_HEIGHT       = 300
	DEFAULT_MAX_ENTRIES        = 24
	DEFAULT_LABEL_TEXT_SIZE    = 10
	DEFAULT_RETENTION_TIME     = 90 * 24 * time.Hour
	DEFAULT_REFRESH_PERIOD     = 2 * time.Minute
	DEFAULT_PRUNE_PERIOD       = 15 * time.Minute
	DEFAULT_MEASUREMENT_PERIOD = 1 * time.Minute
	DEFAULT_GRAPH_FORMAT       = "svg"
	DEFAULT_GRAPH_MIMETYPE     = "image/svg+xml"
	DEFAULT_TIMESTAMP_FORMAT   = "15:04"
	MAX_GRAPH_DIMENSION        = 8192
	CONFIG_DELIM               = "|"
)

var (
	COLOR_BG    = color.NRGBA{255, 255, 255, 255}
	COLOR_FG    = color.NRGBA{255, 0, 0, 255}
	COLOR_LABEL = color.NRGBA{0, 0, 0, 255}
	COLOR_BAND  = color.NRGBA{0, 0, 255, 255}
)

var (
	RE_NAME = regexp.MustCompile("^[_a-zA-Z0-9]{1,512}$")
)
