package main

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/susji/tinyini"

	"github.com/susji/lilchart/chart"
)

func config_load(r io.Reader) (*config, error) {
	sections, errs := tinyini.Parse(r)
	if len(errs) != 0 {
		log.Println("errors when reading configuration file")
		for n, err := range errs {
			log.Printf("[%d] %v\n", n+1, err)
		}
		return nil, errors.New("invalid configuration file")
	}
	return &config{
		sections: sections,
	}, nil
}

func config_load_file(filepath string) (*config, error) {
	log.Println("attempting to read settings from ", filepath)
	f, err := os.Open(filepath)
	if err != nil {
		log.Println("cannot open configuration file for reading: ", err)
		return nil, err
	}
	defer f.Close()
	c, err := config_load(f)
	if err != nil {
		return nil, fmt.Errorf("unable to handle configuration file %q: %w", filepath, err)
	}
	return c, nil
}

func config_parse_color(value string) (color.NRGBA, error) {
	c, err := colorful.Hex(value)
	if err != nil {
		return color.NRGBA{}, err
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
}

func config_parse_orientation(value string, none_ok bool) (chart.Orientation, error) {
	switch value {
	case "vertical":
		return chart.OrientationVertical, nil
	case "horizontal":
		return chart.OrientationHorizontal, nil
	case "none":
		if none_ok {
			return chart.OrientationNone, nil
		}
	}
	return chart.OrientationDefault, fmt.Errorf("unknown orientation: %q", value)
}

func config_parse_metric_options(options string) (graph_options, []error) {
	ret := graph_options{}
	errs := []error{}
	for _, option := range strings.Split(strings.TrimSpace(options), ",") {
		split := strings.SplitN(option, "=", 2)
		key := strings.TrimSpace(strings.ToLower(split[0]))

		if len(key) == 0 {
			continue
		}

		var raw, value string
		if len(split) == 2 {
			raw = strings.TrimSpace(split[1])
			value = strings.ToLower(raw)
		}

		var err error
		switch key {
		case "kind":
			switch value {
			case "point":
				ret.kind = chart.KindPoint
			case "line":
				ret.kind = chart.KindLine
			default:
				err = fmt.Errorf("unknown chart kind: %q", value)
			}
		case "line":
			switch value {
			case "spline":
				ret.line = chart.LineSpline
			case "straight":
				ret.line = chart.LineStraight
			case "none":
				ret.line = chart.LineNone
			default:
				err = fmt.Errorf("unknown line mode: %q", value)
			}
		case "points":
			switch value {
			case "circle":
				ret.points = chart.PointCircle
			case "square":
				ret.points = chart.PointSquare
			case "none":
				ret.points = chart.PointNone
			default:
				err = fmt.Errorf("unknown point mode: %q", value)
			}
		case "labels":
			ret.labels, err = config_parse_orientation(value, false)
		case "value_labels":
			ret.value_labels, err = config_parse_orientation(value, true)
		case "y_axis":
			switch value {
			case "left":
				ret.y_axis = chart.PositionLeft
			case "right":
				ret.y_axis = chart.PositionRight
			case "none":
				ret.y_axis_hidden = true
			default:
				err = fmt.Errorf("unknown y axis position: %q", value)
			}
		case "y_ticks":
			ret.y_ticks, err = strconv.Atoi(value)
			if err == nil && ret.y_ticks < 1 {
				err = errors.New("y_ticks must be at least 1")
			}
		case "y_min":
			val, perr := strconv.ParseFloat(value, 64)
			if perr != nil {
				err = fmt.Errorf("bad y_min value: %w", perr)
			}
			ret.y_min = &val
		case "y_max":
			val, perr := strconv.ParseFloat(value, 64)
			if perr != nil {
				err = fmt.Errorf("bad y_max value: %w", perr)
			}
			ret.y_max = &val
		case "area_alpha":
			val, perr := strconv.ParseUint(value, 10, 8)
			if perr != nil {
				err = fmt.Errorf("bad area_alpha value: %w", perr)
			}
			alpha := uint8(val)
			ret.area_alpha = &alpha
		case "color":
			c, perr := config_parse_color(value)
			if perr != nil {
				err = fmt.Errorf("bad color value: %w", perr)
			}
			ret.color = &c
		case "band_from":
			ret.band_from = raw
		case "band_to":
			ret.band_to = raw
		case "fade":
			ret.fade = true
		case "tooltip":
			ret.tooltip = true
		case "kibi":
			ret.kibi = true
		case "kilo":
			ret.kilo = true
		default:
			err = fmt.Errorf("unrecognized graph option: %s", key)
		}
		if err != nil {
			errs = append(errs, err)
		}
	}
	if ret.kilo && ret.kibi {
		errs = append(errs, errors.New("kilo and kibi are mutually exclusive"))
	}
	if (ret.band_from == "") != (ret.band_to == "") {
		errs = append(errs, errors.New("band_from and band_to must be given together"))
	}
	if ret.y_min != nil && ret.y_max != nil && *ret.y_min > *ret.y_max {
		errs = append(errs, errors.New("y_min is above y_max"))
	}
	return ret, errs
}

func config_parse_metric_line(line string) (*metric, error) {
	vals := strings.SplitN(line, CONFIG_DELIM, 4)
	if len(vals) < 4 {
		return nil, fmt.Errorf(
			"line does not contain four %s-separated values, got %d",
			CONFIG_DELIM, len(vals))
	}
	options, errs := config_parse_metric_options(vals[2])
	if len(errs) > 0 {
		return nil, fmt.Errorf(
			"%s: invalid graph options: %v", vals[0], errs)

	}

	m := &metric{
		name:        vals[0],
		description: vals[1],
		options:     options,
		command:     vals[3],
	}

	return m, nil
}

func (c *config) parse_metrics() ([]*metric, error) {
	metrics := []*metric{}
	in_err := false
	for k, pairs := range c.sections["metrics"] {
		for _, pair := range pairs {
			switch k {
			case "metric":
				metric, err := config_parse_metric_line(pair.Value)
				if err != nil {
					log.Printf(
						"%d: parsing metric line failed: %v\n",
						pair.Lineno, err)
					in_err = true
					continue
				}
				metrics = append(metrics, metric)
			default:
				log.Printf(
					"metrics section supports only 'metric' definitions "+
						"but line %d has something else.", pair.Lineno)
				in_err = true
			}
		}

	}

	if err := validate_metrics(metrics); err != nil {
		log.Println("metrics validation failed: ", err)
		return nil, err
	}
	if in_err {
		return nil, errors.New("metrics section contained errors")
	}
	return metrics, nil
}

func (c *config) parse_common() (string, time.Duration, error) {
	var path_db string
	measure_period := DEFAULT_MEASUREMENT_PERIOD

	in_err := false

	for k, pairs := range c.sections[""] {
		for _, pair := range pairs {
			var err error
			switch k {
			case "path_db":
				path_db = pair.Value
			case "measure_period":
				measure_period, err = time.ParseDuration(pair.Value)
				if err == nil && measure_period.Seconds() < 1 {
					err = errors.New("must be at last 1 second")
				}
			default:
				err = fmt.Errorf("%d: unrecognized config item: %s",
					pair.Lineno, k)
			}
			if err != nil {
				log.Printf("%s: invalid value: %v", k, err)
				in_err = true
			}
		}
	}
	if in_err {
		return "", time.Duration(0), errors.New("errors in common section")
	}
	if path_db == "" {
		return "", time.Duration(0), errors.New("no database path in common section")
	}
	return path_db, measure_period, nil
}

func (c *config) parse_measure() (*config_measure, error) {
	ret := &config_measure{
		retention_time:  DEFAULT_RETENTION_TIME,
		prune_db_period: DEFAULT_PRUNE_PERIOD,
		path_db:         DEFAULT_DB_PATH,
		shell:           DEFAULT_SHELL,
	}

	in_err := false

	if path_db, measure_period, cerr := c.parse_common(); cerr == nil {
		ret.path_db = path_db
		ret.measure_period = measure_period

	} else {
		in_err = true
		log.Println(cerr)
	}

	for k, pairs := range c.sections["measure"] {
		for _, pair := range pairs {
			var err error
			switch k {
			case "retention_time":
				ret.retention_time, err = time.ParseDuration(pair.Value)
			case "prune_db_period":
				ret.prune_db_period, err = time.ParseDuration(pair.Value)
			case "shell":
				ret.shell = pair.Value
			default:
				err = fmt.Errorf(
					"%d: unrecognized config item: %s",
					pair.Lineno, k)
			}
			if err != nil {
				log.Printf("%s: invalid value: %v", k, err)
				in_err = true
			}
		}
	}
	if in_err {
		return nil, errors.New("parsing measure config failed")
	}

	return ret, nil
}

func (c *config) parse_serve() (*config_serve, error) {
	ret := &config_serve{
		width:  DEFAULT_GRAPH_WIDTH,
		height: DEFAULT_GRAPH_HEIGHT,

		max_entries:        DEFAULT_MAX_ENTRIES,
		autorefresh_period: DEFAULT_REFRESH_PERIOD,
		label_text_size:    DEFAULT_LABEL_TEXT_SIZE,
		timestamp_format:   DEFAULT_TIMESTAMP_FORMAT,

		graph_format:   DEFAULT_GRAPH_FORMAT,
		graph_mimetype: DEFAULT_GRAPH_MIMETYPE,

		path_db: DEFAULT_DB_PATH,

		listen_addr: DEFAULT_ADDR,
	}

	in_err := false

	if path_db, measure_period, cerr := c.parse_common(); cerr == nil {
		ret.path_db = path_db
		ret.measure_period = measure_period
	} else {
		in_err = true
		log.Println(cerr)
	}

	for k, pairs := range c.sections["serve"] {
		for _, pair := range pairs {
			var err error
			switch k {
			case "graph_width":
				ret.width, err = strconv.Atoi(pair.Value)
				if err == nil && (ret.width < 1 || ret.width > MAX_GRAPH_DIMENSION) {
					err = fmt.Errorf("must be within [1, %d]", MAX_GRAPH_DIMENSION)
				}
			case "graph_height":
				ret.height, err = strconv.Atoi(pair.Value)
				if err == nil && (ret.height < 1 || ret.height > MAX_GRAPH_DIMENSION) {
					err = fmt.Errorf("must be within [1, %d]", MAX_GRAPH_DIMENSION)
				}
			case "autorefresh_period":
				ret.autorefresh_period, err = time.ParseDuration(pair.Value)
			case "max_entries":
				ret.max_entries, err = strconv.Atoi(pair.Value)
				if err == nil && ret.max_entries < 1 {
					err = errors.New("must be greater than zero")
				}
			case "label_text_size":
				ret.label_text_size, err = strconv.ParseFloat(pair.Value, 64)
				if err == nil && ret.label_text_size <= 0 {
					err = errors.New("must be greater than zero")
				}
			case "timestamp_format":
				ret.timestamp_format = pair.Value
			case "graph_format":
				ret.graph_format = pair.Value
			case "graph_mimetype":
				ret.graph_mimetype = pair.Value
			case "listen_addr":
				ret.listen_addr = pair.Value
			case "path_template":
				ret.path_template = pair.Value
			default:
				err = fmt.Errorf(
					"%d: unrecognized config item: %s",
					pair.Lineno, k)
			}
			if err != nil {
				log.Printf("%s: invalid value: %v", k, err)
				in_err = true
			}
		}
	}
	if in_err {
		return nil, errors.New("parsing serve config failed")
	}

	return ret, nil
}
