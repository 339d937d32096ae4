package main

import (
	"bytes"
	"context"
	"fmt"
	"image/color"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/susji/lilchart/chart"
	"github.com/susji/lilchart/chart/vgsurface"
)

var test_config = `
path_db=/somewhere/db
measure_period=150s

[measure]
retention_time=21600h
prune_db_period=300m
shell=/bin/zsh

[serve]
listen_addr=localhost:15516
path_template=/somewhere/template
graph_width=3000
graph_height=1000
max_entries=48
autorefresh_period=600s
label_text_size=14
timestamp_format=15:04:05
graph_format=png
graph_mimetype=image/png

[metrics]
metric=n_temp_files|Files in /tmp|y_min=0,kilo|find /tmp/ -type f|wc -l
metric=n_processes|Visible processes (all users)|kind=line,y_min=0,y_max=1000,tooltip|ps -A|wc -l
metric=load_band|Load between min and max|kind=line,band_from=n_temp_files,band_to=n_processes,color=#00ff00|uptime|wc -c
metric="n_subshell_constant|Plain silly||{ echo -n \"one\"; echo -n two; echo -n three; }|wc -c"
`

var test_metrics = []*metric{
	{
		name:        "test_metric_1",
		description: "a simple test metric",
		command:     `echo hello world!|wc -c`,
		options: graph_options{
			kind:    chart.KindLine,
			tooltip: true,
		},
	},
	{
		name:        "test_metric_2",
		description: "lower bound",
		command:     `echo 1`,
	},
	{
		name:        "test_metric_3",
		description: "upper bound",
		command:     `echo 2`,
	},
	{
		name:        "test_band",
		description: "a band between two metrics",
		command:     `echo 3`,
		options: graph_options{
			kind:      chart.KindLine,
			band_from: "test_metric_2",
			band_to:   "test_metric_3",
		},
	},
}

func assert(t *testing.T, cond bool, msg ...interface{}) {
	t.Helper()
	if cond {
		return
	}
	t.Error(msg...)
}

func assertf(t *testing.T, cond bool, format string, msg ...interface{}) {
	t.Helper()
	if cond {
		return
	}
	t.Errorf(format, msg...)
}

func almost_equals(a, b float64) bool {
	return math.Abs(a-b) < 0.001
}

func test_serve_config() *config_serve {
	return &config_serve{
		width:              400,
		height:             200,
		graph_format:       "svg",
		graph_mimetype:     "image/svg+xml",
		max_entries:        10,
		autorefresh_period: time.Minute,
		label_text_size:    10,
		timestamp_format:   DEFAULT_TIMESTAMP_FORMAT,
	}
}

func test_db_fill(t *testing.T, values map[string][]float64) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	db := db_init(path)
	defer db.Close()
	if err := db_migrate(db, test_metrics); err != nil {
		t.Fatal("cannot migrate:", err)
	}
	for name, vals := range values {
		for _, v := range vals {
			_, err := db.Exec(
				fmt.Sprintf(`INSERT INTO %s (value) VALUES (?)`,
					db_table_name_get(&metric{name: name})),
				v)
			if err != nil {
				t.Fatal("cannot insert:", err)
			}
		}
	}
	return path
}

func TestMetricNames(t *testing.T) {
	valid_names := []string{
		"some_metric_1",
		"another_metric",
		"good",
		"yezzz_1010101",
		"verylooooooooooOOOOOOOOOOOOOOOOOOOOOOoooooooooong_name",
		"mittari",
		"1231903",
	}
	invalid_names := []string{
		"abc-",
		"'",
		`"`,
		" ",
		";",
		"';delete from sqlite_master where type in ('view', 'table', 'index', 'trigger');",
		"';DROP TABLE BOO;",
		`<a href="badsite.example.com">click here now to win prize</a>`,
		`<script>alert("AAAA")</script>`,
	}

	for n, valid_name := range valid_names {
		t.Run(fmt.Sprintf("%d_%s", n, valid_name), func(t *testing.T) {
			if !is_metric_name_valid(&metric{name: valid_name}) {
				t.Error("should be valid but is not: ", n, valid_name)
			}
		})
	}
	for n, invalid_name := range invalid_names {
		t.Run(fmt.Sprintf("%d_%s", n, invalid_name), func(t *testing.T) {
			if is_metric_name_valid(&metric{name: invalid_name}) {
				t.Error("should be invalid but is not: ", n, invalid_name)
			}
		})
	}
}

func TestValidateMetrics(t *testing.T) {
	assert(t, validate_metrics(test_metrics) == nil, "test metrics should validate")

	dangling := []*metric{
		{name: "a", options: graph_options{band_from: "a", band_to: "nope"}},
	}
	assert(t, validate_metrics(dangling) != nil, "band to an unknown metric validated")

	duplicate := []*metric{{name: "a"}, {name: "a"}}
	assert(t, validate_metrics(duplicate) != nil, "duplicate names validated")
}

func TestDatabaseSmoke(t *testing.T) {
	path := test_db_fill(t, map[string][]float64{
		"test_metric_1": {123, 456, 789},
	})
	db := db_init(path)
	defer db.Close()

	dps, err := db_datapoints_get(db, test_metrics[0], 2)
	assert(t, err == nil, "cannot get datapoints:", err)
	if len(dps) != 2 {
		t.Fatal("unexpected amount of datapoints:", len(dps))
	}
	assert(t, almost_equals(dps[0].value, 456), "unexpected first value:", dps[0].value)
	assert(t, almost_equals(dps[1].value, 789), "unexpected last value:", dps[1].value)
	assert(t, !dps[0].ts.IsZero(), "timestamp missing")

	dps, err = db_datapoints_get(db, test_metrics[1], 2)
	assert(t, err == nil && len(dps) == 0, "empty metric returned", dps, err)
}

func TestDatabaseWriter(t *testing.T) {
	path := test_db_fill(t, nil)
	db := db_init(path)
	defer db.Close()

	ctx, cf := context.WithCancel(context.Background())
	defer cf()
	tc := make(chan db_task)
	go db_writer(ctx, db, tc)
	tc <- db_task{
		kind:               DB_TASK_INSERT,
		insert_measurement: &measurement{metric: test_metrics[1], value: 42},
	}
	// Pruning with a long retention keeps the fresh row. The unbuffered
	// send returns once the writer has taken the task, and the writer only
	// takes the next task after finishing the previous one.
	tc <- db_task{
		kind:                   DB_TASK_PRUNE_TABLE,
		prune_metric_name:      test_metrics[1].name,
		prune_retention_period: time.Hour,
	}
	tc <- db_task{
		kind:                   DB_TASK_PRUNE_TABLE,
		prune_metric_name:      test_metrics[1].name,
		prune_retention_period: time.Hour,
	}

	dps, err := db_datapoints_get(db, test_metrics[1], 10)
	assert(t, err == nil, "cannot get datapoints:", err)
	if len(dps) != 1 {
		t.Fatal("unexpected amount of datapoints:", len(dps))
	}
	assert(t, almost_equals(dps[0].value, 42), "unexpected value:", dps[0].value)
}

func TestMeasureMetric(t *testing.T) {
	// Just in case...
	ctx, cf := context.WithTimeout(context.Background(), 30*time.Second)
	defer cf()
	tc := make(chan db_task)
	go exec_metric(ctx, test_metrics[0], "/bin/sh", 1, tc)
	result := <-tc
	t.Log(result.kind, result.insert_measurement.metric, result.insert_measurement.value)
	if result.kind != DB_TASK_INSERT {
		t.Error("wanted db insertion, got ", result.kind)
	}
	if !almost_equals(result.insert_measurement.value, float64(len("hello world!\n"))) {
		t.Error("unexpected measurement value")
	}
}

func TestParseMetricLine(t *testing.T) {
	badlines := []string{
		"asd|asd",
		"",
		"1",
		"name|desc|kind=pie|echo 1",
	}
	for n, badline := range badlines {
		t.Run(fmt.Sprintf("%d_%s", n+1, badline), func(t *testing.T) {
			_, err := config_parse_metric_line(badline)
			if err == nil {
				t.Error("should've failed but did not")
			}
		})
	}

	type goodentry struct {
		line, want_name, want_desc, want_command string
	}

	goodentries := []goodentry{
		{
			line:         "something|description here||echo this is command|wc -c",
			want_name:    "something",
			want_desc:    "description here",
			want_command: "echo this is command|wc -c",
		},
	}
	for n, goodentry := range goodentries {
		t.Run(fmt.Sprintf("%d_%s", n+1, goodentry.line), func(t *testing.T) {
			m, err := config_parse_metric_line(goodentry.line)
			if err != nil {
				t.Fatal("should've succeeded but did not:", err)
			}
			if m.name != goodentry.want_name {
				t.Error("unexpected name, got ", m.name)
			}
			if m.description != goodentry.want_desc {
				t.Error("unexpected desc, got ", m.description)
			}
			if m.command != goodentry.want_command {
				t.Error("unexpected command, got ", m.command)
			}
		})

	}
}

func TestParseOptions(t *testing.T) {
	y_min := -10.0
	y_max := 20.5
	alpha := uint8(80)
	green := color.NRGBA{0, 0xff, 0, 0xff}
	table := []struct {
		give string
		want graph_options
	}{
		{
			give: "",
			want: graph_options{},
		},
		{
			give: "kibi",
			want: graph_options{kibi: true},
		},
		{
			give: "kind=line, line=straight, points=square",
			want: graph_options{kind: chart.KindLine, line: chart.LineStraight, points: chart.PointSquare},
		},
		{
			give: "labels=horizontal,value_labels=none",
			want: graph_options{labels: chart.OrientationHorizontal, value_labels: chart.OrientationNone},
		},
		{
			give: "y_axis=left,y_ticks=8",
			want: graph_options{y_axis: chart.PositionLeft, y_ticks: 8},
		},
		{
			give: "y_axis=none",
			want: graph_options{y_axis_hidden: true},
		},
		{
			give: "y_min=-10, y_max = 20.5 ",
			want: graph_options{y_min: &y_min, y_max: &y_max},
		},
		{
			give: "area_alpha=80,fade,tooltip,color=#00FF00",
			want: graph_options{area_alpha: &alpha, fade: true, tooltip: true, color: &green},
		},
		{
			give: "band_from=Low_Metric,band_to=high",
			want: graph_options{band_from: "Low_Metric", band_to: "high"},
		},
	}

	for n, entry := range table {
		t.Run(fmt.Sprintf("%d_%s", n+1, entry.give), func(t *testing.T) {
			got, errs := config_parse_metric_options(entry.give)
			if len(errs) > 0 {
				t.Error("should not fail but: ", errs)
			}
			if !reflect.DeepEqual(got, entry.want) {
				t.Errorf(
					"wanted %#v, got %#v",
					entry.want, got)
			}
		})
	}

	bad := []string{
		"deriv",
		"kind=pie",
		"line=wobbly",
		"labels=none",
		"y_ticks=0",
		"y_min=abc",
		"area_alpha=256",
		"color=red",
		"band_from=a",
		"kilo,kibi",
		"y_min=5,y_max=1",
	}
	for n, give := range bad {
		t.Run(fmt.Sprintf("bad_%d_%s", n+1, give), func(t *testing.T) {
			_, errs := config_parse_metric_options(give)
			if len(errs) == 0 {
				t.Error("should've failed but did not")
			}
		})
	}
}

func TestParseConfig(t *testing.T) {
	b := bytes.NewBufferString(test_config)
	c, err := config_load(b)
	if err != nil {
		t.Fatal(err)
	}

	mc, err := c.parse_measure()
	if err != nil {
		t.Fatal("measure:", err)
	}

	sc, err := c.parse_serve()
	if err != nil {
		t.Fatal("serve:", err)
	}

	metrics, err := c.parse_metrics()
	if err != nil {
		t.Fatal("metrics:", err)
	}
	got_metrics := 0
	for _, m := range metrics {
		switch m.name {
		case "n_temp_files":
			got_metrics |= 1
			assertf(t,
				m.command == `find /tmp/ -type f|wc -l`,
				"unexpected %s command: %s", m.name, m.command)
			assertf(t,
				m.description == "Files in /tmp",
				"unexpected description for %s: %s", m.name, m.description)
			assertf(t,
				*m.options.y_min == float64(0),
				"unexpected y_min for %s: %v", m.name, m.options.y_min)
			assertf(t,
				m.options.y_max == nil,
				"unexpected y_max for %s: %v", m.name, m.options.y_max)
			assertf(t,
				m.options.kilo == true,
				"unexpected kilo for %s: %v", m.name, m.options.kilo)
			assertf(t,
				m.options.kind == chart.KindPoint,
				"unexpected kind for %s: %v", m.name, m.options.kind)
		case "n_processes":
			got_metrics |= 2
			assertf(t,
				m.options.kind == chart.KindLine,
				"unexpected kind for %s: %v", m.name, m.options.kind)
			assertf(t,
				*m.options.y_max == float64(1000),
				"unexpected y_max for %s: %v", m.name, m.options.y_max)
			assertf(t,
				m.options.tooltip,
				"tooltip not enabled for %s", m.name)
		case "load_band":
			got_metrics |= 4
			assertf(t,
				m.options.band_from == "n_temp_files" && m.options.band_to == "n_processes",
				"unexpected band for %s: %s, %s", m.name, m.options.band_from, m.options.band_to)
			assertf(t,
				*m.options.color == color.NRGBA{0, 0xff, 0, 0xff},
				"unexpected color for %s: %v", m.name, m.options.color)
		case "n_subshell_constant":
			got_metrics |= 8
			assertf(t,
				m.command == `{ echo -n "one"; echo -n two; echo -n three; }|wc -c`,
				"unexpected %s command: %s", m.name, m.command)
		default:
			t.Error("unexpected metric: ", m.name)
		}
	}
	assertf(t, got_metrics == 15, "missing metrics: %b", got_metrics)

	assert(t, mc.path_db == "/somewhere/db", "unexpected path_db:", mc.path_db)
	assert(t, mc.measure_period == 150*time.Second, "unexpected measure_period:", mc.measure_period)
	assert(t, mc.retention_time == 21600*time.Hour, "unexpected retention_time:", mc.retention_time)
	assert(t, mc.prune_db_period == 300*time.Minute, "unexpected prune_db_period:", mc.prune_db_period)
	assert(t, mc.shell == "/bin/zsh", "unexpected shell:", mc.shell)

	assert(t, sc.listen_addr == "localhost:15516", "unexpected listen_addr:", sc.listen_addr)
	assert(t, sc.path_template == "/somewhere/template", "unexpected path_template:", sc.path_template)
	assert(t, sc.width == 3000 && sc.height == 1000, "unexpected dimensions:", sc.width, sc.height)
	assert(t, sc.max_entries == 48, "unexpected max_entries:", sc.max_entries)
	assert(t, sc.autorefresh_period == 600*time.Second, "unexpected autorefresh_period:", sc.autorefresh_period)
	assert(t, almost_equals(sc.label_text_size, 14), "unexpected label_text_size:", sc.label_text_size)
	assert(t, sc.timestamp_format == "15:04:05", "unexpected timestamp_format:", sc.timestamp_format)
	assert(t, sc.graph_format == "png", "unexpected graph_format:", sc.graph_format)
	assert(t, sc.graph_mimetype == "image/png", "unexpected graph_mimetype:", sc.graph_mimetype)
}

func TestParseConfigErrors(t *testing.T) {
	bad := []string{
		"measure_period=100ms\npath_db=/x\n",
		"[serve]\ngraph_width=-1\n",
		"path_db=/x\n[serve]\nmax_entries=0\n",
		"path_db=/x\n[serve]\nunknown=1\n",
	}
	for n, give := range bad {
		t.Run(fmt.Sprintf("%d", n+1), func(t *testing.T) {
			c, err := config_load(bytes.NewBufferString(give))
			if err != nil {
				t.Fatal(err)
			}
			_, err = c.parse_serve()
			assert(t, err != nil, "should've failed but did not")
		})
	}
}

func TestValueFormatter(t *testing.T) {
	table := []struct {
		opts graph_options
		give float64
		want string
	}{
		{graph_options{}, 12.345, "12.3"},
		{graph_options{}, 1500, "1.5e+03"},
		{graph_options{kilo: true}, 1500, "1.5 k"},
		{graph_options{kilo: true}, -2500000, "-2.5 M"},
		{graph_options{kilo: true}, 999, "999"},
		{graph_options{kibi: true}, 2048, "2 Ki"},
		{graph_options{kibi: true}, 3 * 1024 * 1024 * 1024, "3 Gi"},
	}
	for n, entry := range table {
		t.Run(fmt.Sprintf("%d_%s", n+1, entry.want), func(t *testing.T) {
			got := val_formatter(entry.opts)(entry.give)
			assertf(t, got == entry.want, "wanted %q, got %q", entry.want, got)
		})
	}
}

func TestGraphBuild(t *testing.T) {
	ts := time.Date(2020, 1, 1, 12, 0, 0, 0, time.Local)
	mk := func(vals ...float64) []datapoint {
		dps := []datapoint{}
		for n, v := range vals {
			dps = append(dps, datapoint{ts: ts.Add(time.Duration(n) * time.Minute), value: v})
		}
		return dps
	}

	sconfig := test_serve_config()
	c := graph_build(test_metrics[0], mk(1, 2, 3), nil, nil, sconfig)
	if len(c.Entries) != 3 {
		t.Fatal("unexpected amount of entries:", len(c.Entries))
	}
	assert(t, c.Entries[1].Label == "12:01", "unexpected label:", c.Entries[1].Label)
	assert(t, c.Entries[2].ValueLabel == "3", "unexpected value label:", c.Entries[2].ValueLabel)
	assert(t, c.Entries[0].Color == COLOR_FG, "unexpected color:", c.Entries[0].Color)
	assert(t, c.Config.Kind == chart.KindLine, "unexpected kind:", c.Config.Kind)
	assert(t, c.Config.TooltipEnabled, "tooltip not enabled")
	assert(t, c.Config.ShowYAxisText, "y axis hidden")
	assert(t, c.Config.ValueLabelOrientation == chart.OrientationNone, "value labels shown by default")
	assert(t, len(c.AreaEntries) == 0, "unexpected band")

	band := graph_build(test_metrics[3], mk(1, 2, 3, 4), mk(5, 6, 7), mk(8, 9, 10, 11, 12), sconfig)
	if len(band.Entries) != 3 || len(band.AreaEntries) != 3 {
		t.Fatal("series not aligned:", len(band.Entries), len(band.AreaEntries))
	}
	assert(t, band.Entries[0].Value == 2, "entries not cut to the latest:", band.Entries[0].Value)
	assert(t, band.AreaEntries[0].FromValue == 5, "unexpected from:", band.AreaEntries[0].FromValue)
	assert(t, band.AreaEntries[2].ToValue == 12, "unexpected to:", band.AreaEntries[2].ToValue)

	pending := graph_build(test_metrics[3], mk(1, 2, 3), nil, mk(4), sconfig)
	assert(t, len(pending.Entries) == 3, "entries lost while band is pending:", len(pending.Entries))
	assert(t, len(pending.AreaEntries) == 0, "band drawn without datapoints")
}

func TestServeChartBandPending(t *testing.T) {
	path := test_db_fill(t, map[string][]float64{
		"test_band": {2, 3, 4},
	})
	db := db_init(path)
	defer db.Close()

	mux, err := serve_mux(db, test_metrics, test_serve_config())
	if err != nil {
		t.Fatal(err)
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/chart?metric=test_band", nil))
	assertf(t, rec.Code == http.StatusOK, "wanted %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
}

func TestServeChart(t *testing.T) {
	path := test_db_fill(t, map[string][]float64{
		"test_metric_1": {1, 5, 3, 8},
		"test_metric_2": {0, 1, 2},
		"test_metric_3": {4, 5, 6},
		"test_band":     {2, 3, 4},
	})
	db := db_init(path)
	defer db.Close()

	mux, err := serve_mux(db, test_metrics, test_serve_config())
	if err != nil {
		t.Fatal(err)
	}
	srv := httptest.NewServer(mux)
	defer srv.Close()

	table := []struct {
		query string
		want  int
	}{
		{"metric=test_metric_1", http.StatusOK},
		{"metric=test_metric_1&progress=0.25&width=200&height=100", http.StatusOK},
		{"metric=test_band", http.StatusOK},
		{"metric=test_metric_1&progress=2", http.StatusBadRequest},
		{"metric=test_metric_1&width=0", http.StatusBadRequest},
		{"metric=test_metric_1&tap_x=abc&tap_y=1", http.StatusBadRequest},
		{"", http.StatusBadRequest},
		{"metric=bad-name", http.StatusBadRequest},
		{"metric=nonexistent", http.StatusNotFound},
	}
	for n, entry := range table {
		t.Run(fmt.Sprintf("%d_%s", n+1, entry.query), func(t *testing.T) {
			resp, err := http.Get(srv.URL + "/chart?" + entry.query)
			if err != nil {
				t.Fatal(err)
			}
			defer resp.Body.Close()
			assertf(t, resp.StatusCode == entry.want, "wanted %d, got %d", entry.want, resp.StatusCode)
			if entry.want == http.StatusOK {
				ct := resp.Header.Get("Content-Type")
				assertf(t, ct == "image/svg+xml", "unexpected content type %q", ct)
			}
		})
	}
}

func TestServeChartTap(t *testing.T) {
	path := test_db_fill(t, map[string][]float64{
		"test_metric_1": {1, 5, 3, 8},
	})
	db := db_init(path)
	defer db.Close()

	sconfig := test_serve_config()
	tt := &tooltips{m: map[string]chart.Tooltip{}}
	handler := serve_chart_gen(db, test_metrics, sconfig, tt)

	dps, err := db_datapoints_get(db, test_metrics[0], sconfig.max_entries)
	if err != nil {
		t.Fatal(err)
	}
	c := graph_build(test_metrics[0], dps, nil, nil, sconfig)
	size := chart.Size{Width: float64(sconfig.width), Height: float64(sconfig.height)}
	s, _, err := vgsurface.NewFormatted(size.Width, size.Height, sconfig.graph_format)
	if err != nil {
		t.Fatal(err)
	}
	f, err := c.Layout(s, size, 1)
	if err != nil {
		t.Fatal(err)
	}
	target := f.Points[len(f.Points)-1]

	tap := func() chart.Tooltip {
		req := httptest.NewRequest("GET", fmt.Sprintf(
			"/chart?metric=test_metric_1&tap_x=%f&tap_y=%f", target.X, target.Y), nil)
		rec := httptest.NewRecorder()
		handler(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatal("unexpected status:", rec.Code, rec.Body.String())
		}
		tt.Lock()
		defer tt.Unlock()
		return tt.m["test_metric_1"]
	}
	first := tap()
	assert(t, first.Visible, "tap did not show a tooltip")
	assert(t, first.Entry.Value == 8, "unexpected tooltip entry:", first.Entry)
	second := tap()
	assert(t, !second.Visible, "second tap should hide the tooltip")
}

func TestServeIndex(t *testing.T) {
	mux, err := serve_mux(nil, test_metrics, test_serve_config())
	if err != nil {
		t.Fatal(err)
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatal("unexpected status:", rec.Code)
	}
	body := rec.Body.String()
	for _, m := range test_metrics {
		assertf(t, strings.Contains(body, "/chart?metric="+m.name), "index lacks %s", m.name)
	}
	assert(t, strings.Contains(body, `content="60"`), "unexpected refresh")

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/nothing", nil))
	assert(t, rec.Code == http.StatusNotFound, "unexpected status for unknown path:", rec.Code)
}

func TestServeTemplateFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.template")
	err := os.WriteFile(path, []byte(`{{range .Metrics}}[{{.Name}}]{{end}}`), 0o600)
	if err != nil {
		t.Fatal(err)
	}
	sconfig := test_serve_config()
	sconfig.path_template = path
	mux, err := serve_mux(nil, test_metrics[:2], sconfig)
	if err != nil {
		t.Fatal(err)
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
	got := rec.Body.String()
	assertf(t, got == "[test_metric_1][test_metric_2]", "unexpected index %q", got)
}

func TestRenderMetric(t *testing.T) {
	path := test_db_fill(t, map[string][]float64{
		"test_metric_1": {1, 5, 3, 8},
	})
	db := db_init(path)
	defer db.Close()

	out := t.TempDir()
	p := &params_render{out_dir: out, frames: 3}
	if err := render_metric(db, test_metrics, test_metrics[0], test_serve_config(), p); err != nil {
		t.Fatal(err)
	}
	for n := 0; n < 3; n++ {
		fp := render_frame_path(out, "test_metric_1", "svg", n, 3)
		st, err := os.Stat(fp)
		assertf(t, err == nil && st.Size() > 0, "frame %s missing: %v", fp, err)
	}
	assert(t, render_progress(0, 3) == 0 && render_progress(2, 3) == 1, "unexpected progress range")
	assert(t, render_progress(0, 1) == 1, "single frame is not fully resolved")
	assert(t, filepath.Base(render_frame_path(out, "x", "png", 0, 1)) == "x.png", "unexpected single frame name")

	err := render_metric(db, test_metrics, test_metrics[1], test_serve_config(), p)
	assert(t, err != nil, "rendering without datapoints should fail")
}
