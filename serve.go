package main

import (
	"bytes"
	"database/sql"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/susji/lilchart/chart"
	"github.com/susji/lilchart/chart/vgsurface"
)

const default_index_template = `<!DOCTYPE html>
<html>
  <head>
    <meta http-equiv="refresh" content="{{.RefreshSeconds}}">
    <title>lilchart</title>
  </head>
  <body>
{{- range $n, $m := .Metrics}}
    <div>
      <pre>{{$n}}: {{$m.Name}}: {{$m.Description}}</pre>
      <img src="/chart?metric={{$m.Name}}">
    </div>
{{- end}}
    <hr>
    <pre>lilchart</pre>
    <pre>{{.Now}} (autorefresh @ {{.RefreshSeconds}} sec)</pre>
  </body>
</html>
`

type index_metric struct {
	Name, Description string
}

type index_data struct {
	Metrics        []index_metric
	RefreshSeconds int
	Now            string
}

// tooltips keeps the tooltip of every metric between requests; charts are
// rebuilt for each request.
type tooltips struct {
	sync.Mutex
	m map[string]chart.Tooltip
}

func serve_template_load(path string) (*template.Template, error) {
	if path == "" {
		return template.New("index").Parse(default_index_template)
	}
	log.Println("Loading index template from ", path)
	return template.ParseFiles(path)
}

func serve_index_gen(tmpl *template.Template, metrics []*metric, sconfig *config_serve) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if req.URL.Path != "/" {
			http.NotFound(w, req)
			return
		}
		data := index_data{
			RefreshSeconds: int(sconfig.autorefresh_period / time.Second),
			Now:            time.Now().Format(time.RFC3339),
		}
		for _, m := range metrics {
			data.Metrics = append(data.Metrics, index_metric{Name: m.name, Description: m.description})
		}
		b := bytes.Buffer{}
		if err := tmpl.Execute(&b, data); err != nil {
			log.Println("serve_index: template execution failed: ", err)
			w.WriteHeader(http.StatusInternalServerError)
			fmt.Fprintln(w, "index generation failed")
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(b.Bytes())
	}
}

func query_float(v map[string][]string, key string, def, min, max float64) (float64, error) {
	raw, ok := v[key]
	if !ok {
		return def, nil
	}
	f, err := strconv.ParseFloat(raw[0], 64)
	if err != nil {
		return 0, fmt.Errorf("bad %s: %w", key, err)
	}
	if !(f >= min && f <= max) {
		return 0, fmt.Errorf("bad %s: %v not within [%v, %v]", key, f, min, max)
	}
	return f, nil
}

func graph_datapoints_get(db *sql.DB, metrics []*metric, m *metric, max_entries int) (
	[]datapoint, []datapoint, []datapoint, error) {

	dps, err := db_datapoints_get(db, m, max_entries)
	if err != nil {
		return nil, nil, nil, err
	}
	if m.options.band_from == "" {
		return dps, nil, nil, nil
	}
	from, err := db_datapoints_get(db, metric_find(metrics, m.options.band_from), max_entries)
	if err != nil {
		return nil, nil, nil, err
	}
	to, err := db_datapoints_get(db, metric_find(metrics, m.options.band_to), max_entries)
	if err != nil {
		return nil, nil, nil, err
	}
	return dps, from, to, nil
}

func serve_chart_gen(db *sql.DB, metrics []*metric, sconfig *config_serve, tt *tooltips) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		v := req.URL.Query()
		names, ok := v["metric"]
		if !ok {
			log.Println("serve_chart: metric name missing")
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprintln(w, "missing metric name")
			return
		}
		if !is_metric_name_valid(&metric{name: names[0]}) {
			log.Println("serve_chart: metric name invalid: ", names[0])
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprintln(w, "bad metric name")
			return
		}
		m := metric_find(metrics, names[0])
		if m == nil {
			log.Println("serve_chart: unknown metric: ", names[0])
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprintln(w, "unknown metric")
			return
		}

		progress, err := query_float(v, "progress", 1, 0, 1)
		var width, height, tap_x, tap_y float64
		if err == nil {
			width, err = query_float(v, "width", float64(sconfig.width), 1, MAX_GRAPH_DIMENSION)
		}
		if err == nil {
			height, err = query_float(v, "height", float64(sconfig.height), 1, MAX_GRAPH_DIMENSION)
		}
		if err == nil {
			tap_x, err = query_float(v, "tap_x", -1, -1, MAX_GRAPH_DIMENSION)
		}
		if err == nil {
			tap_y, err = query_float(v, "tap_y", -1, -1, MAX_GRAPH_DIMENSION)
		}
		if err != nil {
			log.Println("serve_chart: ", err)
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprintln(w, err)
			return
		}
		tapped := tap_x >= 0 && tap_y >= 0

		dps, from, to, err := graph_datapoints_get(db, metrics, m, sconfig.max_entries)
		if err != nil {
			log.Println("serve_chart: error from DB get: ", err)
			w.WriteHeader(http.StatusInternalServerError)
			fmt.Fprintln(w, "chart generation failed")
			return
		}
		if len(dps) == 0 {
			log.Println("serve_chart: no datapoints yet for ", m.name)
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprintln(w, "no datapoints")
			return
		}

		log.Printf(
			"serve_chart: Drawing chart for %q with %d entries at progress %.2f\n",
			m.name, len(dps), progress)

		c := graph_build(m, dps, from, to, sconfig)
		size := chart.Size{Width: width, Height: height}
		s, cw, err := vgsurface.NewFormatted(width, height, sconfig.graph_format)
		if err != nil {
			log.Println("serve_chart: cannot create canvas: ", err)
			w.WriteHeader(http.StatusInternalServerError)
			fmt.Fprintln(w, "chart generation failed")
			return
		}
		s.Clear(c.Config.BackgroundColor)

		tt.Lock()
		c.Tooltip = tt.m[m.name]
		if tapped {
			if _, err := c.Layout(s, size, progress); err == nil {
				c.HitTest(chart.Point{X: tap_x, Y: tap_y})
				tt.m[m.name] = c.Tooltip
			}
		}
		tt.Unlock()

		if _, err := c.Render(s, size, progress); err != nil {
			log.Println("serve_chart: rendering failed: ", err)
			w.WriteHeader(http.StatusInternalServerError)
			fmt.Fprintln(w, "chart generation failed")
			return
		}
		b := bytes.Buffer{}
		if _, err := cw.WriteTo(&b); err != nil {
			log.Println("serve_chart: encoding failed: ", err)
			w.WriteHeader(http.StatusInternalServerError)
			fmt.Fprintln(w, "chart generation failed")
			return
		}
		gb := b.Bytes()
		w.Header().Set("Content-Type", sconfig.graph_mimetype)
		w.Header().Set("Content-Length", strconv.Itoa(len(gb)))
		w.WriteHeader(http.StatusOK)
		w.Write(gb)
	}
}

func serve_mux(db *sql.DB, metrics []*metric, sconfig *config_serve) (*http.ServeMux, error) {
	tmpl, err := serve_template_load(sconfig.path_template)
	if err != nil {
		return nil, err
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/", serve_index_gen(tmpl, metrics, sconfig))
	mux.HandleFunc("/chart", serve_chart_gen(db, metrics, sconfig, &tooltips{m: map[string]chart.Tooltip{}}))
	return mux, nil
}

func serve(path_config string) {
	config, err := config_load_file(path_config)
	if err != nil {
		log.Fatal(err)
	}
	sconfig, err := config.parse_serve()
	if err != nil {
		log.Fatal(err)
	}
	metrics, err := config.parse_metrics()
	if err != nil {
		log.Fatal("config file reading failed, cannot proceed with serve: ", err)
	}

	db_path := fmt.Sprintf("file:%s?mode=ro", sconfig.path_db)
	log.Println("Opening SQLite DB at ", db_path)
	db := db_init(db_path)
	defer func() {
		if err := db.Close(); err != nil {
			log.Println("warning: error when closing database: ", err)
		}
	}()
	mux, err := serve_mux(db, metrics, sconfig)
	if err != nil {
		log.Fatal("cannot proceed with serve: ", err)
	}
	if err := protect_serve(sconfig.path_db); err != nil {
		log.Fatal("cannot protect serve: ", err)
	}
	log.Println("Listening at address ", sconfig.listen_addr)
	log.Fatal(http.ListenAndServe(sconfig.listen_addr, mux))
}
