package main

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/susji/lilchart/chart"
	"github.com/susji/lilchart/chart/vgsurface"
)

// render_frame_path names frame n of a metric. Single frame renders have
// no frame suffix.
func render_frame_path(dir, name, format string, n, frames int) string {
	if frames == 1 {
		return filepath.Join(dir, fmt.Sprintf("%s.%s", name, format))
	}
	return filepath.Join(dir, fmt.Sprintf("%s_%03d.%s", name, n, format))
}

func render_progress(n, frames int) float64 {
	if frames <= 1 {
		return 1
	}
	return float64(n) / float64(frames-1)
}

func render_metric(db *sql.DB, metrics []*metric, m *metric, sconfig *config_serve, p *params_render) error {
	dps, from, to, err := graph_datapoints_get(db, metrics, m, sconfig.max_entries)
	if err != nil {
		return err
	}
	if len(dps) == 0 {
		return errors.New("no datapoints")
	}
	c := graph_build(m, dps, from, to, sconfig)
	size := chart.Size{Width: float64(sconfig.width), Height: float64(sconfig.height)}
	for n := 0; n < p.frames; n++ {
		path := render_frame_path(p.out_dir, m.name, sconfig.graph_format, n, p.frames)
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		_, err = vgsurface.Render(f, c, size, sconfig.graph_format, render_progress(n, p.frames))
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		log.Println("wrote ", path)
	}
	return nil
}

func render(p *params_render) {
	if p.frames < 1 {
		log.Fatal("frames must be at least 1")
	}
	config, err := config_load_file(p.config_path)
	if err != nil {
		log.Fatal(err)
	}
	sconfig, err := config.parse_serve()
	if err != nil {
		log.Fatal(err)
	}
	metrics, err := config.parse_metrics()
	if err != nil {
		log.Fatal("config file reading failed, cannot proceed with render: ", err)
	}
	if p.metric != "" && metric_find(metrics, p.metric) == nil {
		log.Fatalf("unknown metric: %q\n", p.metric)
	}

	db_path := fmt.Sprintf("file:%s?mode=ro", sconfig.path_db)
	log.Println("Opening SQLite DB at ", db_path)
	db := db_init(db_path)
	defer func() {
		if err := db.Close(); err != nil {
			log.Println("warning: error when closing database: ", err)
		}
	}()

	in_err := false
	for n, m := range metrics {
		if p.metric != "" && m.name != p.metric {
			continue
		}
		log.Printf("Rendering metric %d/%d: %s\n", n+1, len(metrics), m.name)
		if err := render_metric(db, metrics, m, sconfig, p); err != nil {
			log.Printf("%s: rendering failed: %v\n", m.name, err)
			in_err = true
		}
	}
	if in_err {
		log.Fatal("one or more charts could not be rendered")
	}
}
