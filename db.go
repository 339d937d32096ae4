package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	_ "modernc.org/sqlite"
)

func db_table_name_get(m *metric) string {
	return "lilchart_metric_" + m.name
}

// db_datapoints_get returns the latest max_entries datapoints of m in
// ascending timestamp order.
func db_datapoints_get(db *sql.DB, m *metric, max_entries int) ([]datapoint, error) {
	if !is_metric_name_valid(m) {
		panic(fmt.Sprintf("This is a bug: unvalidated metric name %q", m.name))
	}
	template_select_values := `
SELECT timestamp, value FROM %s
    ORDER BY id DESC
    LIMIT ?`
	rows, err := db.Query(
		fmt.Sprintf(template_select_values, db_table_name_get(m)),
		max_entries)
	if err != nil {
		log.Println("db_datapoints_get: unable to select rows: ", err)
		return nil, err
	}
	defer rows.Close()
	dps := []datapoint{}
	for rows.Next() {
		var ts time.Time
		var value float64

		if err := rows.Scan(&ts, &value); err != nil {
			log.Println("db_datapoints_get: row scan failed: ", err)
			return nil, err
		}
		dps = append(dps, datapoint{ts: ts, value: value})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i, j := 0, len(dps)-1; i < j; i, j = i+1, j-1 {
		dps[i], dps[j] = dps[j], dps[i]
	}
	return dps, nil
}

func db_init(db_path string) *sql.DB {
	db, err := sql.Open("sqlite", db_path)
	if err != nil {
		log.Fatalf("cannot open database: %v\n", err)
	}

	var db_version string
	if err := db.QueryRow("SELECT sqlite_version()").Scan(&db_version); err != nil {
		log.Println("warning: unable to get sqlite version: ", err)
	} else {
		log.Println("database version: ", db_version)

	}
	return db
}

func db_migrate(db *sql.DB, metrics []*metric) error {
	template_table := `
CREATE TABLE IF NOT EXISTS %s (
    id INTEGER PRIMARY KEY,
    value DOUBLE PRECISION,
    timestamp DATETIME DEFAULT CURRENT_TIMESTAMP);
CREATE INDEX IF NOT EXISTS index_%s
    ON %s (timestamp);
`
	in_err := false
	for n, m := range metrics {
		log.Printf(
			"Maybe creating tables and indices for metric %d/%d: %s (%s)\n",
			n+1, len(metrics), m.name, m.description)

		table := db_table_name_get(m)
		_, err := db.Exec(fmt.Sprintf(template_table, table, table, table))
		if err != nil {
			log.Printf("failed to create table for metric %s: %v ", m.name, err)
			in_err = true
		}
	}
	if in_err {
		return errors.New("database migration encountered errors")
	}
	return nil
}

func db_writer(ctx context.Context, db *sql.DB, tasks <-chan db_task) {
	template_insert := `INSERT INTO %s (value) VALUES (?)`
	template_prune := `DELETE FROM %s WHERE timestamp < DATETIME('now', '-%d seconds')`
	for {
		select {
		case <-ctx.Done():
			return
		case task := <-tasks:
			switch task.kind {
			case DB_TASK_INSERT:
				m := task.insert_measurement.metric
				value := task.insert_measurement.value
				_, err := db.ExecContext(
					ctx,
					fmt.Sprintf(template_insert, db_table_name_get(m)),
					value)
				if err != nil {
					log.Printf(
						"metric insert failed for %s with value %f: %v\n",
						m.name, value, err)
				}
			case DB_TASK_PRUNE_TABLE:
				m := &metric{name: task.prune_metric_name}
				retention_period := task.prune_retention_period

				log.Printf(
					"Pruning metric %s for older than %s entries.\n",
					m.name, retention_period)
				q := fmt.Sprintf(
					template_prune,
					db_table_name_get(m),
					int64(retention_period/time.Second))
				_, err := db.ExecContext(ctx, q)
				if err != nil {
					log.Println("Pruning failed: ", err)
				}
			default:
				panic(fmt.Sprintf("This is a bug: db_task.kind == %d", task.kind))
			}
		}
	}
}

func db_pruner(ctx context.Context, tasks chan<- db_task, metrics []*metric,
	retention_period, prune_period time.Duration) {

	log.Println("Entering pruning loop with period of ", prune_period)
	for {
		select {
		case <-ctx.Done():
			return
		case <-time.After(prune_period):
			for _, m := range metrics {
				select {
				case <-ctx.Done():
					return
				case tasks <- db_task{
					kind:                   DB_TASK_PRUNE_TABLE,
					prune_metric_name:      m.name,
					prune_retention_period: retention_period,
				}:
				}
			}
		}
	}
}
