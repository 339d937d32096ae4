package main

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func write_workbook(t *testing.T, cells map[string]interface{}) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for cell, v := range cells {
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			t.Fatal(err)
		}
	}
	path := filepath.Join(t.TempDir(), "test.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRowsToEntries(t *testing.T) {
	rows := [][]string{
		{"day", "value"},
		{"mon", "10"},
		{},
		{"tue", " 83.5 ", "lots", "#ff0000"},
	}
	entries, err := rows_to_entries(rows, true)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatal("unexpected amount of entries:", len(entries))
	}
	if entries[0].Label != "mon" || entries[0].Value != 10 || entries[0].Color != default_color {
		t.Error("unexpected first entry:", entries[0])
	}
	want := color.NRGBA{R: 0xff, A: 0xff}
	if entries[1].ValueLabel != "lots" || entries[1].Value != 83.5 || entries[1].Color != want {
		t.Error("unexpected second entry:", entries[1])
	}

	bad := [][][]string{
		{{"day", "value"}},
		{{"mon"}},
		{{"mon", "x"}},
		{{"mon", "1", "", "blue"}},
	}
	for n, rows := range bad {
		t.Run(fmt.Sprintf("bad_%d", n+1), func(t *testing.T) {
			if _, err := rows_to_entries(rows, false); err == nil {
				t.Error("should've failed but did not")
			}
		})
	}
}

func TestRun(t *testing.T) {
	path := write_workbook(t, map[string]interface{}{
		"A1": "mon", "B1": 10,
		"A2": "tue", "B2": 83,
		"A3": "wed", "B3": 40.5,
	})
	out := filepath.Join(t.TempDir(), "chart.svg")
	p := &params{
		path_xlsx: path,
		path_out:  out,
		format:    "svg",
		kind:      "line",
		width:     600,
		height:    300,
		progress:  1,
	}
	if err := run(p); err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), "<svg") {
		t.Error("output does not look like svg")
	}

	p.title = "Weekdays"
	if err := run(p); err != nil {
		t.Fatal(err)
	}
	b, err = os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), "Weekdays") {
		t.Error("title missing from output")
	}

	p.kind = "pie"
	if err := run(p); err == nil {
		t.Error("unknown kind accepted")
	}
	p.kind = "point"
	p.progress = 1.5
	if err := run(p); err == nil {
		t.Error("bad progress accepted")
	}
	p.progress = 0.5
	p.title = ""
	p.format = "bogus"
	p.path_out = filepath.Join(t.TempDir(), "chart.bogus")
	if err := run(p); err == nil {
		t.Error("unknown format accepted")
	}
	if _, err := os.Stat(p.path_out); !os.IsNotExist(err) {
		t.Error("failed render left its output behind:", err)
	}
	p.format = "svg"
	p.width = 1
	if err := run(p); err == nil {
		t.Error("too narrow image accepted")
	}
	if _, err := os.Stat(p.path_out); !os.IsNotExist(err) {
		t.Error("failed layout left its output behind:", err)
	}
	p.width = 600
	p.sheet = "nonexistent"
	if err := run(p); err == nil {
		t.Error("unknown sheet accepted")
	}
}
