package store

import (
	"testing"
	"time"

	"github.com/luki/simbridge/internal/extract"
	"github.com/luki/simbridge/internal/publish"
	"github.com/luki/simbridge/internal/sensor"
)

func TestDiskStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()

	ds := &DiskStore{dir: dir}
	defer ds.Close()

	now := time.Date(2026, 2, 21, 14, 30, 0, 0, time.Local)
	reading := &extract.Reading{Value: 85.3, Source: "Air_Out", Confidence: 100}
	frame := publish.NewFrame(sensor.Sample{Temp: 27.5, Humidity: 55.1}, reading, 27.0, now)

	if err := ds.Write(frame); err != nil {
		t.Fatalf("Write: %v", err)
	}
	ds.Close()

	rows, err := LoadFile(dir + "/2026-02-21.csv")
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	if len(rows) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(rows))
	}

	if rows[0].Stream != "Air_In" || rows[0].Value != 27.5 {
		t.Errorf("first row: got %+v", rows[0])
	}
	if rows[2].Stream != "Humidity" || rows[2].Value != 55.1 {
		t.Errorf("humidity row: got %+v", rows[2])
	}
	last := rows[3]
	if last.Stream != "Air_Out" || last.Value != 85.3 || last.Source != "Air_Out" || last.Confidence != 100 {
		t.Errorf("outlet row: got %+v", last)
	}
}

func TestDiskStoreNoReading(t *testing.T) {
	dir := t.TempDir()

	ds := &DiskStore{dir: dir}
	defer ds.Close()

	now := time.Date(2026, 2, 21, 14, 30, 0, 0, time.Local)
	frame := publish.NewFrame(sensor.Sample{Temp: 25.0, Humidity: 48.0}, nil, 27.0, now)

	if err := ds.Write(frame); err != nil {
		t.Fatalf("Write: %v", err)
	}
	ds.Close()

	rows, err := LoadFile(dir + "/2026-02-21.csv")
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	if len(rows) != 3 {
		t.Fatalf("expected 3 rows without a reading, got %d", len(rows))
	}
	for _, r := range rows {
		if r.Stream == "Air_Out" {
			t.Error("unexpected outlet row in a cycle without a reading")
		}
	}
}

func TestListDays(t *testing.T) {
	dir := t.TempDir()

	ds := &DiskStore{dir: dir}
	now := time.Date(2026, 2, 21, 14, 30, 0, 0, time.Local)
	if err := ds.Write(publish.NewFrame(sensor.Sample{Temp: 25}, nil, 27.0, now)); err != nil {
		t.Fatalf("Write: %v", err)
	}
	ds.Close()

	days, err := ListDays(dir)
	if err != nil {
		t.Fatalf("ListDays: %v", err)
	}
	if len(days) != 1 || days[0] != "2026-02-21" {
		t.Errorf("days: got %v", days)
	}
}
