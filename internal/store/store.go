// Package store handles persistent CSV storage of bridge telemetry
// with daily file rotation. Data is stored in ~/.simbridge-data/.
package store

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/luki/simbridge/internal/publish"
)

const (
	dirName    = ".simbridge-data"
	timeLayout = "2006-01-02T15:04:05"
	fileLayout = "2006-01-02"

	probeSource = "ESP32"
)

// DiskStore handles persistent CSV storage of telemetry frames.
// Files are stored as <dir>/YYYY-MM-DD.csv with the format:
//
//	time,stream,value,source,confidence
type DiskStore struct {
	dir     string
	current *os.File
	writer  *csv.Writer
	curDate string
}

// Row is a single record from a CSV log file.
type Row struct {
	Time       time.Time
	Stream     string
	Value      float64
	Source     string
	Confidence int
}

// New creates a disk store rooted at dir, creating it if needed. An
// empty dir means ~/.simbridge-data.
func New(dir string) (*DiskStore, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("cannot find home dir: %w", err)
		}
		dir = filepath.Join(home, dirName)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("cannot create data dir: %w", err)
	}
	return &DiskStore{dir: dir}, nil
}

// Dir returns the path telemetry is written under.
func (d *DiskStore) Dir() string {
	return d.dir
}

// Write appends one frame's streams to today's CSV file. The outlet
// row carries the extraction source and confidence; sensor rows carry
// the probe label.
func (d *DiskStore) Write(f publish.Frame) error {
	dateStr := f.Time.Format(fileLayout)

	if d.curDate != dateStr || d.current == nil {
		d.Close()
		path := filepath.Join(d.dir, dateStr+".csv")
		file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return err
		}
		d.current = file
		d.writer = csv.NewWriter(file)
		d.curDate = dateStr

		info, _ := file.Stat()
		if info.Size() == 0 {
			d.writer.Write([]string{"time", "stream", "value", "source", "confidence"})
		}
	}

	ts := f.Time.Format(timeLayout)
	write := func(stream string, value float64, source string, confidence int) {
		d.writer.Write([]string{
			ts,
			stream,
			fmt.Sprintf("%.2f", value),
			source,
			strconv.Itoa(confidence),
		})
	}

	write(publish.StreamAirIn, f.AirIn, probeSource, 0)
	write(publish.StreamTemperature, f.AirIn, probeSource, 0)
	write(publish.StreamHumidity, f.Humidity, probeSource, 0)
	if f.AirOut != nil && f.Reading != nil {
		write(publish.StreamAirOut, *f.AirOut, f.Reading.Source, f.Reading.Confidence)
	}

	d.writer.Flush()
	return d.writer.Error()
}

// Close flushes and closes the current file.
func (d *DiskStore) Close() {
	if d.writer != nil {
		d.writer.Flush()
	}
	if d.current != nil {
		d.current.Close()
		d.current = nil
	}
}

// ListDays returns available log dates (newest first). An empty dir
// means the default data directory.
func ListDays(dir string) ([]string, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(home, dirName)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var days []string
	for i := len(entries) - 1; i >= 0; i-- {
		name := entries[i].Name()
		if strings.HasSuffix(name, ".csv") {
			days = append(days, strings.TrimSuffix(name, ".csv"))
		}
	}
	return days, nil
}

// LoadDay reads all rows from a specific day's CSV file under dir. An
// empty dir means the default data directory.
func LoadDay(dir, day string) ([]Row, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(home, dirName)
	}
	return LoadFile(filepath.Join(dir, day+".csv"))
}

// LoadFile reads all rows from a CSV file.
func LoadFile(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	var rows []Row
	for i, rec := range records {
		if i == 0 && len(rec) > 0 && rec[0] == "time" {
			continue
		}
		if len(rec) < 5 {
			continue
		}

		t, err := time.ParseInLocation(timeLayout, rec[0], time.Local)
		if err != nil {
			continue
		}
		value, _ := strconv.ParseFloat(rec[2], 64)
		confidence, _ := strconv.Atoi(rec[4])

		rows = append(rows, Row{
			Time:       t,
			Stream:     rec[1],
			Value:      value,
			Source:     rec[3],
			Confidence: confidence,
		})
	}

	return rows, nil
}
