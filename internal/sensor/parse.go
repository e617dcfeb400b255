package sensor

import (
	"strconv"
	"strings"
	"time"
)

// ParseLine parses one firmware line of the form `RH:55.1,T:27.3`.
// Lines that don't match (boot banners, partial reads, garbage bytes)
// return ok=false and are skipped by the reader.
func ParseLine(line string, now time.Time) (Sample, bool) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, "RH:") || !strings.Contains(line, ",T:") {
		return Sample{}, false
	}

	rhPart, tPart, _ := strings.Cut(line, ",")
	rh, err := parseField(rhPart)
	if err != nil {
		return Sample{}, false
	}
	temp, err := parseField(tPart)
	if err != nil {
		return Sample{}, false
	}

	return Sample{Temp: temp, Humidity: rh, Time: now}, true
}

func parseField(field string) (float64, error) {
	_, val, _ := strings.Cut(field, ":")
	return strconv.ParseFloat(strings.TrimSpace(val), 64)
}
