package sensor

import (
	"bufio"
	"sync"
	"time"

	"github.com/rotisserie/eris"
	"go.bug.st/serial"
	"go.uber.org/zap"
)

// SerialSource reads firmware lines from a serial port on a background
// goroutine and retains only the newest sample. The bridge loop polls
// Latest at its own cadence; the probe's emit rate is irrelevant.
type SerialSource struct {
	port serial.Port

	mu     sync.Mutex
	latest Sample
	has    bool
}

var _ Source = (*SerialSource)(nil)

// OpenSerial opens the given port and starts the reader goroutine.
func OpenSerial(portName string, baudRate int) (*SerialSource, error) {
	port, err := serial.Open(portName, &serial.Mode{BaudRate: baudRate})
	if err != nil {
		return nil, eris.Wrapf(err, "sensor: open serial port %s", portName)
	}

	s := &SerialSource{port: port}
	go s.readLoop()
	return s, nil
}

func (s *SerialSource) readLoop() {
	scanner := bufio.NewScanner(s.port)
	for scanner.Scan() {
		sample, ok := ParseLine(scanner.Text(), time.Now().UTC())
		if !ok {
			continue
		}
		s.mu.Lock()
		s.latest = sample
		s.has = true
		s.mu.Unlock()

		zap.L().Debug("sensor: sample received",
			zap.Float64("temp", sample.Temp),
			zap.Float64("humidity", sample.Humidity),
		)
	}
	if err := scanner.Err(); err != nil {
		zap.L().Warn("sensor: serial read stopped", zap.Error(err))
	}
}

// Latest returns the newest sample, if any has arrived yet.
func (s *SerialSource) Latest() (Sample, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latest, s.has
}

// Close closes the port, which also ends the reader goroutine.
func (s *SerialSource) Close() error {
	return s.port.Close()
}
