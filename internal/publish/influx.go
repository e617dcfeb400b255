package publish

import (
	"context"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

const measurement = "process_metrics"

// InfluxSink writes raw process metrics to InfluxDB v2: one point per
// stream, measurement `process_metrics`, tag `stream`, field `value`.
// Status flags are not written here; they belong to the MQTT payload.
type InfluxSink struct {
	client influxdb2.Client
	write  api.WriteAPIBlocking
}

var _ Sink = (*InfluxSink)(nil)

// NewInfluxSink creates a sink writing to the given org and bucket.
func NewInfluxSink(url, token, org, bucket string) *InfluxSink {
	client := influxdb2.NewClient(url, token)
	return &InfluxSink{
		client: client,
		write:  client.WriteAPIBlocking(org, bucket),
	}
}

func (s *InfluxSink) Publish(ctx context.Context, f Frame) error {
	if err := s.write.WritePoint(ctx, points(f)...); err != nil {
		return eris.Wrap(err, "publish: influx write")
	}
	zap.L().Info("publish: influx upload",
		zap.Float64("air_in", f.AirIn),
		zap.Float64("humidity", f.Humidity),
		zap.Bool("air_out_present", f.AirOut != nil),
	)
	return nil
}

func (s *InfluxSink) Close() {
	s.client.Close()
}

// points builds the per-stream points for one frame. The Air_Out point
// exists only when a reading was extracted this cycle.
func points(f Frame) []*write.Point {
	pts := []*write.Point{
		streamPoint(StreamAirIn, f.AirIn, f),
		streamPoint(StreamTemperature, f.AirIn, f),
		streamPoint(StreamHumidity, f.Humidity, f),
	}
	if f.AirOut != nil {
		pts = append(pts, streamPoint(StreamAirOut, *f.AirOut, f))
	}
	return pts
}

func streamPoint(stream string, value float64, f Frame) *write.Point {
	return influxdb2.NewPoint(measurement,
		map[string]string{"stream": stream},
		map[string]interface{}{"value": value},
		f.Time,
	)
}
