package publish

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

const (
	telemetryTopic  = "v1/devices/me/telemetry"
	attributesTopic = "v1/devices/me/attributes"

	connectTimeout = 10 * time.Second
	publishTimeout = 5 * time.Second
)

// MQTTSink publishes the dashboard payload to a ThingsBoard-style MQTT
// broker. The device access token doubles as the MQTT username.
type MQTTSink struct {
	client mqtt.Client
}

var _ Sink = (*MQTTSink)(nil)

// NewMQTTSink connects to the broker and, when attributes are given,
// announces them once on the device attributes topic.
func NewMQTTSink(host string, port int, token, clientID string, attributes map[string]string) (*MQTTSink, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(fmt.Sprintf("tcp://%s:%d", host, port)).
		SetClientID(clientID).
		SetUsername(token).
		SetAutoReconnect(true)

	client := mqtt.NewClient(opts)
	tok := client.Connect()
	if !tok.WaitTimeout(connectTimeout) {
		return nil, eris.New("publish: mqtt connect timed out")
	}
	if err := tok.Error(); err != nil {
		return nil, eris.Wrap(err, "publish: mqtt connect")
	}

	s := &MQTTSink{client: client}
	if len(attributes) > 0 {
		payload, err := json.Marshal(attributes)
		if err != nil {
			return nil, eris.Wrap(err, "publish: marshal attributes")
		}
		if err := s.send(attributesTopic, payload); err != nil {
			return nil, err
		}
		zap.L().Info("publish: device attributes sent", zap.Int("count", len(attributes)))
	}
	return s, nil
}

func (s *MQTTSink) Publish(ctx context.Context, f Frame) error {
	if !s.client.IsConnected() {
		return eris.New("publish: mqtt client not connected")
	}
	payload, err := telemetryPayload(f)
	if err != nil {
		return err
	}
	if err := s.send(telemetryTopic, payload); err != nil {
		return err
	}
	zap.L().Info("publish: mqtt upload", zap.ByteString("payload", payload))
	return nil
}

func (s *MQTTSink) send(topic string, payload []byte) error {
	tok := s.client.Publish(topic, 1, false, payload)
	if !tok.WaitTimeout(publishTimeout) {
		return eris.Errorf("publish: mqtt publish to %s timed out", topic)
	}
	return eris.Wrapf(tok.Error(), "publish: mqtt publish to %s", topic)
}

func (s *MQTTSink) Close() {
	s.client.Disconnect(250)
}

// telemetryPayload builds the ThingsBoard envelope. Unlike the Influx
// points, it carries the fan/compressor status derived from the inlet
// temperature.
func telemetryPayload(f Frame) ([]byte, error) {
	values := map[string]interface{}{
		"Air_In":            f.AirIn,
		"Temperature":       f.AirIn,
		"Humidity":          f.Humidity,
		"Fan_Status":        boolToStatus(f.FanOn),
		"Compressor_Status": boolToStatus(f.CompressorOn),
	}
	if f.AirOut != nil {
		values["Air_Out"] = *f.AirOut
	}
	envelope := map[string]interface{}{
		"ts":     f.Time.UnixMilli(),
		"values": values,
	}
	b, err := json.Marshal(envelope)
	if err != nil {
		return nil, eris.Wrap(err, "publish: marshal telemetry")
	}
	return b, nil
}

func boolToStatus(on bool) int {
	if on {
		return 1
	}
	return 0
}
