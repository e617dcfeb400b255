package main

import (
	"time"

	"go.uber.org/zap"

	"github.com/luki/simbridge/internal/bridge"
	"github.com/luki/simbridge/internal/config"
	"github.com/luki/simbridge/internal/publish"
	"github.com/luki/simbridge/internal/sensor"
	"github.com/luki/simbridge/internal/sim"
	"github.com/luki/simbridge/internal/store"
	"github.com/luki/simbridge/internal/uitree"
	"github.com/luki/simbridge/internal/uitree/uiatree"
)

// buildBridge assembles the poll loop from the loaded configuration.
// The returned cleanup closes the serial port, the sinks and the CSV
// store, in reverse construction order.
//
// A missing simulator window is not fatal here: the bridge starts
// disconnected and keeps retrying between cycles.
func buildBridge(cfg *config.Config) (*bridge.Bridge, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	src, err := sensor.OpenSerial(cfg.Serial.Port, cfg.Serial.BaudRate)
	if err != nil {
		return nil, nil, err
	}
	closers = append(closers, func() { _ = src.Close() })

	connect := func() (uitree.Element, error) {
		return uiatree.Connect(cfg.Sim.WindowTitle)
	}
	root, err := connect()
	if err != nil {
		zap.L().Warn("simulator window not found, starting disconnected", zap.Error(err))
		root = nil
	}

	sink, sinkClose := buildSinks(cfg)
	closers = append(closers, sinkClose)

	var disk *store.DiskStore
	if cfg.Store.Enabled {
		disk, err = store.New(cfg.Store.Dir)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		closers = append(closers, disk.Close)
	}

	b := &bridge.Bridge{
		Sensor:    src,
		Reader:    sim.NewReader(cfg.Extract, root),
		Writer:    sim.NewWriter(root, cfg.Sim.WritePanel, cfg.Sim.WriteControlID),
		Connect:   connect,
		Extract:   cfg.Extract,
		Sink:      sink,
		Disk:      disk,
		Interval:  time.Duration(cfg.Bridge.IntervalSecs) * time.Second,
		Settle:    time.Duration(cfg.Sim.SettleSecs) * time.Second,
		Threshold: cfg.Bridge.StatusThreshold,
	}
	return b, cleanup, nil
}

// buildSinks creates the enabled publish backends. An unreachable MQTT
// broker costs only that sink; the bridge still records and uploads to
// the rest.
func buildSinks(cfg *config.Config) (publish.Sink, func()) {
	var sinks publish.Multi

	if cfg.Influx.Enabled {
		sinks = append(sinks, publish.NewInfluxSink(
			cfg.Influx.URL, cfg.Influx.Token, cfg.Influx.Org, cfg.Influx.Bucket))
		zap.L().Info("influx sink enabled", zap.String("url", cfg.Influx.URL))
	}

	if cfg.MQTT.Enabled {
		mq, err := publish.NewMQTTSink(
			cfg.MQTT.Host, cfg.MQTT.Port, cfg.MQTT.Token, cfg.MQTT.ClientID, cfg.MQTT.Attributes)
		if err != nil {
			zap.L().Error("mqtt sink unavailable, continuing without it", zap.Error(err))
		} else {
			sinks = append(sinks, mq)
			zap.L().Info("mqtt sink enabled", zap.String("host", cfg.MQTT.Host))
		}
	}

	return sinks, sinks.Close
}
