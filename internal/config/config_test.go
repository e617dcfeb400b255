package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "COM6", cfg.Serial.Port)
	assert.Equal(t, 115200, cfg.Serial.BaudRate)
	assert.Equal(t, ".*DWSIM.*", cfg.Sim.WindowTitle)
	assert.Equal(t, "Air_In (Material Stream)", cfg.Sim.WritePanel)
	assert.Equal(t, "tbTemp", cfg.Sim.WriteControlID)
	assert.Equal(t, 2, cfg.Sim.SettleSecs)

	assert.Equal(t, "Air_Out", cfg.Extract.Source)
	assert.Equal(t, 8, cfg.Extract.LockedIndex)
	assert.Equal(t, 100, cfg.Extract.LockedConfidence)
	assert.Equal(t, 40, cfg.Extract.KeywordBonuses["air_out"])
	assert.Contains(t, cfg.Extract.StrongFractionKeywords, "vapor phase mole fraction")

	assert.Equal(t, 15, cfg.Bridge.IntervalSecs)
	assert.Equal(t, 27.0, cfg.Bridge.StatusThreshold)
	assert.True(t, cfg.Influx.Enabled)
	assert.True(t, cfg.MQTT.Enabled)
	assert.Equal(t, 1883, cfg.MQTT.Port)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("SIMBRIDGE_SERIAL_PORT", "COM3")
	t.Setenv("SIMBRIDGE_BRIDGE_INTERVAL_SECS", "30")
	t.Setenv("SIMBRIDGE_MQTT_TOKEN", "device-token")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "COM3", cfg.Serial.Port)
	assert.Equal(t, 30, cfg.Bridge.IntervalSecs)
	assert.Equal(t, "device-token", cfg.MQTT.Token)
}

func TestInitLoggerRejectsBadLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "chatty", Format: "json"})
	require.Error(t, err)
}
