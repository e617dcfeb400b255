// Package config loads the bridge configuration from config.yaml and
// SIMBRIDGE_* environment variables, and initializes the global
// logger.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/luki/simbridge/internal/extract"
)

// Config holds the full application configuration.
type Config struct {
	Serial  SerialConfig   `yaml:"serial" mapstructure:"serial"`
	Sim     SimConfig      `yaml:"sim" mapstructure:"sim"`
	Extract extract.Config `yaml:"extract" mapstructure:"extract"`
	Influx  InfluxConfig   `yaml:"influx" mapstructure:"influx"`
	MQTT    MQTTConfig     `yaml:"mqtt" mapstructure:"mqtt"`
	Bridge  BridgeConfig   `yaml:"bridge" mapstructure:"bridge"`
	History HistoryConfig  `yaml:"history" mapstructure:"history"`
	Store   StoreConfig    `yaml:"store" mapstructure:"store"`
	Log     LogConfig      `yaml:"log" mapstructure:"log"`
}

// SerialConfig configures the sensor probe's serial link.
type SerialConfig struct {
	Port     string `yaml:"port" mapstructure:"port"`
	BaudRate int    `yaml:"baud_rate" mapstructure:"baud_rate"`
}

// SimConfig locates the simulator window and the inlet input field.
type SimConfig struct {
	WindowTitle    string `yaml:"window_title" mapstructure:"window_title"`
	WritePanel     string `yaml:"write_panel" mapstructure:"write_panel"`
	WriteControlID string `yaml:"write_control_id" mapstructure:"write_control_id"`
	SettleSecs     int    `yaml:"settle_secs" mapstructure:"settle_secs"`
}

// InfluxConfig holds InfluxDB v2 connection settings.
type InfluxConfig struct {
	Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
	URL     string `yaml:"url" mapstructure:"url"`
	Token   string `yaml:"token" mapstructure:"token"`
	Org     string `yaml:"org" mapstructure:"org"`
	Bucket  string `yaml:"bucket" mapstructure:"bucket"`
}

// MQTTConfig holds the ThingsBoard MQTT broker settings.
type MQTTConfig struct {
	Enabled    bool              `yaml:"enabled" mapstructure:"enabled"`
	Host       string            `yaml:"host" mapstructure:"host"`
	Port       int               `yaml:"port" mapstructure:"port"`
	Token      string            `yaml:"token" mapstructure:"token"`
	ClientID   string            `yaml:"client_id" mapstructure:"client_id"`
	Attributes map[string]string `yaml:"attributes" mapstructure:"attributes"`
}

// BridgeConfig configures the poll loop.
type BridgeConfig struct {
	IntervalSecs    int     `yaml:"interval_secs" mapstructure:"interval_secs"`
	StatusThreshold float64 `yaml:"status_threshold" mapstructure:"status_threshold"`
}

// HistoryConfig configures the in-memory telemetry history.
type HistoryConfig struct {
	Capacity int `yaml:"capacity" mapstructure:"capacity"`
}

// StoreConfig configures the CSV telemetry log.
type StoreConfig struct {
	Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
	Dir     string `yaml:"dir" mapstructure:"dir"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("SIMBRIDGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("serial.port", "COM6")
	v.SetDefault("serial.baud_rate", 115200)
	v.SetDefault("sim.window_title", ".*DWSIM.*")
	v.SetDefault("sim.write_panel", "Air_In (Material Stream)")
	v.SetDefault("sim.write_control_id", "tbTemp")
	v.SetDefault("sim.settle_secs", 2)
	v.SetDefault("influx.enabled", true)
	v.SetDefault("influx.url", "http://localhost:8086")
	v.SetDefault("influx.bucket", "process")
	// Credentials have no defaults; registering the keys lets the
	// SIMBRIDGE_* variables reach Unmarshal.
	v.SetDefault("influx.token", "")
	v.SetDefault("influx.org", "")
	v.SetDefault("mqtt.enabled", true)
	v.SetDefault("mqtt.host", "demo.thingsboard.io")
	v.SetDefault("mqtt.port", 1883)
	v.SetDefault("mqtt.client_id", "simbridge")
	v.SetDefault("mqtt.token", "")
	v.SetDefault("bridge.interval_secs", 15)
	v.SetDefault("bridge.status_threshold", 27.0)
	v.SetDefault("history.capacity", 600)
	v.SetDefault("store.enabled", true)
	v.SetDefault("store.dir", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	ext := extract.DefaultConfig()
	v.SetDefault("extract.source", ext.Source)
	v.SetDefault("extract.target_auto_id", "")
	v.SetDefault("extract.locked_index", ext.LockedIndex)
	v.SetDefault("extract.locked_confidence", ext.LockedConfidence)
	v.SetDefault("extract.preferred_min", ext.PreferredMin)
	v.SetDefault("extract.preferred_max", ext.PreferredMax)
	v.SetDefault("extract.plausible_min", ext.PlausibleMin)
	v.SetDefault("extract.plausible_max", ext.PlausibleMax)
	v.SetDefault("extract.keyword_bonuses", ext.KeywordBonuses)
	v.SetDefault("extract.fraction_keywords", ext.FractionKeywords)
	v.SetDefault("extract.strong_fraction_keywords", ext.StrongFractionKeywords)
	v.SetDefault("extract.fraction_penalty", ext.FractionPenalty)
	v.SetDefault("extract.strong_fraction_penalty", ext.StrongFractionPenalty)
	v.SetDefault("extract.unit_interval_penalty", ext.UnitIntervalPenalty)
	v.SetDefault("extract.zero_penalty", ext.ZeroPenalty)
	v.SetDefault("extract.max_context_len", ext.MaxContextLen)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
