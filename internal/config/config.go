// Package config loads cadstream settings from an optional YAML file,
// CADSTREAM_* environment variables and built-in defaults.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g.
// CADSTREAM_WATCH_DIR.
const EnvPrefix = "CADSTREAM"

// Config holds all runtime settings
type Config struct {
	Watch WatchConfig `mapstructure:"watch"`
	Sink  SinkConfig  `mapstructure:"sink"`
}

// WatchConfig controls the ingestion pipeline
type WatchConfig struct {
	Dir string `mapstructure:"dir"`
	// SettleDelay is waited before reading a file that just changed.
	SettleDelay time.Duration `mapstructure:"settle_delay"`
	// Debounce coalesces bursts of events for the same file.
	Debounce     time.Duration `mapstructure:"debounce"`
	QueueSize    int           `mapstructure:"queue_size"`
	LoadExisting bool          `mapstructure:"load_existing"`
}

// SinkConfig controls the visualization sink
type SinkConfig struct {
	PollInterval time.Duration `mapstructure:"poll_interval"`
	Width        int           `mapstructure:"width"`
	Height       int           `mapstructure:"height"`
	// SnapshotDir receives a PNG per published model; empty disables it.
	SnapshotDir string `mapstructure:"snapshot_dir"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("watch.dir", ".")
	v.SetDefault("watch.settle_delay", 100*time.Millisecond)
	v.SetDefault("watch.debounce", 50*time.Millisecond)
	v.SetDefault("watch.queue_size", 32)
	v.SetDefault("watch.load_existing", true)

	v.SetDefault("sink.poll_interval", 100*time.Millisecond)
	v.SetDefault("sink.width", 800)
	v.SetDefault("sink.height", 600)
	v.SetDefault("sink.snapshot_dir", "")
}

// Default returns the built-in configuration. It panics if the built-in
// defaults do not decode or validate.
func Default() Config {
	v := viper.New()
	setDefaults(v)

	cfg, err := decode(v)
	if err != nil {
		panic(fmt.Sprintf("config: built-in defaults: %v", err))
	}
	return cfg
}

// Load reads configuration. If cfgFile is empty, ./cadstream.yaml is used
// when present.
func Load(cfgFile string) (Config, error) {
	return load(viper.New(), cfgFile)
}

func load(v *viper.Viper, cfgFile string) (Config, error) {
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config %s: %w", cfgFile, err)
		}
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("cadstream")
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	return decode(v)
}

func decode(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the pipeline cannot run with
func (c Config) Validate() error {
	var errs []error
	if c.Watch.Dir == "" {
		errs = append(errs, errors.New("watch.dir must not be empty"))
	}
	if c.Watch.SettleDelay < 0 {
		errs = append(errs, errors.New("watch.settle_delay must not be negative"))
	}
	if c.Watch.Debounce < 0 {
		errs = append(errs, errors.New("watch.debounce must not be negative"))
	}
	if c.Watch.QueueSize <= 0 {
		errs = append(errs, fmt.Errorf("watch.queue_size must be positive, got %d", c.Watch.QueueSize))
	}
	if c.Sink.PollInterval <= 0 {
		errs = append(errs, errors.New("sink.poll_interval must be positive"))
	}
	if c.Sink.Width <= 0 || c.Sink.Height <= 0 {
		errs = append(errs, fmt.Errorf("sink size must be positive, got %dx%d", c.Sink.Width, c.Sink.Height))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
