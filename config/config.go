package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type SchedulerConfig struct {
	Port                  int
	RoundRobinTimeQuantum int
	ContextSwitchTime     float64
	PlaybackSpeed         float64
	PlaybackStartPaused   bool
	LogLevel              string
}

var once sync.Once
var config *SchedulerConfig

// GetSchedulerConfig loads ./config.yaml once and exits on error.
func GetSchedulerConfig() *SchedulerConfig {
	once.Do(func() {
		cfg, err := Load("")
		if err != nil {
			logrus.Fatalln(err)
		}
		config = cfg
	})
	return config
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetDefault("port", 9095)
	v.SetDefault("scheduler.round_robin.time_quantum", 2)
	v.SetDefault("scheduler.context_switch_time", 0.0)
	v.SetDefault("playback.speed", 1.0)
	v.SetDefault("playback.start_paused", false)
	v.SetDefault("log.level", "info")
	v.SetEnvPrefix("CPUSCHED")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads configuration from path, or from config.yaml in the working
// directory when path is empty. A missing default file is not an error.
func Load(path string) (*SchedulerConfig, error) {
	v := newViper()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath("./")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		logrus.Debugf("no config file found, using defaults")
	}

	cfg := &SchedulerConfig{
		Port:                  v.GetInt("port"),
		RoundRobinTimeQuantum: v.GetInt("scheduler.round_robin.time_quantum"),
		ContextSwitchTime:     v.GetFloat64("scheduler.context_switch_time"),
		PlaybackSpeed:         v.GetFloat64("playback.speed"),
		PlaybackStartPaused:   v.GetBool("playback.start_paused"),
		LogLevel:              v.GetString("log.level"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *SchedulerConfig) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	if c.RoundRobinTimeQuantum < 1 {
		return fmt.Errorf("scheduler.round_robin.time_quantum must be >= 1, got %d", c.RoundRobinTimeQuantum)
	}
	if c.ContextSwitchTime < 0 {
		return fmt.Errorf("scheduler.context_switch_time must be >= 0, got %v", c.ContextSwitchTime)
	}
	if c.PlaybackSpeed <= 0 {
		return fmt.Errorf("playback.speed must be > 0, got %v", c.PlaybackSpeed)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}
