package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Redis  RedisConfig  `mapstructure:"redis"`
	Scan   ScanConfig   `mapstructure:"scan"`
	Chat   ChatConfig   `mapstructure:"chat"`
}

type ServerConfig struct {
	HTTPAddr string `mapstructure:"http_addr"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type ScanConfig struct {
	Interval time.Duration `mapstructure:"interval"`
}

type ChatConfig struct {
	HistoryLimit int `mapstructure:"history_limit"`
}

// Load reads the config file at path, with environment variables taking
// precedence over file values. An empty path loads defaults only.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("server.http_addr", ":8080")
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("scan.interval", time.Second)
	v.SetDefault("chat.history_limit", 50)

	v.SetEnvPrefix("FPS")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file - %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config - %w", err)
	}
	return &cfg, nil
}
