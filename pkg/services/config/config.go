package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/de-tools/vessel-atlas/pkg/services/report"
)

type Query struct {
	FunctionName string `mapstructure:"function_name" validate:"required"`
	Region       string `mapstructure:"region"`
	Profile      string `mapstructure:"profile"`
}

type Report struct {
	BatchSize int `mapstructure:"batch_size"`
}

type Export struct {
	TemplatePath string `mapstructure:"template_path"`
}

type Server struct {
	Addr string `mapstructure:"addr"`
}

type AppConfig struct {
	Query  Query  `mapstructure:"query"`
	Report Report `mapstructure:"report"`
	Export Export `mapstructure:"export"`
	Server Server `mapstructure:"server"`
}

func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetDefault("report.batch_size", report.DefaultBatchSize)
	v.SetDefault("server.addr", ":8080")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse app config: %w", err)
	}

	if cfg.Query.FunctionName == "" {
		return nil, fmt.Errorf("query.function_name is required")
	}
	return &cfg, nil
}
