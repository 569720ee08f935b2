package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "development")
	v.SetDefault("service_name", "pingdeck")
	v.SetDefault("port", 8080)

	v.SetDefault("auth.expiry_min", 30)

	v.SetDefault("db.max_open_conns", 50)
	v.SetDefault("db.min_idle_conns", 5)
	v.SetDefault("db.conn_max_lifetime", "1h")
	v.SetDefault("db.conn_max_idle_time", "30m")
	v.SetDefault("db.health_timeout", "5s")

	v.SetDefault("rabbitmq.email_queue", "alert.email")
	v.SetDefault("rabbitmq.worker_count", 10)

	v.SetDefault("checker.probe_timeout", "10s")
	v.SetDefault("checker.slow_threshold_ms", 5000)
	v.SetDefault("checker.uptime_window", 100)
	v.SetDefault("checker.concurrency", 50)
	v.SetDefault("checker.alert_workers", 10)
}

func validateConfig(cfg *Config) error {
	validate := validator.New()

	if err := validate.Struct(cfg); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			return formatValidationErrors(ve)
		}
		return err
	}
	return nil
}

func formatValidationErrors(ve validator.ValidationErrors) error {
	var sb strings.Builder
	sb.WriteString("config validation failed:\n")

	for _, fe := range ve {
		fmt.Fprintf(&sb, "- field '%s' failed on '%s'\n", fe.Namespace(), fe.Tag())
	}
	return errors.New(sb.String())
}
