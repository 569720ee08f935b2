package config

import "time"

type AuthConfig struct {
	Secret    string `mapstructure:"secret" validate:"required,min=32"`
	ExpiryMin int    `mapstructure:"expiry_min" validate:"required,gt=0"`
}

type DBConfig struct {
	URL             string        `mapstructure:"url" validate:"required"`
	MaxOpenConns    int32         `mapstructure:"max_open_conns"`
	MinIdleConns    int32         `mapstructure:"min_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
	HealthTimeout   time.Duration `mapstructure:"health_timeout"`
}

type RedisConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

type RabbitMQConfig struct {
	URL         string `mapstructure:"url" validate:"required"`
	EmailQueue  string `mapstructure:"email_queue"`
	WorkerCount int    `mapstructure:"worker_count"`
}

type CheckerConfig struct {
	ProbeTimeout    time.Duration `mapstructure:"probe_timeout"`
	SlowThresholdMs int64         `mapstructure:"slow_threshold_ms"`
	UptimeWindow    int32         `mapstructure:"uptime_window"`
	Concurrency     int           `mapstructure:"concurrency"`
	AlertWorkers    int           `mapstructure:"alert_workers"`
}

type CronConfig struct {
	Secret string `mapstructure:"secret" validate:"required"`
}

type SMTPConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

type TwilioConfig struct {
	AccountSID string `mapstructure:"account_sid"`
	AuthToken  string `mapstructure:"auth_token"`
	FromNumber string `mapstructure:"from_number"`
}

type StripeConfig struct {
	WebhookSecret string `mapstructure:"webhook_secret"`
}

type PayPalConfig struct {
	APIURL      string `mapstructure:"api_url"`
	AccessToken string `mapstructure:"access_token"`
	WebhookID   string `mapstructure:"webhook_id"`
}

type Config struct {
	Env         string          `mapstructure:"env"`
	ServiceName string          `mapstructure:"service_name"`
	Port        int             `mapstructure:"port"`
	DB          *DBConfig       `mapstructure:"db" validate:"required"`
	Redis       *RedisConfig    `mapstructure:"redis" validate:"required"`
	RabbitMQ    *RabbitMQConfig `mapstructure:"rabbitmq" validate:"required"`
	Auth        *AuthConfig     `mapstructure:"auth" validate:"required"`
	Cron        *CronConfig     `mapstructure:"cron" validate:"required"`
	Checker     *CheckerConfig  `mapstructure:"checker" validate:"required"`
	SMTP        *SMTPConfig     `mapstructure:"smtp" validate:"required"`
	// Twilio is the one optional section: the SMS channel is skipped
	// when it is absent, every other section is dereferenced at startup.
	Twilio *TwilioConfig `mapstructure:"twilio"`
	Stripe *StripeConfig `mapstructure:"stripe" validate:"required"`
	PayPal *PayPalConfig `mapstructure:"paypal" validate:"required"`
}
