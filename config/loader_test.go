package config

import (
	"strings"
	"testing"
)

func validTestConfig() *Config {
	return &Config{
		Env:         "test",
		ServiceName: "pingdeck",
		Port:        8080,
		DB:          &DBConfig{URL: "postgres://localhost/pingdeck"},
		Redis:       &RedisConfig{URL: "redis://localhost:6379/0"},
		RabbitMQ:    &RabbitMQConfig{URL: "amqp://localhost:5672/"},
		Auth:        &AuthConfig{Secret: "0123456789abcdef0123456789abcdef", ExpiryMin: 60},
		Cron:        &CronConfig{Secret: "cron-secret"},
		Checker:     &CheckerConfig{},
		SMTP:        &SMTPConfig{},
		Stripe:      &StripeConfig{},
		PayPal:      &PayPalConfig{},
	}
}

func TestValidateConfigRequiredSections(t *testing.T) {
	t.Run("complete config passes", func(t *testing.T) {
		if err := validateConfig(validTestConfig()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("twilio is optional", func(t *testing.T) {
		cfg := validTestConfig()
		cfg.Twilio = nil
		if err := validateConfig(cfg); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	// every section the container dereferences must be rejected at load
	// time when missing, not panic at startup
	tests := []struct {
		name  string
		strip func(*Config)
	}{
		{"smtp", func(c *Config) { c.SMTP = nil }},
		{"stripe", func(c *Config) { c.Stripe = nil }},
		{"paypal", func(c *Config) { c.PayPal = nil }},
		{"checker", func(c *Config) { c.Checker = nil }},
		{"db", func(c *Config) { c.DB = nil }},
	}

	for _, tt := range tests {
		t.Run("missing "+tt.name+" fails", func(t *testing.T) {
			cfg := validTestConfig()
			tt.strip(cfg)

			err := validateConfig(cfg)
			if err == nil {
				t.Fatalf("missing %s section accepted", tt.name)
			}
			if !strings.Contains(err.Error(), "required") {
				t.Errorf("error %q does not mention the required tag", err)
			}
		})
	}
}
