package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/app/configs")

	viper.SetEnvPrefix("STUDAI")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Allow common env vars without the prefix for Docker/VM deploys
	viper.BindEnv("http.port", "HTTP_PORT", "STUDAI_HTTP_PORT")
	viper.BindEnv("database.url", "DATABASE_URL", "STUDAI_DATABASE_URL")
	viper.BindEnv("redis.url", "REDIS_URL", "STUDAI_REDIS_URL")
	viper.BindEnv("queue.nats_url", "NATS_URL", "STUDAI_QUEUE_NATS_URL")
	viper.BindEnv("queue.rabbitmq_url", "RABBITMQ_URL", "STUDAI_QUEUE_RABBITMQ_URL")
	viper.BindEnv("jwt.secret", "JWT_SECRET", "STUDAI_JWT_SECRET")
	viper.BindEnv("classifier.url", "CLASSIFIER_URL", "STUDAI_CLASSIFIER_URL")
	viper.BindEnv("classifier.api_key", "CLASSIFIER_API_KEY")
	viper.BindEnv("vault.address", "VAULT_ADDR")
	viper.BindEnv("vault.token", "VAULT_TOKEN")
	viper.BindEnv("email.api_key", "SENDGRID_API_KEY")
	viper.BindEnv("app.environment", "APP_ENVIRONMENT")
	viper.BindEnv("logging.level", "LOG_LEVEL")

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// no config file is fine, env vars carry the settings
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("app.name", "studai")
	viper.SetDefault("http.port", 8080)
	viper.SetDefault("queue.driver", "nats")
	viper.SetDefault("jwt.access_token_duration", 15*time.Minute)
	viper.SetDefault("jwt.refresh_token_duration", 7*24*time.Hour)

	// Remote-classifier calls must stay bounded so a hung network call
	// cannot stall a voice session.
	viper.SetDefault("classifier.timeout", 5*time.Second)
	viper.SetDefault("classifier.breaker_interval", time.Minute)
	viper.SetDefault("classifier.breaker_timeout", 30*time.Second)
	viper.SetDefault("classifier.failure_threshold", 5)

	viper.SetDefault("speech.locale", "es-ES")
	viper.SetDefault("speech.default_speed", 1.0)
	viper.SetDefault("speech.dial_timeout", 10*time.Second)

	viper.SetDefault("telemetry.metrics_path", "/metrics")
	viper.SetDefault("logging.level", "info")
}
