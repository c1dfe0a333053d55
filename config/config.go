package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all non-secret configuration for the application.
// Secrets (DATABASE_URL, JWT_SECRET, TWILIO_*, AI_URL) stay in the
// environment and are read where they are used.
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	MQTT   MQTTConfig   `mapstructure:"mqtt"`
	Alerts AlertConfig  `mapstructure:"alerts"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// MQTTConfig holds MQTT ingest configuration. An empty broker disables
// the MQTT listener and leaves HTTP as the only ingest path.
type MQTTConfig struct {
	Broker   string `mapstructure:"broker"`
	Port     int    `mapstructure:"port"`
	ClientID string `mapstructure:"client_id"`
	Topic    string `mapstructure:"topic"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

// AlertConfig holds SMS alerting configuration.
type AlertConfig struct {
	Enabled         bool   `mapstructure:"enabled"`
	From            string `mapstructure:"from"`
	To              string `mapstructure:"to"`
	CooldownMinutes int    `mapstructure:"cooldown_minutes"`
}

// LoadConfig loads configuration from config.yaml and/or environment
// variables, falling back to defaults for anything unset.
func LoadConfig(path string) (*Config, error) {
	defaults := GetDefaultConfig()
	viper.SetDefault("server.port", defaults.Server.Port)
	viper.SetDefault("server.allowed_origins", defaults.Server.AllowedOrigins)

	viper.SetDefault("mqtt.broker", defaults.MQTT.Broker)
	viper.SetDefault("mqtt.port", defaults.MQTT.Port)
	viper.SetDefault("mqtt.client_id", defaults.MQTT.ClientID)
	viper.SetDefault("mqtt.topic", defaults.MQTT.Topic)
	viper.SetDefault("mqtt.username", defaults.MQTT.Username)
	viper.SetDefault("mqtt.password", defaults.MQTT.Password)

	viper.SetDefault("alerts.enabled", defaults.Alerts.Enabled)
	viper.SetDefault("alerts.from", defaults.Alerts.From)
	viper.SetDefault("alerts.to", defaults.Alerts.To)
	viper.SetDefault("alerts.cooldown_minutes", defaults.Alerts.CooldownMinutes)

	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Map configuration keys to environment variables,
	// e.g. mqtt.broker -> MQTT_BROKER.
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.BindEnv("server.port", "PORT")
	viper.BindEnv("mqtt.broker", "MQTT_BROKER")
	viper.BindEnv("mqtt.port", "MQTT_PORT")
	viper.BindEnv("mqtt.client_id", "MQTT_CLIENT_ID")
	viper.BindEnv("mqtt.topic", "MQTT_TOPIC")
	viper.BindEnv("mqtt.username", "MQTT_USERNAME")
	viper.BindEnv("mqtt.password", "MQTT_PASSWORD")
	viper.BindEnv("alerts.enabled", "ALERTS_ENABLED")
	viper.BindEnv("alerts.from", "ALERTS_FROM")
	viper.BindEnv("alerts.to", "ALERTS_TO")
	viper.BindEnv("alerts.cooldown_minutes", "ALERTS_COOLDOWN_MINUTES")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Printf("Warning: error reading config file: %v", err)
		}
		// Continue with environment variables and defaults.
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	return &cfg, nil
}

// GetDefaultConfig returns default configuration.
func GetDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           "8080",
			AllowedOrigins: []string{"http://localhost:3000"},
		},
		MQTT: MQTTConfig{
			Broker:   "",
			Port:     1883,
			ClientID: "smartfarm-backend",
			Topic:    "farm/sensors",
			Username: "",
			Password: "",
		},
		Alerts: AlertConfig{
			Enabled:         false,
			From:            "",
			To:              "",
			CooldownMinutes: 30,
		},
	}
}

// BrokerURL returns the MQTT broker URL with a protocol and port,
// defaulting to tcp:// when none is given.
func (c *MQTTConfig) BrokerURL() string {
	broker := c.Broker
	if broker == "" {
		return ""
	}
	if strings.HasPrefix(broker, "tcp://") || strings.HasPrefix(broker, "ssl://") ||
		strings.HasPrefix(broker, "ws://") || strings.HasPrefix(broker, "wss://") {
		return broker
	}
	return fmt.Sprintf("tcp://%s:%d", broker, c.Port)
}
