// Package mqtt subscribes to the field station's sensor topic and feeds
// readings into the same ingest path as the HTTP API.
package mqtt

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"smartfarm/config"
	"smartfarm/models"
)

const connectTimeout = 10 * time.Second

// IngestFunc handles one decoded sensor payload. Wired to the
// controllers' ingest path by main to avoid an import cycle.
type IngestFunc func(models.SensorReadingInput) (models.SensorReading, error)

// Listener owns the MQTT connection for sensor ingest.
type Listener struct {
	client paho.Client
	topic  string
}

// NewListener connects to the broker and subscribes to the sensor topic.
func NewListener(cfg config.MQTTConfig, ingest IngestFunc) (*Listener, error) {
	opts := paho.NewClientOptions().AddBroker(cfg.BrokerURL())
	opts.SetClientID(cfg.ClientID)
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}
	opts.SetAutoReconnect(true)
	opts.SetConnectRetry(true)

	client := paho.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(connectTimeout) {
		return nil, fmt.Errorf("timed out connecting to MQTT broker %s", cfg.BrokerURL())
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("failed to connect to MQTT broker: %w", err)
	}
	slog.Info("connected to MQTT broker", "broker", cfg.BrokerURL())

	handler := func(_ paho.Client, msg paho.Message) {
		var input models.SensorReadingInput
		if err := json.Unmarshal(msg.Payload(), &input); err != nil {
			slog.Warn("discarding malformed sensor payload", "topic", msg.Topic(), "err", err)
			return
		}
		if _, err := ingest(input); err != nil {
			slog.Warn("discarding invalid sensor payload", "topic", msg.Topic(), "err", err)
		}
	}

	token = client.Subscribe(cfg.Topic, 1, handler)
	if !token.WaitTimeout(connectTimeout) || token.Error() != nil {
		client.Disconnect(250)
		return nil, fmt.Errorf("failed to subscribe to %s: %v", cfg.Topic, token.Error())
	}
	slog.Info("subscribed to sensor topic", "topic", cfg.Topic)

	return &Listener{client: client, topic: cfg.Topic}, nil
}

// Close unsubscribes and disconnects from the broker.
func (l *Listener) Close() {
	if l == nil || l.client == nil {
		return
	}
	l.client.Unsubscribe(l.topic)
	l.client.Disconnect(250) // Wait up to 250 milliseconds for inflight messages to be delivered
}
