// Package relay forwards rental lifecycle events to the inter-location MQTT
// broker. The multi-location synchronization protocol itself lives outside
// this service; the relay only publishes what happened here, and the core
// never waits on it.
package relay

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"github.com/fleetrent/rentd/core/model"
	"github.com/fleetrent/rentd/infra/logger"
)

// Config defines the connection parameters for the relay.
type Config struct {
	Enabled   bool   `json:"enabled"`
	Broker    string `json:"broker"`
	ClientID  string `json:"client_id"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	Topic     string `json:"topic"`
	QoS       byte   `json:"qos"`
	TimeoutMS int    `json:"timeout_ms"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.Topic == "" {
		c.Topic = "rentals/events"
	}
	if c.TimeoutMS == 0 {
		c.TimeoutMS = 5000
	}
}

// Validate checks mandatory fields when the relay is enabled.
func (c Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.Broker == "" {
		return fmt.Errorf("relay broker is required")
	}
	if c.ClientID == "" {
		return fmt.Errorf("relay client id is required")
	}
	return nil
}

// message is the wire envelope published for each event.
type message struct {
	MessageID string            `json:"message_id"`
	Event     model.RentalEvent `json:"event"`
}

type pahoClient interface {
	IsConnected() bool
	Connect() paho.Token
	Disconnect(quiesce uint)
	Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token
}

var newMQTTClient = func(opts *paho.ClientOptions) pahoClient {
	return paho.NewClient(opts)
}

// Relay publishes rental events to the broker.
type Relay struct {
	cli     pahoClient
	topic   string
	qos     byte
	timeout time.Duration
	log     logger.Logger
}

// New connects to the broker and returns the relay.
func New(cfg Config) (*Relay, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log := logger.New("relay")
	opts := paho.NewClientOptions().AddBroker(cfg.Broker).SetClientID(cfg.ClientID)
	opts.AutoReconnect = true
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
	}
	if cfg.Password != "" {
		opts.SetPassword(cfg.Password)
	}
	opts.OnConnect = func(paho.Client) { log.Infof("relay connected to %s", cfg.Broker) }
	opts.OnConnectionLost = func(_ paho.Client, err error) { log.Errorf("relay connection lost: %v", err) }

	c := newMQTTClient(opts)
	if token := c.Connect(); token.Wait() && token.Error() != nil {
		return nil, token.Error()
	}
	return &Relay{
		cli:     c,
		topic:   cfg.Topic,
		qos:     cfg.QoS,
		timeout: time.Duration(cfg.TimeoutMS) * time.Millisecond,
		log:     log,
	}, nil
}

// Publish sends one event. The payload carries a fresh message id so peers
// can deduplicate redeliveries.
func (r *Relay) Publish(ev model.RentalEvent) error {
	payload, err := json.Marshal(message{MessageID: uuid.NewString(), Event: ev})
	if err != nil {
		return err
	}
	topic := fmt.Sprintf("%s/%s", r.topic, ev.Kind)
	token := r.cli.Publish(topic, r.qos, false, payload)
	if !token.WaitTimeout(r.timeout) {
		return fmt.Errorf("publish to %s timed out", topic)
	}
	return token.Error()
}

// Run consumes events from the channel until the context is canceled or the
// channel closes. Publish failures are logged and dropped; the rental state
// at this location is already committed.
func (r *Relay) Run(ctx context.Context, events <-chan model.RentalEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			if err := r.Publish(ev); err != nil {
				r.log.Errorf("relay %s %s: %v", ev.Kind, ev.BookingNumber, err)
			}
		}
	}
}

// Close disconnects from the broker.
func (r *Relay) Close() {
	r.cli.Disconnect(250)
}
