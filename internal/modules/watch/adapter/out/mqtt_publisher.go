package out

import (
	"context"
	"errors"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
	hclog "github.com/hashicorp/go-hclog"

	watchout "poolwatch/internal/modules/watch/port/out"
)

type MQTTOptions struct {
	Broker         string
	ClientID       string
	QoS            byte
	ConnectTimeout time.Duration
}

// MQTTPublisher publishes retained messages so a late subscriber immediately
// sees each pool's last known occupancy.
type MQTTPublisher struct {
	client mqtt.Client
	qos    byte
	log    hclog.Logger
}

func NewMQTTPublisher(opts MQTTOptions, logger hclog.Logger) (watchout.Publisher, error) {
	if opts.Broker == "" {
		return nil, errors.New("mqtt broker address is required")
	}
	if opts.QoS > 2 {
		return nil, fmt.Errorf("mqtt qos must be 0, 1 or 2, got %d", opts.QoS)
	}
	if opts.ClientID == "" {
		opts.ClientID = "poolwatch-" + uuid.NewString()
	}
	if opts.ConnectTimeout <= 0 {
		opts.ConnectTimeout = 10 * time.Second
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	log := logger.Named("mqtt")

	clientOpts := mqtt.NewClientOptions().
		AddBroker(opts.Broker).
		SetClientID(opts.ClientID).
		SetConnectTimeout(opts.ConnectTimeout).
		SetAutoReconnect(true).
		SetConnectionLostHandler(func(_ mqtt.Client, err error) {
			log.Warn("connection lost", "error", err)
		}).
		SetOnConnectHandler(func(mqtt.Client) {
			log.Debug("connected", "broker", opts.Broker, "client_id", opts.ClientID)
		})
	client := mqtt.NewClient(clientOpts)
	token := client.Connect()
	if !token.WaitTimeout(opts.ConnectTimeout) {
		client.Disconnect(0)
		return nil, fmt.Errorf("connect %s: timed out", opts.Broker)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("connect %s: %w", opts.Broker, err)
	}
	return &MQTTPublisher{client: client, qos: opts.QoS, log: log}, nil
}

func (p *MQTTPublisher) Publish(ctx context.Context, topic string, payload []byte) error {
	token := p.client.Publish(topic, p.qos, true, payload)
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-token.Done():
		return token.Error()
	}
}

// Close waits briefly for in-flight messages before disconnecting.
func (p *MQTTPublisher) Close() {
	p.client.Disconnect(250)
}
