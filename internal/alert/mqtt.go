package alert

import (
	"context"
	"encoding/json"
	"log/slog"

	paho "github.com/eclipse/paho.mqtt.golang"

	"sosai/internal/domain"
)

type MQTTConfig struct {
	BrokerURL   string
	ClientID    string
	Username    string
	Password    string
	TopicPrefix string
}

// MQTTPublisher mirrors HIGH-risk alerts onto an MQTT topic so external
// on-call tooling can subscribe without holding a websocket to this service.
type MQTTPublisher struct {
	cfg    MQTTConfig
	client paho.Client
	logger *slog.Logger
}

func NewMQTTPublisher(cfg MQTTConfig, logger *slog.Logger) *MQTTPublisher {
	return &MQTTPublisher{cfg: cfg, logger: logger}
}

func (p *MQTTPublisher) Start(ctx context.Context) error {
	opts := paho.NewClientOptions().
		AddBroker(p.cfg.BrokerURL).
		SetClientID(p.cfg.ClientID).
		SetAutoReconnect(true).
		SetConnectRetry(true)

	if p.cfg.Username != "" {
		opts.SetUsername(p.cfg.Username)
		opts.SetPassword(p.cfg.Password)
	}

	opts.SetConnectionLostHandler(func(_ paho.Client, err error) {
		p.logger.Error("mqtt connection lost", "error", err)
	})

	p.client = paho.NewClient(opts)
	if token := p.client.Connect(); token.Wait() && token.Error() != nil {
		return token.Error()
	}

	go func() {
		<-ctx.Done()
		p.client.Disconnect(100)
	}()

	return nil
}

func (p *MQTTPublisher) Publish(a domain.ExpertAlert) {
	payload, err := json.Marshal(a)
	if err != nil {
		p.logger.Error("marshal alert failed", "error", err)
		return
	}
	topic := p.cfg.TopicPrefix + "/alerts/high"
	if token := p.client.Publish(topic, 1, false, payload); token.Wait() && token.Error() != nil {
		p.logger.Warn("mqtt alert publish failed", "topic", topic, "error", token.Error())
	}
}
