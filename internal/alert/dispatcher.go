package alert

import (
	"time"

	"sosai/internal/domain"
)

// Dispatcher fans one alert out to every configured channel. The MQTT
// channel is optional; a nil publisher is skipped.
type Dispatcher struct {
	hub  *Hub
	mqtt *MQTTPublisher
}

func NewDispatcher(hub *Hub, mqtt *MQTTPublisher) *Dispatcher {
	return &Dispatcher{hub: hub, mqtt: mqtt}
}

func (d *Dispatcher) Notify(a domain.ExpertAlert) {
	if a.At.IsZero() {
		a.At = time.Now()
	}
	d.hub.Broadcast(a)
	if d.mqtt != nil {
		d.mqtt.Publish(a)
	}
}
