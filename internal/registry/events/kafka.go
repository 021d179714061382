// Package events provides the Kafka event sink fanning lifecycle events out to
// an external stream. The sink is best-effort by contract: the service logs
// and continues when a publish fails, so nothing here retries.
package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/twmb/franz-go/pkg/kgo"

	"cidreg/internal/registry/models"
)

// Event type discriminators carried in the message payload.
const (
	TypeRegistration  = "registration"
	TypeAddressChange = "address_change"
)

// KafkaSink implements ports.EventSink on a franz-go client. Messages are
// keyed by CID so per-CID ordering survives partitioning.
type KafkaSink struct {
	client *kgo.Client
	topic  string
}

func NewKafkaSink(client *kgo.Client, topic string) (*KafkaSink, error) {
	if client == nil {
		return nil, fmt.Errorf("kafka client is required")
	}
	if topic == "" {
		return nil, fmt.Errorf("kafka topic is required")
	}
	return &KafkaSink{client: client, topic: topic}, nil
}

func (s *KafkaSink) PublishRegistration(ctx context.Context, ev models.RegistrationEvent) error {
	payload, err := json.Marshal(struct {
		Type string `json:"type"`
		models.RegistrationEvent
	}{Type: TypeRegistration, RegistrationEvent: ev})
	if err != nil {
		return fmt.Errorf("marshal registration event: %w", err)
	}
	return s.produce(ctx, ev.CID.String(), payload)
}

func (s *KafkaSink) PublishAddressChange(ctx context.Context, ev models.AddressChangeEvent) error {
	payload, err := json.Marshal(struct {
		Type string `json:"type"`
		models.AddressChangeEvent
	}{Type: TypeAddressChange, AddressChangeEvent: ev})
	if err != nil {
		return fmt.Errorf("marshal address change event: %w", err)
	}
	return s.produce(ctx, ev.CID.String(), payload)
}

func (s *KafkaSink) produce(ctx context.Context, key string, payload []byte) error {
	rec := &kgo.Record{
		Topic: s.topic,
		Key:   []byte(key),
		Value: payload,
	}
	if err := s.client.ProduceSync(ctx, rec).FirstErr(); err != nil {
		return fmt.Errorf("produce to %s: %w", s.topic, err)
	}
	return nil
}

// Close flushes buffered records and releases the client.
func (s *KafkaSink) Close() {
	s.client.Close()
}
