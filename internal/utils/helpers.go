package utils

import (
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
)

// MetadataTopic is the metadata key handlers use to route outgoing
// messages to their publish topic.
const MetadataTopic = "topic"

// Helpers constructs and decodes watermill messages for module handlers.
type Helpers interface {
	// CreateResultMessage builds a message carrying payload as JSON,
	// destined for topic, inheriting the correlation ID of original.
	CreateResultMessage(original *message.Message, payload any, topic string) (*message.Message, error)
	// CreateNewMessage builds a message with a fresh correlation ID.
	CreateNewMessage(payload any, topic string) (*message.Message, error)
	// UnmarshalPayload decodes the JSON payload of msg into out.
	UnmarshalPayload(msg *message.Message, out any) error
}

type helpers struct{}

// NewHelpers returns the default Helpers implementation.
func NewHelpers() Helpers { return helpers{} }

func (helpers) CreateResultMessage(original *message.Message, payload any, topic string) (*message.Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload for %s: %w", topic, err)
	}

	msg := message.NewMessage(watermill.NewUUID(), data)
	msg.Metadata.Set(MetadataTopic, topic)
	if original != nil {
		middleware.SetCorrelationID(middleware.MessageCorrelationID(original), msg)
	}
	return msg, nil
}

func (h helpers) CreateNewMessage(payload any, topic string) (*message.Message, error) {
	msg, err := h.CreateResultMessage(nil, payload, topic)
	if err != nil {
		return nil, err
	}
	middleware.SetCorrelationID(watermill.NewUUID(), msg)
	return msg, nil
}

func (helpers) UnmarshalPayload(msg *message.Message, out any) error {
	if err := json.Unmarshal(msg.Payload, out); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}
	return nil
}
