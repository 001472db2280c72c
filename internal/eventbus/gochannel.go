package eventbus

import (
	"context"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// channelEventBus is an in-process EventBus over watermill's gochannel
// Pub/Sub. It is used by tests and by single-binary deployments that have
// no NATS available.
type channelEventBus struct {
	pubSub *gochannel.GoChannel
}

// NewChannelEventBus returns an in-memory EventBus.
func NewChannelEventBus(logger *slog.Logger) EventBus {
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{
			OutputChannelBuffer: 64,
		},
		watermill.NewSlogLogger(logger),
	)
	return &channelEventBus{pubSub: pubSub}
}

func (eb *channelEventBus) Publish(ctx context.Context, topic string, msg *message.Message) error {
	if msg.UUID == "" {
		msg.UUID = watermill.NewUUID()
	}
	return eb.pubSub.Publish(topic, msg)
}

func (eb *channelEventBus) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	return eb.pubSub.Subscribe(ctx, topic)
}

func (eb *channelEventBus) Publisher() message.Publisher { return eb.pubSub }

func (eb *channelEventBus) Subscriber() message.Subscriber { return eb.pubSub }

func (eb *channelEventBus) Close() error { return eb.pubSub.Close() }
