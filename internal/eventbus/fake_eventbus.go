package eventbus

import (
	"context"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
)

// FakeEventBus is a fake EventBus for testing. It records published
// messages per topic and can hand out manually fed subscription
// channels.
type FakeEventBus struct {
	mu        sync.Mutex
	published map[string][]*message.Message

	PublishFn   func(ctx context.Context, topic string, msg *message.Message) error
	SubscribeFn func(ctx context.Context, topic string) (<-chan *message.Message, error)
}

var _ EventBus = (*FakeEventBus)(nil)

// NewFakeEventBus creates an empty fake bus.
func NewFakeEventBus() *FakeEventBus {
	return &FakeEventBus{published: make(map[string][]*message.Message)}
}

func (f *FakeEventBus) Publish(ctx context.Context, topic string, msg *message.Message) error {
	if f.PublishFn != nil {
		return f.PublishFn(ctx, topic, msg)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.published[topic] = append(f.published[topic], msg)
	return nil
}

func (f *FakeEventBus) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	if f.SubscribeFn != nil {
		return f.SubscribeFn(ctx, topic)
	}
	ch := make(chan *message.Message)
	go func() {
		<-ctx.Done()
		close(ch)
	}()
	return ch, nil
}

// Published returns the messages published to topic so far.
func (f *FakeEventBus) Published(topic string) []*message.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*message.Message, len(f.published[topic]))
	copy(out, f.published[topic])
	return out
}

func (f *FakeEventBus) Publisher() message.Publisher   { return nil }
func (f *FakeEventBus) Subscriber() message.Subscriber { return nil }
func (f *FakeEventBus) Close() error                   { return nil }
