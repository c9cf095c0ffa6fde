package pubsub

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/talx-hub/gopher-graph/internal/model/user"
)

const TopicUserCreated = "user_created"

// subscriberBuffer absorbs short bursts; a subscriber that falls further
// behind loses deliveries rather than blocking publishers.
const subscriberBuffer = 16

// Broker is an in-process fan-out notifier. Delivery is at-most-once per
// subscriber, nothing is buffered before a subscription exists, and a
// publish with zero subscribers is silently dropped.
type Broker struct {
	mu   sync.RWMutex
	subs map[string]map[uuid.UUID]chan user.User
}

func New() *Broker {
	return &Broker{
		subs: make(map[string]map[uuid.UUID]chan user.User),
	}
}

// Subscribe registers a new subscriber on topic. The returned channel
// yields every payload published after this call and is closed when ctx
// is done.
func (b *Broker) Subscribe(ctx context.Context, topic string) <-chan user.User {
	ch := make(chan user.User, subscriberBuffer)
	id := uuid.New()

	b.mu.Lock()
	if b.subs[topic] == nil {
		b.subs[topic] = make(map[uuid.UUID]chan user.User)
	}
	b.subs[topic][id] = ch
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.unsubscribe(topic, id)
	}()

	return ch
}

func (b *Broker) Publish(topic string, u user.User) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, ch := range b.subs[topic] {
		select {
		case ch <- u:
		default:
		}
	}
}

// SubscriberCount is used by tests and the health endpoint.
func (b *Broker) SubscriberCount(topic string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[topic])
}

func (b *Broker) unsubscribe(topic string, id uuid.UUID) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch, ok := b.subs[topic][id]
	if !ok {
		return
	}
	delete(b.subs[topic], id)
	close(ch)
}
