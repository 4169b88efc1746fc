package realtime

import (
	"sync"

	"go.uber.org/zap"
)

const subscriberBuffer = 16

// Topic names. One topic per entity; subscribers receive either the full
// updated aggregate or a small typed event envelope.
func FriendTopic(userID string) string       { return "friends/" + userID }
func PostTopic(postID string) string         { return "posts/" + postID }
func NotificationTopic(userID string) string { return "notifications/" + userID }

// Subscriber is one live listener on a topic.
type Subscriber struct {
	topic string
	ch    chan any
}

// C returns the channel messages are delivered on.
func (s *Subscriber) C() <-chan any { return s.ch }

// Topic returns the topic this subscriber is attached to.
func (s *Subscriber) Topic() string { return s.topic }

// Hub is the in-process publish/subscribe fabric for live updates. It holds no
// persistent state; a topic exists only while someone is subscribed to it.
// Delivery is best-effort: slow subscribers drop messages, and publishing never
// blocks the mutation that triggered it.
type Hub struct {
	mu     sync.RWMutex
	topics map[string]map[*Subscriber]struct{}
	log    *zap.Logger
}

// NewHub creates a new Hub
func NewHub(log *zap.Logger) *Hub {
	return &Hub{
		topics: make(map[string]map[*Subscriber]struct{}),
		log:    log,
	}
}

// Subscribe attaches a new subscriber to a topic
func (h *Hub) Subscribe(topic string) *Subscriber {
	s := &Subscriber{topic: topic, ch: make(chan any, subscriberBuffer)}

	h.mu.Lock()
	defer h.mu.Unlock()
	subs, ok := h.topics[topic]
	if !ok {
		subs = make(map[*Subscriber]struct{})
		h.topics[topic] = subs
	}
	subs[s] = struct{}{}
	return s
}

// Unsubscribe detaches a subscriber and closes its channel. Empty topics are
// removed entirely.
func (h *Hub) Unsubscribe(s *Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	subs, ok := h.topics[s.topic]
	if !ok {
		return
	}
	if _, ok := subs[s]; !ok {
		return
	}
	delete(subs, s)
	close(s.ch)
	if len(subs) == 0 {
		delete(h.topics, s.topic)
	}
}

// Publish delivers payload to every current subscriber of the topic. Subscribers
// whose buffer is full miss the message; the drop is logged, never surfaced.
func (h *Hub) Publish(topic string, payload any) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for s := range h.topics[topic] {
		select {
		case s.ch <- payload:
		default:
			h.log.Warn("dropping message for slow subscriber", zap.String("topic", topic))
		}
	}
}

// SubscriberCount returns the number of live subscribers on a topic.
func (h *Hub) SubscriberCount(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.topics[topic])
}
