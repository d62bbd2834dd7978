package event

// Topic names a stream of notifications.
type Topic string

// Handler receives a published payload.
type Handler func(payload any)

type listener struct {
	id      uint64
	handler Handler
}

// Bus is a synchronous publish/subscribe dispatcher keyed by topic.
// Publish delivers to the listeners registered at the moment of the call,
// in subscription order.
type Bus struct {
	listeners map[Topic][]listener
	nextID    uint64
}

func NewBus() *Bus {
	return &Bus{listeners: make(map[Topic][]listener)}
}

// Subscription detaches one handler from its topic.
type Subscription struct {
	bus   *Bus
	topic Topic
	id    uint64
}

// Subscribe registers h on topic.
func (b *Bus) Subscribe(topic Topic, h Handler) Subscription {
	if b == nil || h == nil {
		return Subscription{}
	}
	if b.listeners == nil {
		b.listeners = make(map[Topic][]listener)
	}
	b.nextID++
	b.listeners[topic] = append(b.listeners[topic], listener{id: b.nextID, handler: h})
	return Subscription{bus: b, topic: topic, id: b.nextID}
}

// Unsubscribe is safe to call more than once.
func (s Subscription) Unsubscribe() {
	if s.bus == nil || s.id == 0 {
		return
	}
	ls := s.bus.listeners[s.topic]
	for i, l := range ls {
		if l.id == s.id {
			s.bus.listeners[s.topic] = append(ls[:i:i], ls[i+1:]...)
			break
		}
	}
	if len(s.bus.listeners[s.topic]) == 0 {
		delete(s.bus.listeners, s.topic)
	}
}

// Publish dispatches payload to every handler on topic.
func (b *Bus) Publish(topic Topic, payload any) {
	if b == nil {
		return
	}
	ls := b.listeners[topic]
	if len(ls) == 0 {
		return
	}
	snapshot := append([]listener(nil), ls...)
	for _, l := range snapshot {
		l.handler(payload)
	}
}

// Listeners returns the number of handlers on topic.
func (b *Bus) Listeners(topic Topic) int {
	if b == nil {
		return 0
	}
	return len(b.listeners[topic])
}
