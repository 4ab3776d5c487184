package input

import "sync"

type subscriber struct {
	id      Subscription
	kind    EventKind
	handler Handler
}

// Hub is an in-process Surface. Hosts push native events into it with Dispatch and
// consumers subscribe to the kinds they care about.
type Hub struct {
	mu *sync.Mutex

	nextID      Subscription
	subscribers map[EventKind][]*subscriber
	active      map[Subscription]*subscriber

	width  int
	height int
	touch  bool
}

var _ Surface = &Hub{}

// NewHub creates a new Hub with the specified options.
// Defaults to an 800x800 client area without native touch support.
//
// Parameters:
//   - options: functional options to configure the hub
//
// Returns:
//   - *Hub: the newly created hub
func NewHub(options ...HubOption) *Hub {
	h := &Hub{
		mu:          &sync.Mutex{},
		subscribers: make(map[EventKind][]*subscriber),
		active:      make(map[Subscription]*subscriber),
		width:       800,
		height:      800,
	}
	for _, opt := range options {
		opt(h)
	}
	return h
}

func (h *Hub) Subscribe(kind EventKind, handler Handler) Subscription {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.nextID++
	sub := &subscriber{id: h.nextID, kind: kind, handler: handler}
	h.subscribers[kind] = append(h.subscribers[kind], sub)
	h.active[sub.id] = sub
	return sub.id
}

func (h *Hub) Unsubscribe(id Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()

	sub, ok := h.active[id]
	if !ok {
		return
	}
	delete(h.active, id)

	list := h.subscribers[sub.kind]
	for i, s := range list {
		if s.id == id {
			h.subscribers[sub.kind] = append(list[:i:i], list[i+1:]...)
			break
		}
	}
}

func (h *Hub) Size() (width, height int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.width, h.height
}

func (h *Hub) SupportsTouch() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.touch
}

// SetSize updates the client area size reported by Size.
//
// Parameters:
//   - width, height: client area dimensions in pixels
func (h *Hub) SetSize(width, height int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.width = width
	h.height = height
}

// Dispatch delivers an event to every handler subscribed to its kind, in registration order.
// Handlers run without the hub lock held, so they may subscribe or unsubscribe freely.
// A handler removed while the event is being delivered is not invoked.
//
// Parameters:
//   - e: the event to deliver
func (h *Hub) Dispatch(e *Event) {
	h.mu.Lock()
	snapshot := make([]*subscriber, len(h.subscribers[e.Kind]))
	copy(snapshot, h.subscribers[e.Kind])
	h.mu.Unlock()

	for _, sub := range snapshot {
		if e.PropagationStopped() {
			return
		}
		h.mu.Lock()
		_, live := h.active[sub.id]
		h.mu.Unlock()
		if !live {
			continue
		}
		sub.handler(e)
	}
}

// Listeners returns the number of handlers currently subscribed to a kind.
//
// Parameters:
//   - kind: the event kind to count
//
// Returns:
//   - int: number of live handlers for kind
func (h *Hub) Listeners(kind EventKind) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subscribers[kind])
}

// TotalListeners returns the number of live handlers across all kinds.
func (h *Hub) TotalListeners() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.active)
}
