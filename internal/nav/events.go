package nav

type EventType int

const (
	EventStarted EventType = iota
	EventStopped
	EventSegmentChanged
	EventDeadEndReached
	EventRepositioned
)

// Event is a semantic navigation occurrence. Presentation (notifications,
// minimap, audio) subscribes; the navigator never touches UI itself.
type Event struct {
	Type    EventType
	Segment SegID
	Node    NodeID // node at which the event occurred, NoNode if n/a
}

type EventHandler func(Event)

type EventBus struct {
	handlers map[EventType][]EventHandler
}

func NewEventBus() *EventBus {
	return &EventBus{
		handlers: make(map[EventType][]EventHandler),
	}
}

func (eb *EventBus) Subscribe(t EventType, fn EventHandler) {
	eb.handlers[t] = append(eb.handlers[t], fn)
}

func (eb *EventBus) Emit(e Event) {
	for _, fn := range eb.handlers[e.Type] {
		fn(e)
	}
}
