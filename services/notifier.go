package services

const (
	EventFeedbackCreated = "feedback.created"
	EventTicketUpdated   = "ticket.updated"
	EventSubscription    = "subscription.changed"
)

// Event ถูกส่งไปยัง dashboard ของเจ้าของร้านผ่าน websocket
type Event struct {
	Type      string `json:"type"`
	ProfileID uint   `json:"profileId"`
	Data      any    `json:"data"`
}

type Notifier interface {
	Publish(profileID uint, ev Event)
}

type noopNotifier struct{}

func (noopNotifier) Publish(uint, Event) {}

func notifierOrNoop(n Notifier) Notifier {
	if n == nil {
		return noopNotifier{}
	}
	return n
}
