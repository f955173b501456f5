// Package notify defines the notification collaborator interface. Delivery
// (email, dashboards) lives outside the core; the state machine only fires
// an event on terminal transitions and never lets a delivery failure roll
// back the transition.
package notify

import (
	"github.com/halsabbah10/AI-powered-Faculty-Conference-Travel-System/internal/logger"
	"github.com/halsabbah10/AI-powered-Faculty-Conference-Travel-System/internal/models"
)

// Event describes a terminal state transition on a travel request.
type Event struct {
	RequestID uint                 `json:"request_id"`
	Reference string               `json:"reference"`
	NewStatus models.RequestStatus `json:"new_status"`
	ActorID   uint                 `json:"actor_id"`
}

// Notifier is invoked fire-and-forget on every terminal transition.
type Notifier interface {
	Notify(event Event)
}

// LogNotifier records events to the application log. It stands in for the
// external delivery collaborator in development and tests.
type LogNotifier struct{}

// NewLogNotifier creates a LogNotifier.
func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

// Notify logs the event.
func (n *LogNotifier) Notify(event Event) {
	logger.Get().Infow("request decision notification",
		"request_id", event.RequestID,
		"reference", event.Reference,
		"new_status", event.NewStatus,
		"actor_id", event.ActorID,
	)
}
