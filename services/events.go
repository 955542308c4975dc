package services

// EventBroadcaster pushes tournament events to live subscribers.
// *realtime.Hub satisfies it.
type EventBroadcaster interface {
	Broadcast(eventType string, payload interface{}) error
}
