// Package telemetry provides session statistics, event logs, performance
// timings and metrics for the forage simulation.
package telemetry

// EventKind identifies telemetry events.
type EventKind string

const (
	EventSessionStart EventKind = "session_start"
	EventFoodSpawned  EventKind = "food_spawned"
	EventFoodEaten    EventKind = "food_eaten"
	EventScan         EventKind = "scan"
	EventDetection    EventKind = "detection"
	EventCapture      EventKind = "capture"
	EventGameOver     EventKind = "game_over"
)

// Event represents a single telemetry event. Entity ids are ECS ids; 0 means none.
type Event struct {
	Session  string    `csv:"session"`
	Tick     int32     `csv:"tick"`
	SimTime  float64   `csv:"sim_time"`
	Kind     EventKind `csv:"kind"`
	EntityID uint32    `csv:"entity"`
	TargetID uint32    `csv:"target"`
	Value    float64   `csv:"value"`
	Detail   string    `csv:"detail"`
}

// NewFoodSpawnedEvent creates a spawn event. The position is kept in Detail.
func NewFoodSpawnedEvent(tick int32, foodID uint32, detail string) Event {
	return Event{
		Kind:     EventFoodSpawned,
		Tick:     tick,
		EntityID: foodID,
		Detail:   detail,
	}
}

// NewFoodEatenEvent creates an eat event carrying the prey hunger after eating.
func NewFoodEatenEvent(tick int32, preyID, foodID uint32, hunger float64) Event {
	return Event{
		Kind:     EventFoodEaten,
		Tick:     tick,
		EntityID: preyID,
		TargetID: foodID,
		Value:    hunger,
	}
}

// NewScanEvent creates a scan start event.
func NewScanEvent(tick int32, preyID uint32) Event {
	return Event{
		Kind:     EventScan,
		Tick:     tick,
		EntityID: preyID,
	}
}

// NewDetectionEvent creates an event for an enemy spotting its target.
func NewDetectionEvent(tick int32, hunterID, targetID uint32) Event {
	return Event{
		Kind:     EventDetection,
		Tick:     tick,
		EntityID: hunterID,
		TargetID: targetID,
	}
}

// NewCaptureEvent creates a capture event.
func NewCaptureEvent(tick int32, hunterID, targetID uint32) Event {
	return Event{
		Kind:     EventCapture,
		Tick:     tick,
		EntityID: hunterID,
		TargetID: targetID,
	}
}

// NewGameOverEvent creates the terminal event of a session.
func NewGameOverEvent(tick int32, reason string) Event {
	return Event{
		Kind:   EventGameOver,
		Tick:   tick,
		Detail: reason,
	}
}
