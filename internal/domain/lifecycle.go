package domain

// EventStatus is the lifecycle state of an Event.
type EventStatus string

const (
	EventPlanning  EventStatus = "planning"
	EventActive    EventStatus = "active"
	EventCancelled EventStatus = "cancelled"
	EventFinished  EventStatus = "finished"
)

// Valid reports whether s is a known event status.
func (s EventStatus) Valid() bool {
	switch s {
	case EventPlanning, EventActive, EventCancelled, EventFinished:
		return true
	}
	return false
}

// ActivityStatus is the lifecycle state of an Activity.
type ActivityStatus string

const (
	ActivityScheduled ActivityStatus = "scheduled"
	ActivityCancelled ActivityStatus = "cancelled"
)

// Valid reports whether s is a known activity status.
func (s ActivityStatus) Valid() bool {
	return s == ActivityScheduled || s == ActivityCancelled
}

// eventTransitions lists allowed targets per source status. A nil entry allows any valid target.
var eventTransitions = map[EventStatus][]EventStatus{}

// activityTransitions is the activity counterpart of eventTransitions.
var activityTransitions = map[ActivityStatus][]ActivityStatus{}

// ValidateEventTransition returns a ValidationError when from -> to is not permitted.
// Every status may currently move to every other status.
func ValidateEventTransition(from, to EventStatus) error {
	if !to.Valid() {
		return NewValidationError("status", "unknown event status "+string(to))
	}
	allowed, restricted := eventTransitions[from]
	if !restricted {
		return nil
	}
	for _, s := range allowed {
		if s == to {
			return nil
		}
	}
	return NewValidationError("status", "event cannot move from "+string(from)+" to "+string(to))
}

// ValidateActivityTransition returns a ValidationError when from -> to is not permitted.
func ValidateActivityTransition(from, to ActivityStatus) error {
	if !to.Valid() {
		return NewValidationError("status", "unknown activity status "+string(to))
	}
	allowed, restricted := activityTransitions[from]
	if !restricted {
		return nil
	}
	for _, s := range allowed {
		if s == to {
			return nil
		}
	}
	return NewValidationError("status", "activity cannot move from "+string(from)+" to "+string(to))
}

// EventTransition is the outcome of an event status change.
type EventTransition struct {
	EventID   string      `json:"event_id"`
	OldStatus EventStatus `json:"old_status"`
	NewStatus EventStatus `json:"new_status"`
}

// Changed reports whether the stored status actually moved.
func (t EventTransition) Changed() bool { return t.OldStatus != t.NewStatus }

// ActivityTransition is the outcome of an activity status change. EventID and PresenterID are
// carried so the caller can resolve the audience without another lookup.
type ActivityTransition struct {
	ActivityID  string         `json:"activity_id"`
	EventID     string         `json:"event_id"`
	PresenterID *string        `json:"presenter_id,omitempty"`
	OldStatus   ActivityStatus `json:"old_status"`
	NewStatus   ActivityStatus `json:"new_status"`
}

// Changed reports whether the stored status actually moved.
func (t ActivityTransition) Changed() bool { return t.OldStatus != t.NewStatus }

// FieldChange records one field whose stored value differs from the requested value.
type FieldChange struct {
	Field    string `json:"field"`
	OldValue string `json:"old_value"`
	NewValue string `json:"new_value"`
}
