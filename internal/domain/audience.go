package domain

import (
	"context"
	"sort"
)

// TransitionKind selects which audience a lifecycle change notifies.
type TransitionKind string

const (
	TransitionEventCancelled    TransitionKind = "event_cancelled"
	TransitionEventActivated    TransitionKind = "event_activated"
	TransitionEventFinished     TransitionKind = "event_finished"
	TransitionEventUpdated      TransitionKind = "event_updated"
	TransitionActivityCancelled TransitionKind = "activity_cancelled"
	TransitionActivityUpdated   TransitionKind = "activity_updated"
)

// EventStatusTransitionKind maps a new event status to the transition it notifies.
// ok is false for statuses nobody is told about (planning).
func EventStatusTransitionKind(status EventStatus) (kind TransitionKind, ok bool) {
	switch status {
	case EventCancelled:
		return TransitionEventCancelled, true
	case EventActive:
		return TransitionEventActivated, true
	case EventFinished:
		return TransitionEventFinished, true
	}
	return "", false
}

// AudienceRequest identifies the entity whose transition is being announced.
// PresenterID is only read for activity transitions.
type AudienceRequest struct {
	Kind        TransitionKind
	EventID     string
	PresenterID string
}

// Audience is a deduplicated set of recipient user ids.
type Audience map[string]struct{}

// NewAudience returns an audience containing ids.
func NewAudience(ids ...string) Audience {
	a := make(Audience, len(ids))
	a.Add(ids...)
	return a
}

// Add inserts ids, ignoring empty strings.
func (a Audience) Add(ids ...string) {
	for _, id := range ids {
		if id != "" {
			a[id] = struct{}{}
		}
	}
}

// Union adds every member of o.
func (a Audience) Union(o Audience) {
	for id := range o {
		a[id] = struct{}{}
	}
}

// Has reports membership.
func (a Audience) Has(id string) bool {
	_, ok := a[id]
	return ok
}

// Len returns the number of distinct recipients.
func (a Audience) Len() int { return len(a) }

// Members returns the recipients in sorted order.
func (a Audience) Members() []string {
	out := make([]string, 0, len(a))
	for id := range a {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// AudienceResolver computes who must hear about a transition.
type AudienceResolver interface {
	ResolveAudience(ctx context.Context, req AudienceRequest) (Audience, error)
}
