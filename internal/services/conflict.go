package services

import (
	"context"
	"fmt"
	"time"

	"eventscheduling/internal/domain"
)

type conflictChecker struct {
	activityRepo domain.ActivityRepository
}

// NewConflictChecker returns a ConflictChecker reading candidate rows from activityRepo.
func NewConflictChecker(activityRepo domain.ActivityRepository) domain.ConflictChecker {
	return &conflictChecker{activityRepo: activityRepo}
}

func (c *conflictChecker) CheckRoomConflict(ctx context.Context, eventID, room string, date time.Time, window domain.Interval, excludeActivityID string) (domain.ConflictResult, error) {
	candidates, err := c.activityRepo.ListByRoomAndDate(ctx, eventID, room, date)
	if err != nil {
		return domain.ConflictResult{}, fmt.Errorf("list room activities: %w", err)
	}
	return overlapping(candidates, window, excludeActivityID), nil
}

func (c *conflictChecker) CheckPresenterConflict(ctx context.Context, presenterID string, date time.Time, window domain.Interval, excludeActivityID string) (domain.ConflictResult, error) {
	candidates, err := c.activityRepo.ListByPresenterAndDate(ctx, presenterID, date)
	if err != nil {
		return domain.ConflictResult{}, fmt.Errorf("list presenter activities: %w", err)
	}
	return overlapping(candidates, window, excludeActivityID), nil
}

// overlapping filters candidates down to the scheduled ones whose window overlaps window.
func overlapping(candidates []*domain.Activity, window domain.Interval, excludeActivityID string) domain.ConflictResult {
	var ids []string
	for _, a := range candidates {
		if a.ID == excludeActivityID || a.Status == domain.ActivityCancelled {
			continue
		}
		if a.Interval().Overlaps(window) {
			ids = append(ids, a.ID)
		}
	}
	return domain.ConflictResult{ActivityIDs: ids}
}

// checkActivity runs the room check and, when a presenter is set, the presenter check.
// It returns a ConflictError naming every colliding activity, or nil.
func checkActivity(ctx context.Context, checker domain.ConflictChecker, a *domain.Activity, excludeActivityID string) error {
	room, err := checker.CheckRoomConflict(ctx, a.EventID, a.Room, a.Date, a.Interval(), excludeActivityID)
	if err != nil {
		return err
	}
	var presenter domain.ConflictResult
	if p := a.Presenter(); p != "" {
		presenter, err = checker.CheckPresenterConflict(ctx, p, a.Date, a.Interval(), excludeActivityID)
		if err != nil {
			return err
		}
	}
	if !room.HasConflict() && !presenter.HasConflict() {
		return nil
	}
	kind := domain.ConflictRoom
	if !room.HasConflict() {
		kind = domain.ConflictPresenter
	}
	seen := make(map[string]struct{})
	var ids []string
	for _, id := range append(room.ActivityIDs, presenter.ActivityIDs...) {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return &domain.ConflictError{Kind: kind, ActivityIDs: ids}
}
