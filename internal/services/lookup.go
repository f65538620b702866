package services

import (
	"context"
	"errors"

	"eventscheduling/internal/domain"
)

func loadEvent(ctx context.Context, repo domain.EventRepository, id string) (*domain.Event, error) {
	ev, err := repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, &domain.NotFoundError{Entity: "event", ID: id}
		}
		return nil, domain.WrapStoreError("get event", err)
	}
	return ev, nil
}

func loadActivity(ctx context.Context, repo domain.ActivityRepository, id string) (*domain.Activity, error) {
	a, err := repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, &domain.NotFoundError{Entity: "activity", ID: id}
		}
		return nil, domain.WrapStoreError("get activity", err)
	}
	return a, nil
}

func loadUser(ctx context.Context, repo domain.UserRepository, id string) (*domain.User, error) {
	u, err := repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, &domain.NotFoundError{Entity: "user", ID: id}
		}
		return nil, domain.WrapStoreError("get user", err)
	}
	return u, nil
}
