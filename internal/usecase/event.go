package usecase

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vorapat/event-registry-api/internal/model"
	"github.com/vorapat/event-registry-api/internal/repository"
)

// EventUsecase exposes read access to events. Events are owned and written
// by an external system.
type EventUsecase interface {
	ListEvents(ctx context.Context, params repository.FilterEventsParams) ([]*model.Event, error)
	GetEvent(ctx context.Context, id string) (*model.Event, error)
}

var ErrEventNotFound = errors.New("event not found")

type eventUsecase struct {
	eventRepo repository.EventRepository
}

func NewEventUsecase(eventRepo repository.EventRepository) EventUsecase {
	return &eventUsecase{eventRepo: eventRepo}
}

func (u *eventUsecase) ListEvents(
	ctx context.Context,
	params repository.FilterEventsParams,
) ([]*model.Event, error) {
	return u.eventRepo.ListEvents(ctx, params)
}

func (u *eventUsecase) GetEvent(ctx context.Context, id string) (*model.Event, error) {
	event, err := u.eventRepo.GetEvent(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	return event, nil
}
