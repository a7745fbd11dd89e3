package usecase

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vorapat/event-registry-api/internal/model"
	"github.com/vorapat/event-registry-api/internal/repository"
)

// AttendeeUsecase defines the admin-facing operations on attendee records.
// Authorization is enforced by middleware, not here.
type AttendeeUsecase interface {
	ListAttendees(ctx context.Context, params repository.FilterAttendeesParams) ([]*model.AttendeeDetail, error)
	GetAttendee(ctx context.Context, id string) (*model.AttendeeDetail, error)
	SetApproval(ctx context.Context, id string, approved bool) (*model.AttendeeDetail, error)
	DeleteAttendee(ctx context.Context, id string) error
}

var ErrAttendeeNotFound = errors.New("attendee not found")

type attendeeUsecase struct {
	attendeeRepo repository.EventAttendeeRepository
}

func NewAttendeeUsecase(attendeeRepo repository.EventAttendeeRepository) AttendeeUsecase {
	return &attendeeUsecase{attendeeRepo: attendeeRepo}
}

func (u *attendeeUsecase) ListAttendees(
	ctx context.Context,
	params repository.FilterAttendeesParams,
) ([]*model.AttendeeDetail, error) {
	return u.attendeeRepo.ListAttendees(ctx, params)
}

func (u *attendeeUsecase) GetAttendee(ctx context.Context, id string) (*model.AttendeeDetail, error) {
	detail, err := u.attendeeRepo.GetAttendee(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrAttendeeNotFound
		}
		return nil, err
	}

	return detail, nil
}

func (u *attendeeUsecase) SetApproval(
	ctx context.Context,
	id string,
	approved bool,
) (*model.AttendeeDetail, error) {
	detail, err := u.attendeeRepo.SetApproval(ctx, id, approved)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrAttendeeNotFound
		}
		return nil, err
	}

	return detail, nil
}

func (u *attendeeUsecase) DeleteAttendee(ctx context.Context, id string) error {
	if err := u.attendeeRepo.DeleteAttendee(ctx, id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrAttendeeNotFound
		}
		return err
	}

	return nil
}
