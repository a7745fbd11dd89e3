package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vorapat/event-registry-api/internal/model"
)

// EventAttendeeRepository defines the interface for attendee-related database
// operations. Read operations return the joined (user, event) view so callers
// never need a second round trip.
type EventAttendeeRepository interface {
	ListAttendees(ctx context.Context, params FilterAttendeesParams) ([]*model.AttendeeDetail, error)
	GetAttendee(ctx context.Context, id string) (*model.AttendeeDetail, error)
	SetApproval(ctx context.Context, id string, approved bool) (*model.AttendeeDetail, error)
	DeleteAttendee(ctx context.Context, id string) error

	// CountEligibleEvents counts the user's attendee records whose linked
	// event is active and has not ended before the given day.
	CountEligibleEvents(ctx context.Context, userID string, day time.Time) (int64, error)
}

// FilterAttendeesParams defines the parameters for filtering attendees.
// Approved filters on the stored boolean; Pending selects records whose
// approval has not been decided yet. The two are mutually exclusive.
type FilterAttendeesParams struct {
	Approved *bool
	Pending  bool
}

const eventAttendeeCollection = "event_attendees"

type eventAttendeeMongoRepository struct {
	db *mongo.Database
}

func NewEventAttendeeMongoRepository(db *mongo.Database) EventAttendeeRepository {
	return &eventAttendeeMongoRepository{db: db}
}

// joinStages resolves the user and event references on attendee documents.
func joinStages() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$lookup", Value: bson.M{
			"from":         userCollection,
			"localField":   "user_id",
			"foreignField": "_id",
			"as":           "user",
		}}},
		{{Key: "$unwind", Value: bson.M{"path": "$user", "preserveNullAndEmptyArrays": true}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         eventCollection,
			"localField":   "event_id",
			"foreignField": "_id",
			"as":           "event",
		}}},
		{{Key: "$unwind", Value: bson.M{"path": "$event", "preserveNullAndEmptyArrays": true}}},
	}
}

func (r *eventAttendeeMongoRepository) aggregateDetails(
	ctx context.Context,
	match bson.M,
) ([]*model.AttendeeDetail, error) {
	pipeline := mongo.Pipeline{{{Key: "$match", Value: match}}}
	pipeline = append(pipeline, joinStages()...)
	pipeline = append(pipeline, bson.D{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}}}})

	cursor, err := r.db.Collection(eventAttendeeCollection).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var details []*model.AttendeeDetail
	for cursor.Next(ctx) {
		var detail model.AttendeeDetail
		if err := cursor.Decode(&detail); err != nil {
			return nil, err
		}
		details = append(details, &detail)
	}

	if err := cursor.Err(); err != nil {
		return nil, err
	}

	return details, nil
}

func (r *eventAttendeeMongoRepository) ListAttendees(
	ctx context.Context,
	params FilterAttendeesParams,
) ([]*model.AttendeeDetail, error) {
	match := bson.M{}
	switch {
	case params.Pending:
		match["approved"] = bson.M{"$exists": false}
	case params.Approved != nil:
		match["approved"] = *params.Approved
	}

	return r.aggregateDetails(ctx, match)
}

func (r *eventAttendeeMongoRepository) GetAttendee(ctx context.Context, id string) (*model.AttendeeDetail, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}

	details, err := r.aggregateDetails(ctx, bson.M{"_id": objectID})
	if err != nil {
		return nil, err
	}
	if len(details) == 0 {
		return nil, mongo.ErrNoDocuments
	}

	return details[0], nil
}

func (r *eventAttendeeMongoRepository) SetApproval(
	ctx context.Context,
	id string,
	approved bool,
) (*model.AttendeeDetail, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}

	result, err := r.db.Collection(eventAttendeeCollection).UpdateOne(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": bson.M{
			"approved":   approved,
			"updated_at": time.Now(),
		}},
	)
	if err != nil {
		return nil, err
	}
	if result.MatchedCount == 0 {
		return nil, mongo.ErrNoDocuments
	}

	return r.GetAttendee(ctx, id)
}

func (r *eventAttendeeMongoRepository) DeleteAttendee(ctx context.Context, id string) error {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return mongo.ErrNoDocuments
	}

	result, err := r.db.Collection(eventAttendeeCollection).DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}

	return nil
}

func (r *eventAttendeeMongoRepository) CountEligibleEvents(
	ctx context.Context,
	userID string,
	day time.Time,
) (int64, error) {
	objectID, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return 0, nil
	}

	// An event that ends today still counts, so compare against the start of
	// the given day.
	startOfDay := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"user_id": objectID}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         eventCollection,
			"localField":   "event_id",
			"foreignField": "_id",
			"as":           "event",
		}}},
		{{Key: "$unwind", Value: "$event"}},
		{{Key: "$match", Value: bson.M{
			"event.active":   true,
			"event.end_date": bson.M{"$gte": startOfDay},
		}}},
		{{Key: "$count", Value: "eligible"}},
	}

	cursor, err := r.db.Collection(eventAttendeeCollection).Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	defer cursor.Close(ctx)

	var result struct {
		Eligible int64 `bson:"eligible"`
	}
	if cursor.Next(ctx) {
		if err := cursor.Decode(&result); err != nil {
			return 0, err
		}
	}

	if err := cursor.Err(); err != nil {
		return 0, err
	}

	return result.Eligible, nil
}
