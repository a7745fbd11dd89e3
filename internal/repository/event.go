package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/vorapat/event-registry-api/internal/model"
)

// EventRepository reads event documents. Events are created and maintained
// by an external system; this service never writes them.
type EventRepository interface {
	GetEvent(ctx context.Context, id string) (*model.Event, error)
	ListEvents(ctx context.Context, params FilterEventsParams) ([]*model.Event, error)
}

// FilterEventsParams defines the parameters for filtering events.
type FilterEventsParams struct {
	Active *bool
}

const eventCollection = "events"

type eventMongoRepository struct {
	db *mongo.Database
}

func NewEventMongoRepository(db *mongo.Database) EventRepository {
	return &eventMongoRepository{db: db}
}

func (r *eventMongoRepository) GetEvent(ctx context.Context, id string) (*model.Event, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}

	result := r.db.Collection(eventCollection).FindOne(ctx, bson.M{"_id": objectID})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var event model.Event
	if err := result.Decode(&event); err != nil {
		return nil, err
	}

	return &event, nil
}

func (r *eventMongoRepository) ListEvents(
	ctx context.Context,
	params FilterEventsParams,
) ([]*model.Event, error) {
	filter := bson.M{}
	if params.Active != nil {
		filter["active"] = *params.Active
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "start_date", Value: 1}})

	cursor, err := r.db.Collection(eventCollection).Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var events []*model.Event
	for cursor.Next(ctx) {
		var event model.Event
		if err := cursor.Decode(&event); err != nil {
			return nil, err
		}
		events = append(events, &event)
	}

	if err := cursor.Err(); err != nil {
		return nil, err
	}

	return events, nil
}
