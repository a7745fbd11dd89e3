package repository

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/vorapat/event-registry-api/internal/model"
)

// UserTokenRepository defines the interface for single-use token operations.
type UserTokenRepository interface {
	// CreateToken stores a new single-use token.
	CreateToken(ctx context.Context, token *model.UserToken) (*model.UserToken, error)

	// GetToken retrieves an unexpired token by (user, token, purpose).
	GetToken(ctx context.Context, userID, token string, purpose model.TokenPurpose) (*model.UserToken, error)

	// DeleteToken removes a consumed token.
	DeleteToken(ctx context.Context, id string) error

	// DeleteUserTokens removes all tokens of the given purpose for a user,
	// so that only the most recently issued token remains redeemable.
	DeleteUserTokens(ctx context.Context, userID string, purpose model.TokenPurpose) error
}

const userTokenCollection = "user_tokens"

type userTokenMongoRepository struct {
	db *mongo.Database
}

// NewUserTokenMongoRepository creates a new MongoDB repository for single-use tokens.
func NewUserTokenMongoRepository(
	ctx context.Context,
	logger *zerolog.Logger,
	db *mongo.Database,
) UserTokenRepository {
	collection := db.Collection(userTokenCollection)

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "token", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "purpose", Value: 1}},
		},
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0), // TTL index
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create user token indexes")
	}

	return &userTokenMongoRepository{db: db}
}

func (r *userTokenMongoRepository) CreateToken(
	ctx context.Context,
	token *model.UserToken,
) (*model.UserToken, error) {
	token.CreatedAt = time.Now()

	result, err := r.db.Collection(userTokenCollection).InsertOne(ctx, token)
	if err != nil {
		return nil, err
	}

	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		token.ID = objectID
	}

	return token, nil
}

func (r *userTokenMongoRepository) GetToken(
	ctx context.Context,
	userID, token string,
	purpose model.TokenPurpose,
) (*model.UserToken, error) {
	objectID, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}

	// The TTL monitor only sweeps periodically, so the expiry bound is part
	// of the filter as well.
	filter := bson.M{
		"user_id":    objectID,
		"token":      token,
		"purpose":    purpose,
		"expires_at": bson.M{"$gt": time.Now()},
	}

	var userToken model.UserToken
	err = r.db.Collection(userTokenCollection).FindOne(ctx, filter).Decode(&userToken)
	if err != nil {
		return nil, err
	}

	return &userToken, nil
}

func (r *userTokenMongoRepository) DeleteToken(ctx context.Context, id string) error {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return mongo.ErrNoDocuments
	}

	_, err = r.db.Collection(userTokenCollection).DeleteOne(ctx, bson.M{"_id": objectID})
	return err
}

func (r *userTokenMongoRepository) DeleteUserTokens(
	ctx context.Context,
	userID string,
	purpose model.TokenPurpose,
) error {
	objectID, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return mongo.ErrNoDocuments
	}

	_, err = r.db.Collection(userTokenCollection).DeleteMany(ctx, bson.M{
		"user_id": objectID,
		"purpose": purpose,
	})
	return err
}
