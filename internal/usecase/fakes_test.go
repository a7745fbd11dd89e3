package usecase

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vorapat/event-registry-api/internal/config"
	"github.com/vorapat/event-registry-api/internal/model"
	"github.com/vorapat/event-registry-api/internal/repository"
	"github.com/vorapat/event-registry-api/pkg/auth"
)

// duplicateKeyErr mimics the driver error for a unique index violation.
var duplicateKeyErr = mongo.WriteException{
	WriteErrors: []mongo.WriteError{{Code: 11000}},
}

func newTestConfig() *config.Config {
	return &config.Config{
		Token: config.TokenConfig{
			Issuer:                "test-issuer",
			AccessTokenSecret:     "access-secret",
			AccessTokenExpiresIn:  15 * time.Minute,
			RefreshTokenSecret:    "refresh-secret",
			RefreshTokenExpiresIn: 24 * time.Hour,
			UserTokenExpiresIn:    time.Hour,
		},
		App: config.AppConfig{
			VerifyEmailURL:   "https://app.test/verify",
			PasswordResetURL: "https://app.test/reset",
		},
	}
}

func newTestJWTAuth(cfg *config.Config) auth.JWTAuthenticator {
	return auth.NewJWTAuthenticator(cfg.Token.Issuer, cfg.Token.Issuer)
}

// --- user repository fake ---

type fakeUserRepo struct {
	users     map[string]*model.User // keyed by hex id
	createErr error
	updateErr error
	deleted   []string
}

func newFakeUserRepo(users ...*model.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[string]*model.User)}
	for _, user := range users {
		repo.users[user.ID.Hex()] = user
	}
	return repo
}

func (f *fakeUserRepo) CreateUser(_ context.Context, user *model.User) (*model.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	for _, existing := range f.users {
		if existing.Email == user.Email {
			return nil, duplicateKeyErr
		}
	}
	user.ID = bson.NewObjectID()
	f.users[user.ID.Hex()] = user
	return user, nil
}

func (f *fakeUserRepo) GetUser(_ context.Context, id string) (*model.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return user, nil
}

func (f *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeUserRepo) UpdateUser(
	_ context.Context,
	id string,
	params repository.UpdateUserParams,
) (*model.User, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	user, ok := f.users[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	if params.PasswordHash != nil {
		user.PasswordHash = *params.PasswordHash
	}
	if params.EmailVerified != nil {
		user.EmailVerified = *params.EmailVerified
	}
	if params.Active != nil {
		user.Active = *params.Active
	}
	return user, nil
}

func (f *fakeUserRepo) DeleteUser(_ context.Context, id string) (*model.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	delete(f.users, id)
	f.deleted = append(f.deleted, id)
	return user, nil
}

// --- user token repository fake ---

type fakeUserTokenRepo struct {
	tokens    []*model.UserToken
	createErr error
}

func (f *fakeUserTokenRepo) CreateToken(_ context.Context, token *model.UserToken) (*model.UserToken, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	token.ID = bson.NewObjectID()
	token.CreatedAt = time.Now()
	f.tokens = append(f.tokens, token)
	return token, nil
}

func (f *fakeUserTokenRepo) GetToken(
	_ context.Context,
	userID, token string,
	purpose model.TokenPurpose,
) (*model.UserToken, error) {
	for _, t := range f.tokens {
		if t.UserID.Hex() == userID && t.Token == token && t.Purpose == purpose && t.ExpiresAt.After(time.Now()) {
			return t, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeUserTokenRepo) DeleteToken(_ context.Context, id string) error {
	for i, t := range f.tokens {
		if t.ID.Hex() == id {
			f.tokens = append(f.tokens[:i], f.tokens[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeUserTokenRepo) DeleteUserTokens(
	_ context.Context,
	userID string,
	purpose model.TokenPurpose,
) error {
	kept := f.tokens[:0]
	for _, t := range f.tokens {
		if t.UserID.Hex() != userID || t.Purpose != purpose {
			kept = append(kept, t)
		}
	}
	f.tokens = kept
	return nil
}

// --- attendee repository fake ---

type fakeAttendeeRepo struct {
	details       map[string]*model.AttendeeDetail
	eligibleCount int64
	eligibleErr   error
}

func newFakeAttendeeRepo() *fakeAttendeeRepo {
	return &fakeAttendeeRepo{details: make(map[string]*model.AttendeeDetail)}
}

func (f *fakeAttendeeRepo) ListAttendees(
	_ context.Context,
	params repository.FilterAttendeesParams,
) ([]*model.AttendeeDetail, error) {
	var results []*model.AttendeeDetail
	for _, detail := range f.details {
		switch {
		case params.Pending:
			if detail.Approved == nil {
				results = append(results, detail)
			}
		case params.Approved != nil:
			if detail.Approved != nil && *detail.Approved == *params.Approved {
				results = append(results, detail)
			}
		default:
			results = append(results, detail)
		}
	}
	return results, nil
}

func (f *fakeAttendeeRepo) GetAttendee(_ context.Context, id string) (*model.AttendeeDetail, error) {
	detail, ok := f.details[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return detail, nil
}

func (f *fakeAttendeeRepo) SetApproval(
	_ context.Context,
	id string,
	approved bool,
) (*model.AttendeeDetail, error) {
	detail, ok := f.details[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	detail.Approved = &approved
	return detail, nil
}

func (f *fakeAttendeeRepo) DeleteAttendee(_ context.Context, id string) error {
	if _, ok := f.details[id]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(f.details, id)
	return nil
}

func (f *fakeAttendeeRepo) CountEligibleEvents(_ context.Context, _ string, _ time.Time) (int64, error) {
	return f.eligibleCount, f.eligibleErr
}

// --- mailer fake ---

type sentMail struct {
	to      []string
	subject string
	body    string
}

type fakeMailer struct {
	sendErr error
	sent    []sentMail
}

func (f *fakeMailer) SendHTML(to []string, subject, htmlBody string) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, sentMail{to: to, subject: subject, body: htmlBody})
	return nil
}
