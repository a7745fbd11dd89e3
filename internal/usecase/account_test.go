package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/vorapat/event-registry-api/internal/model"
	"github.com/vorapat/event-registry-api/pkg/security"
)

func newAccountUsecaseForTest(
	userRepo *fakeUserRepo,
	tokenRepo *fakeUserTokenRepo,
	mailer *fakeMailer,
) AccountUsecase {
	return NewAccountUsecase(userRepo, tokenRepo, mailer, newTestConfig())
}

func storedToken(user *model.User, purpose model.TokenPurpose, expiresIn time.Duration) *model.UserToken {
	return &model.UserToken{
		ID:        bson.NewObjectID(),
		UserID:    user.ID,
		Token:     "tok-" + string(purpose),
		Purpose:   purpose,
		ExpiresAt: time.Now().Add(expiresIn),
	}
}

func TestVerifyEmail_Success(t *testing.T) {
	user := newTestUser(t, "alice@example.com", "password1")
	user.EmailVerified = false
	token := storedToken(user, model.TokenPurposeVerifyEmail, time.Hour)
	userRepo := newFakeUserRepo(user)
	tokenRepo := &fakeUserTokenRepo{tokens: []*model.UserToken{token}}
	uc := newAccountUsecaseForTest(userRepo, tokenRepo, &fakeMailer{})

	err := uc.VerifyEmail(context.Background(), user.ID.Hex(), token.Token)
	require.NoError(t, err)

	assert.True(t, user.EmailVerified)
	assert.Empty(t, tokenRepo.tokens, "verification token must be single-use")
}

func TestVerifyEmail_SecondAttemptFails(t *testing.T) {
	user := newTestUser(t, "alice@example.com", "password1")
	user.EmailVerified = false
	token := storedToken(user, model.TokenPurposeVerifyEmail, time.Hour)
	tokenRepo := &fakeUserTokenRepo{tokens: []*model.UserToken{token}}
	uc := newAccountUsecaseForTest(newFakeUserRepo(user), tokenRepo, &fakeMailer{})

	require.NoError(t, uc.VerifyEmail(context.Background(), user.ID.Hex(), token.Token))

	err := uc.VerifyEmail(context.Background(), user.ID.Hex(), token.Token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerifyEmail_UnknownToken(t *testing.T) {
	user := newTestUser(t, "alice@example.com", "password1")
	uc := newAccountUsecaseForTest(newFakeUserRepo(user), &fakeUserTokenRepo{}, &fakeMailer{})

	err := uc.VerifyEmail(context.Background(), user.ID.Hex(), "no-such-token")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerifyEmail_ExpiredToken(t *testing.T) {
	user := newTestUser(t, "alice@example.com", "password1")
	token := storedToken(user, model.TokenPurposeVerifyEmail, -time.Minute)
	tokenRepo := &fakeUserTokenRepo{tokens: []*model.UserToken{token}}
	uc := newAccountUsecaseForTest(newFakeUserRepo(user), tokenRepo, &fakeMailer{})

	// Expired and nonexistent tokens are indistinguishable to the caller.
	err := uc.VerifyEmail(context.Background(), user.ID.Hex(), token.Token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerifyEmail_UserVanished(t *testing.T) {
	user := newTestUser(t, "alice@example.com", "password1")
	token := storedToken(user, model.TokenPurposeVerifyEmail, time.Hour)
	userRepo := newFakeUserRepo(user)
	tokenRepo := &fakeUserTokenRepo{tokens: []*model.UserToken{token}}
	uc := newAccountUsecaseForTest(userRepo, tokenRepo, &fakeMailer{})

	_, err := userRepo.DeleteUser(context.Background(), user.ID.Hex())
	require.NoError(t, err)

	err = uc.VerifyEmail(context.Background(), user.ID.Hex(), token.Token)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestForgotPassword_UnknownEmail(t *testing.T) {
	uc := newAccountUsecaseForTest(newFakeUserRepo(), &fakeUserTokenRepo{}, &fakeMailer{})

	err := uc.ForgotPassword(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestForgotPassword_Success(t *testing.T) {
	user := newTestUser(t, "alice@example.com", "password1")
	tokenRepo := &fakeUserTokenRepo{}
	mailer := &fakeMailer{}
	uc := newAccountUsecaseForTest(newFakeUserRepo(user), tokenRepo, mailer)

	err := uc.ForgotPassword(context.Background(), "alice@example.com")
	require.NoError(t, err)

	require.Len(t, tokenRepo.tokens, 1)
	assert.Equal(t, model.TokenPurposeResetPassword, tokenRepo.tokens[0].Purpose)
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, []string{"alice@example.com"}, mailer.sent[0].to)
	assert.Contains(t, mailer.sent[0].body, tokenRepo.tokens[0].Token)
}

func TestForgotPassword_ReplacesPreviousToken(t *testing.T) {
	user := newTestUser(t, "alice@example.com", "password1")
	old := storedToken(user, model.TokenPurposeResetPassword, time.Hour)
	tokenRepo := &fakeUserTokenRepo{tokens: []*model.UserToken{old}}
	uc := newAccountUsecaseForTest(newFakeUserRepo(user), tokenRepo, &fakeMailer{})

	err := uc.ForgotPassword(context.Background(), "alice@example.com")
	require.NoError(t, err)

	require.Len(t, tokenRepo.tokens, 1)
	assert.NotEqual(t, old.Token, tokenRepo.tokens[0].Token)
}

func TestResetPassword_Success(t *testing.T) {
	user := newTestUser(t, "alice@example.com", "oldpassword")
	token := storedToken(user, model.TokenPurposeResetPassword, time.Hour)
	tokenRepo := &fakeUserTokenRepo{tokens: []*model.UserToken{token}}
	uc := newAccountUsecaseForTest(newFakeUserRepo(user), tokenRepo, &fakeMailer{})

	err := uc.ResetPassword(context.Background(), user.ID.Hex(), token.Token, "newpassword")
	require.NoError(t, err)

	ok, err := security.VerifyPassword("newpassword", user.PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, tokenRepo.tokens, "reset token must be consumed")
}

func TestResetPassword_TokenConsumedAfterUse(t *testing.T) {
	user := newTestUser(t, "alice@example.com", "oldpassword")
	token := storedToken(user, model.TokenPurposeResetPassword, time.Hour)
	tokenRepo := &fakeUserTokenRepo{tokens: []*model.UserToken{token}}
	uc := newAccountUsecaseForTest(newFakeUserRepo(user), tokenRepo, &fakeMailer{})

	require.NoError(t, uc.ResetPassword(context.Background(), user.ID.Hex(), token.Token, "newpassword"))

	err := uc.ResetPassword(context.Background(), user.ID.Hex(), token.Token, "anotherpass")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestResetPassword_BadLength(t *testing.T) {
	user := newTestUser(t, "alice@example.com", "oldpassword")
	token := storedToken(user, model.TokenPurposeResetPassword, time.Hour)
	tokenRepo := &fakeUserTokenRepo{tokens: []*model.UserToken{token}}
	uc := newAccountUsecaseForTest(newFakeUserRepo(user), tokenRepo, &fakeMailer{})

	err := uc.ResetPassword(context.Background(), user.ID.Hex(), token.Token, "short")
	assert.ErrorIs(t, err, ErrPasswordLength)
	assert.Len(t, tokenRepo.tokens, 1, "token must not be consumed on rejection")
}

func TestResetPassword_WrongPurposeToken(t *testing.T) {
	user := newTestUser(t, "alice@example.com", "oldpassword")
	token := storedToken(user, model.TokenPurposeVerifyEmail, time.Hour)
	tokenRepo := &fakeUserTokenRepo{tokens: []*model.UserToken{token}}
	uc := newAccountUsecaseForTest(newFakeUserRepo(user), tokenRepo, &fakeMailer{})

	err := uc.ResetPassword(context.Background(), user.ID.Hex(), token.Token, "newpassword")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
