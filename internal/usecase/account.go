package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vorapat/event-registry-api/internal/config"
	"github.com/vorapat/event-registry-api/internal/model"
	"github.com/vorapat/event-registry-api/internal/repository"
	"github.com/vorapat/event-registry-api/pkg/security"
)

// AccountUsecase defines the business logic for email verification and the
// password reset flow.
type AccountUsecase interface {
	// VerifyEmail redeems a verification token and marks the user verified.
	VerifyEmail(ctx context.Context, userID, token string) error

	// ForgotPassword issues a reset token and mails it to the user.
	ForgotPassword(ctx context.Context, email string) error

	// ResetPassword redeems a reset token and replaces the user's password.
	ResetPassword(ctx context.Context, userID, token, newPassword string) error
}

// ErrTokenInvalid covers both nonexistent and expired single-use tokens; the
// two cases are deliberately indistinguishable to the caller.
var ErrTokenInvalid = errors.New("token is invalid or has expired")

type accountUsecase struct {
	userRepo      repository.UserRepository
	userTokenRepo repository.UserTokenRepository
	mailer        EmailSender
	cfg           *config.Config
}

// NewAccountUsecase creates a new instance of AccountUsecase.
func NewAccountUsecase(
	userRepo repository.UserRepository,
	userTokenRepo repository.UserTokenRepository,
	mailer EmailSender,
	cfg *config.Config,
) AccountUsecase {
	return &accountUsecase{
		userRepo:      userRepo,
		userTokenRepo: userTokenRepo,
		mailer:        mailer,
		cfg:           cfg,
	}
}

func (u *accountUsecase) VerifyEmail(ctx context.Context, userID, token string) error {
	userToken, err := u.userTokenRepo.GetToken(ctx, userID, token, model.TokenPurposeVerifyEmail)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrTokenInvalid
		}
		return err
	}

	verified := true
	if _, err := u.userRepo.UpdateUser(ctx, userID, repository.UpdateUserParams{
		EmailVerified: &verified,
	}); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrUserNotFound
		}
		return err
	}

	// Verification tokens are single-use, same as reset tokens.
	return u.userTokenRepo.DeleteToken(ctx, userToken.ID.Hex())
}

func (u *accountUsecase) ForgotPassword(ctx context.Context, email string) error {
	user, err := u.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrUserNotFound
		}
		return err
	}

	// Only the most recently requested reset token stays redeemable.
	if err := u.userTokenRepo.DeleteUserTokens(ctx, user.ID.Hex(), model.TokenPurposeResetPassword); err != nil {
		return err
	}

	userToken := &model.UserToken{
		UserID:    user.ID,
		Token:     uuid.NewString(),
		Purpose:   model.TokenPurposeResetPassword,
		ExpiresAt: time.Now().Add(u.cfg.Token.UserTokenExpiresIn),
	}
	if _, err := u.userTokenRepo.CreateToken(ctx, userToken); err != nil {
		return err
	}

	link := fmt.Sprintf("%s?token=%s&id=%s", u.cfg.App.PasswordResetURL, userToken.Token, user.ID.Hex())

	return u.mailer.SendHTML(
		[]string{user.Email},
		"Password Reset Request",
		passwordResetEmailHTML(link, u.cfg.Token.UserTokenExpiresIn),
	)
}

func (u *accountUsecase) ResetPassword(ctx context.Context, userID, token, newPassword string) error {
	if err := checkPasswordLength(newPassword); err != nil {
		return err
	}

	userToken, err := u.userTokenRepo.GetToken(ctx, userID, token, model.TokenPurposeResetPassword)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrTokenInvalid
		}
		return err
	}

	passwordHash, err := security.HashPassword(newPassword)
	if err != nil {
		return err
	}

	if _, err := u.userRepo.UpdateUser(ctx, userID, repository.UpdateUserParams{
		PasswordHash: &passwordHash,
	}); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrUserNotFound
		}
		return err
	}

	return u.userTokenRepo.DeleteToken(ctx, userToken.ID.Hex())
}
