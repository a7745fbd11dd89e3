package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vorapat/event-registry-api/internal/config"
	"github.com/vorapat/event-registry-api/internal/model"
	"github.com/vorapat/event-registry-api/internal/repository"
	"github.com/vorapat/event-registry-api/pkg/auth"
	"github.com/vorapat/event-registry-api/pkg/security"
)

// AuthUsecase defines the interface for authentication-related use cases.
type AuthUsecase interface {
	Login(ctx context.Context, params LoginParams) (*Tokens, error)

	// LoginMobile is Login plus the guest eligibility rule: a guest may only
	// log in from the mobile app while registered for at least one active,
	// not-yet-ended event.
	LoginMobile(ctx context.Context, params LoginParams) (*Tokens, error)

	Register(ctx context.Context, params RegisterParams) (*RegisterResult, error)

	// Refresh verifies a refresh token and issues a new access token. The
	// refresh token itself is not rotated.
	Refresh(ctx context.Context, refreshToken string) (string, error)
}

// LoginParams defines the parameters for user login.
type LoginParams struct {
	Email    string
	Password string
}

// RegisterParams defines the parameters for user registration. Role and
// activity are never taken from the client.
type RegisterParams struct {
	Email    string
	Password string
}

// Tokens bundles a short-lived access token and a long-lived refresh token.
type Tokens struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// RegisterResult is the outcome of a successful registration.
type RegisterResult struct {
	User   *model.User `json:"user"`
	Tokens Tokens      `json:"tokens"`
}

// EmailSender is the subset of the mailer used by the use cases.
type EmailSender interface {
	SendHTML(to []string, subject, htmlBody string) error
}

const (
	minPasswordLength = 8
	maxPasswordLength = 25
)

var (
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrEmailNotVerified    = errors.New("email is not verified")
	ErrAccountDisabled     = errors.New("account is disabled")
	ErrNotEligible         = errors.New("no eligible event registration")
	ErrEmailTaken          = errors.New("email is already registered")
	ErrPasswordLength      = errors.New("password length is out of bounds")
	ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")
	ErrUserNotFound        = errors.New("user not found")
)

type authUsecase struct {
	userRepo      repository.UserRepository
	attendeeRepo  repository.EventAttendeeRepository
	userTokenRepo repository.UserTokenRepository
	jwtAuth       auth.JWTAuthenticator
	mailer        EmailSender
	cfg           *config.Config
}

func NewAuthUsecase(
	userRepo repository.UserRepository,
	attendeeRepo repository.EventAttendeeRepository,
	userTokenRepo repository.UserTokenRepository,
	jwtAuth auth.JWTAuthenticator,
	mailer EmailSender,
	cfg *config.Config,
) AuthUsecase {
	return &authUsecase{
		userRepo:      userRepo,
		attendeeRepo:  attendeeRepo,
		userTokenRepo: userTokenRepo,
		jwtAuth:       jwtAuth,
		mailer:        mailer,
		cfg:           cfg,
	}
}

func (u *authUsecase) Login(ctx context.Context, params LoginParams) (*Tokens, error) {
	user, err := u.authenticate(ctx, params)
	if err != nil {
		return nil, err
	}

	return u.issueTokens(user)
}

func (u *authUsecase) LoginMobile(ctx context.Context, params LoginParams) (*Tokens, error) {
	user, err := u.authenticate(ctx, params)
	if err != nil {
		return nil, err
	}

	if user.Role == model.RoleGuest {
		eligible, err := u.attendeeRepo.CountEligibleEvents(ctx, user.ID.Hex(), time.Now())
		if err != nil {
			return nil, err
		}
		if eligible == 0 {
			return nil, ErrNotEligible
		}
	}

	return u.issueTokens(user)
}

func (u *authUsecase) Register(ctx context.Context, params RegisterParams) (*RegisterResult, error) {
	if err := checkPasswordLength(params.Password); err != nil {
		return nil, err
	}

	passwordHash, err := security.HashPassword(params.Password)
	if err != nil {
		return nil, err
	}

	user, err := u.userRepo.CreateUser(ctx, &model.User{
		Email:        params.Email,
		PasswordHash: passwordHash,
		Role:         model.RoleGuest,
		Active:       true,
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrEmailTaken
		}

		return nil, err
	}

	if err := u.sendVerificationEmail(ctx, user); err != nil {
		// A user nobody can verify is unreachable, so roll the creation back
		// and surface the email failure.
		if _, delErr := u.userRepo.DeleteUser(ctx, user.ID.Hex()); delErr != nil {
			return nil, errors.Join(err, delErr)
		}
		return nil, fmt.Errorf("failed to send verification email: %w", err)
	}

	tokens, err := u.issueTokens(user)
	if err != nil {
		return nil, err
	}

	return &RegisterResult{User: user, Tokens: *tokens}, nil
}

func (u *authUsecase) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims := &auth.UserClaims{}
	if _, err := u.jwtAuth.ValidateTokenWithClaims(
		refreshToken,
		u.cfg.Token.RefreshTokenSecret,
		claims,
	); err != nil {
		return "", ErrInvalidRefreshToken
	}

	user, err := u.userRepo.GetUser(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", ErrUserNotFound
		}

		return "", err
	}

	return u.generateToken(user, u.cfg.Token.AccessTokenSecret, u.cfg.Token.AccessTokenExpiresIn)
}

func (u *authUsecase) authenticate(ctx context.Context, params LoginParams) (*model.User, error) {
	user, err := u.userRepo.GetUserByEmail(ctx, params.Email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrInvalidCredentials
		}

		return nil, err
	}

	if ok, err := security.VerifyPassword(params.Password, user.PasswordHash); err != nil {
		return nil, err
	} else if !ok {
		return nil, ErrInvalidCredentials
	}

	if !user.Active {
		return nil, ErrAccountDisabled
	}

	if !user.EmailVerified {
		return nil, ErrEmailNotVerified
	}

	return user, nil
}

func (u *authUsecase) sendVerificationEmail(ctx context.Context, user *model.User) error {
	if err := u.userTokenRepo.DeleteUserTokens(ctx, user.ID.Hex(), model.TokenPurposeVerifyEmail); err != nil {
		return err
	}

	userToken := &model.UserToken{
		UserID:    user.ID,
		Token:     uuid.NewString(),
		Purpose:   model.TokenPurposeVerifyEmail,
		ExpiresAt: time.Now().Add(u.cfg.Token.UserTokenExpiresIn),
	}
	if _, err := u.userTokenRepo.CreateToken(ctx, userToken); err != nil {
		return err
	}

	link := fmt.Sprintf("%s?token=%s&id=%s", u.cfg.App.VerifyEmailURL, userToken.Token, user.ID.Hex())

	return u.mailer.SendHTML(
		[]string{user.Email},
		"Verify your email address",
		verificationEmailHTML(link, u.cfg.Token.UserTokenExpiresIn),
	)
}

func (u *authUsecase) issueTokens(user *model.User) (*Tokens, error) {
	accessToken, err := u.generateToken(user, u.cfg.Token.AccessTokenSecret, u.cfg.Token.AccessTokenExpiresIn)
	if err != nil {
		return nil, err
	}

	refreshToken, err := u.generateToken(user, u.cfg.Token.RefreshTokenSecret, u.cfg.Token.RefreshTokenExpiresIn)
	if err != nil {
		return nil, err
	}

	return &Tokens{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (u *authUsecase) generateToken(user *model.User, secret string, expiresIn time.Duration) (string, error) {
	now := time.Now()
	claims := auth.UserClaims{
		UserID: user.ID.Hex(),
		Role:   string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.Hex(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiresIn)),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    u.cfg.Token.Issuer,
			Audience:  jwt.ClaimStrings{u.cfg.Token.Issuer},
		},
	}

	return u.jwtAuth.GenerateToken(claims, secret)
}

func checkPasswordLength(password string) error {
	if len(password) < minPasswordLength || len(password) > maxPasswordLength {
		return ErrPasswordLength
	}
	return nil
}
