package service

import (
	"context"
	"errors"
	"time"

	"github.com/clinicare/clinic-backend/internal/auth"
	"github.com/clinicare/clinic-backend/internal/config"
	"github.com/clinicare/clinic-backend/internal/domain"
	"github.com/clinicare/clinic-backend/internal/repository"
)

// dummyPasswordHash is verified when the email does not resolve to a user,
// so a login against an unknown address costs the same as one against a
// known address with a wrong password. It can never match any password.
const dummyPasswordHash = "$argon2id$v=19$m=65536,t=1,p=4$AAAAAAAAAAAAAAAAAAAAAA$AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"

// AuthService orchestrates signup, login, refresh rotation and access-token
// validation. All session state lives in the tokens themselves; there is no
// server-side session record.
type AuthService struct {
	users  repository.UserRepository
	codec  *auth.TokenCodec
	hasher auth.PasswordHasher
	cfg    *config.Config
}

func NewAuthService(users repository.UserRepository, cfg *config.Config) (*AuthService, error) {
	codec, err := auth.NewTokenCodec(cfg.JWTAlgorithm)
	if err != nil {
		return nil, err
	}

	return &AuthService{
		users:  users,
		codec:  codec,
		hasher: auth.NewArgon2idHasher(),
		cfg:    cfg,
	}, nil
}

type SignupInput struct {
	Email     string
	FirstName string
	LastName  string
	Password  string
}

// TokenPair is one session: a short-lived access token plus the refresh
// token that can mint its successor.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

func (s *AuthService) Signup(ctx context.Context, input SignupInput) (*domain.User, error) {
	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        input.Email,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	// Uniqueness is the store's job; concurrent signups race down to the
	// database constraint.
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Login verifies credentials and issues a fresh token pair. An unknown email
// and a wrong password both return ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	user, err := s.users.GetByEmail(ctx, email)

	targetHash := dummyPasswordHash
	userExists := false

	if err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
	} else {
		targetHash = user.PasswordHash
		userExists = true
	}

	valid, verifyErr := s.hasher.Verify(password, targetHash)
	if verifyErr != nil && userExists {
		return nil, verifyErr
	}

	if !userExists || !valid {
		return nil, domain.ErrInvalidCredentials
	}

	return s.issueTokens(user.Email)
}

// Refresh rotates a session: it verifies the presented refresh token against
// the refresh secret, re-resolves the subject (the account may have been
// deleted since issuance) and mints a brand-new pair. The old refresh token
// is not tracked server-side, so it stays verifiable until its own expiry.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	subject, err := s.codec.Verify(refreshToken, []byte(s.cfg.RefreshTokenSecret))
	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	user, err := s.users.GetByEmail(ctx, subject)
	if err != nil {
		return nil, err
	}

	return s.issueTokens(user.Email)
}

// Authenticate resolves an access token to its user. Used by the auth
// middleware on every protected request.
func (s *AuthService) Authenticate(ctx context.Context, accessToken string) (*domain.User, error) {
	subject, err := s.codec.Verify(accessToken, []byte(s.cfg.AccessTokenSecret))
	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	return s.users.GetByEmail(ctx, subject)
}

func (s *AuthService) issueTokens(email string) (*TokenPair, error) {
	accessToken, err := s.codec.Issue(email, []byte(s.cfg.AccessTokenSecret), s.cfg.AccessTokenTTL)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.codec.Issue(email, []byte(s.cfg.RefreshTokenSecret), s.cfg.RefreshTokenTTL)
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
