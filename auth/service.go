package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/user/resourcebox-go/apperror"
	"github.com/user/resourcebox-go/users"
)

// msgMissingCredentials is returned when username or password is absent from
// a registration or login request.
const msgMissingCredentials = "Missing username/password"

// Service implements registration and login on top of the user store and the
// token service. Passwords are hashed with bcrypt, which salts and iterates
// internally; the plaintext is never stored.
type Service struct {
	store  users.Store
	tokens *TokenService
}

// NewService creates an auth Service.
func NewService(store users.Store, tokens *TokenService) *Service {
	return &Service{store: store, tokens: tokens}
}

// Register creates a new user. All validation happens before any storage
// call; a uniqueness violation reported by the store surfaces as a conflict.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*users.User, error) {
	if req.Username == "" || req.Password == "" {
		return nil, apperror.NewValidationError(msgMissingCredentials, nil)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &users.User{
		Username:     req.Username,
		PasswordHash: string(hashed),
	}

	created, err := s.store.Create(ctx, user)
	if err != nil {
		if errors.Is(err, users.ErrDuplicateUsername) {
			return nil, apperror.NewConflictError("username already exists", err)
		}
		return nil, apperror.NewStorageError("failed to create user", err)
	}
	return created, nil
}

// Login authenticates a user and returns a fresh bearer token. An unknown
// username and a wrong password produce the same response, so the caller
// cannot tell which part of the credentials was wrong.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*TokenResponse, error) {
	if req.Username == "" || req.Password == "" {
		return nil, apperror.NewValidationError(msgMissingCredentials, nil)
	}

	user, err := s.store.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return nil, apperror.NewBadCredentialsError("Bad credentials", nil)
		}
		return nil, apperror.NewStorageError("failed to get user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperror.NewBadCredentialsError("Bad credentials", nil)
	}

	token, err := s.tokens.Issue(user.Username)
	if err != nil {
		return nil, apperror.NewInternalError("failed to issue token", err)
	}
	return &TokenResponse{Token: token}, nil
}
