package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"mikombo-backend/internal/auth"
	"mikombo-backend/internal/models"
	"mikombo-backend/internal/store"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type TokenIssuer interface {
	Issue(userID, role string) (string, error)
	Revoke(ctx context.Context, claims *auth.Claims) error
}

type Service struct {
	repo   Repository
	tokens TokenIssuer
	now    func() time.Time
}

func NewService(repo Repository, tokens TokenIssuer) *Service {
	return &Service{
		repo:   repo,
		tokens: tokens,
		now:    time.Now,
	}
}

// Register creates a client account. The email is checked up front and the
// unique index catches concurrent registrations of the same address.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (AuthResponse, error) {
	email := strings.TrimSpace(req.Email)

	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return AuthResponse{}, ErrEmailTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		return AuthResponse{}, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return AuthResponse{}, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		ID:           uuid.NewString(),
		Email:        email,
		LastName:     strings.TrimSpace(req.LastName),
		FirstName:    strings.TrimSpace(req.FirstName),
		Phone:        strings.TrimSpace(req.Phone),
		Role:         models.RoleClient,
		PasswordHash: hash,
		CreatedAt:    store.Timestamp(s.now()),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return AuthResponse{}, ErrEmailTaken
		}
		return AuthResponse{}, err
	}

	return s.session(user)
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (AuthResponse, error) {
	user, err := s.repo.GetByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return AuthResponse{}, ErrInvalidCredentials
		}
		return AuthResponse{}, err
	}
	if !auth.VerifyPassword(req.Password, user.PasswordHash) {
		return AuthResponse{}, ErrInvalidCredentials
	}
	return s.session(user)
}

func (s *Service) Logout(ctx context.Context, claims *auth.Claims) error {
	return s.tokens.Revoke(ctx, claims)
}

func (s *Service) session(user models.User) (AuthResponse, error) {
	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return AuthResponse{}, fmt.Errorf("issue token: %w", err)
	}
	return AuthResponse{User: user, Token: token}, nil
}
