package users

import (
	"context"
	"errors"
	"testing"
	"time"

	"mikombo-backend/internal/auth"
	"mikombo-backend/internal/cache"
	"mikombo-backend/internal/models"
	"mikombo-backend/internal/store"
)

func newTestService() (*Service, *auth.Manager) {
	tokens := &auth.Manager{
		Secret:      []byte("test-secret"),
		TTL:         time.Hour,
		Issuer:      "test",
		Revocations: auth.NewRevocations(cache.NewMemory()),
	}
	repo := NewRepository(store.NewMemoryCollection[models.User]("email"))
	return NewService(repo, tokens), tokens
}

func registerRequest(email string) RegisterRequest {
	return RegisterRequest{
		Email:     email,
		Password:  "s3cret",
		LastName:  "Kabila",
		FirstName: "Awa",
		Phone:     "+243000000",
	}
}

func TestRegisterCreatesClient(t *testing.T) {
	svc, tokens := newTestService()
	ctx := context.Background()

	resp, err := svc.Register(ctx, registerRequest("awa@example.com"))
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if resp.User.Role != models.RoleClient {
		t.Fatalf("expected client role, got %q", resp.User.Role)
	}
	if resp.User.PasswordHash == "s3cret" || resp.User.PasswordHash == "" {
		t.Fatalf("expected hashed password")
	}
	claims, err := tokens.Verify(ctx, resp.Token)
	if err != nil {
		t.Fatalf("verify issued token: %v", err)
	}
	if claims.UserID != resp.User.ID {
		t.Fatalf("token subject %q does not match user %q", claims.UserID, resp.User.ID)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, registerRequest("awa@example.com")); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, err := svc.Register(ctx, registerRequest("awa@example.com")); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	if _, err := svc.Register(ctx, registerRequest("awa@example.com")); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := svc.Login(ctx, LoginRequest{Email: "awa@example.com", Password: "s3cret"}); err != nil {
		t.Fatalf("login: %v", err)
	}
	if _, err := svc.Login(ctx, LoginRequest{Email: "awa@example.com", Password: "wrong"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}
	if _, err := svc.Login(ctx, LoginRequest{Email: "nobody@example.com", Password: "s3cret"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	svc, tokens := newTestService()
	ctx := context.Background()
	resp, err := svc.Register(ctx, registerRequest("awa@example.com"))
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	claims, err := tokens.Verify(ctx, resp.Token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}

	if err := svc.Logout(ctx, claims); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := tokens.Verify(ctx, resp.Token); !errors.Is(err, auth.ErrRevokedToken) {
		t.Fatalf("expected revoked token, got %v", err)
	}
}
