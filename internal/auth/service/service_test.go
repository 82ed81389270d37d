package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	authdomain "github.com/workbenchhq/workbench/internal/auth/domain"
	"github.com/workbenchhq/workbench/internal/auth/repository"
	"github.com/workbenchhq/workbench/internal/auth/token"
	"github.com/workbenchhq/workbench/pkg/db"
	"go.uber.org/zap"
)

func newTestService(t *testing.T) authdomain.Service {
	t.Helper()

	dbConn, err := db.NewTest()
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	if err := dbConn.AutoMigrate(&authdomain.User{}, &authdomain.RefreshToken{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("failed to create snowflake node: %v", err)
	}

	issuer, err := token.NewIssuer("test-secret", 15*time.Minute, 7*24*time.Hour, repository.NewTokenRepository(dbConn), node)
	if err != nil {
		t.Fatalf("failed to create issuer: %v", err)
	}

	return New(zap.NewNop(), repository.New(dbConn), issuer, node)
}

func createTestUser(t *testing.T, svc authdomain.Service, email string) *authdomain.User {
	t.Helper()

	user, err := svc.CreateUser(context.Background(), authdomain.CreateUserRequest{
		Email:     email,
		Password:  "correct-password",
		FirstName: "Alice",
		LastName:  "Smith",
	})
	if err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user
}

func TestLoginSuccess(t *testing.T) {
	svc := newTestService(t)
	createTestUser(t, svc, "alice@example.com")

	result, err := svc.Login(context.Background(), authdomain.LoginRequest{
		Email:    "alice@example.com",
		Password: "correct-password",
	})
	if err != nil {
		t.Fatalf("failed to login: %v", err)
	}
	if result.Tokens.AccessToken == "" || result.Tokens.RefreshToken == "" {
		t.Fatal("expected token pair")
	}
	if result.User.Email != "alice@example.com" {
		t.Fatalf("expected normalized email, got %s", result.User.Email)
	}
}

func TestLoginIsCaseInsensitiveOnEmail(t *testing.T) {
	svc := newTestService(t)
	createTestUser(t, svc, "alice@example.com")

	_, err := svc.Login(context.Background(), authdomain.LoginRequest{
		Email:    "Alice@Example.COM",
		Password: "correct-password",
	})
	if err != nil {
		t.Fatalf("failed to login with mixed-case email: %v", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newTestService(t)
	createTestUser(t, svc, "alice@example.com")

	_, err := svc.Login(context.Background(), authdomain.LoginRequest{
		Email:    "alice@example.com",
		Password: "wrong-password",
	})
	if err != authdomain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Login(context.Background(), authdomain.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever-password",
	})
	if err != authdomain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	svc := newTestService(t)
	createTestUser(t, svc, "alice@example.com")

	_, err := svc.CreateUser(context.Background(), authdomain.CreateUserRequest{
		Email:    "ALICE@example.com",
		Password: "another-password",
	})
	if err != authdomain.ErrUserExists {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestCreateUserShortPassword(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.CreateUser(context.Background(), authdomain.CreateUserRequest{
		Email:    "bob@example.com",
		Password: "short",
	})
	if err != authdomain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestRefreshMintsNewAccessToken(t *testing.T) {
	svc := newTestService(t)
	createTestUser(t, svc, "alice@example.com")

	result, err := svc.Login(context.Background(), authdomain.LoginRequest{
		Email:    "alice@example.com",
		Password: "correct-password",
	})
	if err != nil {
		t.Fatalf("failed to login: %v", err)
	}

	refreshed, err := svc.Refresh(context.Background(), result.Tokens.RefreshToken)
	if err != nil {
		t.Fatalf("failed to refresh: %v", err)
	}
	if refreshed.AccessToken == "" {
		t.Fatal("expected new access token")
	}

	// The new access token must authenticate.
	user, err := svc.Authenticate(context.Background(), refreshed.AccessToken)
	if err != nil {
		t.Fatalf("failed to authenticate refreshed token: %v", err)
	}
	if user.Email != "alice@example.com" {
		t.Fatalf("unexpected user %s", user.Email)
	}
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	svc := newTestService(t)
	createTestUser(t, svc, "alice@example.com")

	result, err := svc.Login(context.Background(), authdomain.LoginRequest{
		Email:    "alice@example.com",
		Password: "correct-password",
	})
	if err != nil {
		t.Fatalf("failed to login: %v", err)
	}

	if _, err := svc.Refresh(context.Background(), result.Tokens.AccessToken); err != authdomain.ErrTokenMalformed {
		t.Fatalf("expected ErrTokenMalformed, got %v", err)
	}
}

func TestRevokeThenRefreshFails(t *testing.T) {
	svc := newTestService(t)
	createTestUser(t, svc, "alice@example.com")

	result, err := svc.Login(context.Background(), authdomain.LoginRequest{
		Email:    "alice@example.com",
		Password: "correct-password",
	})
	if err != nil {
		t.Fatalf("failed to login: %v", err)
	}

	if err := svc.Revoke(context.Background(), result.Tokens.RefreshToken); err != nil {
		t.Fatalf("failed to revoke: %v", err)
	}

	if _, err := svc.Refresh(context.Background(), result.Tokens.RefreshToken); err != authdomain.ErrTokenBlacklisted {
		t.Fatalf("expected ErrTokenBlacklisted, got %v", err)
	}
}

func TestRevokeTwice(t *testing.T) {
	svc := newTestService(t)
	createTestUser(t, svc, "alice@example.com")

	result, err := svc.Login(context.Background(), authdomain.LoginRequest{
		Email:    "alice@example.com",
		Password: "correct-password",
	})
	if err != nil {
		t.Fatalf("failed to login: %v", err)
	}

	if err := svc.Revoke(context.Background(), result.Tokens.RefreshToken); err != nil {
		t.Fatalf("failed to revoke: %v", err)
	}
	if err := svc.Revoke(context.Background(), result.Tokens.RefreshToken); err != authdomain.ErrTokenNotFound {
		t.Fatalf("expected ErrTokenNotFound, got %v", err)
	}
}

func TestAuthenticateGarbageToken(t *testing.T) {
	svc := newTestService(t)

	if _, err := svc.Authenticate(context.Background(), "not-a-jwt"); err != authdomain.ErrTokenMalformed {
		t.Fatalf("expected ErrTokenMalformed, got %v", err)
	}
}
