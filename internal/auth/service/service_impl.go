package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/workbenchhq/workbench/internal/auth/domain"
	"github.com/workbenchhq/workbench/internal/auth/password"
	"github.com/workbenchhq/workbench/internal/auth/token"
	"go.uber.org/zap"
)

const minPasswordLength = 8

type Service struct {
	log    *zap.Logger
	repo   domain.Repository
	issuer *token.Issuer
	genID  *snowflake.Node
}

func New(log *zap.Logger, repo domain.Repository, issuer *token.Issuer, genID *snowflake.Node) domain.Service {
	return &Service{
		log:    log.Named("auth.service"),
		repo:   repo,
		issuer: issuer,
		genID:  genID,
	}
}

func (s *Service) CreateUser(ctx context.Context, req domain.CreateUserRequest) (*domain.User, error) {
	email, err := normalizeEmail(req.Email)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if len(strings.TrimSpace(req.Password)) < minPasswordLength {
		return nil, domain.ErrInvalidCredentials
	}

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hashed, err := password.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:           s.genID.Generate(),
		Email:        email,
		PasswordHash: &hashed,
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Login verifies the email/password pair and issues a token pair. Unknown
// email and wrong password both map to ErrInvalidCredentials so the caller
// cannot enumerate accounts.
func (s *Service) Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResult, error) {
	email, err := normalizeEmail(req.Email)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if strings.TrimSpace(req.Password) == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if user.PasswordHash == nil || !password.Verify(req.Password, *user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	tokens, err := s.issuer.Issue(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Debug("user logged in", zap.String("user_id", user.ID.String()))

	return &domain.LoginResult{
		User:   user,
		Tokens: tokens,
	}, nil
}

func (s *Service) Refresh(ctx context.Context, rawRefresh string) (*domain.RefreshResult, error) {
	raw := strings.TrimSpace(rawRefresh)
	if raw == "" {
		return nil, domain.ErrTokenMalformed
	}

	claims, err := s.issuer.ParseRefresh(raw)
	if err != nil {
		return nil, err
	}

	if err := s.issuer.CheckLive(ctx, claims.ID); err != nil {
		return nil, err
	}

	userID, err := snowflake.ParseString(claims.Subject)
	if err != nil {
		return nil, domain.ErrTokenMalformed
	}
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrTokenMalformed
		}
		return nil, err
	}

	access, expiresAt, err := s.issuer.MintAccess(user)
	if err != nil {
		return nil, err
	}

	return &domain.RefreshResult{
		AccessToken:     access,
		AccessExpiresAt: expiresAt,
	}, nil
}

func (s *Service) Revoke(ctx context.Context, rawRefresh string) error {
	raw := strings.TrimSpace(rawRefresh)
	if raw == "" {
		return domain.ErrTokenMalformed
	}

	claims, err := s.issuer.ParseRefresh(raw)
	if err != nil {
		return err
	}

	revoked, err := s.issuer.Revoke(ctx, claims.ID)
	if err != nil {
		return err
	}
	if !revoked {
		return domain.ErrTokenNotFound
	}

	s.log.Debug("refresh token revoked", zap.String("jti", claims.ID))
	return nil
}

func (s *Service) Authenticate(ctx context.Context, rawAccess string) (*domain.User, error) {
	raw := strings.TrimSpace(rawAccess)
	if raw == "" {
		return nil, domain.ErrTokenMalformed
	}

	claims, err := s.issuer.ParseAccess(raw)
	if err != nil {
		return nil, err
	}

	userID, err := snowflake.ParseString(claims.Subject)
	if err != nil {
		return nil, domain.ErrTokenMalformed
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrTokenMalformed
		}
		return nil, err
	}

	return user, nil
}

func normalizeEmail(raw string) (string, error) {
	addr, err := mail.ParseAddress(strings.TrimSpace(raw))
	if err != nil {
		return "", err
	}
	return strings.ToLower(strings.TrimSpace(addr.Address)), nil
}
