// Package token issues and verifies the JWT pair used for authentication.
// Access tokens are stateless and verified by signature and expiry alone;
// refresh tokens carry a persisted JTI so they can be individually revoked.
package token

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/workbenchhq/workbench/internal/auth/domain"
)

const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

// Claims is the JWT claims structure shared by both token types. Subject
// carries the user ID; ID carries the refresh JTI.
type Claims struct {
	Type  string `json:"typ"`
	OrgID string `json:"oid,omitempty"`
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// Issuer mints and verifies token pairs for a single signing key.
type Issuer struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	repo       domain.TokenRepository
	genID      *snowflake.Node
	now        func() time.Time
}

func NewIssuer(secret string, accessTTL, refreshTTL time.Duration, repo domain.TokenRepository, genID *snowflake.Node) (*Issuer, error) {
	if secret == "" {
		return nil, errors.New("token: signing secret is required")
	}
	if accessTTL <= 0 || refreshTTL <= 0 {
		return nil, errors.New("token: ttls must be positive")
	}
	return &Issuer{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		repo:       repo,
		genID:      genID,
		now:        time.Now,
	}, nil
}

// Issue mints an access/refresh pair for the user and persists the refresh
// token record.
func (i *Issuer) Issue(ctx context.Context, user *domain.User) (*domain.TokenPair, error) {
	access, accessExp, err := i.MintAccess(user)
	if err != nil {
		return nil, err
	}

	now := i.now().UTC()
	refreshExp := now.Add(i.refreshTTL)
	jti := uuid.NewString()

	claims := Claims{
		Type: TypeRefresh,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			ID:        jti,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(refreshExp),
		},
	}
	refresh, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return nil, err
	}

	record := &domain.RefreshToken{
		ID:        i.genID.Generate(),
		JTI:       jti,
		UserID:    user.ID,
		IssuedAt:  now,
		ExpiresAt: refreshExp,
	}
	if err := i.repo.Create(ctx, record); err != nil {
		return nil, err
	}

	return &domain.TokenPair{
		AccessToken:      access,
		AccessExpiresAt:  accessExp,
		RefreshToken:     refresh,
		RefreshExpiresAt: refreshExp,
	}, nil
}

// MintAccess mints a short-lived stateless access token.
func (i *Issuer) MintAccess(user *domain.User) (string, time.Time, error) {
	now := i.now().UTC()
	exp := now.Add(i.accessTTL)

	claims := Claims{
		Type:  TypeAccess,
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	if user.OrganizationID != nil {
		claims.OrgID = user.OrganizationID.String()
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// ParseAccess verifies an access token by signature and expiry.
func (i *Issuer) ParseAccess(raw string) (*Claims, error) {
	return i.parse(raw, TypeAccess)
}

// ParseRefresh verifies a refresh token's signature and expiry. Callers must
// still consult CheckLive before honoring it.
func (i *Issuer) ParseRefresh(raw string) (*Claims, error) {
	return i.parse(raw, TypeRefresh)
}

// CheckLive verifies the persisted refresh record is present, unexpired and
// not blacklisted.
func (i *Issuer) CheckLive(ctx context.Context, jti string) error {
	record, err := i.repo.FindByJTI(ctx, jti)
	if err != nil {
		return err
	}
	if record.BlacklistedAt != nil {
		return domain.ErrTokenBlacklisted
	}
	if i.now().UTC().After(record.ExpiresAt) {
		return domain.ErrTokenExpired
	}
	return nil
}

// Revoke blacklists the refresh record. It reports whether a live record was
// transitioned; revoking an already-revoked or unknown token is not an error.
func (i *Issuer) Revoke(ctx context.Context, jti string) (bool, error) {
	return i.repo.Blacklist(ctx, jti, i.now().UTC())
}

func (i *Issuer) parse(raw, wantType string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrTokenMalformed
		}
		return i.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return i.now() }))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenMalformed
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, domain.ErrTokenMalformed
	}
	if claims.Type != wantType {
		return nil, domain.ErrTokenMalformed
	}
	if _, err := snowflake.ParseString(claims.Subject); err != nil {
		return nil, domain.ErrTokenMalformed
	}
	return claims, nil
}
