package token

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/workbenchhq/workbench/internal/auth/domain"
)

type memoryTokenRepo struct {
	mu      sync.Mutex
	records map[string]*domain.RefreshToken
}

func newMemoryTokenRepo() *memoryTokenRepo {
	return &memoryTokenRepo{records: make(map[string]*domain.RefreshToken)}
}

func (r *memoryTokenRepo) Create(ctx context.Context, record *domain.RefreshToken) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *record
	r.records[record.JTI] = &cp
	return nil
}

func (r *memoryTokenRepo) FindByJTI(ctx context.Context, jti string) (*domain.RefreshToken, error) {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.records[jti]
	if !ok {
		return nil, domain.ErrTokenNotFound
	}
	cp := *record
	return &cp, nil
}

func (r *memoryTokenRepo) Blacklist(ctx context.Context, jti string, at time.Time) (bool, error) {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.records[jti]
	if !ok || record.BlacklistedAt != nil {
		return false, nil
	}
	record.BlacklistedAt = &at
	return true, nil
}

func newTestIssuer(t *testing.T) (*Issuer, *memoryTokenRepo) {
	t.Helper()

	repo := newMemoryTokenRepo()
	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("failed to create snowflake node: %v", err)
	}
	issuer, err := NewIssuer("test-secret", 15*time.Minute, 7*24*time.Hour, repo, node)
	if err != nil {
		t.Fatalf("failed to create issuer: %v", err)
	}
	return issuer, repo
}

func testUser() *domain.User {
	orgID := snowflake.ID(42)
	return &domain.User{
		ID:             snowflake.ID(100),
		Email:          "alice@example.com",
		OrganizationID: &orgID,
	}
}

func TestIssueAndParsePair(t *testing.T) {
	issuer, repo := newTestIssuer(t)

	pair, err := issuer.Issue(context.Background(), testUser())
	if err != nil {
		t.Fatalf("failed to issue pair: %v", err)
	}

	access, err := issuer.ParseAccess(pair.AccessToken)
	if err != nil {
		t.Fatalf("failed to parse access token: %v", err)
	}
	if access.Subject != "100" {
		t.Fatalf("expected subject 100, got %s", access.Subject)
	}
	if access.OrgID != "42" {
		t.Fatalf("expected org id 42, got %s", access.OrgID)
	}
	if access.Email != "alice@example.com" {
		t.Fatalf("expected email claim, got %s", access.Email)
	}

	refresh, err := issuer.ParseRefresh(pair.RefreshToken)
	if err != nil {
		t.Fatalf("failed to parse refresh token: %v", err)
	}
	if refresh.ID == "" {
		t.Fatal("expected refresh jti")
	}
	if _, err := repo.FindByJTI(context.Background(), refresh.ID); err != nil {
		t.Fatalf("expected persisted refresh record: %v", err)
	}
}

func TestAccessTokenRejectedAsRefresh(t *testing.T) {
	issuer, _ := newTestIssuer(t)

	pair, err := issuer.Issue(context.Background(), testUser())
	if err != nil {
		t.Fatalf("failed to issue pair: %v", err)
	}

	if _, err := issuer.ParseRefresh(pair.AccessToken); err != domain.ErrTokenMalformed {
		t.Fatalf("expected ErrTokenMalformed, got %v", err)
	}
	if _, err := issuer.ParseAccess(pair.RefreshToken); err != domain.ErrTokenMalformed {
		t.Fatalf("expected ErrTokenMalformed, got %v", err)
	}
}

func TestParseExpiredAccessToken(t *testing.T) {
	issuer, _ := newTestIssuer(t)

	pair, err := issuer.Issue(context.Background(), testUser())
	if err != nil {
		t.Fatalf("failed to issue pair: %v", err)
	}

	issuer.now = func() time.Time { return time.Now().Add(16 * time.Minute) }
	if _, err := issuer.ParseAccess(pair.AccessToken); err != domain.ErrTokenExpired {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestParseWrongSecret(t *testing.T) {
	issuer, repo := newTestIssuer(t)

	pair, err := issuer.Issue(context.Background(), testUser())
	if err != nil {
		t.Fatalf("failed to issue pair: %v", err)
	}

	node, err := snowflake.NewNode(2)
	if err != nil {
		t.Fatalf("failed to create snowflake node: %v", err)
	}
	other, err := NewIssuer("other-secret", 15*time.Minute, 7*24*time.Hour, repo, node)
	if err != nil {
		t.Fatalf("failed to create issuer: %v", err)
	}

	if _, err := other.ParseAccess(pair.AccessToken); err != domain.ErrTokenMalformed {
		t.Fatalf("expected ErrTokenMalformed, got %v", err)
	}
}

func TestRevokeBlacklistsOnce(t *testing.T) {
	issuer, _ := newTestIssuer(t)
	ctx := context.Background()

	pair, err := issuer.Issue(ctx, testUser())
	if err != nil {
		t.Fatalf("failed to issue pair: %v", err)
	}
	claims, err := issuer.ParseRefresh(pair.RefreshToken)
	if err != nil {
		t.Fatalf("failed to parse refresh token: %v", err)
	}

	if err := issuer.CheckLive(ctx, claims.ID); err != nil {
		t.Fatalf("expected live token, got %v", err)
	}

	revoked, err := issuer.Revoke(ctx, claims.ID)
	if err != nil {
		t.Fatalf("failed to revoke: %v", err)
	}
	if !revoked {
		t.Fatal("expected first revoke to transition the record")
	}

	revoked, err = issuer.Revoke(ctx, claims.ID)
	if err != nil {
		t.Fatalf("failed to revoke twice: %v", err)
	}
	if revoked {
		t.Fatal("expected second revoke to be a no-op")
	}

	if err := issuer.CheckLive(ctx, claims.ID); err != domain.ErrTokenBlacklisted {
		t.Fatalf("expected ErrTokenBlacklisted, got %v", err)
	}
}

func TestCheckLiveExpiredRecord(t *testing.T) {
	issuer, _ := newTestIssuer(t)
	ctx := context.Background()

	pair, err := issuer.Issue(ctx, testUser())
	if err != nil {
		t.Fatalf("failed to issue pair: %v", err)
	}
	claims, err := issuer.ParseRefresh(pair.RefreshToken)
	if err != nil {
		t.Fatalf("failed to parse refresh token: %v", err)
	}

	issuer.now = func() time.Time { return time.Now().Add(8 * 24 * time.Hour) }
	if err := issuer.CheckLive(ctx, claims.ID); err != domain.ErrTokenExpired {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}
