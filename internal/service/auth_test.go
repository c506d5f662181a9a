package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"vidtube/internal/config"
	"vidtube/internal/model"
	"vidtube/internal/repository"
)

// fakeTokenStore is an in-memory RefreshTokenRepository keyed by token hash.
type fakeTokenStore struct {
	repository.RefreshTokenRepository
	tokens map[string]*model.RefreshToken
	nextID int
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{tokens: map[string]*model.RefreshToken{}}
}

func (s *fakeTokenStore) Create(ctx context.Context, token *model.RefreshToken) error {
	s.nextID++
	token.ID = fmt.Sprintf("tok-%d", s.nextID)
	token.CreatedAt = time.Now()
	s.tokens[token.TokenHash] = token
	return nil
}

func (s *fakeTokenStore) FindByTokenHash(ctx context.Context, tokenHash string) (*model.RefreshToken, error) {
	token, ok := s.tokens[tokenHash]
	if !ok {
		return nil, model.ErrRefreshTokenNotFound
	}
	return token, nil
}

func (s *fakeTokenStore) Revoke(ctx context.Context, id string, replacedBy *string) error {
	for _, token := range s.tokens {
		if token.ID == id {
			now := time.Now()
			token.RevokedAt = &now
			token.ReplacedBy = replacedBy
			return nil
		}
	}
	return model.ErrRefreshTokenNotFound
}

func (s *fakeTokenStore) RevokeAllForUser(ctx context.Context, userID int64) error {
	now := time.Now()
	for _, token := range s.tokens {
		if token.UserID == userID && token.RevokedAt == nil {
			token.RevokedAt = &now
		}
	}
	return nil
}

func authFixture() (*AuthService, *fakeTokenStore) {
	store := newFakeTokenStore()
	cfg := &config.Config{
		JWTSecret:          "test-secret",
		AccessTokenMaxAge:  900,
		RefreshTokenMaxAge: 86400,
	}
	return NewAuthService(store, cfg), store
}

func TestGenerateTokenPairStoresHashedToken(t *testing.T) {
	svc, store := authFixture()

	pair, err := svc.GenerateTokenPair(context.Background(), 1, "cli", "127.0.0.1")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatal("expected both tokens to be set")
	}

	// The raw refresh token must never be persisted.
	if _, ok := store.tokens[pair.RefreshToken]; ok {
		t.Error("raw refresh token stored as key")
	}
	if len(store.tokens) != 1 {
		t.Fatalf("got %d stored tokens, want 1", len(store.tokens))
	}

	// Access token carries the user ID and verifies with the secret.
	parsed, err := jwt.Parse(pair.AccessToken, func(token *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("access token invalid: %v", err)
	}
	claims := parsed.Claims.(jwt.MapClaims)
	if int64(claims["user_id"].(float64)) != 1 {
		t.Errorf("got user_id %v, want 1", claims["user_id"])
	}
}

func TestRefreshTokensRotates(t *testing.T) {
	svc, store := authFixture()
	ctx := context.Background()

	pair, err := svc.GenerateTokenPair(ctx, 1, "", "")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	newPair, userID, err := svc.RefreshTokens(ctx, pair.RefreshToken, "", "")
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if userID != 1 {
		t.Errorf("got user %d, want 1", userID)
	}
	if newPair.RefreshToken == pair.RefreshToken {
		t.Error("refresh token was not rotated")
	}

	// The old token is revoked and linked to its replacement.
	old, err := store.FindByTokenHash(ctx, svc.hashToken(pair.RefreshToken))
	if err != nil {
		t.Fatalf("find old: %v", err)
	}
	if !old.IsRevoked() {
		t.Error("old token still active after rotation")
	}
	if old.ReplacedBy == nil {
		t.Error("old token not linked to its replacement")
	}
}

func TestRefreshTokenReuseRevokesFamily(t *testing.T) {
	svc, store := authFixture()
	ctx := context.Background()

	pair, _ := svc.GenerateTokenPair(ctx, 1, "", "")
	if _, _, err := svc.RefreshTokens(ctx, pair.RefreshToken, "", ""); err != nil {
		t.Fatalf("first refresh: %v", err)
	}

	// Replaying the consumed token is reuse and burns every live token.
	_, _, err := svc.RefreshTokens(ctx, pair.RefreshToken, "", "")
	if !errors.Is(err, model.ErrRefreshTokenReused) {
		t.Fatalf("got %v, want ErrRefreshTokenReused", err)
	}

	for hash, token := range store.tokens {
		if !token.IsRevoked() {
			t.Errorf("token %s survived family revocation", hash)
		}
	}
}

func TestRefreshTokenExpired(t *testing.T) {
	svc, store := authFixture()
	ctx := context.Background()

	pair, _ := svc.GenerateTokenPair(ctx, 1, "", "")
	stored := store.tokens[svc.hashToken(pair.RefreshToken)]
	stored.ExpiresAt = time.Now().Add(-time.Hour)

	_, _, err := svc.RefreshTokens(ctx, pair.RefreshToken, "", "")
	if !errors.Is(err, model.ErrRefreshTokenExpired) {
		t.Errorf("got %v, want ErrRefreshTokenExpired", err)
	}
}

func TestRefreshTokenUnknown(t *testing.T) {
	svc, _ := authFixture()

	_, _, err := svc.RefreshTokens(context.Background(), "never-issued", "", "")
	if !errors.Is(err, model.ErrRefreshTokenNotFound) {
		t.Errorf("got %v, want ErrRefreshTokenNotFound", err)
	}
}
