package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/jewelmandi/jewelmandi-backend/pkg/config"
	"github.com/jewelmandi/jewelmandi-backend/pkg/enums"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "jewelmandi-test",
		ExpirationMinutes: 15,
	}
}

func TestMintAndParseAccessToken(t *testing.T) {
	cfg := testJWTConfig()
	payload := AccessTokenPayload{
		UserID:   uuid.New(),
		TenantID: uuid.New(),
		Role:     enums.UserRoleAdmin,
		JTI:      "jti-123",
	}

	signed, err := MintAccessToken(cfg, time.Now(), payload)
	if err != nil {
		t.Fatalf("mint failed: %v", err)
	}

	claims, err := ParseAccessToken(cfg, signed)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if claims.UserID != payload.UserID {
		t.Fatalf("user id mismatch: %s vs %s", claims.UserID, payload.UserID)
	}
	if claims.TenantID != payload.TenantID {
		t.Fatalf("tenant id mismatch: %s vs %s", claims.TenantID, payload.TenantID)
	}
	if claims.Role != enums.UserRoleAdmin {
		t.Fatalf("unexpected role %q", claims.Role)
	}
	if claims.ID != "jti-123" {
		t.Fatalf("unexpected jti %q", claims.ID)
	}
}

func TestMintAccessToken_RequiresTenant(t *testing.T) {
	payload := AccessTokenPayload{
		UserID: uuid.New(),
		Role:   enums.UserRoleStaff,
	}
	if _, err := MintAccessToken(testJWTConfig(), time.Now(), payload); err == nil {
		t.Fatal("expected error for missing tenant id")
	}
}

func TestParseAccessToken_RejectsExpired(t *testing.T) {
	cfg := testJWTConfig()
	payload := AccessTokenPayload{
		UserID:   uuid.New(),
		TenantID: uuid.New(),
		Role:     enums.UserRoleStaff,
	}

	signed, err := MintAccessToken(cfg, time.Now().Add(-2*time.Hour), payload)
	if err != nil {
		t.Fatalf("mint failed: %v", err)
	}

	if _, err := ParseAccessToken(cfg, signed); err == nil {
		t.Fatal("expected expired token to fail validation")
	}

	claims, err := ParseAccessTokenAllowExpired(cfg, signed)
	if err != nil {
		t.Fatalf("allow-expired parse failed: %v", err)
	}
	if claims.UserID != payload.UserID {
		t.Fatalf("user id mismatch after allow-expired parse")
	}
}

func TestParseAccessToken_RejectsWrongSecret(t *testing.T) {
	cfg := testJWTConfig()
	signed, err := MintAccessToken(cfg, time.Now(), AccessTokenPayload{
		UserID:   uuid.New(),
		TenantID: uuid.New(),
		Role:     enums.UserRoleAdmin,
	})
	if err != nil {
		t.Fatalf("mint failed: %v", err)
	}

	other := cfg
	other.Secret = "other-secret"
	if _, err := ParseAccessToken(other, signed); err == nil {
		t.Fatal("expected signature mismatch to fail")
	}
}
