package token_test

import (
	"context"
	"testing"
	"time"

	"github.com/zemenu6/dbrand-backend/internal/token"

	"github.com/google/uuid"
)

func TestHSProvider_SignAndParse(t *testing.T) {
	p := token.NewHSProvider("test-secret", "dbrand-backend", "dbrand-web")
	ctx := context.Background()

	uid := uuid.New()
	signed, exp, err := p.SignAccess(ctx, uid, "ADMIN", time.Hour)
	if err != nil {
		t.Fatalf("SignAccess: %v", err)
	}
	if time.Until(exp) < 55*time.Minute {
		t.Fatalf("exp too close: %s", exp)
	}

	claims, err := p.ParseAndValidateAccess(ctx, signed)
	if err != nil {
		t.Fatalf("ParseAndValidateAccess: %v", err)
	}
	if claims.UserID != uid {
		t.Fatalf("sub mismatch: %s != %s", claims.UserID, uid)
	}
	if claims.Role != "ADMIN" {
		t.Fatalf("role mismatch: %s", claims.Role)
	}
}

func TestHSProvider_WrongSecret(t *testing.T) {
	ctx := context.Background()
	signer := token.NewHSProvider("secret-a", "dbrand-backend", "dbrand-web")
	parser := token.NewHSProvider("secret-b", "dbrand-backend", "dbrand-web")

	signed, _, err := signer.SignAccess(ctx, uuid.New(), "USER", time.Hour)
	if err != nil {
		t.Fatalf("SignAccess: %v", err)
	}
	if _, err := parser.ParseAndValidateAccess(ctx, signed); err == nil {
		t.Fatal("token signed with another secret must be rejected")
	}
}

func TestHSProvider_WrongAudience(t *testing.T) {
	ctx := context.Background()
	signer := token.NewHSProvider("secret", "dbrand-backend", "other-app")
	parser := token.NewHSProvider("secret", "dbrand-backend", "dbrand-web")

	signed, _, err := signer.SignAccess(ctx, uuid.New(), "USER", time.Hour)
	if err != nil {
		t.Fatalf("SignAccess: %v", err)
	}
	if _, err := parser.ParseAndValidateAccess(ctx, signed); err == nil {
		t.Fatal("token for another audience must be rejected")
	}
}

func TestHSProvider_Expired(t *testing.T) {
	ctx := context.Background()
	p := token.NewHSProvider("secret", "dbrand-backend", "dbrand-web")

	signed, _, err := p.SignAccess(ctx, uuid.New(), "USER", -time.Minute)
	if err != nil {
		t.Fatalf("SignAccess: %v", err)
	}
	if _, err := p.ParseAndValidateAccess(ctx, signed); err == nil {
		t.Fatal("expired token must be rejected")
	}
}

func TestHSProvider_Garbage(t *testing.T) {
	p := token.NewHSProvider("secret", "dbrand-backend", "dbrand-web")
	if _, err := p.ParseAndValidateAccess(context.Background(), "not.a.jwt"); err == nil {
		t.Fatal("garbage must be rejected")
	}
}
