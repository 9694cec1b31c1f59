package utils

import (
	"testing"

	"github.com/google/uuid"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	userID := uuid.New()

	token, err := GenerateAccessToken(userID, "partner", "test-secret", 1)
	if err != nil {
		t.Fatalf("generate error: %v", err)
	}

	claims, err := ParseAccessToken(token, "test-secret")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if claims.UserID != userID.String() {
		t.Fatalf("user_id = %s, want %s", claims.UserID, userID)
	}
	if claims.Role != "partner" {
		t.Fatalf("role = %s, want partner", claims.Role)
	}
	if claims.Subject != userID.String() {
		t.Fatalf("subject = %s, want %s", claims.Subject, userID)
	}
}

func TestParseAccessTokenRejectsWrongSecret(t *testing.T) {
	token, err := GenerateAccessToken(uuid.New(), "customer", "secret-a", 1)
	if err != nil {
		t.Fatalf("generate error: %v", err)
	}

	if _, err := ParseAccessToken(token, "secret-b"); err == nil {
		t.Fatal("token signed with another secret accepted")
	}
}

func TestParseAccessTokenRejectsExpired(t *testing.T) {
	token, err := GenerateAccessToken(uuid.New(), "customer", "test-secret", -1)
	if err != nil {
		t.Fatalf("generate error: %v", err)
	}

	if _, err := ParseAccessToken(token, "test-secret"); err == nil {
		t.Fatal("expired token accepted")
	}
}

func TestParseAccessTokenRejectsGarbage(t *testing.T) {
	if _, err := ParseAccessToken("not-a-token", "test-secret"); err == nil {
		t.Fatal("garbage accepted as token")
	}
}
