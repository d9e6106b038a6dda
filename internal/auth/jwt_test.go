package auth

import (
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	token, exp, err := Issue(7, "Dupont", "dupont@example.com", "professeur", "test-issuer", "secret", time.Hour)
	if err != nil {
		t.Fatalf("issue error: %v", err)
	}
	if time.Until(exp) < 55*time.Minute {
		t.Fatalf("expiry too soon: %s", exp)
	}

	claims, err := Parse(token, "secret", "test-issuer")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if claims.UserID != 7 || claims.Name != "Dupont" || claims.Email != "dupont@example.com" || claims.Role != "professeur" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestParseRejectsWrongKey(t *testing.T) {
	token, _, err := Issue(1, "a", "a@x.com", "professeur", "iss", "secret", time.Hour)
	if err != nil {
		t.Fatalf("issue error: %v", err)
	}
	if _, err := Parse(token, "other-secret", "iss"); err == nil {
		t.Fatalf("expected signature error")
	}
}

func TestParseRejectsWrongIssuer(t *testing.T) {
	token, _, err := Issue(1, "a", "a@x.com", "professeur", "iss", "secret", time.Hour)
	if err != nil {
		t.Fatalf("issue error: %v", err)
	}
	if _, err := Parse(token, "secret", "someone-else"); err == nil {
		t.Fatalf("expected issuer mismatch")
	}
}

func TestParseRejectsExpired(t *testing.T) {
	token, _, err := Issue(1, "a", "a@x.com", "professeur", "iss", "secret", -time.Minute)
	if err != nil {
		t.Fatalf("issue error: %v", err)
	}
	if _, err := Parse(token, "secret", "iss"); err == nil {
		t.Fatalf("expected expired token error")
	}
}
