package utils

import (
	"testing"
)

func TestAdminTokenRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("test-secret")

	token, err := issuer.GenerateAdminToken("admin-1", "company-1")
	if err != nil {
		t.Fatal(err)
	}

	claims, err := issuer.VerifyAdminToken(token)
	if err != nil {
		t.Fatal(err)
	}
	if claims.AdminID != "admin-1" || claims.CompanyID != "company-1" {
		t.Fatalf("claims = %q/%q, want admin-1/company-1", claims.AdminID, claims.CompanyID)
	}
}

func TestSuperAdminTokenRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("test-secret")

	token, err := issuer.GenerateSuperAdminToken("sa-1")
	if err != nil {
		t.Fatal(err)
	}

	claims, err := issuer.VerifySuperAdminToken(token)
	if err != nil {
		t.Fatal(err)
	}
	if claims.SuperAdminID != "sa-1" {
		t.Fatalf("SuperAdminID = %q, want sa-1", claims.SuperAdminID)
	}
}

func TestTokenTypesAreNotInterchangeable(t *testing.T) {
	issuer := NewTokenIssuer("test-secret")

	adminToken, err := issuer.GenerateAdminToken("admin-1", "company-1")
	if err != nil {
		t.Fatal(err)
	}
	superToken, err := issuer.GenerateSuperAdminToken("sa-1")
	if err != nil {
		t.Fatal(err)
	}

	if _, err := issuer.VerifySuperAdminToken(adminToken); err == nil {
		t.Fatal("admin token must not verify as a super-admin token")
	}
	if _, err := issuer.VerifyAdminToken(superToken); err == nil {
		t.Fatal("super-admin token must not verify as an admin token")
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	token, err := NewTokenIssuer("secret-a").GenerateAdminToken("admin-1", "company-1")
	if err != nil {
		t.Fatal(err)
	}

	if _, err := NewTokenIssuer("secret-b").VerifyAdminToken(token); err == nil {
		t.Fatal("token signed with another secret must not verify")
	}
}

func TestVerifyAcceptsBearerPrefix(t *testing.T) {
	issuer := NewTokenIssuer("test-secret")

	token, err := issuer.GenerateAdminToken("admin-1", "company-1")
	if err != nil {
		t.Fatal(err)
	}

	claims, err := issuer.VerifyAdminToken("Bearer " + token)
	if err != nil {
		t.Fatal(err)
	}
	if claims.AdminID != "admin-1" {
		t.Fatalf("AdminID = %q, want admin-1", claims.AdminID)
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	issuer := NewTokenIssuer("test-secret")

	for _, token := range []string{"", "not-a-token", "Bearer "} {
		if _, err := issuer.VerifyAdminToken(token); err == nil {
			t.Fatalf("token %q must not verify", token)
		}
	}
}
