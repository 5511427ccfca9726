package auth

import "testing"

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if err := CheckPassword(hash, "correct horse"); err != nil {
		t.Fatalf("check failed for right password: %v", err)
	}
	if err := CheckPassword(hash, "wrong"); err == nil {
		t.Fatal("check passed for wrong password")
	}
}

func TestSignVerify(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	tok, jti, err := Sign("user-1", []string{"Administrator"})
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}
	if jti == "" {
		t.Fatal("empty jti")
	}
	claims, err := Verify(tok)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if claims.Subject != "user-1" || claims.JWTID != jti {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if !claims.HasRole("Administrator") || claims.HasRole("User") {
		t.Fatalf("bad roles: %+v", claims.Roles)
	}
}

func TestVerifyRejectsTampered(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	tok, _, err := Sign("user-1", nil)
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}
	if _, err := Verify(tok + "x"); err == nil {
		t.Fatal("verify accepted tampered token")
	}
	t.Setenv("JWT_SECRET", "other-secret")
	if _, err := Verify(tok); err == nil {
		t.Fatal("verify accepted token signed with a different secret")
	}
}
