package auth

import "testing"

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("123456")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if hash == "123456" {
		t.Fatal("expected password to be hashed")
	}

	ok, err := VerifyPassword(hash, "123456")
	if err != nil || !ok {
		t.Fatalf("expected match, got %v %v", ok, err)
	}

	ok, err = VerifyPassword(hash, "wrong")
	if err != nil || ok {
		t.Fatalf("expected mismatch without error, got %v %v", ok, err)
	}
}

func TestVerifyPasswordMalformedHash(t *testing.T) {
	if _, err := VerifyPassword("not-a-hash", "123456"); err == nil {
		t.Fatal("expected error for malformed hash")
	}
}
