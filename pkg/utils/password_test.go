package utils

import "testing"

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("senha-forte-123")
	if err != nil {
		t.Fatalf("hash error: %v", err)
	}
	if hash == "senha-forte-123" {
		t.Fatal("password stored in plaintext")
	}

	if !CheckPassword(hash, "senha-forte-123") {
		t.Fatal("correct password rejected")
	}
	if CheckPassword(hash, "senha-errada") {
		t.Fatal("wrong password accepted")
	}
}
