package utils

import "testing"

func TestHashPasswordRoundtrip(t *testing.T) {
	passwords := []string{"hunter2", "correct horse battery staple", "päss wörd", " "}
	for _, password := range passwords {
		hash, err := HashPassword(password)
		if err != nil {
			t.Fatalf("HashPassword(%q): %v", password, err)
		}
		if hash == password {
			t.Fatalf("hash equals plaintext for %q", password)
		}
		if !CheckPassword(password, hash) {
			t.Errorf("CheckPassword(%q) = false against its own hash", password)
		}
		if CheckPassword(password+"x", hash) {
			t.Errorf("CheckPassword accepted wrong password for %q", password)
		}
		if CheckPassword("", hash) {
			t.Errorf("CheckPassword accepted empty password for %q", password)
		}
	}
}

func TestCheckPasswordGarbageHash(t *testing.T) {
	if CheckPassword("anything", "not-a-bcrypt-hash") {
		t.Error("CheckPassword accepted a malformed hash")
	}
}
