package password

import "testing"

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("correct horse battery staple")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if hash == "correct horse battery staple" {
		t.Fatal("Hash() returned the plaintext")
	}

	if !Verify("correct horse battery staple", hash) {
		t.Error("Verify() rejected the right password")
	}
	if Verify("wrong password", hash) {
		t.Error("Verify() accepted the wrong password")
	}
}

func TestHashToken(t *testing.T) {
	a := HashToken("token-a")
	b := HashToken("token-b")

	if a == b {
		t.Error("different tokens hash to the same digest")
	}
	if len(a) != 64 {
		t.Errorf("digest length = %d, want 64 hex chars", len(a))
	}
	if a != HashToken("token-a") {
		t.Error("HashToken is not deterministic")
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		password string
		want     bool
	}{
		{"12345678", true},
		{"1234567", false},
		{"", false},
		{"a long passphrase", true},
	}

	for _, test := range tests {
		if got := ValidatePassword(test.password); got != test.want {
			t.Errorf("ValidatePassword(%q) = %v, want %v", test.password, got, test.want)
		}
	}
}
