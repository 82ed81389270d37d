package password

import (
	"strings"
	"testing"
)

func TestHashAndVerify(t *testing.T) {
	encoded, err := Hash("correct-password")
	if err != nil {
		t.Fatalf("failed to hash: %v", err)
	}
	if !strings.HasPrefix(encoded, "$argon2id$v=19$") {
		t.Fatalf("unexpected encoding: %s", encoded)
	}

	if !Verify("correct-password", encoded) {
		t.Fatal("expected matching password to verify")
	}
	if Verify("wrong-password", encoded) {
		t.Fatal("expected mismatching password to fail")
	}
}

func TestHashIsSalted(t *testing.T) {
	a, err := Hash("correct-password")
	if err != nil {
		t.Fatalf("failed to hash: %v", err)
	}
	b, err := Hash("correct-password")
	if err != nil {
		t.Fatalf("failed to hash: %v", err)
	}
	if a == b {
		t.Fatal("expected distinct salts to produce distinct encodings")
	}
}

func TestVerifyMalformedEncoding(t *testing.T) {
	cases := []string{
		"",
		"plaintext",
		"$argon2i$v=19$m=65536,t=1,p=4$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=banana,t=1,p=4$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=65536,t=1,p=4$!!!$aGFzaA",
	}
	for _, encoded := range cases {
		if Verify("whatever", encoded) {
			t.Fatalf("expected malformed encoding to fail: %q", encoded)
		}
	}
}
