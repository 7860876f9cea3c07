package crypto_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/RobuxEmperium/robux-site/modules/identity/infrastructure/crypto"
)

// testParams keeps hashing fast in tests; production defaults are much
// more expensive.
func testParams() *crypto.Params {
	return &crypto.Params{
		Memory:      8 * 1024,
		Iterations:  1,
		Parallelism: 1,
		SaltLength:  16,
		KeyLength:   32,
	}
}

func TestArgon2Hasher_HashAndVerify(t *testing.T) {
	ctx := context.Background()
	hasher := crypto.NewArgon2Hasher(testParams())

	hash, err := hasher.Hash(ctx, "correct horse battery staple")
	if err != nil {
		t.Fatalf("hashing: %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$") {
		t.Fatalf("expected PHC-format hash, got %q", hash)
	}

	ok, err := hasher.Verify(ctx, "correct horse battery staple", hash)
	if err != nil {
		t.Fatalf("verifying: %v", err)
	}
	if !ok {
		t.Error("expected the right password to verify")
	}

	ok, err = hasher.Verify(ctx, "wrong password", hash)
	if err != nil {
		t.Fatalf("verifying: %v", err)
	}
	if ok {
		t.Error("expected the wrong password to fail")
	}
}

func TestArgon2Hasher_HashesDiffer(t *testing.T) {
	ctx := context.Background()
	hasher := crypto.NewArgon2Hasher(testParams())

	first, err := hasher.Hash(ctx, "same password")
	if err != nil {
		t.Fatalf("hashing: %v", err)
	}
	second, err := hasher.Hash(ctx, "same password")
	if err != nil {
		t.Fatalf("hashing: %v", err)
	}
	if first == second {
		t.Error("expected random salts to produce distinct hashes")
	}
}

func TestArgon2Hasher_Verify_MalformedHash(t *testing.T) {
	ctx := context.Background()
	hasher := crypto.NewArgon2Hasher(testParams())

	for _, encoded := range []string{
		"",
		"plaintext",
		"$argon2id$v=19$m=8192,t=1,p=1$onlyfourparts",
		"$bcrypt$v=19$m=8192,t=1,p=1$c2FsdA$aGFzaA",
	} {
		_, err := hasher.Verify(ctx, "password", encoded)
		if !errors.Is(err, crypto.ErrMalformedHash) {
			t.Errorf("expected ErrMalformedHash for %q, got %v", encoded, err)
		}
	}
}
