package selection

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"testing"
)

// TestRoundReferenceVectors verifies digests against known SHA-256 outputs.
func TestRoundReferenceVectors(t *testing.T) {
	tests := []struct {
		name     string
		context  string
		seed     []byte
		sequence uint64
		expected string
	}{
		{"happy path", "test", []byte("seed"), 1, "468460ee3c32ca9574f91f213853d0b0aece116aa74b71ab66bb7a9c558b2b7c"},
		{"empty context", "", []byte("seed"), 1, "df9ecf4c79e5ad77701cfc88c196632b353149d85810a381f469f8fc05dc1b92"},
		{"empty seed", "test", nil, 1, "1b4f0e9851971998e732078544c96b36c3d01cedf7caa332359d6f1d83567014"},
		{"max sequence", "ctx", nil, ^uint64(0), "9282defa63a3fc40f08ed362cf4b781078e56e3dc32fb15acac357b36e80612d"},
	}

	for _, tc := range tests {
		got := hex.EncodeToString(RoundReference(tc.context, tc.seed, tc.sequence, sha256.New))
		if got != tc.expected {
			t.Errorf("%s: got %s, want %s", tc.name, got, tc.expected)
		}
	}
}

// TestRoundReferenceAlgorithms verifies every registered algorithm against known digests.
func TestRoundReferenceAlgorithms(t *testing.T) {
	tests := []struct {
		algorithm string
		expected  string
	}{
		{"sha256", "468460ee3c32ca9574f91f213853d0b0aece116aa74b71ab66bb7a9c558b2b7c"},
		{"sha3-256", "0e6dffb6e4ca034930b750dcdad8a485719471ee672f0f37f20ab188ff00f3ec"},
		{"blake2b-256", "db1ee84549821a7e119a5bf6e9697dce242e807c5a36246bc9f531d905538cdb"},
	}

	for _, tc := range tests {
		fn, err := Algorithm(tc.algorithm)
		if err != nil {
			t.Fatalf("Algorithm(%q) failed: %v", tc.algorithm, err)
		}

		got := hex.EncodeToString(RoundReference("test", []byte("seed"), 1, fn))
		if got != tc.expected {
			t.Errorf("%s: got %s, want %s", tc.algorithm, got, tc.expected)
		}
	}
}

// TestRoundReferenceBlake3 verifies the BLAKE3 digest is 32 bytes and deterministic.
func TestRoundReferenceBlake3(t *testing.T) {
	fn, err := Algorithm("blake3")
	if err != nil {
		t.Fatalf("Algorithm(blake3) failed: %v", err)
	}

	a := RoundReference("test", []byte("seed"), 1, fn)
	b := RoundReference("test", []byte("seed"), 1, fn)

	if len(a) != 32 {
		t.Fatalf("digest length: got %d, want 32", len(a))
	}

	if !bytes.Equal(a, b) {
		t.Error("blake3 reference is not deterministic")
	}

	if bytes.Equal(a, RoundReference("test", []byte("seed"), 1, nil)) {
		t.Error("blake3 and sha256 references should differ")
	}
}

// TestRoundReferenceDefaultHash verifies a nil constructor falls back to SHA-256.
func TestRoundReferenceDefaultHash(t *testing.T) {
	a := RoundReference("test", []byte("seed"), 1, nil)
	b := RoundReference("test", []byte("seed"), 1, sha256.New)

	if !bytes.Equal(a, b) {
		t.Errorf("nil hash: got %x, want %x", a, b)
	}
}

// TestRoundReferenceDecimalSequence verifies the sequence is hashed as decimal text.
func TestRoundReferenceDecimalSequence(t *testing.T) {
	h := sha256.New()
	h.Write([]byte("ctx"))
	h.Write([]byte("seed"))
	h.Write([]byte("1234567890"))
	want := h.Sum(nil)

	got := RoundReference("ctx", []byte("seed"), 1234567890, sha256.New)
	if !bytes.Equal(got, want) {
		t.Errorf("got %x, want %x", got, want)
	}
}

// TestRoundReferenceSequenceChanges verifies consecutive rounds produce distinct references.
func TestRoundReferenceSequenceChanges(t *testing.T) {
	seen := make(map[string]uint64)

	for seq := uint64(0); seq < 100; seq++ {
		key := string(RoundReference("ctx", []byte("seed"), seq, nil))
		if prev, ok := seen[key]; ok {
			t.Fatalf("sequence %d collides with %d", seq, prev)
		}
		seen[key] = seq
	}
}

// TestAlgorithmUnknown verifies unknown names are rejected.
func TestAlgorithmUnknown(t *testing.T) {
	if _, err := Algorithm("md5"); !errors.Is(err, ErrUnknownAlgorithm) {
		t.Errorf("expected ErrUnknownAlgorithm, got %v", err)
	}
}

// TestAlgorithmsSorted verifies the registry listing.
func TestAlgorithmsSorted(t *testing.T) {
	want := []string{"blake2b-256", "blake3", "sha256", "sha3-256"}
	got := Algorithms()

	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}

	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: got %s, want %s", i, got[i], want[i])
		}
	}
}
