package selection

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"hash"
	"sort"
	"strconv"

	"github.com/zeebo/blake3"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
)

// DefaultAlgorithm is the digest used when no hash function is supplied.
const DefaultAlgorithm = "sha256"

// ErrUnknownAlgorithm is returned when an algorithm name is not registered.
var ErrUnknownAlgorithm = errors.New("unknown hash algorithm")

// HashFunc creates a fresh hash state.
// Every call must return an independent hash.Hash, it is invoked once per round.
type HashFunc func() hash.Hash

// algorithms maps algorithm names to their hash constructors.
var algorithms = map[string]HashFunc{
	"sha256":   sha256.New,
	"blake3":   func() hash.Hash { return blake3.New() },
	"sha3-256": sha3.New256,
	"blake2b-256": func() hash.Hash {
		// New256 only fails for keys longer than 64 bytes
		h, _ := blake2b.New256(nil)
		return h
	},
}

// Algorithm returns the hash constructor registered under name.
func Algorithm(name string) (HashFunc, error) {
	fn, ok := algorithms[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
	}

	return fn, nil
}

// Algorithms returns the registered algorithm names in sorted order.
func Algorithms() []string {
	names := make([]string, 0, len(algorithms))
	for name := range algorithms {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// RoundReference computes the reference digest for one selection round.
// Digest = H(context || seed || decimal(sequence))
//
// The sequence is written as its base-10 ASCII form, not as fixed-width binary.
// A nil newHash selects SHA-256.
func RoundReference(context string, seed []byte, sequence uint64, newHash HashFunc) []byte {
	if newHash == nil {
		newHash = sha256.New
	}

	h := newHash()
	h.Write([]byte(context))
	h.Write(seed)
	h.Write(strconv.AppendUint(nil, sequence, 10))

	return h.Sum(nil)
}
