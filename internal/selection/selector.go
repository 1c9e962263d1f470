package selection

import "errors"

// ErrNoCandidates is returned when the candidate set is empty.
// It is distinct from a successful selection of zero candidates.
var ErrNoCandidates = errors.New("no candidates to select from")

// options holds the optional selection parameters.
type options struct {
	newHash HashFunc
	weights []uint64
}

// Option configures a selection call.
type Option func(*options)

// WithHash sets the hash constructor used for the round reference.
func WithHash(fn HashFunc) Option {
	return func(o *options) {
		o.newHash = fn
	}
}

// WithWeights sets per-candidate weights, aligned by index with the candidates.
// A positive weight divides the candidate's distance. Zero weights and indices
// past the end of weights leave the distance unchanged.
func WithWeights(weights []uint64) Option {
	return func(o *options) {
		o.weights = weights
	}
}

// Select returns the n candidates closest to the round reference of
// (context, seed, sequence), closest first.
//
// If n >= len(candidates) every candidate is returned in input order.
// If n <= 0 the result is an empty, non-nil slice.
// An empty candidate set returns ErrNoCandidates.
func Select(context string, seed []byte, sequence uint64, n int, candidates [][]byte, opts ...Option) ([][]byte, error) {
	if len(candidates) == 0 {
		return nil, ErrNoCandidates
	}

	if n >= len(candidates) {
		return copyAll(candidates), nil
	}

	entries, err := Rank(context, seed, sequence, n, candidates, opts...)
	if err != nil {
		return nil, err
	}

	result := make([][]byte, len(entries))
	for i, e := range entries {
		result[i] = e.ID
	}

	return result, nil
}

// Rank is Select with the effective distance of every selected candidate.
// Unlike Select it always computes distances, also when n >= len(candidates),
// so the whole set comes back ordered by distance.
func Rank(context string, seed []byte, sequence uint64, n int, candidates [][]byte, opts ...Option) ([]Entry, error) {
	if len(candidates) == 0 {
		return nil, ErrNoCandidates
	}

	if n <= 0 {
		return []Entry{}, nil
	}

	if n > len(candidates) {
		n = len(candidates)
	}

	score := newScorer(context, seed, sequence, opts)
	h := newBoundedHeap(n)

	for i, id := range candidates {
		h.offer(score(i, id))
	}

	return h.drain(), nil
}

// Score returns every candidate with its effective distance, in input order.
func Score(context string, seed []byte, sequence uint64, candidates [][]byte, opts ...Option) []Entry {
	score := newScorer(context, seed, sequence, opts)

	entries := make([]Entry, len(candidates))
	for i, id := range candidates {
		entries[i] = score(i, id)
	}

	return entries
}

// newScorer computes the round reference once and returns a function
// mapping candidate i to its entry.
func newScorer(context string, seed []byte, sequence uint64, opts []Option) func(int, []byte) Entry {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	reference := RoundReference(context, seed, sequence, o.newHash)

	return func(i int, id []byte) Entry {
		return Entry{
			ID:       id,
			Distance: effectiveDistance(Distance(reference, id), o.weights, i),
		}
	}
}

// copyAll returns a copy of candidates in input order.
func copyAll(candidates [][]byte) [][]byte {
	out := make([][]byte, len(candidates))
	copy(out, candidates)

	return out
}
