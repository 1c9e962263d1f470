package committee

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"seedselect/internal/logger"
	"seedselect/internal/selection"
)

// ErrCommitteeMismatch is returned when a claimed committee differs from the recomputed one.
var ErrCommitteeMismatch = errors.New("committee mismatch")

// maxScheduleWorkers bounds the goroutines used by Schedule.
const maxScheduleWorkers = 8

// Selector computes committees for a selection context.
// All participants configured with the same Context, Seed and HashFunc
// compute identical committees without communicating.
type Selector struct {
	Context  string             // Context separates independent selection domains
	Seed     []byte             // Seed is the shared entropy, e.g. a beacon output
	HashFunc selection.HashFunc // HashFunc is the digest constructor, nil for SHA-256
	Weighted bool               // Weighted applies member weights to distances
}

// Committee returns the size members closest to the round reference of sequence,
// closest first. When size covers the whole roster, the roster order is returned.
func (s *Selector) Committee(r *Roster, sequence uint64, size int) ([]Hash, error) {
	ids, weights := r.candidates()

	opts := []selection.Option{selection.WithHash(s.HashFunc)}
	if s.Weighted {
		opts = append(opts, selection.WithWeights(weights))
	}

	selected, err := selection.Select(s.Context, s.Seed, sequence, size, ids, opts...)
	if errors.Is(err, selection.ErrNoCandidates) {
		return nil, ErrEmptyRoster
	}
	if err != nil {
		return nil, fmt.Errorf("select committee:\n%w", err)
	}

	result := make([]Hash, len(selected))
	for i, id := range selected {
		copy(result[i][:], id)
	}

	logger.Debug("committee computed",
		"context", s.Context,
		"sequence", sequence,
		"size", len(result),
		"roster", r.Len(),
	)

	return result, nil
}

// Leader returns the single member closest to the round reference of sequence.
func (s *Selector) Leader(r *Roster, sequence uint64) (Hash, error) {
	members, err := s.Committee(r, sequence, 1)
	if err != nil {
		return Hash{}, err
	}

	return members[0], nil
}

// Verify recomputes the committee for sequence and checks it matches claimed,
// including order.
func (s *Selector) Verify(r *Roster, sequence uint64, claimed []Hash) error {
	expected, err := s.Committee(r, sequence, len(claimed))
	if err != nil {
		return err
	}

	if len(expected) != len(claimed) {
		return fmt.Errorf("%w: size %d, expected %d", ErrCommitteeMismatch, len(claimed), len(expected))
	}

	for i := range expected {
		if expected[i] != claimed[i] {
			return fmt.Errorf("%w: position %d is %x, expected %x",
				ErrCommitteeMismatch, i, claimed[i][:4], expected[i][:4])
		}
	}

	return nil
}

// IsMember reports whether id sits in the committee for sequence, and its position.
// The position is -1 when id is not a member.
func (s *Selector) IsMember(r *Roster, sequence uint64, size int, id Hash) (bool, int, error) {
	members, err := s.Committee(r, sequence, size)
	if err != nil {
		return false, -1, err
	}

	for i, m := range members {
		if m == id {
			return true, i, nil
		}
	}

	return false, -1, nil
}

// Schedule returns the committees for sequences from..from+count-1.
// Rounds are computed concurrently; result[i] is the committee of sequence from+i.
func (s *Selector) Schedule(ctx context.Context, r *Roster, from uint64, count, size int) ([][]Hash, error) {
	if r.Len() == 0 {
		return nil, ErrEmptyRoster
	}

	if count <= 0 {
		return [][]Hash{}, nil
	}

	result := make([][]Hash, count)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxScheduleWorkers)

	for i := 0; i < count; i++ {
		i := i // per-iteration copy (go 1.21 loop semantics)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			members, err := s.Committee(r, from+uint64(i), size)
			if err != nil {
				return fmt.Errorf("sequence %d:\n%w", from+uint64(i), err)
			}

			result[i] = members
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return result, nil
}

// QuorumSize returns the minimum number of committee members required for quorum.
// Uses 67% threshold (2f+1 for f = n/3).
func QuorumSize(size int) int {
	return (size*67 + 99) / 100
}
