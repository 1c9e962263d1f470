package committee

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyRoster is returned when selecting from a roster with no members.
	ErrEmptyRoster = errors.New("roster has no members")

	// ErrDuplicateMember is returned when a roster lists the same ID twice.
	ErrDuplicateMember = errors.New("duplicate roster member")
)

// Hash is a 32-byte participant identifier, typically a public key digest.
type Hash [32]byte

// Member is a roster participant with its selection weight.
type Member struct {
	ID     Hash   // ID is the participant identifier
	Weight uint64 // Weight divides the member's distance; 0 means unweighted
}

// Roster is an immutable snapshot of the participants eligible for a round.
// It is safe for concurrent use since it is never modified after creation.
type Roster struct {
	members []Member
	index   map[Hash]int
	total   uint64
}

// NewRoster creates a roster from members, keeping their order.
func NewRoster(members []Member) (*Roster, error) {
	r := &Roster{
		members: make([]Member, len(members)),
		index:   make(map[Hash]int, len(members)),
	}

	for i, m := range members {
		if _, exists := r.index[m.ID]; exists {
			return nil, fmt.Errorf("%w: %x", ErrDuplicateMember, m.ID[:4])
		}

		r.members[i] = m
		r.index[m.ID] = i
		r.total += m.Weight
	}

	return r, nil
}

// NewUniformRoster creates an unweighted roster from a list of IDs.
func NewUniformRoster(ids []Hash) (*Roster, error) {
	members := make([]Member, len(ids))
	for i, id := range ids {
		members[i] = Member{ID: id}
	}

	return NewRoster(members)
}

// Len returns the number of members.
func (r *Roster) Len() int {
	return len(r.members)
}

// Members returns a copy of all members.
func (r *Roster) Members() []Member {
	result := make([]Member, len(r.members))
	copy(result, r.members)

	return result
}

// Contains checks if an ID is in the roster.
func (r *Roster) Contains(id Hash) bool {
	_, exists := r.index[id]
	return exists
}

// Index returns the position of a member in the roster, or -1 if not found.
func (r *Roster) Index(id Hash) int {
	if idx, exists := r.index[id]; exists {
		return idx
	}

	return -1
}

// TotalWeight returns the sum of all member weights.
func (r *Roster) TotalWeight() uint64 {
	return r.total
}

// candidates returns the member IDs as byte slices and their weights, index aligned.
func (r *Roster) candidates() ([][]byte, []uint64) {
	ids := make([][]byte, len(r.members))
	weights := make([]uint64, len(r.members))

	for i := range r.members {
		ids[i] = r.members[i].ID[:]
		weights[i] = r.members[i].Weight
	}

	return ids, weights
}
