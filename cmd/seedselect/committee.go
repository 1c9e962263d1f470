package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"strings"

	"seedselect/internal/committee"
	"seedselect/internal/logger"
)

type committeeCmd struct {
	RoundFlags `embed:""`

	Roster   string   `name:"roster" short:"r" required:"" type:"existingfile" help:"Roster file, one hex member ID per line with an optional ,weight."`
	Size     int      `name:"size" required:"" help:"Committee size."`
	Count    int      `name:"count" default:"1" help:"Number of consecutive sequences, starting at --sequence."`
	Weighted bool     `name:"weighted" help:"Apply roster weights to distances."`
	Expect   []string `name:"expect" sep:"," help:"Verify this committee for --sequence instead of printing a schedule."`
}

// Run prints one committee per sequence followed by the quorum size,
// or verifies an expected committee when --expect is set.
func (c *committeeCmd) Run(ctx context.Context, out io.Writer) error {
	seed, err := c.seedBytes()
	if err != nil {
		return err
	}

	fn, err := c.hashFunc()
	if err != nil {
		return err
	}

	roster, err := loadRoster(c.Roster)
	if err != nil {
		return err
	}

	sel := &committee.Selector{
		Context:  c.Context,
		Seed:     seed,
		HashFunc: fn,
		Weighted: c.Weighted,
	}

	log := logger.With("context", c.Context, "roster", roster.Len(), "weighted", c.Weighted)

	if len(c.Expect) > 0 {
		return c.verify(sel, roster, out)
	}

	schedule, err := sel.Schedule(ctx, roster, c.Sequence, c.Count, c.Size)
	if err != nil {
		return fmt.Errorf("compute schedule:\n%w", err)
	}

	size := min(max(c.Size, 0), roster.Len())
	quorum := committee.QuorumSize(size)

	for i, members := range schedule {
		if _, err := fmt.Fprintf(out, "%d\t%s\n", c.Sequence+uint64(i), joinHashes(members)); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(out, "quorum\t%d\n", quorum); err != nil {
		return err
	}

	log.Info("schedule computed", "from", c.Sequence, "count", c.Count, "size", size, "quorum", quorum)

	return nil
}

// verify checks the expected committee for the configured sequence.
func (c *committeeCmd) verify(sel *committee.Selector, roster *committee.Roster, out io.Writer) error {
	claimed := make([]committee.Hash, len(c.Expect))
	for i, s := range c.Expect {
		id, err := parseHash(s)
		if err != nil {
			return fmt.Errorf("expected member %d:\n%w", i, err)
		}
		claimed[i] = id
	}

	if err := sel.Verify(roster, c.Sequence, claimed); err != nil {
		return err
	}

	_, err := fmt.Fprintln(out, "ok")

	return err
}

// loadRoster reads a roster file of "hexid[,weight]" lines.
func loadRoster(path string) (*committee.Roster, error) {
	lines, err := readLines(path)
	if err != nil {
		return nil, err
	}

	members := make([]committee.Member, len(lines))
	for i, line := range lines {
		idPart, weightPart, hasWeight := strings.Cut(line, ",")

		id, err := parseHash(strings.TrimSpace(idPart))
		if err != nil {
			return nil, fmt.Errorf("roster line %d:\n%w", i+1, err)
		}
		members[i].ID = id

		if hasWeight {
			w, err := strconv.ParseUint(strings.TrimSpace(weightPart), 10, 64)
			if err != nil {
				return nil, fmt.Errorf("roster line %d weight:\n%w", i+1, err)
			}
			members[i].Weight = w
		}
	}

	return committee.NewRoster(members)
}

// parseHash decodes a 32-byte hex member ID.
func parseHash(s string) (committee.Hash, error) {
	var h committee.Hash

	b, err := hex.DecodeString(s)
	if err != nil {
		return h, fmt.Errorf("decode member id:\n%w", err)
	}

	if len(b) != len(h) {
		return h, fmt.Errorf("invalid member id size: got %d, want %d", len(b), len(h))
	}

	copy(h[:], b)

	return h, nil
}

// joinHashes formats members as comma-separated hex.
func joinHashes(members []committee.Hash) string {
	parts := make([]string, len(members))
	for i, m := range members {
		parts[i] = hex.EncodeToString(m[:])
	}

	return strings.Join(parts, ",")
}
