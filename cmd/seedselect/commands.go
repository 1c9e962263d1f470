package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"seedselect/internal/logger"
	"seedselect/internal/selection"
)

// errSelectionMismatch is returned by verify when the recomputed selection differs.
var errSelectionMismatch = errors.New("selection mismatch")

type referenceCmd struct {
	RoundFlags `embed:""`
}

// Run prints the hex round reference.
func (c *referenceCmd) Run(out io.Writer) error {
	seed, err := c.seedBytes()
	if err != nil {
		return err
	}

	fn, err := c.hashFunc()
	if err != nil {
		return err
	}

	ref := selection.RoundReference(c.Context, seed, c.Sequence, fn)
	_, err = fmt.Fprintln(out, hex.EncodeToString(ref))

	return err
}

type selectCmd struct {
	RoundFlags     `embed:""`
	CandidateFlags `embed:""`

	N       int  `name:"n" short:"n" required:"" help:"Number of candidates to select."`
	Verbose bool `name:"verbose" short:"v" help:"Print the effective distance next to each selection."`
}

// Run prints the selected candidates, closest first.
func (c *selectCmd) Run(out io.Writer) error {
	start := time.Now()

	entries, err := rank(&c.RoundFlags, &c.CandidateFlags, c.N)
	if err != nil {
		return err
	}

	for _, e := range entries {
		line := c.encode(e.ID)
		if c.Verbose {
			line = fmt.Sprintf("%s\t%d", line, e.Distance)
		}

		if _, err := fmt.Fprintln(out, line); err != nil {
			return err
		}
	}

	logger.Info("selection complete",
		"context", c.Context,
		"sequence", c.Sequence,
		"algorithm", c.Algorithm,
		"selected", len(entries),
		logger.Timed(start),
	)

	return nil
}

type verifyCmd struct {
	RoundFlags     `embed:""`
	CandidateFlags `embed:""`

	Expect []string `name:"expect" sep:"," required:"" help:"Expected selection, closest first."`
}

// Run recomputes a selection of len(expect) candidates and compares it.
func (c *verifyCmd) Run(out io.Writer) error {
	entries, err := rank(&c.RoundFlags, &c.CandidateFlags, len(c.Expect))
	if err != nil {
		return err
	}

	got := make([]string, len(entries))
	for i, e := range entries {
		got[i] = c.encode(e.ID)
	}

	if strings.Join(got, ",") != strings.Join(c.Expect, ",") {
		logger.Warn("selection mismatch", "expected", c.Expect, "computed", got)
		return fmt.Errorf("%w: computed %s", errSelectionMismatch, strings.Join(got, ","))
	}

	_, err = fmt.Fprintln(out, "ok")

	return err
}

type algorithmsCmd struct{}

// Run lists the registered digest algorithms.
func (c *algorithmsCmd) Run(out io.Writer) error {
	for _, name := range selection.Algorithms() {
		if _, err := fmt.Fprintln(out, name); err != nil {
			return err
		}
	}

	return nil
}

// rank loads the candidates and selects n of them with their distances.
// When n covers the whole set the input order is kept, as Select does.
func rank(round *RoundFlags, cands *CandidateFlags, n int) ([]selection.Entry, error) {
	seed, err := round.seedBytes()
	if err != nil {
		return nil, err
	}

	fn, err := round.hashFunc()
	if err != nil {
		return nil, err
	}

	candidates, err := cands.load()
	if err != nil {
		return nil, err
	}

	if len(candidates) == 0 {
		return nil, selection.ErrNoCandidates
	}

	opts := []selection.Option{selection.WithHash(fn), selection.WithWeights(cands.Weights)}

	if n >= len(candidates) {
		return selection.Score(round.Context, seed, round.Sequence, candidates, opts...), nil
	}

	return selection.Rank(round.Context, seed, round.Sequence, n, candidates, opts...)
}
