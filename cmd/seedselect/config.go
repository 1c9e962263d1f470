package main

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"seedselect/internal/selection"
)

// CLI is the command-line configuration.
type CLI struct {
	LogLevel string `name:"log-level" default:"info" enum:"debug,info,warn,error" help:"Minimum log level."`

	Reference  referenceCmd  `cmd:"" help:"Print the round reference digest."`
	Select     selectCmd     `cmd:"" help:"Select the closest candidates."`
	Verify     verifyCmd     `cmd:"" help:"Recompute a selection and compare it with an expected one."`
	Committee  committeeCmd  `cmd:"" help:"Compute or verify committees over a weighted roster."`
	Algorithms algorithmsCmd `cmd:"" help:"List the available digest algorithms."`
}

// RoundFlags identifies one selection round.
type RoundFlags struct {
	Context   string `name:"context" default:"" help:"Selection context string."`
	Seed      string `name:"seed" xor:"seed" help:"Random seed, hex encoded."`
	SeedText  string `name:"seed-text" xor:"seed" help:"Random seed as raw text."`
	Sequence  uint64 `name:"sequence" short:"s" default:"0" help:"Round sequence number."`
	Algorithm string `name:"algorithm" short:"a" default:"sha256" help:"Digest algorithm."`
}

// seedBytes decodes the configured seed.
func (f *RoundFlags) seedBytes() ([]byte, error) {
	if f.SeedText != "" {
		return []byte(f.SeedText), nil
	}

	seed, err := hex.DecodeString(f.Seed)
	if err != nil {
		return nil, fmt.Errorf("decode seed:\n%w", err)
	}

	return seed, nil
}

// hashFunc resolves the configured digest algorithm.
func (f *RoundFlags) hashFunc() (selection.HashFunc, error) {
	return selection.Algorithm(f.Algorithm)
}

// CandidateFlags describes where candidate identifiers come from.
type CandidateFlags struct {
	File    string   `name:"candidates" short:"f" type:"existingfile" help:"File with one candidate identifier per line."`
	HexIDs  bool     `name:"hex-ids" help:"Identifiers are hex encoded; decode before selection."`
	Weights []uint64 `name:"weights" sep:"," help:"Weights aligned with the candidate order."`
	IDs     []string `arg:"" optional:"" name:"id" help:"Candidate identifiers."`
}

// load returns the candidates from the file followed by positional arguments.
func (f *CandidateFlags) load() ([][]byte, error) {
	lines := append([]string{}, f.IDs...)

	if f.File != "" {
		fromFile, err := readLines(f.File)
		if err != nil {
			return nil, err
		}
		lines = append(fromFile, lines...)
	}

	candidates := make([][]byte, len(lines))
	for i, line := range lines {
		id, err := f.decode(line)
		if err != nil {
			return nil, fmt.Errorf("candidate %d:\n%w", i, err)
		}
		candidates[i] = id
	}

	return candidates, nil
}

// decode converts one textual identifier to its byte form.
func (f *CandidateFlags) decode(s string) ([]byte, error) {
	if !f.HexIDs {
		return []byte(s), nil
	}

	return hex.DecodeString(s)
}

// encode converts one identifier back to its textual form.
func (f *CandidateFlags) encode(id []byte) string {
	if !f.HexIDs {
		return string(id)
	}

	return hex.EncodeToString(id)
}

// readLines reads non-empty, trimmed lines from path. Lines starting with # are skipped.
func readLines(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open candidates:\n%w", err)
	}
	defer file.Close()

	var lines []string

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read candidates:\n%w", err)
	}

	return lines, nil
}
