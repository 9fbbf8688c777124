// Package dataset reads the customer-support training CSV (instruction,
// response, intent, category and optional flag columns).
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"strings"
)

// Column names of the source CSV.
const (
	ColInstruction  = "instruction"
	ColResponse     = "response"
	ColIntent       = "intent"
	ColCategory     = "category"
	ColFlags        = "flags"
	ColTags         = "tags"
	ColResponseType = "response_type"
)

var ErrMissingColumn = errors.New("dataset: required column missing")

// Row is one labelled exchange.
type Row struct {
	Index        int // zero-based position in the file, header excluded
	Instruction  string
	Response     string
	Intent       string
	Category     string
	Flags        string
	Tags         string
	ResponseType string
}

// Read parses CSV rows from r. limit <= 0 reads everything.
func Read(r io.Reader, limit int) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("dataset: read header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	for _, required := range []string{ColInstruction, ColResponse} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, required)
		}
	}

	field := func(rec []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	var rows []Row
	for idx := 0; limit <= 0 || idx < limit; idx++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("dataset: row %d: %w", idx, err)
		}
		rows = append(rows, Row{
			Index:        idx,
			Instruction:  field(rec, ColInstruction),
			Response:     field(rec, ColResponse),
			Intent:       field(rec, ColIntent),
			Category:     field(rec, ColCategory),
			Flags:        field(rec, ColFlags),
			Tags:         field(rec, ColTags),
			ResponseType: field(rec, ColResponseType),
		})
	}
	return rows, nil
}

// ReadFile opens path and calls Read.
func ReadFile(path string, limit int) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: %w", err)
	}
	defer f.Close()
	return Read(f, limit)
}

// Sample returns n rows chosen with a fixed seed, or all rows when n covers them.
func Sample(rows []Row, n int, seed uint64) []Row {
	if n <= 0 || n >= len(rows) {
		return rows
	}
	rng := rand.New(rand.NewPCG(seed, seed))
	picked := make([]Row, len(rows))
	copy(picked, rows)
	rng.Shuffle(len(picked), func(i, j int) { picked[i], picked[j] = picked[j], picked[i] })
	return picked[:n]
}
