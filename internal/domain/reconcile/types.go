// Package reconcile implements the roster reconciliation engine: fuzzy
// name matching against a structured reference list or exact matching
// against a normalized text corpus, with optional document fragment
// corroboration.
package reconcile

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// Classification labels. Reports are ordered by these strings, so the
// values double as the sort key.
const (
	StatusApproved          = "Approved"
	StatusApprovedConfirmed = "Approved (confirmed)"
	StatusApprovedIdentical = "Approved (identical name)"
	StatusApprovedNameFound = "Approved (name found)"
	StatusError             = "Error"
	StatusNoMatch           = "No match"
	StatusProbable          = "Probable (verify spelling)"
	StatusVerifyDivergent   = "Verify (document divergent)"
	StatusVerifyHomonym     = "Verify homonym"
)

// Candidate is one row of the roster being checked. The normalized name
// is always derived from RawName at the point of use, never stored.
type Candidate struct {
	RawName     string
	RawDocument string
}

// ReferenceEntry is one row of the official list (structured route).
type ReferenceEntry struct {
	RawName     string
	RawDocument string
}

// Outcome is the classification of a single candidate, or a single
// explanatory row when a run cannot produce per-candidate results.
type Outcome struct {
	CandidateName string
	ReferenceName string // matched entry, structured route only
	MatchOffset   int    // byte offset into the corpus, -1 otherwise
	Score         int    // 0-100
	Status        string
	CandidateDoc  string // raw document values, kept for visual checks
	ReferenceDoc  string
	DocumentMatch *bool // nil unless document validation ran for this row
	Note          string
}

// Report is the sole output of a reconciliation run. It always carries
// at least one row: matcher outcomes, a "no match" row, or an error row.
type Report struct {
	RunID       uuid.UUID
	GeneratedAt time.Time
	Rows        []Outcome
}

// NewReport wraps outcome rows with run metadata.
func NewReport(rows []Outcome) *Report {
	return &Report{RunID: uuid.New(), GeneratedAt: time.Now().UTC(), Rows: rows}
}

// Config holds the empirically chosen matching constants. They shift
// classification outcomes for borderline candidates, so they are
// configuration, never re-derived.
type Config struct {
	MinAcceptScore       int // floor for any structured-route match
	ProbableScore        int // name-only: "Probable (verify spelling)"
	IdenticalScore       int // name-only: "Approved (identical name)"
	HomonymOverrideScore int // near-perfect name outweighs a document mismatch
	ContextWindow        int // corpus route: chars inspected each side of a hit
}

// DefaultConfig returns the production thresholds.
func DefaultConfig() Config {
	return Config{
		MinAcceptScore:       85,
		ProbableScore:        88,
		IdenticalScore:       95,
		HomonymOverrideScore: 98,
		ContextWindow:        50,
	}
}

// minNameLength is the shortest normalized name worth matching; anything
// shorter is skipped without a report row.
const minNameLength = 4

// sortByStatus orders rows by their status label, keeping input order
// within a label.
func sortByStatus(rows []Outcome) {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Status < rows[j].Status
	})
}

func boolPtr(b bool) *bool { return &b }
