package reconcile

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/FACorreiaa/approval-tracker/internal/domain/reconcile/normalize"
)

// StructuredMatcher reconciles candidates against a reference list with
// discrete rows, using fuzzy name scoring plus optional document
// fragment corroboration.
type StructuredMatcher struct {
	cfg Config
}

// NewStructuredMatcher creates a matcher with the given thresholds.
func NewStructuredMatcher(cfg Config) *StructuredMatcher {
	return &StructuredMatcher{cfg: cfg}
}

// Match evaluates every candidate independently and returns the emitted
// rows ordered by status label. Candidates whose normalized name is
// shorter than four characters, or that score below the acceptance
// threshold against every reference entry, produce no row.
func (m *StructuredMatcher) Match(candidates []Candidate, reference []ReferenceEntry, checkDocuments bool) []Outcome {
	refNames := make([]string, len(reference))
	for i, entry := range reference {
		refNames[i] = normalize.Text(entry.RawName)
	}

	var rows []Outcome
	for _, cand := range candidates {
		name := normalize.Text(cand.RawName)
		if utf8.RuneCountInString(name) < minNameLength {
			continue
		}

		// Stable argmax: the first entry reaching the best score wins.
		bestIdx := -1
		bestScore := m.cfg.MinAcceptScore - 1
		for i, refName := range refNames {
			if refName == "" {
				continue
			}
			if score := TokenSortRatio(name, refName); score > bestScore {
				bestScore = score
				bestIdx = i
			}
		}
		if bestIdx < 0 {
			continue
		}

		if row, ok := m.classify(cand, reference[bestIdx], bestScore, checkDocuments); ok {
			rows = append(rows, row)
		}
	}

	sortByStatus(rows)
	return rows
}

// classify turns a name match into a report row, or suppresses it when
// the score sits above the acceptance threshold but below every
// reporting band.
func (m *StructuredMatcher) classify(cand Candidate, matched ReferenceEntry, score int, checkDocuments bool) (Outcome, bool) {
	row := Outcome{
		CandidateName: cand.RawName,
		ReferenceName: matched.RawName,
		MatchOffset:   -1,
		Score:         score,
		CandidateDoc:  cand.RawDocument,
		ReferenceDoc:  matched.RawDocument,
	}

	if !checkDocuments {
		switch {
		case score >= m.cfg.IdenticalScore:
			row.Status = StatusApprovedIdentical
			row.Note = "name matches the reference entry"
		case score >= m.cfg.ProbableScore:
			row.Status = StatusProbable
			row.Note = "close name match, confirm the spelling"
		default:
			return Outcome{}, false
		}
		return row, true
	}

	refDigits := normalize.Digits(matched.RawDocument)
	if fragmentHit(normalize.Fragments(cand.RawDocument), refDigits) {
		row.Status = StatusApproved
		row.DocumentMatch = boolPtr(true)
		row.Note = "name and document corroborate"
		return row, true
	}

	// Document diverges. A near-perfect name score still surfaces the
	// row for manual review; anything below the override is dropped.
	if score < m.cfg.HomonymOverrideScore {
		return Outcome{}, false
	}
	row.Status = StatusVerifyHomonym
	row.DocumentMatch = boolPtr(false)
	row.Note = fmt.Sprintf("name scored %d but the documents diverge", score)
	return row, true
}

// fragmentHit reports whether any candidate document fragment appears
// inside the reference digit string. Fragments are short, so a hit is
// supporting evidence only, never proof of identity.
func fragmentHit(fragments []string, refDigits string) bool {
	if refDigits == "" {
		return false
	}
	for _, frag := range fragments {
		if strings.Contains(refDigits, frag) {
			return true
		}
	}
	return false
}
