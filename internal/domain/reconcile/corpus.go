package reconcile

import (
	"strings"
	"unicode/utf8"

	"github.com/cloudflare/ahocorasick"

	"github.com/FACorreiaa/approval-tracker/internal/domain/reconcile/normalize"
)

// CorpusMatcher reconciles candidates against a single normalized text
// blob with no row structure, such as text extracted from a PDF. The
// name must appear verbatim after normalization; there is no fuzzy
// tolerance on this route, so every hit scores 100.
type CorpusMatcher struct {
	cfg Config
}

// NewCorpusMatcher creates a matcher with the given configuration.
func NewCorpusMatcher(cfg Config) *CorpusMatcher {
	return &CorpusMatcher{cfg: cfg}
}

// Match searches the corpus for every qualifying candidate name in a
// single Aho-Corasick pass, then classifies each hit. The corpus text
// is expected to be pre-normalized with normalize.Text.
func (m *CorpusMatcher) Match(candidates []Candidate, corpusText string, checkDocuments bool) []Outcome {
	names := make([]string, len(candidates))
	patternIdx := make(map[string]int)
	var patterns []string
	for i, cand := range candidates {
		name := normalize.Text(cand.RawName)
		if utf8.RuneCountInString(name) < minNameLength {
			continue
		}
		names[i] = name
		if _, seen := patternIdx[name]; !seen {
			patternIdx[name] = len(patterns)
			patterns = append(patterns, name)
		}
	}
	if len(patterns) == 0 || corpusText == "" {
		return nil
	}

	// One pass over the blob finds which names occur at all; the exact
	// offset is recovered per hit afterwards.
	found := make(map[string]bool, len(patterns))
	for _, idx := range ahocorasick.NewStringMatcher(patterns).Match([]byte(corpusText)) {
		found[patterns[idx]] = true
	}

	var rows []Outcome
	for i, cand := range candidates {
		name := names[i]
		if name == "" || !found[name] {
			continue
		}
		offset := strings.Index(corpusText, name)
		if offset < 0 {
			continue
		}
		rows = append(rows, m.classify(cand, corpusText, name, offset, checkDocuments))
	}

	sortByStatus(rows)
	return rows
}

func (m *CorpusMatcher) classify(cand Candidate, corpusText, name string, offset int, checkDocuments bool) Outcome {
	row := Outcome{
		CandidateName: cand.RawName,
		MatchOffset:   offset,
		Score:         100,
		CandidateDoc:  cand.RawDocument,
	}

	if !checkDocuments {
		row.Status = StatusApprovedNameFound
		row.Note = "name appears verbatim in the reference document"
		return row
	}

	fragments := normalize.Fragments(cand.RawDocument)
	if fragments == nil {
		row.Status = StatusApprovedNameFound
		row.Note = "only the name could be validated, document missing or incomplete"
		return row
	}

	digits := normalize.Digits(contextWindow(corpusText, offset, offset+len(name), m.cfg.ContextWindow))
	if fragmentHit(fragments, digits) {
		row.Status = StatusApprovedConfirmed
		row.DocumentMatch = boolPtr(true)
		row.Note = "document fragment found near the name"
	} else {
		row.Status = StatusVerifyDivergent
		row.DocumentMatch = boolPtr(false)
		row.Note = "no document fragment found near the name"
	}
	return row
}

// contextWindow returns the corpus slice spanning width characters
// before start and width characters after end, clamped to the text.
func contextWindow(text string, start, end, width int) string {
	lo := start - width
	if lo < 0 {
		lo = 0
	}
	hi := end + width
	if hi > len(text) {
		hi = len(text)
	}
	return text[lo:hi]
}
