// Package service orchestrates a reconciliation run: it identifies the
// relevant roster columns, picks the structured or corpus strategy from
// the reference source's shape, and guarantees that every call ends in
// a report with at least one row.
package service

import (
	"log/slog"

	"github.com/FACorreiaa/approval-tracker/internal/domain/reconcile"
	"github.com/FACorreiaa/approval-tracker/internal/domain/reconcile/normalize"
	"github.com/FACorreiaa/approval-tracker/internal/domain/roster/parser"
	"github.com/FACorreiaa/approval-tracker/internal/domain/roster/sniffer"
)

// ReferenceKind tags the shape of the reference source.
type ReferenceKind int

const (
	// ReferenceTable is a reference with discrete, column-aligned rows.
	ReferenceTable ReferenceKind = iota
	// ReferenceCorpus is a single unstructured text blob.
	ReferenceCorpus
)

// ReferenceInput is the tagged reference source handed to Reconcile.
type ReferenceInput struct {
	Kind  ReferenceKind
	Table *parser.Dataset // set when Kind == ReferenceTable
	Text  string          // raw extracted text when Kind == ReferenceCorpus
}

// TableReference wraps a tabular reference dataset.
func TableReference(ds *parser.Dataset) ReferenceInput {
	return ReferenceInput{Kind: ReferenceTable, Table: ds}
}

// CorpusReference wraps raw reference text, e.g. extracted from a PDF.
func CorpusReference(text string) ReferenceInput {
	return ReferenceInput{Kind: ReferenceCorpus, Text: text}
}

// Service runs reconciliations. It is stateless across runs; every
// entity is built fresh per call and nothing persists past the report.
type Service struct {
	cfg        reconcile.Config
	structured *reconcile.StructuredMatcher
	corpus     *reconcile.CorpusMatcher
	logger     *slog.Logger
}

// New creates a reconciliation service.
func New(cfg reconcile.Config, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		cfg:        cfg,
		structured: reconcile.NewStructuredMatcher(cfg),
		corpus:     reconcile.NewCorpusMatcher(cfg),
		logger:     logger,
	}
}

// Reconcile checks every candidate against the reference and returns
// the classified report. Precondition failures (unidentifiable name or
// document columns, unreadable reference text) abort the run with a
// single explanatory row; a run that completes without emitting any
// row returns a single informational row instead of an empty report.
func (s *Service) Reconcile(candidates *parser.Dataset, ref ReferenceInput, checkDocuments bool) *reconcile.Report {
	if candidates == nil || len(candidates.Headers) == 0 {
		return s.errorReport("the candidate dataset is empty")
	}

	nameCol, ok := sniffer.NameColumn(candidates.Headers)
	if !ok {
		return s.errorReport("could not identify a name column in the candidate dataset")
	}
	docCol, hasDocCol := sniffer.DocumentColumn(candidates.Headers)
	if checkDocuments && !hasDocCol {
		return s.errorReport("document validation requested, but no document column was identified in the candidate dataset")
	}

	cands := collectCandidates(candidates, nameCol, docCol)
	s.logger.Info("starting reconciliation",
		slog.Int("candidates", len(cands)),
		slog.Bool("document_check", checkDocuments),
		slog.String("route", routeName(ref.Kind)))

	var rows []reconcile.Outcome
	switch ref.Kind {
	case ReferenceCorpus:
		text := normalize.Text(ref.Text)
		if text == "" {
			return s.errorReport("the reference document has no extractable text")
		}
		rows = s.corpus.Match(cands, text, checkDocuments)

	default:
		if ref.Table == nil || len(ref.Table.Headers) == 0 {
			return s.errorReport("the reference dataset is empty")
		}
		refNameCol, ok := sniffer.NameColumn(ref.Table.Headers)
		if !ok {
			return s.errorReport("could not identify a name column in the reference dataset")
		}
		refDocCol, hasRefDoc := sniffer.DocumentColumn(ref.Table.Headers)
		if checkDocuments && !hasRefDoc {
			return s.errorReport("document validation requested, but no document column was identified in the reference dataset")
		}
		rows = s.structured.Match(cands, collectReference(ref.Table, refNameCol, refDocCol), checkDocuments)
	}

	if len(rows) == 0 {
		s.logger.Info("reconciliation finished without matches")
		return reconcile.NewReport([]reconcile.Outcome{{
			Status: reconcile.StatusNoMatch,
			Note:   "no candidate matched the reference with the current criteria",
		}})
	}

	s.logger.Info("reconciliation finished", slog.Int("rows", len(rows)))
	return reconcile.NewReport(rows)
}

func (s *Service) errorReport(reason string) *reconcile.Report {
	s.logger.Warn("reconciliation aborted", slog.String("reason", reason))
	return reconcile.NewReport([]reconcile.Outcome{{
		Status: reconcile.StatusError,
		Note:   reason,
	}})
}

func collectCandidates(ds *parser.Dataset, nameCol, docCol string) []reconcile.Candidate {
	cands := make([]reconcile.Candidate, 0, len(ds.Rows))
	for _, row := range ds.Rows {
		cands = append(cands, reconcile.Candidate{
			RawName:     row[nameCol],
			RawDocument: row[docCol],
		})
	}
	return cands
}

func collectReference(ds *parser.Dataset, nameCol, docCol string) []reconcile.ReferenceEntry {
	entries := make([]reconcile.ReferenceEntry, 0, len(ds.Rows))
	for _, row := range ds.Rows {
		entries = append(entries, reconcile.ReferenceEntry{
			RawName:     row[nameCol],
			RawDocument: row[docCol],
		})
	}
	return entries
}

func routeName(kind ReferenceKind) string {
	if kind == ReferenceCorpus {
		return "corpus"
	}
	return "structured"
}
