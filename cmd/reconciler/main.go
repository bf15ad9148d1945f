// Command reconciler checks a candidate roster against an official
// reference list and writes the classified report as CSV.
//
// The reference may be a table (.csv/.xlsx) or a PDF; PDFs are matched
// through the corpus route unless -table forces text-table recovery.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/FACorreiaa/approval-tracker/internal/domain/corpus"
	"github.com/FACorreiaa/approval-tracker/internal/domain/reconcile"
	"github.com/FACorreiaa/approval-tracker/internal/domain/reconcile/service"
	"github.com/FACorreiaa/approval-tracker/internal/domain/report"
	"github.com/FACorreiaa/approval-tracker/internal/domain/roster/parser"
	"github.com/FACorreiaa/approval-tracker/pkg/config"
)

func main() {
	var (
		candidatesPath = flag.String("candidates", "", "candidate roster file (.csv or .xlsx)")
		referencePath  = flag.String("reference", "", "official reference file (.csv, .xlsx or .pdf)")
		checkDocuments = flag.Bool("cpf", false, "corroborate name matches with document fragments")
		forceTable     = flag.Bool("table", false, "recover a table from the reference PDF instead of corpus matching")
		outPath        = flag.String("out", "", "report destination (default stdout)")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.Log.Level)

	if *candidatesPath == "" || *referencePath == "" {
		fmt.Fprintln(os.Stderr, "usage: reconciler -candidates roster.csv -reference list.pdf [-cpf] [-table] [-out report.csv]")
		os.Exit(2)
	}

	candidates, err := loadRoster(*candidatesPath)
	if err != nil {
		logger.Error("failed to load candidates", slog.String("path", *candidatesPath), slog.Any("error", err))
		os.Exit(1)
	}

	ref, err := loadReference(*referencePath, *forceTable, logger)
	if err != nil {
		logger.Error("failed to load reference", slog.String("path", *referencePath), slog.Any("error", err))
		os.Exit(1)
	}

	svc := service.New(matcherConfig(cfg), logger)
	rep := svc.Reconcile(candidates, ref, *checkDocuments)

	out := os.Stdout
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			logger.Error("failed to create report file", slog.Any("error", err))
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}

	if err := report.WriteCSV(out, rep); err != nil {
		logger.Error("failed to write report", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("report written",
		slog.String("run_id", rep.RunID.String()),
		slog.Int("rows", len(rep.Rows)))
}

func loadRoster(path string) (*parser.Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parser.Load(data, path)
}

func loadReference(path string, forceTable bool, logger *slog.Logger) (service.ReferenceInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return service.ReferenceInput{}, err
	}

	if strings.ToLower(filepath.Ext(path)) != ".pdf" {
		ds, err := parser.Load(data, path)
		if err != nil {
			return service.ReferenceInput{}, err
		}
		return service.TableReference(ds), nil
	}

	if forceTable {
		ds, err := corpus.ExtractTable(data)
		if err != nil {
			return service.ReferenceInput{}, err
		}
		return service.TableReference(ds), nil
	}

	text, err := corpus.ExtractText(data)
	if errors.Is(err, corpus.ErrNoText) {
		// Let the controller report the unreadable source instead of
		// failing here.
		logger.Warn("reference document has no text layer", slog.String("path", path))
		return service.CorpusReference(""), nil
	}
	if err != nil {
		return service.ReferenceInput{}, err
	}
	return service.CorpusReference(text), nil
}

func matcherConfig(cfg *config.Config) reconcile.Config {
	return reconcile.Config{
		MinAcceptScore:       cfg.Matching.MinAcceptScore,
		ProbableScore:        cfg.Matching.ProbableScore,
		IdenticalScore:       cfg.Matching.IdenticalScore,
		HomonymOverrideScore: cfg.Matching.HomonymOverrideScore,
		ContextWindow:        cfg.Matching.ContextWindow,
	}
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
