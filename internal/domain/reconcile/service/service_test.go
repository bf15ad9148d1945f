package service

import (
	"fmt"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/approval-tracker/internal/domain/reconcile"
	"github.com/FACorreiaa/approval-tracker/internal/domain/roster/parser"
)

func newTestService() *Service {
	return New(reconcile.DefaultConfig(), nil)
}

func dataset(headers []string, rows ...[]string) *parser.Dataset {
	ds := &parser.Dataset{Headers: headers}
	for _, values := range rows {
		rec := parser.Record{}
		for i, h := range headers {
			if i < len(values) {
				rec[h] = values[i]
			}
		}
		ds.Rows = append(ds.Rows, rec)
	}
	return ds
}

func TestReconcile_StructuredRoute(t *testing.T) {
	svc := newTestService()

	t.Run("name-only run classifies and orders rows", func(t *testing.T) {
		candidates := dataset([]string{"Nome", "CPF"},
			[]string{"maria silva", "111.222.333-44"},
			[]string{"José dos Santos", "123.456.789-01"},
		)
		reference := dataset([]string{"Candidato", "Documento"},
			[]string{"MARIA SILVA", "111.222.333-44"},
			[]string{"JOSE DOS SANTOS", "123.456.789-01"},
		)

		rep := svc.Reconcile(candidates, TableReference(reference), false)
		require.Len(t, rep.Rows, 2)
		for _, row := range rep.Rows {
			assert.Equal(t, reconcile.StatusApprovedIdentical, row.Status)
			assert.Equal(t, 100, row.Score)
		}
		assert.NotEmpty(t, rep.RunID)
	})

	t.Run("document check corroborates", func(t *testing.T) {
		candidates := dataset([]string{"Nome", "CPF"},
			[]string{"Maria Silva", "111.222.333-44"},
		)
		reference := dataset([]string{"Candidato", "Documento"},
			[]string{"MARIA SILVA", "***.222.***-**"},
		)

		rep := svc.Reconcile(candidates, TableReference(reference), true)
		require.Len(t, rep.Rows, 1)
		assert.Equal(t, reconcile.StatusApproved, rep.Rows[0].Status)
	})

	t.Run("missing candidate document column aborts the run", func(t *testing.T) {
		candidates := dataset([]string{"Nome"}, []string{"Maria Silva"})
		reference := dataset([]string{"Candidato", "Documento"}, []string{"MARIA SILVA", "111"})

		rep := svc.Reconcile(candidates, TableReference(reference), true)
		require.Len(t, rep.Rows, 1)
		assert.Equal(t, reconcile.StatusError, rep.Rows[0].Status)
		assert.Contains(t, rep.Rows[0].Note, "candidate dataset")
	})

	t.Run("missing reference document column aborts the run", func(t *testing.T) {
		candidates := dataset([]string{"Nome", "CPF"}, []string{"Maria Silva", "111.222.333-44"})
		reference := dataset([]string{"Candidato"}, []string{"MARIA SILVA"})

		rep := svc.Reconcile(candidates, TableReference(reference), true)
		require.Len(t, rep.Rows, 1)
		assert.Equal(t, reconcile.StatusError, rep.Rows[0].Status)
		assert.Contains(t, rep.Rows[0].Note, "reference dataset")
	})

	t.Run("empty candidate dataset yields the no-match row", func(t *testing.T) {
		candidates := dataset([]string{"Nome", "CPF"})
		reference := dataset([]string{"Candidato"}, []string{"MARIA SILVA"})

		rep := svc.Reconcile(candidates, TableReference(reference), false)
		require.Len(t, rep.Rows, 1)
		assert.Equal(t, reconcile.StatusNoMatch, rep.Rows[0].Status)
	})

	t.Run("large generated roster matches itself", func(t *testing.T) {
		gofakeit.Seed(42)
		headers := []string{"Student Name", "Registration"}
		candidates := &parser.Dataset{Headers: headers}
		reference := &parser.Dataset{Headers: headers}
		seen := map[string]bool{}
		for i := 0; len(candidates.Rows) < 25; i++ {
			name := gofakeit.Name()
			if seen[name] {
				continue
			}
			seen[name] = true
			doc := fmt.Sprintf("%03d.%03d.%03d-%02d", i, i+1, i+2, i%100)
			candidates.Rows = append(candidates.Rows, parser.Record{headers[0]: name, headers[1]: doc})
			reference.Rows = append(reference.Rows, parser.Record{headers[0]: name, headers[1]: doc})
		}

		rep := svc.Reconcile(candidates, TableReference(reference), true)
		assert.Len(t, rep.Rows, 25)
		for _, row := range rep.Rows {
			assert.Equal(t, reconcile.StatusApproved, row.Status)
		}
	})
}

func TestReconcile_CorpusRoute(t *testing.T) {
	svc := newTestService()

	t.Run("selects the corpus matcher for text references", func(t *testing.T) {
		candidates := dataset([]string{"Nome", "CPF"},
			[]string{"Maria Silva", "111.222.333-44"},
			[]string{"Ausente da Lista", "999.999.999-99"},
		)
		text := "Relação de aprovados:\n111.222.333-44 MARIA SILVA\n"

		rep := svc.Reconcile(candidates, CorpusReference(text), true)
		require.Len(t, rep.Rows, 1)
		assert.Equal(t, reconcile.StatusApprovedConfirmed, rep.Rows[0].Status)
		assert.Equal(t, "Maria Silva", rep.Rows[0].CandidateName)
		assert.GreaterOrEqual(t, rep.Rows[0].MatchOffset, 0)
	})

	t.Run("unreadable reference text aborts the run", func(t *testing.T) {
		candidates := dataset([]string{"Nome"}, []string{"Maria Silva"})

		rep := svc.Reconcile(candidates, CorpusReference("   \n "), false)
		require.Len(t, rep.Rows, 1)
		assert.Equal(t, reconcile.StatusError, rep.Rows[0].Status)
		assert.Contains(t, rep.Rows[0].Note, "no extractable text")
	})

	t.Run("candidate document column is required for the document check", func(t *testing.T) {
		candidates := dataset([]string{"Nome"}, []string{"Maria Silva"})

		rep := svc.Reconcile(candidates, CorpusReference("MARIA SILVA"), true)
		require.Len(t, rep.Rows, 1)
		assert.Equal(t, reconcile.StatusError, rep.Rows[0].Status)
	})

	t.Run("nil reference table aborts cleanly", func(t *testing.T) {
		candidates := dataset([]string{"Nome"}, []string{"Maria Silva"})

		rep := svc.Reconcile(candidates, TableReference(nil), false)
		require.Len(t, rep.Rows, 1)
		assert.Equal(t, reconcile.StatusError, rep.Rows[0].Status)
	})
}
