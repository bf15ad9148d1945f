// Package report renders a reconciliation report for its consumer.
// Writing the rows out is the run's only side effect.
package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/gocarina/gocsv"

	"github.com/FACorreiaa/approval-tracker/internal/domain/reconcile"
)

// csvRow is the flat CSV projection of a reconcile.Outcome.
type csvRow struct {
	Candidate     string `csv:"candidate"`
	ReferenceName string `csv:"reference_name"`
	MatchOffset   string `csv:"match_offset"`
	Score         int    `csv:"similarity"`
	Status        string `csv:"status"`
	CandidateDoc  string `csv:"candidate_document"`
	ReferenceDoc  string `csv:"reference_document"`
	DocumentMatch string `csv:"document_match"`
	Note          string `csv:"note"`
}

// WriteCSV writes the report rows in their classified order.
func WriteCSV(w io.Writer, rep *reconcile.Report) error {
	rows := make([]*csvRow, 0, len(rep.Rows))
	for _, out := range rep.Rows {
		row := &csvRow{
			Candidate:     out.CandidateName,
			ReferenceName: out.ReferenceName,
			MatchOffset:   "",
			Score:         out.Score,
			Status:        out.Status,
			CandidateDoc:  out.CandidateDoc,
			ReferenceDoc:  out.ReferenceDoc,
			Note:          out.Note,
		}
		if out.MatchOffset >= 0 {
			row.MatchOffset = strconv.Itoa(out.MatchOffset)
		}
		if out.DocumentMatch != nil {
			if *out.DocumentMatch {
				row.DocumentMatch = "yes"
			} else {
				row.DocumentMatch = "no"
			}
		}
		rows = append(rows, row)
	}

	if err := gocsv.Marshal(&rows, w); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
