package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/vkotov/fundlens/internal/model"
)

// Row pairs a shortlist entry with its company for export
type Row struct {
	Company model.Company
	Entry   model.ShortlistEntry
}

// WriteCSV writes shortlist rows as CSV. One row per shortlisted company,
// snapshot fields flattened, sources joined into a single cell.
func WriteCSV(w io.Writer, rows []Row) error {
	writer := csv.NewWriter(w)

	header := []string{
		"company", "website", "stage", "fit_score", "shortlist_status", "rationale",
		"last_round_type", "last_round_date", "amount", "lead_investor",
		"valuation", "valuation_basis", "overall_confidence", "has_conflicts",
		"freshness", "sources",
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, row := range rows {
		if err := writer.Write(csvRecord(row)); err != nil {
			return fmt.Errorf("write row for %s: %w", row.Company.Name, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

func csvRecord(row Row) []string {
	company := row.Company
	snapshot := company.FundingSnapshot

	record := []string{
		company.Name,
		company.Website,
		company.Stage,
		fmt.Sprintf("%d", company.FitScore),
		string(row.Entry.Status),
		row.Entry.Rationale,
	}

	if snapshot == nil {
		return append(record, "", "", "", "", "", "", "", "", "", "")
	}

	date := ""
	if snapshot.LastRoundDate != nil {
		date = snapshot.LastRoundDate.Format("2006-01-02")
	}

	urls := make([]string, 0, len(snapshot.Sources))
	for _, source := range snapshot.Sources {
		urls = append(urls, source.URL)
	}

	return append(record,
		snapshot.LastRoundType,
		date,
		snapshot.Amount,
		snapshot.LeadInvestor,
		snapshot.Valuation,
		string(snapshot.ValuationBasis),
		string(snapshot.OverallConfidence),
		fmt.Sprintf("%t", snapshot.HasConflicts),
		string(snapshot.Freshness),
		strings.Join(urls, " "),
	)
}
