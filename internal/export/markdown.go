package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/vkotov/fundlens/internal/model"
)

// WriteMarkdown writes a research memo for a sprint's shortlist: a summary
// table, one card per company, and an appendix with resolution notes for
// companies whose sources disagreed.
func WriteMarkdown(w io.Writer, sprint model.ThesisSprint, rows []Row, now time.Time) error {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("# Thesis memo: %s\n\n", sprint.Name))
	b.WriteString(fmt.Sprintf("Generated %s.\n\n", now.Format("2 January 2006")))

	if sprint.Description != "" {
		b.WriteString(sprint.Description + "\n\n")
	}
	writeThesisFraming(&b, sprint)

	b.WriteString("## Shortlist\n\n")
	if len(rows) == 0 {
		b.WriteString("No companies shortlisted yet.\n")
	} else {
		writeSummaryTable(&b, rows)
		b.WriteString("\n## Companies\n\n")
		for _, row := range rows {
			writeCompanyCard(&b, row)
		}
		writeAppendix(&b, rows)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeThesisFraming(b *strings.Builder, sprint model.ThesisSprint) {
	var framing []string
	if sprint.StageFocus != "" {
		framing = append(framing, fmt.Sprintf("stage focus: %s", sprint.StageFocus))
	}
	if sprint.Geography != "" {
		framing = append(framing, fmt.Sprintf("geography: %s", sprint.Geography))
	}
	if len(sprint.KeywordsInclude) > 0 {
		framing = append(framing, fmt.Sprintf("keywords: %s", strings.Join(sprint.KeywordsInclude, ", ")))
	}
	if sprint.LastRaiseFilter != "" {
		framing = append(framing, fmt.Sprintf("last raise: %s", sprint.LastRaiseFilter))
	}
	if len(framing) > 0 {
		b.WriteString("Scope: " + strings.Join(framing, "; ") + ".\n\n")
	}
}

func writeSummaryTable(b *strings.Builder, rows []Row) {
	b.WriteString("| Company | Verdict | Last round | Amount | Confidence | Freshness |\n")
	b.WriteString("|---|---|---|---|---|---|\n")
	for _, row := range rows {
		round, amount, confidence, freshness := "?", "?", "?", "?"
		if s := row.Company.FundingSnapshot; s != nil {
			round = orDash(s.LastRoundType)
			amount = orDash(s.Amount)
			confidence = string(s.OverallConfidence)
			freshness = string(s.Freshness)
			if s.HasConflicts {
				confidence += " (conflicting)"
			}
		}
		b.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s | %s |\n",
			row.Company.Name, row.Entry.Status, round, amount, confidence, freshness))
	}
}

func writeCompanyCard(b *strings.Builder, row Row) {
	company := row.Company
	b.WriteString(fmt.Sprintf("### %s\n\n", company.Name))

	if company.Description != "" {
		b.WriteString(company.Description + "\n\n")
	}
	if row.Entry.Rationale != "" {
		b.WriteString(fmt.Sprintf("**Verdict**: %s. %s\n\n", row.Entry.Status, row.Entry.Rationale))
	} else {
		b.WriteString(fmt.Sprintf("**Verdict**: %s.\n\n", row.Entry.Status))
	}
	if company.ThesisFitNotes != "" {
		b.WriteString(fmt.Sprintf("**Notes**: %s\n\n", company.ThesisFitNotes))
	}

	snapshot := company.FundingSnapshot
	if snapshot == nil {
		b.WriteString("Funding not yet validated.\n\n")
		return
	}

	b.WriteString(fmt.Sprintf("- Last round: %s", orDash(snapshot.LastRoundType)))
	if snapshot.LastRoundDate != nil {
		b.WriteString(fmt.Sprintf(" (%s)", snapshot.LastRoundDate.Format("Jan 2006")))
	}
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("- Amount: %s\n", orDash(snapshot.Amount)))
	if snapshot.LeadInvestor != "" {
		b.WriteString(fmt.Sprintf("- Lead: %s\n", snapshot.LeadInvestor))
	}
	if snapshot.Valuation != "" {
		b.WriteString(fmt.Sprintf("- Valuation: %s (%s, %s confidence)\n",
			snapshot.Valuation, snapshot.ValuationBasis, snapshot.ValuationConfidence))
	}
	b.WriteString(fmt.Sprintf("- Confidence: %s, freshness: %s\n", snapshot.OverallConfidence, snapshot.Freshness))

	if len(snapshot.Sources) > 0 {
		b.WriteString("- Sources:\n")
		for _, source := range snapshot.Sources {
			title := source.Title
			if title == "" {
				title = source.URL
			}
			b.WriteString(fmt.Sprintf("  - [%s](%s) (%s)\n", title, source.URL, source.Category))
		}
	}
	b.WriteString("\n")
}

func writeAppendix(b *strings.Builder, rows []Row) {
	var conflicted []Row
	for _, row := range rows {
		if s := row.Company.FundingSnapshot; s != nil && s.HasConflicts {
			conflicted = append(conflicted, row)
		}
	}
	if len(conflicted) == 0 {
		return
	}

	b.WriteString("## Appendix: conflicting sources\n\n")
	for _, row := range conflicted {
		b.WriteString(fmt.Sprintf("**%s**: %s\n\n", row.Company.Name, row.Company.FundingSnapshot.ResolutionNote))
	}
}

func orDash(s string) string {
	if s == "" {
		return "n/a"
	}
	return s
}
