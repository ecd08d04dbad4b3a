package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/vkotov/fundlens/internal/model"
)

func testRows() []Row {
	roundDate := time.Date(2026, 5, 15, 0, 0, 0, 0, time.UTC)
	return []Row{
		{
			Company: model.Company{
				Name:           "Acme Robotics",
				Website:        "https://acme.example",
				Stage:          "Series B",
				FitScore:       85,
				ThesisFitNotes: "Strong wedge, churn in SMB segment unverified.",
				FundingSnapshot: &model.FundingSnapshot{
					LastRoundDate:     &roundDate,
					LastRoundType:     "Series B",
					Amount:            "45000000",
					LeadInvestor:      "Sequoia",
					OverallConfidence: model.ConfidenceMedium,
					HasConflicts:      true,
					ResolutionNote:    `amount: kept "45000000" from data_platform (trust 60) over "42000000" from business_press (trust 80)`,
					Freshness:         model.FreshnessFresh,
					Sources: []model.Source{
						{URL: "https://techcrunch.com/acme", Title: "Acme raises Series B", Category: model.CategoryBusinessPress},
						{URL: "https://crunchbase.com/acme", Category: model.CategoryDataPlatform},
					},
				},
			},
			Entry: model.ShortlistEntry{Status: model.ShortlistPursue, Rationale: "strong thesis fit"},
		},
		{
			Company: model.Company{Name: "Borealis", FitScore: 60},
			Entry:   model.ShortlistEntry{Status: model.ShortlistWatch},
		},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, testRows()); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("parse output: %v", err)
	}

	if len(records) != 3 {
		t.Fatalf("expected header + 2 rows, got %d records", len(records))
	}
	header := records[0]
	if header[0] != "company" || header[len(header)-1] != "sources" {
		t.Errorf("unexpected header: %v", header)
	}

	acme := records[1]
	if acme[0] != "Acme Robotics" {
		t.Errorf("row 1 company = %q", acme[0])
	}
	if acme[4] != "pursue" {
		t.Errorf("row 1 shortlist status = %q, want pursue", acme[4])
	}
	if acme[7] != "2026-05-15" {
		t.Errorf("row 1 round date = %q", acme[7])
	}
	if acme[13] != "true" {
		t.Errorf("row 1 has_conflicts = %q, want true", acme[13])
	}
	if !strings.Contains(acme[15], "techcrunch.com") || !strings.Contains(acme[15], "crunchbase.com") {
		t.Errorf("row 1 sources cell missing URLs: %q", acme[15])
	}

	borealis := records[2]
	if borealis[0] != "Borealis" {
		t.Errorf("row 2 company = %q", borealis[0])
	}
	if borealis[6] != "" {
		t.Errorf("row 2 without snapshot should have empty round type, got %q", borealis[6])
	}
	if len(borealis) != len(header) {
		t.Errorf("row 2 column count = %d, want %d", len(borealis), len(header))
	}
}

func TestWriteMarkdown(t *testing.T) {
	sprint := model.ThesisSprint{
		Name:            "vertical robotics",
		Description:     "Robotics companies selling into one industry.",
		StageFocus:      "Series A-B",
		Geography:       "US",
		KeywordsInclude: []string{"robotics", "automation"},
	}

	var buf bytes.Buffer
	if err := WriteMarkdown(&buf, sprint, testRows(), time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("WriteMarkdown: %v", err)
	}
	memo := buf.String()

	for _, want := range []string{
		"# Thesis memo: vertical robotics",
		"stage focus: Series A-B",
		"| Acme Robotics | pursue | Series B | 45000000 | medium (conflicting) | fresh |",
		"### Acme Robotics",
		"**Verdict**: pursue. strong thesis fit",
		"**Notes**: Strong wedge, churn in SMB segment unverified.",
		"- Lead: Sequoia",
		"[Acme raises Series B](https://techcrunch.com/acme)",
		"## Appendix: conflicting sources",
		"**Acme Robotics**: amount: kept",
		"Funding not yet validated.",
	} {
		if !strings.Contains(memo, want) {
			t.Errorf("memo missing %q", want)
		}
	}
}

func TestWriteMarkdownEmptyShortlist(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteMarkdown(&buf, model.ThesisSprint{Name: "empty"}, nil, time.Now()); err != nil {
		t.Fatalf("WriteMarkdown: %v", err)
	}
	if !strings.Contains(buf.String(), "No companies shortlisted yet.") {
		t.Error("empty shortlist notice missing")
	}
	if strings.Contains(buf.String(), "## Appendix") {
		t.Error("appendix should be absent for empty shortlist")
	}
}
