package reconcile

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/vkotov/fundlens/internal/classify"
	"github.com/vkotov/fundlens/internal/model"
)

// Reconciler turns an unordered collection of claims about one company into
// at most one authoritative funding snapshot. It is stateless across calls
// and performs no I/O, so concurrent runs for different companies never
// interfere.
type Reconciler struct {
	classifier *classify.Classifier
	window     time.Duration
	sourceCap  int
	now        func() time.Time
}

// NewReconciler creates a reconciler using the classifier's trust weights
func NewReconciler(classifier *classify.Classifier, config *model.ReconcileConfig) *Reconciler {
	if config == nil {
		config = &model.DefaultConfig().Reconcile
	}
	windowDays := config.GroupingWindowDays
	if windowDays <= 0 {
		windowDays = 60
	}
	sourceCap := config.SourceCap
	if sourceCap <= 0 {
		sourceCap = 5
	}

	return &Reconciler{
		classifier: classifier,
		window:     time.Duration(windowDays) * 24 * time.Hour,
		sourceCap:  sourceCap,
		now:        time.Now,
	}
}

// Reconcile resolves the claim set into a funding snapshot. An empty claim
// list yields a nil snapshot: absence of evidence is distinguishable from
// zero-confidence evidence. Claims referencing more than one company are a
// caller bug and fail loudly.
func (r *Reconciler) Reconcile(companyName string, claims []model.Claim) (*model.FundingSnapshot, error) {
	if len(claims) == 0 {
		return nil, nil
	}

	companyID := claims[0].CompanyID
	for _, claim := range claims[1:] {
		if claim.CompanyID != companyID {
			return nil, fmt.Errorf("reconcile %s: claims reference multiple companies (%s and %s)",
				companyName, companyID, claim.CompanyID)
		}
	}

	ordered := r.orderClaims(claims)
	groups, malformed := r.groupRounds(ordered)

	var winner *roundGroup
	if len(groups) == 0 {
		// Nothing but malformed claims: they still produce a snapshot,
		// resolved at low confidence
		winner = &roundGroup{types: make(map[string]bool)}
	} else {
		winner = r.promoteLatest(groups)
	}
	// Malformed claims are skipped for field extraction but their sources
	// and confidence still feed aggregate scoring
	winner.claims = append(winner.claims, malformed...)

	snapshot := r.resolveGroup(winner)
	return snapshot, nil
}

// orderClaims produces a deterministic claim order: most recent first, ID as
// the final tie-break. Resolution must never depend on input order.
func (r *Reconciler) orderClaims(claims []model.Claim) []model.Claim {
	ordered := make([]model.Claim, len(claims))
	copy(ordered, claims)
	sort.SliceStable(ordered, func(i, j int) bool {
		ti, tj := claimTime(ordered[i]), claimTime(ordered[j])
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return ordered[i].ID < ordered[j].ID
	})
	return ordered
}

// roundGroup is one believed funding round
type roundGroup struct {
	claims []model.Claim
	types  map[string]bool
	dates  []time.Time
}

// groupRounds partitions claims into funding-round groups. A claim joins a
// group when its normalized round type matches, or its date falls within the
// grouping window of any date already in the group. Claims asserting fields
// but carrying neither a round type nor a date form a group of their own;
// claims asserting nothing are returned separately as malformed.
func (r *Reconciler) groupRounds(claims []model.Claim) ([]*roundGroup, []model.Claim) {
	var groups []*roundGroup
	var malformed []model.Claim

	for _, claim := range claims {
		if claim.Fields.Empty() {
			malformed = append(malformed, claim)
			continue
		}

		roundType := normalizeText(claim.Fields.RoundType)
		date := claim.Fields.Date

		if roundType == "" && date == nil {
			groups = append(groups, newGroup(claim, roundType, date))
			continue
		}

		var joined *roundGroup
		for _, group := range groups {
			if roundType != "" && group.types[roundType] {
				joined = group
				break
			}
			if date != nil && group.withinWindow(*date, r.window) {
				joined = group
				break
			}
		}

		if joined == nil {
			groups = append(groups, newGroup(claim, roundType, date))
			continue
		}
		joined.claims = append(joined.claims, claim)
		if roundType != "" {
			joined.types[roundType] = true
		}
		if date != nil {
			joined.dates = append(joined.dates, *date)
		}
	}

	return groups, malformed
}

func newGroup(claim model.Claim, roundType string, date *time.Time) *roundGroup {
	group := &roundGroup{types: make(map[string]bool)}
	group.claims = append(group.claims, claim)
	if roundType != "" {
		group.types[roundType] = true
	}
	if date != nil {
		group.dates = append(group.dates, *date)
	}
	return group
}

func (g *roundGroup) withinWindow(date time.Time, window time.Duration) bool {
	for _, existing := range g.dates {
		delta := date.Sub(existing)
		if delta < 0 {
			delta = -delta
		}
		if delta <= window {
			return true
		}
	}
	return false
}

// promoteLatest picks the group with the most recent resolved date. Only the
// latest round is reported; all other groups are discarded, a documented
// simplification of this system. Undated groups lose to any dated group.
func (r *Reconciler) promoteLatest(groups []*roundGroup) *roundGroup {
	if len(groups) == 1 {
		return groups[0]
	}

	winner := groups[0]
	winnerDate := r.resolveDate(winner)
	for _, group := range groups[1:] {
		date := r.resolveDate(group)
		switch {
		case date == nil:
			continue
		case winnerDate == nil || date.After(*winnerDate):
			winner, winnerDate = group, date
		case date.Equal(*winnerDate) && len(group.claims) > len(winner.claims):
			winner = group
		}
	}
	return winner
}

// resolveGroup performs field resolution, confidence aggregation, freshness
// classification and source selection for the winning group
func (r *Reconciler) resolveGroup(group *roundGroup) *model.FundingSnapshot {
	snapshot := &model.FundingSnapshot{}
	var notes []string

	resolve := func(field string, cands []candidate) string {
		value, note := resolveField(field, cands)
		if note != "" {
			notes = append(notes, note)
		}
		return value
	}

	dateCands := r.dateCandidates(group.claims)
	if value, note := resolveField("date", dateCands); value != "" {
		if note != "" {
			notes = append(notes, note)
		}
		for _, cand := range dateCands {
			if cand.raw == value {
				date := cand.date
				snapshot.LastRoundDate = date
				break
			}
		}
	}

	snapshot.LastRoundType = resolve("round type", r.stringCandidates(group.claims,
		func(f model.FundingFields) string { return f.RoundType }, false))
	snapshot.Amount = resolve("amount", r.stringCandidates(group.claims,
		func(f model.FundingFields) string { return f.Amount }, true))
	snapshot.LeadInvestor = resolve("lead investor", r.stringCandidates(group.claims,
		func(f model.FundingFields) string { return f.LeadInvestor }, false))
	snapshot.Valuation = resolve("valuation", r.stringCandidates(group.claims,
		func(f model.FundingFields) string { return f.Valuation }, true))
	snapshot.ValuationBasis = model.ValuationBasis(resolve("valuation basis",
		r.stringCandidates(group.claims,
			func(f model.FundingFields) string { return string(f.ValuationBasis) }, false)))

	snapshot.HasConflicts = len(notes) > 0
	snapshot.ResolutionNote = strings.Join(notes, "; ")

	// Aggregate confidence: rounded mean over every contributing claim,
	// downgraded one level when any field conflicted. Conflicting evidence
	// never yields a high-confidence snapshot.
	snapshot.OverallConfidence = meanConfidence(group.claims, func(model.Claim) bool { return true })
	if snapshot.HasConflicts {
		snapshot.OverallConfidence = snapshot.OverallConfidence.Downgrade()
	}
	snapshot.ValuationConfidence = meanConfidence(group.claims, func(c model.Claim) bool {
		return c.Fields.Valuation != ""
	})

	// A group backed only by sourceless claims is capped at low confidence
	if !anySourced(group.claims) {
		snapshot.OverallConfidence = model.ConfidenceLow
		snapshot.ValuationConfidence = model.ConfidenceLow
	}

	// A group with neither a round type nor a date resolves at low confidence
	if len(group.types) == 0 && len(group.dates) == 0 {
		snapshot.OverallConfidence = model.ConfidenceLow
	}

	snapshot.Freshness = model.FreshnessOf(snapshot.LastRoundDate, r.now())
	snapshot.Sources = r.selectSources(group.claims)

	return snapshot
}

// resolveDate resolves the group's round date without recording conflicts
func (r *Reconciler) resolveDate(group *roundGroup) *time.Time {
	cands := r.dateCandidates(group.claims)
	value, _ := resolveField("date", cands)
	for _, cand := range cands {
		if cand.raw == value {
			return cand.date
		}
	}
	return nil
}

// candidate is one asserted value for a field, tagged with the trust weight
// of its best source and the recency of its claim
type candidate struct {
	raw      string
	canon    string
	num      float64
	hasNum   bool
	weight   int
	at       time.Time
	category model.SourceCategory
	date     *time.Time
}

func (r *Reconciler) stringCandidates(claims []model.Claim, extract func(model.FundingFields) string, monetary bool) []candidate {
	var cands []candidate
	for _, claim := range claims {
		raw := extract(claim.Fields)
		if raw == "" {
			continue
		}
		cand := candidate{
			raw:    raw,
			canon:  normalizeText(raw),
			weight: r.claimWeight(claim),
			at:     claimTime(claim),
		}
		cand.category = r.bestCategory(claim)
		if monetary {
			cand.canon = canonicalMoney(raw)
			if value, ok := parseMoney(raw); ok {
				cand.num = value
				cand.hasNum = true
			}
		}
		cands = append(cands, cand)
	}
	return cands
}

func (r *Reconciler) dateCandidates(claims []model.Claim) []candidate {
	var cands []candidate
	for _, claim := range claims {
		if claim.Fields.Date == nil {
			continue
		}
		date := *claim.Fields.Date
		cands = append(cands, candidate{
			raw:      date.Format("2006-01-02"),
			canon:    date.Format("2006-01-02"),
			num:      float64(date.Unix()),
			hasNum:   true,
			weight:   r.claimWeight(claim),
			at:       claimTime(claim),
			category: r.bestCategory(claim),
			date:     &date,
		})
	}
	return cands
}

// resolveField resolves one field across candidates. Agreement resolves
// silently; disagreement resolves to the highest-trust candidate (ties: most
// recent claim, then the lower value as a conservative default) and records
// one narrative sentence naming the discarded values and their sources.
func resolveField(field string, cands []candidate) (string, string) {
	if len(cands) == 0 {
		return "", "" // absent is not a conflict
	}

	sorted := make([]candidate, len(cands))
	copy(sorted, cands)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.weight != b.weight {
			return a.weight > b.weight
		}
		if !a.at.Equal(b.at) {
			return a.at.After(b.at)
		}
		if a.hasNum && b.hasNum && a.num != b.num {
			return a.num < b.num
		}
		if a.canon != b.canon {
			return a.canon < b.canon
		}
		return a.raw < b.raw
	})

	winner := sorted[0]

	distinct := make(map[string]candidate)
	var order []string
	for _, cand := range sorted {
		if _, seen := distinct[cand.canon]; !seen {
			distinct[cand.canon] = cand
			order = append(order, cand.canon)
		}
	}
	if len(distinct) == 1 {
		return winner.raw, ""
	}

	var discarded []string
	for _, canon := range order {
		if canon == winner.canon {
			continue
		}
		loser := distinct[canon]
		discarded = append(discarded, fmt.Sprintf("%q from %s (trust %d)",
			loser.raw, loser.category, loser.weight))
	}

	note := fmt.Sprintf("%s: kept %q from %s (trust %d) over %s",
		field, winner.raw, winner.category, winner.weight, strings.Join(discarded, " and "))
	return winner.raw, note
}

// claimWeight is the maximum trust weight among the claim's sources.
// Sourceless claims carry zero weight so any sourced claim outranks them.
func (r *Reconciler) claimWeight(claim model.Claim) int {
	weight := 0
	for _, source := range claim.Sources {
		if w := r.classifier.Weight(source.Category); w > weight {
			weight = w
		}
	}
	return weight
}

// bestCategory is the category of the claim's highest-trust source
func (r *Reconciler) bestCategory(claim model.Claim) model.SourceCategory {
	best := model.CategoryUnknown
	weight := -1
	for _, source := range claim.Sources {
		if w := r.classifier.Weight(source.Category); w > weight {
			weight = w
			best = source.Category
		}
	}
	return best
}

// claimTime is the claim's recency: the latest capture time among its sources
func claimTime(claim model.Claim) time.Time {
	var latest time.Time
	for _, source := range claim.Sources {
		if source.CapturedAt.After(latest) {
			latest = source.CapturedAt
		}
	}
	return latest
}

func meanConfidence(claims []model.Claim, include func(model.Claim) bool) model.ConfidenceLevel {
	total, count := 0, 0
	for _, claim := range claims {
		if include(claim) {
			total += claim.Confidence.Score()
			count++
		}
	}
	if count == 0 {
		return model.ConfidenceLow
	}
	return model.ConfidenceFromScore(float64(total) / float64(count))
}

func anySourced(claims []model.Claim) bool {
	for _, claim := range claims {
		if len(claim.Sources) > 0 {
			return true
		}
	}
	return false
}

// selectSources returns the group's sources deduplicated by URL, ordered by
// trust weight then recency, capped to the configured bound
func (r *Reconciler) selectSources(claims []model.Claim) []model.Source {
	byURL := make(map[string]model.Source)
	for _, claim := range claims {
		for _, source := range claim.Sources {
			existing, seen := byURL[source.URL]
			if !seen || r.classifier.Weight(source.Category) > r.classifier.Weight(existing.Category) {
				byURL[source.URL] = source
			}
		}
	}

	sources := make([]model.Source, 0, len(byURL))
	for _, source := range byURL {
		sources = append(sources, source)
	}
	sort.SliceStable(sources, func(i, j int) bool {
		wi, wj := r.classifier.Weight(sources[i].Category), r.classifier.Weight(sources[j].Category)
		if wi != wj {
			return wi > wj
		}
		if !sources[i].CapturedAt.Equal(sources[j].CapturedAt) {
			return sources[i].CapturedAt.After(sources[j].CapturedAt)
		}
		return sources[i].URL < sources[j].URL
	})

	if len(sources) > r.sourceCap {
		sources = sources[:r.sourceCap]
	}
	return sources
}
