package discover

import (
	"sort"

	"github.com/vkotov/fundlens/internal/model"
)

// Bucket labels a discovery candidate by fit
type Bucket string

const (
	BucketPursue Bucket = "pursue"
	BucketMaybe  Bucket = "maybe"
	BucketPass   Bucket = "pass"
)

// Thresholds are the minimum fit scores for the pursue and maybe buckets
type Thresholds struct {
	Pursue int
	Maybe  int
}

// DefaultThresholds returns the shipped bucket cutoffs
func DefaultThresholds() Thresholds {
	return Thresholds{Pursue: 70, Maybe: 40}
}

// Bucketer sorts discovery candidates into pursue/maybe/pass buckets
type Bucketer struct {
	thresholds Thresholds
}

// NewBucketer creates a bucketer with the given thresholds
func NewBucketer(thresholds Thresholds) *Bucketer {
	if thresholds.Pursue <= 0 {
		thresholds = DefaultThresholds()
	}
	return &Bucketer{thresholds: thresholds}
}

// BucketFor returns the bucket for a fit score
func (b *Bucketer) BucketFor(fitScore int) Bucket {
	switch {
	case fitScore >= b.thresholds.Pursue:
		return BucketPursue
	case fitScore >= b.thresholds.Maybe:
		return BucketMaybe
	default:
		return BucketPass
	}
}

// Grouped holds companies partitioned by bucket, each sorted by fit score
// descending with name as the tiebreak.
type Grouped struct {
	Pursue []model.Company
	Maybe  []model.Company
	Pass   []model.Company
}

// Group partitions companies into buckets
func (b *Bucketer) Group(companies []model.Company) Grouped {
	var grouped Grouped
	for _, company := range companies {
		switch b.BucketFor(company.FitScore) {
		case BucketPursue:
			grouped.Pursue = append(grouped.Pursue, company)
		case BucketMaybe:
			grouped.Maybe = append(grouped.Maybe, company)
		default:
			grouped.Pass = append(grouped.Pass, company)
		}
	}

	for _, bucket := range [][]model.Company{grouped.Pursue, grouped.Maybe, grouped.Pass} {
		sortByFit(bucket)
	}
	return grouped
}

func sortByFit(companies []model.Company) {
	sort.Slice(companies, func(i, j int) bool {
		if companies[i].FitScore != companies[j].FitScore {
			return companies[i].FitScore > companies[j].FitScore
		}
		return companies[i].Name < companies[j].Name
	})
}
