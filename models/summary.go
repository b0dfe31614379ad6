package models

import (
	"sort"
	"strings"
	"uniscope/helpers"
)

// UnitSummary is the derived aggregate of one unit's reviews
// it is never stored - always recomputed from the current review set
type UnitSummary struct {
	UnitCode      string  `json:"unitCode"`
	AverageRating float64 `json:"averageRating"` // mean, rounded to 1 decimal (half-up)
	ReviewCount   int32   `json:"reviewCount"`
}

// Aggregate groups reviews by unit code and computes count & mean rating.
// pure function, no I/O - calling it twice on the same input yields the
// identical result regardless of input order.
// units without reviews never appear (the list is derived from reviews only,
// not from the unit catalog)
func Aggregate(reviews []Review) []UnitSummary {

	type bucket struct {
		total int64
		count int32
	}

	buckets := make(map[string]*bucket)

	for _, review := range reviews {
		code := strings.ToUpper(strings.TrimSpace(review.UnitCode))
		if code == "" {
			continue
		}
		// a single out-of-range rating must not corrupt the other units
		if review.Rating < RatingMin || review.Rating > RatingMax {
			continue
		}

		b, ok := buckets[code]
		if !ok {
			b = &bucket{}
			buckets[code] = b
		}
		b.total += int64(review.Rating)
		b.count++
	}

	summaries := make([]UnitSummary, 0, len(buckets))
	for code, b := range buckets {
		summaries = append(summaries, UnitSummary{
			UnitCode:      code,
			AverageRating: helpers.Round1(float64(b.total) / float64(b.count)),
			ReviewCount:   b.count,
		})
	}

	// ordinal sort keeps the order deterministic (not locale-sensitive)
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].UnitCode < summaries[j].UnitCode
	})

	return summaries
}
