package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func makeReview(unitCode string, rating int32) Review {
	return Review{
		ID:         primitive.NewObjectID(),
		UnitCode:   unitCode,
		Rating:     rating,
		ReviewText: "good unit, would recommend",
	}
}

func TestAggregate_GroupsByUnit(t *testing.T) {
	reviews := []Review{
		makeReview("FIT2001", 4),
		makeReview("FIT2001", 2),
		makeReview("FIT2099", 5),
	}

	summaries := Aggregate(reviews)

	assert.Len(t, summaries, 2)
	assert.Equal(t, "FIT2001", summaries[0].UnitCode)
	assert.Equal(t, int32(2), summaries[0].ReviewCount)
	assert.Equal(t, 3.0, summaries[0].AverageRating)
	assert.Equal(t, "FIT2099", summaries[1].UnitCode)
	assert.Equal(t, int32(1), summaries[1].ReviewCount)
	assert.Equal(t, 5.0, summaries[1].AverageRating)
}

func TestAggregate_RoundsHalfUp(t *testing.T) {
	// 1.5 stays 1.5 (tie rounds up, not to even)
	summaries := Aggregate([]Review{
		makeReview("FIT2004", 1),
		makeReview("FIT2004", 2),
	})
	assert.Equal(t, 1.5, summaries[0].AverageRating)

	// 14/3 = 4.666... => 4.7
	summaries = Aggregate([]Review{
		makeReview("FIT3171", 5),
		makeReview("FIT3171", 5),
		makeReview("FIT3171", 4),
	})
	assert.Equal(t, 4.7, summaries[0].AverageRating)
}

func TestAggregate_SortedByCode(t *testing.T) {
	reviews := []Review{
		makeReview("FIT2099", 3),
		makeReview("FIT1008", 3),
		makeReview("FIT2001", 3),
	}

	summaries := Aggregate(reviews)

	assert.Equal(t, "FIT1008", summaries[0].UnitCode)
	assert.Equal(t, "FIT2001", summaries[1].UnitCode)
	assert.Equal(t, "FIT2099", summaries[2].UnitCode)
}

func TestAggregate_InputOrderIrrelevant(t *testing.T) {
	a := []Review{
		makeReview("FIT2001", 1),
		makeReview("FIT2001", 5),
		makeReview("FIT2099", 4),
	}
	b := []Review{a[2], a[0], a[1]}

	assert.Equal(t, Aggregate(a), Aggregate(b))
}

func TestAggregate_Empty(t *testing.T) {
	summaries := Aggregate(nil)
	assert.Empty(t, summaries)
	assert.NotNil(t, summaries) // empty list, not null, in JSON
}

func TestAggregate_NormalizesCase(t *testing.T) {
	// mixed-case codes belong to the same unit
	summaries := Aggregate([]Review{
		makeReview("fit2001", 2),
		makeReview("FIT2001", 4),
	})

	assert.Len(t, summaries, 1)
	assert.Equal(t, "FIT2001", summaries[0].UnitCode)
	assert.Equal(t, int32(2), summaries[0].ReviewCount)
	assert.Equal(t, 3.0, summaries[0].AverageRating)
}

func TestAggregate_SkipsBadRows(t *testing.T) {
	// an empty code or an out-of-range rating must not corrupt the rest
	summaries := Aggregate([]Review{
		makeReview("FIT2001", 4),
		makeReview("", 5),
		makeReview("FIT2001", 0),
		makeReview("FIT2001", 6),
	})

	assert.Len(t, summaries, 1)
	assert.Equal(t, int32(1), summaries[0].ReviewCount)
	assert.Equal(t, 4.0, summaries[0].AverageRating)
}
