package models

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func validSubmission() Review {
	return Review{
		UnitCode:   "fit2004",
		Rating:     4,
		ReviewText: "tough but rewarding, the assignments are great",
	}
}

func TestValidate_OK(t *testing.T) {
	m := ReviewModel{}

	review, vErr := m.Validate(validSubmission())

	require.Nil(t, vErr)
	assert.Equal(t, "FIT2004", review.UnitCode) // stored uppercase
	assert.Equal(t, int32(4), review.Rating)
}

func TestValidate_RatingBounds(t *testing.T) {
	m := ReviewModel{}

	for _, rating := range []int32{0, 6, -1} {
		data := validSubmission()
		data.Rating = rating

		_, vErr := m.Validate(data)
		require.NotNil(t, vErr, "rating %d must fail", rating)
		assert.Contains(t, vErr.Fields, "rating")
	}

	for _, rating := range []int32{1, 5} {
		data := validSubmission()
		data.Rating = rating

		_, vErr := m.Validate(data)
		assert.Nil(t, vErr, "rating %d must pass", rating)
	}
}

func TestValidate_TextLength(t *testing.T) {
	m := ReviewModel{}

	data := validSubmission()
	data.ReviewText = strings.Repeat("x", ReviewTextMinLen-1)
	_, vErr := m.Validate(data)
	require.NotNil(t, vErr)
	assert.Contains(t, vErr.Fields, "reviewText")

	data.ReviewText = strings.Repeat("x", ReviewTextMinLen)
	_, vErr = m.Validate(data)
	assert.Nil(t, vErr)

	data.ReviewText = strings.Repeat("x", ReviewTextMaxLen)
	_, vErr = m.Validate(data)
	assert.Nil(t, vErr)

	data.ReviewText = strings.Repeat("x", ReviewTextMaxLen+1)
	_, vErr = m.Validate(data)
	require.NotNil(t, vErr)
	assert.Contains(t, vErr.Fields, "reviewText")
}

func TestValidate_UnitCodeLength(t *testing.T) {
	m := ReviewModel{}

	data := validSubmission()
	data.UnitCode = "AB" // too short
	_, vErr := m.Validate(data)
	require.NotNil(t, vErr)
	assert.Contains(t, vErr.Fields, "unitCode")

	data.UnitCode = "ABC"
	_, vErr = m.Validate(data)
	assert.Nil(t, vErr)

	data.UnitCode = strings.Repeat("A", UnitCodeMaxLen)
	_, vErr = m.Validate(data)
	assert.Nil(t, vErr)

	data.UnitCode = strings.Repeat("A", UnitCodeMaxLen+1)
	_, vErr = m.Validate(data)
	require.NotNil(t, vErr)
	assert.Contains(t, vErr.Fields, "unitCode")
}

func TestValidate_ReportsAllFieldsAtOnce(t *testing.T) {
	m := ReviewModel{}

	// everything wrong => every field listed in a single round-trip
	_, vErr := m.Validate(Review{UnitCode: "X", Rating: 9, ReviewText: "short"})

	require.NotNil(t, vErr)
	assert.Len(t, vErr.Fields, 3)
	assert.Contains(t, vErr.Fields, "unitCode")
	assert.Contains(t, vErr.Fields, "rating")
	assert.Contains(t, vErr.Fields, "reviewText")
}

func TestParseReviewDocument_OK(t *testing.T) {
	id := primitive.NewObjectID()
	now := time.Now().Truncate(time.Millisecond)

	doc := bson.M{
		"_id":        id,
		"unitCode":   "fit2001",
		"rating":     int32(5),
		"reviewText": "lectures were excellent",
		"createdAt":  primitive.NewDateTimeFromTime(now),
	}

	review, err := parseReviewDocument(doc)

	require.NoError(t, err)
	assert.Equal(t, id, review.ID)
	assert.Equal(t, "FIT2001", review.UnitCode)
	assert.Equal(t, int32(5), review.Rating)
	assert.True(t, now.Equal(review.CreatedAt))
}

func TestParseReviewDocument_Malformed(t *testing.T) {
	id := primitive.NewObjectID()

	// missing unit code
	_, err := parseReviewDocument(bson.M{"_id": id, "rating": int32(3)})
	assert.Equal(t, ErrMalformedReview, err)

	// rating of the wrong type
	_, err = parseReviewDocument(bson.M{"_id": id, "unitCode": "FIT2001", "rating": "five"})
	assert.Equal(t, ErrMalformedReview, err)

	// missing _id
	_, err = parseReviewDocument(bson.M{"unitCode": "FIT2001", "rating": int32(3)})
	assert.Equal(t, ErrMalformedReview, err)
}

func TestParseReviewDocument_NumberTypes(t *testing.T) {
	id := primitive.NewObjectID()

	// documents written by other clients may store doubles or longs
	for _, rating := range []interface{}{int32(4), int64(4), float64(4)} {
		review, err := parseReviewDocument(bson.M{
			"_id":      id,
			"unitCode": "FIT2001",
			"rating":   rating,
		})
		require.NoError(t, err)
		assert.Equal(t, int32(4), review.Rating)
	}
}

func TestParseReviewDocument_MissingTimestampFallsBackToID(t *testing.T) {
	id := primitive.NewObjectID()

	review, err := parseReviewDocument(bson.M{
		"_id":      id,
		"unitCode": "FIT2001",
		"rating":   int32(3),
	})

	require.NoError(t, err)
	assert.Equal(t, id.Timestamp(), review.CreatedAt)
}
