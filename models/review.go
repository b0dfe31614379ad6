package models

import (
	"context"
	"fmt"
	"strings"
	"time"
	"uniscope/apperror"
	"uniscope/helpers"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// field limits for submissions
const (
	UnitCodeMinLen   = 3
	UnitCodeMaxLen   = 10
	RatingMin        = 1
	RatingMax        = 5
	ReviewTextMinLen = 10
	ReviewTextMaxLen = 1000
)

// Review is the "interface" used for client communication
// a review is immutable once created - there is no edit or delete
type Review struct {
	ID         primitive.ObjectID `json:"id" bson:"_id"`
	UnitCode   string             `json:"unitCode" bson:"unitCode"` // stored uppercase
	Rating     int32              `json:"rating" bson:"rating"`
	ReviewText string             `json:"reviewText" bson:"reviewText"`
	CreatedAt  time.Time          `json:"createdAt" bson:"createdAt"`         // set by the API, never by the client (ISO-8601 in JSON)
	UserID     primitive.ObjectID `json:"userId,omitempty" bson:"userId,omitempty"` // absent on legacy/anonymous rows
}

// ValidationError reports every failing field of a submission at once,
// so the client can mark all inputs in a single round-trip
type ValidationError struct {
	Fields map[string]string `json:"fields"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %v", e.Fields)
}

// ReviewModel provides the logic to the interface and access to the database
type ReviewModel struct {
	Client     *mongo.Client
	Collection *mongo.Collection
	// fired after a successful insert; read-paths re-compute on next access
	// (injected by environment, kein direkter package-bezug zum cache)
	Invalidate func(unitCode string)
}

// Validate checks given values and sets defaults where applicable (immutable)
// all failing fields are reported together
func (m ReviewModel) Validate(review Review) (*Review, *ValidationError) {

	cleaned := review
	cleaned.UnitCode = strings.ToUpper(strings.TrimSpace(cleaned.UnitCode))
	cleaned.ReviewText = strings.TrimSpace(cleaned.ReviewText)

	fields := make(map[string]string)

	if len(cleaned.UnitCode) < UnitCodeMinLen || len(cleaned.UnitCode) > UnitCodeMaxLen {
		fields["unitCode"] = fmt.Sprintf("unit code must be %d-%d characters", UnitCodeMinLen, UnitCodeMaxLen)
	}

	if cleaned.Rating < RatingMin || cleaned.Rating > RatingMax {
		fields["rating"] = fmt.Sprintf("rating must be between %d and %d", RatingMin, RatingMax)
	}

	if len(cleaned.ReviewText) < ReviewTextMinLen || len(cleaned.ReviewText) > ReviewTextMaxLen {
		fields["reviewText"] = fmt.Sprintf("review text must be %d-%d characters", ReviewTextMinLen, ReviewTextMaxLen)
	}

	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	return &cleaned, nil
}

// Create adds a new review - validated by controller
// the creation timestamp is always taken from the server clock
// (client-supplied timestamps are never trusted)
func (m ReviewModel) Create(review *Review) (string, error) {

	// set "system-fields"
	review.ID = primitive.NewObjectID()
	review.CreatedAt = time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel() // nach 10 Sekunden abbrechen

	res, err := m.Collection.InsertOne(ctx, review)
	if err != nil {
		return "", helpers.WrapError(err, helpers.FuncName())
	}

	// flag cached aggregates & listings as stale (recomputed on next read)
	if m.Invalidate != nil {
		m.Invalidate(review.UnitCode)
	}

	return res.InsertedID.(primitive.ObjectID).Hex(), nil
}

// ListAll returns every persisted review in store order
// callers must sort explicitly if order matters
func (m ReviewModel) ListAll() ([]Review, error) {

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel() // nach 10 Sekunden abbrechen

	cursor, err := m.Collection.Find(ctx, bson.D{})
	if err != nil {
		return nil, helpers.WrapError(err, helpers.FuncName())
	}

	return m.receiveReviews(ctx, cursor)
}

// ListByUnit returns the reviews of one unit, newest first
func (m ReviewModel) ListByUnit(unitCode string) ([]Review, error) {

	filter := bson.D{
		{Key: "unitCode", Value: strings.ToUpper(strings.TrimSpace(unitCode))},
	}

	sort := bson.D{
		{Key: "_id", Value: -1},
	}

	opts := options.Find().SetSort(sort)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel() // nach 10 Sekunden abbrechen

	cursor, err := m.Collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, helpers.WrapError(err, helpers.FuncName())
	}

	return m.receiveReviews(ctx, cursor)
}

// ListRecent returns the latest reviews over all units ("trending now" section)
func (m ReviewModel) ListRecent(limit int64) ([]Review, error) {

	sort := bson.D{
		{Key: "_id", Value: -1},
	}

	opts := options.Find().SetSort(sort).SetLimit(limit)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel() // nach 10 Sekunden abbrechen

	cursor, err := m.Collection.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, helpers.WrapError(err, helpers.FuncName())
	}

	return m.receiveReviews(ctx, cursor)
}

// receiveReviews drains a cursor into the typed structure
// documents are read as raw maps first and parsed explicitly, so one
// malformed row is skipped instead of failing the whole read
func (m ReviewModel) receiveReviews(ctx context.Context, cursor *mongo.Cursor) ([]Review, error) {

	var docs []bson.M

	err := cursor.All(ctx, &docs)
	if err != nil {
		return nil, helpers.WrapError(err, helpers.FuncName())
	}

	var reviews []Review
	for _, doc := range docs {
		review, err := parseReviewDocument(doc)
		if err != nil {
			// skip bad rows; aggregation of the others must not suffer
			continue
		}
		reviews = append(reviews, *review)
	}

	// check for empty result set (no error raised by find)
	if reviews == nil {
		return nil, apperror.ErrNoData
	}

	return reviews, nil
}

// parseReviewDocument converts a raw store document into a Review
// the store is duck-typed, so every field is checked before use
func parseReviewDocument(doc bson.M) (*Review, error) {

	var review Review

	id, ok := doc["_id"].(primitive.ObjectID)
	if !ok {
		return nil, ErrMalformedReview
	}
	review.ID = id

	code, ok := doc["unitCode"].(string)
	if !ok || strings.TrimSpace(code) == "" {
		return nil, ErrMalformedReview
	}
	review.UnitCode = strings.ToUpper(code)

	rating, ok := numericValue(doc["rating"])
	if !ok {
		return nil, ErrMalformedReview
	}
	review.Rating = rating

	// text may legally be missing on very old rows; keep the zero value then
	if text, ok := doc["reviewText"].(string); ok {
		review.ReviewText = text
	}

	switch ts := doc["createdAt"].(type) {
	case primitive.DateTime:
		review.CreatedAt = ts.Time()
	case time.Time:
		review.CreatedAt = ts
	default:
		// fall back to the insertion time encoded in the ObjectID
		review.CreatedAt = primitive.ObjectID.Timestamp(id)
	}

	if userID, ok := doc["userId"].(primitive.ObjectID); ok {
		review.UserID = userID
	}

	return &review, nil
}

// numericValue reads a rating regardless of the number type the driver
// decoded it to (documents written by other clients may store doubles)
func numericValue(v interface{}) (int32, bool) {
	switch n := v.(type) {
	case int32:
		return n, true
	case int64:
		return int32(n), true
	case float64:
		return int32(n), true
	default:
		return 0, false
	}
}
