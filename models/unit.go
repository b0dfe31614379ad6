package models

import (
	"context"
	"strings"
	"time"
	"uniscope/apperror"
	"uniscope/database"
	"uniscope/helpers"
	"uniscope/lookups"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Unit is the read-only catalog entity (seeded externally into the collection)
// review unit codes are plain strings - there is no referential check against
// this catalog by design
type Unit struct {
	ID           primitive.ObjectID `json:"unitId" bson:"_id"`
	Code         string             `json:"code" bson:"code"`
	Name         string             `json:"name" bson:"name"`
	LevelCode    int32              `json:"levelCode" bson:"levelCD"`
	LevelText    string             `json:"levelText" bson:"-"`
	CreditPoints int32              `json:"creditPoints" bson:"creditPoints"`
	Description  string             `json:"description" bson:"description"`
}

// UnitModel provides the logic to the interface and access to the database
type UnitModel struct {
	Collection *mongo.Collection
}

// ListUnits returns the whole catalog, ordered by unit code
func (m UnitModel) ListUnits() ([]Unit, error) {

	sort := bson.D{
		{Key: "code", Value: 1},
	}

	opts := options.Find().SetSort(sort)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel() // nach 10 Sekunden abbrechen

	cursor, err := m.Collection.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, helpers.WrapError(err, helpers.FuncName())
	}

	var units []Unit

	err = cursor.All(ctx, &units)
	if err != nil {
		return nil, helpers.WrapError(err, helpers.FuncName())
	}

	// check for empty result set (no error raised by find)
	if units == nil {
		return nil, apperror.ErrNoData
	}

	// add look-ups
	for i := range units {
		units[i].LevelText = database.GetLookupText(lookups.LookupType(lookups.LTunitLevel), units[i].LevelCode)
	}

	return units, nil
}

// GetUnitByCode returns one catalog entry
func (m UnitModel) GetUnitByCode(code string) (*Unit, error) {

	data := Unit{}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel() // nach 10 Sekunden abbrechen

	err := m.Collection.FindOne(ctx, bson.M{"code": strings.ToUpper(strings.TrimSpace(code))}).Decode(&data)
	if err != nil {
		return nil, apperror.ErrNoData
	}

	data.LevelText = database.GetLookupText(lookups.LookupType(lookups.LTunitLevel), data.LevelCode)

	return &data, nil
}
