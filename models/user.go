package models

import (
	"context"
	"strings"
	"time"
	"uniscope/helpers"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// minimum password length (aligned with the identity provider's policy)
const PasswordMinLen = 6

// User is the "interface" used for client communication
type User struct {
	ID            primitive.ObjectID `json:"id" bson:"_id"`
	EMailAddress  string             `json:"eMail" bson:"eMail"`
	Password      string             `json:"password" bson:"password"` // hash value
	CreatedTS     time.Time          `json:"createdTS" bson:"createdTS"`
	LastSeenTS    time.Time          `json:"lastSeenTS" bson:"lastSeenTS,omitempty"`
	EnrolledUnits []string           `json:"enrolledUnits" bson:"enrolledUnits"` // unit codes, set semantics in the store
}

// UserModel provides the logic to the interface and access to the database
type UserModel struct {
	Client     *mongo.Client
	Collection *mongo.Collection
}

// EMailAddressExists checks if an eMail-Address is already taken
// used in client for in-type error checking
func (m UserModel) EMailAddressExists(emailAddress string) bool {
	b, _ := eMailExists(m.Collection, emailAddress)
	return b
}

// CreateUser adds a new account
func (m UserModel) CreateUser(user User) (string, error) {

	var err error

	user.EMailAddress = strings.ToLower(strings.TrimSpace(user.EMailAddress))

	if len(user.Password) < PasswordMinLen {
		return "", ErrWeakPassword
	}

	// ToDo: entfernen => PK in DB machen
	b, err := eMailExists(m.Collection, user.EMailAddress)
	if b || err != nil {
		return "", ErrEMailAddressTaken
	}

	pwdHash, err := helpers.GenerateHash(user.Password)
	if err != nil {
		return "", err
	}

	user.ID = primitive.NewObjectID()
	user.Password = pwdHash
	user.CreatedTS = time.Now()
	user.LastSeenTS = user.CreatedTS
	user.EnrolledUnits = []string{} // always present, empty on purpose

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel() // nach 10 Sekunden abbrechen

	res, err := m.Collection.InsertOne(ctx, user)
	if err != nil {
		return "", helpers.WrapError(err, helpers.FuncName())
	}

	return res.InsertedID.(primitive.ObjectID).Hex(), nil
}

// GetUserByEMail reads a user's login account data
func (m UserModel) GetUserByEMail(emailAddress string) (*User, error) {

	var user User

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel() // nach 10 Sekunden abbrechen

	err := m.Collection.FindOne(ctx, bson.M{"eMail": strings.ToLower(strings.TrimSpace(emailAddress))}).Decode(&user)
	if err != nil {
		// no difference between wrong name and wrong password to the outside
		return nil, ErrInvalidUser
	}

	return &user, nil
}

// GetUserByID reads a user's account data
func (m UserModel) GetUserByID(ID string) (*User, error) {

	var user User

	id, err := primitive.ObjectIDFromHex(ID)
	if err != nil {
		return nil, ErrInvalidUser
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel() // nach 10 Sekunden abbrechen

	err = m.Collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		return nil, ErrInvalidUser
	}

	return &user, nil
}

// CheckPassword compares the given (unencrypted) password with the stored hash
func (m UserModel) CheckPassword(givenPassword string, userInfo User) bool {
	granted, err := helpers.CompareHash(userInfo.Password, givenPassword)
	if err != nil {
		return false
	}
	return granted
}

// SetLastSeen saves the current time as a user's last activity
// errors are ignored (nice-to-have field)
func (m UserModel) SetLastSeen(userID primitive.ObjectID) {

	filter := bson.D{{Key: "_id", Value: userID}}
	fields := bson.D{
		{Key: "$set", Value: bson.D{{Key: "lastSeenTS", Value: time.Now()}}},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel() // nach 10 Sekunden abbrechen

	_, _ = m.Collection.UpdateOne(ctx, filter, fields)
}

// GetUserUnits returns the unit codes a user has put on the personal list
func (m UserModel) GetUserUnits(userID string) ([]string, error) {

	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrInvalidUser
	}

	fields := bson.D{
		{Key: "_id", Value: 0}, // _id kommt immer, daher explizit ausschalten
		{Key: "enrolledUnits", Value: 1},
	}

	opts := options.FindOne().SetProjection(fields)

	data := struct {
		EnrolledUnits []string `bson:"enrolledUnits"`
	}{}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel() // nach 10 Sekunden abbrechen

	err = m.Collection.FindOne(ctx, bson.M{"_id": id}, opts).Decode(&data)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrInvalidUser
		}
		return nil, helpers.WrapError(err, helpers.FuncName())
	}

	// field may be missing on old accounts
	if data.EnrolledUnits == nil {
		return []string{}, nil
	}

	return data.EnrolledUnits, nil
}

// AddUserUnit puts a unit code on the user's list
// $addToSet keeps the operation atomic and the array duplicate-free,
// so no read-modify-write is needed here
func (m UserModel) AddUserUnit(userID string, unitCode string) error {

	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return ErrInvalidUser
	}

	code := strings.ToUpper(strings.TrimSpace(unitCode))
	if len(code) < UnitCodeMinLen || len(code) > UnitCodeMaxLen {
		return ErrUnitCodeInvalid
	}

	filter := bson.D{{Key: "_id", Value: id}}
	fields := bson.D{
		{Key: "$addToSet", Value: bson.D{{Key: "enrolledUnits", Value: code}}},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel() // nach 10 Sekunden abbrechen

	result, err := m.Collection.UpdateOne(ctx, filter, fields)
	if err != nil {
		return helpers.WrapError(err, helpers.FuncName())
	}

	if result.MatchedCount == 0 {
		return ErrInvalidUser
	}

	return nil
}

// RemoveUserUnit takes a unit code off the user's list ($pull, atomic)
func (m UserModel) RemoveUserUnit(userID string, unitCode string) error {

	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return ErrInvalidUser
	}

	code := strings.ToUpper(strings.TrimSpace(unitCode))

	filter := bson.D{{Key: "_id", Value: id}}
	fields := bson.D{
		{Key: "$pull", Value: bson.D{{Key: "enrolledUnits", Value: code}}},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel() // nach 10 Sekunden abbrechen

	result, err := m.Collection.UpdateOne(ctx, filter, fields)
	if err != nil {
		return helpers.WrapError(err, helpers.FuncName())
	}

	if result.MatchedCount == 0 {
		return ErrInvalidUser
	}

	return nil
}

// internal check used by registration
func eMailExists(collection *mongo.Collection, emailAddress string) (bool, error) {

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel() // nach 10 Sekunden abbrechen

	// there seems to be no function like "exists" so a projection on just the ID is used
	fields := bson.D{
		{Key: "_id", Value: 1}}

	data := struct {
		ID primitive.ObjectID `bson:"_id"`
	}{}

	err := collection.FindOne(ctx,
		bson.M{"eMail": strings.ToLower(strings.TrimSpace(emailAddress))},
		options.FindOne().SetProjection(fields)).Decode(&data)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return false, nil
		}
		// treat errors as a "yes" - caller should not evaluate the result in case of an error
		return true, helpers.WrapError(err, helpers.FuncName())
	}
	// no error means a document was found, hence the address is taken
	return true, nil
}
