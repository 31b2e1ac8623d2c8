package db

import (
	"context"
	"time"

	"github.com/afsumeem/recipe-share-backend/config"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const queryTimeout = 5 * time.Second

type Store struct {
	Client  *mongo.Client
	configs *config.Config
}

func NewStore(configs *config.Config) (*Store, error) {
	client, err := mongo.NewClient(options.Client().ApplyURI(configs.DatabaseSource))
	if err != nil {
		return nil, err
	}

	// Connect to MongoDB
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	err = client.Connect(ctx)
	if err != nil {
		return nil, err
	}

	// Check the connection
	err = client.Ping(ctx, nil)
	if err != nil {
		return nil, err
	}

	log.Info().Msg("Connected to mongoDB successfully")

	return &Store{Client: client, configs: configs}, nil
}

func (s *Store) users() *mongo.Collection {
	return s.Client.Database(s.configs.DatabaseName).Collection("users")
}

func (s *Store) recipes() *mongo.Collection {
	return s.Client.Database(s.configs.DatabaseName).Collection("recipes")
}

// ListUsers returns every user document as stored, including any profile
// fields beyond the typed model.
func (s *Store) ListUsers(ctx context.Context) ([]bson.M, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	cursor, err := s.users().Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}

	users := []bson.M{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}

	return users, nil
}

// GetUserByEmail decodes the typed fields the coin economy needs. Returns
// mongo.ErrNoDocuments when no user has the email.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var user User
	err := s.users().FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// GetUserDocByEmail returns the full user document unchanged.
func (s *Store) GetUserDocByEmail(ctx context.Context, email string) (bson.M, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var doc bson.M
	err := s.users().FindOne(ctx, bson.M{"email": email}).Decode(&doc)
	if err != nil {
		return nil, err
	}

	return doc, nil
}

// InsertUser stores the document exactly as submitted and returns the
// generated id.
func (s *Store) InsertUser(ctx context.Context, doc bson.M) (primitive.ObjectID, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	result, err := s.users().InsertOne(ctx, doc)
	if err != nil {
		return primitive.NilObjectID, err
	}

	id, _ := result.InsertedID.(primitive.ObjectID)
	return id, nil
}

// UpsertUser writes the submitted fields onto the document with the given
// id, creating it when absent.
func (s *Store) UpsertUser(ctx context.Context, id primitive.ObjectID, doc bson.M) (*mongo.UpdateResult, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	// The _id field is immutable, never part of the $set.
	delete(doc, "_id")

	return s.users().UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": doc},
		options.Update().SetUpsert(true),
	)
}

// SetUserCoin overwrites the user's coin balance.
func (s *Store) SetUserCoin(ctx context.Context, email string, coin int64) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := s.users().UpdateOne(ctx, bson.M{"email": email}, bson.M{"$set": bson.M{"coin": coin}})
	return err
}

// AdjustUserCoin applies a signed delta to the user's coin balance.
func (s *Store) AdjustUserCoin(ctx context.Context, email string, delta int64) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := s.users().UpdateOne(ctx, bson.M{"email": email}, bson.M{"$inc": bson.M{"coin": delta}})
	return err
}

// ListRecipeSummaries returns the listing projection of every recipe.
func (s *Store) ListRecipeSummaries(ctx context.Context) ([]bson.M, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	projection := bson.M{
		"name":         1,
		"image":        1,
		"country":      1,
		"category":     1,
		"creatorEmail": 1,
		"purchased_by": 1,
	}

	cursor, err := s.recipes().Find(ctx, bson.M{}, options.Find().SetProjection(projection))
	if err != nil {
		return nil, err
	}

	recipes := []bson.M{}
	if err := cursor.All(ctx, &recipes); err != nil {
		return nil, err
	}

	return recipes, nil
}

// GetRecipeByID decodes the typed fields the unlock flow needs. Returns
// mongo.ErrNoDocuments when no recipe has the id.
func (s *Store) GetRecipeByID(ctx context.Context, id primitive.ObjectID) (*Recipe, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var recipe Recipe
	err := s.recipes().FindOne(ctx, bson.M{"_id": id}).Decode(&recipe)
	if err != nil {
		return nil, err
	}

	return &recipe, nil
}

// GetRecipeDocByID returns the full recipe document unchanged.
func (s *Store) GetRecipeDocByID(ctx context.Context, id primitive.ObjectID) (bson.M, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var doc bson.M
	err := s.recipes().FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		return nil, err
	}

	return doc, nil
}

// InsertRecipe stores the document exactly as submitted and returns the
// generated id.
func (s *Store) InsertRecipe(ctx context.Context, doc bson.M) (primitive.ObjectID, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	result, err := s.recipes().InsertOne(ctx, doc)
	if err != nil {
		return primitive.NilObjectID, err
	}

	id, _ := result.InsertedID.(primitive.ObjectID)
	return id, nil
}

// AddRecipePurchaser adds the email to the recipe's purchased_by set.
// Adding an email already in the set is a no-op.
func (s *Store) AddRecipePurchaser(ctx context.Context, id primitive.ObjectID, email string) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := s.recipes().UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$addToSet": bson.M{"purchased_by": email}})
	return err
}

// IncrementWatchCount bumps the recipe's watch counter by one.
func (s *Store) IncrementWatchCount(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := s.recipes().UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"watchCount": 1}})
	return err
}

// WithTransaction runs callback inside a MongoDB session transaction. The
// session context it receives must be passed to every store call made from
// the callback.
func (s *Store) WithTransaction(ctx context.Context, callback func(ctx context.Context) error) error {
	session, err := s.Client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		return nil, callback(sessCtx)
	})
	return err
}

func (s *Store) Disconnect() {
	s.Client.Disconnect(context.TODO())
}
