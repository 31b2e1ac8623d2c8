package api

import (
	"context"
	"fmt"

	"github.com/afsumeem/recipe-share-backend/db"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// fakeStore is an in-memory Store so handler tests run against the real
// router without a mongod. Documents are bson.M keyed by generated id,
// mirroring the collections' passthrough semantics. failOn forces the named
// method to return an error, for exercising mid-sequence store failures.
type fakeStore struct {
	users   map[primitive.ObjectID]bson.M
	recipes map[primitive.ObjectID]bson.M
	failOn  string
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:   make(map[primitive.ObjectID]bson.M),
		recipes: make(map[primitive.ObjectID]bson.M),
	}
}

func (f *fakeStore) fail(method string) error {
	if f.failOn == method {
		return fmt.Errorf("forced %s failure", method)
	}
	return nil
}

func (f *fakeStore) addUser(email string, coin int64, extra bson.M) primitive.ObjectID {
	doc := bson.M{"email": email, "coin": coin}
	for k, v := range extra {
		doc[k] = v
	}
	id := primitive.NewObjectID()
	doc["_id"] = id
	f.users[id] = doc
	return id
}

func (f *fakeStore) addRecipe(creatorEmail string, extra bson.M) primitive.ObjectID {
	doc := bson.M{
		"creatorEmail": creatorEmail,
		"purchased_by": []string{},
		"watchCount":   int64(0),
	}
	for k, v := range extra {
		doc[k] = v
	}
	id := primitive.NewObjectID()
	doc["_id"] = id
	f.recipes[id] = doc
	return id
}

func (f *fakeStore) findUserByEmail(email string) bson.M {
	for _, doc := range f.users {
		if e, _ := doc["email"].(string); e == email {
			return doc
		}
	}
	return nil
}

func (f *fakeStore) userCoin(email string) int64 {
	return asInt64(f.findUserByEmail(email)["coin"])
}

func (f *fakeStore) recipePurchasers(id primitive.ObjectID) []string {
	return asStringSlice(f.recipes[id]["purchased_by"])
}

func (f *fakeStore) recipeWatchCount(id primitive.ObjectID) int64 {
	return asInt64(f.recipes[id]["watchCount"])
}

func (f *fakeStore) ListUsers(ctx context.Context) ([]bson.M, error) {
	if err := f.fail("ListUsers"); err != nil {
		return nil, err
	}
	users := []bson.M{}
	for _, doc := range f.users {
		users = append(users, doc)
	}
	return users, nil
}

func (f *fakeStore) GetUserByEmail(ctx context.Context, email string) (*db.User, error) {
	if err := f.fail("GetUserByEmail"); err != nil {
		return nil, err
	}
	doc := f.findUserByEmail(email)
	if doc == nil {
		return nil, mongo.ErrNoDocuments
	}
	return &db.User{
		ID:    doc["_id"].(primitive.ObjectID),
		Email: email,
		Coin:  asInt64(doc["coin"]),
	}, nil
}

func (f *fakeStore) GetUserDocByEmail(ctx context.Context, email string) (bson.M, error) {
	if err := f.fail("GetUserDocByEmail"); err != nil {
		return nil, err
	}
	doc := f.findUserByEmail(email)
	if doc == nil {
		return nil, mongo.ErrNoDocuments
	}
	return doc, nil
}

func (f *fakeStore) InsertUser(ctx context.Context, doc bson.M) (primitive.ObjectID, error) {
	if err := f.fail("InsertUser"); err != nil {
		return primitive.NilObjectID, err
	}
	id := primitive.NewObjectID()
	doc["_id"] = id
	f.users[id] = doc
	return id, nil
}

func (f *fakeStore) UpsertUser(ctx context.Context, id primitive.ObjectID, doc bson.M) (*mongo.UpdateResult, error) {
	if err := f.fail("UpsertUser"); err != nil {
		return nil, err
	}
	delete(doc, "_id")
	if existing, ok := f.users[id]; ok {
		for k, v := range doc {
			existing[k] = v
		}
		return &mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
	}
	created := bson.M{"_id": id}
	for k, v := range doc {
		created[k] = v
	}
	f.users[id] = created
	return &mongo.UpdateResult{UpsertedCount: 1, UpsertedID: id}, nil
}

func (f *fakeStore) SetUserCoin(ctx context.Context, email string, coin int64) error {
	if err := f.fail("SetUserCoin"); err != nil {
		return err
	}
	if doc := f.findUserByEmail(email); doc != nil {
		doc["coin"] = coin
	}
	return nil
}

func (f *fakeStore) AdjustUserCoin(ctx context.Context, email string, delta int64) error {
	if err := f.fail("AdjustUserCoin"); err != nil {
		return err
	}
	if f.failOn == "AdjustUserCoin:"+email {
		return fmt.Errorf("forced AdjustUserCoin failure for %s", email)
	}
	if doc := f.findUserByEmail(email); doc != nil {
		doc["coin"] = asInt64(doc["coin"]) + delta
	}
	return nil
}

func (f *fakeStore) ListRecipeSummaries(ctx context.Context) ([]bson.M, error) {
	if err := f.fail("ListRecipeSummaries"); err != nil {
		return nil, err
	}
	summaries := []bson.M{}
	for _, doc := range f.recipes {
		summary := bson.M{"_id": doc["_id"]}
		for _, field := range []string{"name", "image", "country", "category", "creatorEmail", "purchased_by"} {
			if v, ok := doc[field]; ok {
				summary[field] = v
			}
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

func (f *fakeStore) GetRecipeByID(ctx context.Context, id primitive.ObjectID) (*db.Recipe, error) {
	if err := f.fail("GetRecipeByID"); err != nil {
		return nil, err
	}
	doc, ok := f.recipes[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	name, _ := doc["name"].(string)
	creatorEmail, _ := doc["creatorEmail"].(string)
	return &db.Recipe{
		ID:           id,
		Name:         name,
		CreatorEmail: creatorEmail,
		PurchasedBy:  asStringSlice(doc["purchased_by"]),
		WatchCount:   asInt64(doc["watchCount"]),
	}, nil
}

func (f *fakeStore) GetRecipeDocByID(ctx context.Context, id primitive.ObjectID) (bson.M, error) {
	if err := f.fail("GetRecipeDocByID"); err != nil {
		return nil, err
	}
	doc, ok := f.recipes[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return doc, nil
}

func (f *fakeStore) InsertRecipe(ctx context.Context, doc bson.M) (primitive.ObjectID, error) {
	if err := f.fail("InsertRecipe"); err != nil {
		return primitive.NilObjectID, err
	}
	id := primitive.NewObjectID()
	doc["_id"] = id
	f.recipes[id] = doc
	return id, nil
}

func (f *fakeStore) AddRecipePurchaser(ctx context.Context, id primitive.ObjectID, email string) error {
	if err := f.fail("AddRecipePurchaser"); err != nil {
		return err
	}
	doc, ok := f.recipes[id]
	if !ok {
		return nil
	}
	purchasers := asStringSlice(doc["purchased_by"])
	for _, p := range purchasers {
		if p == email {
			return nil
		}
	}
	doc["purchased_by"] = append(purchasers, email)
	return nil
}

func (f *fakeStore) IncrementWatchCount(ctx context.Context, id primitive.ObjectID) error {
	if err := f.fail("IncrementWatchCount"); err != nil {
		return err
	}
	if doc, ok := f.recipes[id]; ok {
		doc["watchCount"] = asInt64(doc["watchCount"]) + 1
	}
	return nil
}

func (f *fakeStore) WithTransaction(ctx context.Context, callback func(ctx context.Context) error) error {
	if err := f.fail("WithTransaction"); err != nil {
		return err
	}
	return callback(ctx)
}

func asInt64(v interface{}) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int32:
		return int64(n)
	case int:
		return int64(n)
	case float64:
		return int64(n)
	default:
		return 0
	}
}

func asStringSlice(v interface{}) []string {
	switch s := v.(type) {
	case []string:
		return s
	case []interface{}:
		out := make([]string, 0, len(s))
		for _, e := range s {
			if str, ok := e.(string); ok {
				out = append(out, str)
			}
		}
		return out
	default:
		return nil
	}
}
