package api

import (
	"context"

	"github.com/afsumeem/recipe-share-backend/db"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Store is the document-store surface the route handlers depend on.
// db.Store implements it against MongoDB; tests substitute an in-memory
// implementation.
type Store interface {
	ListUsers(ctx context.Context) ([]bson.M, error)
	GetUserByEmail(ctx context.Context, email string) (*db.User, error)
	GetUserDocByEmail(ctx context.Context, email string) (bson.M, error)
	InsertUser(ctx context.Context, doc bson.M) (primitive.ObjectID, error)
	UpsertUser(ctx context.Context, id primitive.ObjectID, doc bson.M) (*mongo.UpdateResult, error)
	SetUserCoin(ctx context.Context, email string, coin int64) error
	AdjustUserCoin(ctx context.Context, email string, delta int64) error

	ListRecipeSummaries(ctx context.Context) ([]bson.M, error)
	GetRecipeByID(ctx context.Context, id primitive.ObjectID) (*db.Recipe, error)
	GetRecipeDocByID(ctx context.Context, id primitive.ObjectID) (bson.M, error)
	InsertRecipe(ctx context.Context, doc bson.M) (primitive.ObjectID, error)
	AddRecipePurchaser(ctx context.Context, id primitive.ObjectID, email string) error
	IncrementWatchCount(ctx context.Context, id primitive.ObjectID) error

	WithTransaction(ctx context.Context, callback func(ctx context.Context) error) error
}

var _ Store = (*db.Store)(nil)

// PaymentClient creates a payment intent for an amount in cents and returns
// its client secret.
type PaymentClient interface {
	CreatePaymentIntent(ctx context.Context, amount int64) (string, error)
}
