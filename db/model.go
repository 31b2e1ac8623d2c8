package db

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User model with BSON tags. Documents are created from raw client bodies,
// so records may carry profile fields beyond the ones named here; these are
// the fields the coin economy reads.
type User struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Email string             `bson:"email" json:"email"`
	Coin  int64              `bson:"coin" json:"coin"`
}

// Recipe model with BSON tags. As with User, only the fields the route layer
// and unlock flow need are typed; recipe bodies are stored as submitted.
type Recipe struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name         string             `bson:"name" json:"name"`
	Image        string             `bson:"image" json:"image"`
	Country      string             `bson:"country" json:"country"`
	Category     string             `bson:"category" json:"category"`
	CreatorEmail string             `bson:"creatorEmail" json:"creatorEmail"`
	PurchasedBy  []string           `bson:"purchased_by" json:"purchased_by"`
	WatchCount   int64              `bson:"watchCount" json:"watchCount"`
}
