package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Review is one user's rating of one product.
type Review struct {
	ID          bson.ObjectID `bson:"_id" json:"id"`
	ProductID   bson.ObjectID `bson:"productId" json:"productId"`
	ProductName string        `bson:"productName" json:"productName"`
	UserID      bson.ObjectID `bson:"userId" json:"userId"`
	Rating      int           `bson:"rating" json:"rating"`
	Title       string        `bson:"title" json:"title"`
	Comment     string        `bson:"comment" json:"comment"`
	Verified    bool          `bson:"verified" json:"verified"`
	Helpful     int           `bson:"helpful" json:"helpful"`
	Reported    bool          `bson:"reported" json:"reported"`
	CreatedAt   time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time     `bson:"updatedAt" json:"updatedAt"`
}

// Tone groups ratings for choosing review text.
type Tone string

const (
	TonePositive Tone = "positive"
	ToneNeutral  Tone = "neutral"
	ToneNegative Tone = "negative"
)

// ToneFor maps a rating to its tier: 4-5 positive, 3 neutral, 1-2 negative.
func ToneFor(rating int) Tone {
	switch {
	case rating >= 4:
		return TonePositive
	case rating == 3:
		return ToneNeutral
	default:
		return ToneNegative
	}
}
