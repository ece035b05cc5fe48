package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// ProductTemplate is a static catalog entry before ratings, images and
// timestamps are attached.
type ProductTemplate struct {
	SKU            string         `yaml:"sku" validate:"required"`
	Name           string         `yaml:"name" validate:"required"`
	Category       string         `yaml:"category" validate:"required"`
	Subcategory    string         `yaml:"subcategory"`
	Brand          string         `yaml:"brand"`
	Price          float64        `yaml:"price" validate:"gte=0"`
	CompareAtPrice *float64       `yaml:"compare_at_price"`
	Description    string         `yaml:"description"`
	Tags           []string       `yaml:"tags"`
	Specifications map[string]any `yaml:"specifications"`
	Stock          int            `yaml:"stock" validate:"gte=0"`
	Featured       bool           `yaml:"featured"`
}

type Rating struct {
	Average float64 `bson:"average" json:"average"`
	Count   int     `bson:"count" json:"count"`
}

// Product is a catalog item.
type Product struct {
	ID             bson.ObjectID  `bson:"_id" json:"id"`
	SKU            string         `bson:"sku" json:"sku"`
	Name           string         `bson:"name" json:"name"`
	Category       string         `bson:"category" json:"category"`
	Subcategory    string         `bson:"subcategory" json:"subcategory"`
	Brand          string         `bson:"brand" json:"brand"`
	Price          float64        `bson:"price" json:"price"`
	CompareAtPrice *float64       `bson:"compareAtPrice,omitempty" json:"compareAtPrice,omitempty"`
	Description    string         `bson:"description" json:"description"`
	Tags           []string       `bson:"tags" json:"tags"`
	Specifications map[string]any `bson:"specifications" json:"specifications"`
	Stock          int            `bson:"stock" json:"stock"`
	Featured       bool           `bson:"featured" json:"featured"`
	Rating         Rating         `bson:"rating" json:"rating"`
	Images         []string       `bson:"images" json:"images"`
	Status         AccountStatus  `bson:"status" json:"status"`
	CreatedAt      time.Time      `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time      `bson:"updatedAt" json:"updatedAt"`
}

// ProductRef is the part of a product a review needs.
type ProductRef struct {
	ID   bson.ObjectID
	Name string
}

// Ref returns the product's review reference.
func (p Product) Ref() ProductRef {
	return ProductRef{ID: p.ID, Name: p.Name}
}
