package domain

import (
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Collection names.
const (
	CollectionUsers    = "users"
	CollectionProducts = "products"
	CollectionReviews  = "reviews"
	CollectionOrders   = "orders"
)

// AllCollections lists every seeded collection in reporting order.
var AllCollections = []string{CollectionUsers, CollectionProducts, CollectionOrders, CollectionReviews}

// IndexSpec declares one index. Keys values are 1, -1 or "text".
type IndexSpec struct {
	Collection string
	Label      string
	Keys       bson.D
	Unique     bool
}

// Describe renders "collection.label" for log lines.
func (s IndexSpec) Describe() string {
	return s.Collection + "." + s.Label
}

// IsText reports whether any key is a full-text key.
func (s IndexSpec) IsText() bool {
	for _, k := range s.Keys {
		if v, ok := k.Value.(string); ok && v == "text" {
			return true
		}
	}
	return false
}

// IndexInfo is one index as reported by the store.
type IndexInfo struct {
	Name   string
	Keys   []string
	Unique bool
	Text   bool
}

// String renders the index for the stage summary.
func (i IndexInfo) String() string {
	var b strings.Builder
	b.WriteString(i.Name)
	b.WriteString(": ")
	b.WriteString(strings.Join(i.Keys, ", "))
	if i.Unique {
		b.WriteString(" [UNIQUE]")
	}
	if i.Text {
		b.WriteString(" [TEXT]")
	}
	return b.String()
}

func asc(field string) bson.E  { return bson.E{Key: field, Value: 1} }
func desc(field string) bson.E { return bson.E{Key: field, Value: -1} }
func text(field string) bson.E { return bson.E{Key: field, Value: "text"} }

var (
	indexUsersEmail      = IndexSpec{Collection: CollectionUsers, Label: "email", Keys: bson.D{asc("email")}, Unique: true}
	indexUsersState      = IndexSpec{Collection: CollectionUsers, Label: "address.state", Keys: bson.D{asc("address.state")}}
	indexUsersRoleStatus = IndexSpec{Collection: CollectionUsers, Label: "role_status", Keys: bson.D{asc("role"), asc("status")}}

	indexProductsSKU           = IndexSpec{Collection: CollectionProducts, Label: "sku", Keys: bson.D{asc("sku")}, Unique: true}
	indexProductsText          = IndexSpec{Collection: CollectionProducts, Label: "text", Keys: bson.D{text("name"), text("description")}}
	indexProductsCategoryPrice = IndexSpec{Collection: CollectionProducts, Label: "category_price", Keys: bson.D{asc("category"), asc("price")}}
	indexProductsTags          = IndexSpec{Collection: CollectionProducts, Label: "tags", Keys: bson.D{asc("tags")}}

	indexReviewsProduct = IndexSpec{Collection: CollectionReviews, Label: "productId", Keys: bson.D{asc("productId")}}
	indexReviewsUser    = IndexSpec{Collection: CollectionReviews, Label: "userId", Keys: bson.D{asc("userId")}}
	indexReviewsRating  = IndexSpec{Collection: CollectionReviews, Label: "rating", Keys: bson.D{asc("rating")}}
	indexReviewsCreated = IndexSpec{Collection: CollectionReviews, Label: "createdAt", Keys: bson.D{desc("createdAt")}}

	indexOrdersUser          = IndexSpec{Collection: CollectionOrders, Label: "userId", Keys: bson.D{asc("userId")}}
	indexOrdersStatus        = IndexSpec{Collection: CollectionOrders, Label: "status", Keys: bson.D{asc("status")}}
	indexOrdersCreated       = IndexSpec{Collection: CollectionOrders, Label: "createdAt", Keys: bson.D{desc("createdAt")}}
	indexOrdersStatusCreated = IndexSpec{Collection: CollectionOrders, Label: "status_createdAt", Keys: bson.D{asc("status"), desc("createdAt")}}
	indexOrdersItemProduct   = IndexSpec{Collection: CollectionOrders, Label: "items.productId", Keys: bson.D{asc("items.productId")}}
)

// CoreIndexes are created before users and products are inserted.
func CoreIndexes() []IndexSpec {
	return []IndexSpec{indexUsersEmail, indexProductsSKU, indexProductsText}
}

// DependentIndexes are created after reviews and orders are inserted.
func DependentIndexes() []IndexSpec {
	return []IndexSpec{
		indexReviewsProduct, indexReviewsUser, indexReviewsRating, indexReviewsCreated,
		indexOrdersUser, indexOrdersStatus, indexOrdersCreated, indexOrdersItemProduct,
	}
}

// PerformanceIndexes is the full set ensured by the verification stage.
func PerformanceIndexes() []IndexSpec {
	return []IndexSpec{
		indexUsersEmail, indexUsersState, indexUsersRoleStatus,
		indexProductsSKU, indexProductsCategoryPrice, indexProductsTags, indexProductsText,
		indexOrdersUser, indexOrdersStatusCreated, indexOrdersItemProduct,
		indexReviewsProduct, indexReviewsUser, indexReviewsRating, indexReviewsCreated,
	}
}
