package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestToneFor(t *testing.T) {
	expected := map[int]Tone{
		1: ToneNegative,
		2: ToneNegative,
		3: ToneNeutral,
		4: TonePositive,
		5: TonePositive,
	}
	for rating, tone := range expected {
		assert.Equal(t, tone, ToneFor(rating), "rating %d", rating)
	}
}

func TestOrderStatus_HasShipped(t *testing.T) {
	assert.True(t, OrderShipped.HasShipped())
	assert.True(t, OrderDelivered.HasShipped())
	assert.False(t, OrderPending.HasShipped())
	assert.False(t, OrderProcessing.HasShipped())
	assert.False(t, OrderCancelled.HasShipped())
}

func TestCustomers(t *testing.T) {
	users := []User{
		{ID: bson.NewObjectID(), Role: RoleCustomer},
		{ID: bson.NewObjectID(), Role: RoleAdmin},
		{ID: bson.NewObjectID(), Role: RoleCustomer},
	}

	customers := Customers(users)

	assert.Len(t, customers, 2)
	assert.Equal(t, []bson.ObjectID{users[0].ID, users[2].ID}, UserIDs(customers))
}

func TestIndexSpec(t *testing.T) {
	assert.True(t, indexProductsText.IsText())
	assert.False(t, indexUsersEmail.IsText())
	assert.Equal(t, "orders.items.productId", indexOrdersItemProduct.Describe())

	info := IndexInfo{Name: "email_1", Keys: []string{"email"}, Unique: true}
	assert.Equal(t, "email_1: email [UNIQUE]", info.String())
}

func TestPerformanceIndexes_CoverEarlierStages(t *testing.T) {
	all := map[string]bool{}
	for _, spec := range PerformanceIndexes() {
		all[spec.Describe()] = true
	}
	for _, spec := range CoreIndexes() {
		assert.True(t, all[spec.Describe()], spec.Describe())
	}
	assert.Len(t, PerformanceIndexes(), 14)
}
