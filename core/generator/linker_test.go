package generator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/hyperterse/seeder/core/domain"
	apperrors "github.com/hyperterse/seeder/core/shared/errors"
)

func productsWithIDs(n int) []domain.Product {
	out := make([]domain.Product, n)
	for i := range out {
		out[i] = domain.Product{ID: bson.NewObjectID(), SKU: strings.Repeat("X", i+1)}
	}
	return out
}

func TestPickDistinctProducts(t *testing.T) {
	r := NewRandom(21)
	catalog := productsWithIDs(10)

	for range 200 {
		picked, err := PickDistinctProducts(r, catalog, 4)
		require.NoError(t, err)
		require.Len(t, picked, 4)
		seen := map[bson.ObjectID]bool{}
		for _, p := range picked {
			assert.False(t, seen[p.ID])
			seen[p.ID] = true
		}
	}
}

func TestPickDistinctProducts_SmallCatalogTerminates(t *testing.T) {
	r := NewRandom(22)
	catalog := productsWithIDs(2)

	picked, err := PickDistinctProducts(r, catalog, 4)
	require.NoError(t, err)
	assert.Len(t, picked, 2, "item count is capped at catalog size")
	assert.NotEqual(t, picked[0].ID, picked[1].ID)

	single, err := PickDistinctProducts(r, productsWithIDs(1), 3)
	require.NoError(t, err)
	assert.Len(t, single, 1)
}

func TestPickDistinctProducts_Errors(t *testing.T) {
	r := NewRandom(23)

	_, err := PickDistinctProducts(r, nil, 1)
	assert.True(t, apperrors.IsEmptyInput(err))

	_, err = PickDistinctProducts(r, productsWithIDs(3), -1)
	assert.True(t, apperrors.IsInvalidRange(err))
}

func TestCustomerPool(t *testing.T) {
	_, err := CustomerPool([]domain.User{{Role: domain.RoleAdmin}})
	assert.True(t, apperrors.IsEmptyInput(err))

	pool, err := CustomerPool([]domain.User{{Role: domain.RoleAdmin}, {Role: domain.RoleCustomer}})
	require.NoError(t, err)
	assert.Len(t, pool, 1)
}

func TestEnsureUniqueEmails(t *testing.T) {
	users := []domain.User{
		{Email: "alice.smith@gmail.com"},
		{Email: "alice.smith@gmail.com"},
		{Email: "bob.jones@yahoo.com"},
		{Email: "alice.smith2@gmail.com"},
		{Email: "alice.smith@gmail.com"},
	}

	rewritten := EnsureUniqueEmails(users)

	assert.Equal(t, 2, rewritten)
	assert.Equal(t, "alice.smith@gmail.com", users[0].Email)
	assert.Equal(t, "alice.smith3@gmail.com", users[1].Email)
	assert.Equal(t, "alice.smith2@gmail.com", users[3].Email)
	assert.Equal(t, "alice.smith4@gmail.com", users[4].Email)
	assert.Empty(t, DuplicateEmails(users))
}

func TestEnsureUniqueEmails_LargeRun(t *testing.T) {
	users, err := newTestGenerator(24).GenerateUsers(3000)
	require.NoError(t, err)
	require.NotEmpty(t, DuplicateEmails(users), "3000 users over 2600 combinations must collide")

	EnsureUniqueEmails(users)

	assert.Empty(t, DuplicateEmails(users))
}

func TestDuplicateEmails(t *testing.T) {
	users := []domain.User{
		{Email: "a@x"}, {Email: "b@x"}, {Email: "a@x"}, {Email: "a@x"}, {Email: "b@x"},
	}
	assert.Equal(t, []string{"a@x", "b@x"}, DuplicateEmails(users))
}

func TestValidateReferences(t *testing.T) {
	customer := domain.User{ID: bson.NewObjectID(), Role: domain.RoleCustomer}
	admin := domain.User{ID: bson.NewObjectID(), Role: domain.RoleAdmin}
	product := domain.Product{ID: bson.NewObjectID()}
	users := []domain.User{customer, admin}
	products := []domain.Product{product}

	good := []domain.Order{{UserID: customer.ID, Items: []domain.LineItem{{ProductID: product.ID}}}}
	reviews := []domain.Review{{ProductID: product.ID, UserID: admin.ID}}
	require.NoError(t, ValidateReferences(users, products, reviews, good))

	bad := []domain.Order{
		{UserID: admin.ID, Items: []domain.LineItem{{ProductID: product.ID}, {ProductID: product.ID}}},
	}
	danglingReview := []domain.Review{{ProductID: bson.NewObjectID(), UserID: bson.NewObjectID()}}
	err := ValidateReferences(users, products, danglingReview, bad)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeInvalidInput, apperrors.CodeOf(err))

	var ve *ValidationErrors
	require.ErrorAs(t, err, &ve)
	assert.Len(t, ve.Errors, 4)
}
