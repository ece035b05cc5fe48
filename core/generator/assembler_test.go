package generator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/hyperterse/seeder/core/domain"
	apperrors "github.com/hyperterse/seeder/core/shared/errors"
)

func testOptions(seed uint64) Options {
	opts := DefaultOptions()
	opts.Seed = seed
	opts.Now = func() time.Time { return fixedNow }
	return opts
}

func TestAssembler_Assemble(t *testing.T) {
	a, err := NewAssembler(testOptions(31))
	require.NoError(t, err)

	ds, err := a.Assemble()
	require.NoError(t, err)

	assert.Len(t, ds.Users, 30)
	assert.Len(t, ds.Products, 10)
	assert.Len(t, ds.Orders, 50)
	assert.Empty(t, DuplicateEmails(ds.Users))

	perProduct := map[string]int{}
	customerIDs := map[string]bool{}
	for _, u := range domain.Customers(ds.Users) {
		customerIDs[u.ID.Hex()] = true
	}
	for _, r := range ds.Reviews {
		perProduct[r.ProductID.Hex()]++
		assert.True(t, customerIDs[r.UserID.Hex()], "reviews are written by customers")
	}
	assert.Len(t, perProduct, 10)
	for _, n := range perProduct {
		assert.GreaterOrEqual(t, n, 3)
		assert.LessOrEqual(t, n, 15)
	}

	require.NoError(t, ValidateReferences(ds.Users, ds.Products, ds.Reviews, ds.Orders))
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(ds.Users[0].Password), []byte(DefaultPassword)))
}

func TestAssembler_SameSeedSameCounts(t *testing.T) {
	first, err := NewAssembler(testOptions(32))
	require.NoError(t, err)
	second, err := NewAssembler(testOptions(32))
	require.NoError(t, err)

	a, err := first.Assemble()
	require.NoError(t, err)
	b, err := second.Assemble()
	require.NoError(t, err)

	assert.Equal(t, a.Counts(), b.Counts())
	assert.NotEqual(t, a.Users[0].ID, b.Users[0].ID, "identities are fresh per run")
	assert.Equal(t, a.Users[0].Email, b.Users[0].Email)
}

func TestAssembler_LooseEmailsReportDuplicates(t *testing.T) {
	opts := testOptions(33)
	opts.Users = 3000
	opts.StrictEmails = false
	a, err := NewAssembler(opts)
	require.NoError(t, err)

	ds, err := a.Core()
	require.NoError(t, err)

	assert.NotEmpty(t, ds.DuplicateEmails)
	assert.Zero(t, ds.RewrittenEmails)
}

func TestAssembler_DependentsRequireCustomers(t *testing.T) {
	a, err := NewAssembler(testOptions(34))
	require.NoError(t, err)
	core, err := a.Core()
	require.NoError(t, err)

	admins := make([]domain.User, len(core.Users))
	copy(admins, core.Users)
	for i := range admins {
		admins[i].Role = domain.RoleAdmin
	}

	_, err = a.Dependents(admins, core.Products)
	assert.True(t, apperrors.IsEmptyInput(err))
}

func TestNewAssembler_InvalidOptions(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Options)
	}{
		{"negative users", func(o *Options) { o.Users = -1 }},
		{"negative orders", func(o *Options) { o.Orders = -5 }},
		{"inverted review range", func(o *Options) { o.ReviewsMin, o.ReviewsMax = 10, 2 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			tt.mutate(&opts)
			_, err := NewAssembler(opts)
			assert.True(t, apperrors.IsInvalidRange(err))
		})
	}
}

func TestDataset_Records(t *testing.T) {
	a, err := NewAssembler(testOptions(35))
	require.NoError(t, err)
	ds, err := a.Assemble()
	require.NoError(t, err)

	for _, name := range domain.AllCollections {
		assert.Len(t, ds.Records(name), ds.Counts()[name], name)
	}
	assert.Nil(t, ds.Records("unknown"))
	_, ok := ds.Records(domain.CollectionOrders)[0].(domain.Order)
	assert.True(t, ok)
}
