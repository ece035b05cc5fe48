package generator

import (
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/hyperterse/seeder/core/domain"
	apperrors "github.com/hyperterse/seeder/core/shared/errors"
)

// DefaultPassword is the plaintext behind every seeded user's hash.
const DefaultPassword = "password123"

// Options controls dataset size and shape.
type Options struct {
	Users        int
	Orders       int
	ReviewsMin   int
	ReviewsMax   int
	Catalog      []domain.ProductTemplate
	StrictEmails bool
	Seed         uint64
	Now          func() time.Time
}

// DefaultOptions mirrors the classroom defaults: 30 users, 50 orders, 3-15 reviews per product.
func DefaultOptions() Options {
	return Options{
		Users:        30,
		Orders:       50,
		ReviewsMin:   3,
		ReviewsMax:   15,
		Catalog:      DefaultCatalog(),
		StrictEmails: true,
	}
}

// Dataset holds the four collections produced by a run.
type Dataset struct {
	Users    []domain.User
	Products []domain.Product
	Reviews  []domain.Review
	Orders   []domain.Order

	// RewrittenEmails counts collisions resolved by suffixing.
	RewrittenEmails int
	// DuplicateEmails lists collisions left in place when strict emails are off.
	DuplicateEmails []string
}

// Records returns the collection's documents ready for a bulk insert.
func (d *Dataset) Records(collection string) []any {
	switch collection {
	case domain.CollectionUsers:
		return toRecords(d.Users)
	case domain.CollectionProducts:
		return toRecords(d.Products)
	case domain.CollectionReviews:
		return toRecords(d.Reviews)
	case domain.CollectionOrders:
		return toRecords(d.Orders)
	default:
		return nil
	}
}

// Counts returns the number of records per collection.
func (d *Dataset) Counts() map[string]int {
	return map[string]int{
		domain.CollectionUsers:    len(d.Users),
		domain.CollectionProducts: len(d.Products),
		domain.CollectionReviews:  len(d.Reviews),
		domain.CollectionOrders:   len(d.Orders),
	}
}

func toRecords[T any](items []T) []any {
	out := make([]any, len(items))
	for i := range items {
		out[i] = items[i]
	}
	return out
}

// Assembler runs the generators in dependency order. It performs no I/O.
type Assembler struct {
	opts Options
	gen  *Generator
}

// NewAssembler validates opts and hashes the shared credential once.
func NewAssembler(opts Options) (*Assembler, error) {
	if opts.Users < 0 || opts.Orders < 0 {
		return nil, apperrors.InvalidRange("users (%d) and orders (%d) must not be negative", opts.Users, opts.Orders)
	}
	if opts.ReviewsMin < 0 || opts.ReviewsMin > opts.ReviewsMax {
		return nil, apperrors.InvalidRange("reviews per product range [%d, %d] is invalid", opts.ReviewsMin, opts.ReviewsMax)
	}
	if opts.Catalog == nil {
		opts.Catalog = DefaultCatalog()
	}
	hash, err := HashPassword(DefaultPassword)
	if err != nil {
		return nil, err
	}
	return &Assembler{
		opts: opts,
		gen:  New(NewRandom(opts.Seed), opts.Now, hash),
	}, nil
}

// HashPassword bcrypt-hashes plain at the minimum cost.
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.MinCost)
	if err != nil {
		return "", apperrors.WrapError(apperrors.ErrCodeInternalError, "failed to hash placeholder password", err)
	}
	return string(hash), nil
}

// Core runs phase 1: users and products, which depend on nothing.
func (a *Assembler) Core() (*Dataset, error) {
	users, err := a.gen.GenerateUsers(a.opts.Users)
	if err != nil {
		return nil, fmt.Errorf("generate users: %w", err)
	}
	products, err := a.gen.GenerateProducts(a.opts.Catalog)
	if err != nil {
		return nil, fmt.Errorf("generate products: %w", err)
	}

	ds := &Dataset{Users: users, Products: products}
	if a.opts.StrictEmails {
		ds.RewrittenEmails = EnsureUniqueEmails(ds.Users)
	} else {
		ds.DuplicateEmails = DuplicateEmails(ds.Users)
	}
	return ds, nil
}

// Dependents runs phase 2 against phase-1 output: reviews for every product
// by customers, then orders.
func (a *Assembler) Dependents(users []domain.User, products []domain.Product) (*Dataset, error) {
	customers, err := CustomerPool(users)
	if err != nil {
		return nil, fmt.Errorf("generate reviews: %w", err)
	}
	customerIDs := domain.UserIDs(customers)

	var reviews []domain.Review
	for _, p := range products {
		count, err := a.gen.rnd.IntInRange(a.opts.ReviewsMin, a.opts.ReviewsMax)
		if err != nil {
			return nil, err
		}
		batch, err := a.gen.GenerateReviews(p.Ref(), customerIDs, count)
		if err != nil {
			return nil, fmt.Errorf("generate reviews: %w", err)
		}
		reviews = append(reviews, batch...)
	}

	orders, err := a.gen.GenerateOrders(users, products, a.opts.Orders)
	if err != nil {
		return nil, fmt.Errorf("generate orders: %w", err)
	}

	if err := ValidateReferences(users, products, reviews, orders); err != nil {
		return nil, err
	}
	return &Dataset{Reviews: reviews, Orders: orders}, nil
}

// Assemble runs both phases and returns all four collections.
func (a *Assembler) Assemble() (*Dataset, error) {
	core, err := a.Core()
	if err != nil {
		return nil, err
	}
	deps, err := a.Dependents(core.Users, core.Products)
	if err != nil {
		return nil, err
	}
	core.Reviews = deps.Reviews
	core.Orders = deps.Orders
	return core, nil
}
