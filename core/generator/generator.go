package generator

import (
	"fmt"
	"maps"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/hyperterse/seeder/core/domain"
	apperrors "github.com/hyperterse/seeder/core/shared/errors"
)

const day = 24 * time.Hour

// Generator builds entity records. It holds no state beyond its random
// source and clock.
type Generator struct {
	rnd          *Random
	now          func() time.Time
	passwordHash string
}

// New returns a Generator. now defaults to time.Now.
func New(rnd *Random, now func() time.Time, passwordHash string) *Generator {
	if now == nil {
		now = time.Now
	}
	return &Generator{rnd: rnd, now: now, passwordHash: passwordHash}
}

func date(year int, month time.Month, dayOfMonth int) time.Time {
	return time.Date(year, month, dayOfMonth, 0, 0, 0, 0, time.UTC)
}

// window returns [start, now], or [start, start] when the clock is earlier than start.
func (g *Generator) window(start time.Time) (time.Time, time.Time) {
	end := g.now().UTC()
	if end.Before(start) {
		end = start
	}
	return start, end
}

// GenerateUsers produces count independent users. Emails come from small
// name pools and may collide; see EnsureUniqueEmails.
func (g *Generator) GenerateUsers(count int) ([]domain.User, error) {
	if count < 0 {
		return nil, apperrors.InvalidRange("user count %d is negative", count)
	}
	users := make([]domain.User, 0, count)
	for range count {
		u, err := g.generateUser()
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, nil
}

func (g *Generator) generateUser() (domain.User, error) {
	first := element(g.rnd, firstNames)
	last := element(g.rnd, lastNames)
	c := element(g.rnd, cities)

	role, err := WeightedChoice(g.rnd, roleWeights)
	if err != nil {
		return domain.User{}, err
	}
	status := domain.StatusInactive
	if g.rnd.Chance(0.9) {
		status = domain.StatusActive
	}

	createdAt, err := g.rnd.DateInRange(date(2023, time.January, 1), date(2024, time.January, 1))
	if err != nil {
		return domain.User{}, err
	}
	lastLogin, err := g.rnd.DateInRange(g.window(date(2024, time.January, 1)))
	if err != nil {
		return domain.User{}, err
	}

	return domain.User{
		ID:       bson.NewObjectID(),
		Email:    g.email(first, last),
		Password: g.passwordHash,
		Name:     domain.Name{First: first, Last: last},
		Phone:    fmt.Sprintf("+1-555-%04d", g.rnd.between(1000, 9999)),
		Address: domain.Address{
			Street:  fmt.Sprintf("%d %s", g.rnd.between(100, 9999), element(g.rnd, streets)),
			City:    c.name,
			State:   c.state,
			ZipCode: c.zip,
			Country: "USA",
		},
		Preferences: domain.Preferences{
			Newsletter:    g.rnd.Chance(0.5),
			Notifications: g.rnd.Chance(0.7),
			Currency:      "USD",
			Language:      "en",
		},
		Role:      role,
		Status:    status,
		CreatedAt: createdAt,
		LastLogin: lastLogin,
	}, nil
}

func (g *Generator) email(first, last string) string {
	return fmt.Sprintf("%s.%s@%s", strings.ToLower(first), strings.ToLower(last), element(g.rnd, emailDomains))
}

// GenerateProducts expands catalog templates into full products.
func (g *Generator) GenerateProducts(catalog []domain.ProductTemplate) ([]domain.Product, error) {
	if len(catalog) == 0 {
		return nil, apperrors.EmptyInput("product catalog is empty")
	}
	now := g.now().UTC()
	products := make([]domain.Product, 0, len(catalog))
	for _, t := range catalog {
		createdAt, err := g.rnd.DateInRange(date(2023, time.July, 1), date(2024, time.January, 1))
		if err != nil {
			return nil, err
		}
		ratingCount, err := g.rnd.IntInRange(0, 250)
		if err != nil {
			return nil, err
		}
		products = append(products, domain.Product{
			ID:             bson.NewObjectID(),
			SKU:            t.SKU,
			Name:           t.Name,
			Category:       t.Category,
			Subcategory:    t.Subcategory,
			Brand:          t.Brand,
			Price:          t.Price,
			CompareAtPrice: cloneFloat(t.CompareAtPrice),
			Description:    t.Description,
			Tags:           append([]string(nil), t.Tags...),
			Specifications: maps.Clone(t.Specifications),
			Stock:          t.Stock,
			Featured:       t.Featured,
			Rating: domain.Rating{
				Average: round1(g.rnd.Float64()*2 + 3),
				Count:   ratingCount,
			},
			Images:    ImageURLs(t.SKU),
			Status:    domain.StatusActive,
			CreatedAt: createdAt,
			UpdatedAt: now,
		})
	}
	return products, nil
}

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

// ImageURLs derives the two image references for a SKU.
func ImageURLs(sku string) []string {
	base := strings.ToLower(sku)
	return []string{
		fmt.Sprintf("https://example.com/images/%s-1.jpg", base),
		fmt.Sprintf("https://example.com/images/%s-2.jpg", base),
	}
}

// GenerateReviews produces count reviews of product written by users drawn
// from userPool.
func (g *Generator) GenerateReviews(product domain.ProductRef, userPool []bson.ObjectID, count int) ([]domain.Review, error) {
	if len(userPool) == 0 {
		return nil, apperrors.EmptyInput("cannot review %q: user pool is empty", product.Name)
	}
	if count < 0 {
		return nil, apperrors.InvalidRange("review count %d is negative", count)
	}
	reviews := make([]domain.Review, 0, count)
	for range count {
		rating, err := g.rnd.IntInRange(1, 5)
		if err != nil {
			return nil, err
		}
		tone := domain.ToneFor(rating)
		userID, err := PickOne(g.rnd, userPool)
		if err != nil {
			return nil, err
		}
		createdAt, err := g.rnd.DateInRange(g.window(date(2024, time.January, 1)))
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, domain.Review{
			ID:          bson.NewObjectID(),
			ProductID:   product.ID,
			ProductName: product.Name,
			UserID:      userID,
			Rating:      rating,
			Title:       ReviewTitle(tone),
			Comment:     element(g.rnd, ReviewComments(tone)),
			Verified:    g.rnd.Chance(0.8),
			Helpful:     g.rnd.between(0, 50),
			Reported:    false,
			CreatedAt:   createdAt,
			UpdatedAt:   createdAt,
		})
	}
	return reviews, nil
}

// GenerateOrders produces count orders placed by customers in users for
// products in catalog.
func (g *Generator) GenerateOrders(users []domain.User, catalog []domain.Product, count int) ([]domain.Order, error) {
	if count < 0 {
		return nil, apperrors.InvalidRange("order count %d is negative", count)
	}
	customers, err := CustomerPool(users)
	if err != nil {
		return nil, err
	}
	if len(catalog) == 0 {
		return nil, apperrors.EmptyInput("cannot build orders: product catalog is empty")
	}

	stamp := g.now().UnixMilli()
	orders := make([]domain.Order, 0, count)
	for i := range count {
		o, err := g.generateOrder(customers, catalog)
		if err != nil {
			return nil, err
		}
		o.OrderNumber = fmt.Sprintf("ORD-%d-%04d", stamp, i)
		orders = append(orders, o)
	}
	return orders, nil
}

func (g *Generator) generateOrder(customers []domain.User, catalog []domain.Product) (domain.Order, error) {
	customer, err := PickOne(g.rnd, customers)
	if err != nil {
		return domain.Order{}, err
	}
	itemCount, err := g.rnd.IntInRange(1, 4)
	if err != nil {
		return domain.Order{}, err
	}
	picked, err := PickDistinctProducts(g.rnd, catalog, itemCount)
	if err != nil {
		return domain.Order{}, err
	}

	items := make([]domain.LineItem, 0, len(picked))
	for _, p := range picked {
		quantity, err := g.rnd.IntInRange(1, 3)
		if err != nil {
			return domain.Order{}, err
		}
		items = append(items, domain.LineItem{
			ProductID:   p.ID,
			ProductName: p.Name,
			SKU:         p.SKU,
			Quantity:    quantity,
			Price:       p.Price,
			Total:       round2(p.Price * float64(quantity)),
		})
	}
	totals := ComputeTotals(items)

	status, err := WeightedChoice(g.rnd, orderStatusWeights)
	if err != nil {
		return domain.Order{}, err
	}
	createdAt, err := g.rnd.DateInRange(g.window(date(2024, time.January, 1)))
	if err != nil {
		return domain.Order{}, err
	}

	updatedAt := createdAt
	var shippedAt, deliveredAt *time.Time
	if status.HasShipped() {
		shipped := createdAt.Add(time.Duration(g.rnd.between(1, 3)) * day)
		shippedAt = &shipped
		updatedAt = shipped
	}
	if status == domain.OrderDelivered {
		delivered := shippedAt.Add(time.Duration(g.rnd.between(2, 7)) * day)
		deliveredAt = &delivered
		updatedAt = delivered
	}

	return domain.Order{
		ID:              bson.NewObjectID(),
		UserID:          customer.ID,
		Items:           items,
		Subtotal:        totals.Subtotal,
		Tax:             totals.Tax,
		Shipping:        totals.Shipping,
		Total:           totals.Total,
		Status:          status,
		ShippingAddress: customer.Address,
		PaymentMethod:   element(g.rnd, paymentMethods),
		CreatedAt:       createdAt,
		UpdatedAt:       updatedAt,
		ShippedAt:       shippedAt,
		DeliveredAt:     deliveredAt,
	}, nil
}
