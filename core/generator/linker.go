package generator

import (
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/hyperterse/seeder/core/domain"
	apperrors "github.com/hyperterse/seeder/core/shared/errors"
)

// maxRedraws bounds rejection sampling per line-item slot.
const maxRedraws = 32

// CustomerPool returns the customer-role subset of users.
func CustomerPool(users []domain.User) ([]domain.User, error) {
	customers := domain.Customers(users)
	if len(customers) == 0 {
		return nil, apperrors.EmptyInput("no users with role %q to place orders", domain.RoleCustomer)
	}
	return customers, nil
}

// PickDistinctProducts draws n pairwise-distinct products. n is capped at
// the catalog size. Each slot redraws on repeats up to maxRedraws times and
// then falls back to a uniform choice among the products not yet picked.
func PickDistinctProducts(r *Random, catalog []domain.Product, n int) ([]domain.Product, error) {
	if len(catalog) == 0 {
		return nil, apperrors.EmptyInput("cannot pick products from an empty catalog")
	}
	if n < 0 {
		return nil, apperrors.InvalidRange("item count %d is negative", n)
	}
	n = min(n, len(catalog))

	chosen := make(map[bson.ObjectID]bool, n)
	picked := make([]domain.Product, 0, n)
	for len(picked) < n {
		p := element(r, catalog)
		for attempt := 0; chosen[p.ID] && attempt < maxRedraws; attempt++ {
			p = element(r, catalog)
		}
		if chosen[p.ID] {
			remaining := make([]domain.Product, 0, len(catalog)-len(picked))
			for _, candidate := range catalog {
				if !chosen[candidate.ID] {
					remaining = append(remaining, candidate)
				}
			}
			p = element(r, remaining)
		}
		chosen[p.ID] = true
		picked = append(picked, p)
	}
	return picked, nil
}

// DuplicateEmails returns every email shared by more than one user, in
// first-seen order.
func DuplicateEmails(users []domain.User) []string {
	counts := make(map[string]int, len(users))
	var dups []string
	for _, u := range users {
		counts[u.Email]++
		if counts[u.Email] == 2 {
			dups = append(dups, u.Email)
		}
	}
	return dups
}

// EnsureUniqueEmails rewrites colliding emails in place by appending a
// counter to the local part (alice.smith@x -> alice.smith2@x). The first
// holder keeps the original. Returns the number of rewritten emails.
func EnsureUniqueEmails(users []domain.User) int {
	taken := make(map[string]bool, len(users))
	for _, u := range users {
		taken[u.Email] = true
	}
	seen := make(map[string]bool, len(users))
	rewritten := 0
	for i := range users {
		email := users[i].Email
		if !seen[email] {
			seen[email] = true
			continue
		}
		local, host, _ := strings.Cut(email, "@")
		for n := 2; ; n++ {
			candidate := fmt.Sprintf("%s%d@%s", local, n, host)
			if !taken[candidate] {
				users[i].Email = candidate
				taken[candidate] = true
				seen[candidate] = true
				rewritten++
				break
			}
		}
	}
	return rewritten
}

// ValidateReferences checks that reviews and orders only point at users and
// products in the given pools, that orders belong to customers, and that no
// order repeats a product.
func ValidateReferences(users []domain.User, products []domain.Product, reviews []domain.Review, orders []domain.Order) error {
	userRoles := make(map[bson.ObjectID]domain.Role, len(users))
	for _, u := range users {
		userRoles[u.ID] = u.Role
	}
	productIDs := make(map[bson.ObjectID]bool, len(products))
	for _, p := range products {
		productIDs[p.ID] = true
	}

	var problems []string
	for i, r := range reviews {
		if !productIDs[r.ProductID] {
			problems = append(problems, fmt.Sprintf("reviews[%d] references unknown product %s", i, r.ProductID.Hex()))
		}
		if _, ok := userRoles[r.UserID]; !ok {
			problems = append(problems, fmt.Sprintf("reviews[%d] references unknown user %s", i, r.UserID.Hex()))
		}
	}
	for i, o := range orders {
		role, ok := userRoles[o.UserID]
		switch {
		case !ok:
			problems = append(problems, fmt.Sprintf("orders[%d] references unknown user %s", i, o.UserID.Hex()))
		case role != domain.RoleCustomer:
			problems = append(problems, fmt.Sprintf("orders[%d] belongs to a %s", i, role))
		}
		inOrder := make(map[bson.ObjectID]bool, len(o.Items))
		for j, item := range o.Items {
			if !productIDs[item.ProductID] {
				problems = append(problems, fmt.Sprintf("orders[%d].items[%d] references unknown product %s", i, j, item.ProductID.Hex()))
			}
			if inOrder[item.ProductID] {
				problems = append(problems, fmt.Sprintf("orders[%d].items[%d] repeats product %s", i, j, item.ProductID.Hex()))
			}
			inOrder[item.ProductID] = true
		}
	}
	if len(problems) > 0 {
		return apperrors.NewAppError(apperrors.ErrCodeInvalidInput, "dangling references in generated data", &ValidationErrors{Errors: problems})
	}
	return nil
}
