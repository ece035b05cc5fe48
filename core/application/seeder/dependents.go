package seeder

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/hyperterse/seeder/core/domain"
	"github.com/hyperterse/seeder/core/logger"
	apperrors "github.com/hyperterse/seeder/core/shared/errors"
)

var dependentSampleQueries = []any{
	"Sample aggregation queries to try:",
	"  // Count reviews by rating",
	`  db.reviews.aggregate([ { $group: { _id: "$rating", count: { $sum: 1 } } } ])`,
	"  // Total revenue by order status",
	`  db.orders.aggregate([ { $group: { _id: "$status", revenue: { $sum: "$total" } } } ])`,
	"  // Average order value by month",
	`  db.orders.aggregate([ { $group: { _id: { $month: "$createdAt" }, avgValue: { $avg: "$total" } } } ])`,
}

// SeedDependents replaces reviews and orders for the users and products
// already in the store. With either of those empty the stage is skipped.
func (s *Seeder) SeedDependents(ctx context.Context) (*Report, error) {
	log := logger.New("seed:dependents")
	return s.runStage(ctx, StageDependents, log, func(ctx context.Context, report *Report) error {
		counts, err := CheckPreconditions(ctx, s.store, "the core stage",
			domain.CollectionUsers, domain.CollectionProducts)
		if err != nil {
			return err
		}
		log.Infof("Found %d users and %d products", counts[domain.CollectionUsers], counts[domain.CollectionProducts])
		for c, n := range counts {
			report.Counts[c] = n
		}

		users, err := load[domain.User](ctx, s, domain.CollectionUsers)
		if err != nil {
			return err
		}
		products, err := load[domain.Product](ctx, s, domain.CollectionProducts)
		if err != nil {
			return err
		}

		if err := s.clear(ctx, log, domain.CollectionReviews, domain.CollectionOrders); err != nil {
			return err
		}

		ds, err := s.assembler.Dependents(users, products)
		if err != nil {
			return err
		}
		if err := s.insert(ctx, log, report, domain.CollectionReviews, ds.Records(domain.CollectionReviews)); err != nil {
			return err
		}
		if err := s.insert(ctx, log, report, domain.CollectionOrders, ds.Records(domain.CollectionOrders)); err != nil {
			return err
		}

		for _, spec := range domain.DependentIndexes() {
			if _, err := s.store.CreateIndex(ctx, spec); err != nil {
				return err
			}
			log.Debugf("Index %s ensured", spec.Describe())
		}
		log.Infof("Indexes created")

		stats := ComputeStats(users, ds.Reviews, ds.Orders)
		report.Stats = &stats

		log.Infof("Seed summary:")
		log.Infof("  Users: %d (%d customers)", len(users), stats.Customers)
		log.Infof("  Products: %d", len(products))
		log.Infof("  Reviews: %d", report.Inserted[domain.CollectionReviews])
		log.Infof("  Orders: %d", report.Inserted[domain.CollectionOrders])
		log.Infof("  Total revenue: $%.2f", stats.TotalRevenue)
		log.Infof("  Avg order value: $%.2f", stats.AvgOrderValue)
		log.Infof("  Avg rating: %.2f/5.0", stats.AvgRating)
		log.Successf("Dependent seed data complete")
		log.Multiline(dependentSampleQueries)
		return nil
	})
}

// load reads and decodes every document in collection.
func load[T any](ctx context.Context, s *Seeder, collection string) ([]T, error) {
	docs, err := s.store.FindAll(ctx, collection)
	if err != nil {
		return nil, err
	}
	out := make([]T, len(docs))
	for i, doc := range docs {
		if err := bson.Unmarshal(doc, &out[i]); err != nil {
			return nil, apperrors.WrapError(apperrors.ErrCodeStore, fmt.Sprintf("failed to decode %s document %d", collection, i), err)
		}
	}
	return out, nil
}
