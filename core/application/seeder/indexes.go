package seeder

import (
	"context"

	"github.com/hyperterse/seeder/core/domain"
	"github.com/hyperterse/seeder/core/logger"
)

var indexExercises = []any{
	"Ready for the advanced exercises:",
	"  - $lookup exercises (joins)",
	"  - $unwind exercises (array operations)",
	"  - Performance optimization",
	"  - Index usage and explain()",
	"Try these advanced queries:",
	"  // Join orders with customer info",
	`  db.orders.aggregate([ { $lookup: { from: "users", localField: "userId", foreignField: "_id", as: "customer" } }, { $limit: 5 } ])`,
	"  // Unwind order items",
	`  db.orders.aggregate([ { $unwind: "$items" }, { $group: { _id: "$items.productName", totalSold: { $sum: "$items.quantity" } } }, { $sort: { totalSold: -1 } } ])`,
	"  // Check index usage",
	`  db.orders.find({ status: "delivered" }).explain("executionStats")`,
}

// VerifyIndexes ensures the full performance index set on populated
// collections and lists every index. Skipped when any collection is empty.
func (s *Seeder) VerifyIndexes(ctx context.Context) (*Report, error) {
	log := logger.New("seed:indexes")
	return s.runStage(ctx, StageIndexes, log, func(ctx context.Context, report *Report) error {
		counts, err := CheckPreconditions(ctx, s.store, "the core and dependents stages", domain.AllCollections...)
		if err != nil {
			return err
		}
		report.Counts = counts
		log.Infof("Found existing data:")
		for _, c := range domain.AllCollections {
			log.Infof("  %s: %d", c, counts[c])
		}

		log.Infof("Verifying and creating indexes")
		for _, spec := range domain.PerformanceIndexes() {
			created, err := s.store.CreateIndex(ctx, spec)
			if err != nil {
				return err
			}
			if created {
				report.IndexesCreated++
				log.Successf("%s index created", spec.Describe())
			} else {
				report.IndexesVerified++
				log.Infof("%s index verified", spec.Describe())
			}
		}
		s.metrics.SetIndexes(report.IndexesCreated, report.IndexesVerified)

		report.Indexes = make(map[string][]string, len(domain.AllCollections))
		log.Infof("Index summary:")
		for _, c := range domain.AllCollections {
			infos, err := s.store.ListIndexes(ctx, c)
			if err != nil {
				return err
			}
			log.Infof("  %s (%d indexes):", c, len(infos))
			for _, info := range infos {
				report.Indexes[c] = append(report.Indexes[c], info.String())
				log.Infof("    - %s", info)
			}
		}
		log.Successf("Index setup complete")
		log.Multiline(indexExercises)
		return nil
	})
}
