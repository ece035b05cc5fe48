package seeder

import (
	"context"
	"strings"

	"github.com/hyperterse/seeder/core/domain"
	"github.com/hyperterse/seeder/core/logger"
)

var coreSampleQueries = []any{
	"Sample queries to try:",
	`  db.users.find({ role: "customer" })`,
	`  db.products.find({ category: "Electronics" })`,
	`  db.products.find({ price: { $lt: 500 } })`,
	`  db.users.countDocuments({ status: "active" })`,
}

// SeedCore replaces users and products: clear both, create the unique and
// text indexes, then insert a freshly generated batch of each.
func (s *Seeder) SeedCore(ctx context.Context) (*Report, error) {
	log := logger.New("seed:core")
	return s.runStage(ctx, StageCore, log, func(ctx context.Context, report *Report) error {
		if err := s.clear(ctx, log, domain.CollectionUsers, domain.CollectionProducts); err != nil {
			return err
		}

		for _, spec := range domain.CoreIndexes() {
			if _, err := s.store.CreateIndex(ctx, spec); err != nil {
				return err
			}
			log.Debugf("Index %s ensured", spec.Describe())
		}
		log.Infof("Indexes created")

		ds, err := s.assembler.Core()
		if err != nil {
			return err
		}
		if ds.RewrittenEmails > 0 {
			log.Debugf("Suffixed %d colliding emails", ds.RewrittenEmails)
		}
		if len(ds.DuplicateEmails) > 0 {
			log.Warnf("Generated duplicate emails, the unique index will reject them: %s", strings.Join(ds.DuplicateEmails, ", "))
		}

		if err := s.insert(ctx, log, report, domain.CollectionUsers, ds.Records(domain.CollectionUsers)); err != nil {
			return err
		}
		if err := s.insert(ctx, log, report, domain.CollectionProducts, ds.Records(domain.CollectionProducts)); err != nil {
			return err
		}

		log.Infof("Seed summary:")
		log.Infof("  Users: %d", report.Inserted[domain.CollectionUsers])
		log.Infof("  Products: %d", report.Inserted[domain.CollectionProducts])
		log.Infof("  Total documents: %d", report.Total())
		log.Successf("Core seed data complete")
		log.Multiline(coreSampleQueries)
		return nil
	})
}
