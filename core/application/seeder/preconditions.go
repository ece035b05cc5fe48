package seeder

import (
	"context"
	"strings"

	"github.com/hyperterse/seeder/core/domain/interfaces"
	apperrors "github.com/hyperterse/seeder/core/shared/errors"
)

// CheckPreconditions counts each collection and fails with
// PreconditionNotMet when any of them is empty. hint names the stage to
// run first.
func CheckPreconditions(ctx context.Context, store interfaces.StoreGateway, hint string, collections ...string) (map[string]int64, error) {
	counts := make(map[string]int64, len(collections))
	var empty []string
	for _, c := range collections {
		n, err := store.Count(ctx, c)
		if err != nil {
			return nil, err
		}
		counts[c] = n
		if n == 0 {
			empty = append(empty, c)
		}
	}
	if len(empty) > 0 {
		return counts, apperrors.PreconditionNotMet("no documents in %s; run %s first", strings.Join(empty, ", "), hint)
	}
	return counts, nil
}
