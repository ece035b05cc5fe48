package store

import (
	"context"
	"slices"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/hyperterse/seeder/core/domain"
	apperrors "github.com/hyperterse/seeder/core/shared/errors"
)

// MemoryStore is an in-process StoreGateway used for dry runs and tests.
// Records are stored as marshalled BSON; unique indexes and _id are enforced.
type MemoryStore struct {
	mu          sync.Mutex
	collections map[string][]bson.Raw
	indexes     map[string][]domain.IndexSpec
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		collections: make(map[string][]bson.Raw),
		indexes:     make(map[string][]domain.IndexSpec),
	}
}

var idIndex = domain.IndexSpec{Label: "_id", Keys: bson.D{{Key: "_id", Value: 1}}, Unique: true}

// Name implements StoreGateway
func (s *MemoryStore) Name() string {
	return "memory"
}

func (s *MemoryStore) touch(collection string) {
	if _, ok := s.collections[collection]; !ok {
		s.collections[collection] = nil
	}
}

// Clear implements StoreGateway. Indexes survive, matching deleteMany.
func (s *MemoryStore) Clear(ctx context.Context, collection string) error {
	if err := ctx.Err(); err != nil {
		return apperrors.WrapError(apperrors.ErrCodeConnectivity, "memory clear cancelled", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.collections[collection]; ok {
		s.collections[collection] = nil
	}
	return nil
}

// InsertMany implements StoreGateway. A batch that violates a unique index
// is rejected as a whole.
func (s *MemoryStore) InsertMany(ctx context.Context, collection string, records []any) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, apperrors.WrapError(apperrors.ErrCodeConnectivity, "memory insert cancelled", err)
	}
	batch := make([]bson.Raw, 0, len(records))
	for _, record := range records {
		raw, err := bson.Marshal(record)
		if err != nil {
			return 0, apperrors.WrapError(apperrors.ErrCodeStore, "memory insert into "+collection+" failed", err)
		}
		batch = append(batch, raw)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch(collection)

	candidate := append(slices.Clone(s.collections[collection]), batch...)
	for _, spec := range s.uniqueIndexes(collection) {
		if key, dup := firstDuplicate(candidate, spec); dup {
			return 0, apperrors.NewAppError(apperrors.ErrCodeConstraintViolation,
				"E11000 duplicate key error collection: "+collection+" index: "+IndexName(spec.Keys)+" dup key: "+key, nil)
		}
	}
	s.collections[collection] = candidate
	return len(batch), nil
}

func (s *MemoryStore) uniqueIndexes(collection string) []domain.IndexSpec {
	specs := []domain.IndexSpec{idIndex}
	for _, spec := range s.indexes[collection] {
		if spec.Unique {
			specs = append(specs, spec)
		}
	}
	return specs
}

// firstDuplicate returns the first key seen twice under spec. Documents
// missing every indexed field are skipped.
func firstDuplicate(docs []bson.Raw, spec domain.IndexSpec) (string, bool) {
	seen := make(map[string]struct{}, len(docs))
	for _, doc := range docs {
		parts := make([]string, 0, len(spec.Keys))
		present := false
		for _, k := range spec.Keys {
			value, err := doc.LookupErr(strings.Split(k.Key, ".")...)
			if err != nil {
				parts = append(parts, "null")
				continue
			}
			present = true
			parts = append(parts, value.String())
		}
		if !present {
			continue
		}
		key := "{ " + strings.Join(parts, ", ") + " }"
		if _, ok := seen[key]; ok {
			return key, true
		}
		seen[key] = struct{}{}
	}
	return "", false
}

// Count implements StoreGateway
func (s *MemoryStore) Count(ctx context.Context, collection string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.collections[collection])), nil
}

// FindAll implements StoreGateway
func (s *MemoryStore) FindAll(ctx context.Context, collection string) ([]bson.Raw, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	docs := make([]bson.Raw, len(s.collections[collection]))
	for i, doc := range s.collections[collection] {
		docs[i] = slices.Clone(doc)
	}
	return docs, nil
}

// CreateIndex implements StoreGateway
func (s *MemoryStore) CreateIndex(ctx context.Context, spec domain.IndexSpec) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch(spec.Collection)

	name := IndexName(spec.Keys)
	for _, existing := range s.indexes[spec.Collection] {
		if IndexName(existing.Keys) == name {
			return false, nil
		}
		// One text index per collection.
		if spec.IsText() && existing.IsText() {
			return false, nil
		}
	}
	if spec.Unique {
		if key, dup := firstDuplicate(s.collections[spec.Collection], spec); dup {
			return false, apperrors.NewAppError(apperrors.ErrCodeConstraintViolation,
				"E11000 duplicate key error building index "+name+" dup key: "+key, nil)
		}
	}
	s.indexes[spec.Collection] = append(s.indexes[spec.Collection], spec)
	return true, nil
}

// ListIndexes implements StoreGateway
func (s *MemoryStore) ListIndexes(ctx context.Context, collection string) ([]domain.IndexInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.collections[collection]; !ok {
		return nil, nil
	}
	infos := []domain.IndexInfo{{Name: "_id_", Keys: []string{"_id"}}}
	for _, spec := range s.indexes[collection] {
		info := domain.IndexInfo{Name: IndexName(spec.Keys), Unique: spec.Unique, Text: spec.IsText()}
		if info.Text {
			info.Keys = []string{"_fts", "_ftsx"}
		} else {
			for _, k := range spec.Keys {
				info.Keys = append(info.Keys, k.Key)
			}
		}
		infos = append(infos, info)
	}
	return infos, nil
}

// ListCollections implements StoreGateway
func (s *MemoryStore) ListCollections(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.collections))
	for name := range s.collections {
		names = append(names, name)
	}
	slices.Sort(names)
	return names, nil
}

// Close implements StoreGateway
func (s *MemoryStore) Close() error {
	return nil
}
