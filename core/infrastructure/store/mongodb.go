package store

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	mongoOptions "go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"github.com/hyperterse/seeder/core/domain"
	"github.com/hyperterse/seeder/core/logger"
	apperrors "github.com/hyperterse/seeder/core/shared/errors"
)

// Server error codes for an index that already exists under different options.
const (
	codeIndexOptionsConflict  = 85
	codeIndexKeySpecsConflict = 86
)

// MongoStore implements the StoreGateway interface for MongoDB
type MongoStore struct {
	client   *mongo.Client
	db       *mongo.Database
	database string
	log      *logger.Logger
}

// NewMongoStore connects to uri, pings the primary and binds to database.
// Extra options are merged into the URI query string.
func NewMongoStore(ctx context.Context, uri, database string, options map[string]string) (*MongoStore, error) {
	log := logger.New("store:mongodb")
	log.Debugf("Opening MongoDB connection")

	connectionString, err := mergeURIOptions(uri, options)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrCodeConfiguration, "failed to parse mongodb connection string", err)
	}

	client, err := mongo.Connect(mongoOptions.Client().ApplyURI(connectionString))
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrCodeConnectivity, "failed to connect to mongodb", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	log.Debugf("Testing connection with ping")
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, apperrors.WrapError(apperrors.ErrCodeConnectivity, "failed to ping mongodb", err)
	}

	log.Debugf("MongoDB connection opened successfully")
	return &MongoStore{
		client:   client,
		db:       client.Database(database),
		database: database,
		log:      log,
	}, nil
}

func mergeURIOptions(connectionString string, options map[string]string) (string, error) {
	if len(options) == 0 {
		return connectionString, nil
	}
	if !strings.HasPrefix(connectionString, "mongodb://") && !strings.HasPrefix(connectionString, "mongodb+srv://") {
		return connectionString, nil
	}
	parsedURL, err := url.Parse(connectionString)
	if err != nil {
		return "", err
	}
	query := parsedURL.Query()
	for key, value := range options {
		query.Set(key, value)
	}
	parsedURL.RawQuery = query.Encode()
	return parsedURL.String(), nil
}

// Name implements StoreGateway
func (m *MongoStore) Name() string {
	return "mongodb"
}

// Database returns the bound database name.
func (m *MongoStore) Database() string {
	return m.database
}

// Clear implements StoreGateway
func (m *MongoStore) Clear(ctx context.Context, collection string) error {
	res, err := m.db.Collection(collection).DeleteMany(ctx, bson.D{})
	if err != nil {
		return classify(err, "clear", collection)
	}
	m.log.Debugf("Deleted %d documents from %s", res.DeletedCount, collection)
	return nil
}

// InsertMany implements StoreGateway
func (m *MongoStore) InsertMany(ctx context.Context, collection string, records []any) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}
	res, err := m.db.Collection(collection).InsertMany(ctx, records)
	if err != nil {
		return 0, classify(err, "insert into", collection)
	}
	return len(res.InsertedIDs), nil
}

// Count implements StoreGateway
func (m *MongoStore) Count(ctx context.Context, collection string) (int64, error) {
	n, err := m.db.Collection(collection).CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, classify(err, "count", collection)
	}
	return n, nil
}

// FindAll implements StoreGateway
func (m *MongoStore) FindAll(ctx context.Context, collection string) ([]bson.Raw, error) {
	cursor, err := m.db.Collection(collection).Find(ctx, bson.D{})
	if err != nil {
		return nil, classify(err, "find in", collection)
	}
	defer cursor.Close(ctx)

	var docs []bson.Raw
	for cursor.Next(ctx) {
		docs = append(docs, slices.Clone(cursor.Current))
	}
	if err := cursor.Err(); err != nil {
		return nil, classify(err, "read cursor of", collection)
	}
	return docs, nil
}

// CreateIndex implements StoreGateway. An index with the same name, or a
// conflicting definition of it, counts as already present.
func (m *MongoStore) CreateIndex(ctx context.Context, spec domain.IndexSpec) (bool, error) {
	existing, err := m.ListIndexes(ctx, spec.Collection)
	if err != nil {
		return false, err
	}
	name := IndexName(spec.Keys)
	for _, idx := range existing {
		if idx.Name == name {
			return false, nil
		}
	}

	model := mongo.IndexModel{Keys: spec.Keys}
	if spec.Unique {
		model.Options = mongoOptions.Index().SetUnique(true)
	}
	if _, err := m.db.Collection(spec.Collection).Indexes().CreateOne(ctx, model); err != nil {
		var serverErr mongo.ServerError
		if errors.As(err, &serverErr) && (serverErr.HasErrorCode(codeIndexOptionsConflict) || serverErr.HasErrorCode(codeIndexKeySpecsConflict)) {
			m.log.Debugf("Index %s already exists with different options: %v", spec.Describe(), err)
			return false, nil
		}
		return false, classify(err, "create index on", spec.Collection)
	}
	return true, nil
}

type indexDocument struct {
	Name             string `bson:"name"`
	Key              bson.D `bson:"key"`
	Unique           bool   `bson:"unique"`
	TextIndexVersion any    `bson:"textIndexVersion"`
}

// ListIndexes implements StoreGateway
func (m *MongoStore) ListIndexes(ctx context.Context, collection string) ([]domain.IndexInfo, error) {
	cursor, err := m.db.Collection(collection).Indexes().List(ctx)
	if err != nil {
		var serverErr mongo.ServerError
		// NamespaceNotFound: the collection does not exist yet.
		if errors.As(err, &serverErr) && serverErr.HasErrorCode(26) {
			return nil, nil
		}
		return nil, classify(err, "list indexes of", collection)
	}
	defer cursor.Close(ctx)

	var infos []domain.IndexInfo
	for cursor.Next(ctx) {
		var doc indexDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, apperrors.WrapError(apperrors.ErrCodeStore, "mongodb decode failed", err)
		}
		keys := make([]string, len(doc.Key))
		for i, k := range doc.Key {
			keys[i] = k.Key
		}
		infos = append(infos, domain.IndexInfo{
			Name:   doc.Name,
			Keys:   keys,
			Unique: doc.Unique,
			Text:   doc.TextIndexVersion != nil,
		})
	}
	if err := cursor.Err(); err != nil {
		return nil, classify(err, "read indexes of", collection)
	}
	return infos, nil
}

// ListCollections implements StoreGateway
func (m *MongoStore) ListCollections(ctx context.Context) ([]string, error) {
	names, err := m.db.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		return nil, classify(err, "list collections of", m.database)
	}
	slices.Sort(names)
	return names, nil
}

// Close closes the MongoDB connection
func (m *MongoStore) Close() error {
	if m.client == nil {
		return nil
	}
	m.log.Debugf("Closing MongoDB connection")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := m.client.Disconnect(ctx); err != nil {
		return apperrors.WrapError(apperrors.ErrCodeConnectivity, "failed to close mongodb connection", err)
	}
	m.log.Debugf("MongoDB connection closed")
	return nil
}

// classify maps a driver error onto the store error kinds.
func classify(err error, op, target string) error {
	message := fmt.Sprintf("mongodb %s %s failed", op, target)
	switch {
	case mongo.IsDuplicateKeyError(err):
		return apperrors.WrapError(apperrors.ErrCodeConstraintViolation, message, err)
	case mongo.IsNetworkError(err), mongo.IsTimeout(err),
		errors.Is(err, mongo.ErrClientDisconnected), errors.Is(err, context.DeadlineExceeded):
		return apperrors.WrapError(apperrors.ErrCodeConnectivity, message, err)
	default:
		return apperrors.WrapError(apperrors.ErrCodeStore, message, err)
	}
}
