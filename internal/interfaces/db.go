package interfaces

import (
	"context"
	"errors"
)

// ErrNotFound is returned by FindOne and FindOneAndUpdate when no document
// matches the filter.
var ErrNotFound = errors.New("document not found")

// Document is a generic interface to represent data that can be stored
// and retrieved from the database. It could be a struct, a map[string]interface{},
// or any type that can be marshaled/unmarshaled by the specific database driver.
type Document interface{}

// DBClient defines the interface for a generic document database client.
// It abstracts the operations the user repository needs from the driver.
type DBClient interface {
	// Connect establishes a connection to the database.
	Connect(ctx context.Context, dsn string) error

	// Disconnect closes the database connection.
	Disconnect(ctx context.Context) error

	// InsertOne inserts a single document into the named collection and
	// returns the store-assigned ID of the inserted document.
	InsertOne(ctx context.Context, collectionName string, document Document) (interface{}, error)

	// FindOne retrieves a single document matching the filter and decodes
	// it into result. ErrNotFound is returned when nothing matches.
	FindOne(ctx context.Context, collectionName string, filter Document, result Document) error

	// FindMany retrieves all documents matching the filter.
	FindMany(ctx context.Context, collectionName string, filter Document) ([]Document, error)

	// UpdateOne applies update to a single document matching the filter.
	// Returns the number of documents the update matched. The update is a
	// single atomic read-modify-write at the store, never a caller-side
	// read-then-write.
	UpdateOne(ctx context.Context, collectionName string, filter Document, update Document) (int64, error)

	// FindOneAndUpdate atomically applies update to a single document
	// matching the filter and decodes the post-update document into
	// result. ErrNotFound is returned when nothing matches.
	FindOneAndUpdate(ctx context.Context, collectionName string, filter Document, update Document, result Document) error

	// EnsureSchema creates the collection/table level schema artifacts the
	// repository depends on (unique indexes, tables). The schema shape is
	// driver specific.
	EnsureSchema(ctx context.Context, collectionName string, schema Document) error

	// Ping checks the health of the database connection.
	Ping(ctx context.Context) error
}
