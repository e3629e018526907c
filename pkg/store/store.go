// Package store provides persistence for generated layouts.
//
// A [Record] wraps a layout's export document with an identifier and
// timestamps so layouts can be retrieved later by API clients. Two backends
// are provided:
//   - memory: in-process storage for development and tests
//   - mongo: MongoDB-backed storage for server deployments
//
// The engine itself never touches a store; persistence is a thin shell
// around the immutable layout value.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/planhaus/planhaus/pkg/plan"
)

// Sentinel errors for store operations.
var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("not found")
)

// Record is a stored layout with identity and provenance.
type Record struct {
	ID        string        `json:"id" bson:"_id"`
	Name      string        `json:"name,omitempty" bson:"name,omitempty"`
	Document  plan.Document `json:"document" bson:"document"`
	SpaceHash string        `json:"space_hash,omitempty" bson:"space_hash,omitempty"`
	CreatedAt time.Time     `json:"created_at" bson:"created_at"`
}

// NewRecord creates a record with a generated id and the current time.
func NewRecord(name string, doc plan.Document, spaceHash string) *Record {
	return &Record{
		ID:        uuid.NewString(),
		Name:      name,
		Document:  doc,
		SpaceHash: spaceHash,
		CreatedAt: time.Now().UTC(),
	}
}

// Store is the interface for layout persistence backends.
type Store interface {
	// Get retrieves a record by id. Returns ErrNotFound if absent.
	Get(ctx context.Context, id string) (*Record, error)

	// Put stores a record, replacing any existing record with the same id.
	Put(ctx context.Context, rec *Record) error

	// Delete removes a record. Returns ErrNotFound if absent.
	Delete(ctx context.Context, id string) error

	// List returns up to limit records, newest first. A non-positive limit
	// returns all records.
	List(ctx context.Context, limit int) ([]*Record, error)

	// Close releases backend resources.
	Close(ctx context.Context) error
}
