// Package store persists plan records: named snapshots of quad trees with
// server-assigned ids. Two backends exist: a file store for CLI usage and
// MongoDB for server deployments.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/quadplan/quadplan/pkg/plan"
)

// Sentinel errors for store operations.
var (
	// ErrNotFound is returned when no record exists under an id.
	ErrNotFound = errors.New("record not found")

	// ErrBadID is returned for ids that are not UUIDs.
	ErrBadID = errors.New("invalid record id")
)

// Record is one stored plan.
type Record struct {
	ID        string         `json:"id" bson:"_id"`
	Name      string         `json:"name" bson:"name"`
	CreatedAt time.Time      `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time      `json:"updated_at" bson:"updated_at"`
	Snapshot  *plan.Snapshot `json:"snapshot" bson:"snapshot"`
}

// Store is the interface for plan persistence backends.
type Store interface {
	// Get retrieves a record by id. Returns ErrNotFound when absent.
	Get(ctx context.Context, id string) (*Record, error)

	// Put stores a record, replacing any existing one with the same id,
	// and refreshes its UpdatedAt stamp.
	Put(ctx context.Context, rec *Record) error

	// Delete removes a record. Returns ErrNotFound when absent.
	Delete(ctx context.Context, id string) error

	// List returns all records, newest first.
	List(ctx context.Context) ([]*Record, error)

	Close(ctx context.Context) error
}

// New creates a record with a fresh id and creation stamp.
func New(name string, s *plan.Snapshot) *Record {
	now := time.Now().UTC()
	return &Record{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
		Snapshot:  s,
	}
}

// checkID validates that id is a UUID, keeping backends free of
// path-traversal and injection concerns.
func checkID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrBadID
	}
	return nil
}
