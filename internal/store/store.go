package store

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a row does not exist or belongs to
	// another user.
	ErrNotFound = errors.New("record not found")

	// ErrEntityInUse is returned when a reference entity is still
	// referenced by at least one trade.
	ErrEntityInUse = errors.New("entity is referenced by existing trades")
)

// Store is the data access layer. Every method performs one database
// operation, takes a context, and is scoped to a single user.
type Store struct {
	db *gorm.DB
}

// New creates a Store over an open gorm connection.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// InTx runs fn inside a single database transaction.
func (s *Store) InTx(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}

func translateErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
