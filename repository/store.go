// Package repository persists the catalog entities through gorm. Every
// operation addresses entities by their natural keys; surrogate IDs never
// leave this package except inside models.
package repository

import (
	"context"

	"gorm.io/gorm"
)

// Store is the entry point to the entity repositories. A Store obtained
// inside Transaction runs every call in that transaction.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Transaction runs fn in a single database transaction, committing when fn
// returns nil and rolling back otherwise.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}

func (s *Store) Artists() *Artists { return &Artists{db: s.db} }

func (s *Store) Albums() *Albums { return &Albums{db: s.db} }

func (s *Store) Tracks() *Tracks { return &Tracks{db: s.db} }

func (s *Store) Choreographies() *Choreographies { return &Choreographies{db: s.db} }
