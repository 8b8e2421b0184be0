// Package models contains the database models of the catalog storage,
// configured to work using GORM as the ORM.
package models

import (
	"time"
)

// Document is one stored record of a collection. Body holds the record's JSON
// exactly as it was imported; Position keeps the collection order.
type Document struct {
	ID         uint   `gorm:"primaryKey"`
	Collection string `gorm:"size:32;not null;uniqueIndex:idx_collection_position"`
	Position   int    `gorm:"not null;uniqueIndex:idx_collection_position"`
	Body       string `gorm:"type:text;not null"`
	CreatedAt  time.Time
}

// Import records that a collection was imported, so an empty collection can be
// told apart from one that is missing.
type Import struct {
	Collection string `gorm:"primaryKey;size:32"`
	Records    int
	ImportedAt time.Time
}
