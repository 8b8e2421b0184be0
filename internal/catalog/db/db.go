// Package db stores collection snapshots in a relational database through GORM.
// Each record is kept as its original JSON document, so a snapshot read from the
// database is byte-for-byte the array that was imported.
package db

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/gartstein/catalog/internal/catalog/db/models"
	e "github.com/gartstein/catalog/internal/catalog/errors"
	catalog "github.com/gartstein/catalog/internal/catalog/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository struct {
	db *gorm.DB
}

type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// NewRepository connects to Postgres, retrying with exponential backoff while
// the database comes up, and migrates the schema.
func NewRepository(ctx context.Context, cfg *Config) (*Repository, error) {
	var db *gorm.DB
	connect := func() error {
		var err error
		db, err = gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
		return err
	}
	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = 30 * time.Second
	if err := backoff.Retry(connect, backoff.WithContext(b, ctx)); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return newRepository(db)
}

func newRepository(db *gorm.DB) (*Repository, error) {
	if err := db.AutoMigrate(&models.Document{}, &models.Import{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return &Repository{db: db}, nil
}

// Load returns the collection as a JSON array, in import order. A collection
// that was never imported is reported as unavailable, not as empty.
func (r *Repository) Load(ctx context.Context, collection catalog.Collection) ([]byte, error) {
	var docs []models.Document
	result := r.db.WithContext(ctx).
		Where("collection = ?", string(collection)).
		Order("position").
		Find(&docs)
	if result.Error != nil {
		return nil, fmt.Errorf("%w: load %s: %v", e.ErrUnavailable, collection, result.Error)
	}

	if len(docs) == 0 {
		exists, err := r.imported(ctx, collection)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, fmt.Errorf("%w: %s was never imported", e.ErrUnavailable, collection)
		}
	}

	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, d := range docs {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(d.Body)
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// Replace swaps the stored collection for the records of snapshot in one
// transaction. snapshot must be a JSON array; it returns the number of records stored.
func (r *Repository) Replace(ctx context.Context, collection catalog.Collection, snapshot []byte) (int, error) {
	var records []json.RawMessage
	if err := json.Unmarshal(snapshot, &records); err != nil {
		return 0, fmt.Errorf("%w: %s: %v", e.ErrInvalidInput, collection.FileName(), err)
	}

	err := r.WithTransaction(ctx, func(repo *Repository) error {
		if err := repo.db.Where("collection = ?", string(collection)).Delete(&models.Document{}).Error; err != nil {
			return err
		}
		if err := repo.markImported(collection, len(records)); err != nil {
			return err
		}
		if len(records) == 0 {
			return nil
		}

		docs := make([]models.Document, 0, len(records))
		for i, rec := range records {
			docs = append(docs, models.Document{
				Collection: string(collection),
				Position:   i,
				Body:       string(rec),
			})
		}
		return repo.db.CreateInBatches(docs, 500).Error
	})
	if err != nil {
		return 0, fmt.Errorf("failed to replace %s: %w", collection, err)
	}
	return len(records), nil
}

func (r *Repository) imported(ctx context.Context, collection catalog.Collection) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&models.Import{}).
		Where("collection = ?", string(collection)).
		Count(&count)
	if result.Error != nil {
		return false, fmt.Errorf("%w: load %s: %v", e.ErrUnavailable, collection, result.Error)
	}
	return count > 0, nil
}

func (r *Repository) markImported(collection catalog.Collection, records int) error {
	return r.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&models.Import{
		Collection: string(collection),
		Records:    records,
		ImportedAt: time.Now().UTC(),
	}).Error
}

func (r *Repository) WithTransaction(ctx context.Context, fn func(repo *Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Repository{db: tx})
	})
}

func (r *Repository) Close() error {
	db, err := r.db.DB()
	if err != nil {
		return err
	}
	return db.Close()
}

// HealthCheck pings the database.
func (r *Repository) HealthCheck(ctx context.Context) error {
	db, err := r.db.DB()
	if err != nil {
		return err
	}
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}
	return nil
}
