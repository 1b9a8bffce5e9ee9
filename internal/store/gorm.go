package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bulletin/internal/observability"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Record is the single table backing the persistent store. The composite
// primary key addresses top-level aggregates only; the value column holds
// the serialized record.
type Record struct {
	Bucket    string `gorm:"primaryKey;size:64"`
	Key       string `gorm:"primaryKey;size:255"`
	Value     []byte `gorm:"not null"`
	UpdatedAt time.Time
}

// Gorm is a KV persisted through GORM (SQLite in tests and development,
// PostgreSQL in deployment).
type Gorm struct {
	db *gorm.DB
}

// NewGorm returns a KV backed by db. The records table must be migrated
// beforehand (database.Connect does this).
func NewGorm(db *gorm.DB) *Gorm {
	return &Gorm{db: db}
}

func (g *Gorm) Get(ctx context.Context, bucket, key string) ([]byte, bool, error) {
	defer observability.TrackStoreOp("get", bucket)()

	var rec Record
	err := g.db.WithContext(ctx).
		Where("bucket = ? AND key = ?", bucket, key).
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("store get %s/%s: %w", bucket, key, err)
	}
	return rec.Value, true, nil
}

func (g *Gorm) Put(ctx context.Context, bucket, key string, value []byte) error {
	defer observability.TrackStoreOp("put", bucket)()

	rec := Record{Bucket: bucket, Key: key, Value: value}
	err := g.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "bucket"}, {Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&rec).Error
	if err != nil {
		return fmt.Errorf("store put %s/%s: %w", bucket, key, err)
	}
	return nil
}

func (g *Gorm) ForEach(ctx context.Context, bucket string, fn func(key string, value []byte) error) error {
	defer observability.TrackStoreOp("foreach", bucket)()

	var recs []Record
	err := g.db.WithContext(ctx).
		Where("bucket = ?", bucket).
		Find(&recs).Error
	if err != nil {
		return fmt.Errorf("store foreach %s: %w", bucket, err)
	}
	for _, rec := range recs {
		if err := fn(rec.Key, rec.Value); err != nil {
			return err
		}
	}
	return nil
}
