package database

import (
	"context"
	"errors"
	"strings"

	"github.com/rpupo63/portfolio-backend/errs"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// KV is a flat namespace of JSON documents addressed by string keys.
type KV interface {
	// Get returns the stored document and whether the key exists.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	// Del removes key; a missing key is not an error.
	Del(ctx context.Context, key string) error
	// GetByPrefix returns every document whose key starts with prefix.
	GetByPrefix(ctx context.Context, prefix string) ([][]byte, error)
	Migrate(ctx context.Context) error
	Close() error
}

// kvEntry is one row of the kv_store table.
type kvEntry struct {
	Key   string         `gorm:"column:key;type:text;primaryKey"`
	Value datatypes.JSON `gorm:"column:value;not null"`
}

func (kvEntry) TableName() string { return "kv_store" }

// GormKV implements KV on a single two-column table.
type GormKV struct {
	db *gorm.DB
}

func NewGormKV(db *gorm.DB) *GormKV {
	return &GormKV{db}
}

func (k *GormKV) Migrate(ctx context.Context) error {
	if err := k.db.WithContext(ctx).AutoMigrate(&kvEntry{}); err != nil {
		return errs.NewDatabaseError("migrate", "kv store", err)
	}
	return nil
}

func (k *GormKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var entry kvEntry
	err := k.db.WithContext(ctx).Where(keyEquals(key)).Take(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errs.NewStorageFailure("get", key, err)
	}
	return []byte(entry.Value), true, nil
}

func (k *GormKV) Set(ctx context.Context, key string, value []byte) error {
	entry := kvEntry{Key: key, Value: datatypes.JSON(value)}
	err := k.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value"}),
		}).
		Create(&entry).Error
	if err != nil {
		return errs.NewStorageFailure("set", key, err)
	}
	return nil
}

func (k *GormKV) Del(ctx context.Context, key string) error {
	if err := k.db.WithContext(ctx).Where(keyEquals(key)).Delete(&kvEntry{}).Error; err != nil {
		return errs.NewStorageFailure("delete", key, err)
	}
	return nil
}

func (k *GormKV) GetByPrefix(ctx context.Context, prefix string) ([][]byte, error) {
	var entries []kvEntry
	err := k.db.WithContext(ctx).
		Where(`"key" LIKE ? ESCAPE '\'`, escapeLike(prefix)+"%").
		Find(&entries).Error
	if err != nil {
		return nil, errs.NewStorageFailure("scan", prefix, err)
	}

	values := make([][]byte, 0, len(entries))
	for _, e := range entries {
		values = append(values, []byte(e.Value))
	}
	return values, nil
}

func (k *GormKV) Close() error {
	return closeDB(k.db)
}

func keyEquals(key string) clause.Expression {
	return clause.Eq{Column: clause.Column{Name: "key"}, Value: key}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
