// Package localstore is the stand-in for browser local storage: a sqlite
// table of fixed-key JSON blobs. The anonymous cart is its only tenant.
package localstore

import (
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/astralisweb/astralis-client/internal/pkg/logger"
)

type Blob struct {
	Key       string         `gorm:"primaryKey;column:key"`
	Value     datatypes.JSON `gorm:"column:value"`
	UpdatedAt time.Time      `gorm:"not null"`
}

func (Blob) TableName() string {
	return "local_blob"
}

type Store struct {
	db  *gorm.DB
	log *logger.Logger
}

func Open(log *logger.Logger, path string) (*Store, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open local store: %w", err)
	}
	if err := db.AutoMigrate(&Blob{}); err != nil {
		return nil, fmt.Errorf("migrate local store: %w", err)
	}
	return &Store{db: db, log: log.With("component", "LocalStore")}, nil
}

// Get returns the blob under key. Missing keys and read failures both
// report ok=false; local reads never fail loudly.
func (s *Store) Get(key string) ([]byte, bool) {
	var b Blob
	if err := s.db.First(&b, "key = ?", key).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			s.log.Warn("Local read failed, treating as absent", "key", key, "error", err)
		}
		return nil, false
	}
	return []byte(b.Value), true
}

func (s *Store) Put(key string, value []byte) error {
	b := Blob{Key: key, Value: datatypes.JSON(value), UpdatedAt: time.Now()}
	return s.db.Save(&b).Error
}

func (s *Store) Delete(key string) error {
	return s.db.Delete(&Blob{}, "key = ?", key).Error
}
