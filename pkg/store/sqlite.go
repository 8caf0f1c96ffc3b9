package store

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

const sqliteFile = "medtrack.db"

type kvEntry struct {
	Name      string `gorm:"primaryKey;column:name"`
	Value     string `gorm:"column:value;not null"`
	UpdatedAt time.Time
}

func (kvEntry) TableName() string {
	return "kv_entries"
}

type sqlitePersistence struct {
	db   *gorm.DB
	path string
}

func openSQLite(dbPath string) (*sqlitePersistence, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("store: create db directory: %w", err)
	}

	dsn := fmt.Sprintf("%s?_busy_timeout=5000", dbPath)
	database, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.New(
			log.New(os.Stderr, "\r\n", log.LstdFlags),
			gormlogger.Config{
				SlowThreshold:             time.Second,
				LogLevel:                  gormlogger.Warn,
				IgnoreRecordNotFoundError: true,
				Colorful:                  false,
			},
		),
	})
	if err != nil {
		return nil, fmt.Errorf("store: open sqlite: %w", err)
	}
	if err := database.AutoMigrate(&kvEntry{}); err != nil {
		return nil, fmt.Errorf("store: migrate sqlite: %w", err)
	}
	return &sqlitePersistence{db: database, path: dbPath}, nil
}

func (s *sqlitePersistence) Get(key string) (string, bool, error) {
	row := kvEntry{}
	result := s.db.Where("name = ?", key).Limit(1).Find(&row)
	if result.Error != nil {
		return "", false, fmt.Errorf("store: read %s: %w", key, result.Error)
	}
	if result.RowsAffected == 0 {
		return "", false, nil
	}
	return row.Value, true, nil
}

func (s *sqlitePersistence) Set(key, value string) error {
	row := kvEntry{Name: key, Value: value, UpdatedAt: time.Now()}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("store: write %s: %w", key, err)
	}
	return nil
}

// Watch reports every change to the database file as a change to all keys.
func (s *sqlitePersistence) Watch(ctx context.Context) (<-chan Event, error) {
	base := filepath.Base(s.path)
	return watchDir(ctx, filepath.Dir(s.path), func(path string) (string, bool) {
		return "", strings.HasPrefix(filepath.Base(path), base)
	})
}
