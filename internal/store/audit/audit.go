// Package audit keeps a local record of every outbound API call, replacing
// ad-hoc response dumps with a queryable log.
package audit

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// CallRecord is one outbound request/response pair. Body is truncated at
// write time; this is a diagnostic trail, not a response cache.
type CallRecord struct {
	ID         uint      `gorm:"primaryKey"`
	CreatedAt  time.Time `gorm:"index"`
	Endpoint   string    `gorm:"index"`
	Page       int
	Status     int
	DurationMS int64
	Body       string `gorm:"type:text"`
}

func (CallRecord) TableName() string { return "api_calls" }

const maxStoredBody = 8192

type Store struct {
	db *gorm.DB
}

func Open(path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("audit database path cannot be empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", path)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	return newStore(db)
}

// OpenFromDB wires an existing gorm handle, used by tests.
func OpenFromDB(db *gorm.DB) (*Store, error) {
	if db == nil {
		return nil, fmt.Errorf("gorm db cannot be nil")
	}
	return newStore(db)
}

func newStore(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(&CallRecord{}); err != nil {
		return nil, err
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(2)
		sqlDB.SetMaxIdleConns(2)
	}
	return &Store{db: db}, nil
}

// RecordCall implements coinswitch.AuditRecorder. Write failures are
// swallowed: auditing must never fail the request it describes.
func (s *Store) RecordCall(endpoint string, page, status int, elapsed time.Duration, body []byte) {
	if s == nil || s.db == nil {
		return
	}
	stored := body
	if len(stored) > maxStoredBody {
		stored = stored[:maxStoredBody]
	}
	s.db.Create(&CallRecord{
		CreatedAt:  time.Now().UTC(),
		Endpoint:   endpoint,
		Page:       page,
		Status:     status,
		DurationMS: elapsed.Milliseconds(),
		Body:       string(stored),
	})
}

// Recent returns the newest records, newest first.
func (s *Store) Recent(limit int) ([]CallRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	var out []CallRecord
	err := s.db.Order("id DESC").Limit(limit).Find(&out).Error
	return out, err
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
