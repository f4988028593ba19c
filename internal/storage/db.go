package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

type Entry struct {
	Name      string `gorm:"primaryKey"`
	Value     string `gorm:"not null"`
	UpdatedAt time.Time
}

var _ Storage = &DBStorage{}

type DBStorage struct {
	db     *gorm.DB
	logger *slog.Logger
}

func OpenDB(path string) (*DBStorage, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	if path == ":memory:" {
		// every new connection would get its own empty database
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.SetMaxOpenConns(1)
		}
	}

	return NewDB(db)
}

func NewDB(db *gorm.DB) (*DBStorage, error) {
	if err := db.AutoMigrate(&Entry{}); err != nil {
		return nil, err
	}

	return &DBStorage{db: db, logger: slog.Default().With("logger", "storage")}, nil
}

func (s *DBStorage) query(ctx context.Context) *EntryQuery {
	return NewEntryQuery(s.db.WithContext(ctx))
}

func (s *DBStorage) Get(ctx context.Context, key string, dst any) (bool, error) {
	if key == "" {
		return false, ErrEmptyKey
	}

	e, err := s.query(ctx).Name(key).One()
	if err != nil {
		return false, err
	}

	if e == nil {
		return false, nil
	}

	return true, decode(e.Value, dst)
}

func (s *DBStorage) Set(ctx context.Context, key string, v any) error {
	val, err := encode(v)
	if err != nil {
		return err
	}

	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&Entry{Name: key, Value: val}).Error

	if err != nil {
		s.logger.Error("error saving entry", slog.String("key", key), slog.Any("error", err))
	}

	return err
}

func (s *DBStorage) Remove(ctx context.Context, key string) error {
	if key == "" {
		return ErrEmptyKey
	}

	return s.query(ctx).Name(key).Delete()
}

func (s *DBStorage) Keys(ctx context.Context) ([]string, error) {
	entries, err := s.query(ctx).Get()
	if err != nil {
		return nil, fmt.Errorf("list keys: %w", err)
	}

	res := make([]string, 0, len(entries))
	for _, e := range entries {
		res = append(res, e.Name)
	}

	return res, nil
}

func (s *DBStorage) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}

	return sqlDB.Close()
}
