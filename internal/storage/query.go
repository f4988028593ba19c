package storage

import (
	"errors"

	"gorm.io/gorm"
)

type Query[T any] struct {
	db    *gorm.DB
	limit int
	order string
}

func (q *Query[T]) get(tx *gorm.DB) ([]*T, error) {
	var res []*T

	if q.order != "" {
		tx = tx.Order(q.order)
	}

	if q.limit > 0 {
		tx = tx.Limit(q.limit)
	}

	if err := tx.Find(&res).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	return res, nil
}

func (q *Query[T]) one(tx *gorm.DB) (*T, error) {
	res := new(T)

	err := tx.Take(res).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	return res, nil
}

type EntryQuery struct {
	Query[Entry]
	name string
}

func NewEntryQuery(db *gorm.DB) *EntryQuery {
	return &EntryQuery{
		Query: Query[Entry]{
			db:    db,
			limit: 1000,
			order: "name",
		},
	}
}

func (q *EntryQuery) Name(name string) *EntryQuery {
	q.name = name
	return q
}

func (q *EntryQuery) where() *gorm.DB {
	tx := q.db

	if q.name != "" {
		tx = tx.Where("name = ?", q.name)
	}

	return tx
}

func (q *EntryQuery) Get() ([]*Entry, error) {
	return q.get(q.where().Model(&Entry{}))
}

func (q *EntryQuery) One() (*Entry, error) {
	return q.one(q.where().Model(&Entry{}))
}

func (q *EntryQuery) Delete() error {
	return q.where().Delete(&Entry{}).Error
}
