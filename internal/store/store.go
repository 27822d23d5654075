package store

import (
	"gorm.io/gorm"
)

type Store interface {
	Run() Run
	Item() Item
	Close() error
}

type DataStore struct {
	db   *gorm.DB
	run  Run
	item Item
}

func NewStore(db *gorm.DB) Store {
	return &DataStore{
		run:  NewRun(db),
		item: NewItem(db),
		db:   db,
	}
}

func (s *DataStore) Run() Run {
	return s.run
}

func (s *DataStore) Item() Item {
	return s.item
}

func (s *DataStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
