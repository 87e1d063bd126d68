package mysql

import (
	"context"

	"github.com/atfskmn/-Course-Management-Api/internal/repository"
	"gorm.io/gorm"
)

type txManager struct {
	db *gorm.DB
}

func NewTxManager(db *gorm.DB) repository.TxManager {
	return &txManager{db: db}
}

// Do runs fn in one InnoDB transaction. Any error returned by fn rolls the
// whole transaction back, which is what makes order placement all-or-nothing.
func (m *txManager) Do(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return m.db.WithContext(ctx).Transaction(fn)
}
