package repository

import (
	"context"

	"gorm.io/gorm"
)

// TxManager runs fn inside one database transaction. Repository methods
// accept the tx handle and fall back to their own connection when it is
// nil, so the same repo code serves both transactional and standalone
// callers.
type TxManager interface {
	Do(ctx context.Context, fn func(tx *gorm.DB) error) error
}
