package mysql

import (
	"errors"
	"fmt"

	"github.com/atfskmn/-Course-Management-Api/internal/domain"
	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// MySQL/InnoDB error numbers this layer cares about.
const (
	erDupEntry        = 1062
	erLockWaitTimeout = 1205
	erLockDeadlock    = 1213
)

func isDuplicateEntry(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == erDupEntry
}

func isLockConflict(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && (me.Number == erLockWaitTimeout || me.Number == erLockDeadlock)
}

// translate maps driver-level failures onto the domain error kinds so the
// services never have to know about gorm or MySQL error numbers. Lock wait
// timeouts and deadlocks surface as retryable conflicts.
func translate(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%w: %s", domain.ErrNotFound, what)
	case isDuplicateEntry(err):
		return fmt.Errorf("%w: %s already exists", domain.ErrConflict, what)
	case isLockConflict(err):
		return fmt.Errorf("%w: %s is contended, retry", domain.ErrConflict, what)
	default:
		return err
	}
}
