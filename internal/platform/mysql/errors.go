package mysql

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"github.com/phrazzld/tasks-api/internal/store"
)

// MySQL server error numbers
const (
	// duplicateEntryNumber is ER_DUP_ENTRY
	duplicateEntryNumber = 1062

	// badNullNumber is ER_BAD_NULL_ERROR
	badNullNumber = 1048

	// checkViolatedNumber is ER_CHECK_CONSTRAINT_VIOLATED (MySQL 8.0.16+)
	checkViolatedNumber = 3819
)

// MapError maps a MySQL error to the matching store error, wrapping the
// original to preserve context.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %v", store.ErrNotFound, err)
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case duplicateEntryNumber:
			return fmt.Errorf("%w: %v", store.ErrDuplicate, err)
		case badNullNumber, checkViolatedNumber:
			return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
		}
	}

	return err
}
