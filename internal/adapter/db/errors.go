package db

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"

	"github.com/go-sql-driver/mysql"

	"taskmanager/internal/core/domain"
)

// MySQL server error numbers that mean the server cannot serve us right now.
var unavailableErrorNumbers = map[uint16]struct{}{
	1040: {}, // ER_CON_COUNT_ERROR
	1045: {}, // ER_ACCESS_DENIED_ERROR
	1049: {}, // ER_BAD_DB_ERROR
	1053: {}, // ER_SERVER_SHUTDOWN
}

// MySQL server error numbers raised when a value does not fit a column.
var constraintErrorNumbers = map[uint16]struct{}{
	1048: {}, // ER_BAD_NULL_ERROR
	1265: {}, // WARN_DATA_TRUNCATED, raised for ENUM violations in strict mode
	1292: {}, // ER_TRUNCATED_WRONG_VALUE
	1366: {}, // ER_TRUNCATED_WRONG_VALUE_FOR_FIELD
	1406: {}, // ER_DATA_TOO_LONG
	3819: {}, // ER_CHECK_CONSTRAINT_VIOLATED
}

// classifyError maps driver errors onto the domain taxonomy and prefixes the
// operation name.
func classifyError(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sql.ErrNoRows):
		return domain.ErrTaskNotFound
	case isUnavailable(err):
		return fmt.Errorf("%s: %w: %w", op, domain.ErrStoreUnavailable, err)
	case isConstraintViolation(err):
		return fmt.Errorf("%s: %w: %w", op, domain.ErrConstraintViolation, err)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

func isUnavailable(err error) bool {
	if errors.Is(err, mysql.ErrInvalidConn) || errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		_, ok := unavailableErrorNumbers[mysqlErr.Number]
		return ok
	}
	return false
}

func isConstraintViolation(err error) bool {
	var mysqlErr *mysql.MySQLError
	if !errors.As(err, &mysqlErr) {
		return false
	}
	_, ok := constraintErrorNumbers[mysqlErr.Number]
	return ok
}
