package repositories

import (
	"database/sql"

	"github.com/4oBuko/mission-archive/internal/myerrors"
	"github.com/go-sql-driver/mysql"
	"github.com/pkg/errors"
)

// MySQL server error numbers the repositories translate into request errors.
const (
	errDupEntry           = 1062
	errRowIsReferenced    = 1451
	errNoReferencedRow    = 1452
	errRowIsReferenced2   = 1217
	errNoReferencedRowOld = 1216
	errDataTooLong        = 1406
	errOutOfRange         = 1264
	errCheckViolated      = 3819
)

// translate turns constraint and column range failures reported by MySQL
// into typed request errors and wraps anything else with op.
func translate(err error, op, referentialMsg, conflictMsg string) error {
	if err == nil {
		return nil
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case errNoReferencedRow, errRowIsReferenced, errNoReferencedRowOld, errRowIsReferenced2:
			return myerrors.Referential(referentialMsg, err)
		case errDupEntry:
			return myerrors.Conflict(conflictMsg, err)
		case errDataTooLong, errOutOfRange, errCheckViolated:
			return myerrors.Validation("%s", myErr.Message)
		}
	}
	return errors.Wrap(err, op)
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
