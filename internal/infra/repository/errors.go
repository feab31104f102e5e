package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
)

const pgUniqueViolation = "23505"

// isUniqueViolation covers both the translated gorm error and a raw
// postgres error when TranslateError is off.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

func translateWrite(err error, conflictCode string) error {
	if err == nil {
		return nil
	}
	if isUniqueViolation(err) {
		return httperr.ErrConflict(conflictCode)
	}
	return err
}

func translateRead(err error, notFoundCode string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.ErrNotFound(notFoundCode)
	}
	return err
}
