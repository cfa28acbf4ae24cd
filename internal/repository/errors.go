package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"socialboard/internal/models"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	// raised for ids that are not valid uuids
	pgInvalidTextRepresentation = "22P02"
)

func pgErrorCode(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

func isUniqueViolation(err error) bool {
	return pgErrorCode(err) == pgUniqueViolation
}

func isForeignKeyViolation(err error) bool {
	return pgErrorCode(err) == pgForeignKeyViolation
}

func isInvalidID(err error) bool {
	return pgErrorCode(err) == pgInvalidTextRepresentation
}

// isMissing reports whether a lookup found no row. A malformed id cannot match
// any row either.
func isMissing(err error) bool {
	return errors.Is(err, sql.ErrNoRows) || isInvalidID(err)
}

// expectAffected maps an UPDATE or DELETE that touched no rows to ErrNotFound.
func expectAffected(result sql.Result, entity, id string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check affected rows: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("%s %s: %w", entity, id, models.ErrNotFound)
	}

	return nil
}
