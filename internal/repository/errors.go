package repository

import (
	"errors"
	"time"

	"catalog-service/internal/domain"

	"github.com/lib/pq"
)

const queryTimeout = 5 * time.Second

// uniqueViolation is the SQLSTATE Postgres reports for a unique index conflict.
const uniqueViolation pq.ErrorCode = "23505"

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

func wrapStorage(op string, err error) error {
	if err == nil {
		return nil
	}
	return domain.NewStorageError(op, err)
}
