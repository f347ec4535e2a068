package errx

import (
	"database/sql"
	"errors"
	"net/http"
)

// WrapPostgres maps database errors to the unified AppError type with appropriate status codes.
func WrapPostgres(err error) *AppError {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return New(err, http.StatusNotFound, DatabaseNotFoundMessage)
	}

	return New(err, http.StatusBadGateway, DatabaseErrorMessage)
}
