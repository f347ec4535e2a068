// Package db persists completed registrations to Postgres.
package db

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	errx "github.com/wardline/server/internal/core/error"
	"github.com/wardline/server/internal/intake/engine"
	"github.com/wardline/server/internal/intake/model"
)

// Repository wraps database operations for registered patients. The caller
// is responsible for managing the DB connection lifecycle.
type Repository struct {
	DB *sql.DB
}

func NewRepository(db *sql.DB) *Repository { return &Repository{DB: db} }

// Persist inserts one completed registration row. Parameterized throughout;
// the payload has already passed model validation.
func (r *Repository) Persist(ctx context.Context, p model.WebhookPayload) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO patients (id, name, age, query, ward)
         VALUES ($1, $2, $3, $4, $5)`,
		uuid.New(), p.PatientName, p.PatientAge, p.PatientQuery, string(p.Ward),
	)
	if err != nil {
		return errx.WrapPostgres(err)
	}
	return nil
}

var _ engine.Persister = (*Repository)(nil)
