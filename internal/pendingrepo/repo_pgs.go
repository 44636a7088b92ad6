// Package pendingrepo manages repository layer of pending operations.
package pendingrepo

import (
	"context"
	"database/sql"
	"time"

	"github.com/VictorMordachini/conta-bancaria/internal/domain"
	"github.com/VictorMordachini/conta-bancaria/pkg/dbpkg"
	"github.com/VictorMordachini/conta-bancaria/pkg/errorspkg"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// RepoPGS facilitates pending operation repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns pending operation RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{db: db}
}

const pendingColumns = `
	id, kind, source_number, COALESCE(destination_number, 0),
	amount, COALESCE(bill_reference, ''), confirmation_code_id, created_at
`

const createQuery = `
INSERT INTO
	pending_operations (id, kind, source_number, destination_number, amount, bill_reference, confirmation_code_id)
VALUES
	($1, $2, $3, NULLIF($4, 0), $5, NULLIF($6, ''), $7)
RETURNING` + pendingColumns

// Create persists one pending operation linked 1:1 to its confirmation code.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreatePendingParams) (domain.PendingOperation, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery,
		uuid.NewString(), arg.Kind, arg.SourceNumber, arg.DestinationNumber,
		arg.Amount.String(), arg.BillReference, arg.ConfirmationCodeID)

	p, err := scanPending(row.Scan)
	if err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Constraint {
			case "pending_operations_confirmation_code_id_key":
				return p, domain.ErrCodeAlreadyLinked
			case "pending_operations_confirmation_code_id_fkey":
				return p, domain.ErrConfirmationNotFound
			}
		}

		return p, errorspkg.ErrInternal
	}

	return p, nil
}

const findByCodeQuery = `
SELECT` + pendingColumns + `
FROM pending_operations
WHERE confirmation_code_id = $1
`

// FindByCode returns the pendency linked to the given confirmation code id.
func (r *RepoPGS) FindByCode(ctx context.Context, codeID string) (domain.PendingOperation, error) {
	l := zerolog.Ctx(ctx)

	p, err := scanPending(r.db.QueryRowContext(ctx, findByCodeQuery, codeID).Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return p, domain.ErrPendencyNotFound
		}

		l.Error().Err(err).Send()

		return p, errorspkg.ErrInternal
	}

	return p, nil
}

const deleteQuery = `
DELETE FROM pending_operations
WHERE id = $1
`

// Delete removes the pendency. Deleting an already-removed pendency is a
// no-op.
func (r *RepoPGS) Delete(ctx context.Context, id string) error {
	l := zerolog.Ctx(ctx)

	if _, err := r.db.ExecContext(ctx, deleteQuery, id); err != nil {
		l.Error().Err(err).Send()
		return errorspkg.ErrInternal
	}

	return nil
}

const deleteOlderThanQuery = `
DELETE FROM pending_operations
WHERE created_at < $1
`

// DeleteOlderThan removes every pendency created before the cutoff,
// irrespective of its confirmation code's state. Returns the removed count.
func (r *RepoPGS) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	l := zerolog.Ctx(ctx)

	res, err := r.db.ExecContext(ctx, deleteOlderThanQuery, cutoff)
	if err != nil {
		l.Error().Err(err).Send()
		return 0, errorspkg.ErrInternal
	}

	affected, err := res.RowsAffected()
	if err != nil {
		l.Error().Err(err).Send()
		return 0, errorspkg.ErrInternal
	}

	return affected, nil
}

func scanPending(scan func(...any) error) (domain.PendingOperation, error) {
	var (
		p      domain.PendingOperation
		amount string
	)

	err := scan(&p.ID, &p.Kind, &p.SourceNumber, &p.DestinationNumber,
		&amount, &p.BillReference, &p.ConfirmationCodeID, &p.CreatedAt)
	if err != nil {
		return p, err
	}

	if p.Amount, err = decimal.NewFromString(amount); err != nil {
		return p, err
	}

	return p, nil
}
