// Package entryrepo manages repository layer of ledger entries.
package entryrepo

import (
	"context"

	"github.com/VictorMordachini/conta-bancaria/internal/domain"
	"github.com/VictorMordachini/conta-bancaria/pkg/dbpkg"
	"github.com/VictorMordachini/conta-bancaria/pkg/errorspkg"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// RepoPGS facilitates ledger entry repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns entry RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{db: db}
}

const createQuery = `
INSERT INTO
	entries (id, account_id, kind, amount, counterparty_number)
VALUES
	($1, $2, $3, $4, NULLIF($5, 0))
RETURNING id, account_id, kind, amount, COALESCE(counterparty_number, 0), created_at
`

// Create appends the entry and then returns it. Entries are immutable once
// written.
func (r *RepoPGS) Create(ctx context.Context, e domain.Entry) (domain.Entry, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery,
		uuid.NewString(), e.AccountID, e.Kind, e.Amount.String(), e.CounterpartyNumber)

	created, err := scanEntry(row.Scan)
	if err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Constraint == "entries_account_id_fkey" {
				return created, domain.ErrAccountNotFound
			}
		}

		return created, errorspkg.ErrInternal
	}

	return created, nil
}

const listByAccountQuery = `
SELECT
	id, account_id, kind, amount, COALESCE(counterparty_number, 0), created_at
FROM entries
WHERE account_id = $1
ORDER BY created_at DESC, id
`

// ListByAccount returns the account's entries ordered newest first.
func (r *RepoPGS) ListByAccount(ctx context.Context, accountID string) ([]domain.Entry, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listByAccountQuery, accountID)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Entry{}

	for rows.Next() {
		e, err := scanEntry(rows.Scan)
		if err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, e)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}

func scanEntry(scan func(...any) error) (domain.Entry, error) {
	var (
		e      domain.Entry
		amount string
	)

	err := scan(&e.ID, &e.AccountID, &e.Kind, &amount, &e.CounterpartyNumber, &e.CreatedAt)
	if err != nil {
		return e, err
	}

	if e.Amount, err = decimal.NewFromString(amount); err != nil {
		return e, err
	}

	return e, nil
}
