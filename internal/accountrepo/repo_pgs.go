// Package accountrepo manages repository layer of accounts.
package accountrepo

import (
	"context"
	"database/sql"

	"github.com/VictorMordachini/conta-bancaria/internal/domain"
	"github.com/VictorMordachini/conta-bancaria/internal/entryrepo"
	"github.com/VictorMordachini/conta-bancaria/pkg/dbpkg"
	"github.com/VictorMordachini/conta-bancaria/pkg/errorspkg"

	"github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// RepoPGS facilitates account repository layer logic.
type RepoPGS struct {
	db   dbpkg.SQLInterface
	conn *sql.DB
}

// NewTxRepoPGS returns account RepoPGS bound to an open transaction.
func NewTxRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{db: db}
}

// NewRepoPGS returns account RepoPGS with a connection to start transactions.
func NewRepoPGS(db *sql.DB) *RepoPGS {
	return &RepoPGS{db: db, conn: db}
}

const accountColumns = `
	id, number, type, balance, active, version, holder_id,
	overdraft_limit, fee_rate, yield_rate, created_at
`

func scanAccount(row *sql.Row) (domain.Account, error) {
	var (
		a                       domain.Account
		balance                 string
		limit, feeRate, yieldRt sql.NullString
	)

	err := row.Scan(
		&a.ID,
		&a.Number,
		&a.Type,
		&balance,
		&a.Active,
		&a.Version,
		&a.HolderID,
		&limit,
		&feeRate,
		&yieldRt,
		&a.CreatedAt,
	)
	if err != nil {
		return a, err
	}

	if a.Balance, err = decimal.NewFromString(balance); err != nil {
		return a, err
	}

	for _, f := range []struct {
		src sql.NullString
		dst *decimal.Decimal
	}{
		{limit, &a.OverdraftLimit},
		{feeRate, &a.FeeRate},
		{yieldRt, &a.YieldRate},
	} {
		if !f.src.Valid {
			continue
		}

		if *f.dst, err = decimal.NewFromString(f.src.String); err != nil {
			return a, err
		}
	}

	return a, nil
}

// typed returns the variant columns as nullable values for persistence.
func typed(a domain.Account) (limit, feeRate, yieldRate any) {
	switch a.Type {
	case domain.Checking:
		return a.OverdraftLimit.String(), a.FeeRate.String(), nil
	case domain.Savings:
		return nil, nil, a.YieldRate.String()
	}

	return nil, nil, nil
}

const createQuery = `
INSERT INTO
	accounts (id, number, type, balance, active, version, holder_id, overdraft_limit, fee_rate, yield_rate)
VALUES
	($1, $2, $3, $4, TRUE, 1, $5, $6, $7, $8)
RETURNING` + accountColumns

// Create creates the account and then returns it.
func (r *RepoPGS) Create(ctx context.Context, a domain.Account) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	limit, feeRate, yieldRate := typed(a)

	row := r.db.QueryRowContext(ctx, createQuery,
		a.ID, a.Number, a.Type, a.Balance.String(), a.HolderID, limit, feeRate, yieldRate)

	created, err := scanAccount(row)
	if err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Constraint {
			case "accounts_number_key":
				return created, domain.ErrAccountNumberTaken
			case "accounts_holder_id_fkey":
				return created, domain.ErrHolderNotFound
			}
		}

		return created, errorspkg.ErrInternal
	}

	return created, nil
}

const getQuery = `
SELECT` + accountColumns + `
FROM accounts
WHERE number = $1
`

// Get returns the account with the given number.
func (r *RepoPGS) Get(ctx context.Context, number int64) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	a, err := scanAccount(r.db.QueryRowContext(ctx, getQuery, number))
	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return a, domain.ErrAccountNotFound
		}

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const listByHolderQuery = `
SELECT` + accountColumns + `
FROM accounts
WHERE holder_id = $1
ORDER BY number
`

// ListByHolder returns every account owned by the given holder.
func (r *RepoPGS) ListByHolder(ctx context.Context, holderID string) ([]domain.Account, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listByHolderQuery, holderID)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Account{}

	for rows.Next() {
		var (
			a                       domain.Account
			balance                 string
			limit, feeRate, yieldRt sql.NullString
		)

		err := rows.Scan(
			&a.ID, &a.Number, &a.Type, &balance, &a.Active, &a.Version, &a.HolderID,
			&limit, &feeRate, &yieldRt, &a.CreatedAt,
		)
		if err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		if a.Balance, err = decimal.NewFromString(balance); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		if limit.Valid {
			a.OverdraftLimit, _ = decimal.NewFromString(limit.String)
		}
		if feeRate.Valid {
			a.FeeRate, _ = decimal.NewFromString(feeRate.String)
		}
		if yieldRt.Valid {
			a.YieldRate, _ = decimal.NewFromString(yieldRt.String)
		}

		items = append(items, a)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}

const updateBalanceQuery = `
UPDATE accounts
SET balance = $1, version = version + 1
WHERE id = $2 AND version = $3
RETURNING` + accountColumns

// UpdateBalance writes the account balance guarded by its loaded version.
// Zero rows affected surfaces as ErrConcurrencyConflict when the account
// still exists, ErrAccountNotFound otherwise.
func (r *RepoPGS) UpdateBalance(ctx context.Context, a domain.Account) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, updateBalanceQuery, a.Balance.String(), a.ID, a.Version)

	updated, err := scanAccount(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return updated, r.staleOrMissing(ctx, a.ID)
		}

		l.Error().Err(err).Send()

		return updated, errorspkg.ErrInternal
	}

	return updated, nil
}

const updateTermsQuery = `
UPDATE accounts
SET overdraft_limit = $1, fee_rate = $2, version = version + 1
WHERE id = $3 AND version = $4
RETURNING` + accountColumns

// UpdateTerms writes checking overdraft limit and fee rate, version-guarded.
func (r *RepoPGS) UpdateTerms(ctx context.Context, a domain.Account) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, updateTermsQuery,
		a.OverdraftLimit.String(), a.FeeRate.String(), a.ID, a.Version)

	updated, err := scanAccount(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return updated, r.staleOrMissing(ctx, a.ID)
		}

		l.Error().Err(err).Send()

		return updated, errorspkg.ErrInternal
	}

	return updated, nil
}

const deactivateQuery = `
UPDATE accounts
SET active = FALSE, version = version + 1
WHERE id = $1 AND version = $2
`

// Deactivate soft-deletes the account, version-guarded. Accounts are never
// hard-deleted.
func (r *RepoPGS) Deactivate(ctx context.Context, a domain.Account) error {
	l := zerolog.Ctx(ctx)

	res, err := r.db.ExecContext(ctx, deactivateQuery, a.ID, a.Version)
	if err != nil {
		l.Error().Err(err).Send()
		return errorspkg.ErrInternal
	}

	affected, err := res.RowsAffected()
	if err != nil {
		l.Error().Err(err).Send()
		return errorspkg.ErrInternal
	}

	if affected == 0 {
		return r.staleOrMissing(ctx, a.ID)
	}

	return nil
}

const existsQuery = `
SELECT EXISTS(SELECT 1 FROM accounts WHERE id = $1)
`

// staleOrMissing distinguishes a stale version from a deleted row.
func (r *RepoPGS) staleOrMissing(ctx context.Context, id string) error {
	l := zerolog.Ctx(ctx)

	var exists bool
	if err := r.db.QueryRowContext(ctx, existsQuery, id).Scan(&exists); err != nil {
		l.Error().Err(err).Send()
		return errorspkg.ErrInternal
	}

	if exists {
		return domain.ErrConcurrencyConflict
	}

	return domain.ErrAccountNotFound
}

// SaveWithEntry persists the mutated balance and its ledger entry as one
// atomic unit. The balance write is version-guarded; a stale version aborts
// the whole unit.
func (r *RepoPGS) SaveWithEntry(ctx context.Context, a domain.Account, e domain.Entry) (domain.Account, domain.Entry, error) {
	l := zerolog.Ctx(ctx)

	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		l.Error().Err(err).Send()
		return domain.Account{}, domain.Entry{}, errorspkg.ErrInternal
	}

	defer func() {
		if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
			l.Error().Err(err).Send()
		}
	}()

	accounts := NewTxRepoPGS(tx)
	entries := entryrepo.NewRepoPGS(tx)

	updated, err := accounts.UpdateBalance(ctx, a)
	if err != nil {
		return domain.Account{}, domain.Entry{}, err
	}

	e.AccountID = updated.ID

	entry, err := entries.Create(ctx, e)
	if err != nil {
		return domain.Account{}, domain.Entry{}, err
	}

	if err := tx.Commit(); err != nil {
		l.Error().Err(err).Send()
		return domain.Account{}, domain.Entry{}, errorspkg.ErrInternal
	}

	return updated, entry, nil
}
