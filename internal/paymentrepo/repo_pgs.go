// Package paymentrepo manages repository layer of bill payments.
package paymentrepo

import (
	"context"

	"github.com/VictorMordachini/conta-bancaria/internal/domain"
	"github.com/VictorMordachini/conta-bancaria/pkg/dbpkg"
	"github.com/VictorMordachini/conta-bancaria/pkg/errorspkg"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// RepoPGS facilitates payment repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns payment RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{db: db}
}

const createQuery = `
INSERT INTO
	payments (id, account_id, bill_reference, amount, total_charged, status)
VALUES
	($1, $2, $3, $4, $5, $6)
RETURNING id, account_id, bill_reference, amount, total_charged, status, created_at
`

const attachFeeQuery = `
INSERT INTO payment_fees (payment_id, fee_rule_id) VALUES ($1, $2)
`

// Create writes one immutable payment attempt row, success or failure, plus
// its applied fee rule set.
func (r *RepoPGS) Create(ctx context.Context, p domain.Payment) (domain.Payment, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery,
		uuid.NewString(), p.AccountID, p.BillReference,
		p.Amount.String(), p.TotalCharged.String(), p.Status)

	var (
		created       domain.Payment
		amount, total string
	)

	err := row.Scan(&created.ID, &created.AccountID, &created.BillReference,
		&amount, &total, &created.Status, &created.CreatedAt)
	if err != nil {
		l.Error().Err(err).Send()
		return created, errorspkg.ErrInternal
	}

	if created.Amount, err = decimal.NewFromString(amount); err != nil {
		l.Error().Err(err).Send()
		return created, errorspkg.ErrInternal
	}

	if created.TotalCharged, err = decimal.NewFromString(total); err != nil {
		l.Error().Err(err).Send()
		return created, errorspkg.ErrInternal
	}

	for _, fee := range p.Fees {
		if _, err := r.db.ExecContext(ctx, attachFeeQuery, created.ID, fee.ID); err != nil {
			l.Error().Err(err).Send()
			return created, errorspkg.ErrInternal
		}
	}

	created.Fees = p.Fees

	return created, nil
}

const listByAccountQuery = `
SELECT id, account_id, bill_reference, amount, total_charged, status, created_at
FROM payments
WHERE account_id = $1
ORDER BY created_at DESC
`

// ListByAccount returns the account's payment attempts newest first.
func (r *RepoPGS) ListByAccount(ctx context.Context, accountID string) ([]domain.Payment, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listByAccountQuery, accountID)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Payment{}

	for rows.Next() {
		var (
			p             domain.Payment
			amount, total string
		)

		err := rows.Scan(&p.ID, &p.AccountID, &p.BillReference,
			&amount, &total, &p.Status, &p.CreatedAt)
		if err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		if p.Amount, err = decimal.NewFromString(amount); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		if p.TotalCharged, err = decimal.NewFromString(total); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, p)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}
