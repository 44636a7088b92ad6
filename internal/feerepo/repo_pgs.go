// Package feerepo manages repository layer of fee rules.
package feerepo

import (
	"context"
	"database/sql"

	"github.com/VictorMordachini/conta-bancaria/internal/domain"
	"github.com/VictorMordachini/conta-bancaria/pkg/dbpkg"
	"github.com/VictorMordachini/conta-bancaria/pkg/errorspkg"

	"github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// RepoPGS facilitates fee rule repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns fee rule RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{db: db}
}

const createQuery = `
INSERT INTO
	fee_rules (id, description, rate, flat_amount)
VALUES
	($1, $2, $3, $4)
RETURNING id, description, rate, flat_amount
`

// Create creates the fee rule and then returns it.
func (r *RepoPGS) Create(ctx context.Context, f domain.FeeRule) (domain.FeeRule, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery,
		f.ID, f.Description, f.Rate.String(), f.FlatAmount.String())

	created, err := scanFeeRule(row.Scan)
	if err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Constraint == "fee_rules_description_key" {
				return created, domain.ErrFeeRuleExists
			}
		}

		return created, errorspkg.ErrInternal
	}

	return created, nil
}

const getQuery = `
SELECT id, description, rate, flat_amount
FROM fee_rules
WHERE id = $1
`

// Get returns the fee rule with the given id.
func (r *RepoPGS) Get(ctx context.Context, id string) (domain.FeeRule, error) {
	l := zerolog.Ctx(ctx)

	f, err := scanFeeRule(r.db.QueryRowContext(ctx, getQuery, id).Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return f, domain.ErrFeeRuleNotFound
		}

		l.Error().Err(err).Send()

		return f, errorspkg.ErrInternal
	}

	return f, nil
}

const listQuery = `
SELECT id, description, rate, flat_amount
FROM fee_rules
ORDER BY description
`

// List returns every fee rule.
func (r *RepoPGS) List(ctx context.Context) ([]domain.FeeRule, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listQuery)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.FeeRule{}

	for rows.Next() {
		f, err := scanFeeRule(rows.Scan)
		if err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, f)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}

const getManyQuery = `
SELECT id, description, rate, flat_amount
FROM fee_rules
WHERE id = ANY($1)
`

// GetMany returns the rules for the given ids. Duplicate ids count once.
// A missing id fails with ErrFeeRuleNotFound.
func (r *RepoPGS) GetMany(ctx context.Context, ids []string) ([]domain.FeeRule, error) {
	l := zerolog.Ctx(ctx)

	distinct := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		distinct = append(distinct, id)
	}

	if len(distinct) == 0 {
		return []domain.FeeRule{}, nil
	}

	rows, err := r.db.QueryContext(ctx, getManyQuery, pq.Array(distinct))
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.FeeRule{}

	for rows.Next() {
		f, err := scanFeeRule(rows.Scan)
		if err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, f)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	if len(items) != len(distinct) {
		return nil, domain.ErrFeeRuleNotFound
	}

	return items, nil
}

const updateQuery = `
UPDATE fee_rules
SET description = $1, rate = $2, flat_amount = $3
WHERE id = $4
RETURNING id, description, rate, flat_amount
`

// Update rewrites the fee rule and then returns it.
func (r *RepoPGS) Update(ctx context.Context, f domain.FeeRule) (domain.FeeRule, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, updateQuery,
		f.Description, f.Rate.String(), f.FlatAmount.String(), f.ID)

	updated, err := scanFeeRule(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return updated, domain.ErrFeeRuleNotFound
		}

		l.Error().Err(err).Send()

		return updated, errorspkg.ErrInternal
	}

	return updated, nil
}

const deleteQuery = `
DELETE FROM fee_rules
WHERE id = $1
`

// Delete removes the fee rule with the given id.
func (r *RepoPGS) Delete(ctx context.Context, id string) error {
	l := zerolog.Ctx(ctx)

	res, err := r.db.ExecContext(ctx, deleteQuery, id)
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
		return domain.ErrFeeRuleNotFound
	}

	return nil
}

func scanFeeRule(scan func(...any) error) (domain.FeeRule, error) {
	var (
		f          domain.FeeRule
		rate, flat string
	)

	err := scan(&f.ID, &f.Description, &rate, &flat)
	if err != nil {
		return f, err
	}

	if f.Rate, err = decimal.NewFromString(rate); err != nil {
		return f, err
	}

	if f.FlatAmount, err = decimal.NewFromString(flat); err != nil {
		return f, err
	}

	return f, nil
}
