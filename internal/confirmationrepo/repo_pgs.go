// Package confirmationrepo manages repository layer of confirmation codes.
package confirmationrepo

import (
	"context"
	"database/sql"

	"github.com/VictorMordachini/conta-bancaria/internal/domain"
	"github.com/VictorMordachini/conta-bancaria/pkg/dbpkg"
	"github.com/VictorMordachini/conta-bancaria/pkg/errorspkg"

	"github.com/rs/zerolog"
)

// RepoPGS facilitates confirmation code repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns confirmation code RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{db: db}
}

const codeColumns = `
	id, holder_id, code, issued_at, expires_at, confirmed
`

const createQuery = `
INSERT INTO
	confirmation_codes (id, holder_id, code, issued_at, expires_at, confirmed)
VALUES
	($1, $2, $3, $4, $5, FALSE)
RETURNING` + codeColumns

// Create persists the code and then returns it.
func (r *RepoPGS) Create(ctx context.Context, c domain.ConfirmationCode) (domain.ConfirmationCode, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery,
		c.ID, c.HolderID, c.Code, c.IssuedAt, c.ExpiresAt)

	created, err := scanCode(row)
	if err != nil {
		l.Error().Err(err).Send()
		return created, errorspkg.ErrInternal
	}

	return created, nil
}

const getQuery = `
SELECT` + codeColumns + `
FROM confirmation_codes
WHERE id = $1
`

// Get returns the code with the given id.
func (r *RepoPGS) Get(ctx context.Context, id string) (domain.ConfirmationCode, error) {
	l := zerolog.Ctx(ctx)

	c, err := scanCode(r.db.QueryRowContext(ctx, getQuery, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return c, domain.ErrConfirmationNotFound
		}

		l.Error().Err(err).Send()

		return c, errorspkg.ErrInternal
	}

	return c, nil
}

const findCurrentQuery = `
SELECT` + codeColumns + `
FROM confirmation_codes
WHERE holder_id = $1 AND confirmed = FALSE
ORDER BY expires_at DESC
LIMIT 1
`

// FindCurrent returns the holder's most recent unconfirmed code. The most
// recent unconfirmed code wins; older ones are never consulted.
func (r *RepoPGS) FindCurrent(ctx context.Context, holderID string) (domain.ConfirmationCode, error) {
	l := zerolog.Ctx(ctx)

	c, err := scanCode(r.db.QueryRowContext(ctx, findCurrentQuery, holderID))
	if err != nil {
		if err == sql.ErrNoRows {
			return c, domain.ErrConfirmationNotFound
		}

		l.Error().Err(err).Send()

		return c, errorspkg.ErrInternal
	}

	return c, nil
}

const markConfirmedQuery = `
UPDATE confirmation_codes
SET confirmed = TRUE
WHERE id = $1 AND confirmed = FALSE
RETURNING` + codeColumns

// MarkConfirmed flips the write-once confirmed flag.
func (r *RepoPGS) MarkConfirmed(ctx context.Context, id string) (domain.ConfirmationCode, error) {
	l := zerolog.Ctx(ctx)

	c, err := scanCode(r.db.QueryRowContext(ctx, markConfirmedQuery, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return c, domain.ErrConfirmationNotFound
		}

		l.Error().Err(err).Send()

		return c, errorspkg.ErrInternal
	}

	return c, nil
}

func scanCode(row *sql.Row) (domain.ConfirmationCode, error) {
	var c domain.ConfirmationCode

	err := row.Scan(&c.ID, &c.HolderID, &c.Code, &c.IssuedAt, &c.ExpiresAt, &c.Confirmed)

	return c, err
}
