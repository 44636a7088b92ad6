// Package holderrepo manages repository layer of account holders.
package holderrepo

import (
	"context"
	"database/sql"

	"github.com/VictorMordachini/conta-bancaria/internal/domain"
	"github.com/VictorMordachini/conta-bancaria/pkg/dbpkg"
	"github.com/VictorMordachini/conta-bancaria/pkg/errorspkg"

	"github.com/rs/zerolog"
)

// RepoPGS facilitates holder repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns holder RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{db: db}
}

const createQuery = `
INSERT INTO
	holders (id, name)
VALUES
	($1, $2)
RETURNING id, name, created_at
`

// Create creates the holder and then returns it.
func (r *RepoPGS) Create(ctx context.Context, id, name string) (domain.Holder, error) {
	l := zerolog.Ctx(ctx)

	var h domain.Holder

	err := r.db.QueryRowContext(ctx, createQuery, id, name).
		Scan(&h.ID, &h.Name, &h.CreatedAt)
	if err != nil {
		l.Error().Err(err).Send()
		return h, errorspkg.ErrInternal
	}

	return h, nil
}

const getQuery = `
SELECT id, name, created_at
FROM holders
WHERE id = $1
`

// Get returns the holder with the given id.
func (r *RepoPGS) Get(ctx context.Context, id string) (domain.Holder, error) {
	l := zerolog.Ctx(ctx)

	var h domain.Holder

	err := r.db.QueryRowContext(ctx, getQuery, id).
		Scan(&h.ID, &h.Name, &h.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return h, domain.ErrHolderNotFound
		}

		l.Error().Err(err).Send()

		return h, errorspkg.ErrInternal
	}

	return h, nil
}
