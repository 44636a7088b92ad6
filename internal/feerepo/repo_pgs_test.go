package feerepo

import (
	"context"
	"testing"

	"github.com/VictorMordachini/conta-bancaria/internal/domain"
	"github.com/VictorMordachini/conta-bancaria/pkg/randompkg"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) (*RepoPGS, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() { db.Close() })

	return NewRepoPGS(db), mock
}

func ruleRows(rules ...domain.FeeRule) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "description", "rate", "flat_amount"})
	for _, f := range rules {
		rows.AddRow(f.ID, f.Description, f.Rate.String(), f.FlatAmount.String())
	}

	return rows
}

func TestGetMany(t *testing.T) {
	iof := domain.FeeRule{
		ID:          randompkg.String(8),
		Description: "IOF",
		Rate:        decimal.RequireFromString("0.02"),
		FlatAmount:  decimal.RequireFromString("0"),
	}
	service := domain.FeeRule{
		ID:          randompkg.String(8),
		Description: "service charge",
		Rate:        decimal.RequireFromString("0"),
		FlatAmount:  decimal.RequireFromString("3"),
	}

	t.Run("OK", func(t *testing.T) {
		repo, mock := newMock(t)

		mock.ExpectQuery("SELECT(.|\n)+FROM fee_rules(.|\n)+ANY").
			WithArgs(pq.Array([]string{iof.ID, service.ID})).
			WillReturnRows(ruleRows(iof, service))

		rules, err := repo.GetMany(context.Background(), []string{iof.ID, service.ID})
		require.NoError(t, err)
		require.Len(t, rules, 2)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("MissingID", func(t *testing.T) {
		repo, mock := newMock(t)

		mock.ExpectQuery("SELECT(.|\n)+FROM fee_rules(.|\n)+ANY").
			WithArgs(pq.Array([]string{iof.ID, "gone"})).
			WillReturnRows(ruleRows(iof))

		_, err := repo.GetMany(context.Background(), []string{iof.ID, "gone"})
		require.ErrorIs(t, err, domain.ErrFeeRuleNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	// A repeated id resolves to one row; that must not read as a missing
	// rule.
	t.Run("DuplicateIDs", func(t *testing.T) {
		repo, mock := newMock(t)

		mock.ExpectQuery("SELECT(.|\n)+FROM fee_rules(.|\n)+ANY").
			WithArgs(pq.Array([]string{iof.ID, service.ID})).
			WillReturnRows(ruleRows(iof, service))

		rules, err := repo.GetMany(context.Background(), []string{iof.ID, service.ID, iof.ID})
		require.NoError(t, err)
		require.Len(t, rules, 2)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Empty", func(t *testing.T) {
		repo, _ := newMock(t)

		rules, err := repo.GetMany(context.Background(), nil)
		require.NoError(t, err)
		require.Empty(t, rules)
	})
}
