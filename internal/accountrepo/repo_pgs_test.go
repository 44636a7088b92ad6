package accountrepo

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/VictorMordachini/conta-bancaria/internal/domain"
	"github.com/VictorMordachini/conta-bancaria/pkg/randompkg"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) (*RepoPGS, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() { db.Close() })

	return NewRepoPGS(db), mock
}

func testAccount() domain.Account {
	return domain.Account{
		ID:             randompkg.String(8),
		Number:         randompkg.AccountNumber(),
		Type:           domain.Checking,
		Balance:        decimal.NewFromInt(1000),
		Active:         true,
		Version:        3,
		HolderID:       randompkg.String(8),
		OverdraftLimit: decimal.NewFromInt(500),
		FeeRate:        decimal.NewFromFloat(0.01),
	}
}

func accountRows(a domain.Account, version int32) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "number", "type", "balance", "active", "version", "holder_id",
		"overdraft_limit", "fee_rate", "yield_rate", "created_at",
	}).AddRow(
		a.ID, a.Number, a.Type, a.Balance.String(), a.Active, version, a.HolderID,
		a.OverdraftLimit.String(), a.FeeRate.String(), nil, time.Now().UTC(),
	)
}

func TestUpdateBalanceOK(t *testing.T) {
	repo, mock := newMock(t)
	a := testAccount()

	mock.ExpectQuery("UPDATE accounts").
		WithArgs(a.Balance.String(), a.ID, a.Version).
		WillReturnRows(accountRows(a, a.Version+1))

	updated, err := repo.UpdateBalance(context.Background(), a)
	require.NoError(t, err)
	require.Equal(t, a.Version+1, updated.Version)
	require.True(t, updated.Balance.Equal(a.Balance))
	require.NoError(t, mock.ExpectationsWereMet())
}

// A version-guarded write that hits zero rows is disambiguated with an
// existence check: the account is either stale or gone.
func TestUpdateBalanceStaleVersion(t *testing.T) {
	repo, mock := newMock(t)
	a := testAccount()

	mock.ExpectQuery("UPDATE accounts").
		WithArgs(a.Balance.String(), a.ID, a.Version).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(a.ID).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	_, err := repo.UpdateBalance(context.Background(), a)
	require.ErrorIs(t, err, domain.ErrConcurrencyConflict)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateBalanceAccountGone(t *testing.T) {
	repo, mock := newMock(t)
	a := testAccount()

	mock.ExpectQuery("UPDATE accounts").
		WithArgs(a.Balance.String(), a.ID, a.Version).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(a.ID).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	_, err := repo.UpdateBalance(context.Background(), a)
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetNotFound(t *testing.T) {
	repo, mock := newMock(t)
	number := randompkg.AccountNumber()

	mock.ExpectQuery("SELECT(.|\n)+FROM accounts").
		WithArgs(number).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), number)
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

// Balance write and ledger entry commit or roll back together.
func TestSaveWithEntry(t *testing.T) {
	repo, mock := newMock(t)

	a := testAccount()
	a.Balance = decimal.NewFromInt(850)

	entry := domain.Entry{
		Kind:   domain.EntryWithdraw,
		Amount: decimal.NewFromInt(-150),
	}

	mock.ExpectBegin()
	mock.ExpectQuery("UPDATE accounts").
		WithArgs(a.Balance.String(), a.ID, a.Version).
		WillReturnRows(accountRows(a, a.Version+1))
	mock.ExpectQuery("INSERT INTO(.|\n)+entries").
		WithArgs(sqlmock.AnyArg(), a.ID, entry.Kind, entry.Amount.String(), entry.CounterpartyNumber).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "account_id", "kind", "amount", "counterparty_number", "created_at",
		}).AddRow(randompkg.String(8), a.ID, entry.Kind, entry.Amount.String(), int64(0), time.Now().UTC()))
	mock.ExpectCommit()

	updated, created, err := repo.SaveWithEntry(context.Background(), a, entry)
	require.NoError(t, err)
	require.Equal(t, a.Version+1, updated.Version)
	require.Equal(t, a.ID, created.AccountID)
	require.True(t, created.Amount.Equal(entry.Amount))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveWithEntryStaleVersionAborts(t *testing.T) {
	repo, mock := newMock(t)

	a := testAccount()
	entry := domain.Entry{Kind: domain.EntryWithdraw, Amount: decimal.NewFromInt(-150)}

	mock.ExpectBegin()
	mock.ExpectQuery("UPDATE accounts").
		WithArgs(a.Balance.String(), a.ID, a.Version).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(a.ID).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectRollback()

	_, _, err := repo.SaveWithEntry(context.Background(), a, entry)
	require.ErrorIs(t, err, domain.ErrConcurrencyConflict)
	require.NoError(t, mock.ExpectationsWereMet())
}
