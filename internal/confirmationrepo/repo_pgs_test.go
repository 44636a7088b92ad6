package confirmationrepo

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/VictorMordachini/conta-bancaria/internal/domain"
	"github.com/VictorMordachini/conta-bancaria/pkg/randompkg"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) (*RepoPGS, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() { db.Close() })

	return NewRepoPGS(db), mock
}

func codeRows(c domain.ConfirmationCode) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "holder_id", "code", "issued_at", "expires_at", "confirmed",
	}).AddRow(c.ID, c.HolderID, c.Code, c.IssuedAt, c.ExpiresAt, c.Confirmed)
}

func testCode(confirmed bool) domain.ConfirmationCode {
	now := time.Now().UTC()

	return domain.ConfirmationCode{
		ID:        randompkg.String(8),
		HolderID:  randompkg.String(8),
		Code:      randompkg.ConfirmationCode(),
		IssuedAt:  now,
		ExpiresAt: now.Add(5 * time.Minute),
		Confirmed: confirmed,
	}
}

func TestFindCurrent(t *testing.T) {
	repo, mock := newMock(t)
	c := testCode(false)

	mock.ExpectQuery("SELECT(.|\n)+FROM confirmation_codes").
		WithArgs(c.HolderID).
		WillReturnRows(codeRows(c))

	got, err := repo.FindCurrent(context.Background(), c.HolderID)
	require.NoError(t, err)
	require.Equal(t, c.ID, got.ID)
	require.False(t, got.Confirmed)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFindCurrentNone(t *testing.T) {
	repo, mock := newMock(t)
	holderID := randompkg.String(8)

	mock.ExpectQuery("SELECT(.|\n)+FROM confirmation_codes").
		WithArgs(holderID).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindCurrent(context.Background(), holderID)
	require.ErrorIs(t, err, domain.ErrConfirmationNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkConfirmed(t *testing.T) {
	repo, mock := newMock(t)

	c := testCode(true)

	mock.ExpectQuery("UPDATE confirmation_codes").
		WithArgs(c.ID).
		WillReturnRows(codeRows(c))

	got, err := repo.MarkConfirmed(context.Background(), c.ID)
	require.NoError(t, err)
	require.True(t, got.Confirmed)
	require.NoError(t, mock.ExpectationsWereMet())
}

// Confirming twice finds zero unconfirmed rows and reports the code as
// gone. This is what makes a replayed confirmation delivery harmless.
func TestMarkConfirmedTwice(t *testing.T) {
	repo, mock := newMock(t)
	id := randompkg.String(8)

	mock.ExpectQuery("UPDATE confirmation_codes").
		WithArgs(id).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.MarkConfirmed(context.Background(), id)
	require.ErrorIs(t, err, domain.ErrConfirmationNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
