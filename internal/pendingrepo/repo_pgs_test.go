package pendingrepo

import (
	"context"
	"testing"
	"time"

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

func TestCreate(t *testing.T) {
	repo, mock := newMock(t)

	arg := domain.CreatePendingParams{
		Kind:               domain.OperationWithdraw,
		SourceNumber:       randompkg.AccountNumber(),
		Amount:             decimal.NewFromInt(250),
		ConfirmationCodeID: randompkg.String(8),
	}

	mock.ExpectQuery("INSERT INTO(.|\n)+pending_operations").
		WithArgs(sqlmock.AnyArg(), arg.Kind, arg.SourceNumber, arg.DestinationNumber,
			arg.Amount.String(), arg.BillReference, arg.ConfirmationCodeID).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "kind", "source_number", "destination_number",
			"amount", "bill_reference", "confirmation_code_id", "created_at",
		}).AddRow(randompkg.String(8), arg.Kind, arg.SourceNumber, int64(0),
			arg.Amount.String(), "", arg.ConfirmationCodeID, time.Now().UTC()))

	p, err := repo.Create(context.Background(), arg)
	require.NoError(t, err)
	require.Equal(t, arg.ConfirmationCodeID, p.ConfirmationCodeID)
	require.True(t, p.Amount.Equal(arg.Amount))
	require.NoError(t, mock.ExpectationsWereMet())
}

// The 1:1 link between code and pendency is a unique constraint; the
// violation surfaces as a domain error.
func TestCreateCodeAlreadyLinked(t *testing.T) {
	repo, mock := newMock(t)

	arg := domain.CreatePendingParams{
		Kind:               domain.OperationWithdraw,
		SourceNumber:       randompkg.AccountNumber(),
		Amount:             decimal.NewFromInt(250),
		ConfirmationCodeID: randompkg.String(8),
	}

	mock.ExpectQuery("INSERT INTO(.|\n)+pending_operations").
		WillReturnError(&pq.Error{Constraint: "pending_operations_confirmation_code_id_key"})

	_, err := repo.Create(context.Background(), arg)
	require.ErrorIs(t, err, domain.ErrCodeAlreadyLinked)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUnknownCode(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery("INSERT INTO(.|\n)+pending_operations").
		WillReturnError(&pq.Error{Constraint: "pending_operations_confirmation_code_id_fkey"})

	_, err := repo.Create(context.Background(), domain.CreatePendingParams{
		Kind:         domain.OperationWithdraw,
		SourceNumber: randompkg.AccountNumber(),
		Amount:       decimal.NewFromInt(250),
	})
	require.ErrorIs(t, err, domain.ErrConfirmationNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteOlderThan(t *testing.T) {
	repo, mock := newMock(t)

	cutoff := time.Now().UTC().Add(-10 * time.Minute)

	mock.ExpectExec("DELETE FROM pending_operations").
		WithArgs(cutoff).
		WillReturnResult(sqlmock.NewResult(0, 4))

	removed, err := repo.DeleteOlderThan(context.Background(), cutoff)
	require.NoError(t, err)
	require.Equal(t, int64(4), removed)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteIsIdempotent(t *testing.T) {
	repo, mock := newMock(t)

	id := randompkg.String(8)

	mock.ExpectExec("DELETE FROM pending_operations").
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Delete(context.Background(), id))
	require.NoError(t, mock.ExpectationsWereMet())
}
