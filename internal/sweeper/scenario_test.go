package sweeper

import (
	"context"
	"database/sql/driver"
	"testing"
	"time"

	"github.com/VictorMordachini/conta-bancaria/internal/confirmationrepo"
	"github.com/VictorMordachini/conta-bancaria/internal/confirmationservice"
	"github.com/VictorMordachini/conta-bancaria/internal/domain"
	"github.com/VictorMordachini/conta-bancaria/internal/pendingrepo"
	"github.com/VictorMordachini/conta-bancaria/internal/pendingservice"
	"github.com/VictorMordachini/conta-bancaria/pkg/messaging"
	"github.com/VictorMordachini/conta-bancaria/pkg/randompkg"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

// Matches a cutoff timestamp that precedes the code's expiry.
type cutoffBefore struct {
	expiry time.Time
}

func (c cutoffBefore) Match(v driver.Value) bool {
	cutoff, ok := v.(time.Time)
	return ok && cutoff.Before(c.expiry)
}

// The pendency age and the code lifetime are independent timers. A pendency
// over the max age is swept even while its confirmation code is unexpired;
// the code then validates against nothing.
func TestSweepOutpacesUnexpiredCode(t *testing.T) {
	pendingDB, pendingMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { pendingDB.Close() })

	codeDB, codeMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { codeDB.Close() })

	pendingService := pendingservice.New(pendingrepo.NewRepoPGS(pendingDB))
	codeService := confirmationservice.New(
		confirmationrepo.NewRepoPGS(codeDB),
		messaging.NewMemoryBus(),
		5*time.Minute,
	)

	now := time.Now().UTC()

	code := domain.ConfirmationCode{
		ID:        randompkg.String(8),
		HolderID:  randompkg.String(8),
		Code:      "390604",
		IssuedAt:  now.Add(-15 * time.Minute),
		ExpiresAt: now.Add(5 * time.Minute),
	}

	// The pendency is over the 10-minute max age while the code has five
	// minutes left. The sweep's cutoff must land before the code's expiry.
	pendingMock.ExpectExec("DELETE FROM pending_operations").
		WithArgs(cutoffBefore{expiry: code.ExpiresAt}).
		WillReturnResult(sqlmock.NewResult(0, 1))

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		defer close(done)
		New(pendingService, 5*time.Millisecond, 10*time.Minute).Run(ctx)
	}()

	deadline := time.After(time.Second)
	for pendingMock.ExpectationsWereMet() != nil {
		select {
		case <-deadline:
			t.Fatal("sweeper never removed the over-age pendency")
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	<-done

	ctx = context.Background()

	// The code still validates after the sweep.
	codeMock.ExpectQuery("SELECT(.|\n)+FROM confirmation_codes").
		WithArgs(code.HolderID).
		WillReturnRows(codeRows(code))

	confirmed := code
	confirmed.Confirmed = true
	codeMock.ExpectQuery("UPDATE confirmation_codes").
		WithArgs(code.ID).
		WillReturnRows(codeRows(confirmed))

	validated, err := codeService.Validate(ctx, code.HolderID, code.Code)
	require.NoError(t, err)
	require.True(t, validated.Confirmed)

	// But the operation it unlocked is gone.
	pendingMock.ExpectQuery("SELECT(.|\n)+FROM pending_operations").
		WithArgs(code.ID).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "kind", "source_number", "destination_number",
			"amount", "bill_reference", "confirmation_code_id", "created_at",
		}))

	_, err = pendingService.FindByCode(ctx, code.ID)
	require.ErrorIs(t, err, domain.ErrPendencyNotFound)

	require.NoError(t, codeMock.ExpectationsWereMet())
}

func codeRows(c domain.ConfirmationCode) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "holder_id", "code", "issued_at", "expires_at", "confirmed",
	}).AddRow(c.ID, c.HolderID, c.Code, c.IssuedAt, c.ExpiresAt, c.Confirmed)
}
