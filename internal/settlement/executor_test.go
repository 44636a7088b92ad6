package settlement

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/VictorMordachini/conta-bancaria/internal/domain"
	"github.com/VictorMordachini/conta-bancaria/pkg/messaging"
	"github.com/VictorMordachini/conta-bancaria/pkg/randompkg"

	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type stubs struct {
	confirmations *MockConfirmationValidator
	pendencies    *MockPendencyStore
	ledger        *MockLedger
	payments      *MockBillPayer
	notifier      *MockNotifier
}

func newTestExecutor(t *testing.T) (*Executor, stubs) {
	ctrl := gomock.NewController(t)
	st := stubs{
		confirmations: NewMockConfirmationValidator(ctrl),
		pendencies:    NewMockPendencyStore(ctrl),
		ledger:        NewMockLedger(ctrl),
		payments:      NewMockBillPayer(ctrl),
		notifier:      NewMockNotifier(ctrl),
	}

	return NewExecutor(st.confirmations, st.pendencies, st.ledger, st.payments, st.notifier), st
}

func validation(holderID, code string) []byte {
	payload, _ := json.Marshal(domain.DeviceValidation{
		HolderID:      holderID,
		CodeSubmitted: code,
		BiometryOK:    true,
	})

	return payload
}

func confirmedCode(holderID string) domain.ConfirmationCode {
	now := time.Now().UTC()

	return domain.ConfirmationCode{
		ID:        randompkg.String(8),
		HolderID:  holderID,
		Code:      randompkg.ConfirmationCode(),
		IssuedAt:  now.Add(-time.Minute),
		ExpiresAt: now.Add(4 * time.Minute),
		Confirmed: true,
	}
}

func TestHandleBiometryRejected(t *testing.T) {
	executor, st := newTestExecutor(t)

	holderID := randompkg.String(8)
	payload, _ := json.Marshal(domain.DeviceValidation{
		HolderID:      holderID,
		CodeSubmitted: "123456",
		BiometryOK:    false,
	})

	// No validation, no pendency lookup, no ledger touch.
	st.notifier.EXPECT().Notify(gomock.Any(), holderID, domain.NotifyFailure, gomock.Any())

	executor.Handle(context.Background(), payload)
}

func TestHandleConfirmationRejected(t *testing.T) {
	holderID := randompkg.String(8)

	for _, wantErr := range []error{
		domain.ErrConfirmationNotFound,
		domain.ErrConfirmationExpired,
		domain.ErrConfirmationMismatch,
	} {
		t.Run(wantErr.Error(), func(t *testing.T) {
			executor, st := newTestExecutor(t)

			st.confirmations.EXPECT().Validate(gomock.Any(), holderID, "123456").
				Return(domain.ConfirmationCode{}, wantErr)
			st.notifier.EXPECT().Notify(gomock.Any(), holderID, domain.NotifyFailure, wantErr.Error())

			executor.Handle(context.Background(), validation(holderID, "123456"))
		})
	}
}

func TestHandleConfirmedCodeWithoutPendency(t *testing.T) {
	executor, st := newTestExecutor(t)

	holderID := randompkg.String(8)
	code := confirmedCode(holderID)

	st.confirmations.EXPECT().Validate(gomock.Any(), holderID, code.Code).Return(code, nil)
	st.pendencies.EXPECT().FindByCode(gomock.Any(), code.ID).
		Return(domain.PendingOperation{}, domain.ErrPendencyNotFound)
	st.notifier.EXPECT().Notify(gomock.Any(), holderID, domain.NotifyInfo, gomock.Any())

	executor.Handle(context.Background(), validation(holderID, code.Code))
}

func TestHandleWithdrawSettles(t *testing.T) {
	executor, st := newTestExecutor(t)

	holderID := randompkg.String(8)
	code := confirmedCode(holderID)
	p := domain.PendingOperation{
		ID:                 randompkg.String(8),
		Kind:               domain.OperationWithdraw,
		SourceNumber:       randompkg.AccountNumber(),
		Amount:             decimal.NewFromInt(100),
		ConfirmationCodeID: code.ID,
	}

	st.confirmations.EXPECT().Validate(gomock.Any(), holderID, code.Code).Return(code, nil)
	st.pendencies.EXPECT().FindByCode(gomock.Any(), code.ID).Return(p, nil)
	st.ledger.EXPECT().Withdraw(gomock.Any(), p.SourceNumber, p.Amount).
		Return(domain.Account{}, nil)
	st.pendencies.EXPECT().Remove(gomock.Any(), p.ID).Return(nil)
	st.notifier.EXPECT().Notify(gomock.Any(), holderID, domain.NotifySuccess, "WITHDRAW of 100 settled")

	executor.Handle(context.Background(), validation(holderID, code.Code))
}

func TestHandleTransferSettles(t *testing.T) {
	executor, st := newTestExecutor(t)

	holderID := randompkg.String(8)
	code := confirmedCode(holderID)
	p := domain.PendingOperation{
		ID:                 randompkg.String(8),
		Kind:               domain.OperationTransfer,
		SourceNumber:       randompkg.AccountNumber(),
		DestinationNumber:  randompkg.AccountNumber(),
		Amount:             decimal.NewFromInt(250),
		ConfirmationCodeID: code.ID,
	}

	st.confirmations.EXPECT().Validate(gomock.Any(), holderID, code.Code).Return(code, nil)
	st.pendencies.EXPECT().FindByCode(gomock.Any(), code.ID).Return(p, nil)
	st.ledger.EXPECT().Transfer(gomock.Any(), p.SourceNumber, p.DestinationNumber, p.Amount).Return(nil)
	st.pendencies.EXPECT().Remove(gomock.Any(), p.ID).Return(nil)
	st.notifier.EXPECT().Notify(gomock.Any(), holderID, domain.NotifySuccess, gomock.Any())

	executor.Handle(context.Background(), validation(holderID, code.Code))
}

func TestHandleBillPaymentSettles(t *testing.T) {
	executor, st := newTestExecutor(t)

	holderID := randompkg.String(8)
	code := confirmedCode(holderID)
	p := domain.PendingOperation{
		ID:                 randompkg.String(8),
		Kind:               domain.OperationBillPayment,
		SourceNumber:       randompkg.AccountNumber(),
		Amount:             decimal.NewFromInt(80),
		BillReference:      "BOL-2024-0042",
		ConfirmationCodeID: code.ID,
	}

	st.confirmations.EXPECT().Validate(gomock.Any(), holderID, code.Code).Return(code, nil)
	st.pendencies.EXPECT().FindByCode(gomock.Any(), code.ID).Return(p, nil)
	st.payments.EXPECT().Pay(gomock.Any(), p.SourceNumber, p.BillReference, p.Amount, gomock.Nil()).
		Return(domain.Payment{Status: domain.PaymentSuccess}, nil)
	st.pendencies.EXPECT().Remove(gomock.Any(), p.ID).Return(nil)
	st.notifier.EXPECT().Notify(gomock.Any(), holderID, domain.NotifySuccess, gomock.Any())

	executor.Handle(context.Background(), validation(holderID, code.Code))
}

// A pendency is consumed exactly once even when the dispatched operation
// fails with a business error.
func TestHandleFailedOperationStillConsumesPendency(t *testing.T) {
	for _, opErr := range []error{domain.ErrInsufficientFunds, domain.ErrConcurrencyConflict} {
		t.Run(opErr.Error(), func(t *testing.T) {
			executor, st := newTestExecutor(t)

			holderID := randompkg.String(8)
			code := confirmedCode(holderID)
			p := domain.PendingOperation{
				ID:                 randompkg.String(8),
				Kind:               domain.OperationWithdraw,
				SourceNumber:       randompkg.AccountNumber(),
				Amount:             decimal.NewFromInt(5000),
				ConfirmationCodeID: code.ID,
			}

			st.confirmations.EXPECT().Validate(gomock.Any(), holderID, code.Code).Return(code, nil)
			st.pendencies.EXPECT().FindByCode(gomock.Any(), code.ID).Return(p, nil)
			st.ledger.EXPECT().Withdraw(gomock.Any(), p.SourceNumber, p.Amount).
				Return(domain.Account{}, opErr)
			st.pendencies.EXPECT().Remove(gomock.Any(), p.ID).Return(nil)
			st.notifier.EXPECT().Notify(gomock.Any(), holderID, domain.NotifyFailure, gomock.Any())

			executor.Handle(context.Background(), validation(holderID, code.Code))
		})
	}
}

func TestHandleMalformedPayload(t *testing.T) {
	executor, _ := newTestExecutor(t)

	// Nothing is called; the message is dropped.
	executor.Handle(context.Background(), []byte("{not json"))
}

// End to end over the in-process bus: a published validation message reaches
// the executor through the wildcard subscription.
func TestSubscribeReceivesPublishedValidation(t *testing.T) {
	executor, st := newTestExecutor(t)

	bus := messaging.NewMemoryBus()
	require.NoError(t, executor.Subscribe(context.Background(), bus))

	holderID := randompkg.String(8)
	code := confirmedCode(holderID)
	p := domain.PendingOperation{
		ID:                 randompkg.String(8),
		Kind:               domain.OperationWithdraw,
		SourceNumber:       randompkg.AccountNumber(),
		Amount:             decimal.NewFromInt(100),
		ConfirmationCodeID: code.ID,
	}

	st.confirmations.EXPECT().Validate(gomock.Any(), holderID, code.Code).Return(code, nil)
	st.pendencies.EXPECT().FindByCode(gomock.Any(), code.ID).Return(p, nil)
	st.ledger.EXPECT().Withdraw(gomock.Any(), p.SourceNumber, p.Amount).Return(domain.Account{}, nil)
	st.pendencies.EXPECT().Remove(gomock.Any(), p.ID).Return(nil)
	st.notifier.EXPECT().Notify(gomock.Any(), holderID, domain.NotifySuccess, gomock.Any())

	err := bus.Publish(context.Background(), "auth/validation/device-1", domain.DeviceValidation{
		HolderID:      holderID,
		CodeSubmitted: code.Code,
		BiometryOK:    true,
	})
	require.NoError(t, err)
}
