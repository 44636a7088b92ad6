// Package accountservice manages business logic layer of accounts.
package accountservice

import (
	"context"

	"github.com/VictorMordachini/conta-bancaria/internal/domain"
	"github.com/VictorMordachini/conta-bancaria/pkg/configpkg"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Repo provides data access layer interface needed by account service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package accountservice
type Repo interface {
	Create(ctx context.Context, account domain.Account) (domain.Account, error)
	Get(ctx context.Context, number int64) (domain.Account, error)
	ListByHolder(ctx context.Context, holderID string) ([]domain.Account, error)
	UpdateTerms(ctx context.Context, account domain.Account) (domain.Account, error)
	Deactivate(ctx context.Context, account domain.Account) error
	SaveWithEntry(ctx context.Context, account domain.Account, entry domain.Entry) (domain.Account, domain.Entry, error)
}

// EntryRepo provides ledger entry access needed by account service layer.
type EntryRepo interface {
	Create(ctx context.Context, entry domain.Entry) (domain.Entry, error)
	ListByAccount(ctx context.Context, accountID string) ([]domain.Entry, error)
}

// HolderRepo provides holder access needed by account service layer.
type HolderRepo interface {
	Create(ctx context.Context, id, name string) (domain.Holder, error)
	Get(ctx context.Context, id string) (domain.Holder, error)
}

// Defaults carries the configured account opening terms and deposit minimum.
type Defaults struct {
	MinimumDeposit  decimal.Decimal
	CheckingLimit   decimal.Decimal
	CheckingFeeRate decimal.Decimal
	SavingsYield    decimal.Decimal
}

// DefaultsFromConfig parses the decimal-valued config fields.
func DefaultsFromConfig(c configpkg.Config) (Defaults, error) {
	var (
		d   Defaults
		err error
	)

	if d.MinimumDeposit, err = decimal.NewFromString(c.MinimumDeposit); err != nil {
		return d, err
	}

	if d.CheckingLimit, err = decimal.NewFromString(c.DefaultCheckingLimit); err != nil {
		return d, err
	}

	if d.CheckingFeeRate, err = decimal.NewFromString(c.DefaultCheckingFeeRate); err != nil {
		return d, err
	}

	if d.SavingsYield, err = decimal.NewFromString(c.DefaultSavingsYield); err != nil {
		return d, err
	}

	return d, nil
}

// Service facilitates account service layer logic.
type Service struct {
	repo     Repo
	entries  EntryRepo
	holders  HolderRepo
	defaults Defaults
}

// New returns account service struct to manage account bussines logic.
func New(ar Repo, er EntryRepo, hr HolderRepo, d Defaults) *Service {
	return &Service{repo: ar, entries: er, holders: hr, defaults: d}
}

// CreateHolder registers a new account holder.
func (s *Service) CreateHolder(ctx context.Context, name string) (domain.Holder, error) {
	return s.holders.Create(ctx, uuid.NewString(), name)
}

// GetHolder returns the holder with the given id.
func (s *Service) GetHolder(ctx context.Context, id string) (domain.Holder, error) {
	return s.holders.Get(ctx, id)
}

// Open creates an account of the given type with the configured default
// terms and records the initial deposit as an opening ledger entry.
func (s *Service) Open(ctx context.Context, holderID string, accType domain.AccountType, number int64, initialDeposit decimal.Decimal) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	if initialDeposit.IsNegative() {
		return domain.Account{}, domain.ErrInvalidAmount
	}

	if _, err := s.holders.Get(ctx, holderID); err != nil {
		return domain.Account{}, err
	}

	account := domain.Account{
		ID:       uuid.NewString(),
		Number:   number,
		Type:     accType,
		Balance:  initialDeposit,
		HolderID: holderID,
	}

	switch accType {
	case domain.Checking:
		account.OverdraftLimit = s.defaults.CheckingLimit
		account.FeeRate = s.defaults.CheckingFeeRate
	case domain.Savings:
		account.YieldRate = s.defaults.SavingsYield
	default:
		return domain.Account{}, domain.ErrInvalidOperation
	}

	created, err := s.repo.Create(ctx, account)
	if err != nil {
		return created, err
	}

	if initialDeposit.IsPositive() {
		entry := domain.Entry{AccountID: created.ID, Kind: domain.EntryOpen, Amount: initialDeposit}
		if _, err := s.entries.Create(ctx, entry); err != nil {
			l.Error().Err(err).Msg("recording opening entry")
			return created, err
		}
	}

	return created, nil
}

// Get returns the account with the given number.
func (s *Service) Get(ctx context.Context, number int64) (domain.Account, error) {
	return s.repo.Get(ctx, number)
}

// ListByHolder returns the holder's accounts.
func (s *Service) ListByHolder(ctx context.Context, holderID string) ([]domain.Account, error) {
	return s.repo.ListByHolder(ctx, holderID)
}

// Deposit credits the account with the given amount. Deposits must exceed
// the configured minimum.
func (s *Service) Deposit(ctx context.Context, number int64, amount decimal.Decimal) (domain.Account, error) {
	if amount.LessThanOrEqual(s.defaults.MinimumDeposit) {
		return domain.Account{}, domain.ErrInvalidAmount
	}

	account, err := s.repo.Get(ctx, number)
	if err != nil {
		return domain.Account{}, err
	}

	if err := account.Credit(amount); err != nil {
		return domain.Account{}, err
	}

	entry := domain.Entry{Kind: domain.EntryDeposit, Amount: amount}

	updated, _, err := s.repo.SaveWithEntry(ctx, account, entry)

	return updated, err
}

// Withdraw debits the account by the effective amount, principal plus the
// checking percentage fee. A stale version surfaces as ErrConcurrencyConflict
// and is never retried here.
func (s *Service) Withdraw(ctx context.Context, number int64, amount decimal.Decimal) (domain.Account, error) {
	account, err := s.repo.Get(ctx, number)
	if err != nil {
		return domain.Account{}, err
	}

	effective, err := account.Withdraw(amount)
	if err != nil {
		return domain.Account{}, err
	}

	entry := domain.Entry{Kind: domain.EntryWithdraw, Amount: effective.Neg()}

	updated, _, err := s.repo.SaveWithEntry(ctx, account, entry)

	return updated, err
}

// Transfer moves the amount from one account to another. The sender absorbs
// the fee; the destination receives the raw amount. Debit and credit are two
// independent atomic units; a failed credit is compensated by re-crediting
// the source.
func (s *Service) Transfer(ctx context.Context, sourceNumber, destNumber int64, amount decimal.Decimal) error {
	l := zerolog.Ctx(ctx)

	if sourceNumber == destNumber {
		return domain.ErrInvalidOperation
	}

	source, err := s.repo.Get(ctx, sourceNumber)
	if err != nil {
		return err
	}

	dest, err := s.repo.Get(ctx, destNumber)
	if err != nil {
		return err
	}

	effective, err := source.DebitForTransfer(amount)
	if err != nil {
		return err
	}

	outEntry := domain.Entry{
		Kind:               domain.EntryTransferOut,
		Amount:             effective.Neg(),
		CounterpartyNumber: dest.Number,
	}

	if _, _, err := s.repo.SaveWithEntry(ctx, source, outEntry); err != nil {
		return err
	}

	if err := dest.Credit(amount); err != nil {
		s.reverseDebit(ctx, sourceNumber, destNumber, effective)
		return err
	}

	inEntry := domain.Entry{
		Kind:               domain.EntryTransferIn,
		Amount:             amount,
		CounterpartyNumber: source.Number,
	}

	if _, _, err := s.repo.SaveWithEntry(ctx, dest, inEntry); err != nil {
		l.Error().Err(err).
			Int64("source", sourceNumber).
			Int64("destination", destNumber).
			Msg("destination credit failed after source debit, compensating")

		s.reverseDebit(ctx, sourceNumber, destNumber, effective)

		return err
	}

	return nil
}

// reverseDebit re-credits a debited source after the destination leg of a
// transfer failed. The reversal itself can lose a version race; that failure
// is logged for reconciliation, not propagated.
func (s *Service) reverseDebit(ctx context.Context, sourceNumber, destNumber int64, effective decimal.Decimal) {
	l := zerolog.Ctx(ctx)

	source, err := s.repo.Get(ctx, sourceNumber)
	if err != nil {
		l.Error().Err(err).Int64("source", sourceNumber).Msg("transfer reversal: reload failed")
		return
	}

	source.Balance = source.Balance.Add(effective)

	entry := domain.Entry{
		Kind:               domain.EntryTransferReversal,
		Amount:             effective,
		CounterpartyNumber: destNumber,
	}

	if _, _, err := s.repo.SaveWithEntry(ctx, source, entry); err != nil {
		l.Error().Err(err).Int64("source", sourceNumber).Msg("transfer reversal failed")
	}
}

// Statement returns the account's ledger entries ordered newest first.
func (s *Service) Statement(ctx context.Context, number int64) ([]domain.Entry, error) {
	account, err := s.repo.Get(ctx, number)
	if err != nil {
		return nil, err
	}

	return s.entries.ListByAccount(ctx, account.ID)
}

// Deactivate soft-deactivates the account.
func (s *Service) Deactivate(ctx context.Context, number int64) error {
	account, err := s.repo.Get(ctx, number)
	if err != nil {
		return err
	}

	return s.repo.Deactivate(ctx, account)
}

// UpdateCheckingTerms partially updates a checking account's overdraft limit
// and fee rate. Nil fields keep the current value.
func (s *Service) UpdateCheckingTerms(ctx context.Context, number int64, limit, feeRate *decimal.Decimal) (domain.Account, error) {
	account, err := s.repo.Get(ctx, number)
	if err != nil {
		return domain.Account{}, err
	}

	if account.Type != domain.Checking {
		return domain.Account{}, domain.ErrInvalidOperation
	}

	if limit != nil {
		if limit.IsNegative() {
			return domain.Account{}, domain.ErrInvalidAmount
		}

		account.OverdraftLimit = *limit
	}

	if feeRate != nil {
		if feeRate.IsNegative() {
			return domain.Account{}, domain.ErrInvalidAmount
		}

		account.FeeRate = *feeRate
	}

	return s.repo.UpdateTerms(ctx, account)
}

// ApplyYield credits a savings account with balance times its yield rate.
func (s *Service) ApplyYield(ctx context.Context, number int64) (domain.Account, error) {
	account, err := s.repo.Get(ctx, number)
	if err != nil {
		return domain.Account{}, err
	}

	if account.Type != domain.Savings {
		return domain.Account{}, domain.ErrInvalidOperation
	}

	yield := account.Balance.Mul(account.YieldRate)
	if !yield.IsPositive() {
		return account, nil
	}

	account.Balance = account.Balance.Add(yield)

	entry := domain.Entry{Kind: domain.EntryYield, Amount: yield}

	updated, _, err := s.repo.SaveWithEntry(ctx, account, entry)

	return updated, err
}
