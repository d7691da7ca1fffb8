package service

import (
	"context"
	"fmt"
	"time"

	"paylater-ledger/internal/core/domain"
	"paylater-ledger/internal/core/ports"
	"paylater-ledger/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// LedgerServiceImpl implements ports.LedgerService.
//
// Every mutation runs inside a single database transaction with the customer
// row locked first and the merchant row second (FOR UPDATE). The fixed lock
// order keeps concurrent CreateTransaction/Repay calls on the same entities
// deadlock-free, and the locks close the stale-limit race: two purchases
// against the same customer serialize, so the credit limit check always sees
// the committed value.
type LedgerServiceImpl struct {
	customerRepo ports.CustomerRepository
	merchantRepo ports.MerchantRepository
	txRepo       ports.TransactionRepository
	transactor   ports.DBTransactor
	log          zerolog.Logger
}

// NewLedgerService creates a new LedgerServiceImpl.
func NewLedgerService(
	customerRepo ports.CustomerRepository,
	merchantRepo ports.MerchantRepository,
	txRepo ports.TransactionRepository,
	transactor ports.DBTransactor,
	log zerolog.Logger,
) *LedgerServiceImpl {
	return &LedgerServiceImpl{
		customerRepo: customerRepo,
		merchantRepo: merchantRepo,
		txRepo:       txRepo,
		transactor:   transactor,
		log:          log,
	}
}

// CreateTransaction records a purchase: it debits the customer's credit limit,
// credits the merchant's earnings net of commission, and inserts the ledger
// entry with the commission rate snapshotted. All-or-nothing.
func (s *LedgerServiceImpl) CreateTransaction(ctx context.Context, req ports.CreateTransactionRequest) (*domain.Transaction, error) {
	if req.Amount <= 0 {
		return nil, apperror.ErrInvalidAmount()
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	// Lock customer row first, merchant second.
	customer, err := s.customerRepo.GetByIDForUpdate(ctx, dbTx, req.CustomerID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lock customer: %w", err))
	}
	if customer == nil {
		return nil, apperror.ErrNotFound("Customer")
	}

	merchant, err := s.merchantRepo.GetByIDForUpdate(ctx, dbTx, req.MerchantID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lock merchant: %w", err))
	}
	if merchant == nil {
		return nil, apperror.ErrNotFound("Merchant")
	}

	// Business rule: amount must fit within available credit.
	if !customer.CanAfford(req.Amount) {
		return nil, apperror.ErrInsufficientCredit()
	}

	now := time.Now().UTC()
	txn := &domain.Transaction{
		ID:             uuid.New(),
		CustomerID:     customer.ID,
		MerchantID:     merchant.ID,
		Amount:         req.Amount,
		CommissionRate: merchant.CommissionRate,
		IsRepaid:       false,
		CreatedAt:      now,
	}

	// Persist: debit customer credit.
	newLimit := customer.CreditLimit - req.Amount
	if err := s.customerRepo.UpdateCreditLimit(ctx, dbTx, customer.ID, newLimit); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("debit credit limit: %w", err))
	}

	// Persist: credit merchant earning net of commission.
	newEarning := merchant.TotalEarning + txn.NetEarning()
	if err := s.merchantRepo.UpdateTotalEarning(ctx, dbTx, merchant.ID, newEarning); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("credit merchant earning: %w", err))
	}

	// Persist: ledger entry.
	if err := s.txRepo.Create(ctx, dbTx, txn); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create transaction: %w", err))
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	s.log.Info().
		Str("tx_id", txn.ID.String()).
		Str("customer_id", customer.ID.String()).
		Str("merchant_id", merchant.ID.String()).
		Int64("amount", req.Amount).
		Int64("new_limit", newLimit).
		Msg("transaction recorded")

	return txn, nil
}

// Repay settles an outstanding transaction: it restores the customer's credit
// limit and reverses the merchant's earning using the rate snapshotted at
// creation, so the pair always nets to zero. Repaid is terminal.
func (s *LedgerServiceImpl) Repay(ctx context.Context, transactionID uuid.UUID) (*domain.Transaction, error) {
	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	txn, err := s.txRepo.GetByIDForUpdate(ctx, dbTx, transactionID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lock transaction: %w", err))
	}
	if txn == nil {
		return nil, apperror.ErrNotFound("Transaction")
	}
	if !txn.CanRepay() {
		return nil, apperror.ErrAlreadyRepaid()
	}

	// Same lock order as CreateTransaction: customer first, merchant second.
	customer, err := s.customerRepo.GetByIDForUpdate(ctx, dbTx, txn.CustomerID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lock customer: %w", err))
	}
	if customer == nil {
		return nil, apperror.ErrNotFound("Customer")
	}

	merchant, err := s.merchantRepo.GetByIDForUpdate(ctx, dbTx, txn.MerchantID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lock merchant: %w", err))
	}
	if merchant == nil {
		return nil, apperror.ErrNotFound("Merchant")
	}

	now := time.Now().UTC()

	// Persist: restore customer credit.
	newLimit := customer.CreditLimit + txn.Amount
	if err := s.customerRepo.UpdateCreditLimit(ctx, dbTx, customer.ID, newLimit); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("restore credit limit: %w", err))
	}

	// Persist: reverse merchant earning with the snapshotted rate.
	newEarning := merchant.TotalEarning - txn.NetEarning()
	if err := s.merchantRepo.UpdateTotalEarning(ctx, dbTx, merchant.ID, newEarning); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("reverse merchant earning: %w", err))
	}

	// Persist: mark repaid.
	if err := s.txRepo.MarkRepaid(ctx, dbTx, txn.ID, now); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("mark repaid: %w", err))
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	txn.IsRepaid = true
	txn.RepaidAt = &now

	s.log.Info().
		Str("tx_id", txn.ID.String()).
		Str("customer_id", customer.ID.String()).
		Int64("amount", txn.Amount).
		Int64("restored_limit", newLimit).
		Msg("transaction repaid")

	return txn, nil
}

// ListTransactions returns every ledger entry in insertion order.
func (s *LedgerServiceImpl) ListTransactions(ctx context.Context) ([]domain.Transaction, error) {
	txns, err := s.txRepo.List(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("list transactions: %w", err))
	}
	return txns, nil
}
