package services

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
	"fintrack/internal/store"
)

// transactionService handles transaction-related business logic.
type transactionService struct {
	store      store.TransactionStore
	categories CategoryServicer
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(s store.TransactionStore, categories CategoryServicer) TransactionServicer {
	return &transactionService{
		store:      s,
		categories: categories,
	}
}

// ListTransactions returns a page of matching transactions, newest first.
func (s *transactionService) ListTransactions(
	ctx context.Context,
	filter store.TransactionFilter,
	page pagination.PageRequest,
) (*pagination.PageResponse[models.Transaction], error) {
	txs, err := s.store.ListTransactions(ctx, filter)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	result := pagination.Slice(txs, page)
	return &result, nil
}

// GetTransaction returns a transaction by ID.
func (s *transactionService) GetTransaction(ctx context.Context, id string) (*models.Transaction, error) {
	tx, err := s.store.GetTransaction(ctx, id)
	if err != nil {
		return nil, storeError(err, apperrors.ErrTransactionNotFound)
	}
	return tx, nil
}

// CreateTransaction validates the input and stores a new transaction.
func (s *transactionService) CreateTransaction(ctx context.Context, in TransactionInput) (*models.Transaction, error) {
	if in.Type == "" {
		in.Type = models.TransactionTypeExpense
	}
	if err := s.validate(ctx, &in); err != nil {
		return nil, err
	}

	tx := &models.Transaction{
		Amount:      in.Amount,
		Date:        in.Date,
		Description: in.Description,
		CategoryID:  in.CategoryID,
		Type:        in.Type,
	}
	if err := s.store.InsertTransaction(ctx, tx); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return tx, nil
}

// UpdateTransaction replaces every writable field of an existing transaction.
func (s *transactionService) UpdateTransaction(ctx context.Context, id string, in TransactionInput) (*models.Transaction, error) {
	if in.Type == "" {
		existing, err := s.GetTransaction(ctx, id)
		if err != nil {
			return nil, err
		}
		in.Type = existing.Type
	}
	if err := s.validate(ctx, &in); err != nil {
		return nil, err
	}

	tx := &models.Transaction{
		Base:        models.Base{ID: id},
		Amount:      in.Amount,
		Date:        in.Date,
		Description: in.Description,
		CategoryID:  in.CategoryID,
		Type:        in.Type,
	}
	if err := s.store.ReplaceTransaction(ctx, tx); err != nil {
		return nil, storeError(err, apperrors.ErrTransactionNotFound)
	}
	return tx, nil
}

// DeleteTransaction removes a transaction by ID.
func (s *transactionService) DeleteTransaction(ctx context.Context, id string) error {
	removed, err := s.store.RemoveTransaction(ctx, id)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if !removed {
		return apperrors.ErrTransactionNotFound
	}
	return nil
}

// validate checks every field of in, trims the description and reports all
// offending fields at once.
func (s *transactionService) validate(ctx context.Context, in *TransactionInput) error {
	idx, err := s.categories.Index(ctx)
	if err != nil {
		return err
	}

	details := make(map[string]string)
	if !validAmount(in.Amount) {
		details["amount"] = "must be a number greater than 0"
	}
	if in.Date == "" {
		details["date"] = "is required"
	} else if _, err := time.Parse(models.DateLayout, in.Date); err != nil {
		details["date"] = "must be a date in YYYY-MM-DD format"
	}
	in.Description = strings.TrimSpace(in.Description)
	if in.Description == "" {
		details["description"] = "is required"
	}
	if in.CategoryID == "" {
		details["category"] = "is required"
	} else if !idx.Has(in.CategoryID) {
		details["category"] = "must be a known category"
	}
	if !in.Type.Valid() {
		details["type"] = "must be income or expense"
	}

	if len(details) > 0 {
		return apperrors.Validation(details)
	}
	return nil
}

func validAmount(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

// storeError maps store.ErrNotFound to notFound and anything else to an
// internal error.
func storeError(err error, notFound *apperrors.AppError) error {
	if errors.Is(err, store.ErrNotFound) {
		return notFound
	}
	return apperrors.Wrap(apperrors.ErrInternalServer, err)
}
