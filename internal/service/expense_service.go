// Package service implements the application services between the HTTP layer
// and storage: validated expense CRUD and the derived ledger views.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"splitease/internal/models"
	"splitease/internal/storage"
	"splitease/internal/validator"
)

// ErrInvalidExpense wraps validation failures so the transport layer can map
// them to a client error.
var ErrInvalidExpense = errors.New("invalid expense")

// ExpenseService provides validated CRUD over the expense store.
type ExpenseService struct {
	store storage.Store
}

// NewExpenseService creates an ExpenseService with the given storage backend.
func NewExpenseService(store storage.Store) *ExpenseService {
	return &ExpenseService{store: store}
}

// Create validates and persists a new expense, returning it with its
// generated ID and timestamp.
func (s *ExpenseService) Create(ctx context.Context, exp models.Expense) (*models.Expense, error) {
	if err := validator.ValidateExpense(exp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidExpense, err)
	}

	if err := s.store.CreateExpense(ctx, &exp); err != nil {
		slog.Error("CreateExpense failed", "error", err)
		return nil, err
	}

	slog.Info("Expense created", "expense_id", exp.ID, "amount", exp.Amount, "paid_by", exp.PaidBy)
	return &exp, nil
}

// Get retrieves one expense by ID.
func (s *ExpenseService) Get(ctx context.Context, id string) (*models.Expense, error) {
	return s.store.GetExpense(ctx, id)
}

// List returns all expenses, newest first.
func (s *ExpenseService) List(ctx context.Context) ([]models.Expense, error) {
	return s.store.ListExpenses(ctx)
}

// Update validates and replaces an existing expense.
func (s *ExpenseService) Update(ctx context.Context, exp models.Expense) (*models.Expense, error) {
	if exp.ID == "" {
		return nil, fmt.Errorf("%w: id required", ErrInvalidExpense)
	}
	if err := validator.ValidateExpense(exp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidExpense, err)
	}

	// Preserve the original creation time.
	existing, err := s.store.GetExpense(ctx, exp.ID)
	if err != nil {
		return nil, err
	}
	exp.CreatedAt = existing.CreatedAt

	if err := s.store.UpdateExpense(ctx, &exp); err != nil {
		slog.Error("UpdateExpense failed", "expense_id", exp.ID, "error", err)
		return nil, err
	}

	slog.Info("Expense updated", "expense_id", exp.ID)
	return &exp, nil
}

// Delete removes an expense by ID.
func (s *ExpenseService) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteExpense(ctx, id); err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			slog.Error("DeleteExpense failed", "expense_id", id, "error", err)
		}
		return err
	}

	slog.Info("Expense deleted", "expense_id", id)
	return nil
}
