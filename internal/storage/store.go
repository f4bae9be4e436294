// Package storage provides abstractions for persistent expense storage.
package storage

import (
	"context"
	"errors"

	"splitease/internal/models"
)

// ErrNotFound is returned when the requested expense does not exist.
var ErrNotFound = errors.New("expense not found")

// Store defines the interface for expense storage operations. This
// abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	// CreateExpense persists a new expense. The expense's ID and
	// CreatedAt fields are populated by the store if unset.
	CreateExpense(ctx context.Context, exp *models.Expense) error

	// GetExpense retrieves an expense by ID. Returns ErrNotFound if no
	// expense has that ID.
	GetExpense(ctx context.Context, id string) (*models.Expense, error)

	// ListExpenses returns all expenses, newest first.
	ListExpenses(ctx context.Context) ([]models.Expense, error)

	// UpdateExpense replaces an existing expense. Returns ErrNotFound if
	// the expense does not exist.
	UpdateExpense(ctx context.Context, exp *models.Expense) error

	// DeleteExpense removes an expense by ID. Returns ErrNotFound if the
	// expense does not exist.
	DeleteExpense(ctx context.Context, id string) error

	// Close releases any resources held by the store.
	Close() error
}
