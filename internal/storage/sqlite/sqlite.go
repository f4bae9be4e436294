// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"splitease/internal/models"
	"splitease/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path. It creates the
// parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateExpense persists a new expense to the database.
func (s *SQLiteStore) CreateExpense(ctx context.Context, exp *models.Expense) error {
	if exp.ID == "" {
		exp.ID = uuid.New().String()
	}
	if exp.CreatedAt == 0 {
		exp.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var category any
	if exp.Category != "" {
		category = exp.Category
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO expenses (id, description, amount, paid_by, split_method, category, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		exp.ID, exp.Description, exp.Amount, exp.PaidBy, string(exp.Method), category, exp.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	if err := insertChildren(ctx, tx, exp); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetExpense retrieves an expense by ID, including participants and shares.
func (s *SQLiteStore) GetExpense(ctx context.Context, id string) (*models.Expense, error) {
	exp := &models.Expense{}
	var method string
	var category sql.NullString

	err := s.db.QueryRowContext(ctx,
		"SELECT id, description, amount, paid_by, split_method, category, created_at FROM expenses WHERE id = ?",
		id,
	).Scan(&exp.ID, &exp.Description, &exp.Amount, &exp.PaidBy, &method, &category, &exp.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}
	exp.Method = models.SplitMethod(method)
	if category.Valid {
		exp.Category = category.String
	}

	if err := s.loadChildren(ctx, exp); err != nil {
		return nil, err
	}
	return exp, nil
}

// ListExpenses returns all expenses ordered newest first.
func (s *SQLiteStore) ListExpenses(ctx context.Context) ([]models.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, description, amount, paid_by, split_method, category, created_at FROM expenses ORDER BY created_at DESC, id",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []models.Expense
	for rows.Next() {
		var exp models.Expense
		var method string
		var category sql.NullString
		if err := rows.Scan(&exp.ID, &exp.Description, &exp.Amount, &exp.PaidBy, &method, &category, &exp.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		exp.Method = models.SplitMethod(method)
		if category.Valid {
			exp.Category = category.String
		}
		expenses = append(expenses, exp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	for i := range expenses {
		if err := s.loadChildren(ctx, &expenses[i]); err != nil {
			return nil, err
		}
	}
	return expenses, nil
}

// UpdateExpense replaces an existing expense and its child rows.
func (s *SQLiteStore) UpdateExpense(ctx context.Context, exp *models.Expense) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var category any
	if exp.Category != "" {
		category = exp.Category
	}

	res, err := tx.ExecContext(ctx,
		"UPDATE expenses SET description = ?, amount = ?, paid_by = ?, split_method = ?, category = ? WHERE id = ?",
		exp.Description, exp.Amount, exp.PaidBy, string(exp.Method), category, exp.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update expense: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", storage.ErrNotFound, exp.ID)
	}

	// Replace participants and shares wholesale; both tables are small.
	if _, err := tx.ExecContext(ctx, "DELETE FROM expense_participants WHERE expense_id = ?", exp.ID); err != nil {
		return fmt.Errorf("failed to clear participants: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM expense_shares WHERE expense_id = ?", exp.ID); err != nil {
		return fmt.Errorf("failed to clear shares: %w", err)
	}
	if err := insertChildren(ctx, tx, exp); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// DeleteExpense removes an expense; child rows cascade.
func (s *SQLiteStore) DeleteExpense(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM expenses WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", storage.ErrNotFound, id)
	}
	return nil
}

func insertChildren(ctx context.Context, tx *sql.Tx, exp *models.Expense) error {
	for _, name := range exp.Participants {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO expense_participants (expense_id, name) VALUES (?, ?)",
			exp.ID, name,
		); err != nil {
			return fmt.Errorf("failed to insert participant: %w", err)
		}
	}
	for name, share := range exp.Shares {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO expense_shares (expense_id, name, share) VALUES (?, ?, ?)",
			exp.ID, name, share,
		); err != nil {
			return fmt.Errorf("failed to insert share: %w", err)
		}
	}
	return nil
}

func (s *SQLiteStore) loadChildren(ctx context.Context, exp *models.Expense) error {
	rows, err := s.db.QueryContext(ctx,
		"SELECT name FROM expense_participants WHERE expense_id = ? ORDER BY name",
		exp.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to get participants: %w", err)
	}
	defer rows.Close()

	exp.Participants = nil
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return fmt.Errorf("failed to scan participant: %w", err)
		}
		exp.Participants = append(exp.Participants, name)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate participants: %w", err)
	}

	shareRows, err := s.db.QueryContext(ctx,
		"SELECT name, share FROM expense_shares WHERE expense_id = ?",
		exp.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to get shares: %w", err)
	}
	defer shareRows.Close()

	exp.Shares = nil
	for shareRows.Next() {
		var name string
		var share float64
		if err := shareRows.Scan(&name, &share); err != nil {
			return fmt.Errorf("failed to scan share: %w", err)
		}
		if exp.Shares == nil {
			exp.Shares = make(map[string]float64)
		}
		exp.Shares[name] = share
	}
	if err := shareRows.Err(); err != nil {
		return fmt.Errorf("failed to iterate shares: %w", err)
	}
	return nil
}
