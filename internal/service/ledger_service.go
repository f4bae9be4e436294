package service

import (
	"context"
	"log/slog"
	"sort"

	"splitease/internal/calculator"
	"splitease/internal/models"
	"splitease/internal/storage"
)

// LedgerService computes the derived ledger views: balances, settlements, and
// the set of known people. Every query reads a fresh snapshot of all expenses
// and recomputes from scratch; nothing derived is cached or persisted.
type LedgerService struct {
	store storage.Store
}

// NewLedgerService creates a LedgerService with the given storage backend.
func NewLedgerService(store storage.Store) *LedgerService {
	return &LedgerService{store: store}
}

// Balances returns per-person paid/owed/net totals across all expenses,
// sorted by name.
func (s *LedgerService) Balances(ctx context.Context) ([]models.BalanceSummary, error) {
	expenses, err := s.store.ListExpenses(ctx)
	if err != nil {
		slog.Error("Balances: failed to list expenses", "error", err)
		return nil, err
	}

	summaries, err := calculator.ComputeBalanceSummaries(expenses)
	if err != nil {
		slog.Error("Balances: calculation failed", "error", err)
		return nil, err
	}
	return summaries, nil
}

// Settlements returns the transfer plan that zeroes all current balances.
func (s *LedgerService) Settlements(ctx context.Context) ([]models.Transfer, error) {
	expenses, err := s.store.ListExpenses(ctx)
	if err != nil {
		slog.Error("Settlements: failed to list expenses", "error", err)
		return nil, err
	}

	balances, err := calculator.ComputeBalances(expenses)
	if err != nil {
		slog.Error("Settlements: balance calculation failed", "error", err)
		return nil, err
	}

	transfers, err := calculator.ComputeSettlements(balances)
	if err != nil {
		slog.Error("Settlements: settlement calculation failed", "error", err)
		return nil, err
	}
	return transfers, nil
}

// People returns the sorted distinct names appearing in any expense, as
// payer or participant.
func (s *LedgerService) People(ctx context.Context) ([]string, error) {
	expenses, err := s.store.ListExpenses(ctx)
	if err != nil {
		slog.Error("People: failed to list expenses", "error", err)
		return nil, err
	}

	seen := make(map[string]bool)
	for _, exp := range expenses {
		seen[exp.PaidBy] = true
		for _, name := range exp.Participants {
			seen[name] = true
		}
	}

	people := make([]string, 0, len(seen))
	for name := range seen {
		people = append(people, name)
	}
	sort.Strings(people)
	return people, nil
}
