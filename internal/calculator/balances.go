package calculator

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"splitease/internal/models"
)

// ComputeBalances folds per-expense deltas into one net balance per person.
// Positive means the person is owed money overall, negative means they owe.
// The expense order does not affect the result; for any closed set of
// expenses the balances sum to zero.
func ComputeBalances(expenses []models.Expense) (map[string]decimal.Decimal, error) {
	balances := make(map[string]decimal.Decimal)

	for _, exp := range expenses {
		deltas, err := ComputeSplit(exp)
		if err != nil {
			return nil, fmt.Errorf("expense %s: %w", exp.ID, err)
		}
		for name, delta := range deltas {
			balances[name] = balances[name].Add(delta)
		}
	}

	return balances, nil
}

// ComputeBalanceSummaries returns per-person paid/owed/net totals across all
// expenses, sorted by name. This is the expanded view behind the balances
// endpoint; ComputeBalances is the net-only form.
func ComputeBalanceSummaries(expenses []models.Expense) ([]models.BalanceSummary, error) {
	type totals struct {
		paid decimal.Decimal
		owed decimal.Decimal
	}
	byName := make(map[string]*totals)
	get := func(name string) *totals {
		t, ok := byName[name]
		if !ok {
			t = &totals{}
			byName[name] = t
		}
		return t
	}

	for _, exp := range expenses {
		deltas, err := ComputeSplit(exp)
		if err != nil {
			return nil, fmt.Errorf("expense %s: %w", exp.ID, err)
		}

		amount := decimal.NewFromFloat(exp.Amount)
		payer := get(exp.PaidBy)
		payer.paid = payer.paid.Add(amount)

		// Recover each share from its delta: the payer's delta is
		// amount − share, everyone else's is −share.
		for name, delta := range deltas {
			share := delta.Neg()
			if name == exp.PaidBy {
				share = amount.Sub(delta)
			}
			t := get(name)
			t.owed = t.owed.Add(share)
		}
	}

	summaries := make([]models.BalanceSummary, 0, len(byName))
	for name, t := range byName {
		summaries = append(summaries, models.BalanceSummary{
			Person: name,
			Paid:   t.paid.Round(moneyPlaces),
			Owed:   t.owed.Round(moneyPlaces),
			Net:    t.paid.Sub(t.owed).Round(moneyPlaces),
		})
	}
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].Person < summaries[j].Person })

	return summaries, nil
}
