// Package calculator implements the balance aggregation and settlement
// engine: per-expense split deltas, net balances across expenses, and a
// near-minimal transfer plan that zeroes them.
//
// Every function is a pure computation over its arguments. All monetary
// arithmetic uses fixed-precision decimals so results never depend on the
// order expenses are summed in.
package calculator

import (
	"errors"
	"fmt"
	"slices"

	"github.com/shopspring/decimal"

	"splitease/internal/models"
)

// moneyPlaces is the fixed monetary precision: two decimal places (cents).
const moneyPlaces = 2

var (
	// ErrInvalidSplit reports an expense whose shares cannot produce a
	// consistent split: shares reference a name outside the participant
	// set, or the rounding residual cannot be reconciled. Always an
	// upstream validation gap, never retryable.
	ErrInvalidSplit = errors.New("invalid split")

	// epsilon is one minimal monetary unit (0.01). Balances within
	// epsilon of zero are treated as settled.
	epsilon = decimal.New(1, -moneyPlaces)

	hundred = decimal.NewFromInt(100)
)

// ComputeSplit converts one expense into signed per-participant deltas.
// Positive means the person is owed money from this expense, negative means
// they owe. The payer is credited the full amount they fronted and every
// participant is debited their share, so the deltas sum to zero.
//
// The expense must already satisfy the split-method invariants (shares sum
// to 100 for percentage, to the amount for exact); this function only guards
// against unknown share names and irreconcilable rounding.
func ComputeSplit(exp models.Expense) (map[string]decimal.Decimal, error) {
	if len(exp.Participants) == 0 {
		return nil, fmt.Errorf("%w: no participants", ErrInvalidSplit)
	}

	amount := decimal.NewFromFloat(exp.Amount)

	shares, err := computeShares(exp, amount)
	if err != nil {
		return nil, err
	}

	deltas := make(map[string]decimal.Decimal, len(exp.Participants)+1)
	for name, share := range shares {
		deltas[name] = share.Neg()
	}
	// The payer need not be a participant; the zero value is a valid
	// decimal zero either way.
	deltas[exp.PaidBy] = deltas[exp.PaidBy].Add(amount)

	return deltas, nil
}

func computeShares(exp models.Expense, amount decimal.Decimal) (map[string]decimal.Decimal, error) {
	switch exp.Method {
	case models.SplitEqual:
		return equalShares(exp.Participants, amount)
	case models.SplitPercentage:
		return percentageShares(exp, amount)
	case models.SplitExact:
		return exactShares(exp, amount)
	default:
		return nil, fmt.Errorf("%w: unknown split method %q", ErrInvalidSplit, exp.Method)
	}
}

func equalShares(participants []string, amount decimal.Decimal) (map[string]decimal.Decimal, error) {
	count := decimal.NewFromInt(int64(len(participants)))
	per := amount.DivRound(count, moneyPlaces)

	shares := make(map[string]decimal.Decimal, len(participants))
	for _, name := range participants {
		shares[name] = per
	}
	return reconcile(shares, amount, participants)
}

func percentageShares(exp models.Expense, amount decimal.Decimal) (map[string]decimal.Decimal, error) {
	if err := checkShareNames(exp.Shares, exp.Participants); err != nil {
		return nil, err
	}

	shares := make(map[string]decimal.Decimal, len(exp.Participants))
	for _, name := range exp.Participants {
		pct := decimal.NewFromFloat(exp.Shares[name])
		shares[name] = amount.Mul(pct).DivRound(hundred, moneyPlaces)
	}
	return reconcile(shares, amount, exp.Participants)
}

func exactShares(exp models.Expense, amount decimal.Decimal) (map[string]decimal.Decimal, error) {
	if err := checkShareNames(exp.Shares, exp.Participants); err != nil {
		return nil, err
	}

	// Exact shares are taken as given, not adjusted; only verify that
	// they reconcile with the expense total.
	total := decimal.Zero
	shares := make(map[string]decimal.Decimal, len(exp.Participants))
	for _, name := range exp.Participants {
		share := decimal.NewFromFloat(exp.Shares[name]).Round(moneyPlaces)
		shares[name] = share
		total = total.Add(share)
	}

	if residual := amount.Sub(total); residual.Abs().GreaterThan(epsilon) {
		return nil, fmt.Errorf("%w: exact shares sum to %s, expense amount is %s", ErrInvalidSplit, total, amount)
	}
	return shares, nil
}

// checkShareNames rejects share entries for names outside the participant set.
func checkShareNames(shares map[string]float64, participants []string) error {
	for name := range shares {
		if !slices.Contains(participants, name) {
			return fmt.Errorf("%w: share references unknown participant %q", ErrInvalidSplit, name)
		}
	}
	return nil
}

// reconcile assigns the rounding residual to the participant that sorts first
// alphabetically, so the shares sum exactly to the expense amount and the
// assignment is deterministic.
func reconcile(shares map[string]decimal.Decimal, amount decimal.Decimal, participants []string) (map[string]decimal.Decimal, error) {
	total := decimal.Zero
	for _, share := range shares {
		total = total.Add(share)
	}

	residual := amount.Sub(total)
	if residual.IsZero() {
		return shares, nil
	}

	limit := epsilon.Mul(decimal.NewFromInt(int64(len(participants))))
	if residual.Abs().GreaterThan(limit) {
		return nil, fmt.Errorf("%w: rounding residual %s exceeds %s", ErrInvalidSplit, residual, limit)
	}

	first := slices.Min(participants)
	shares[first] = shares[first].Add(residual)
	return shares, nil
}
