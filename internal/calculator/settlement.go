package calculator

import (
	"container/heap"
	"errors"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"splitease/internal/models"
)

// ErrUnbalancedLedger reports balances that do not sum to zero within
// epsilon, so no transfer plan can settle them. It signals a violated
// invariant upstream (the balances did not come from a closed set of
// expenses) and is surfaced rather than silently corrected.
var ErrUnbalancedLedger = errors.New("unbalanced ledger")

// party is one side of an outstanding debt: a creditor or debtor together
// with the positive magnitude of their balance.
type party struct {
	name   string
	amount decimal.Decimal
}

// partyQueue is a max-heap of parties ordered by balance magnitude, ties
// broken by name ascending for determinism.
type partyQueue []party

func (q partyQueue) Len() int { return len(q) }

func (q partyQueue) Less(i, j int) bool {
	if !q[i].amount.Equal(q[j].amount) {
		return q[i].amount.GreaterThan(q[j].amount)
	}
	return q[i].name < q[j].name
}

func (q partyQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *partyQueue) Push(x any) { *q = append(*q, x.(party)) }

func (q *partyQueue) Pop() any {
	old := *q
	n := len(old)
	p := old[n-1]
	*q = old[:n-1]
	return p
}

// ComputeSettlements produces a transfer plan that zeroes the given balances,
// greedily matching the largest creditor with the largest debtor. The greedy
// heuristic is not proven globally minimal, but it settles the common case in
// the fewest transactions and never emits more than N−1 transfers for N
// participants with non-zero balances.
//
// Participants within epsilon of zero are ignored. Identical inputs always
// yield the identical plan: ties in magnitude are broken by name.
func ComputeSettlements(balances map[string]decimal.Decimal) ([]models.Transfer, error) {
	creditors := make(partyQueue, 0, len(balances))
	debtors := make(partyQueue, 0, len(balances))

	for name, balance := range balances {
		switch {
		case balance.GreaterThan(epsilon):
			creditors = append(creditors, party{name: name, amount: balance})
		case balance.LessThan(epsilon.Neg()):
			debtors = append(debtors, party{name: name, amount: balance.Neg()})
		}
	}

	// Map iteration order is random; sort before heapifying so the heap
	// layout (and therefore the emitted plan) is deterministic.
	sort.Sort(creditors)
	sort.Sort(debtors)
	heap.Init(&creditors)
	heap.Init(&debtors)

	var transfers []models.Transfer
	for len(creditors) > 0 && len(debtors) > 0 {
		creditor := &creditors[0]
		debtor := &debtors[0]

		amount := decimal.Min(creditor.amount, debtor.amount).Round(moneyPlaces)
		transfers = append(transfers, models.Transfer{
			From:   debtor.name,
			To:     creditor.name,
			Amount: amount,
		})

		creditor.amount = creditor.amount.Sub(amount)
		debtor.amount = debtor.amount.Sub(amount)

		if creditor.amount.LessThanOrEqual(epsilon) {
			heap.Pop(&creditors)
		} else {
			heap.Fix(&creditors, 0)
		}
		if debtor.amount.LessThanOrEqual(epsilon) {
			heap.Pop(&debtors)
		} else {
			heap.Fix(&debtors, 0)
		}
	}

	// One side ran out; anything left on the other side is money with no
	// counterparty, which means the balances never summed to zero.
	for _, q := range []partyQueue{creditors, debtors} {
		for _, p := range q {
			if p.amount.GreaterThan(epsilon) {
				return nil, fmt.Errorf("%w: %s holds unsettled balance %s", ErrUnbalancedLedger, p.name, p.amount)
			}
		}
	}

	return transfers, nil
}
