package models

import "github.com/shopspring/decimal"

// BalanceSummary holds the derived totals for one person across all expenses.
type BalanceSummary struct {
	// Person is the participant's display name.
	Person string

	// Paid is the total amount this person fronted as payer.
	Paid decimal.Decimal

	// Owed is the total of this person's shares across all expenses.
	Owed decimal.Decimal

	// Net is Paid − Owed. Positive means the person is owed money,
	// negative means they owe money.
	Net decimal.Decimal
}

// Transfer is a single payment that reduces outstanding balances: From pays
// To the given amount. Amount is always positive.
type Transfer struct {
	From   string
	To     string
	Amount decimal.Decimal
}
