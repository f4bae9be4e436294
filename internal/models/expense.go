package models

// SplitMethod determines how an expense amount is divided among participants.
type SplitMethod string

const (
	// SplitEqual divides the amount evenly across all participants.
	SplitEqual SplitMethod = "equal"

	// SplitPercentage divides the amount by per-participant percentages
	// that sum to 100.
	SplitPercentage SplitMethod = "percentage"

	// SplitExact assigns each participant a fixed amount; the amounts sum
	// to the expense total.
	SplitExact SplitMethod = "exact"
)

// Valid reports whether m is one of the known split methods.
func (m SplitMethod) Valid() bool {
	switch m {
	case SplitEqual, SplitPercentage, SplitExact:
		return true
	}
	return false
}

// Expense represents one shared cost paid by a single person on behalf of a
// set of participants.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// Description is the human-readable name for the expense.
	Description string

	// Amount is the full cost fronted by the payer. Always positive.
	Amount float64

	// PaidBy is the name of the person who paid. The payer does not have
	// to appear in Participants; if they do, they owe their own share
	// like everyone else.
	PaidBy string

	// Participants are the names of the people splitting this expense.
	// Never empty, no duplicates.
	Participants []string

	// Method selects how Amount is divided among Participants.
	Method SplitMethod

	// Shares maps participant name to share value: a percentage for
	// SplitPercentage, a fixed amount for SplitExact. Nil for SplitEqual.
	Shares map[string]float64

	// Category is an optional label (e.g. "Food", "Travel").
	Category string

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64
}
