// Package validator enforces the expense invariants that must hold before a
// request reaches the calculation engine: positive amounts, well-formed
// participant sets, and shares consistent with the chosen split method.
package validator

import (
	"fmt"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"

	"splitease/internal/models"
)

// shareTolerance absorbs representation noise when checking that percentage
// shares sum to 100 and exact shares sum to the expense amount.
const shareTolerance = 0.01

// Validate is the shared struct validator used by the HTTP layer for
// request binding rules.
var Validate *validator.Validate

func init() {
	Validate = validator.New()

	// notblank: string contains at least one non-whitespace character.
	_ = Validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
}

// ValidateExpense checks the domain invariants of one expense. It returns a
// descriptive error on the first violation found.
func ValidateExpense(exp models.Expense) error {
	if exp.Amount <= 0 {
		return fmt.Errorf("amount must be positive, got %v", exp.Amount)
	}
	if strings.TrimSpace(exp.Description) == "" {
		return fmt.Errorf("description cannot be empty")
	}
	if strings.TrimSpace(exp.PaidBy) == "" {
		return fmt.Errorf("paid_by cannot be empty")
	}
	if len(exp.Participants) == 0 {
		return fmt.Errorf("at least one participant required")
	}

	seen := make(map[string]bool, len(exp.Participants))
	for _, name := range exp.Participants {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("participant names cannot be blank")
		}
		if seen[name] {
			return fmt.Errorf("duplicate participant %q", name)
		}
		seen[name] = true
	}

	if !exp.Method.Valid() {
		return fmt.Errorf("split_method must be one of equal, percentage, exact; got %q", exp.Method)
	}

	return validateShares(exp, seen)
}

func validateShares(exp models.Expense, participants map[string]bool) error {
	if exp.Method == models.SplitEqual {
		if exp.Shares != nil {
			return fmt.Errorf("shares should not be provided for equal split")
		}
		return nil
	}

	if exp.Shares == nil {
		return fmt.Errorf("shares must be provided for %s split", exp.Method)
	}

	for name := range exp.Shares {
		if !participants[name] {
			return fmt.Errorf("shares provided for non-participant %q", name)
		}
	}
	for _, name := range exp.Participants {
		if _, ok := exp.Shares[name]; !ok {
			return fmt.Errorf("missing share for participant %q", name)
		}
	}

	total := 0.0
	for _, share := range exp.Shares {
		if share < 0 {
			return fmt.Errorf("shares cannot be negative")
		}
		total += share
	}

	switch exp.Method {
	case models.SplitPercentage:
		if math.Abs(total-100) > shareTolerance {
			return fmt.Errorf("percentages must sum to 100, got %v", total)
		}
	case models.SplitExact:
		if math.Abs(total-exp.Amount) > shareTolerance {
			return fmt.Errorf("exact shares must sum to total amount %v, got %v", exp.Amount, total)
		}
	}

	return nil
}
