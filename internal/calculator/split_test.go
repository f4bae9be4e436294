package calculator

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"splitease/internal/models"
)

func TestComputeSplit(t *testing.T) {
	tests := []struct {
		name       string
		expense    models.Expense
		wantErr    error
		wantDeltas map[string]string
	}{
		{
			name: "equal split, payer is a participant",
			expense: models.Expense{
				Amount:       120,
				PaidBy:       "Alice",
				Participants: []string{"Alice", "Bob", "Charlie"},
				Method:       models.SplitEqual,
			},
			wantDeltas: map[string]string{"Alice": "80", "Bob": "-40", "Charlie": "-40"},
		},
		{
			name: "equal split, payer outside the participant set",
			expense: models.Expense{
				Amount:       50,
				PaidBy:       "Dana",
				Participants: []string{"Alice", "Bob"},
				Method:       models.SplitEqual,
			},
			wantDeltas: map[string]string{"Dana": "50", "Alice": "-25", "Bob": "-25"},
		},
		{
			name: "equal split with residual cent goes to first name",
			expense: models.Expense{
				Amount:       100,
				PaidBy:       "Bob",
				Participants: []string{"Charlie", "Alice", "Bob"},
				Method:       models.SplitEqual,
			},
			// 100/3 rounds to 33.33 each; Alice absorbs the leftover cent.
			wantDeltas: map[string]string{"Alice": "-33.34", "Bob": "66.67", "Charlie": "-33.33"},
		},
		{
			name: "percentage split",
			expense: models.Expense{
				Amount:       200,
				PaidBy:       "Bob",
				Participants: []string{"Alice", "Bob", "Charlie"},
				Method:       models.SplitPercentage,
				Shares:       map[string]float64{"Alice": 40, "Bob": 40, "Charlie": 20},
			},
			wantDeltas: map[string]string{"Alice": "-80", "Bob": "120", "Charlie": "-40"},
		},
		{
			name: "percentage split with sub-cent shares reconciles",
			expense: models.Expense{
				Amount:       100,
				PaidBy:       "Alice",
				Participants: []string{"Alice", "Bob", "Charlie"},
				Method:       models.SplitPercentage,
				Shares:       map[string]float64{"Alice": 33.33, "Bob": 33.33, "Charlie": 33.34},
			},
			// Rounded shares are 33.33/33.33/33.34 already; sums to 100.
			wantDeltas: map[string]string{"Alice": "66.67", "Bob": "-33.33", "Charlie": "-33.34"},
		},
		{
			name: "exact split",
			expense: models.Expense{
				Amount:       75.5,
				PaidBy:       "Charlie",
				Participants: []string{"Alice", "Bob", "Charlie"},
				Method:       models.SplitExact,
				Shares:       map[string]float64{"Alice": 30, "Bob": 25.5, "Charlie": 20},
			},
			wantDeltas: map[string]string{"Alice": "-30", "Bob": "-25.5", "Charlie": "55.5"},
		},
		{
			name: "shares naming a non-participant are rejected",
			expense: models.Expense{
				Amount:       60,
				PaidBy:       "Alice",
				Participants: []string{"Alice", "Bob"},
				Method:       models.SplitPercentage,
				Shares:       map[string]float64{"Alice": 50, "Mallory": 50},
			},
			wantErr: ErrInvalidSplit,
		},
		{
			name: "exact shares that miss the total are rejected",
			expense: models.Expense{
				Amount:       100,
				PaidBy:       "Alice",
				Participants: []string{"Alice", "Bob"},
				Method:       models.SplitExact,
				Shares:       map[string]float64{"Alice": 40, "Bob": 40},
			},
			wantErr: ErrInvalidSplit,
		},
		{
			name: "percentages far from 100 are rejected",
			expense: models.Expense{
				Amount:       100,
				PaidBy:       "Alice",
				Participants: []string{"Alice", "Bob"},
				Method:       models.SplitPercentage,
				Shares:       map[string]float64{"Alice": 30, "Bob": 30},
			},
			wantErr: ErrInvalidSplit,
		},
		{
			name: "unknown split method is rejected",
			expense: models.Expense{
				Amount:       10,
				PaidBy:       "Alice",
				Participants: []string{"Alice"},
				Method:       models.SplitMethod("weighted"),
			},
			wantErr: ErrInvalidSplit,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deltas, err := ComputeSplit(tt.expense)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ComputeSplit() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ComputeSplit() failed: %v", err)
			}

			if len(deltas) != len(tt.wantDeltas) {
				t.Errorf("got %d deltas, want %d", len(deltas), len(tt.wantDeltas))
			}
			for name, want := range tt.wantDeltas {
				got, ok := deltas[name]
				if !ok {
					t.Errorf("missing delta for %s", name)
					continue
				}
				if !got.Equal(decimal.RequireFromString(want)) {
					t.Errorf("delta for %s = %s, want %s", name, got, want)
				}
			}
		})
	}
}

func TestComputeSplitZeroSum(t *testing.T) {
	expenses := []models.Expense{
		{Amount: 100, PaidBy: "Alice", Participants: []string{"Alice", "Bob", "Charlie"}, Method: models.SplitEqual},
		{Amount: 0.03, PaidBy: "Bob", Participants: []string{"Alice", "Bob"}, Method: models.SplitEqual},
		{Amount: 99.99, PaidBy: "Charlie", Participants: []string{"Alice", "Bob", "Charlie"}, Method: models.SplitPercentage,
			Shares: map[string]float64{"Alice": 33.4, "Bob": 33.3, "Charlie": 33.3}},
		{Amount: 7, PaidBy: "Dana", Participants: []string{"Alice", "Bob", "Charlie"}, Method: models.SplitEqual},
	}

	for _, exp := range expenses {
		deltas, err := ComputeSplit(exp)
		if err != nil {
			t.Fatalf("ComputeSplit(%+v) failed: %v", exp, err)
		}

		sum := decimal.Zero
		for _, d := range deltas {
			sum = sum.Add(d)
		}
		if sum.Abs().GreaterThan(epsilon) {
			t.Errorf("deltas for amount %v sum to %s, want 0 within %s", exp.Amount, sum, epsilon)
		}
	}
}
