// Package models defines the core domain models for SplitEase.
//
// # Models
//
//   - Expense: one recorded shared cost with a payer, participants, and a
//     split method
//   - BalanceSummary: per-person totals derived from all expenses
//   - Transfer: a single payer→payee payment that settles outstanding debt
//
// Participants are identified by exact-match display names (strings). A name
// denotes the same person across every expense it appears in; names are never
// normalized, so "alice" and "Alice" are different people.
//
// # Design Principles
//
//  1. Expenses are immutable values owned by the caller; balances and
//     transfers are derived from scratch on every query and never persisted.
//  2. Derived monetary values use fixed-precision decimals, not binary
//     floats, so results do not depend on summation order.
//  3. No pointers between models; relationships go through ID strings.
package models
