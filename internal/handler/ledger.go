package handler

import (
	"github.com/gin-gonic/gin"

	"splitease/internal/models"
)

type balanceResponse struct {
	Person  string  `json:"person"`
	Spent   float64 `json:"spent"`
	Owed    float64 `json:"owed"`
	Balance float64 `json:"balance"`
}

type transferResponse struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Amount float64 `json:"amount"`
}

// Balances returns every person's paid/owed/net totals.
func (h *Handler) Balances(c *gin.Context) {
	summaries, err := h.ledger.Balances(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]balanceResponse, len(summaries))
	for i, s := range summaries {
		out[i] = balanceResponse{
			Person:  s.Person,
			Spent:   s.Paid.InexactFloat64(),
			Owed:    s.Owed.InexactFloat64(),
			Balance: s.Net.InexactFloat64(),
		}
	}
	respondOK(c, "Balances calculated successfully", out)
}

// Settlements returns the transfer plan that settles all balances.
func (h *Handler) Settlements(c *gin.Context) {
	transfers, err := h.ledger.Settlements(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]transferResponse, len(transfers))
	for i, t := range transfers {
		out[i] = toTransferResponse(t)
	}
	respondOK(c, "Settlements calculated successfully", out)
}

// People returns every name seen across all expenses.
func (h *Handler) People(c *gin.Context) {
	people, err := h.ledger.People(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "People retrieved successfully", gin.H{"people": people})
}

func toTransferResponse(t models.Transfer) transferResponse {
	return transferResponse{
		From:   t.From,
		To:     t.To,
		Amount: t.Amount.InexactFloat64(),
	}
}
