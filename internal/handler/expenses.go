package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"splitease/internal/models"
	val "splitease/internal/validator"
)

// expenseRequest is the JSON body for creating or updating an expense.
// Binding tags reject structurally bad requests; the split-method invariants
// are enforced by the service layer's domain validation.
type expenseRequest struct {
	Description  string             `json:"description" binding:"required" validate:"notblank"`
	Amount       float64            `json:"amount" binding:"required,gt=0"`
	PaidBy       string             `json:"paid_by" binding:"required" validate:"notblank"`
	Participants []string           `json:"participants" binding:"required,min=1"`
	SplitType    string             `json:"split_type"`
	Shares       map[string]float64 `json:"shares"`
	Category     string             `json:"category"`
}

type expenseResponse struct {
	ID           string             `json:"id"`
	Description  string             `json:"description"`
	Amount       float64            `json:"amount"`
	PaidBy       string             `json:"paid_by"`
	Participants []string           `json:"participants"`
	SplitType    string             `json:"split_type"`
	Shares       map[string]float64 `json:"shares,omitempty"`
	Category     string             `json:"category,omitempty"`
	CreatedAt    int64              `json:"created_at"`
}

func (r expenseRequest) toModel() models.Expense {
	method := models.SplitMethod(r.SplitType)
	if r.SplitType == "" {
		method = models.SplitEqual
	}
	return models.Expense{
		Description:  r.Description,
		Amount:       r.Amount,
		PaidBy:       r.PaidBy,
		Participants: r.Participants,
		Method:       method,
		Shares:       r.Shares,
		Category:     r.Category,
	}
}

func toExpenseResponse(exp models.Expense) expenseResponse {
	return expenseResponse{
		ID:           exp.ID,
		Description:  exp.Description,
		Amount:       exp.Amount,
		PaidBy:       exp.PaidBy,
		Participants: exp.Participants,
		SplitType:    string(exp.Method),
		Shares:       exp.Shares,
		Category:     exp.Category,
		CreatedAt:    exp.CreatedAt,
	}
}

func bindExpenseRequest(c *gin.Context) (expenseRequest, bool) {
	var req expenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ApiResponse{Success: false, Message: "Invalid JSON: " + err.Error()})
		return req, false
	}
	if err := val.Validate.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, ApiResponse{Success: false, Message: err.Error()})
		return req, false
	}
	return req, true
}

// CreateExpense records a new expense.
func (h *Handler) CreateExpense(c *gin.Context) {
	req, ok := bindExpenseRequest(c)
	if !ok {
		return
	}

	created, err := h.expenses.Create(c.Request.Context(), req.toModel())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "Expense created successfully", toExpenseResponse(*created))
}

// ListExpenses returns all expenses, newest first.
func (h *Handler) ListExpenses(c *gin.Context) {
	expenses, err := h.expenses.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]expenseResponse, len(expenses))
	for i, exp := range expenses {
		out[i] = toExpenseResponse(exp)
	}
	respondOK(c, "Expenses retrieved successfully", out)
}

// GetExpense returns one expense by ID.
func (h *Handler) GetExpense(c *gin.Context) {
	exp, err := h.expenses.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "Expense retrieved successfully", toExpenseResponse(*exp))
}

// UpdateExpense replaces an existing expense.
func (h *Handler) UpdateExpense(c *gin.Context) {
	req, ok := bindExpenseRequest(c)
	if !ok {
		return
	}

	exp := req.toModel()
	exp.ID = c.Param("id")
	updated, err := h.expenses.Update(c.Request.Context(), exp)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "Expense updated successfully", toExpenseResponse(*updated))
}

// DeleteExpense removes an expense by ID.
func (h *Handler) DeleteExpense(c *gin.Context) {
	if err := h.expenses.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "Expense deleted successfully", nil)
}
