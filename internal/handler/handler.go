// Package handler exposes the REST API: expense CRUD plus the derived
// balances, settlements, and people views.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"splitease/internal/calculator"
	"splitease/internal/service"
	"splitease/internal/storage"
)

// ApiResponse is the envelope every endpoint responds with.
type ApiResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// Handler holds the services behind the REST API.
type Handler struct {
	expenses *service.ExpenseService
	ledger   *service.LedgerService
}

// New creates a Handler over the given services.
func New(expenses *service.ExpenseService, ledger *service.LedgerService) *Handler {
	return &Handler{expenses: expenses, ledger: ledger}
}

// RegisterRoutes mounts all API routes under /api/v1.
func (h *Handler) RegisterRoutes(router *gin.Engine) {
	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", h.Health)

		v1.POST("/expenses", h.CreateExpense)
		v1.GET("/expenses", h.ListExpenses)
		v1.GET("/expenses/:id", h.GetExpense)
		v1.PUT("/expenses/:id", h.UpdateExpense)
		v1.DELETE("/expenses/:id", h.DeleteExpense)

		v1.GET("/balances", h.Balances)
		v1.GET("/settlements", h.Settlements)
		v1.GET("/people", h.People)
	}
}

// Health reports service liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, ApiResponse{
		Success: true,
		Message: "Service healthy",
		Data:    gin.H{"status": "healthy"},
	})
}

func respondOK(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, ApiResponse{Success: true, Message: message, Data: data})
}

// respondError maps domain errors to HTTP statuses. Validation problems are
// the caller's fault (400); an unbalanced ledger is an internal-consistency
// fault and is surfaced verbatim rather than silently corrected.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidExpense), errors.Is(err, calculator.ErrInvalidSplit):
		c.JSON(http.StatusBadRequest, ApiResponse{Success: false, Message: err.Error()})
	case errors.Is(err, storage.ErrNotFound):
		c.JSON(http.StatusNotFound, ApiResponse{Success: false, Message: err.Error()})
	case errors.Is(err, calculator.ErrUnbalancedLedger):
		c.JSON(http.StatusInternalServerError, ApiResponse{Success: false, Message: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, ApiResponse{Success: false, Message: "Internal server error"})
	}
}
