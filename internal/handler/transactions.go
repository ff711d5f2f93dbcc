package handler

import (
	"net/http"

	"stockbook/internal/apierror"
	"stockbook/internal/dto"
	"stockbook/internal/model"
	"stockbook/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TransactionsHandler struct{ svc service.InventoryService }

func NewTransactionsHandler(svc service.InventoryService) *TransactionsHandler {
	return &TransactionsHandler{svc: svc}
}

// List returns the full ledger, newest first.
func (h *TransactionsHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.ListTransactions(c.Request.Context()))
}

func (h *TransactionsHandler) RecordSale(c *gin.Context) {
	var req dto.RecordSaleRequest
	if !bindAndValidate(c, &req) {
		return
	}
	pid, err := uuid.Parse(req.ProductID)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid productId"))
		return
	}
	tx, err := h.svc.RecordSale(c.Request.Context(), pid, req.Quantity, req.Notes)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tx)
}

func (h *TransactionsHandler) RecordPurchase(c *gin.Context) {
	var req dto.RecordPurchaseRequest
	if !bindAndValidate(c, &req) {
		return
	}
	pid, err := uuid.Parse(req.ProductID)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid productId"))
		return
	}
	tx, err := h.svc.RecordPurchase(c.Request.Context(), pid, req.Quantity, req.Notes)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tx)
}

func (h *TransactionsHandler) RecordRemoval(c *gin.Context) {
	var req dto.RecordRemovalRequest
	if !bindAndValidate(c, &req) {
		return
	}
	pid, err := uuid.Parse(req.ProductID)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid productId"))
		return
	}
	tx, err := h.svc.RecordRemoval(c.Request.Context(), pid, req.Quantity, model.RemovalReason(req.Reason), req.Notes)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tx)
}
