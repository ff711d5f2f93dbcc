package handler

import (
	"net/http"

	"stockbook/internal/dto"
	"stockbook/internal/model"
	"stockbook/internal/service"

	"github.com/gin-gonic/gin"
)

type SettingsHandler struct{ svc service.SettingsService }

func NewSettingsHandler(svc service.SettingsService) *SettingsHandler {
	return &SettingsHandler{svc: svc}
}

func (h *SettingsHandler) Get(c *gin.Context) {
	s, err := h.svc.Get(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *SettingsHandler) Update(c *gin.Context) {
	var req dto.UpdateSettingsRequest
	if !bindAndValidate(c, &req) {
		return
	}
	s, err := h.svc.Update(c.Request.Context(), model.Settings{
		CompanyName: req.CompanyName,
		Currency:    req.Currency,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}
