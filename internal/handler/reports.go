package handler

import (
	"net/http"

	"stockbook/internal/apierror"
	"stockbook/internal/dto"
	"stockbook/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ReportsHandler struct {
	reports service.ReportService
	exports service.ExportService
}

func NewReportsHandler(reports service.ReportService, exports service.ExportService) *ReportsHandler {
	return &ReportsHandler{reports: reports, exports: exports}
}

func (h *ReportsHandler) Dashboard(c *gin.Context) {
	c.JSON(http.StatusOK, h.reports.Dashboard(c.Request.Context()))
}

// Report returns the aggregates for ?range=week|month|all (default month).
func (h *ReportsHandler) Report(c *gin.Context) {
	r := service.DateRange(c.DefaultQuery("range", string(service.RangeMonth)))
	data, err := h.reports.Report(c.Request.Context(), r)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, data)
}

func (h *ReportsHandler) RequestExport(c *gin.Context) {
	var req dto.ExportRequest
	if !bindAndValidate(c, &req) {
		return
	}
	job, err := h.exports.Request(c.Request.Context(), service.DateRange(req.Range), service.ExportFormat(req.Format))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, job)
}

func (h *ReportsHandler) GetExport(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid id"))
		return
	}
	job, err := h.exports.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}
