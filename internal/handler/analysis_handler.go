package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/transitpass/concession-backend-go/internal/models"
	"github.com/transitpass/concession-backend-go/internal/recommend"
	"github.com/transitpass/concession-backend-go/internal/service"
	"github.com/transitpass/concession-backend-go/pkg/response"
)

// AnalysisHandler handles HTTP requests for fare calculation and pass
// comparison
type AnalysisHandler struct {
	analysis *service.AnalysisService
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(analysis *service.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{analysis: analysis}
}

// calculateFaresRequest carries already-grouped day groups, e.g. replayed
// from an earlier upload response.
type calculateFaresRequest struct {
	DayGroups []models.DayGroup `json:"dayGroups" binding:"required"`
}

// CalculateFares handles POST /api/v1/fares/calculate
func (h *AnalysisHandler) CalculateFares(c *gin.Context) {
	var req calculateFaresRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	response.Success(c, h.analysis.CalculateFares(req.DayGroups))
}

// ListPasses handles GET /api/v1/passes
func (h *AnalysisHandler) ListPasses(c *gin.Context) {
	response.Success(c, h.analysis.Catalog())
}

// ComparePasses handles POST /api/v1/passes/compare
func (h *AnalysisHandler) ComparePasses(c *gin.Context) {
	var totals models.FareTotals
	if err := c.ShouldBindJSON(&totals); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	rec, err := h.analysis.ComparePasses(totals)
	if err != nil {
		if errors.Is(err, recommend.ErrEmptyCatalog) {
			response.Error(c, http.StatusInternalServerError, "Pass catalog is not configured", err)
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to compare passes", err)
		return
	}
	response.Success(c, rec)
}
