package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/transitpass/concession-backend-go/internal/middleware"
	"github.com/transitpass/concession-backend-go/internal/service"
	"github.com/transitpass/concession-backend-go/pkg/response"
)

// StatementHandler handles HTTP requests for statements
type StatementHandler struct {
	statements *service.StatementService
	analysis   *service.AnalysisService
}

// NewStatementHandler creates a new statement handler
func NewStatementHandler(statements *service.StatementService, analysis *service.AnalysisService) *StatementHandler {
	return &StatementHandler{statements: statements, analysis: analysis}
}

// uploadRequest is the body of POST /api/v1/statements. The text field holds
// the statement's already-extracted text; OCR happens upstream.
type uploadRequest struct {
	FileName string `json:"fileName" binding:"required"`
	Text     string `json:"text" binding:"required"`
}

// Upload handles POST /api/v1/statements
func (h *StatementHandler) Upload(c *gin.Context) {
	var req uploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	result, err := h.statements.IngestText(middleware.UserID(c), req.FileName, req.Text)
	switch {
	case errors.Is(err, service.ErrNoTripsFound):
		response.Error(c, http.StatusUnprocessableEntity,
			"No trips found in statement. Please ensure it is a valid transit statement.", nil)
		return
	case errors.Is(err, service.ErrDuplicateStatement):
		response.Error(c, http.StatusConflict, "This statement was already uploaded", nil)
		return
	case err != nil:
		response.Error(c, http.StatusInternalServerError, "Failed to process statement", err)
		return
	}

	response.Success(c, result)
}

// List handles GET /api/v1/statements
func (h *StatementHandler) List(c *gin.Context) {
	statements, err := h.statements.List(middleware.UserID(c))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to list statements", err)
		return
	}
	response.Success(c, statements)
}

// Coverage handles GET /api/v1/statements/coverage?start=YYYY-MM-DD&end=YYYY-MM-DD.
// Absent or unparseable dates are passed through as zero values: the
// analyzer answers "unknown" rather than erroring.
func (h *StatementHandler) Coverage(c *gin.Context) {
	start := parseDay(c.Query("start"))
	end := parseDay(c.Query("end"))

	result, err := h.analysis.Coverage(middleware.UserID(c), start, end)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to analyze coverage", err)
		return
	}
	response.Success(c, result)
}

func parseDay(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}
	}
	return t
}
