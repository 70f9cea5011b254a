package api

import (
	"net/http"

	"alcyxob/fitness-tracker/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ExportHandler struct {
	exportService service.ExportService
}

func NewExportHandler(exportService service.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

type CreateExportRequest struct {
	From string `json:"from" binding:"required"`
	To   string `json:"to" binding:"required"`
}

// CreateExport godoc
// @Summary Export logged sets as CSV
// @Tags Exports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param range body CreateExportRequest true "Inclusive date range"
// @Success 201 {object} service.ExportResult
// @Router /exports [post]
func (h *ExportHandler) CreateExport(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	var req CreateExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	result, err := h.exportService.ExportHistory(c.Request.Context(), userID, req.From, req.To)
	if err != nil {
		respondWithServiceError(c, err, "Failed to export history.")
		return
	}
	c.JSON(http.StatusCreated, result)
}

// GetDownloadURL godoc
// @Summary Fresh download link of an export
// @Tags Exports
// @Produce json
// @Security BearerAuth
// @Param exportId path string true "Export ObjectID Hex"
// @Success 200 {object} gin.H
// @Router /exports/{exportId}/download [get]
func (h *ExportHandler) GetDownloadURL(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	exportID, err := primitive.ObjectIDFromHex(c.Param("exportId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid export ID format.")
		return
	}

	url, err := h.exportService.GetExportDownloadURL(c.Request.Context(), userID, exportID)
	if err != nil {
		respondWithServiceError(c, err, "Failed to generate download URL.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"downloadUrl": url})
}
