package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/mbruton/pennywise/internal/service"
	"github.com/rs/zerolog/log"
)

// CSVHandler handles CSV import and export HTTP requests
type CSVHandler struct {
	csvService *service.CSVService
}

// NewCSVHandler creates a new CSVHandler
func NewCSVHandler(csvService *service.CSVService) *CSVHandler {
	return &CSVHandler{csvService: csvService}
}

// ExportTransactions handles GET /api/v1/transactions/export
func (h *CSVHandler) ExportTransactions(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderContentType, "text/csv")
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="transactions.csv"`)
	c.Response().WriteHeader(http.StatusOK)

	if err := h.csvService.Export(c.Response()); err != nil {
		// Headers are already out; log and abort the stream.
		log.Error().Err(err).Msg("Failed to export transactions")
		return err
	}
	return nil
}

// ImportTransactions handles POST /api/v1/transactions/import.
// Accepts either a multipart upload under the "file" field or a raw CSV body.
func (h *CSVHandler) ImportTransactions(c echo.Context) error {
	body := c.Request().Body
	if file, err := c.FormFile("file"); err == nil {
		f, err := file.Open()
		if err != nil {
			return NewValidationError(c, "Unreadable upload", nil)
		}
		defer f.Close()
		body = f
	}

	result, err := h.csvService.Import(body)
	if err != nil {
		return NewValidationError(c, err.Error(), nil)
	}
	return c.JSON(http.StatusOK, result)
}
