package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/atharvakonge/gold-tracker/internal/client"
	"github.com/atharvakonge/gold-tracker/internal/db"
	"github.com/gin-gonic/gin"
)

// ImportHoldings handles POST /import: forwards the uploaded CSV/Excel file.
// Only one import runs at a time; the import control renders disabled meanwhile.
func (h *Handler) ImportHoldings(c *gin.Context) {
	if !h.importing.CompareAndSwap(false, true) {
		h.fail(c, http.StatusConflict, "An import is already in progress", nil)
		return
	}
	defer h.importing.Store(false)

	fh, err := c.FormFile("file")
	if err != nil {
		h.fail(c, http.StatusBadRequest, "Please choose a CSV or Excel file to import", nil)
		return
	}
	file, err := fh.Open()
	if err != nil {
		h.fail(c, http.StatusBadRequest, "Could not read the uploaded file", nil)
		return
	}
	defer file.Close()

	ctx := c.Request.Context()
	resp, err := h.backend.ImportHoldings(ctx, fh.Filename, file)
	if err != nil {
		msg := client.Message(err, msgImportFailed)
		h.log.Warn().Err(err).Str("file", fh.Filename).Msg("import failed")
		h.recordImport(ctx, db.ImportRun{Filename: fh.Filename, Message: msg})
		h.fail(c, failureStatus(err), msg, nil)
		return
	}

	// partial failures are diagnostics only, the import itself succeeded
	for _, rowErr := range resp.Errors {
		h.log.Warn().Str("file", fh.Filename).Str("row_error", rowErr).Msg("import row rejected")
	}
	h.recordImport(ctx, db.ImportRun{
		Filename:  fh.Filename,
		Succeeded: true,
		Imported:  resp.Imported,
		RowErrors: resp.Errors,
	})

	h.succeed(c, fmt.Sprintf("Successfully imported %d holdings", resp.Imported), gin.H{
		"imported": resp.Imported,
		"errors":   resp.Errors,
	})
}

func (h *Handler) recordImport(ctx context.Context, run db.ImportRun) {
	if err := h.imports.Record(ctx, run); err != nil {
		h.log.Error().Err(err).Str("file", run.Filename).Msg("failed to record import run")
	}
}

// ImportRuns handles GET /imports?limit=N: the latest recorded imports as JSON
func (h *Handler) ImportRuns(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit <= 0 {
		limit = 20
	}
	runs, err := h.imports.Recent(c.Request.Context(), limit)
	if err != nil {
		h.log.Error().Err(err).Msg("failed to list import runs")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to load import history"})
		return
	}
	if runs == nil {
		runs = []db.ImportRun{}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": runs})
}

// ExportHoldings handles GET /export by streaming the backend CSV
func (h *Handler) ExportHoldings(c *gin.Context) {
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", "attachment;filename=gold_portfolio.csv")

	n, err := h.backend.ExportHoldings(c.Request.Context(), c.Writer)
	if err == nil {
		h.log.Debug().Int64("bytes", n).Msg("export streamed")
		return
	}

	h.log.Warn().Err(err).Int64("bytes", n).Msg("export failed")
	if c.Writer.Written() {
		// headers are gone, the download is simply cut short
		return
	}
	c.Writer.Header().Del("Content-Disposition")
	c.Writer.Header().Del("Content-Type")
	h.fail(c, failureStatus(err), client.Message(err, msgExportFailed), nil)
}
