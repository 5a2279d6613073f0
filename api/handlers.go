/*
handlers.go - HTTP API handlers for the payroll finisher

PURPOSE:
  Exposes the upload -> process -> download flow via REST. Handles HTTP
  request/response and JSON serialization, delegating all payroll logic to
  the payroll package and all spreadsheet work to the sheet package.

ENDPOINTS:
  POST /api/payroll/process                Upload a raw export, allocate
  GET  /api/payroll/batches/{id}           Batch stats + consolidated lines
  GET  /api/payroll/batches/{id}/download  Finished import workbook (.xlsx)
  GET  /api/healthz                        Liveness probe

REQUEST FLOW:
  1. Parse the multipart upload
  2. sheet.Read -> typed shift records (+ per-row errors)
  3. payroll.Allocate -> consolidated lines (+ per-employee errors)
  4. Register the batch in memory under a fresh id
  5. Return stats, preview lines, and any row/employee errors

ERROR HANDLING:
  - 400: unreadable upload, missing file field, unreadable workbook
  - 404: unknown batch id
  - 422: nothing could be allocated at all (every row rejected)
  - 500: workbook rendering failure
  Partial results are returned with HTTP 201: the payroll office fixes
  rejected rows and reprocesses rather than losing the whole batch.

SEE ALSO:
  - dto.go: Response shapes
  - server.go: Router setup and middleware
*/
package api

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/star-security/payroll-finisher/payroll"
	"github.com/star-security/payroll-finisher/sheet"
)

// maxUploadBytes bounds the multipart form held in memory. Biweekly
// exports run a few hundred KB; 32 MB leaves generous headroom.
const maxUploadBytes = 32 << 20

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Allocator *payroll.Allocator
	Batches   *BatchRegistry
}

// NewHandler creates a handler running the given allocation rules.
func NewHandler(alloc *payroll.Allocator) *Handler {
	return &Handler{
		Allocator: alloc,
		Batches:   NewBatchRegistry(),
	}
}

// =============================================================================
// PAYROLL HANDLERS
// =============================================================================

// ProcessPayroll accepts a raw biweekly export and runs the allocation.
// POST /api/payroll/process (multipart, field "file")
func (h *Handler) ProcessPayroll(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid multipart upload", err)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, `Missing "file" field`, err)
		return
	}
	defer file.Close()

	if ext := strings.ToLower(filepath.Ext(header.Filename)); ext != ".xlsx" {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Unsupported file type %q (want .xlsx)", ext), nil)
		return
	}

	parsed, err := sheet.Read(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Could not read workbook", err)
		return
	}

	result := h.Allocator.Allocate(parsed.Records)

	var rowErrors []RowErrorDTO
	for _, re := range parsed.RowErrors {
		rowErrors = append(rowErrors, RowErrorDTO{
			EmployeeID: re.EmployeeID,
			Row:        re.Row,
			Message:    re.Error(),
		})
	}
	for _, ee := range result.Errors {
		rowErrors = append(rowErrors, RowErrorDTO{
			EmployeeID: ee.EmployeeID,
			Message:    ee.Err.Error(),
		})
	}

	if len(result.Lines) == 0 && len(rowErrors) > 0 {
		writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "No rows could be processed",
			Details: rowErrors,
		})
		return
	}

	batch := &Batch{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Lines:     result.Lines,
		Stats:     result.Stats,
		Errors:    rowErrors,
	}
	h.Batches.Put(batch)

	writeJSON(w, http.StatusCreated, toBatchDTO(batch))
}

// GetBatch returns the stats and consolidated lines of a processed batch.
// GET /api/payroll/batches/{id}
func (h *Handler) GetBatch(w http.ResponseWriter, r *http.Request) {
	batch := h.Batches.Get(chi.URLParam(r, "id"))
	if batch == nil {
		writeError(w, http.StatusNotFound, "Batch not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, toBatchDTO(batch))
}

// DownloadBatch streams the finished import workbook.
// GET /api/payroll/batches/{id}/download
func (h *Handler) DownloadBatch(w http.ResponseWriter, r *http.Request) {
	batch := h.Batches.Get(chi.URLParam(r, "id"))
	if batch == nil {
		writeError(w, http.StatusNotFound, "Batch not found", nil)
		return
	}

	data, err := sheet.Write(batch.Lines)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to render workbook", err)
		return
	}

	filename := fmt.Sprintf("payroll_processed_%s.xlsx", batch.CreatedAt.Format("20060102_150405"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// Health is a liveness probe.
// GET /api/healthz
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
