package http

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/opshq/office-backend-go/internal/domain/salary"
	"github.com/opshq/office-backend-go/internal/handler/http/response"
	"github.com/opshq/office-backend-go/internal/service/payroll"
)

type SalaryHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Generate(w http.ResponseWriter, r *http.Request)
	DownloadSlip(w http.ResponseWriter, r *http.Request)
	UploadSlip(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type SalaryHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewSalaryHandler(svc payroll.PayrollService) SalaryHandler {
	return &SalaryHandlerImpl{payrollService: svc}
}

// List implements SalaryHandler.
func (h *SalaryHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	var month *string
	if m := r.URL.Query().Get("month"); m != "" {
		month = &m
	}

	records, err := h.payrollService.List(r.Context(), month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, records)
}

// Generate implements SalaryHandler.
func (h *SalaryHandlerImpl) Generate(w http.ResponseWriter, r *http.Request) {
	var req salary.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	summary, err := h.payrollService.Generate(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll generated", summary)
}

// DownloadSlip implements SalaryHandler.
func (h *SalaryHandlerImpl) DownloadSlip(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Salary record ID is required", nil)
		return
	}

	rc, filename, err := h.payrollService.DownloadSlip(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if _, err := io.Copy(w, rc); err != nil {
		// Headers are gone; nothing left to do but note it.
		return
	}
}

// UploadSlip implements SalaryHandler.
func (h *SalaryHandlerImpl) UploadSlip(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Salary record ID is required", nil)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, "A payslip file is required", nil)
		return
	}
	defer file.Close()

	if header.Header.Get("Content-Type") != "application/pdf" {
		response.BadRequest(w, "Payslip must be a PDF file", nil)
		return
	}

	if err := h.payrollService.UploadSlip(r.Context(), id, file); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payslip uploaded", nil)
}

// Delete implements SalaryHandler.
func (h *SalaryHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Salary record ID is required", nil)
		return
	}

	if err := h.payrollService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Salary record deleted", nil)
}
