package http

import (
	"net/http"

	"loan-amortizer/domain"
	"loan-amortizer/service"
)

type LoanHandler struct {
	service *service.LoanService
}

func NewLoanHandler(service *service.LoanService) *LoanHandler {
	return &LoanHandler{service: service}
}

// CalculateSchedule serves POST /loan/schedule.
func (h *LoanHandler) CalculateSchedule(w http.ResponseWriter, r *http.Request) {
	var req domain.CalculationRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	calc, err := h.service.Calculate(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, calc)
}

// GetCalculation serves GET /loan/calculations/{id}.
func (h *LoanHandler) GetCalculation(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	calc, err := h.service.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, calc)
}
