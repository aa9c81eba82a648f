package http

import (
	"net/http"

	"loan-amortizer/domain"
	"loan-amortizer/service"
)

type ScenarioHandler struct {
	service *service.ScenarioService
}

func NewScenarioHandler(service *service.ScenarioService) *ScenarioHandler {
	return &ScenarioHandler{service: service}
}

// CompareExtraPayments serves POST /loan/compare-extra.
func (h *ScenarioHandler) CompareExtraPayments(w http.ResponseWriter, r *http.Request) {
	var terms domain.LoanTerms
	if !decodeJSON(w, r, &terms) {
		return
	}

	result, err := h.service.CompareExtraPayments(r.Context(), terms)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, result)
}
