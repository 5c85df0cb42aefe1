package http

import (
	"net/http"
	"strconv"

	"arco-intel/domain"
	"arco-intel/service"
)

type ROIHandler struct {
	calculator *service.ROICalculator
	ai         *service.AIService
}

func NewROIHandler(calculator *service.ROICalculator, ai *service.AIService) *ROIHandler {
	return &ROIHandler{calculator: calculator, ai: ai}
}

func (h *ROIHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	var input domain.CalculatorInput
	if !decodeJSON(w, r, &input) {
		return
	}

	result, err := h.calculator.Calculate(input)
	if err != nil {
		writeError(w, err)
		return
	}

	if explain, _ := strconv.ParseBool(r.URL.Query().Get("explain")); explain && h.ai != nil {
		result.Explanation = h.ai.ExplainROI(r.Context(), input, result)
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *ROIHandler) Industries(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.calculator.Catalog().Industries())
}

func (h *ROIHandler) CompanySizes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.calculator.Catalog().CompanySizes())
}
