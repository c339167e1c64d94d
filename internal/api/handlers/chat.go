package handlers

import (
	"mediroute-service/internal/api/dto"
	"mediroute-service/internal/platform/obs"
	"mediroute-service/internal/services"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

type ChatHandler struct {
	Advisor services.FirstAidAdvisor
}

// Chat answers a first-aid question for the selected emergency type.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.ChatRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeError(w, r, http.StatusBadRequest, "message is required")
		return
	}

	reply := h.Advisor.Advise(req.EmergencyType, req.Message)
	obs.L().Debug("chat answered",
		zap.String("req_id", obs.RequestID(r.Context())),
		zap.String("emergency_type", req.EmergencyType),
	)

	writeJSON(w, r, http.StatusOK, dto.ChatResponse{Reply: reply})
}
