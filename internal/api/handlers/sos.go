package handlers

import (
	"errors"
	"mediroute-service/internal/api/dto"
	"mediroute-service/internal/domain"
	"mediroute-service/internal/platform/obs"
	"mediroute-service/internal/services"
	"net/http"

	"go.uber.org/zap"
)

type SOSHandler struct {
	Service *services.SOSService
}

// Send dispatches a confirmed SOS alert. Delivery is asynchronous from the
// caller's point of view, so success is 202.
func (h *SOSHandler) Send(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.SOSRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if (req.Latitude == nil) != (req.Longitude == nil) {
		writeError(w, r, http.StatusBadRequest, "latitude and longitude must be set together")
		return
	}

	loc := dto.LocationRequest{Latitude: req.Latitude, Longitude: req.Longitude, Address: req.Address}.Location()
	if loc.HasCoordinates() {
		if _, err := loc.Coordinates(); err != nil {
			writeError(w, r, http.StatusBadRequest, "a valid latitude and longitude are required")
			return
		}
	}

	alert, err := h.Service.Send(r.Context(), services.SOSRequest{
		Confirmed:     req.Confirmed,
		EmergencyType: req.EmergencyType,
		Location:      &loc,
	})
	if errors.Is(err, domain.ErrSOSNotConfirmed) {
		writeError(w, r, http.StatusBadRequest, "sos must be confirmed")
		return
	}
	if err != nil {
		obs.L().Error("send sos failed",
			zap.String("req_id", obs.RequestID(r.Context())),
			zap.Error(err),
		)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusAccepted, dto.SOSResponse{
		ID:       alert.ID,
		Status:   "sent",
		SentAt:   alert.SentAt,
		Location: alert.Location,
		Precise:  alert.Precise,
	})
}
