package handlers

import (
	"mediroute-service/internal/api/dto"
	"mediroute-service/internal/domain"
	"net/http"
)

// Emergencies lists the selectable emergency types.
func Emergencies(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	res := dto.ListEmergenciesResponse{
		Emergencies: make([]dto.EmergencyTypeResponse, 0, len(domain.EmergencyCategories)),
	}
	for _, e := range domain.EmergencyCategories {
		res.Emergencies = append(res.Emergencies, dto.EmergencyTypeResponse{
			ID:    string(e.ID),
			Label: e.Label,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
