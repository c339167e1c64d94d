package dto

type EmergencyTypeResponse struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

type ListEmergenciesResponse struct {
	Emergencies []EmergencyTypeResponse `json:"emergencies"`
}

type ChatRequest struct {
	EmergencyType string `json:"emergency_type"`
	Message       string `json:"message"`
}

type ChatResponse struct {
	Reply string `json:"reply"`
}
