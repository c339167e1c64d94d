package services

import (
	"mediroute-service/internal/domain"
	"strings"
)

const DefaultFirstAidAdvice = "I am an agent designed to help with Heart Attack, Stroke, and Allergic Reaction emergencies. Please provide more details or specify the emergency."

type firstAidEntry struct {
	category domain.EmergencyCategory
	keywords []string
	advice   string
}

var firstAidTable = []firstAidEntry{
	{
		category: domain.EmergencyHeart,
		keywords: []string{"heart", "cardiac"},
		advice:   "For a heart attack, immediately call emergency services and administer CPR if the person is unresponsive.",
	},
	{
		category: domain.EmergencyStroke,
		keywords: []string{"stroke"},
		advice:   "For a stroke, remember FAST: Face, Arms, Speech, Time. Call emergency services immediately.",
	},
	{
		category: domain.EmergencyAllergy,
		keywords: []string{"allergy", "allergic"},
		advice:   "For a severe allergic reaction, use an epinephrine auto-injector (EpiPen) if available and call emergency services.",
	},
}

// FirstAidAdvisor answers chat messages with canned first-aid guidance.
// The reply depends only on the emergency type; the message is accepted so
// callers can log it.
type FirstAidAdvisor struct{}

// Advise matches emergencyType against the category id or any keyword it
// contains, case-insensitive. Unmatched types get DefaultFirstAidAdvice.
func (FirstAidAdvisor) Advise(emergencyType, message string) string {
	t := strings.ToLower(strings.TrimSpace(emergencyType))
	if t == "" {
		return DefaultFirstAidAdvice
	}

	for _, e := range firstAidTable {
		if domain.EmergencyCategory(t) == e.category {
			return e.advice
		}
	}
	for _, e := range firstAidTable {
		for _, kw := range e.keywords {
			if strings.Contains(t, kw) {
				return e.advice
			}
		}
	}
	return DefaultFirstAidAdvice
}
