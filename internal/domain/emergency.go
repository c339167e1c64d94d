package domain

import (
	"fmt"
	"strings"
)

// EmergencyCategory identifies the kind of emergency selected by the user.
type EmergencyCategory string

const (
	EmergencyAccident   EmergencyCategory = "accident"
	EmergencyHeart      EmergencyCategory = "heart"
	EmergencyStroke     EmergencyCategory = "stroke"
	EmergencyAllergy    EmergencyCategory = "allergy"
	EmergencyChildbirth EmergencyCategory = "childbirth"
	EmergencyBleeding   EmergencyCategory = "bleeding"
)

type EmergencyType struct {
	ID    EmergencyCategory
	Label string
}

// EmergencyCategories is the selectable catalogue, in display order.
var EmergencyCategories = []EmergencyType{
	{ID: EmergencyAccident, Label: "Accident"},
	{ID: EmergencyHeart, Label: "Heart Attack / Cardiac Arrest"},
	{ID: EmergencyStroke, Label: "Stroke"},
	{ID: EmergencyAllergy, Label: "Severe Allergic Reaction"},
	{ID: EmergencyChildbirth, Label: "Childbirth"},
	{ID: EmergencyBleeding, Label: "Uncontrolled Bleeding"},
}

// ParseEmergencyCategory normalizes s and checks it against the catalogue.
func ParseEmergencyCategory(s string) (EmergencyCategory, error) {
	c := EmergencyCategory(strings.ToLower(strings.TrimSpace(s)))
	if c == "" {
		return "", fmt.Errorf("%w: emergency type is required", ErrUnknownCategory)
	}
	for _, t := range EmergencyCategories {
		if t.ID == c {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}
