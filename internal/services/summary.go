package services

import (
	"fmt"
	"mediroute-service/internal/domain"
	"strings"
	"time"
)

const (
	summaryRule       = "========================================"
	summaryDisclaimer = "Disclaimer: This information is for guidance and planning purposes only. In a real emergency, always call emergency services. Verify details and prioritize safety."
)

// FormatSummary renders routes as a plain-text report. category may be
// empty and loc may be nil. now is the generation timestamp.
func FormatSummary(
	routes []domain.RouteRecord,
	category domain.EmergencyCategory,
	loc *domain.UserLocation,
	now time.Time,
) string {
	var b strings.Builder

	b.WriteString("MediRoute - Emergency Route Summary\n")
	fmt.Fprintf(&b, "Generated: %s\n", now.Format("2006-01-02 15:04:05 MST"))

	emergency := string(category)
	if emergency == "" {
		emergency = "Not specified"
	}
	fmt.Fprintf(&b, "Emergency Type: %s\n", emergency)
	fmt.Fprintf(&b, "Your Location: %s\n", loc.Describe())
	b.WriteString(summaryRule + "\n\n")

	var primary *domain.RouteRecord
	alternatives := make([]domain.RouteRecord, 0, len(routes))
	for i := range routes {
		if routes[i].IsPrimary && primary == nil {
			primary = &routes[i]
			continue
		}
		alternatives = append(alternatives, routes[i])
	}

	if primary != nil {
		b.WriteString("PRIMARY ROUTE:\n")
		writeRouteBlock(&b, *primary)
		b.WriteString("\n")
	}

	if len(alternatives) > 0 {
		b.WriteString("ALTERNATIVE ROUTES:\n")
		for i, r := range alternatives {
			fmt.Fprintf(&b, "\nAlternative %d:\n", i+1)
			writeRouteBlock(&b, r)
		}
		b.WriteString("\n")
	}

	if primary == nil && len(alternatives) == 0 {
		b.WriteString("No routes were found for the specified location and emergency type.\n\n")
	}

	b.WriteString(summaryRule + "\n")
	b.WriteString(summaryDisclaimer + "\n")
	return b.String()
}

func writeRouteBlock(b *strings.Builder, r domain.RouteRecord) {
	fmt.Fprintf(b, "  Hospital: %s\n", r.Facility.Name)
	fmt.Fprintf(b, "  Address: %s\n", r.Facility.Address)
	fmt.Fprintf(b, "  Phone: %s\n", orNA(r.Facility.Phone))
	fmt.Fprintf(b, "  Distance: %s\n", r.DistanceText())
	fmt.Fprintf(b, "  Est. Time: %s\n", r.ETAText())
	fmt.Fprintf(b, "  Traffic: %s\n", orNA(r.TrafficStatus))
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}

// SummaryFilename names the downloadable report.
func SummaryFilename(category domain.EmergencyCategory, now time.Time) string {
	name := string(category)
	if name == "" {
		name = "Emergency"
	}
	return fmt.Sprintf("MediRoute_Summary_%s_%s.txt", name, now.Format("2006-01-02"))
}
