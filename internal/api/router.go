package api

import (
	"mediroute-service/internal/api/handlers"
	"mediroute-service/internal/platform/obs"
	"mediroute-service/internal/services"
	"net/http"
)

// Deps are the services the HTTP layer is composed from.
type Deps struct {
	Finder  *services.RouteFinder
	Tracker *services.RequestTracker
	SOS     *services.SOSService
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(deps Deps) http.Handler {
	mux := http.NewServeMux()

	routeHandler := &handlers.RouteHandler{Finder: deps.Finder, Tracker: deps.Tracker}
	chatHandler := &handlers.ChatHandler{}
	sosHandler := &handlers.SOSHandler{Service: deps.SOS}

	mux.HandleFunc("/health", handlers.Health)
	mux.Handle("/metrics", obs.Handler())
	mux.HandleFunc("/emergencies", handlers.Emergencies)
	mux.HandleFunc("/routes", routeHandler.Find)
	mux.HandleFunc("/routes/summary", routeHandler.Summary)
	mux.HandleFunc("/chat", chatHandler.Chat)
	mux.HandleFunc("/sos", sosHandler.Send)

	return requestIDMiddleware(loggingMiddleware(mux))
}

var knownPaths = map[string]bool{
	"/health":         true,
	"/metrics":        true,
	"/emergencies":    true,
	"/routes":         true,
	"/routes/summary": true,
	"/chat":           true,
	"/sos":            true,
}

// metricsPath bounds the path label to registered routes.
func metricsPath(p string) string {
	if knownPaths[p] {
		return p
	}
	return "other"
}
