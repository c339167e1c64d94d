package handlers

import (
	"context"
	"errors"
	"mediroute-service/internal/api/dto"
	"mediroute-service/internal/domain"
	"mediroute-service/internal/platform/obs"
	"mediroute-service/internal/services"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// SessionHeader identifies a client session. A newer request carrying the
// same session supersedes one still in flight.
const SessionHeader = "X-Session-ID"

type RouteHandler struct {
	Finder  *services.RouteFinder
	Tracker *services.RequestTracker

	// Now stamps summaries; defaults to time.Now.
	Now func() time.Time
}

// Find ranks nearby facilities for the caller's location.
func (h *RouteHandler) Find(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.RouteRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	category, err := domain.ParseEmergencyCategory(req.EmergencyType)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	loc := req.Location()

	ctx := r.Context()
	current := func() bool { return true }
	if h.Tracker != nil {
		ctx, current = h.Tracker.Begin(ctx, strings.TrimSpace(r.Header.Get(SessionHeader)))
	}

	routes, err := h.Finder.FindRoutes(ctx, loc, category)
	if !current() {
		writeError(w, r, http.StatusConflict, "request superseded")
		return
	}
	if err != nil {
		h.writeFindError(w, r, err)
		return
	}

	res := dto.ListRoutesResponse{
		EmergencyType: string(category),
		Location:      loc.Describe(),
		Routes:        make([]dto.RouteResponse, 0, len(routes)),
	}
	for _, rt := range routes {
		res.Routes = append(res.Routes, dto.NewRouteResponse(rt))
	}

	writeJSON(w, r, http.StatusOK, res)
}

func (h *RouteHandler) writeFindError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidLocation):
		writeError(w, r, http.StatusBadRequest, "a valid latitude and longitude are required")
	case errors.Is(err, domain.ErrNoFacilitiesFound):
		writeError(w, r, http.StatusNotFound, "no nearby facilities found")
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		writeError(w, r, http.StatusBadGateway, "place search unavailable")
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		writeError(w, r, http.StatusGatewayTimeout, "request cancelled")
	default:
		obs.L().Error("find routes failed",
			zap.String("req_id", obs.RequestID(r.Context())),
			zap.Error(err),
		)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
	}
}

// Summary renders routes the client already holds as a downloadable text file.
func (h *RouteHandler) Summary(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.SummaryRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	var category domain.EmergencyCategory
	if strings.TrimSpace(req.EmergencyType) != "" {
		c, err := domain.ParseEmergencyCategory(req.EmergencyType)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		category = c
	}

	if len(req.Routes) == 0 {
		writeError(w, r, http.StatusNotFound, "no route data to download")
		return
	}

	routes := make([]domain.RouteRecord, 0, len(req.Routes))
	for _, rt := range req.Routes {
		routes = append(routes, rt.Record())
	}

	var loc *domain.UserLocation
	if req.Location != nil {
		l := req.Location.Location()
		loc = &l
	}

	now := time.Now()
	if h.Now != nil {
		now = h.Now()
	}

	body := services.FormatSummary(routes, category, loc, now)

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+services.SummaryFilename(category, now)+`"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(body)); err != nil {
		obs.L().Warn("write summary failed",
			zap.String("req_id", obs.RequestID(r.Context())),
			zap.Error(err),
		)
	}
}
