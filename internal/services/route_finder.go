package services

import (
	"context"
	"errors"
	"fmt"
	"mediroute-service/internal/domain"
	"mediroute-service/internal/platform/obs"
	"mediroute-service/internal/ports"
	"strings"

	"go.uber.org/zap"
)

// DefaultCategories are the place categories searched for every request.
var DefaultCategories = []string{"hospital", "clinic"}

type RouteFinderOptions struct {
	Categories []string
	ETA        ETAConfig

	// EscalateUpstreamFailures turns "every category failed" into
	// ErrUpstreamUnavailable instead of an empty candidate set.
	EscalateUpstreamFailures bool
}

// RouteFinder is the entry point of the ranking pipeline:
// fetch, merge, rank, synthesize.
type RouteFinder struct {
	searcher   ports.PlaceSearcher
	categories []string
	eta        ETAConfig
	escalate   bool
}

func NewRouteFinder(searcher ports.PlaceSearcher, opts RouteFinderOptions) (*RouteFinder, error) {
	if searcher == nil {
		return nil, errors.New("new route finder: searcher is required")
	}

	categories := make([]string, 0, len(opts.Categories))
	for _, c := range opts.Categories {
		if c = strings.TrimSpace(c); c != "" {
			categories = append(categories, c)
		}
	}
	if len(categories) == 0 {
		categories = append(categories, DefaultCategories...)
	}

	eta := opts.ETA
	if eta == (ETAConfig{}) {
		eta = DefaultETAConfig()
	}

	return &RouteFinder{
		searcher:   searcher,
		categories: categories,
		eta:        eta,
		escalate:   opts.EscalateUpstreamFailures,
	}, nil
}

// Categories returns a copy of the searched categories.
func (f *RouteFinder) Categories() []string {
	return append([]string(nil), f.categories...)
}

// FindRoutes returns route records ordered nearest first. The location is
// validated before any upstream call. category is carried for logging; the
// ranking is the same for every emergency type.
func (f *RouteFinder) FindRoutes(
	ctx context.Context,
	loc domain.UserLocation,
	category domain.EmergencyCategory,
) (_ []domain.RouteRecord, err error) {
	defer obs.Time(ctx, "FindRoutes")(&err)

	center, err := loc.Coordinates()
	if err != nil {
		return nil, fmt.Errorf("find routes: %w", err)
	}

	lists, failures := FetchCandidates(ctx, f.searcher, center, f.categories)
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("find routes: %w", err)
	}
	if f.escalate && failures == len(f.categories) {
		return nil, fmt.Errorf("find routes: all %d category searches failed: %w",
			failures, domain.ErrUpstreamUnavailable)
	}

	facilities, err := MergeCandidates(lists...)
	if err != nil {
		return nil, fmt.Errorf("find routes: %w", err)
	}

	ranked := RankByDistance(center, facilities)
	routes := SynthesizeRoutes(ranked, f.eta)

	obs.L().Info("routes found",
		zap.String("req_id", obs.RequestID(ctx)),
		zap.String("emergency_type", string(category)),
		zap.Int("candidates", len(facilities)),
		zap.Int("failed_categories", failures),
		zap.String("primary", routes[0].Facility.Name),
	)
	return routes, nil
}
