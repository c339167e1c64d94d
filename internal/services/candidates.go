package services

import (
	"context"
	"mediroute-service/internal/domain"
	"mediroute-service/internal/platform/obs"
	"mediroute-service/internal/ports"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// FetchCandidates queries every category concurrently and returns one list
// per category, in category order. A failed category degrades to an empty
// list and is counted in failures; it never cancels its siblings.
func FetchCandidates(
	ctx context.Context,
	searcher ports.PlaceSearcher,
	center domain.Coordinates,
	categories []string,
) (lists [][]domain.Facility, failures int) {
	lists = make([][]domain.Facility, len(categories))
	failed := make([]bool, len(categories))

	// A plain Group: a sibling failure must not cancel the other queries.
	var g errgroup.Group
	for i, category := range categories {
		i, category := i, category
		g.Go(func() error {
			places, err := searcher.SearchPlaces(ctx, center, category)
			if err != nil {
				obs.L().Warn("category search failed, continuing without it",
					zap.String("req_id", obs.RequestID(ctx)),
					zap.String("category", category),
					zap.Error(err),
				)
				failed[i] = true
				lists[i] = []domain.Facility{}
				return nil
			}
			lists[i] = places
			return nil
		})
	}
	_ = g.Wait()

	for _, f := range failed {
		if f {
			failures++
		}
	}
	return lists, failures
}

// MergeCandidates concatenates lists in order and collapses records sharing
// an ID. The later record wins but keeps the position of the first
// occurrence. An empty result is ErrNoFacilitiesFound.
func MergeCandidates(lists ...[]domain.Facility) ([]domain.Facility, error) {
	total := 0
	for _, l := range lists {
		total += len(l)
	}

	index := make(map[string]int, total)
	out := make([]domain.Facility, 0, total)
	for _, l := range lists {
		for _, f := range l {
			if i, ok := index[f.ID]; ok {
				out[i] = f
				continue
			}
			index[f.ID] = len(out)
			out = append(out, f)
		}
	}

	if len(out) == 0 {
		return nil, domain.ErrNoFacilitiesFound
	}
	return out, nil
}
