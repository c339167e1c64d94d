package geocode

import (
	"context"
	"fmt"
	"mediroute-service/internal/domain"
	"sync"
)

// MockPlaceSearcher returns canned facilities per category and records calls.
type MockPlaceSearcher struct {
	mu     sync.Mutex
	places map[string][]domain.Facility
	errs   map[string]error
	calls  []string
}

func NewMockPlaceSearcher(places map[string][]domain.Facility) *MockPlaceSearcher {
	return &MockPlaceSearcher{places: places, errs: map[string]error{}}
}

// FailCategory makes searches for category return err.
func (m *MockPlaceSearcher) FailCategory(category string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errs[category] = err
}

func (m *MockPlaceSearcher) SearchPlaces(ctx context.Context, center domain.Coordinates, category string) ([]domain.Facility, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, category)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err, ok := m.errs[category]; ok {
		return nil, fmt.Errorf("mock search %q: %w", category, err)
	}

	out := make([]domain.Facility, len(m.places[category]))
	copy(out, m.places[category])
	return out, nil
}

// Calls returns the categories searched so far.
func (m *MockPlaceSearcher) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}
