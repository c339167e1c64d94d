package services

import (
	"context"
	"sync"
)

// RequestTracker keeps the latest in-flight request per session. Starting a
// new request cancels the previous one for the same session, so results of
// a superseded request are never delivered.
type RequestTracker struct {
	mu       sync.Mutex
	next     uint64
	sessions map[string]trackedRequest
}

type trackedRequest struct {
	token  uint64
	cancel context.CancelFunc
}

func NewRequestTracker() *RequestTracker {
	return &RequestTracker{sessions: make(map[string]trackedRequest)}
}

// Begin registers a new request for session and returns a context that is
// cancelled when a newer request for the same session begins. done must be
// called when the request finishes; it reports whether the request was still
// current.
func (t *RequestTracker) Begin(ctx context.Context, session string) (context.Context, func() (current bool)) {
	if session == "" {
		return ctx, func() bool { return true }
	}

	ctx, cancel := context.WithCancel(ctx)

	t.mu.Lock()
	t.next++
	token := t.next
	if prev, ok := t.sessions[session]; ok {
		prev.cancel()
	}
	t.sessions[session] = trackedRequest{token: token, cancel: cancel}
	t.mu.Unlock()

	return ctx, func() bool {
		defer cancel()

		t.mu.Lock()
		defer t.mu.Unlock()

		cur, ok := t.sessions[session]
		if !ok || cur.token != token {
			return false
		}
		delete(t.sessions, session)
		return true
	}
}

// InFlight reports how many sessions have a request in progress.
func (t *RequestTracker) InFlight() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.sessions)
}
