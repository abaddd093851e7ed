package dashboard

import (
	"sync"

	"github.com/lotwise/backend/internal/model"
)

// FilterState is a snapshot of the dashboard's active selection. At most one
// dimension is active at a time; Active == false means the baseline view.
// Source carries free-form provenance (which panel set the filter) and is
// never used for logic.
type FilterState struct {
	Dimension model.Dimension
	Value     string
	Source    string
	Active    bool
}

// Matches reports whether the state is the active selection (d, v),
// regardless of which panel set it.
func (s FilterState) Matches(d model.Dimension, v string) bool {
	return s.Active && s.Dimension == d && s.Value == v
}

// StateStore coordinates the cross-filter selection shared by every panel.
// Listeners are notified synchronously, in subscription order, on every
// effective change; no-op transitions never notify.
type StateStore struct {
	mu    sync.RWMutex
	state FilterState

	listenerSeq int
	listeners   map[int]func(FilterState)
}

func NewStateStore() *StateStore {
	return &StateStore{
		listeners: make(map[int]func(FilterState)),
	}
}

// State returns the current selection.
func (s *StateStore) State() FilterState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// IsFiltered reports whether (d, v) is the active selection.
func (s *StateStore) IsFiltered(d model.Dimension, v string) bool {
	return s.State().Matches(d, v)
}

// IsAnyFiltered reports whether any selection is active.
func (s *StateStore) IsAnyFiltered() bool {
	return s.State().Active
}

// SetFilter activates the selection (d, v), replacing any previous
// selection. Unknown dimensions are accepted here; they degrade at the
// fetch layer. Re-setting the identical selection is a no-op and reports
// false.
func (s *StateStore) SetFilter(d model.Dimension, v, source string) bool {
	next := FilterState{Dimension: d, Value: v, Source: source, Active: true}
	s.mu.Lock()
	if s.state == next {
		s.mu.Unlock()
		return false
	}
	s.state = next
	state, listeners := s.state, s.snapshotListeners()
	s.mu.Unlock()

	notify(listeners, state)
	return true
}

// ClearFilter reverts to the baseline view. Clearing an already-clear
// store is a no-op and reports false.
func (s *StateStore) ClearFilter() bool {
	s.mu.Lock()
	if !s.state.Active {
		s.mu.Unlock()
		return false
	}
	s.state = FilterState{}
	state, listeners := s.state, s.snapshotListeners()
	s.mu.Unlock()

	notify(listeners, state)
	return true
}

// Subscribe registers fn to be invoked on every effective state change.
// The returned function removes the subscription.
func (s *StateStore) Subscribe(fn func(FilterState)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.listenerSeq
	s.listenerSeq++
	s.listeners[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

// snapshotListeners must be called with mu held.
func (s *StateStore) snapshotListeners() []func(FilterState) {
	listeners := make([]func(FilterState), 0, len(s.listeners))
	for id := 0; id < s.listenerSeq; id++ {
		if fn, ok := s.listeners[id]; ok {
			listeners = append(listeners, fn)
		}
	}
	return listeners
}

func notify(listeners []func(FilterState), state FilterState) {
	for _, fn := range listeners {
		fn(state)
	}
}
