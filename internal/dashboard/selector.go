package dashboard

import (
	"sync"

	"github.com/lotwise/backend/internal/model"
)

// DataSource tells which dataset a DisplayData view was derived from.
type DataSource string

const (
	SourceBaseline DataSource = "baseline"
	SourceFiltered DataSource = "filtered"
)

// DisplayData is the single derived view every panel renders from. It
// combines the selection, the summary to display, and the fetch status.
type DisplayData struct {
	Filter  FilterState
	Summary *model.AggregatedSummary
	Source  DataSource
	Loading bool
	Err     error
}

// Breakdown returns the displayed breakdown for a dimension, or nil when no
// summary is available yet.
func (d DisplayData) Breakdown(dimension model.Dimension) []*model.AggregationItem {
	if d.Summary == nil {
		return nil
	}
	return d.Summary.Breakdown(dimension)
}

// Selector derives DisplayData from the state store and the fetcher. While
// a filtered fetch is in flight, or after one failed, the previously
// applied summary stays visible; before any filtered response has been
// applied for the active selection, the baseline fills in.
type Selector struct {
	store   *StateStore
	fetcher *Fetcher

	mu       sync.RWMutex
	baseline *model.AggregatedSummary
}

func NewSelector(store *StateStore, fetcher *Fetcher) *Selector {
	return &Selector{
		store:   store,
		fetcher: fetcher,
	}
}

// SetBaseline installs the unfiltered summary used whenever no filter is
// active and as the fallback before a filtered response arrives.
func (s *Selector) SetBaseline(summary *model.AggregatedSummary) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.baseline = summary
}

// Baseline returns the installed unfiltered summary, which may be nil
// before the first warm-up.
func (s *Selector) Baseline() *model.AggregatedSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.baseline
}

// DisplayData derives the view to render right now.
func (s *Selector) DisplayData() DisplayData {
	state := s.store.State()
	snap := s.fetcher.Snapshot()

	if !state.Active {
		return DisplayData{
			Filter:  state,
			Summary: s.Baseline(),
			Source:  SourceBaseline,
		}
	}

	data := DisplayData{
		Filter:  state,
		Loading: snap.Loading,
		Err:     snap.Err,
	}

	if snap.Summary != nil && snap.State.Active {
		data.Summary = snap.Summary
		data.Source = SourceFiltered
	} else {
		data.Summary = s.Baseline()
		data.Source = SourceBaseline
	}

	return data
}
