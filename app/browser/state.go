package browser

import (
	"sync"
	"time"

	"github.com/lysyi3m/day-reel/app/content"
	"github.com/lysyi3m/day-reel/app/source"
)

// Snapshot is a consistent copy of the browser state for rendering.
type Snapshot struct {
	Collections   content.Sequence
	CurrentIndex  int
	Loading       bool
	LastSyncTime  *time.Time
	LastError     string
	UsingFallback bool
}

func (s Snapshot) Current() (content.DatedCollection, bool) {
	if s.CurrentIndex < 0 || s.CurrentIndex >= len(s.Collections) {
		return content.DatedCollection{}, false
	}
	return s.Collections[s.CurrentIndex], true
}

func (s Snapshot) HasPrevious() bool {
	return s.CurrentIndex < len(s.Collections)-1
}

func (s Snapshot) HasNext() bool {
	return s.CurrentIndex > 0
}

// State tracks the resolved collections and which day is shown. It is safe
// for concurrent use.
type State struct {
	mu            sync.RWMutex
	collections   content.Sequence
	currentIndex  int
	loading       bool
	generation    uint64
	lastSyncTime  *time.Time
	lastError     string
	usingFallback bool
}

func NewState() *State {
	return &State{collections: content.Sequence{}}
}

// GoToPrevious moves one day back in time. It reports whether it moved.
func (s *State) GoToPrevious() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.currentIndex >= len(s.collections)-1 {
		return false
	}
	s.currentIndex++
	return true
}

// GoToNext moves one day forward in time. It reports whether it moved.
func (s *State) GoToNext() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.currentIndex <= 0 {
		return false
	}
	s.currentIndex--
	return true
}

// GoToDate selects the collection for date if present.
func (s *State) GoToDate(date string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.collections.IndexOf(date)
	if idx < 0 {
		return false
	}
	s.currentIndex = idx
	return true
}

// BeginRefresh marks a refresh as in flight and returns its generation.
// ok is false when another refresh is still outstanding.
func (s *State) BeginRefresh() (generation uint64, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loading {
		return 0, false
	}
	s.loading = true
	s.generation++
	return s.generation, true
}

// CompleteRefresh stores result if generation is still current. The
// sequence is replaced wholesale and the current index clamped into range.
// BeginRefresh refuses overlapping refreshes, so a stale generation only
// shows up after AbortRefresh released the guard for a refresh that still
// finished later.
func (s *State) CompleteRefresh(generation uint64, result source.Result) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if generation != s.generation {
		return false
	}

	s.loading = false
	s.replace(result.Collections)
	s.usingFallback = result.UsedFallback

	if result.Err != nil {
		s.lastError = result.Err.Error()
	} else {
		s.lastError = ""
		resolvedAt := result.ResolvedAt
		s.lastSyncTime = &resolvedAt
	}

	return true
}

// AbortRefresh clears the in-flight flag without touching the collections.
func (s *State) AbortRefresh(generation uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if generation == s.generation {
		s.loading = false
	}
}

// Replace swaps in seq directly, outside the refresh cycle.
func (s *State) Replace(seq content.Sequence) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replace(seq)
}

// Stored sequences are never mutated afterwards, so snapshots share them.
func (s *State) replace(seq content.Sequence) {
	if seq == nil {
		seq = content.Sequence{}
	}
	s.collections = seq

	switch {
	case len(seq) == 0:
		s.currentIndex = 0
	case s.currentIndex >= len(seq):
		s.currentIndex = len(seq) - 1
	}
}

func (s *State) CurrentIndex() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentIndex
}

func (s *State) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.collections)
}

func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := Snapshot{
		Collections:   s.collections,
		CurrentIndex:  s.currentIndex,
		Loading:       s.loading,
		LastError:     s.lastError,
		UsingFallback: s.usingFallback,
	}
	if s.lastSyncTime != nil {
		syncTime := *s.lastSyncTime
		snapshot.LastSyncTime = &syncTime
	}
	return snapshot
}
