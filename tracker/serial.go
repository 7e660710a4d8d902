package tracker

import (
	"sync"
)

// Serial guards an Episodes tracker so frame results from concurrent
// pipeline work are applied one at a time and in frame order.  A result
// with a sequence number at or below the last applied one is stale and is
// dropped
type Serial struct {
	episodes *Episodes
	// lastSeq is the sequence number of the last applied frame
	lastSeq uint64
	// applied is set once any frame has been applied
	applied bool
	sync.Mutex
}

// NewSerial returns a Serial wrapping the given tracker
func NewSerial(e *Episodes) *Serial {
	return &Serial{
		episodes: e,
	}
}

// Apply updates the tracker with the counts of frame seq and returns false
// if the result was stale and dropped
func (s *Serial) Apply(seq uint64, counts map[string]int) bool {
	s.Lock()
	defer s.Unlock()

	if s.applied && seq <= s.lastSeq {
		return false
	}

	s.episodes.Update(counts)
	s.lastSeq = seq
	s.applied = true

	return true
}

// LastSeq returns the sequence number of the last applied frame and false if
// none has been applied yet
func (s *Serial) LastSeq() (uint64, bool) {
	s.Lock()
	defer s.Unlock()

	return s.lastSeq, s.applied
}

// Current returns the active episode
func (s *Serial) Current() PotEpisode {
	s.Lock()
	defer s.Unlock()

	return s.episodes.Current()
}

// Episodes returns all episodes ordered by pot ID
func (s *Serial) Episodes() []PotEpisode {
	s.Lock()
	defer s.Unlock()

	return s.episodes.Episodes()
}

// Report returns the pot counts worth persisting
func (s *Serial) Report() []PotCount {
	s.Lock()
	defer s.Unlock()

	return s.episodes.Report()
}
