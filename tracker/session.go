package tracker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// ErrSessionClosed is returned when closing a session a second time
var ErrSessionClosed = errors.New("session already closed")

// PotCount is the final wheat spike count of one pot
type PotCount struct {
	PotID       int
	WheatSpikes int
}

// Name returns the pot name as shown to the user, eg: "Pot3"
func (p PotCount) Name() string {
	return fmt.Sprintf("Pot%d", p.PotID)
}

// Summary is handed to the Store when a session is closed
type Summary struct {
	SessionID int64
	Started   time.Time
	Ended     time.Time
	// Counts are ordered by pot ID and may be empty when no pot was counted
	Counts []PotCount
}

// Store is the persistence collaborator receiving the counts of a finished
// session
type Store interface {
	SavePotCounts(ctx context.Context, summary Summary) error
}

// Session is one detection session of a user, from opening the camera to
// closing it
type Session struct {
	id      int64
	started time.Time
	tracker *Serial
	// now returns the current time, replaced in tests
	now    func() time.Time
	closed bool
	sync.Mutex
}

// NewSession starts a session reading its counts from the given tracker
func NewSession(id int64, t *Serial) *Session {
	s := &Session{
		id:      id,
		tracker: t,
		now:     func() time.Time { return time.Now().UTC() },
	}

	s.started = s.now()

	return s
}

// ID returns the session ID
func (s *Session) ID() int64 {
	return s.id
}

// Close ends the session and hands its pot counts to the store
func (s *Session) Close(ctx context.Context, store Store) (Summary, error) {
	s.Lock()
	defer s.Unlock()

	if s.closed {
		return Summary{}, ErrSessionClosed
	}

	summary := Summary{
		SessionID: s.id,
		Started:   s.started,
		Ended:     s.now(),
		Counts:    s.tracker.Report(),
	}

	if err := store.SavePotCounts(ctx, summary); err != nil {
		return summary, fmt.Errorf("error saving session %d: %w", s.id, err)
	}

	s.closed = true

	return summary, nil
}
