package tracker

import (
	"go.uber.org/zap"
)

const (
	// NoSpikeObserved is the sentinel maximum recorded for a pot that was
	// left by an absence frame before any wheat spike was counted for it
	NoSpikeObserved = -1

	// DefaultPotLabel is the class name of the pot container
	DefaultPotLabel = "Pot"
	// DefaultSpikeLabel is the class name of the counted object
	DefaultSpikeLabel = "Wheat Spike"
)

// Mode is the state of the episode state machine
type Mode int

const (
	// Tracking is the default mode where the current pot is active
	Tracking Mode = iota
	// AbsenceObserved is entered on a frame with no detections at all,
	// signalling the pot may have left the view
	AbsenceObserved
)

func (m Mode) String() string {
	switch m {
	case Tracking:
		return "Tracking"
	case AbsenceObserved:
		return "AbsenceObserved"
	}

	return "Unknown"
}

// PotEpisode is the spike count of a single pot sighting
type PotEpisode struct {
	// PotID is the monotonic pot number starting from 0
	PotID int
	// MaxSpikes is the largest number of wheat spikes seen in a single
	// frame alongside this pot, or NoSpikeObserved
	MaxSpikes int
}

// Params are the class names the state machine reads from the per frame
// label counts
type Params struct {
	PotLabel   string
	SpikeLabel string
}

// DefaultParams returns the class names of the wheat spike Model
func DefaultParams() Params {
	return Params{
		PotLabel:   DefaultPotLabel,
		SpikeLabel: DefaultSpikeLabel,
	}
}

// Episodes is the episode tracker.  It counts wheat spikes per pot as pots
// pass through the camera view, using a frame with no detections as the
// boundary between one pot and the next.  It is not safe for concurrent
// use, see Serial
type Episodes struct {
	params Params
	log    *zap.Logger
	// currentPotID is the ID of the active episode
	currentPotID int
	// sawAbsence is set when a frame without detections has been seen since
	// the current pot was last started
	sawAbsence bool
	// potSeen is set once any frame has contained a pot.  Until then the
	// pre-created pot 0 is waiting for its first pot
	potSeen bool
	// episodes holds every episode of the session indexed by pot ID
	episodes []PotEpisode
}

// NewEpisodes returns an episode tracker with pot 0 already created.  A nil
// logger disables logging
func NewEpisodes(p Params, log *zap.Logger) *Episodes {

	if log == nil {
		log = zap.NewNop()
	}

	e := &Episodes{
		params: p,
		log:    log,
	}

	e.Reset()

	return e
}

// Reset discards all episodes and starts again from pot 0
func (e *Episodes) Reset() {
	e.currentPotID = 0
	e.sawAbsence = false
	e.potSeen = false
	e.episodes = []PotEpisode{{PotID: 0, MaxSpikes: 0}}
}

// Update advances the state machine with the detection counts by label of
// one frame
func (e *Episodes) Update(counts map[string]int) {

	if empty(counts) {
		e.sawAbsence = true

		// mark the pot so a pot that was never counted can be told apart
		// from one counted with no spikes
		if e.current().MaxSpikes == 0 {
			e.current().MaxSpikes = NoSpikeObserved
		}

		return
	}

	pots := counts[e.params.PotLabel]
	spikes := counts[e.params.SpikeLabel]

	if pots > 0 {
		switch {
		case !e.potSeen:
			// the very first pot takes over pot 0 rather than starting a
			// new episode
			e.potSeen = true
			e.sawAbsence = false
			e.current().MaxSpikes = 0

		case e.sawAbsence:
			e.currentPotID++
			e.episodes = append(e.episodes, PotEpisode{PotID: e.currentPotID})
			e.sawAbsence = false

			e.log.Debug("new pot", zap.Int("pot", e.currentPotID))
		}

		if spikes > 0 {
			cur := e.current()

			if spikes > cur.MaxSpikes {
				cur.MaxSpikes = spikes
			}
		}

		return
	}

	if spikes > 0 {
		e.log.Debug("ignoring wheat spikes detected without a pot",
			zap.Int("pot", e.currentPotID),
			zap.Int("spikes", spikes),
		)
	}
}

// current returns the active episode
func (e *Episodes) current() *PotEpisode {
	return &e.episodes[e.currentPotID]
}

// Current returns a copy of the active episode
func (e *Episodes) Current() PotEpisode {
	return *e.current()
}

// Mode returns the current state of the state machine
func (e *Episodes) Mode() Mode {
	if e.sawAbsence {
		return AbsenceObserved
	}

	return Tracking
}

// Episodes returns a copy of all episodes ordered by pot ID
func (e *Episodes) Episodes() []PotEpisode {

	out := make([]PotEpisode, len(e.episodes))
	copy(out, e.episodes)

	return out
}

// Report returns the pot counts worth persisting.  Pots holding the
// NoSpikeObserved sentinel are dropped, as is pot 0 when no pot was ever
// seen during the session
func (e *Episodes) Report() []PotCount {

	out := make([]PotCount, 0, len(e.episodes))

	for _, ep := range e.episodes {
		if ep.MaxSpikes < 0 {
			continue
		}

		if ep.PotID == 0 && !e.potSeen {
			continue
		}

		out = append(out, PotCount{
			PotID:       ep.PotID,
			WheatSpikes: ep.MaxSpikes,
		})
	}

	return out
}

// empty reports if the frame counts hold no detections
func empty(counts map[string]int) bool {

	for _, n := range counts {
		if n > 0 {
			return false
		}
	}

	return true
}
