package stream

import (
	"sync"

	"github.com/swdee/go-spikecount/postprocess"
)

// ThresholdStore holds the suppression thresholds a user can change while a
// stream is running.  The stream reads them once per frame
type ThresholdStore struct {
	th postprocess.Thresholds
	sync.RWMutex
}

// NewThresholdStore returns a store holding the given thresholds clamped
// to [0,1]
func NewThresholdStore(th postprocess.Thresholds) *ThresholdStore {
	return &ThresholdStore{
		th: th.Clamped(),
	}
}

// Get returns the current thresholds
func (t *ThresholdStore) Get() postprocess.Thresholds {
	t.RLock()
	defer t.RUnlock()

	return t.th
}

// Set replaces all thresholds, clamping each to [0,1]
func (t *ThresholdStore) Set(th postprocess.Thresholds) {
	t.Lock()
	defer t.Unlock()

	t.th = th.Clamped()
}

// StepDetect moves the detection threshold by delta, eg: +0.1 or -0.1 from
// the UI buttons, and returns the new value clamped to [0,1]
func (t *ThresholdStore) StepDetect(delta float32) float32 {
	t.Lock()
	defer t.Unlock()

	th := t.th
	th.Detect += delta
	t.th = th.Clamped()

	return t.th.Detect
}
