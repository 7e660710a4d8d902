package stream

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/swdee/go-spikecount/postprocess"
	"github.com/swdee/go-spikecount/tracker"
	"go.uber.org/zap"
)

// Frame is the raw output tensor of one camera frame
type Frame struct {
	// Seq is the capture order of the frame, increasing per stream
	Seq uint64
	// Tensor is the flattened Model output.  The stream only reads it
	Tensor []float32
}

// Result is published for every frame the stream processed
type Result struct {
	Seq uint64
	// Detections are the surviving detections in display space
	Detections []postprocess.Detection
	// Counts are the number of detections per label name
	Counts map[string]int
	// Current is the active pot episode after the frame was applied
	Current tracker.PotEpisode
	// Applied is false when the result was older than one already applied
	// to the tracker, or the frame failed
	Applied bool
	// Err is set when the frame could not be processed, the tracker is left
	// unchanged
	Err error
}

// Stream runs the frames of one camera stream through a pipeline and into
// an episode tracker.  Only the most recent pending frame is kept, so a slow
// pipeline drops frames rather than building a backlog
type Stream struct {
	pool       *Pool
	thresholds *ThresholdStore
	tracker    *tracker.Serial
	log        *zap.Logger
	// mailbox holds the most recent frame waiting to be processed
	mailbox chan Frame
	// submitMu serialises the replace of a pending frame
	submitMu sync.Mutex
	onResult func(Result)
	// replaced counts frames dropped from the mailbox unprocessed
	replaced atomic.Uint64
	// processed counts frames taken from the mailbox
	processed atomic.Uint64
}

// New returns a stream taking pipelines from pool, applying results to the
// tracker t.  A nil logger disables logging
func New(pool *Pool, thresholds *ThresholdStore, t *tracker.Serial, log *zap.Logger) *Stream {

	if log == nil {
		log = zap.NewNop()
	}

	return &Stream{
		pool:       pool,
		thresholds: thresholds,
		tracker:    t,
		log:        log,
		mailbox:    make(chan Frame, 1),
	}
}

// OnResult sets the callback receiving each processed frame's result.  It is
// called from the stream's worker goroutine and must be set before Run
func (s *Stream) OnResult(fn func(Result)) {
	s.onResult = fn
}

// Submit queues the frame for processing.  A frame already waiting is
// replaced, in which case true is returned
func (s *Stream) Submit(f Frame) bool {
	s.submitMu.Lock()
	defer s.submitMu.Unlock()

	select {
	case s.mailbox <- f:
		return false
	default:
	}

	replaced := false

	// mailbox is full, drop the waiting frame unless the worker just took it
	select {
	case old := <-s.mailbox:
		replaced = true
		s.replaced.Add(1)
		s.log.Debug("replaced pending frame",
			zap.Uint64("dropped", old.Seq),
			zap.Uint64("seq", f.Seq),
		)
	default:
	}

	s.mailbox <- f

	return replaced
}

// Replaced returns the number of frames dropped without being processed
func (s *Stream) Replaced() uint64 {
	return s.replaced.Load()
}

// Processed returns the number of frames taken for processing
func (s *Stream) Processed() uint64 {
	return s.processed.Load()
}

// Run processes submitted frames until the context is cancelled
func (s *Stream) Run(ctx context.Context) error {

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case f := <-s.mailbox:
			s.processed.Add(1)
			res := s.process(f)

			if s.onResult != nil {
				s.onResult(res)
			}
		}
	}
}

// process runs one frame through a pooled pipeline and applies the counts
// to the tracker
func (s *Stream) process(f Frame) Result {

	res := Result{
		Seq: f.Seq,
	}

	pl, err := s.pool.Get()

	if err != nil {
		res.Err = err
		res.Current = s.tracker.Current()
		s.log.Warn("no pipeline for frame", zap.Uint64("seq", f.Seq), zap.Error(err))
		return res
	}

	out, err := pl.Process(f.Tensor, s.thresholds.Get())
	s.pool.Return(pl)

	if err != nil {
		res.Err = err
		res.Current = s.tracker.Current()
		s.log.Warn("skipping frame", zap.Uint64("seq", f.Seq), zap.Error(err))
		return res
	}

	res.Detections = out.Display
	res.Counts = out.Counts
	res.Applied = s.tracker.Apply(f.Seq, out.Counts)
	res.Current = s.tracker.Current()

	if !res.Applied {
		s.log.Debug("dropping stale frame result", zap.Uint64("seq", f.Seq))
	}

	return res
}
