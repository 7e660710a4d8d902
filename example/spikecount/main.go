package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/swdee/go-spikecount"
	"github.com/swdee/go-spikecount/config"
	"github.com/swdee/go-spikecount/logger"
	"github.com/swdee/go-spikecount/render"
	"github.com/swdee/go-spikecount/render/canvas"
	"github.com/swdee/go-spikecount/stream"
	"github.com/swdee/go-spikecount/tracker"
	"go.uber.org/zap"
	"gocv.io/x/gocv"
)

// logStore is a tracker.Store writing the session counts to the log in
// place of a database
type logStore struct {
	log *zap.Logger
}

func (s logStore) SavePotCounts(_ context.Context, sum tracker.Summary) error {

	for _, c := range sum.Counts {
		s.log.Info("pot count",
			zap.Int64("session", sum.SessionID),
			zap.String("pot", c.Name()),
			zap.Int("wheatSpikes", c.WheatSpikes),
		)
	}

	s.log.Info("session saved",
		zap.Int64("session", sum.SessionID),
		zap.Int("pots", len(sum.Counts)),
		zap.Duration("duration", sum.Ended.Sub(sum.Started)),
	)

	return nil
}

func main() {
	// disable logging timestamps
	log.SetFlags(0)

	// read in cli flags
	configFile := flag.String("c", "config.yaml", "Configuration file")
	framesDir := flag.String("f", "frames", "Directory of raw float32 output tensors (*.bin) processed in name order")
	fps := flag.Int("fps", 30, "Rate frames are submitted at")
	imgFile := flag.String("i", "", "Optional preview image to draw the last frame's detections on")
	saveFile := flag.String("o", "out.jpg", "Output file of the drawn preview image")
	pngFile := flag.String("p", "", "Optional PNG file to save the pure Go overlay of the last frame to")

	flag.Parse()

	cfg, err := config.Load(*configFile)

	if err != nil {
		log.Fatal("Error loading config: ", err)
	}

	zlog := logger.New(cfg.Log.Debug)
	defer zlog.Sync()

	labels, err := spikecount.LoadLabels(cfg.Model.Labels)

	if err != nil {
		zlog.Fatal("error loading labels", zap.Error(err))
	}

	if err := config.ValidateLabels(cfg, labels); err != nil {
		zlog.Fatal("invalid label table", zap.Error(err))
	}

	toDisplay, err := cfg.DisplayTransform()

	if err != nil {
		zlog.Fatal("error creating model to preview transform", zap.Error(err))
	}

	viewport := image.Rect(0, 0, cfg.Stream.PreviewWidth, cfg.Stream.PreviewHeight)

	pool, err := stream.NewPool(cfg.Stream.PoolSize, stream.PipelineParams{
		Model:     cfg.ModelParams(),
		Labels:    labels,
		NumLabels: len(labels),
		ToDisplay: toDisplay,
		Viewport:  viewport,
	})

	if err != nil {
		zlog.Fatal("error creating pipeline pool", zap.Error(err))
	}

	defer pool.Close()

	frames, err := filepath.Glob(filepath.Join(*framesDir, "*.bin"))

	if err != nil || len(frames) == 0 {
		zlog.Fatal("no frames found", zap.String("dir", *framesDir), zap.Error(err))
	}

	sort.Strings(frames)

	counter := tracker.NewSerial(tracker.NewEpisodes(cfg.TrackerParams(), zlog))
	session := tracker.NewSession(time.Now().Unix(), counter)
	thresholds := stream.NewThresholdStore(cfg.SuppressionThresholds())

	st := stream.New(pool, thresholds, counter, zlog)

	lastSeq := uint64(len(frames) - 1)
	done := make(chan struct{})

	var (
		mu   sync.Mutex
		last stream.Result
	)

	st.OnResult(func(res stream.Result) {
		if res.Err == nil {
			zlog.Debug("frame",
				zap.Uint64("seq", res.Seq),
				zap.Any("counts", res.Counts),
				zap.Int("pot", res.Current.PotID),
				zap.Int("maxSpikes", res.Current.MaxSpikes),
			)

			mu.Lock()
			last = res
			mu.Unlock()
		}

		if res.Seq == lastSeq {
			close(done)
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		if err := st.Run(ctx); err != nil && err != context.Canceled {
			zlog.Error("stream stopped", zap.Error(err))
		}
	}()

	interval := time.Duration(float64(time.Second) / float64(*fps))
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	start := time.Now()

	for i, file := range frames {
		<-ticker.C

		tensor, err := spikecount.LoadTensor(file)

		if err != nil {
			// submit the frame anyway so it fails in the pipeline and the
			// last sequence number still completes the run
			zlog.Warn("error loading frame", zap.String("file", file), zap.Error(err))
		}

		st.Submit(stream.Frame{Seq: uint64(i), Tensor: tensor})
	}

	<-done
	cancel()

	zlog.Info("frames processed",
		zap.Int("submitted", len(frames)),
		zap.Uint64("processed", st.Processed()),
		zap.Uint64("replaced", st.Replaced()),
		zap.Duration("elapsed", time.Since(start)),
	)

	if _, err := session.Close(context.Background(), logStore{log: zlog}); err != nil {
		zlog.Error("error closing session", zap.Error(err))
	}

	mu.Lock()
	final := last
	mu.Unlock()

	if *imgFile != "" {
		if err := drawPreview(*imgFile, *saveFile, final); err != nil {
			zlog.Error("error drawing preview", zap.Error(err))
		}
	}

	if *pngFile != "" {
		if err := drawOverlay(*pngFile, viewport, final); err != nil {
			zlog.Error("error drawing overlay", zap.Error(err))
		}
	}
}

// drawPreview draws the result onto the preview image with OpenCV
func drawPreview(imgFile, saveFile string, res stream.Result) error {

	img := gocv.IMRead(imgFile, gocv.IMReadColor)

	if img.Empty() {
		return fmt.Errorf("error reading image from: %s", imgFile)
	}

	defer img.Close()

	font := render.DefaultFont()
	render.DetectionBoxes(&img, res.Detections, font, 2)
	render.PotCount(&img, canvas.PotCountText(res.Current), render.CountFont())

	if ok := gocv.IMWrite(saveFile, img); !ok {
		return fmt.Errorf("error saving image to: %s", saveFile)
	}

	return nil
}

// drawOverlay saves a transparent overlay of the result as a PNG
func drawOverlay(pngFile string, viewport image.Rectangle, res stream.Result) error {

	o := canvas.NewOverlay(image.NewRGBA(viewport))
	o.DetectionBoxes(res.Detections)
	o.PotCount(res.Current)

	f, err := os.Create(pngFile)

	if err != nil {
		return fmt.Errorf("error creating file: %w", err)
	}

	defer f.Close()

	return png.Encode(f, o.Img)
}
