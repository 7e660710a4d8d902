package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/swdee/go-spikecount/postprocess"
	"github.com/swdee/go-spikecount/preprocess"
	"github.com/swdee/go-spikecount/tracker"
	"go.uber.org/multierr"
)

// EnvPrefix is the prefix of environment variables overriding the file
// configuration, eg: SPIKE_THRESHOLDS_DETECT=0.6
const EnvPrefix = "SPIKE_"

// ModelConfig describes the Model output tensor and its label table
type ModelConfig struct {
	// Labels is the path to the label file, one class name per line
	Labels        string `koanf:"labels"`
	InputWidth    int    `koanf:"inputwidth"`
	InputHeight   int    `koanf:"inputheight"`
	NumCandidates int    `koanf:"numcandidates"`
	NumClasses    int    `koanf:"numclasses"`
}

// ThresholdsConfig are the initial suppression thresholds
type ThresholdsConfig struct {
	Detect        float32 `koanf:"detect"`
	IoU           float32 `koanf:"iou"`
	CrossClassIoU float32 `koanf:"crossclassiou"`
}

// TrackerConfig are the class names the episode tracker counts
type TrackerConfig struct {
	PotLabel   string `koanf:"potlabel"`
	SpikeLabel string `koanf:"spikelabel"`
}

// StreamConfig describes the camera preview and post processing pool
type StreamConfig struct {
	PoolSize      int `koanf:"poolsize"`
	PreviewWidth  int `koanf:"previewwidth"`
	PreviewHeight int `koanf:"previewheight"`
	// Rotation of the preview relative to the Model input in degrees, a
	// multiple of 90
	Rotation       int  `koanf:"rotation"`
	MaintainAspect bool `koanf:"maintainaspect"`
	// Letterbox is set when the preview is letterboxed into the Model
	// input rather than stretched.  Rotation must then be 0
	Letterbox bool `koanf:"letterbox"`
}

// LogConfig configures logging
type LogConfig struct {
	Debug bool `koanf:"debug"`
}

// AppConfig is the configuration of the wheat spike counter
type AppConfig struct {
	Model      ModelConfig      `koanf:"model"`
	Thresholds ThresholdsConfig `koanf:"thresholds"`
	Tracker    TrackerConfig    `koanf:"tracker"`
	Stream     StreamConfig     `koanf:"stream"`
	Log        LogConfig        `koanf:"log"`
}

// ModelParams returns the decoder parameters of the configured Model
func (c *AppConfig) ModelParams() postprocess.YOLOv5Params {
	return postprocess.YOLOv5Params{
		InputWidth:    c.Model.InputWidth,
		InputHeight:   c.Model.InputHeight,
		NumCandidates: c.Model.NumCandidates,
		NumClasses:    c.Model.NumClasses,
	}
}

// SuppressionThresholds returns the configured initial thresholds
func (c *AppConfig) SuppressionThresholds() postprocess.Thresholds {
	return postprocess.Thresholds{
		Detect:        c.Thresholds.Detect,
		IoU:           c.Thresholds.IoU,
		CrossClassIoU: c.Thresholds.CrossClassIoU,
	}
}

// DisplayTransform returns the transform mapping Model input pixels onto the
// preview, the inverse of how the preview was mapped into the Model input
func (c *AppConfig) DisplayTransform() (preprocess.Affine, error) {

	if c.Stream.Letterbox {
		return preprocess.NewLetterbox(c.Stream.PreviewWidth, c.Stream.PreviewHeight,
			c.Model.InputWidth, c.Model.InputHeight).Inverse()
	}

	return preprocess.TransformationMatrix(
		c.Stream.PreviewWidth, c.Stream.PreviewHeight,
		c.Model.InputWidth, c.Model.InputHeight,
		c.Stream.Rotation, c.Stream.MaintainAspect,
	).Invert()
}

// TrackerParams returns the class names for the episode tracker
func (c *AppConfig) TrackerParams() tracker.Params {
	return tracker.Params{
		PotLabel:   c.Tracker.PotLabel,
		SpikeLabel: c.Tracker.SpikeLabel,
	}
}

// defaults are loaded before the configuration file
var defaults = map[string]any{
	"model.labels":             "wheat_labels.txt",
	"model.inputwidth":         640,
	"model.inputheight":        640,
	"model.numcandidates":      25200,
	"model.numclasses":         2,
	"thresholds.detect":        0.5,
	"thresholds.iou":           0.5,
	"thresholds.crossclassiou": 0.7,
	"tracker.potlabel":         "Pot",
	"tracker.spikelabel":       "Wheat Spike",
	"stream.poolsize":          1,
	"stream.previewwidth":      640,
	"stream.previewheight":     640,
	"stream.rotation":          0,
	"stream.maintainaspect":    false,
	"stream.letterbox":         false,
	"log.debug":                false,
}

// Load reads the configuration from the defaults, then the YAML file at
// filePath if one is given, then environment variables prefixed with
// EnvPrefix, and validates the result
func Load(filePath string) (*AppConfig, error) {

	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return nil, fmt.Errorf("error loading defaults: %w", err)
	}

	if filePath != "" {
		if err := k.Load(file.Provider(filePath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("error loading environment: %w", err)
	}

	var cfg AppConfig

	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the configuration values are usable, returning every
// problem found
func Validate(cfg *AppConfig) error {

	var err error

	if cfg.Model.InputWidth <= 0 || cfg.Model.InputHeight <= 0 {
		err = multierr.Append(err, fmt.Errorf("model input size %dx%d must be positive",
			cfg.Model.InputWidth, cfg.Model.InputHeight))
	}

	if cfg.Model.NumClasses <= 0 {
		err = multierr.Append(err, errors.New("model.numclasses must be positive"))
	}

	if cfg.Model.NumCandidates < 0 {
		err = multierr.Append(err, errors.New("model.numcandidates must not be negative"))
	}

	thresholds := []struct {
		name string
		val  float32
	}{
		{"thresholds.detect", cfg.Thresholds.Detect},
		{"thresholds.iou", cfg.Thresholds.IoU},
		{"thresholds.crossclassiou", cfg.Thresholds.CrossClassIoU},
	}

	for _, th := range thresholds {
		if !(th.val >= 0 && th.val <= 1) {
			err = multierr.Append(err, fmt.Errorf("%s %v outside [0,1]", th.name, th.val))
		}
	}

	if cfg.Tracker.PotLabel == "" || cfg.Tracker.SpikeLabel == "" {
		err = multierr.Append(err, errors.New("tracker labels must be set"))
	}

	if cfg.Stream.PoolSize < 1 {
		err = multierr.Append(err, errors.New("stream.poolsize must be at least 1"))
	}

	if cfg.Stream.Rotation%90 != 0 {
		err = multierr.Append(err, fmt.Errorf("stream.rotation %d is not a multiple of 90",
			cfg.Stream.Rotation))
	}

	if cfg.Stream.Letterbox && cfg.Stream.Rotation != 0 {
		err = multierr.Append(err, errors.New("stream.letterbox does not support rotation"))
	}

	if cfg.Stream.PreviewWidth <= 0 || cfg.Stream.PreviewHeight <= 0 {
		err = multierr.Append(err, fmt.Errorf("preview size %dx%d must be positive",
			cfg.Stream.PreviewWidth, cfg.Stream.PreviewHeight))
	}

	return err
}

// ValidateLabels checks the label table matches the Model and holds the
// class names the tracker counts
func ValidateLabels(cfg *AppConfig, labels []string) error {

	var err error

	if len(labels) != cfg.Model.NumClasses {
		err = multierr.Append(err, fmt.Errorf("label table has %d labels but model.numclasses is %d",
			len(labels), cfg.Model.NumClasses))
	}

	for _, want := range []string{cfg.Tracker.PotLabel, cfg.Tracker.SpikeLabel} {
		if !contains(labels, want) {
			err = multierr.Append(err, fmt.Errorf("label %q missing from label table", want))
		}
	}

	return err
}

// contains checks if a given string exists in the slice
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}

	return false
}
