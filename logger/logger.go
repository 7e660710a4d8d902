package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a zap logger writing debug and info entries to stdout and
// warnings and errors to stderr.  Debug entries are only written when debug
// is set
func New(debug bool) *zap.Logger {
	return NewWithSyncers(debug, zapcore.Lock(os.Stdout), zapcore.Lock(os.Stderr))
}

// NewWithSyncers returns a logger like New writing to the given syncers
func NewWithSyncers(debug bool, stdout, stderr zapcore.WriteSyncer) *zap.Logger {

	// debug and info level enabler
	debugInfoLevel := zap.LevelEnablerFunc(func(level zapcore.Level) bool {
		return level == zapcore.DebugLevel || level == zapcore.InfoLevel
	})

	// info level enabler
	infoLevel := zap.LevelEnablerFunc(func(level zapcore.Level) bool {
		return level == zapcore.InfoLevel
	})

	// warn, error and fatal level enabler
	warnErrorFatalLevel := zap.LevelEnablerFunc(func(level zapcore.Level) bool {
		return level >= zapcore.WarnLevel
	})

	encoderCfg := zap.NewProductionEncoderConfig()
	outLevel := infoLevel

	if debug {
		encoderCfg = zap.NewDevelopmentEncoderConfig()
		outLevel = debugInfoLevel
	}

	// tee core
	core := zapcore.NewTee(
		zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), stdout, outLevel),
		zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), stderr, warnErrorFatalLevel),
	)

	return zap.New(core)
}
