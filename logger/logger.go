package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Global logger instance, used by the CLI shell only. Pipeline components
	// receive their logger through their constructors.
	Logger *zap.SugaredLogger
	// Flag to track if JSON output is enabled
	JSONOutput bool

	closeFile func()
)

func init() {
	// Initialize with a safe no-op logger at package load time
	// This prevents nil pointer panics if logger is used before Initialize() is called
	Logger = zap.NewNop().Sugar()
}

// Options controls how Initialize builds the global logger.
type Options struct {
	JSON      bool   // JSON structured output for machine consumption
	Verbosity int    // -v count, see VerbosityToLevel
	File      string // optional log file, appended to in JSON lines
}

// Initialize sets up the global logger.
// Console output goes to stderr so stdout stays free for command results.
func Initialize(opts Options) error {
	JSONOutput = opts.JSON
	level := zap.NewAtomicLevelAt(VerbosityToLevel(opts.Verbosity))

	var console zapcore.Core
	if opts.JSON {
		console = zapcore.NewCore(
			zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
			zapcore.Lock(os.Stderr),
			level,
		)
	} else {
		// Human-readable console output with minimal, calm formatting
		console = zapcore.NewCore(newMinimalEncoder(), zapcore.Lock(os.Stderr), level)
	}

	core := console
	if opts.File != "" {
		sink, closeSink, err := zap.Open(opts.File)
		if err != nil {
			return err
		}
		// The file always records at least info, whatever the console shows.
		fileLevel := level.Level()
		if fileLevel > zapcore.InfoLevel {
			fileLevel = zapcore.InfoLevel
		}
		fileCore := zapcore.NewCore(
			zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
			sink,
			fileLevel,
		)
		core = zapcore.NewTee(console, fileCore)

		if closeFile != nil {
			closeFile()
		}
		closeFile = closeSink
	}

	Logger = zap.New(core).Sugar()
	return nil
}

// Cleanup flushes any buffered log entries and closes the log file
func Cleanup() {
	if Logger != nil {
		_ = Logger.Sync()
	}
	if closeFile != nil {
		closeFile()
		closeFile = nil
	}
}
