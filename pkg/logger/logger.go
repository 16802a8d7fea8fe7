package logger

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger provides functionality for logging.
type Logger struct {
	*zerolog.Logger
}

// Options represents options for logger.
type Options struct {
	LogLevel        string
	LogFile         string
	PrettyLogOutput bool
}

var (
	logger Logger
	once   sync.Once
)

// New returns a process-wide instance of logger. Options are applied on the first call only.
func New(opts Options) *Logger {
	once.Do(func() {
		var console io.Writer = os.Stdout
		if opts.PrettyLogOutput {
			console = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Stamp}
		}

		writers := []io.Writer{console}
		if opts.LogFile != "" {
			writers = append(writers, &lumberjack.Logger{
				Filename:   opts.LogFile,
				MaxSize:    50, // megabytes
				MaxBackups: 3,
			})
		}

		if opts.LogLevel != "" {
			level, err := zerolog.ParseLevel(opts.LogLevel)
			if err != nil {
				panic(err)
			}

			zerolog.SetGlobalLevel(level)
		}

		zeroLogger := zerolog.New(io.MultiWriter(writers...)).With().Caller().Timestamp().Logger()

		logger = Logger{&zeroLogger}
	})

	return &logger
}

// NewNop returns a logger which discards everything, handy for tests.
func NewNop() *Logger {
	zeroLogger := zerolog.Nop()

	return &Logger{&zeroLogger}
}
