package main

import (
	"github.com/VladPetriv/currency_beacon/config"
	"github.com/VladPetriv/currency_beacon/internal/app"
	"github.com/VladPetriv/currency_beacon/pkg/logger"
)

func main() {
	cfg := config.Get()

	logger := logger.New(logger.Options{
		LogLevel:        cfg.Logger.LogLevel,
		LogFile:         cfg.Logger.LogFilename,
		PrettyLogOutput: cfg.Logger.PrettyLogOutput,
	})

	app.Run(cfg, logger)
}
