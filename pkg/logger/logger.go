package logger

import (
	"fmt"
	"os"
	"strings"
	"time"

	"pingdeck/config"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
)

func Init(cfg *config.Config) *zerolog.Logger {
	const prodStr string = "production"

	switch cfg.Env {
	case prodStr:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	var baseLogger zerolog.Logger

	if cfg.Env == prodStr {
		baseLogger = zerolog.New(os.Stdout)
	} else {
		baseLogger = zerolog.New(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
			FormatLevel: func(i any) string {
				return strings.ToUpper(fmt.Sprintf("[%s]", i))
			},
		})
	}

	baseLogger = baseLogger.With().
		Timestamp().
		Str("service", cfg.ServiceName).
		Str("env", cfg.Env).
		Logger()

	if cfg.Env != prodStr {
		baseLogger = baseLogger.With().Caller().Logger()
	}

	zlog.Logger = baseLogger

	return &baseLogger
}
