package main

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

func newLogger(w io.Writer, cfg Config) zerolog.Logger {
	out := w
	if cfg.LogFormat != "json" {
		out = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.RFC3339,
		}
	}
	return zerolog.New(out).Level(cfg.LogLevel).With().Timestamp().Str("app", "easyproto").Logger()
}
