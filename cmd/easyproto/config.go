package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"

	"github.com/anirudhraja/easyproto"
	"github.com/anirudhraja/easyproto/transport"
)

// Config is the resolved CLI configuration
type Config struct {
	Codec     easyproto.Config
	LogLevel  zerolog.Level
	LogFormat string // console or json
	Output    string // json or yaml
}

// DefaultConfig returns the configuration used when nothing overrides it
func DefaultConfig() Config {
	return Config{
		LogLevel:  zerolog.InfoLevel,
		LogFormat: "console",
		Output:    "json",
	}
}

type fileConfig struct {
	Codec struct {
		RejectDuplicateFields bool   `toml:"reject_duplicate_fields"`
		TextAlphabet          string `toml:"text_alphabet"`
		TextPadding           string `toml:"text_padding"`
	} `toml:"codec"`
	Log struct {
		Level  string `toml:"level"`
		Format string `toml:"format"`
	} `toml:"log"`
	Output struct {
		Format string `toml:"format"`
	} `toml:"output"`
}

// loadConfig resolves defaults, then the TOML file at path (if any), then
// EASYPROTO_* variables read through getenv.
func loadConfig(path string, getenv func(string) string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		if err := applyFile(&cfg, path); err != nil {
			return Config{}, err
		}
	}

	if err := applyEnv(&cfg, getenv); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func applyFile(cfg *Config, path string) error {
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("load config: unknown key %q", undecoded[0].String())
	}

	if meta.IsDefined("codec", "reject_duplicate_fields") {
		cfg.Codec.RejectDuplicateFields = raw.Codec.RejectDuplicateFields
	}

	if meta.IsDefined("codec", "text_alphabet") {
		if err := setAlphabet(cfg, raw.Codec.TextAlphabet); err != nil {
			return fmt.Errorf("parse codec.text_alphabet: %w", err)
		}
	}

	if meta.IsDefined("codec", "text_padding") {
		if err := setPadding(cfg, raw.Codec.TextPadding); err != nil {
			return fmt.Errorf("parse codec.text_padding: %w", err)
		}
	}

	if meta.IsDefined("log", "level") {
		if err := setLogLevel(cfg, raw.Log.Level); err != nil {
			return fmt.Errorf("parse log.level: %w", err)
		}
	}

	if meta.IsDefined("log", "format") {
		if err := setLogFormat(cfg, raw.Log.Format); err != nil {
			return fmt.Errorf("parse log.format: %w", err)
		}
	}

	if meta.IsDefined("output", "format") {
		if err := setOutput(cfg, raw.Output.Format); err != nil {
			return fmt.Errorf("parse output.format: %w", err)
		}
	}

	return nil
}

func applyEnv(cfg *Config, getenv func(string) string) error {
	if v := getenv("EASYPROTO_REJECT_DUPLICATES"); v != "" {
		cfg.Codec.RejectDuplicateFields = v == "1" || strings.EqualFold(v, "true")
	}

	setters := []struct {
		name string
		set  func(*Config, string) error
	}{
		{"EASYPROTO_TEXT_ALPHABET", setAlphabet},
		{"EASYPROTO_TEXT_PADDING", setPadding},
		{"EASYPROTO_LOG_LEVEL", setLogLevel},
		{"EASYPROTO_LOG_FORMAT", setLogFormat},
		{"EASYPROTO_OUTPUT", setOutput},
	}
	for _, s := range setters {
		if v := getenv(s.name); v != "" {
			if err := s.set(cfg, v); err != nil {
				return fmt.Errorf("parse %s: %w", s.name, err)
			}
		}
	}
	return nil
}

func setAlphabet(cfg *Config, s string) error {
	a, err := transport.ParseAlphabet(s)
	if err != nil {
		return err
	}
	cfg.Codec.TextAlphabet = a
	return nil
}

func setPadding(cfg *Config, s string) error {
	p, err := transport.ParsePadding(s)
	if err != nil {
		return err
	}
	cfg.Codec.TextPadding = p
	return nil
}

func setLogLevel(cfg *Config, s string) error {
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return err
	}
	cfg.LogLevel = level
	return nil
}

func setLogFormat(cfg *Config, s string) error {
	switch f := strings.ToLower(strings.TrimSpace(s)); f {
	case "console", "json":
		cfg.LogFormat = f
		return nil
	default:
		return fmt.Errorf("unknown log format %q", s)
	}
}

func setOutput(cfg *Config, s string) error {
	switch f := strings.ToLower(strings.TrimSpace(s)); f {
	case "json", "yaml":
		cfg.Output = f
		return nil
	default:
		return fmt.Errorf("unknown output format %q", s)
	}
}
