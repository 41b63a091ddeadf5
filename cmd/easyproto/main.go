// Command easyproto encodes field-number maps to the protobuf wire format and
// its printable text form, and decodes them back.
package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/anirudhraja/easyproto"
	"github.com/anirudhraja/easyproto/wire"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr, os.Getenv); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

const usage = `easyproto encodes field-number maps to the protobuf wire format.

Usage:
  easyproto demo
  easyproto encode [N=VALUE | N:=TEXT ...] [--input FILE|-] [--format text|hex|binary]
  easyproto decode [TEXT] [--input FILE|-] [--from text|hex|binary] [--output json|yaml]

N=VALUE stores an integer when VALUE is a non-negative integer, text otherwise.
N:=TEXT always stores text. --input reads a JSON object such as
{"1": 150, "2": "John Doe"}; comments are allowed.

Common flags:
  --config FILE        TOML configuration file
  --log-level LEVEL    trace, debug, info, warn, error
  --log-format FORMAT  console or json
`

// globalOptions are the flags every subcommand accepts
type globalOptions struct {
	configPath string
	logLevel   string
	logFormat  string
}

func (o *globalOptions) AddFlags(flagSet *pflag.FlagSet) {
	flagSet.StringVar(&o.configPath, "config", "", "TOML configuration file")
	flagSet.StringVar(&o.logLevel, "log-level", "", "log level (overrides config)")
	flagSet.StringVar(&o.logFormat, "log-format", "", "log format: console or json (overrides config)")
	flagSet.BoolP("help", "h", false, "show help")
}

// resolve loads the configuration and applies flag overrides
func (o *globalOptions) resolve(getenv func(string) string) (Config, error) {
	cfg, err := loadConfig(o.configPath, getenv)
	if err != nil {
		return Config{}, err
	}
	if o.logLevel != "" {
		if err := setLogLevel(&cfg, o.logLevel); err != nil {
			return Config{}, fmt.Errorf("--log-level: %w", err)
		}
	}
	if o.logFormat != "" {
		if err := setLogFormat(&cfg, o.logFormat); err != nil {
			return Config{}, fmt.Errorf("--log-format: %w", err)
		}
	}
	return cfg, nil
}

// env bundles the process resources a subcommand may touch
type env struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	getenv func(string) string
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer, getenv func(string) string) error {
	e := env{stdin: stdin, stdout: stdout, stderr: stderr, getenv: getenv}

	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return errors.New("missing command")
	}

	switch args[0] {
	case "demo":
		return runDemo(args[1:], e)
	case "encode":
		return runEncode(args[1:], e)
	case "decode":
		return runDecode(args[1:], e)
	case "help", "-h", "--help":
		fmt.Fprint(stdout, usage)
		return nil
	default:
		fmt.Fprint(stderr, usage)
		return fmt.Errorf("unknown command %q", args[0])
	}
}

// parseFlags parses args and reports whether help was requested
func parseFlags(flagSet *pflag.FlagSet, args []string, e env) (bool, error) {
	flagSet.SetOutput(e.stderr)
	if err := flagSet.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			fmt.Fprint(e.stdout, usage)
			return true, nil
		}
		return false, err
	}
	if help, _ := flagSet.GetBool("help"); help {
		fmt.Fprint(e.stdout, usage)
		return true, nil
	}
	return false, nil
}

func runDemo(args []string, e env) error {
	var opts globalOptions
	flagSet := pflag.NewFlagSet("demo", pflag.ContinueOnError)
	opts.AddFlags(flagSet)
	if help, err := parseFlags(flagSet, args, e); help || err != nil {
		return err
	}
	if flagSet.NArg() > 0 {
		return fmt.Errorf("unexpected argument: %s", flagSet.Arg(0))
	}

	cfg, err := opts.resolve(e.getenv)
	if err != nil {
		return err
	}
	logger := newLogger(e.stderr, cfg)
	codec := easyproto.New(cfg.Codec)

	fields := easyproto.NewMessage(
		easyproto.Field{Number: 1, Value: easyproto.Uint(150)},
		easyproto.Field{Number: 2, Value: easyproto.Text("John Doe")},
		easyproto.Field{Number: 3, Value: easyproto.Uint(1)},
	)

	encoded, err := codec.EncodeToText(fields)
	if err != nil {
		return err
	}
	fmt.Fprintln(e.stdout, "Encoded to text:", encoded)

	decoded, err := codec.DecodeFromText(encoded)
	if err != nil {
		return err
	}
	fmt.Fprintln(e.stdout, "Decoded fields:", decoded)

	if !decoded.Equal(fields) {
		logger.Error().Str("want", fields.String()).Str("got", decoded.String()).Msg("round trip mismatch")
		return errors.New("demo round trip mismatch")
	}
	logger.Debug().Int("fields", decoded.Len()).Int("chars", len(encoded)).Msg("round trip ok")
	return nil
}

func runEncode(args []string, e env) error {
	var (
		opts      globalOptions
		inputPath string
		format    string
	)
	flagSet := pflag.NewFlagSet("encode", pflag.ContinueOnError)
	opts.AddFlags(flagSet)
	flagSet.StringVar(&inputPath, "input", "", "read a JSON object from FILE, or - for stdin")
	flagSet.StringVar(&format, "format", "text", "output format: text, hex or binary")
	if help, err := parseFlags(flagSet, args, e); help || err != nil {
		return err
	}

	cfg, err := opts.resolve(e.getenv)
	if err != nil {
		return err
	}
	logger := newLogger(e.stderr, cfg)
	codec := easyproto.New(cfg.Codec)

	m, err := buildMessage(inputPath, flagSet.Args(), e)
	if err != nil {
		return err
	}

	data, err := codec.Encode(m)
	if err != nil {
		return err
	}
	logger.Debug().Int("fields", m.Len()).Int("bytes", len(data)).Str("format", format).Msg("encoded message")

	switch format {
	case "text":
		text, err := codec.EncodeToText(m)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(e.stdout, text)
		return err
	case "hex":
		_, err = fmt.Fprintln(e.stdout, hex.EncodeToString(data))
		return err
	case "binary":
		_, err = e.stdout.Write(data)
		return err
	default:
		return fmt.Errorf("unknown --format %q", format)
	}
}

// buildMessage merges the JSON input (if any) with N=V arguments; arguments
// win on conflicts
func buildMessage(inputPath string, args []string, e env) (*wire.Message, error) {
	m := wire.NewMessage()
	if inputPath != "" {
		data, err := readInput(inputPath, e.stdin)
		if err != nil {
			return nil, err
		}
		if m, err = parseJSONMessage(data); err != nil {
			return nil, err
		}
	}

	assigned, err := parseAssignments(args)
	if err != nil {
		return nil, err
	}
	assigned.Range(func(n wire.FieldNumber, v wire.Value) bool {
		m.Set(n, v)
		return true
	})

	if m.Len() == 0 && inputPath == "" {
		return nil, errors.New("nothing to encode: pass N=VALUE arguments or --input")
	}
	return m, nil
}

func runDecode(args []string, e env) error {
	var (
		opts      globalOptions
		inputPath string
		from      string
		output    string
	)
	flagSet := pflag.NewFlagSet("decode", pflag.ContinueOnError)
	opts.AddFlags(flagSet)
	flagSet.StringVar(&inputPath, "input", "", "read the payload from FILE, or - for stdin")
	flagSet.StringVar(&from, "from", "text", "payload format: text, hex or binary")
	flagSet.StringVar(&output, "output", "", "output format: json or yaml (overrides config)")
	if help, err := parseFlags(flagSet, args, e); help || err != nil {
		return err
	}

	cfg, err := opts.resolve(e.getenv)
	if err != nil {
		return err
	}
	if output != "" {
		if err := setOutput(&cfg, output); err != nil {
			return fmt.Errorf("--output: %w", err)
		}
	}
	logger := newLogger(e.stderr, cfg)
	codec := easyproto.New(cfg.Codec)

	payload, err := decodeInput(inputPath, flagSet.Args(), e)
	if err != nil {
		return err
	}

	var m *wire.Message
	switch from {
	case "text":
		m, err = codec.DecodeFromText(strings.TrimSpace(string(payload)))
	case "hex":
		var data []byte
		data, err = hex.DecodeString(strings.TrimSpace(string(payload)))
		if err != nil {
			return fmt.Errorf("decode hex: %w", err)
		}
		m, err = codec.Decode(data)
	case "binary":
		m, err = codec.Decode(payload)
	default:
		return fmt.Errorf("unknown --from %q", from)
	}
	if err != nil {
		logEvent(logger.Debug(), err).Int("payload", len(payload)).Msg("decode failed")
		return err
	}
	logger.Debug().Int("fields", m.Len()).Str("from", from).Msg("decoded message")

	return writeMessage(e.stdout, m, cfg.Output)
}

// decodeInput returns the payload from --input or the single positional argument
func decodeInput(inputPath string, args []string, e env) ([]byte, error) {
	switch {
	case inputPath != "" && len(args) > 0:
		return nil, errors.New("pass either a payload argument or --input, not both")
	case inputPath != "":
		return readInput(inputPath, e.stdin)
	case len(args) == 1:
		return []byte(args[0]), nil
	case len(args) == 0:
		return nil, errors.New("nothing to decode: pass a payload argument or --input")
	default:
		return nil, fmt.Errorf("unexpected argument: %s", args[1])
	}
}

// logEvent adds the field context of err to a log event
func logEvent(event *zerolog.Event, err error) *zerolog.Event {
	var fieldErr *wire.FieldError
	if errors.As(err, &fieldErr) {
		event = event.Uint64("field", uint64(fieldErr.Number)).Int("offset", fieldErr.Offset)
	}
	return event.Err(err)
}
