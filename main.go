package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/mcncl/valuefmt/internal/config"
	"github.com/mcncl/valuefmt/internal/converter"
	"github.com/mcncl/valuefmt/internal/errors"
	"github.com/mcncl/valuefmt/internal/models"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"
)

// CLI defines the command-line interface
var CLI struct {
	Input       string `help:"Path to input file. If not specified, reads from stdin." short:"i" type:"path"`
	Output      string `help:"Path to output file. If not specified, writes to stdout." short:"o" type:"path"`
	Format      string `help:"Format to convert to, e.g. json, legacy-serialized, base64-decode (see --list)." short:"F" env:"VALUEFMT_FORMAT"`
	Detect      bool   `help:"Print the formats the input could be viewed as instead of converting it." short:"D"`
	List        bool   `help:"Print every supported format and exit." short:"l"`
	JSON        bool   `help:"Write the full conversion outcome as JSON." short:"j"`
	Config      string `help:"Path to a config file. Defaults to the nearest .valuefmt.yml." short:"c" type:"path" env:"VALUEFMT_CONFIG"`
	Debug       bool   `help:"Enable debug logging." short:"d" env:"VALUEFMT_DEBUG"`
	Version     bool   `help:"Show version information." short:"v"`
	Interactive bool   `help:"Run in interactive mode, allowing direct input with Ctrl+D to process." short:"I"`
}

// Context holds the runtime context
type Context struct {
	Debug  bool
	Config *config.Config
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Version information
const (
	Version = "0.1.0"
)

func main() {
	// Environment files feed the env bindings of the CLI struct
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	parser := kong.Must(&CLI,
		kong.Name("valuefmt"),
		kong.Description("Detect and convert the format of a stored value (JSON, PHP serialized, XML, Base64, URL encoding)"),
		kong.UsageOnError(),
	)

	// Check if no arguments provided and set interactive mode by default
	if len(os.Args) == 1 {
		CLI.Interactive = true
	}

	if _, err := parser.Parse(os.Args[1:]); err != nil {
		// If there's an error parsing arguments, the usage will already be shown by kong.UsageOnError()
		os.Exit(1)
	}

	if CLI.Version {
		fmt.Printf("valuefmt version %s\n", Version)
		return
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		os.Exit(1)
	}

	err = run(&Context{
		Debug:  cfg.Dev.Debug,
		Config: cfg,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		os.Exit(1)
	}
}

// loadConfig resolves the config file and applies CLI overrides
func loadConfig() (*config.Config, error) {
	configPath := CLI.Config
	if configPath == "" {
		configPath = config.FindConfigFile()
	}
	return config.LoadConfigWithCLI(configPath, CLI.Format, CLI.JSON, CLI.Debug)
}

// run executes the main program logic
func run(ctx *Context) error {
	cfg := ctx.Config
	if cfg == nil {
		cfg = config.NewConfig()
	}
	logger := newLogger(ctx.Stderr, ctx.Debug || cfg.Dev.Debug)
	conv := converter.NewWithConfig(cfg)

	if CLI.List {
		return writeFormats(ctx.Stdout, conv, models.AllFormats(), cfg.Output.Mode == config.OutputModeJSON)
	}

	// 1. Read input
	input, err := readInput(ctx, cfg, logger)
	if err != nil {
		return err
	}
	logger.WithField("bytes", len(input)).Debug("input read")

	// 2. Sniff candidate formats
	candidates := conv.Detect(input)
	logger.WithField("candidates", candidates).Debug("formats detected")
	if CLI.Detect {
		return writeFormats(ctx.Stdout, conv, candidates, cfg.Output.Mode == config.OutputModeJSON)
	}

	// 3. Convert
	tag := cfg.DefaultTag()
	logger.WithFields(logrus.Fields{"format": tag, "label": conv.Label(tag)}).Debug("applying format")
	outcome := conv.Apply(input, tag)
	if !outcome.Success {
		logger.WithFields(logrus.Fields{"format": tag, "error": outcome.Error}).Warn("conversion failed, returning input unchanged")
	}

	// 4. Output the result
	if err := writeOutcome(ctx, cfg, outcome); err != nil {
		return err
	}
	if !outcome.Success {
		return errors.NewParsingError(fmt.Sprintf("%s conversion failed: %s", tag, outcome.Error), nil)
	}
	return nil
}

func newLogger(w io.Writer, debug bool) *logrus.Logger {
	logger := logrus.New()
	if w == nil {
		w = io.Discard
	}
	logger.SetOutput(w)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	logger.SetLevel(logrus.WarnLevel)
	if debug {
		logger.SetLevel(logrus.DebugLevel)
	}
	return logger
}

// readInput reads the value from a file, piped stdin, or interactively
func readInput(ctx *Context, cfg *config.Config, logger *logrus.Logger) (string, error) {
	var data string
	var err error

	switch {
	case CLI.Input != "":
		data, err = readFile(CLI.Input, cfg.Input.MaxBytes)
	case isTerminal(ctx.Stdin):
		if !CLI.Interactive {
			return "", errors.NewInputError("no input provided", errors.ErrNoInput)
		}
		data, err = readInteractiveInput(ctx)
	default:
		data, err = readLimited(ctx.Stdin, cfg.Input.MaxBytes, "stdin")
	}
	if err != nil {
		return "", err
	}

	if cfg.Input.TrimTrailingNewline && strings.HasSuffix(data, "\n") {
		data = strings.TrimSuffix(strings.TrimSuffix(data, "\n"), "\r")
		logger.Debug("trimmed trailing newline from input")
	}
	return data, nil
}

func readFile(path string, maxBytes int64) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.NewInputError(fmt.Sprintf("file '%s' not found", path), errors.ErrFileNotFound)
		}
		return "", errors.NewInputError(fmt.Sprintf("failed to open file '%s'", path), err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Error closing file: %v\n", err)
		}
	}()

	return readLimited(file, maxBytes, fmt.Sprintf("file '%s'", path))
}

// readLimited reads all of r, failing once more than maxBytes arrive
func readLimited(r io.Reader, maxBytes int64, source string) (string, error) {
	if r == nil {
		return "", errors.NewInputError("no input provided", errors.ErrNoInput)
	}
	if maxBytes > 0 {
		r = io.LimitReader(r, maxBytes+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", errors.NewInputError(fmt.Sprintf("failed to read from %s", source), err)
	}
	if maxBytes > 0 && int64(len(data)) > maxBytes {
		return "", errors.NewInputError(fmt.Sprintf("%s is larger than %d bytes", source, maxBytes), errors.ErrInputTooLarge)
	}
	return string(data), nil
}

func isTerminal(r io.Reader) bool {
	file, ok := r.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}

// readInteractiveInput lets users paste a value and signal completion with
// Ctrl+D (EOF)
func readInteractiveInput(ctx *Context) (string, error) {
	fmt.Fprintln(ctx.Stderr, "valuefmt Interactive Mode")
	fmt.Fprintln(ctx.Stderr, "Paste your value below and press Ctrl+D (or Ctrl+Z on Windows) when done:")

	reader := bufio.NewReader(ctx.Stdin)
	var builder strings.Builder

	for {
		line, err := reader.ReadString('\n')
		builder.WriteString(line)
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", errors.NewInputError("error reading input", err)
		}
	}

	fmt.Fprintln(ctx.Stderr, "\nProcessing...")
	return builder.String(), nil
}

// writeOutcome writes the conversion result to a file or stdout
func writeOutcome(ctx *Context, cfg *config.Config, outcome models.ConversionOutcome) error {
	var text string
	if cfg.Output.Mode == config.OutputModeJSON {
		data, err := json.MarshalIndent(outcome, "", "  ")
		if err != nil {
			return errors.NewOutputError("failed to encode outcome", err)
		}
		text = string(data)
	} else {
		text = outcome.Content
	}
	if cfg.Output.TrailingNewline && !strings.HasSuffix(text, "\n") {
		text += "\n"
	}

	if CLI.Output != "" {
		if err := os.WriteFile(CLI.Output, []byte(text), 0644); err != nil {
			return errors.NewOutputError(fmt.Sprintf("failed to write to file '%s'", CLI.Output), err)
		}
		fmt.Fprintf(ctx.Stderr, "Output written to %s\n", CLI.Output)
		return nil
	}

	if _, err := io.WriteString(ctx.Stdout, text); err != nil {
		return errors.NewOutputError("failed to write to stdout", err)
	}
	return nil
}

type formatEntry struct {
	Format models.FormatTag `json:"format"`
	Label  string           `json:"label"`
}

// writeFormats prints one "tag<TAB>label" line per format, or a JSON array
func writeFormats(w io.Writer, conv *converter.Converter, tags []models.FormatTag, asJSON bool) error {
	if asJSON {
		entries := make([]formatEntry, 0, len(tags))
		for _, tag := range tags {
			entries = append(entries, formatEntry{Format: tag, Label: conv.Label(tag)})
		}
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return errors.NewOutputError("failed to encode formats", err)
		}
		if _, err := fmt.Fprintln(w, string(data)); err != nil {
			return errors.NewOutputError("failed to write formats", err)
		}
		return nil
	}

	for _, tag := range tags {
		if _, err := fmt.Fprintf(w, "%s\t%s\n", tag, conv.Label(tag)); err != nil {
			return errors.NewOutputError("failed to write formats", err)
		}
	}
	return nil
}
