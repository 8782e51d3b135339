package cmd

import (
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/nikogura/resume-parser/pkg/config"
	"github.com/nikogura/resume-parser/pkg/dictionary"
	"github.com/nikogura/resume-parser/pkg/parser"
)

//nolint:gochecknoglobals // Cobra boilerplate
var verbose bool

//nolint:gochecknoglobals // Cobra boilerplate
var configFile string

//nolint:gochecknoglobals // Cobra boilerplate
var rootCmd = &cobra.Command{
	Use:   "resume-parser",
	Short: "Extract structured data from résumés",
	Long: `resume-parser turns résumé documents (PDF, DOCX, HTML, Markdown or plain text)
into structured JSON: contact details, work history, education, skills, projects,
achievements and certifications, with a confidence score explaining how much
structure was recovered.

Parsing is rule based and deterministic: the same input always gives the same output.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is $HOME/.resume-parser/config.json)")
}

// getVerbose returns the verbose flag value.
func getVerbose() (result bool) {
	result = verbose
	return result
}

// getConfigFile returns the config file path.
func getConfigFile() (result string) {
	result = configFile
	return result
}

// newLogger writes human-readable logs to w. --verbose forces debug level; otherwise the configured
// level applies.
func newLogger(w io.Writer, level string) (logger zerolog.Logger) {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		parsed = zerolog.InfoLevel
	}
	if getVerbose() {
		parsed = zerolog.DebugLevel
	}

	output := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.Kitchen,
	}
	logger = zerolog.New(output).Level(parsed).With().Timestamp().Logger()
	return logger
}

// setup loads configuration and builds the logger and parser every command shares. dictionaryOverride
// wins over the configured dictionary path.
func setup(cmd *cobra.Command, dictionaryOverride string) (cfg config.Config, logger zerolog.Logger, p *parser.Parser, err error) {
	cfg, err = config.Load(getConfigFile())
	if err != nil {
		err = errors.Wrap(err, "failed to load config")
		return cfg, logger, p, err
	}

	logger = newLogger(cmd.ErrOrStderr(), cfg.LogLevel)

	dictPath := cfg.DictionaryPath
	if dictionaryOverride != "" {
		dictPath = dictionaryOverride
	}

	dict := dictionary.Default()
	if dictPath != "" {
		dict, err = dictionary.Load(dictPath)
		if err != nil {
			err = errors.Wrapf(err, "failed to load dictionary: %s", dictPath)
			return cfg, logger, p, err
		}
		logger.Debug().Str("path", dictPath).Int("skills", dict.Len()).Msg("dictionary loaded")
	}

	p = parser.New(
		parser.WithDictionary(dict),
		parser.WithLogger(logger),
		parser.WithMinLength(cfg.MinTextLength),
		parser.WithMaxSkills(cfg.MaxSkills),
	)

	return cfg, logger, p, err
}
