package cmd

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/nikogura/resume-parser/pkg/ingest"
	"github.com/nikogura/resume-parser/pkg/renderer"
	"github.com/nikogura/resume-parser/pkg/resume"
)

//nolint:gochecknoglobals // Cobra boilerplate
var (
	parseOutput     string
	parseFormat     string
	parseExplain    bool
	parseDictionary string
)

//nolint:gochecknoglobals // Cobra boilerplate
var parseCmd = &cobra.Command{
	Use:   "parse <file|url>",
	Short: "Parse a single résumé",
	Long: `Extracts structured data from one résumé file or URL and prints it as JSON or Markdown.

Examples:
  # Print the JSON result
  resume-parser parse ~/Downloads/jane-doe.pdf

  # Save a Markdown summary and show how the confidence was computed
  resume-parser parse jane-doe.docx --format markdown -o jane-doe.md --explain

  # Use an extended skill dictionary
  resume-parser parse https://example.com/cv.html --dictionary ./skills-extra.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().StringVarP(&parseOutput, "output", "o", "", "Write the result to this file instead of stdout")
	parseCmd.Flags().StringVar(&parseFormat, "format", "", "Output format: json or markdown (default from config)")
	parseCmd.Flags().BoolVar(&parseExplain, "explain", false, "Print the confidence breakdown to stderr")
	parseCmd.Flags().StringVar(&parseDictionary, "dictionary", "", "Skill dictionary YAML merged over the built-in one")
}

func runParse(cmd *cobra.Command, args []string) (err error) {
	input := args[0]

	cfg, logger, p, err := setup(cmd, parseDictionary)
	if err != nil {
		return err
	}

	format := cfg.Defaults.Format
	if parseFormat != "" {
		format = parseFormat
	}
	if format != "json" && format != "markdown" {
		err = errors.Errorf("unsupported format %q (use json or markdown)", format)
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), ingest.Timeout)
	defer cancel()

	logger.Debug().Str("input", input).Msg("loading document")

	var text string
	text, err = ingest.FetchWithContext(ctx, input)
	if err != nil {
		return err
	}

	result := p.Parse(text)

	var output []byte
	output, err = renderResult(result, input, format)
	if err != nil {
		return err
	}

	if parseOutput != "" {
		err = renderer.WriteFile(output, parseOutput)
		if err != nil {
			return err
		}
		logger.Info().Str("path", parseOutput).Msg("result written")
	} else {
		_, err = cmd.OutOrStdout().Write(output)
		if err != nil {
			err = errors.Wrap(err, "failed to write result")
			return err
		}
	}

	if parseExplain && result.Success {
		fmt.Fprintln(cmd.ErrOrStderr(), p.Explain(result.Resume))
	}

	if !result.Success {
		err = errors.Errorf("parse failed: %s", result.Error)
		return err
	}

	return err
}

func renderResult(result resume.Result, source, format string) (output []byte, err error) {
	if format == "markdown" {
		output = []byte(renderer.RenderMarkdown(result, source))
		return output, err
	}

	output, err = renderer.MarshalResult(result)
	return output, err
}
