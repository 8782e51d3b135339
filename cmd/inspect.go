package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"

	"github.com/nikogura/resume-parser/pkg/parser"
	"github.com/nikogura/resume-parser/pkg/renderer"
	"github.com/nikogura/resume-parser/pkg/resume"
)

//nolint:gochecknoglobals // Cobra boilerplate
var inspectLines bool

//nolint:gochecknoglobals // Cobra boilerplate
var inspectCmd = &cobra.Command{
	Use:   "inspect <result.json> [path...]",
	Short: "Show a saved parse result",
	Long: `Prints a saved result as a Markdown summary, or the values at the given JSON paths.

Paths use gjson syntax, so arrays can be queried without loading the whole document.

Examples:
  # Human-readable summary
  resume-parser inspect ./parsed/jane-doe.parsed.json

  # Pick out fields
  resume-parser inspect ./parsed/jane-doe.parsed.json data.extractedData.personalInfo.email data.confidence.overall

  # Every job title
  resume-parser inspect ./parsed/jane-doe.parsed.json 'data.extractedData.experience.#.jobTitle'

  # How each line of the normalized text classifies
  resume-parser inspect ./parsed/jane-doe.parsed.json --lines`,
	Args: cobra.MinimumNArgs(1),
	RunE: runInspect,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().BoolVar(&inspectLines, "lines", false, "Show the section each line of the normalized text classifies as")
}

func runInspect(cmd *cobra.Command, args []string) (err error) {
	path := args[0]
	out := cmd.OutOrStdout()

	if inspectLines {
		err = printLineClasses(cmd, path)
		return err
	}

	if len(args) == 1 {
		var result resume.Result
		result, err = resume.Load(path)
		if err != nil {
			return err
		}

		source := gjson.GetBytes(mustRead(path), "source").String()
		if source == "" {
			source = path
		}

		fmt.Fprint(out, renderer.RenderMarkdown(result, source))
		return err
	}

	var data []byte
	data, err = os.ReadFile(path)
	if err != nil {
		err = errors.Wrapf(err, "failed to read result: %s", path)
		return err
	}

	if !gjson.ValidBytes(data) {
		err = errors.Errorf("not valid JSON: %s", path)
		return err
	}

	for _, query := range args[1:] {
		value := gjson.GetBytes(data, query)
		if !value.Exists() {
			fmt.Fprintf(out, "%s: (not found)\n", query)
			continue
		}
		fmt.Fprintf(out, "%s: %s\n", query, value.String())
	}

	return err
}

// printLineClasses lists each line of a saved result's normalized text with the section it would open.
// Unclassified lines continue whatever section is open.
func printLineClasses(cmd *cobra.Command, path string) (err error) {
	var result resume.Result
	result, err = resume.Load(path)
	if err != nil {
		return err
	}
	if !result.Success {
		err = errors.Errorf("%s holds a failed parse: %s", path, result.Error)
		return err
	}

	var p *parser.Parser
	_, _, p, err = setup(cmd, "")
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	for _, line := range strings.Split(result.Resume.RawText, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		label := "-"
		if sectionType, ok := p.Classify(line); ok {
			label = string(sectionType)
		}
		fmt.Fprintf(tw, "%s\t%s\n", label, line)
	}

	err = tw.Flush()
	if err != nil {
		err = errors.Wrap(err, "failed to write listing")
		return err
	}

	return err
}

// mustRead returns the file contents, or nil when it cannot be read.
func mustRead(path string) (data []byte) {
	data, _ = os.ReadFile(path)
	return data
}
