package cmd

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/nikogura/resume-parser/pkg/schema"
)

//nolint:gochecknoglobals // Cobra boilerplate
var validatePrintSchema bool

//nolint:gochecknoglobals // Cobra boilerplate
var validateCmd = &cobra.Command{
	Use:   "validate [result.json...]",
	Short: "Check saved results against the result JSON schema",
	Long: `Validates saved parse results against the embedded JSON schema and lists every violation.

Examples:
  # Validate every result in a directory
  resume-parser validate ./parsed/*.parsed.json

  # Print the schema itself
  resume-parser validate --schema`,
	RunE: runValidate,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().BoolVar(&validatePrintSchema, "schema", false, "Print the result schema and exit")
}

func runValidate(cmd *cobra.Command, args []string) (err error) {
	out := cmd.OutOrStdout()

	if validatePrintSchema {
		fmt.Fprintln(out, schema.Schema())
		return err
	}

	if len(args) == 0 {
		err = errors.New("at least one result file is required")
		return err
	}

	invalid := 0
	for _, path := range args {
		validationErr := schema.ValidateFile(path)
		if validationErr == nil {
			fmt.Fprintf(out, "✓ %s\n", path)
			continue
		}

		invalid++
		fmt.Fprintf(out, "✗ %s\n", path)

		var ve *schema.ValidationError
		if errors.As(validationErr, &ve) {
			for _, fe := range ve.Errors {
				fmt.Fprintf(out, "    %s: %s\n", fe.Field, fe.Message)
			}
			continue
		}
		fmt.Fprintf(out, "    %s\n", validationErr)
	}

	if invalid > 0 {
		err = errors.Errorf("%d of %d results failed validation", invalid, len(args))
		return err
	}

	return err
}
