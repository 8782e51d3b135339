package cmd

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/nikogura/resume-parser/pkg/config"
	"github.com/nikogura/resume-parser/pkg/index"
)

//nolint:gochecknoglobals // Cobra boilerplate
var (
	indexBelow    float64
	indexFailures bool
	indexBatch    string
	indexCached   bool
)

//nolint:gochecknoglobals // Cobra boilerplate
var indexCmd = &cobra.Command{
	Use:   "index [output-directory]",
	Short: "Rebuild and query the index of saved results",
	Long: `Rescans an output directory for *.parsed.json results, rewrites its index and lists entries.
With --cached the last written index is queried as is.

Examples:
  # Rebuild the index for the configured output directory
  resume-parser index

  # Results that need a human look, from the last written index
  resume-parser index ./parsed --below 0.5 --cached

  # Failures from one batch run
  resume-parser index ./parsed --failures --batch 3f6c2a8e-...`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIndex,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(indexCmd)
	indexCmd.Flags().Float64Var(&indexBelow, "below", 0, "List successful results with overall confidence under this value")
	indexCmd.Flags().BoolVar(&indexFailures, "failures", false, "List failed results")
	indexCmd.Flags().StringVar(&indexBatch, "batch", "", "Restrict to one batch ID")
	indexCmd.Flags().BoolVar(&indexCached, "cached", false, "Query the existing index without rescanning")
}

func runIndex(cmd *cobra.Command, args []string) (err error) {
	var cfg config.Config
	cfg, err = config.Load(getConfigFile())
	if err != nil {
		err = errors.Wrap(err, "failed to load config")
		return err
	}

	logger := newLogger(cmd.ErrOrStderr(), cfg.LogLevel)

	outDir := cfg.Defaults.OutputDir
	if len(args) == 1 {
		outDir = args[0]
	}

	var indexer *index.Indexer
	indexer, err = index.NewIndexer(outDir)
	if err != nil {
		return err
	}

	var idx index.ResultIndex
	if indexCached {
		idx, err = indexer.LoadIndex()
		if err != nil {
			return err
		}
		logger.Debug().Str("path", indexer.Path()).Int("entries", len(idx.Entries)).Msg("index loaded")
	} else {
		idx, err = indexer.Index(context.Background())
		if err != nil {
			err = errors.Wrap(err, "failed to rebuild index")
			return err
		}
		logger.Debug().Str("path", indexer.Path()).Int("entries", len(idx.Entries)).Msg("index rebuilt")
	}
	for _, skipped := range idx.Skipped {
		logger.Warn().Str("file", skipped).Msg("skipped unreadable result")
	}

	if indexBatch != "" {
		idx.Entries = idx.Batch(indexBatch)
	}

	out := cmd.OutOrStdout()
	stats := idx.Stats()
	fmt.Fprintf(out, "%d results: %d succeeded, %d failed, mean confidence %.0f%%\n",
		stats.Total, stats.Succeeded, stats.Failed, stats.MeanOverall*100)

	var listed []index.Entry
	switch {
	case indexFailures:
		listed = idx.Failures()
	case indexBelow > 0:
		listed = idx.Below(indexBelow)
	default:
		return err
	}

	if len(listed) == 0 {
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "\nCONFIDENCE\tNAME\tSOURCE\tDETAIL")
	for _, entry := range listed {
		detail := fmt.Sprintf("%d warnings", entry.Warnings)
		if !entry.Success {
			detail = entry.Error
		}
		fmt.Fprintf(tw, "%.0f%%\t%s\t%s\t%s\n", entry.Overall*100, firstNonEmpty(entry.Name, "-"), firstNonEmpty(entry.Source, entry.Path), detail)
	}

	err = tw.Flush()
	if err != nil {
		err = errors.Wrap(err, "failed to write listing")
		return err
	}

	return err
}
