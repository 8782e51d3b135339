package cmd

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/tidwall/sjson"
	"golang.org/x/sync/errgroup"

	"github.com/nikogura/resume-parser/pkg/index"
	"github.com/nikogura/resume-parser/pkg/ingest"
	"github.com/nikogura/resume-parser/pkg/metrics"
	"github.com/nikogura/resume-parser/pkg/parser"
	"github.com/nikogura/resume-parser/pkg/renderer"
	"github.com/nikogura/resume-parser/pkg/resume"
)

//nolint:gochecknoglobals // Cobra boilerplate
var (
	batchOutputDir   string
	batchConcurrency int
	batchMetricsFile string
	batchWorkbook    string
	batchDictionary  string
)

//nolint:gochecknoglobals // Cobra boilerplate
var batchCmd = &cobra.Command{
	Use:   "batch <directory>",
	Short: "Parse every résumé in a directory",
	Long: `Parses every .pdf, .docx, .html, .md and .txt file under a directory concurrently.

Each result is saved as <name>.parsed.json in the output directory, stamped with its
source path and a batch ID, and the output directory's index is rebuilt afterwards.
Files that cannot be read or parsed are saved as failed results.

Examples:
  # Parse an inbox of applications into the configured output directory
  resume-parser batch ~/Downloads/applicants

  # Eight workers, with a spreadsheet and Prometheus textfile for the run
  resume-parser batch ./cvs -o ./parsed --concurrency 8 --workbook ./parsed/run.xlsx --metrics-file ./parsed/run.prom`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(batchCmd)
	batchCmd.Flags().StringVarP(&batchOutputDir, "output-dir", "o", "", "Directory for results (default from config)")
	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 0, "Files parsed in parallel (default from config)")
	batchCmd.Flags().StringVar(&batchMetricsFile, "metrics-file", "", "Write Prometheus metrics for the run to this file")
	batchCmd.Flags().StringVar(&batchWorkbook, "workbook", "", "Write an XLSX summary of the run to this file")
	batchCmd.Flags().StringVar(&batchDictionary, "dictionary", "", "Skill dictionary YAML merged over the built-in one")
}

// batchJob carries everything one worker needs.
type batchJob struct {
	parser  *parser.Parser
	metrics *metrics.BatchMetrics
	logger  zerolog.Logger
	batchID string
	outDir  string
}

func runBatch(cmd *cobra.Command, args []string) (err error) {
	inputDir := args[0]

	cfg, logger, p, err := setup(cmd, batchDictionary)
	if err != nil {
		return err
	}

	outDir := firstNonEmpty(batchOutputDir, cfg.Defaults.OutputDir)
	concurrency := cfg.Batch.Concurrency
	if batchConcurrency > 0 {
		concurrency = batchConcurrency
	}
	metricsFile := firstNonEmpty(batchMetricsFile, cfg.Batch.MetricsFile)
	workbook := firstNonEmpty(batchWorkbook, cfg.Batch.Workbook)

	var files []string
	files, err = findDocuments(inputDir, outDir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		err = errors.Errorf("no supported documents found in %s", inputDir)
		return err
	}

	job := batchJob{
		parser:  p,
		batchID: uuid.NewString(),
		outDir:  outDir,
	}
	job.metrics = metrics.NewBatchMetrics(job.batchID)
	job.logger = logger.With().Str("batch", job.batchID).Logger()

	job.logger.Info().Int("files", len(files)).Int("concurrency", concurrency).Str("output", outDir).Msg("batch started")

	entries := make([]renderer.Entry, len(files))

	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(concurrency)
	for i, file := range files {
		i, file := i, file
		g.Go(func() (goErr error) {
			entries[i], goErr = job.process(ctx, file)
			return goErr
		})
	}
	err = g.Wait()
	if err != nil {
		return err
	}

	job.metrics.Complete(time.Now())

	if metricsFile != "" {
		err = job.metrics.WriteTextfile(metricsFile)
		if err != nil {
			return err
		}
		job.logger.Debug().Str("path", metricsFile).Msg("metrics written")
	}

	if workbook != "" {
		err = renderer.WriteWorkbook(entries, workbook)
		if err != nil {
			return err
		}
		job.logger.Debug().Str("path", workbook).Msg("workbook written")
	}

	var indexer *index.Indexer
	indexer, err = index.NewIndexer(outDir)
	if err != nil {
		return err
	}

	var idx index.ResultIndex
	idx, err = indexer.Index(context.Background())
	if err != nil {
		err = errors.Wrap(err, "failed to rebuild index")
		return err
	}

	printBatchSummary(cmd, job.batchID, idx.Batch(job.batchID))

	return err
}

// process ingests, parses and saves one file. Only failures to save are returned as errors; anything
// wrong with the document itself is saved as a failed result.
func (j batchJob) process(ctx context.Context, file string) (entry renderer.Entry, err error) {
	entry.Source = file
	format := ingest.FormatOf(file)

	j.metrics.StartFile()
	start := time.Now()

	fileCtx, cancel := context.WithTimeout(ctx, ingest.Timeout)
	defer cancel()

	text, ingestErr := ingest.FetchWithContext(fileCtx, file)
	if ingestErr != nil {
		entry.Result = resume.Failed(ingestErr.Error())
		j.metrics.FinishFile(string(format), time.Since(start), nil, ingestErr)
		j.logger.Warn().Str("file", file).Err(ingestErr).Msg("document could not be read")
	} else {
		entry.Result = j.parser.Parse(text)
		j.metrics.FinishFile(string(format), time.Since(start), &entry.Result, nil)
		if !entry.Result.Success {
			j.logger.Warn().Str("file", file).Str("reason", entry.Result.Error).Msg("parse failed")
		}
	}

	var data []byte
	data, err = stampResult(entry.Result, file, j.batchID)
	if err != nil {
		return entry, err
	}

	path := index.ResultPath(j.outDir, file)
	err = renderer.WriteFile(data, path)
	if err != nil {
		return entry, err
	}

	j.logger.Debug().Str("file", file).Str("result", path).Dur("elapsed", time.Since(start)).Msg("file processed")

	return entry, err
}

// stampResult serializes a result and records where it came from.
func stampResult(result resume.Result, source, batchID string) (data []byte, err error) {
	data, err = renderer.MarshalResult(result)
	if err != nil {
		return data, err
	}

	data, err = sjson.SetBytes(data, "source", source)
	if err != nil {
		err = errors.Wrap(err, "failed to stamp source")
		return data, err
	}

	data, err = sjson.SetBytes(data, "batchId", batchID)
	if err != nil {
		err = errors.Wrap(err, "failed to stamp batch ID")
		return data, err
	}

	return data, err
}

// findDocuments lists supported files under dir, skipping hidden directories and the output directory.
// Two inputs that would save to the same result file are an error.
func findDocuments(dir, outDir string) (files []string, err error) {
	absOut, _ := filepath.Abs(outDir)

	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, walkErr error) (walkFuncErr error) {
		if walkErr != nil {
			walkFuncErr = walkErr
			return walkFuncErr
		}

		if d.IsDir() {
			absPath, _ := filepath.Abs(path)
			if path != dir && (strings.HasPrefix(d.Name(), ".") || absPath == absOut) {
				walkFuncErr = filepath.SkipDir
			}
			return walkFuncErr
		}

		if ingest.IsSupported(d.Name()) {
			files = append(files, path)
		}
		return walkFuncErr
	})
	if err != nil {
		err = errors.Wrapf(err, "failed to scan %s", dir)
		return files, err
	}

	sort.Strings(files)

	seen := map[string]string{}
	for _, file := range files {
		target := index.ResultPath(outDir, file)
		if previous, ok := seen[target]; ok {
			err = errors.Errorf("%s and %s would both be saved as %s", previous, file, target)
			return files, err
		}
		seen[target] = file
	}

	return files, err
}

func printBatchSummary(cmd *cobra.Command, batchID string, entries []index.Entry) {
	out := cmd.OutOrStdout()

	batch := index.ResultIndex{Entries: entries}
	stats := batch.Stats()

	fmt.Fprintf(out, "Batch %s: parsed %d/%d files", batchID, stats.Succeeded, stats.Total)
	if stats.Succeeded > 0 {
		fmt.Fprintf(out, ", mean confidence %.0f%%", stats.MeanOverall*100)
	}
	fmt.Fprintln(out)

	for _, entry := range batch.Failures() {
		fmt.Fprintf(out, "  failed: %s (%s)\n", entry.Source, entry.Error)
	}

	if getVerbose() {
		for _, entry := range batch.Below(0.5) {
			fmt.Fprintf(out, "  low confidence %.0f%%: %s\n", entry.Overall*100, entry.Source)
		}
	}
}

func firstNonEmpty(values ...string) (value string) {
	for _, v := range values {
		if v != "" {
			value = v
			return value
		}
	}
	return value
}
