package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/nikogura/resume-parser/pkg/index"
	"github.com/nikogura/resume-parser/pkg/parser"
	"github.com/nikogura/resume-parser/pkg/renderer"
	"github.com/nikogura/resume-parser/pkg/resume"
	"github.com/nikogura/resume-parser/pkg/schema"
)

const sampleResume = "Jane Doe\njane.doe@example.com\n(415) 555-0100\nExperience\nSoftware Engineer at Acme Corp\nJan 2020 - Present\n" +
	"• Built a billing pipeline\n• Reduced latency by 30%\nEducation\nBachelor of Science, State University, 2019\nSkills\nJavaScript, React, PostgreSQL"

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
}

func TestFindDocuments(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "parsed")

	writeFile(t, filepath.Join(dir, "jane.txt"), sampleResume)
	writeFile(t, filepath.Join(dir, "nested", "john.html"), "<p>John</p>")
	writeFile(t, filepath.Join(dir, "notes.csv"), "a,b")
	writeFile(t, filepath.Join(dir, ".cache", "old.txt"), sampleResume)
	writeFile(t, filepath.Join(out, "previous.md"), sampleResume)

	files, err := findDocuments(dir, out)
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(dir, "jane.txt"),
		filepath.Join(dir, "nested", "john.html"),
	}, files)
}

func TestFindDocumentsCollision(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "cv.txt"), sampleResume)
	writeFile(t, filepath.Join(dir, "cv.md"), sampleResume)

	_, err := findDocuments(dir, filepath.Join(dir, "parsed"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cv.parsed.json")
}

func TestStampResult(t *testing.T) {
	result := parser.Parse(sampleResume)
	require.True(t, result.Success)

	data, err := stampResult(result, "/inbox/jane.txt", "batch-1")
	require.NoError(t, err)

	assert.Equal(t, "/inbox/jane.txt", gjson.GetBytes(data, "source").String())
	assert.Equal(t, "batch-1", gjson.GetBytes(data, "batchId").String())
	assert.Equal(t, "Jane Doe", gjson.GetBytes(data, "data.extractedData.personalInfo.name").String())
	require.NoError(t, schema.Validate(data))
}

func TestRenderResult(t *testing.T) {
	result := parser.Parse(sampleResume)

	jsonOut, err := renderResult(result, "jane.txt", "json")
	require.NoError(t, err)
	assert.True(t, gjson.ValidBytes(jsonOut))
	assert.True(t, gjson.GetBytes(jsonOut, "success").Bool())

	mdOut, err := renderResult(result, "jane.txt", "markdown")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(mdOut), "# Jane Doe\n"))
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer

	logger := newLogger(&buf, "warn")
	logger.Info().Msg("hidden")
	logger.Warn().Msg("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")

	buf.Reset()
	logger = newLogger(&buf, "nonsense")
	logger.Info().Msg("fallback to info")
	assert.Contains(t, buf.String(), "fallback to info")
}

func TestFirstNonEmpty(t *testing.T) {
	assert.Equal(t, "b", firstNonEmpty("", "b", "c"))
	assert.Equal(t, "", firstNonEmpty("", ""))
}

func TestBatchCommand(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	dir := t.TempDir()
	out := filepath.Join(dir, "parsed")
	workbook := filepath.Join(dir, "run.xlsx")
	metricsFile := filepath.Join(dir, "run.prom")

	writeFile(t, filepath.Join(dir, "jane.txt"), sampleResume)
	writeFile(t, filepath.Join(dir, "short.txt"), "too short")

	var stdout bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{
		"batch", dir,
		"--output-dir", out,
		"--concurrency", "2",
		"--workbook", workbook,
		"--metrics-file", metricsFile,
	})
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, stdout.String(), "parsed 1/2 files")
	assert.Contains(t, stdout.String(), "failed: "+filepath.Join(dir, "short.txt"))

	jane, err := resume.Load(filepath.Join(out, "jane"+index.ResultSuffix))
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", jane.Resume.ExtractedData.PersonalInfo.Name)

	require.NoError(t, schema.ValidateFile(filepath.Join(out, "short"+index.ResultSuffix)))

	indexer, err := index.NewIndexer(out)
	require.NoError(t, err)
	idx, err := indexer.LoadIndex()
	require.NoError(t, err)
	require.Len(t, idx.Entries, 2)

	batchID := idx.Entries[0].BatchID
	assert.NotEmpty(t, batchID)
	assert.Len(t, idx.Batch(batchID), 2)

	assert.FileExists(t, workbook)
	prom, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(prom), `status="success"} 1`)
	assert.Contains(t, string(prom), `status="failed"} 1`)
}

// runRoot executes the root command with args and returns what it printed.
func runRoot(t *testing.T, args ...string) (output string, err error) {
	t.Helper()

	var stdout bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})

	err = rootCmd.Execute()
	output = stdout.String()
	return output, err
}

func saveSample(t *testing.T, dir string) (path string) {
	t.Helper()

	data, err := stampResult(parser.Parse(sampleResume), "/inbox/jane.txt", "batch-1")
	require.NoError(t, err)

	path = index.ResultPath(dir, "jane.txt")
	require.NoError(t, renderer.WriteFile(data, path))
	return path
}

func TestInspectLines(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Cleanup(func() { inspectLines = false })

	path := saveSample(t, t.TempDir())

	out, err := runRoot(t, "inspect", path, "--lines")
	require.NoError(t, err)

	classes := map[string]string{}
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		fields := strings.Fields(line)
		require.NotEmpty(t, fields)
		classes[strings.Join(fields[1:], " ")] = fields[0]
	}

	assert.Equal(t, "contact", classes["jane.doe@example.com"])
	assert.Equal(t, "experience", classes["Experience"])
	assert.Equal(t, "education", classes["Bachelor of Science, State University, 2019"])
	assert.Equal(t, "skills", classes["Skills"])
}

func TestIndexCached(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Cleanup(func() {
		indexCached = false
		indexBelow = 0
	})

	dir := t.TempDir()
	path := saveSample(t, dir)

	indexer, err := index.NewIndexer(dir)
	require.NoError(t, err)
	_, err = indexer.Index(context.Background())
	require.NoError(t, err)

	// The cached listing still knows the result after the file is gone; a rescan does not.
	require.NoError(t, os.Remove(path))

	out, err := runRoot(t, "index", dir, "--cached", "--below", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "1 results: 1 succeeded, 0 failed")
	assert.Contains(t, out, "Jane Doe")
	assert.Contains(t, out, "/inbox/jane.txt")

	out, err = runRoot(t, "index", dir, "--cached=false")
	require.NoError(t, err)
	assert.Contains(t, out, "0 results: 0 succeeded, 0 failed")
}
