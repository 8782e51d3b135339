// Package renderer writes parse results as JSON, Markdown summaries and batch workbooks.
package renderer

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/nikogura/resume-parser/pkg/resume"
)

// MarshalResult renders a result as indented JSON with a trailing newline.
func MarshalResult(result resume.Result) (data []byte, err error) {
	data, err = json.MarshalIndent(result, "", "  ")
	if err != nil {
		err = errors.Wrap(err, "failed to marshal result")
		return data, err
	}
	data = append(data, '\n')
	return data, err
}

// WriteJSON writes a result to outputPath, creating parent directories as needed.
func WriteJSON(result resume.Result, outputPath string) (err error) {
	var data []byte
	data, err = MarshalResult(result)
	if err != nil {
		return err
	}

	err = WriteFile(data, outputPath)
	return err
}

// WriteMarkdown writes markdown content to a file.
func WriteMarkdown(content, outputPath string) (err error) {
	err = WriteFile([]byte(content), outputPath)
	return err
}

// WriteFile writes data to outputPath with owner-only permissions.
func WriteFile(data []byte, outputPath string) (err error) {
	outputDir := filepath.Dir(outputPath)
	err = os.MkdirAll(outputDir, 0750)
	if err != nil {
		err = errors.Wrapf(err, "failed to create output directory: %s", outputDir)
		return err
	}

	err = os.WriteFile(outputPath, data, 0600)
	if err != nil {
		err = errors.Wrapf(err, "failed to write file: %s", outputPath)
		return err
	}

	return err
}
