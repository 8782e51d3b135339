// Package index builds and queries the summary index of saved parse results.
package index

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"

	"github.com/nikogura/resume-parser/pkg/resume"
)

// ResultSuffix marks saved parse results.
const ResultSuffix = ".parsed.json"

// FileName is the index file written at the root of the output directory.
const FileName = ".parse-index.json"

// Version of the index layout.
const Version = "1.0.0"

// Indexer indexes saved results under one output directory.
type Indexer struct {
	outputPath string
	indexPath  string
}

// NewIndexer creates a new indexer instance.
func NewIndexer(outputPath string) (indexer *Indexer, err error) {
	if outputPath == "" {
		err = errors.New("output path is required")
		return indexer, err
	}

	indexer = &Indexer{
		outputPath: outputPath,
		indexPath:  filepath.Join(outputPath, FileName),
	}

	return indexer, err
}

// Path returns the location of the index file.
func (idx *Indexer) Path() (path string) {
	path = idx.indexPath
	return path
}

// ResultPath returns where a result for the named source file is saved.
func ResultPath(outputDir, source string) (path string) {
	base := filepath.Base(source)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	path = filepath.Join(outputDir, base+ResultSuffix)
	return path
}

// Index scans all result files, writes the index and returns it. Unreadable or malformed results are
// listed as skipped rather than failing the run.
func (idx *Indexer) Index(ctx context.Context) (index ResultIndex, err error) {
	index = ResultIndex{
		Entries: []Entry{},
		Skipped: []string{},
		Version: Version,
	}

	err = filepath.Walk(idx.outputPath, func(path string, info os.FileInfo, walkErr error) (walkFuncErr error) {
		if walkErr != nil {
			walkFuncErr = walkErr
			return walkFuncErr
		}
		walkFuncErr = ctx.Err()
		if walkFuncErr != nil {
			return walkFuncErr
		}

		if info.IsDir() || !strings.HasSuffix(info.Name(), ResultSuffix) {
			return walkFuncErr
		}

		entry, loadErr := loadEntry(path)
		if loadErr != nil {
			index.Skipped = append(index.Skipped, path)
			return walkFuncErr
		}

		index.Entries = append(index.Entries, entry)
		return walkFuncErr
	})
	if err != nil {
		err = errors.Wrapf(err, "failed to walk output directory: %s", idx.outputPath)
		return index, err
	}

	index.UpdatedAt = time.Now().UTC()

	err = idx.writeIndex(index)
	if err != nil {
		err = errors.Wrap(err, "failed to write index")
		return index, err
	}

	return index, err
}

// LoadIndex loads the existing index from disk. A missing index is empty.
func (idx *Indexer) LoadIndex() (index ResultIndex, err error) {
	var data []byte
	data, err = os.ReadFile(idx.indexPath)
	if err != nil {
		if os.IsNotExist(err) {
			index = ResultIndex{
				Entries: []Entry{},
				Skipped: []string{},
				Version: Version,
			}
			err = nil
			return index, err
		}
		err = errors.Wrapf(err, "failed to read index file: %s", idx.indexPath)
		return index, err
	}

	err = json.Unmarshal(data, &index)
	if err != nil {
		err = errors.Wrapf(err, "failed to parse index JSON: %s", idx.indexPath)
		return index, err
	}

	return index, err
}

func (idx *Indexer) writeIndex(index ResultIndex) (err error) {
	var data []byte
	data, err = json.MarshalIndent(index, "", "  ")
	if err != nil {
		err = errors.Wrap(err, "failed to marshal index")
		return err
	}

	err = os.WriteFile(idx.indexPath, data, 0600)
	if err != nil {
		err = errors.Wrapf(err, "failed to write index file: %s", idx.indexPath)
		return err
	}

	return err
}

// loadEntry summarizes one result file. Batch stamps are not part of resume.Result, so they are read
// straight from the document.
func loadEntry(path string) (entry Entry, err error) {
	var data []byte
	data, err = os.ReadFile(path)
	if err != nil {
		err = errors.Wrapf(err, "failed to read result file: %s", path)
		return entry, err
	}

	var result resume.Result
	err = json.Unmarshal(data, &result)
	if err != nil {
		err = errors.Wrapf(err, "failed to parse result JSON: %s", path)
		return entry, err
	}

	err = result.Validate()
	if err != nil {
		err = errors.Wrapf(err, "invalid result: %s", path)
		return entry, err
	}

	stamps := gjson.GetManyBytes(data, "source", "batchId")

	entry = Entry{
		Path:     path,
		Source:   stamps[0].String(),
		BatchID:  stamps[1].String(),
		Success:  result.Success,
		Error:    result.Error,
		Sections: []resume.SectionType{},
	}

	if result.Resume == nil {
		return entry, err
	}

	parsed := result.Resume
	entry.Overall = parsed.Confidence.Overall
	entry.Name = parsed.ExtractedData.PersonalInfo.Name
	entry.Email = parsed.ExtractedData.PersonalInfo.Email
	entry.Experience = len(parsed.ExtractedData.Experience)
	entry.Education = len(parsed.ExtractedData.Education)
	entry.Skills = parsed.ExtractedData.Skills.Count()
	entry.Warnings = len(parsed.Warnings)
	for _, section := range parsed.Sections {
		entry.Sections = append(entry.Sections, section.Type)
	}

	return entry, err
}
