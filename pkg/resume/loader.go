package resume

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
)

// Load reads a saved parse result from a JSON file.
func Load(path string) (result Result, err error) {
	// Read file
	var fileData []byte
	fileData, err = os.ReadFile(path)
	if err != nil {
		err = errors.Wrapf(err, "failed to read result file: %s", path)
		return result, err
	}

	// Parse JSON
	err = json.Unmarshal(fileData, &result)
	if err != nil {
		err = errors.Wrapf(err, "failed to parse result JSON: %s", path)
		return result, err
	}

	// Validate data
	err = result.Validate()
	if err != nil {
		err = errors.Wrap(err, "result validation failed")
		return result, err
	}

	return result, err
}

// Validate checks that the result is well-formed.
func (r *Result) Validate() (err error) {
	if !r.Success {
		if r.Error == "" {
			err = errors.New("failed result has no error message")
			return err
		}
		if r.Resume != nil {
			err = errors.New("failed result must not carry data")
			return err
		}
		return err
	}

	if r.Resume == nil {
		err = errors.New("successful result has no data")
		return err
	}

	conf := r.Resume.Confidence
	if conf.Overall < 0 || conf.Overall > 1 {
		err = errors.Errorf("overall confidence out of range: %f", conf.Overall)
		return err
	}

	// Sections must be ordered by position
	for i, section := range r.Resume.Sections {
		if section.EndIndex < section.StartIndex {
			err = errors.Errorf("section %d (%s) ends before it starts", i, section.Type)
			return err
		}
		if i > 0 && section.StartIndex < r.Resume.Sections[i-1].StartIndex {
			err = errors.Errorf("section %d (%s) is out of order", i, section.Type)
			return err
		}
	}

	return err
}
