package index

import (
	"time"

	"github.com/nikogura/resume-parser/pkg/resume"
)

// ResultIndex summarizes every saved parse result under an output directory.
type ResultIndex struct {
	Entries   []Entry   `json:"entries"`
	Skipped   []string  `json:"skipped"`
	UpdatedAt time.Time `json:"updated_at"`
	Version   string    `json:"version"`
}

// Entry is the index summary of one saved result.
type Entry struct {
	Path       string               `json:"path"`
	Source     string               `json:"source,omitempty"`
	BatchID    string               `json:"batch_id,omitempty"`
	Success    bool                 `json:"success"`
	Error      string               `json:"error,omitempty"`
	Overall    float64              `json:"overall"`
	Name       string               `json:"name,omitempty"`
	Email      string               `json:"email,omitempty"`
	Experience int                  `json:"experience"`
	Education  int                  `json:"education"`
	Skills     int                  `json:"skills"`
	Warnings   int                  `json:"warnings"`
	Sections   []resume.SectionType `json:"sections"`
}

// Stats aggregates an index.
type Stats struct {
	Total       int     `json:"total"`
	Succeeded   int     `json:"succeeded"`
	Failed      int     `json:"failed"`
	MeanOverall float64 `json:"mean_overall"`
}
