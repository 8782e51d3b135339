package scorer

import (
	"github.com/nikogura/resume-parser/pkg/resume"
)

// Component weights of the overall score. They sum to 1.
const (
	WeightTextClarity         = 0.20
	WeightStructure           = 0.25
	WeightEntityCount         = 0.25
	WeightSectionCompleteness = 0.30
)

// MinimumOverall is the floor of the overall score. The weighted sum is mapped onto [MinimumOverall, 1],
// so a successful parse never reports zero and only an empty one sits exactly on the floor.
const MinimumOverall = 0.1

// Text clarity saturates at these sizes.
const (
	ClarityChars = 800
	ClarityWords = 120
)

// Warning thresholds.
const (
	LowOverallThreshold  = 0.5
	PoorClarityThreshold = 0.3
	MinimumSkills        = 3
)

// EntityWeight is one term of the entity-count score: weight × min(count/Saturation, 1).
type EntityWeight struct {
	Section    resume.SectionType
	Weight     float64
	Saturation int
}

// EntityWeights rank experience highest, then education, projects and skills.
//
//nolint:gochecknoglobals // Scoring configuration constants
var EntityWeights = []EntityWeight{
	{Section: resume.SectionExperience, Weight: 0.35, Saturation: 2},
	{Section: resume.SectionEducation, Weight: 0.25, Saturation: 1},
	{Section: resume.SectionProjects, Weight: 0.20, Saturation: 2},
	{Section: resume.SectionSkills, Weight: 0.20, Saturation: 10},
}

// SectionSaturation is the entity count at which a section's confidence reaches 1.
//
//nolint:gochecknoglobals // Scoring configuration constants
var SectionSaturation = map[resume.SectionType]int{
	resume.SectionContact:        3,
	resume.SectionSummary:        1,
	resume.SectionExperience:     2,
	resume.SectionEducation:      1,
	resume.SectionSkills:         10,
	resume.SectionProjects:       2,
	resume.SectionAchievements:   3,
	resume.SectionCertifications: 1,
}

// ExpectedSections is the baseline set every résumé is expected to have.
//
//nolint:gochecknoglobals // Scoring configuration constants
var ExpectedSections = []resume.SectionType{
	resume.SectionContact,
	resume.SectionExperience,
	resume.SectionEducation,
	resume.SectionSkills,
}
