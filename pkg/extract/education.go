package extract

import (
	"regexp"
	"strings"

	"github.com/nikogura/resume-parser/pkg/patterns"
	"github.com/nikogura/resume-parser/pkg/resume"
)

//nolint:gochecknoglobals // Compiled once, read-only
var (
	gpaLabel    = regexp.MustCompile(`(?i)\b(?:c?gpa|cpi|grade)\s*[:\-]?\s*(\d{1,2}(?:\.\d{1,2})?)(?:\s*/\s*(\d{1,2}(?:\.\d{1,2})?))?`)
	gpaTrailing = regexp.MustCompile(`(?i)\b(\d{1,2}\.\d{1,2})(?:\s*/\s*(\d{1,2}(?:\.\d{1,2})?))?\s*(?:c?gpa|cpi)\b`)
	segments    = regexp.MustCompile(`\s*(?:[,|;]|\s-\s)\s*`)
	degreeTail  = regexp.MustCompile(`(?i)\s+(?:from|at)\s+(.+)$`)
)

// windowOffsets is the search order around a degree line: the line itself, then outward.
//
//nolint:gochecknoglobals // Read-only
var windowOffsets = []int{0, 1, -1, 2, -2}

// Education emits one entry per degree line, filling institution, year and GPA from the nearest lines
// within two of it. Lines naming a different degree are not searched.
func (e *Extractor) Education(text string) (education []resume.Education) {
	education = []resume.Education{}

	all := lines(text)
	for i, line := range all {
		degree := patterns.FindDegree(line)
		if degree == "" {
			continue
		}

		entry := resume.Education{Degree: degree}
		if m := degreeTail.FindStringSubmatchIndex(degree); m != nil {
			entry.Degree = strings.TrimSpace(degree[:m[0]])
		}

		window := educationWindow(all, i)
		entry.Institution = findInstitution(line, window)
		entry.Year = findYear(window)
		entry.CGPA = findGPA(window)

		education = append(education, entry)
	}

	return education
}

func educationWindow(all []string, i int) (window []string) {
	for _, offset := range windowOffsets {
		j := i + offset
		if j < 0 || j >= len(all) {
			continue
		}
		if offset != 0 && patterns.FindDegree(all[j]) != "" {
			continue
		}
		window = append(window, all[j])
	}
	return window
}

func findInstitution(degreeLine string, window []string) (institution string) {
	for _, line := range window {
		for _, segment := range segments.Split(patterns.StripBullet(line), -1) {
			if patterns.Institution.MatchString(segment) {
				institution = cleanInstitution(segment)
				return institution
			}
		}
	}

	// "BS in Physics from MIT" names the school without a keyword.
	if m := degreeTail.FindStringSubmatch(degreeLine); m != nil {
		institution = cleanInstitution(segments.Split(m[1], -1)[0])
	}
	return institution
}

func cleanInstitution(segment string) (cleaned string) {
	cleaned = patterns.DateRange.ReplaceAllString(segment, "")
	cleaned = patterns.Year.ReplaceAllString(cleaned, "")
	cleaned = strings.Trim(cleaned, " ()[]-,")
	return cleaned
}

func findYear(window []string) (year string) {
	for _, line := range window {
		if years := patterns.Year.FindAllString(line, -1); len(years) > 0 {
			year = years[len(years)-1]
			return year
		}
	}
	return year
}

func findGPA(window []string) (gpa string) {
	for _, line := range window {
		m := gpaLabel.FindStringSubmatch(line)
		if m == nil {
			m = gpaTrailing.FindStringSubmatch(line)
		}
		if m == nil {
			continue
		}

		gpa = m[1]
		if m[2] != "" {
			gpa += "/" + m[2]
		}
		return gpa
	}
	return gpa
}
