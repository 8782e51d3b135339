package extract

import (
	"regexp"
	"strings"

	"github.com/nikogura/resume-parser/pkg/patterns"
	"github.com/nikogura/resume-parser/pkg/resume"
)

const (
	nameWindow     = 5
	locationWindow = 10
)

//nolint:gochecknoglobals // Compiled once, read-only
var (
	nameLine      = regexp.MustCompile(`^[A-Z][a-zA-Z'.-]+(?:\s+[A-Z][a-zA-Z'.-]+){1,2}$`)
	headingWord   = regexp.MustCompile(`(?i)\b(?:resume|curriculum|vitae|cv|experience|education|skills|summary|profile|objective|projects|achievements|awards|certifications|contact|references|university|college|institute)\b`)
	locationLabel = regexp.MustCompile(`(?i)\b(?:location|address|based in)\s*[:\-]\s*([^|•@]+)`)
	cityState     = regexp.MustCompile(`\b([A-Z][a-z]{2,}(?:\s[A-Z][a-z]+)?),\s*([A-Z]{2})\b`)
)

//nolint:gochecknoglobals // Read-only lookup
var stateCodes = map[string]bool{
	"AL": true, "AK": true, "AZ": true, "AR": true, "CA": true, "CO": true, "CT": true, "DE": true, "DC": true,
	"FL": true, "GA": true, "HI": true, "ID": true, "IL": true, "IN": true, "IA": true, "KS": true, "KY": true,
	"LA": true, "ME": true, "MD": true, "MA": true, "MI": true, "MN": true, "MS": true, "MO": true, "MT": true,
	"NE": true, "NV": true, "NH": true, "NJ": true, "NM": true, "NY": true, "NC": true, "ND": true, "OH": true,
	"OK": true, "OR": true, "PA": true, "RI": true, "SC": true, "SD": true, "TN": true, "TX": true, "UT": true,
	"VT": true, "VA": true, "WA": true, "WV": true, "WI": true, "WY": true,
}

// ContactInfo searches text for each contact field independently.
func (e *Extractor) ContactInfo(text string) (info resume.ContactInfo) {
	info.Email = patterns.Email.FindString(text)
	info.Phone = patterns.FindPhone(text)
	info.LinkedIn = strings.TrimRight(patterns.LinkedIn.FindString(text), "/")

	if m := patterns.GitHubProfile.FindString(text); m != "" {
		info.GitHub = strings.TrimRight(m, " |,;)/\n\t")
	}

	all := lines(text)
	info.Name = findName(all)
	info.Location = findLocation(all)

	return info
}

// findName takes the first short Title-Case line near the top that is not a heading or a role.
func findName(all []string) (name string) {
	for i, line := range all {
		if i >= nameWindow {
			break
		}
		if !nameLine.MatchString(line) {
			continue
		}
		if headingWord.MatchString(line) || patterns.JobTitle.MatchString(line) {
			continue
		}
		name = line
		return name
	}
	return name
}

func findLocation(all []string) (location string) {
	for i, line := range all {
		if i >= locationWindow {
			break
		}
		if m := locationLabel.FindStringSubmatch(line); m != nil {
			location = strings.TrimSpace(m[1])
			return location
		}
		for _, m := range cityState.FindAllStringSubmatch(line, -1) {
			if stateCodes[m[2]] {
				location = m[0]
				return location
			}
		}
	}
	return location
}
