package extract

import (
	"regexp"
	"strings"

	"github.com/nikogura/resume-parser/pkg/patterns"
	"github.com/nikogura/resume-parser/pkg/resume"
)

// Lines shorter than this are never taken as unbulleted responsibilities.
const minSentenceWords = 8

// ImpactVerbs are the verbs reported as a block's impact keywords.
//
//nolint:gochecknoglobals // Read-only word list
var ImpactVerbs = []string{
	"increased", "reduced", "improved", "optimized", "led", "launched", "delivered", "achieved",
	"saved", "grew", "built", "designed", "developed", "implemented", "automated", "scaled",
	"managed", "streamlined", "mentored", "migrated", "cut", "boosted", "accelerated",
}

//nolint:gochecknoglobals // Compiled once, read-only
var (
	impactVerb = regexp.MustCompile(`(?i)\b(?:` + strings.Join(ImpactVerbs, "|") + `)\b`)
	actionVerb = regexp.MustCompile(`(?i)\b(?:developed|managed|implemented|designed|built|led|created|improved|increased|reduced|delivered|launched|maintained|optimized|automated|migrated|architected|collaborated|coordinated|mentored|owned|wrote|established|streamlined|drove|spearheaded|analyzed|deployed|scaled|integrated|engineered|resolved|supported)\b`)
	titleAt    = regexp.MustCompile(`^(.+?)\s+(?:at|@)\s+(.+)$`)
	heading    = regexp.MustCompile(`(?i)^(?:(?:work|professional|employment|relevant|industry) )?(?:experience|history|employment)\s*:?$`)
	labelLine  = regexp.MustCompile(`^\w[\w ]*:`)
)

// Experience splits text into blocks at date-range lines. The role and employer come from the rest of
// the date line, or from the short header lines just above or below it. Date lines belonging to an
// education entry close the open block and start nothing.
func (e *Extractor) Experience(text string) (experiences []resume.WorkExperience) {
	experiences = []resume.WorkExperience{}

	var current *resume.WorkExperience
	var pending []string

	flush := func() {
		if current == nil {
			return
		}
		e.finishExperience(current)
		experiences = append(experiences, *current)
		current = nil
	}

	all := lines(text)
	for i, line := range all {
		loc := patterns.DateRange.FindStringSubmatchIndex(line)
		if loc != nil {
			flush()
			if !isEducationDate(all, i) {
				current = startExperience(line, loc, pending)
			}
			pending = nil
			continue
		}

		if isResponsibility(line) {
			if current != nil {
				current.Responsibilities = append(current.Responsibilities, patterns.StripBullet(line))
			}
			pending = nil
			continue
		}

		if heading.MatchString(line) || labelLine.MatchString(line) {
			continue
		}

		// A header line directly after the date line still describes the open block.
		if current != nil && len(current.Responsibilities) == 0 && (current.JobTitle == "" || current.CompanyName == "") {
			assignHeader(current, line)
			continue
		}

		pending = append(pending, line)
		if len(pending) > 2 {
			pending = pending[len(pending)-2:]
		}
	}
	flush()

	return experiences
}

func startExperience(line string, loc []int, pending []string) (exp *resume.WorkExperience) {
	exp = &resume.WorkExperience{
		StartDate:        line[loc[2]:loc[3]],
		EndDate:          line[loc[4]:loc[5]],
		Duration:         line[loc[0]:loc[1]],
		Responsibilities: []string{},
	}

	rest := strings.Trim(line[:loc[0]]+" "+line[loc[1]:], " |,-()[]:")
	if rest != "" {
		assignHeader(exp, rest)
		return exp
	}

	// A line naming both role and employer goes before any stray line above it.
	for _, header := range pending {
		if title, _, ok := splitTitleCompany(header); ok && patterns.JobTitle.MatchString(title) {
			assignHeader(exp, header)
		}
	}
	for _, header := range pending {
		assignHeader(exp, header)
	}
	return exp
}

// isEducationDate reports whether the date line at i dates a degree: it names the degree or a school
// with no role, or a neighbouring line names the degree.
func isEducationDate(all []string, i int) (ok bool) {
	line := all[i]
	if patterns.FindDegree(line) != "" {
		ok = true
		return ok
	}
	if patterns.Institution.MatchString(line) && !patterns.JobTitle.MatchString(line) {
		ok = true
		return ok
	}
	for _, j := range []int{i - 1, i + 1} {
		if j >= 0 && j < len(all) && !patterns.IsBullet(all[j]) && patterns.FindDegree(all[j]) != "" {
			ok = true
			return ok
		}
	}
	return ok
}

// assignHeader fills the empty title or company fields from a header line.
func assignHeader(exp *resume.WorkExperience, line string) {
	if title, company, ok := splitTitleCompany(line); ok {
		if exp.JobTitle == "" {
			exp.JobTitle = title
		}
		if exp.CompanyName == "" {
			exp.CompanyName = company
		}
		return
	}

	if patterns.JobTitle.MatchString(line) && exp.JobTitle == "" {
		exp.JobTitle = line
		return
	}
	if exp.CompanyName == "" {
		exp.CompanyName = line
	}
}

// splitTitleCompany tries "X at Y", then "X - Y", then "X | Y". For the dash and pipe forms the side
// naming a role is the title.
func splitTitleCompany(line string) (title, company string, ok bool) {
	if m := titleAt.FindStringSubmatch(line); m != nil {
		title = strings.TrimSpace(m[1])
		company = strings.TrimSpace(m[2])
		ok = title != "" && company != ""
		return title, company, ok
	}

	for _, sep := range []string{" - ", " | "} {
		left, right, found := strings.Cut(line, sep)
		if !found {
			continue
		}
		title = strings.TrimSpace(left)
		company = strings.TrimSpace(strings.Trim(right, " |-"))
		if patterns.JobTitle.MatchString(company) && !patterns.JobTitle.MatchString(title) {
			title, company = company, title
		}
		ok = title != "" && company != ""
		return title, company, ok
	}

	return title, company, ok
}

func isResponsibility(line string) (ok bool) {
	if patterns.IsBullet(line) {
		ok = true
		return ok
	}
	if patterns.WordCount(line) < minSentenceWords {
		return ok
	}
	ok = actionVerb.MatchString(line) || patterns.Quantified.MatchString(line)
	return ok
}

func (e *Extractor) finishExperience(exp *resume.WorkExperience) {
	joined := strings.Join(exp.Responsibilities, "\n")

	exp.ImpactKeywords = []string{}
	seen := make(map[string]bool)
	for _, verb := range impactVerb.FindAllString(joined, -1) {
		exp.ImpactKeywords = dedupeFold(exp.ImpactKeywords, seen, strings.ToLower(verb))
	}

	exp.Technologies = []string{}
	for _, m := range e.dict.Match(joined) {
		exp.Technologies = append(exp.Technologies, m.Skill)
	}
}
