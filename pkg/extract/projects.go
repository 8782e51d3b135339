package extract

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/nikogura/resume-parser/pkg/patterns"
	"github.com/nikogura/resume-parser/pkg/resume"
)

const maxTitleWords = 6

//nolint:gochecknoglobals // Compiled once, read-only
var (
	titleSeparator = regexp.MustCompile(`^([A-Z][\w.'+#]*(?:\s+[A-Z0-9][\w.'+#]*){0,5})\s*(?:\||:|\(|\s-\s)\s*(.*)$`)
	buildArtifact  = regexp.MustCompile(`(?i)\b(?:built|developed|created|designed|made|implemented)\b.{0,60}?\b(?:apps?|applications?|websites?|web apps?|platforms?|systems?|tools?|dashboards?|bots?|games?|extensions?|apis?|clones?|librar(?:y|ies)|services?)\b`)
	stackKeyword   = regexp.MustCompile(`(?i)^(?:tech(?:nologies|nology| stack)?|stack|tools(?: used)?|built (?:with|using))\s*[:\-]|\b(?:tech stack|technologies used|built (?:with|using))\b`)
	outcomeVerb    = regexp.MustCompile(`(?i)\b(?:increased|reduced|improved|saved|grew|boosted|cut|accelerated|achieved|gained|attracted|reached)\b`)
	projectHeading = regexp.MustCompile(`(?i)^(?:(?:personal|academic|key|side|selected|notable) )?projects?\s*:?$`)
	labelWord      = regexp.MustCompile(`(?i)^(?:e-?mail|phone|mobile|tel|location|address|linkedin|github|portfolio|website|link|demo|gpa|cgpa|role|duration|team|tech(?:nologies| stack)?|stack|tools|languages|frameworks|databases)$`)
)

type openProject struct {
	project     resume.Project
	lines       []string
	description []string
	stackTerms  []string
}

// Projects finds project title lines and buckets the lines under each into tech stack, outcomes and
// description until the next title.
func (e *Extractor) Projects(text string) (projects []resume.Project) {
	projects = []resume.Project{}

	all := lines(text)
	var current *openProject

	flush := func() {
		if current == nil {
			return
		}
		projects = append(projects, e.finishProject(current))
		current = nil
	}

	for i, line := range all {
		if projectHeading.MatchString(line) {
			continue
		}

		link := findLink(line)
		stripped := patterns.StripBullet(line)

		// A link line attaches to the project above it when that project has none.
		if current != nil && link != "" && current.project.Link == "" && patterns.WordCount(strings.Replace(stripped, link, "", 1)) <= 2 {
			current.project.Link = link
			current.lines = append(current.lines, line)
			continue
		}

		if current != nil && stackKeyword.MatchString(stripped) {
			current.lines = append(current.lines, line)
			e.bucket(current, stripped)
			continue
		}

		if !patterns.IsBullet(line) && isProjectTitle(all, i, link) {
			flush()
			current = e.startProject(line, link)
			continue
		}

		if current == nil {
			continue
		}

		if link != "" && current.project.Link == "" {
			current.project.Link = link
		}
		current.lines = append(current.lines, line)
		e.bucket(current, stripped)
	}
	flush()

	return projects
}

func isProjectTitle(all []string, i int, link string) (ok bool) {
	line := all[i]
	if patterns.Email.MatchString(line) || patterns.FindPhone(line) != "" {
		return ok
	}

	switch {
	case patterns.Repository.MatchString(line):
		ok = true
	case isSeparatedTitle(line):
		ok = true
	case buildArtifact.MatchString(line):
		ok = true
	case link == "" && isTitleCaseLine(line) && i+1 < len(all) && patterns.IsBullet(all[i+1]):
		// A short heading-like line introducing a bullet list.
		ok = true
	}
	return ok
}

// isSeparatedTitle accepts "Expense Tracker | React" or "Chess Engine - a bitboard engine in Rust".
func isSeparatedTitle(line string) (ok bool) {
	m := titleSeparator.FindStringSubmatch(line)
	if m == nil || patterns.DateRange.MatchString(line) {
		return ok
	}
	ok = !labelWord.MatchString(m[1]) && !headingWord.MatchString(m[1]) && !patterns.JobTitle.MatchString(m[1])
	return ok
}

func isTitleCaseLine(line string) (ok bool) {
	words := strings.Fields(line)
	if len(words) == 0 || len(words) > maxTitleWords || strings.HasSuffix(line, ".") {
		return ok
	}
	for _, word := range words {
		first := []rune(word)[0]
		if !unicode.IsUpper(first) && !unicode.IsDigit(first) {
			return ok
		}
	}
	ok = !patterns.JobTitle.MatchString(line) && !patterns.DateRange.MatchString(line) && !headingWord.MatchString(line)
	return ok
}

func (e *Extractor) startProject(line, link string) (open *openProject) {
	open = &openProject{
		project: resume.Project{Link: link},
		lines:   []string{line},
	}

	if m := titleSeparator.FindStringSubmatch(line); m != nil {
		open.project.Name = strings.TrimSpace(m[1])
		if rest := strings.Trim(strings.Replace(m[2], link, "", 1), " )|"); rest != "" {
			e.bucket(open, rest)
		}
		return open
	}

	if repo := patterns.Repository.FindString(line); repo != "" && strings.TrimSpace(strings.Replace(line, repo, "", 1)) == "" {
		parts := strings.Split(strings.TrimRight(repo, "/"), "/")
		open.project.Name = parts[len(parts)-1]
		return open
	}

	open.project.Name = truncate(strings.TrimSpace(strings.Replace(line, link, "", 1)), 80)
	return open
}

// bucket files one content line: explicit stack lines and short skill lists go to the stack, quantified
// or result lines to outcomes, everything else to the description.
func (e *Extractor) bucket(open *openProject, line string) {
	switch {
	case stackKeyword.MatchString(line):
		open.stackTerms = append(open.stackTerms, contextTermsAfterLabel(line)...)
	case patterns.Quantified.MatchString(line) || outcomeVerb.MatchString(line):
		open.project.Outcomes = append(open.project.Outcomes, line)
	case patterns.WordCount(line) <= 6 && len(e.dict.Match(line)) > 0:
		open.stackTerms = append(open.stackTerms, skillSplit.Split(line, -1)...)
	default:
		open.description = append(open.description, line)
	}
}

func contextTermsAfterLabel(line string) (terms []string) {
	if _, after, found := strings.Cut(line, ":"); found {
		line = after
	} else if loc := stackKeyword.FindStringIndex(line); loc != nil {
		line = line[loc[1]:]
	}
	for _, term := range skillSplit.Split(line, -1) {
		term = strings.Trim(term, " .()[]")
		if term != "" {
			terms = append(terms, term)
		}
	}
	return terms
}

func (e *Extractor) finishProject(open *openProject) (project resume.Project) {
	project = open.project
	project.Description = strings.Join(open.description, " ")
	if project.Outcomes == nil {
		project.Outcomes = []string{}
	}

	joined := strings.Join(open.lines, "\n")

	project.TechStack = []string{}
	seen := make(map[string]bool)
	for _, m := range e.dict.Match(joined) {
		project.TechStack = dedupeFold(project.TechStack, seen, m.Skill)
	}
	for _, term := range open.stackTerms {
		for _, m := range e.resolveTerm(term) {
			project.TechStack = dedupeFold(project.TechStack, seen, m.Skill)
		}
	}

	project.Metrics = []string{}
	seenMetric := make(map[string]bool)
	for _, metric := range patterns.Quantified.FindAllString(joined, -1) {
		project.Metrics = dedupeFold(project.Metrics, seenMetric, strings.TrimSpace(metric))
	}

	return project
}

func findLink(line string) (link string) {
	if link = patterns.Repository.FindString(line); link != "" {
		return link
	}
	link = patterns.URL.FindString(line)
	return link
}
