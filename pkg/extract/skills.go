package extract

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/nikogura/resume-parser/pkg/dictionary"
	"github.com/nikogura/resume-parser/pkg/patterns"
	"github.com/nikogura/resume-parser/pkg/resume"
)

//nolint:gochecknoglobals // Compiled once, read-only
var (
	skillLabel  = regexp.MustCompile(`(?i)^(?:(?:technical|core|key|programming|soft|other|professional) )?(?:skills|technologies|tech stack|tools(?: (?:&|and) technologies)?|languages|frameworks(?: (?:&|and) libraries)?|libraries|databases|cloud(?: platforms)?|devops|platforms)\s*[:\-]\s*(.+)$`)
	skillInline = regexp.MustCompile(`(?i)\b(?:proficient in|experience with|experienced in|familiar with|expertise in|knowledge of|skilled in|tech stack)\s*:?\s+(.+?)(?:\.\s|\.$|$)`)
	skillSplit  = regexp.MustCompile(`\s*(?:[,;|•]|\s(?:and|&)\s)\s*`)
	skillSub    = regexp.MustCompile(`\s*[/-]\s*`)
)

// Skills collects dictionary matches over the whole text, then the terms listed on skill-context lines
// such as "Skills: Go, Rust" or "proficient in Terraform". Terms the dictionary does not know land in
// Technical. Skills are deduplicated case-insensitively and capped.
func (e *Extractor) Skills(text string) (skills resume.SkillCategories) {
	skills = resume.NewSkillCategories()
	seen := make(map[string]bool)
	total := 0

	add := func(skill string, category dictionary.Category) {
		key := strings.ToLower(skill)
		if skill == "" || seen[key] || total >= e.maxSkills {
			return
		}
		seen[key] = true
		total++
		appendSkill(&skills, category, skill)
	}

	for _, m := range e.dict.Match(text) {
		add(m.Skill, m.Category)
	}

	for _, line := range lines(text) {
		for _, term := range contextTerms(line) {
			for _, m := range e.resolveTerm(term) {
				add(m.Skill, m.Category)
			}
		}
	}

	return skills
}

// contextTerms splits the list following a skill-context label into candidate terms.
func contextTerms(line string) (terms []string) {
	line = patterns.StripBullet(line)

	var list string
	if m := skillLabel.FindStringSubmatch(line); m != nil {
		list = m[1]
	} else if m := skillInline.FindStringSubmatch(line); m != nil {
		list = m[1]
	} else {
		return terms
	}

	for _, piece := range skillSplit.Split(list, -1) {
		piece = strings.Trim(piece, " .()[]\"'")
		if piece != "" {
			terms = append(terms, piece)
		}
	}
	return terms
}

// resolveTerm canonicalizes one listed term. Known abbreviations and spellings resolve directly; compound
// terms such as "React/Redux" are split and resolved piecewise; anything else is kept verbatim as technical.
func (e *Extractor) resolveTerm(term string) (matches []dictionary.Match) {
	if m, ok := e.dict.Lookup(term); ok {
		matches = append(matches, m)
		return matches
	}

	if parts := skillSub.Split(term, -1); len(parts) > 1 {
		for _, part := range parts {
			if m, ok := e.dict.Lookup(part); ok {
				matches = append(matches, m)
			}
		}
		if len(matches) > 0 {
			return matches
		}
	}

	// Terms mentioning known skills ("Python 3 scripting") are already covered by the text-wide match.
	if len(e.dict.Match(term)) > 0 {
		return matches
	}

	if isPlausibleSkill(term) {
		matches = append(matches, dictionary.Match{Skill: term, Category: dictionary.CategoryTechnical})
	}
	return matches
}

func isPlausibleSkill(term string) (ok bool) {
	n := len([]rune(term))
	if n < 2 || n > 30 || patterns.WordCount(term) > 4 {
		return ok
	}
	for _, r := range term {
		if unicode.IsLetter(r) {
			ok = true
			return ok
		}
	}
	return ok
}

func appendSkill(skills *resume.SkillCategories, category dictionary.Category, skill string) {
	switch category {
	case dictionary.CategoryLanguages:
		skills.Languages = append(skills.Languages, skill)
	case dictionary.CategoryFrameworks:
		skills.Frameworks = append(skills.Frameworks, skill)
	case dictionary.CategoryDatabases:
		skills.Databases = append(skills.Databases, skill)
	case dictionary.CategoryTools:
		skills.Tools = append(skills.Tools, skill)
	case dictionary.CategorySoftSkills:
		skills.SoftSkills = append(skills.SoftSkills, skill)
	default:
		skills.Technical = append(skills.Technical, skill)
	}
}
