package sections

import (
	"regexp"

	"github.com/nikogura/resume-parser/pkg/patterns"
	"github.com/nikogura/resume-parser/pkg/resume"
)

// Signal is a named line predicate.
type Signal struct {
	Name  string
	Match func(line string) bool
}

// Rule ties a section type to the signals that recognize it.
type Rule struct {
	Type    resume.SectionType
	Signals []Signal
}

// Matches reports whether any signal of the rule accepts the line.
func (r Rule) Matches(line string) (ok bool) {
	for _, signal := range r.Signals {
		if signal.Match(line) {
			ok = true
			return ok
		}
	}
	return ok
}

func regexSignal(name, expr string) (signal Signal) {
	re := regexp.MustCompile(expr)
	signal = Signal{Name: name, Match: re.MatchString}
	return signal
}

func patternSignal(name string, re *regexp.Regexp) (signal Signal) {
	signal = Signal{Name: name, Match: re.MatchString}
	return signal
}

// DefaultRules returns the classification table in priority order: the first rule with a matching signal wins.
// Education precedes experience so a degree line carrying graduation dates stays with its degree.
func DefaultRules() (rules []Rule) {
	rules = []Rule{
		{
			Type: resume.SectionContact,
			Signals: []Signal{
				regexSignal("header", `(?i)^(?:contact(?: information| info| details| me)?|personal (?:information|details))\s*:?$`),
				patternSignal("email", patterns.Email),
				{Name: "phone", Match: func(line string) bool { return patterns.FindPhone(line) != "" }},
				{Name: "profile", Match: func(line string) bool {
					return patterns.LinkedIn.MatchString(line) || patterns.GitHubProfile.MatchString(line)
				}},
			},
		},
		{
			Type: resume.SectionSummary,
			Signals: []Signal{
				regexSignal("header", `(?i)^(?:professional |career |executive )?(?:summary|profile|objective|about(?: me)?)\s*:?$`),
				regexSignal("self-description", `(?i)\b(?:passionate|motivated|results[- ]driven|detail[- ]oriented|seeking (?:a|an)|looking for (?:a|an))\b`),
			},
		},
		{
			Type: resume.SectionEducation,
			Signals: []Signal{
				regexSignal("header", `(?i)^(?:education(?:al background)?|academic (?:background|qualifications|history)|qualifications)\s*:?$`),
				{Name: "degree", Match: func(line string) bool { return patterns.FindDegree(line) != "" }},
				{Name: "institution", Match: isInstitutionLine},
			},
		},
		{
			Type: resume.SectionCertifications,
			Signals: []Signal{
				regexSignal("header", `(?i)^(?:certifications?|certificates|licenses?(?: (?:&|and) certifications?)?)\s*:?$`),
				regexSignal("certified", `(?i)\b(?:certified|certification)\b|\b(?:PMP|CKA|CKAD|CKS|CISSP|CISM|CISA|CCNA|CCNP|CompTIA|ITIL|TOGAF)\b`),
			},
		},
		{
			Type: resume.SectionExperience,
			Signals: []Signal{
				regexSignal("header", `(?i)^(?:(?:work|professional|employment|relevant|industry) )?(?:experience|history)\s*:?$|^(?:employment|career history|work history)\s*:?$`),
				patternSignal("date-range", patterns.DateRange),
				{Name: "job-title", Match: isJobTitleLine},
			},
		},
		{
			Type: resume.SectionSkills,
			Signals: []Signal{
				regexSignal("header", `(?i)^(?:(?:technical|core|key|professional) )?(?:skills|competencies|expertise)\b|^(?:technologies|tech stack|tools)\s*:?$`),
				regexSignal("category-list", `(?i)^(?:programming )?(?:languages|frameworks|libraries|databases|soft skills|tools(?: (?:&|and) technologies)?|cloud(?: platforms)?)\s*:`),
			},
		},
		{
			Type: resume.SectionProjects,
			Signals: []Signal{
				regexSignal("header", `(?i)^(?:(?:personal|academic|key|side|selected|notable) )?projects?\s*:?$`),
				patternSignal("repository", patterns.Repository),
				regexSignal("build", `(?i)\b(?:built|developed|created|designed)\b.*\b(?:app|application|website|web app|platform|tool|dashboard|bot|game|extension|clone)\b`),
			},
		},
		{
			Type: resume.SectionAchievements,
			Signals: []Signal{
				regexSignal("header", `(?i)^(?:achievements|awards(?: (?:&|and) (?:honou?rs|achievements))?|honou?rs(?: (?:&|and) awards)?|accomplishments|recognitions?)\s*:?$`),
				regexSignal("award", `(?i)\b(?:won|awarded|winner|finalist|ranked|scholarship|recogni[sz]ed|honou?red)\b`),
			},
		},
	}
	return rules
}

// isInstitutionLine accepts lines naming a place of study, unless they name a role there, as in
// "Research Assistant at Stanford University".
func isInstitutionLine(line string) (ok bool) {
	if !patterns.Institution.MatchString(line) {
		return ok
	}
	ok = !patterns.JobTitle.MatchString(line)
	return ok
}

// isJobTitleLine accepts short lines naming a role, such as "Senior Developer at Globex".
func isJobTitleLine(line string) (ok bool) {
	if patterns.WordCount(line) > 8 {
		return ok
	}
	ok = patterns.JobTitle.MatchString(line)
	return ok
}
