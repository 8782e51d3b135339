package sections

import (
	"strings"

	"github.com/nikogura/resume-parser/pkg/patterns"
	"github.com/nikogura/resume-parser/pkg/resume"
)

// Detector groups normalized lines into labeled sections. It is safe for concurrent use.
type Detector struct {
	rules []Rule
}

type openSection struct {
	rule  Rule
	start int
	end   int
	lines []string
}

//nolint:gochecknoglobals // Built once, read-only
var defaultDetector = NewDetector(DefaultRules())

// NewDetector creates a detector evaluating rules in the given order.
func NewDetector(rules []Rule) (detector *Detector) {
	detector = &Detector{
		rules: append([]Rule{}, rules...),
	}
	return detector
}

// Detect splits text into sections with the default rules.
func Detect(text string) (sections []resume.Section) {
	sections = defaultDetector.Detect(text)
	return sections
}

// Classify returns the section type of the first rule matching line.
func (d *Detector) Classify(line string) (sectionType resume.SectionType, ok bool) {
	var rule Rule
	rule, ok = d.classifyRule(strings.TrimSpace(line))
	sectionType = rule.Type
	return sectionType, ok
}

// Detect scans text once, line by line. A line opens a new section only when it classifies as a
// type different from the open one; unclassified lines continue the open section. Bullets and bare
// date ranges never open a section while one is open. Offsets are byte offsets into text.
func (d *Detector) Detect(text string) (sections []resume.Section) {
	sections = []resume.Section{}

	var current *openSection
	offset := 0

	for _, line := range strings.Split(text, "\n") {
		start := offset
		end := offset + len(line)
		offset = end + 1

		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		rule, classified := d.classifyRule(trimmed)
		if classified && current != nil && isContinuation(trimmed) {
			classified = false
		}

		switch {
		case classified && (current == nil || current.rule.Type != rule.Type):
			if current != nil {
				sections = append(sections, finalize(current))
			}
			current = &openSection{rule: rule, start: start}
		case current == nil:
			continue
		}

		current.lines = append(current.lines, trimmed)
		current.end = end
	}

	if current != nil {
		sections = append(sections, finalize(current))
	}

	return sections
}

func (d *Detector) classifyRule(line string) (rule Rule, ok bool) {
	for _, r := range d.rules {
		if r.Matches(line) {
			rule = r
			ok = true
			return rule, ok
		}
	}
	return rule, ok
}

func isContinuation(line string) (ok bool) {
	ok = patterns.IsBullet(line) || patterns.IsBareDateRange(line)
	return ok
}

// finalize computes a section's confidence: the fraction of its rule's signals seen in its lines.
func finalize(open *openSection) (section resume.Section) {
	matched := 0
	for _, signal := range open.rule.Signals {
		for _, line := range open.lines {
			if signal.Match(line) {
				matched++
				break
			}
		}
	}

	confidence := 0.0
	if len(open.rule.Signals) > 0 {
		confidence = float64(matched) / float64(len(open.rule.Signals))
	}

	section = resume.Section{
		Type:       open.rule.Type,
		Content:    strings.Join(open.lines, "\n"),
		Confidence: confidence,
		StartIndex: open.start,
		EndIndex:   open.end,
	}
	return section
}

// ContentOf joins the content of every section of the given type, in order.
func ContentOf(sections []resume.Section, sectionType resume.SectionType) (content string, found bool) {
	parts := []string{}
	for _, section := range sections {
		if section.Type == sectionType {
			parts = append(parts, section.Content)
		}
	}

	if len(parts) == 0 {
		return content, found
	}

	content = strings.Join(parts, "\n")
	found = true
	return content, found
}

// Present returns the set of section types that occur at least once.
func Present(sections []resume.Section) (present map[resume.SectionType]bool) {
	present = make(map[resume.SectionType]bool, len(sections))
	for _, section := range sections {
		present[section.Type] = true
	}
	return present
}
