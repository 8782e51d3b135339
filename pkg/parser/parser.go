// Package parser runs the résumé pipeline: normalize, detect sections, extract entities, score.
package parser

import (
	"fmt"
	"sync"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/nikogura/resume-parser/pkg/dictionary"
	"github.com/nikogura/resume-parser/pkg/extract"
	"github.com/nikogura/resume-parser/pkg/normalize"
	"github.com/nikogura/resume-parser/pkg/resume"
	"github.com/nikogura/resume-parser/pkg/scorer"
	"github.com/nikogura/resume-parser/pkg/sections"
)

// Parser turns raw document text into a Result. It is immutable after New and safe for concurrent use.
type Parser struct {
	dict       *dictionary.Dictionary
	normalizer *normalize.Normalizer
	detector   *sections.Detector
	extractor  *extract.Extractor
	scorer     *scorer.Scorer
	logger     zerolog.Logger
	minLength  int
	maxSkills  int
}

// Option configures a Parser.
type Option func(*Parser)

// WithDictionary replaces the embedded skill dictionary.
func WithDictionary(dict *dictionary.Dictionary) (opt Option) {
	opt = func(p *Parser) {
		if dict != nil {
			p.dict = dict
		}
	}
	return opt
}

// WithLogger sets the logger for stage-level debug events. The résumé text itself is never logged.
func WithLogger(logger zerolog.Logger) (opt Option) {
	opt = func(p *Parser) {
		p.logger = logger
	}
	return opt
}

// WithMinLength overrides the minimum viable normalized length. Non-positive values keep the default.
func WithMinLength(n int) (opt Option) {
	opt = func(p *Parser) {
		if n > 0 {
			p.minLength = n
		}
	}
	return opt
}

// WithMaxSkills overrides the skill cap. Non-positive values keep the default.
func WithMaxSkills(n int) (opt Option) {
	opt = func(p *Parser) {
		if n > 0 {
			p.maxSkills = n
		}
	}
	return opt
}

//nolint:gochecknoglobals // Built once per process, read-only afterwards
var defaultParser = sync.OnceValue(func() (p *Parser) {
	p = New()
	return p
})

// New creates a parser. Without options it uses the embedded dictionary and the default rules.
func New(opts ...Option) (p *Parser) {
	p = &Parser{
		dict:      dictionary.Default(),
		logger:    zerolog.Nop(),
		minLength: normalize.MinViableLength,
		maxSkills: extract.DefaultMaxSkills,
	}
	for _, opt := range opts {
		opt(p)
	}

	p.normalizer = normalize.New(p.dict.MixedCaseTerms()...)
	p.detector = sections.NewDetector(sections.DefaultRules())
	p.extractor = extract.New(p.dict, extract.WithMaxSkills(p.maxSkills))
	p.scorer = scorer.NewScorer()

	return p
}

// Parse runs the default parser.
func Parse(raw string) (result resume.Result) {
	result = defaultParser().Parse(raw)
	return result
}

// Parse normalizes raw and, when enough text survives, extracts and scores it. Too little text is
// reported as a failed Result; nothing else fails.
func (p *Parser) Parse(raw string) (result resume.Result) {
	text := p.normalizer.Normalize(raw)

	length := utf8.RuneCountInString(text)
	if length < p.minLength {
		p.logger.Debug().Int("rawBytes", len(raw)).Int("normalizedChars", length).Msg("text below minimum viable length")
		result = resume.Failed(fmt.Sprintf(
			"text extraction failed: %d readable characters found, at least %d required", length, p.minLength))
		return result
	}

	detected := p.detector.Detect(text)
	p.logger.Debug().Int("normalizedChars", length).Int("sections", len(detected)).Msg("sections detected")

	data := p.Extract(text, detected)
	p.logger.Debug().
		Int("experience", len(data.Experience)).
		Int("education", len(data.Education)).
		Int("skills", data.Skills.Count()).
		Int("projects", len(data.Projects)).
		Msg("entities extracted")

	confidence := p.scorer.Score(text, detected, data)
	warnings := p.scorer.Warnings(confidence, data)
	p.logger.Debug().Float64("overall", confidence.Overall).Int("warnings", len(warnings)).Msg("parse scored")

	result = resume.Succeeded(&resume.ParsedResume{
		RawText:       text,
		Sections:      detected,
		ExtractedData: data,
		Confidence:    confidence,
		Warnings:      warnings,
	})

	return result
}

// Extract runs every extractor over its matching section content, or over the whole text when no such
// section was detected. Contact fields always read the whole text since the name line usually precedes
// any recognizable section. A summary is only reported from a detected summary section.
func (p *Parser) Extract(text string, detected []resume.Section) (data resume.ExtractedData) {
	input := func(sectionType resume.SectionType) (content string) {
		content, found := sections.ContentOf(detected, sectionType)
		if !found {
			content = text
		}
		return content
	}

	data = resume.ExtractedData{
		PersonalInfo:   p.extractor.ContactInfo(text),
		Experience:     p.extractor.Experience(input(resume.SectionExperience)),
		Education:      p.extractor.Education(input(resume.SectionEducation)),
		Skills:         p.extractor.Skills(input(resume.SectionSkills)),
		Projects:       p.extractor.Projects(input(resume.SectionProjects)),
		Achievements:   p.extractor.Achievements(input(resume.SectionAchievements)),
		Certifications: p.extractor.Certifications(input(resume.SectionCertifications)),
	}

	if summary, found := sections.ContentOf(detected, resume.SectionSummary); found {
		data.Summary = p.extractor.Summary(summary)
	}

	return data
}

// Explain renders the confidence breakdown of a parsed résumé.
func (p *Parser) Explain(parsed *resume.ParsedResume) (explanation string) {
	explanation = p.scorer.Explain(parsed.Confidence)
	return explanation
}

// Classify reports which section a single normalized line would open.
func (p *Parser) Classify(line string) (sectionType resume.SectionType, ok bool) {
	sectionType, ok = p.detector.Classify(line)
	return sectionType, ok
}
