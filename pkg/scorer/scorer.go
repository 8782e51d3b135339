package scorer

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/nikogura/resume-parser/pkg/resume"
	"github.com/nikogura/resume-parser/pkg/sections"
)

//nolint:gochecknoglobals // Compiled once, read-only
var realWord = regexp.MustCompile(`^[A-Za-z][A-Za-z'-]*$`)

// Scorer calculates confidence from a parse's text, sections and entities. It holds no state.
type Scorer struct{}

// NewScorer creates a new scorer instance.
func NewScorer() (scorer *Scorer) {
	scorer = &Scorer{}
	return scorer
}

// Score computes every confidence component and the weighted overall score.
func (s *Scorer) Score(text string, detected []resume.Section, data resume.ExtractedData) (confidence resume.Confidence) {
	clarity := s.TextClarity(text)
	structure := s.StructureDetection(detected)
	entities := s.EntityCount(data)
	perSection := s.SectionConfidence(data)

	completeness := 0.0
	for _, sectionType := range ExpectedSections {
		completeness += perSection[sectionType]
	}
	completeness /= float64(len(ExpectedSections))

	raw := WeightTextClarity*clarity +
		WeightStructure*structure +
		WeightEntityCount*entities +
		WeightSectionCompleteness*completeness

	overall := MinimumOverall + (1-MinimumOverall)*clamp(raw)

	confidence = resume.Confidence{
		Overall:            round(overall),
		Sections:           perSection,
		TextClarity:        round(clarity),
		StructureDetection: round(structure),
		EntityCount:        round(entities),
	}

	return confidence
}

// TextClarity rewards length and the share of dictionary-like words, each half saturating.
func (s *Scorer) TextClarity(text string) (clarity float64) {
	words := 0
	for _, field := range strings.Fields(text) {
		word := strings.Trim(field, `.,;:!?()[]"`)
		if len(word) >= 2 && realWord.MatchString(word) {
			words++
		}
	}

	clarity = 0.5*saturate(len([]rune(text)), ClarityChars) + 0.5*saturate(words, ClarityWords)
	return clarity
}

// StructureDetection is the fraction of the expected sections that were detected.
func (s *Scorer) StructureDetection(detected []resume.Section) (structure float64) {
	present := sections.Present(detected)

	found := 0
	for _, sectionType := range ExpectedSections {
		if present[sectionType] {
			found++
		}
	}

	structure = float64(found) / float64(len(ExpectedSections))
	return structure
}

// EntityCount is the weighted, saturating sum of extracted entity counts.
func (s *Scorer) EntityCount(data resume.ExtractedData) (score float64) {
	counts := entityCounts(data)
	for _, w := range EntityWeights {
		score += w.Weight * saturate(counts[w.Section], w.Saturation)
	}
	score = clamp(score)
	return score
}

// SectionConfidence scores every section type from its entity count. Anything found earns at least 0.5.
func (s *Scorer) SectionConfidence(data resume.ExtractedData) (perSection map[resume.SectionType]float64) {
	counts := entityCounts(data)
	perSection = make(map[resume.SectionType]float64, len(resume.AllSectionTypes))

	for _, sectionType := range resume.AllSectionTypes {
		count := counts[sectionType]
		if count == 0 {
			perSection[sectionType] = 0
			continue
		}
		perSection[sectionType] = round(0.5 + 0.5*saturate(count, SectionSaturation[sectionType]))
	}

	return perSection
}

// Warnings turns thresholds into human-readable hints, always in the same order.
func (s *Scorer) Warnings(confidence resume.Confidence, data resume.ExtractedData) (warnings []string) {
	warnings = []string{}

	if confidence.Overall < LowOverallThreshold {
		warnings = append(warnings, fmt.Sprintf("Low overall confidence (%.0f%%): review the extracted data manually", confidence.Overall*100))
	}

	if confidence.TextClarity < PoorClarityThreshold {
		warnings = append(warnings, "Poor text quality: the document may be scanned, image-based or badly extracted")
	}

	if len(data.Experience) == 0 {
		warnings = append(warnings, "No work experience detected")
	}

	if data.Skills.Count() < MinimumSkills {
		warnings = append(warnings, fmt.Sprintf("Fewer than %d skills detected", MinimumSkills))
	}

	if data.PersonalInfo.Name == "" {
		warnings = append(warnings, "Could not detect candidate name")
	}

	if data.PersonalInfo.Email == "" {
		warnings = append(warnings, "Could not detect email address")
	}

	return warnings
}

// Explain renders the confidence breakdown for people reading a parse report.
func (s *Scorer) Explain(confidence resume.Confidence) (explanation string) {
	var b strings.Builder

	fmt.Fprintf(&b, "Overall confidence: %.0f%%\n", confidence.Overall*100)
	fmt.Fprintf(&b, "  Text clarity:        %3.0f%% (weight %.2f)\n", confidence.TextClarity*100, WeightTextClarity)
	fmt.Fprintf(&b, "  Structure detection: %3.0f%% (weight %.2f)\n", confidence.StructureDetection*100, WeightStructure)
	fmt.Fprintf(&b, "  Entity count:        %3.0f%% (weight %.2f)\n", confidence.EntityCount*100, WeightEntityCount)
	fmt.Fprintf(&b, "  Section completeness over %d expected sections (weight %.2f)\n", len(ExpectedSections), WeightSectionCompleteness)

	b.WriteString("Sections:\n")
	for _, sectionType := range resume.AllSectionTypes {
		value, ok := confidence.Sections[sectionType]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "  %-15s %3.0f%%\n", sectionType, value*100)
	}

	explanation = b.String()
	return explanation
}

func entityCounts(data resume.ExtractedData) (counts map[resume.SectionType]int) {
	summary := 0
	if data.Summary != "" {
		summary = 1
	}

	counts = map[resume.SectionType]int{
		resume.SectionContact:        data.PersonalInfo.FieldCount(),
		resume.SectionSummary:        summary,
		resume.SectionExperience:     len(data.Experience),
		resume.SectionEducation:      len(data.Education),
		resume.SectionSkills:         data.Skills.Count(),
		resume.SectionProjects:       len(data.Projects),
		resume.SectionAchievements:   len(data.Achievements),
		resume.SectionCertifications: len(data.Certifications),
	}
	return counts
}

func saturate(n, k int) (v float64) {
	if k <= 0 {
		return v
	}
	v = math.Min(float64(n)/float64(k), 1)
	return v
}

func clamp(v float64) (clamped float64) {
	clamped = math.Max(0, math.Min(v, 1))
	return clamped
}

func round(v float64) (rounded float64) {
	rounded = math.Round(v*1000) / 1000
	return rounded
}
