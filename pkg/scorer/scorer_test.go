package scorer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikogura/resume-parser/pkg/resume"
)

func sampleData() (data resume.ExtractedData) {
	skills := resume.NewSkillCategories()
	skills.Languages = []string{"JavaScript"}
	skills.Frameworks = []string{"React"}
	skills.Databases = []string{"PostgreSQL"}

	data = resume.ExtractedData{
		PersonalInfo: resume.ContactInfo{Email: "jane.doe@example.com", Phone: "(415) 555-0100"},
		Experience: []resume.WorkExperience{{
			JobTitle:    "Software Engineer",
			CompanyName: "Acme Corp",
		}},
		Education:      []resume.Education{{Degree: "Bachelor of Science", Year: "2019"}},
		Skills:         skills,
		Projects:       []resume.Project{},
		Achievements:   []resume.Achievement{},
		Certifications: []string{},
	}
	return data
}

func sampleSections() (detected []resume.Section) {
	detected = []resume.Section{
		{Type: resume.SectionContact},
		{Type: resume.SectionExperience},
		{Type: resume.SectionEducation},
		{Type: resume.SectionSkills},
	}
	return detected
}

func TestWeightsSumToOne(t *testing.T) {
	total := WeightTextClarity + WeightStructure + WeightEntityCount + WeightSectionCompleteness
	assert.InDelta(t, 1.0, total, 1e-9)

	entityTotal := 0.0
	for _, w := range EntityWeights {
		entityTotal += w.Weight
		assert.Positive(t, w.Saturation)
	}
	assert.InDelta(t, 1.0, entityTotal, 1e-9)

	for _, sectionType := range resume.AllSectionTypes {
		assert.Contains(t, SectionSaturation, sectionType)
	}
}

func TestTextClarity(t *testing.T) {
	s := NewScorer()

	assert.InDelta(t, 0.0, s.TextClarity(""), 1e-9)
	assert.InDelta(t, 0.5, s.TextClarity(strings.Repeat("1", ClarityChars)), 1e-9)
	assert.InDelta(t, 1.0, s.TextClarity(strings.Repeat("word ", 200)), 1e-9)

	// Symbols and numbers are not words.
	assert.Less(t, s.TextClarity(strings.Repeat("#$% 123 ", 100)), s.TextClarity(strings.Repeat("real words ", 50)))
}

func TestStructureDetection(t *testing.T) {
	s := NewScorer()

	assert.InDelta(t, 1.0, s.StructureDetection(sampleSections()), 1e-9)
	assert.InDelta(t, 0.0, s.StructureDetection(nil), 1e-9)
	assert.InDelta(t, 0.25, s.StructureDetection([]resume.Section{
		{Type: resume.SectionSkills},
		{Type: resume.SectionSkills},
		{Type: resume.SectionProjects},
	}), 1e-9)
}

func TestEntityCount(t *testing.T) {
	s := NewScorer()

	// 0.35·(1/2) + 0.25·1 + 0.20·0 + 0.20·(3/10)
	assert.InDelta(t, 0.485, s.EntityCount(sampleData()), 1e-9)
	assert.InDelta(t, 0.0, s.EntityCount(resume.ExtractedData{Skills: resume.NewSkillCategories()}), 1e-9)
}

func TestSectionConfidence(t *testing.T) {
	got := NewScorer().SectionConfidence(sampleData())

	require.Len(t, got, len(resume.AllSectionTypes))
	assert.InDelta(t, 0.833, got[resume.SectionContact], 1e-9)
	assert.InDelta(t, 0.75, got[resume.SectionExperience], 1e-9)
	assert.InDelta(t, 1.0, got[resume.SectionEducation], 1e-9)
	assert.InDelta(t, 0.65, got[resume.SectionSkills], 1e-9)
	assert.InDelta(t, 0.0, got[resume.SectionProjects], 1e-9)
	assert.InDelta(t, 0.0, got[resume.SectionSummary], 1e-9)
}

func TestScore(t *testing.T) {
	text := strings.Repeat("Software engineer building billing pipelines with JavaScript and React. ", 12)
	got := NewScorer().Score(text, sampleSections(), sampleData())

	assert.Greater(t, got.Overall, 0.5)
	assert.LessOrEqual(t, got.Overall, 1.0)
	assert.InDelta(t, 1.0, got.StructureDetection, 1e-9)
	assert.InDelta(t, 0.485, got.EntityCount, 1e-9)
}

func TestScoreFloor(t *testing.T) {
	s := NewScorer()

	empty := s.Score("", nil, resume.ExtractedData{Skills: resume.NewSkillCategories()})
	assert.InDelta(t, MinimumOverall, empty.Overall, 1e-9)

	prose := s.Score(strings.Repeat("lorem ipsum dolor sit amet ", 4), nil, resume.ExtractedData{Skills: resume.NewSkillCategories()})
	assert.Greater(t, prose.Overall, MinimumOverall)
	assert.Less(t, prose.Overall, 0.3)
}

func TestScoreMonotonicInExperience(t *testing.T) {
	s := NewScorer()
	text := strings.Repeat("Reliable engineer. ", 20)

	data := sampleData()
	data.Experience = []resume.WorkExperience{}
	before := s.Score(text, sampleSections(), data)

	data.Experience = sampleData().Experience
	after := s.Score(text, sampleSections(), data)

	assert.GreaterOrEqual(t, after.Overall, before.Overall)
}

func TestWarnings(t *testing.T) {
	s := NewScorer()

	all := s.Warnings(resume.Confidence{Overall: 0.2, TextClarity: 0.1}, resume.ExtractedData{Skills: resume.NewSkillCategories()})
	require.Len(t, all, 6)
	assert.Equal(t, "Low overall confidence (20%): review the extracted data manually", all[0])
	assert.True(t, strings.HasPrefix(all[1], "Poor text quality"))
	assert.Equal(t, "No work experience detected", all[2])
	assert.Equal(t, "Fewer than 3 skills detected", all[3])
	assert.Equal(t, "Could not detect candidate name", all[4])
	assert.Equal(t, "Could not detect email address", all[5])

	data := sampleData()
	data.PersonalInfo.Name = "Jane Doe"
	none := s.Warnings(resume.Confidence{Overall: 0.8, TextClarity: 0.9}, data)
	assert.Empty(t, none)
	assert.NotNil(t, none)
}

func TestExplain(t *testing.T) {
	s := NewScorer()
	conf := s.Score(strings.Repeat("Reliable engineer. ", 20), sampleSections(), sampleData())

	explanation := s.Explain(conf)

	assert.True(t, strings.HasPrefix(explanation, "Overall confidence: "))
	assert.Contains(t, explanation, "Structure detection: 100%")
	assert.Contains(t, explanation, "contact")
	assert.Less(t, strings.Index(explanation, "contact"), strings.Index(explanation, "certifications"))
}
