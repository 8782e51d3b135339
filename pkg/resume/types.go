package resume

// SectionType labels a contiguous run of résumé lines.
type SectionType string

const (
	SectionContact        SectionType = "contact"
	SectionSummary        SectionType = "summary"
	SectionExperience     SectionType = "experience"
	SectionEducation      SectionType = "education"
	SectionSkills         SectionType = "skills"
	SectionProjects       SectionType = "projects"
	SectionAchievements   SectionType = "achievements"
	SectionCertifications SectionType = "certifications"
)

// AllSectionTypes lists every section type in reporting order.
//
//nolint:gochecknoglobals // Read-only enumeration
var AllSectionTypes = []SectionType{
	SectionContact,
	SectionSummary,
	SectionExperience,
	SectionEducation,
	SectionSkills,
	SectionProjects,
	SectionAchievements,
	SectionCertifications,
}

// Section is a labeled span of normalized text.
type Section struct {
	Type       SectionType `json:"type"`
	Content    string      `json:"content"`
	Confidence float64     `json:"confidence"`
	StartIndex int         `json:"startIndex"`
	EndIndex   int         `json:"endIndex"`
}

// ContactInfo holds independently extracted contact fields.
type ContactInfo struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	GitHub   string `json:"github,omitempty"`
	Location string `json:"location,omitempty"`
}

// FieldCount returns how many contact fields were found.
func (c ContactInfo) FieldCount() (count int) {
	for _, v := range []string{c.Name, c.Email, c.Phone, c.LinkedIn, c.GitHub, c.Location} {
		if v != "" {
			count++
		}
	}
	return count
}

// SkillCategories groups canonical skill names. A skill appears in at most one category.
type SkillCategories struct {
	Technical  []string `json:"technical"`
	SoftSkills []string `json:"softSkills"`
	Tools      []string `json:"tools"`
	Languages  []string `json:"languages"`
	Frameworks []string `json:"frameworks"`
	Databases  []string `json:"databases"`
}

// NewSkillCategories returns categories with empty, non-nil lists.
func NewSkillCategories() (skills SkillCategories) {
	skills = SkillCategories{
		Technical:  []string{},
		SoftSkills: []string{},
		Tools:      []string{},
		Languages:  []string{},
		Frameworks: []string{},
		Databases:  []string{},
	}
	return skills
}

// Count returns the total number of skills across categories.
func (s SkillCategories) Count() (count int) {
	count = len(s.Technical) + len(s.SoftSkills) + len(s.Tools) +
		len(s.Languages) + len(s.Frameworks) + len(s.Databases)
	return count
}

// All returns every skill, languages first, in the category priority order.
func (s SkillCategories) All() (all []string) {
	all = make([]string, 0, s.Count())
	all = append(all, s.Languages...)
	all = append(all, s.Frameworks...)
	all = append(all, s.Databases...)
	all = append(all, s.Tools...)
	all = append(all, s.SoftSkills...)
	all = append(all, s.Technical...)
	return all
}

// WorkExperience is one experience block bounded by date-range lines.
type WorkExperience struct {
	JobTitle         string   `json:"jobTitle"`
	CompanyName      string   `json:"companyName"`
	StartDate        string   `json:"startDate"`
	EndDate          string   `json:"endDate"`
	Duration         string   `json:"duration"`
	Responsibilities []string `json:"responsibilities"`
	ImpactKeywords   []string `json:"impactKeywords"`
	Technologies     []string `json:"technologies"`
}

// Education is one degree-pattern match with whatever context was found nearby.
type Education struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Year        string `json:"year"`
	CGPA        string `json:"cgpa"`
}

// Project is a project entry and the lines that followed its title.
type Project struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	TechStack   []string `json:"techStack"`
	Outcomes    []string `json:"outcomes"`
	Metrics     []string `json:"metrics"`
	Link        string   `json:"link,omitempty"`
}

// AchievementCategory classifies an achievement by keyword family.
type AchievementCategory string

const (
	AchievementAcademic      AchievementCategory = "academic"
	AchievementProfessional  AchievementCategory = "professional"
	AchievementPersonal      AchievementCategory = "personal"
	AchievementCertification AchievementCategory = "certification"
)

// Achievement is a line carrying an award, recognition or quantified improvement.
type Achievement struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Category    AchievementCategory `json:"category"`
	Date        string              `json:"date,omitempty"`
}

// ExtractedData is everything the extractors produced.
type ExtractedData struct {
	PersonalInfo   ContactInfo      `json:"personalInfo"`
	Summary        string           `json:"summary"`
	Experience     []WorkExperience `json:"experience"`
	Education      []Education      `json:"education"`
	Skills         SkillCategories  `json:"skills"`
	Projects       []Project        `json:"projects"`
	Achievements   []Achievement    `json:"achievements"`
	Certifications []string         `json:"certifications"`
}

// Confidence is a heuristic 0..1 summary of how much structure was found.
type Confidence struct {
	Overall            float64                 `json:"overall"`
	Sections           map[SectionType]float64 `json:"sections"`
	TextClarity        float64                 `json:"textClarity"`
	StructureDetection float64                 `json:"structureDetection"`
	EntityCount        float64                 `json:"entityCount"`
}

// ParsedResume is the root aggregate of a successful parse.
type ParsedResume struct {
	RawText       string        `json:"rawText"`
	Sections      []Section     `json:"sections"`
	ExtractedData ExtractedData `json:"extractedData"`
	Confidence    Confidence    `json:"confidence"`
	Warnings      []string      `json:"warnings"`
}

// Result wraps a parse outcome. Callers must check Success before reading Resume.
type Result struct {
	Success bool          `json:"success"`
	Error   string        `json:"error,omitempty"`
	Resume  *ParsedResume `json:"data,omitempty"`
}

// Failed builds a failure result carrying message.
func Failed(message string) (result Result) {
	result = Result{
		Success: false,
		Error:   message,
	}
	return result
}

// Succeeded wraps a parsed résumé in a success result.
func Succeeded(parsed *ParsedResume) (result Result) {
	result = Result{
		Success: true,
		Resume:  parsed,
	}
	return result
}
