package renderer

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/nikogura/resume-parser/pkg/resume"
)

type skillGroup struct {
	key    string
	label  string
	skills []string
}

// RenderMarkdown summarizes a result for reading. Empty fields and sections are left out.
func RenderMarkdown(result resume.Result, source string) (content string) {
	var sb strings.Builder
	// Casers keep state, so each render gets its own.
	title := cases.Title(language.English)

	if !result.Success || result.Resume == nil {
		sb.WriteString("# Parse failed\n\n")
		if source != "" {
			fmt.Fprintf(&sb, "Source: %s\n\n", source)
		}
		fmt.Fprintf(&sb, "%s\n", result.Error)
		content = sb.String()
		return content
	}

	parsed := result.Resume
	data := parsed.ExtractedData

	name := data.PersonalInfo.Name
	if name == "" {
		name = "Unnamed candidate"
	}
	fmt.Fprintf(&sb, "# %s\n\n", name)
	if source != "" {
		fmt.Fprintf(&sb, "Source: %s\n\n", source)
	}
	fmt.Fprintf(&sb, "Overall confidence: %.0f%%\n", parsed.Confidence.Overall*100)

	heading := func(sectionType resume.SectionType) {
		fmt.Fprintf(&sb, "\n## %s\n\n", title.String(string(sectionType)))
	}

	contact := [][2]string{
		{"Email", data.PersonalInfo.Email},
		{"Phone", data.PersonalInfo.Phone},
		{"LinkedIn", data.PersonalInfo.LinkedIn},
		{"GitHub", data.PersonalInfo.GitHub},
		{"Location", data.PersonalInfo.Location},
	}
	if data.PersonalInfo.FieldCount() > 0 {
		heading(resume.SectionContact)
		for _, field := range contact {
			if field[1] != "" {
				fmt.Fprintf(&sb, "- %s: %s\n", field[0], field[1])
			}
		}
	}

	if data.Summary != "" {
		heading(resume.SectionSummary)
		fmt.Fprintf(&sb, "%s\n", data.Summary)
	}

	if len(data.Experience) > 0 {
		heading(resume.SectionExperience)
		for i, job := range data.Experience {
			if i > 0 {
				sb.WriteString("\n")
			}
			writeExperience(&sb, job)
		}
	}

	if len(data.Education) > 0 {
		heading(resume.SectionEducation)
		for _, edu := range data.Education {
			fmt.Fprintf(&sb, "- %s\n", joinNonEmpty(", ", edu.Degree, edu.Institution, edu.Year, gpaLabel(edu.CGPA)))
		}
	}

	if data.Skills.Count() > 0 {
		heading(resume.SectionSkills)
		for _, group := range skillRows(data.Skills) {
			if len(group.skills) > 0 {
				fmt.Fprintf(&sb, "- %s: %s\n", title.String(group.label), strings.Join(group.skills, ", "))
			}
		}
	}

	if len(data.Projects) > 0 {
		heading(resume.SectionProjects)
		for i, project := range data.Projects {
			if i > 0 {
				sb.WriteString("\n")
			}
			writeProject(&sb, project)
		}
	}

	if len(data.Achievements) > 0 {
		heading(resume.SectionAchievements)
		for _, achievement := range data.Achievements {
			fmt.Fprintf(&sb, "- %s (%s)\n", achievement.Title,
				joinNonEmpty(", ", title.String(string(achievement.Category)), achievement.Date))
		}
	}

	if len(data.Certifications) > 0 {
		heading(resume.SectionCertifications)
		for _, cert := range data.Certifications {
			fmt.Fprintf(&sb, "- %s\n", cert)
		}
	}

	if len(parsed.Warnings) > 0 {
		sb.WriteString("\n## Warnings\n\n")
		for _, warning := range parsed.Warnings {
			fmt.Fprintf(&sb, "- %s\n", warning)
		}
	}

	content = sb.String()
	return content
}

func writeExperience(sb *strings.Builder, job resume.WorkExperience) {
	header := joinNonEmpty(", ", job.JobTitle, job.CompanyName)
	if header == "" {
		header = "Untitled role"
	}
	if job.Duration != "" {
		header = fmt.Sprintf("%s (%s)", header, job.Duration)
	}
	fmt.Fprintf(sb, "### %s\n\n", header)

	for _, line := range job.Responsibilities {
		fmt.Fprintf(sb, "- %s\n", line)
	}
	if len(job.Technologies) > 0 {
		fmt.Fprintf(sb, "\nTechnologies: %s\n", strings.Join(job.Technologies, ", "))
	}
}

func writeProject(sb *strings.Builder, project resume.Project) {
	fmt.Fprintf(sb, "### %s\n\n", project.Name)

	if project.Description != "" {
		fmt.Fprintf(sb, "%s\n\n", project.Description)
	}
	if len(project.TechStack) > 0 {
		fmt.Fprintf(sb, "- Tech stack: %s\n", strings.Join(project.TechStack, ", "))
	}
	for _, outcome := range project.Outcomes {
		fmt.Fprintf(sb, "- %s\n", outcome)
	}
	if project.Link != "" {
		fmt.Fprintf(sb, "- Link: %s\n", project.Link)
	}
}

func gpaLabel(cgpa string) (label string) {
	if cgpa != "" {
		label = "GPA " + cgpa
	}
	return label
}

func joinNonEmpty(sep string, values ...string) (joined string) {
	kept := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			kept = append(kept, v)
		}
	}
	joined = strings.Join(kept, sep)
	return joined
}
