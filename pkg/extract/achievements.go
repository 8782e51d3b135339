package extract

import (
	"regexp"
	"strings"

	"github.com/nikogura/resume-parser/pkg/patterns"
	"github.com/nikogura/resume-parser/pkg/resume"
)

//nolint:gochecknoglobals // Compiled once, read-only
var (
	achievementVerb  = regexp.MustCompile(`(?i)\b(?:won|achieved|received|awarded|certified|recogni[sz]ed|ranked|secured|winner|honou?red)\b`)
	improvementVerb  = regexp.MustCompile(`(?i)\b(?:increased|reduced|improved|saved|grew|boosted|cut|accelerated|raised|doubled|tripled)\b`)
	trailingYear     = regexp.MustCompile(`[\s,(]+(?:19|20)\d{2}\)?$`)
	achievementTitle = regexp.MustCompile(`\s+-\s+|:\s+`)
)

// achievementFamilies are checked in order; the first family with a matching keyword names the category.
//
//nolint:gochecknoglobals // Read-only keyword table
var achievementFamilies = []struct {
	category resume.AchievementCategory
	keywords *regexp.Regexp
}{
	{resume.AchievementCertification, regexp.MustCompile(`(?i)certif|\b(?:aws|azure|pmp|scrum|google cloud|course)\b`)},
	{resume.AchievementAcademic, regexp.MustCompile(`(?i)\b(?:university|c?gpa|dean'?s?|scholarship|academic|college|school|olympiad|rank(?:ed)?|class)\b`)},
	{resume.AchievementProfessional, regexp.MustCompile(`(?i)\b(?:company|team|client|customers?|employee|work|project|revenue|sales|performance|promoted|promotion)\b`)},
}

// Achievements collects lines announcing an award or a quantified improvement, deduplicated by title.
func (e *Extractor) Achievements(text string) (achievements []resume.Achievement) {
	achievements = []resume.Achievement{}
	seen := make(map[string]bool)

	for _, line := range lines(text) {
		line = patterns.StripBullet(line)
		if !isAchievement(line) {
			continue
		}

		title := achievementTitle.Split(line, 2)[0]
		title = strings.TrimSpace(trailingYear.ReplaceAllString(title, ""))
		key := strings.ToLower(title)
		if title == "" || seen[key] {
			continue
		}
		seen[key] = true

		achievements = append(achievements, resume.Achievement{
			Title:       title,
			Description: line,
			Category:    categorize(line),
			Date:        patterns.Year.FindString(line),
		})
	}

	return achievements
}

func isAchievement(line string) (ok bool) {
	ok = achievementVerb.MatchString(line) ||
		(patterns.Quantified.MatchString(line) && improvementVerb.MatchString(line))
	return ok
}

func categorize(line string) (category resume.AchievementCategory) {
	for _, family := range achievementFamilies {
		if family.keywords.MatchString(line) {
			category = family.category
			return category
		}
	}
	category = resume.AchievementPersonal
	return category
}
