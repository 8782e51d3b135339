package patterns

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDateRange(t *testing.T) {
	tests := []struct {
		line  string
		start string
		end   string
	}{
		{line: "Jan 2020 - Present", start: "Jan 2020", end: "Present"},
		{line: "Software Engineer | Acme | Jun 2018 - Feb 2021", start: "Jun 2018", end: "Feb 2021"},
		{line: "2015 - 2019", start: "2015", end: "2019"},
		{line: "03/2020 to 05/2021", start: "03/2020", end: "05/2021"},
		{line: "September, 2019 until current", start: "September, 2019", end: "current"},
		{line: "2019-Present", start: "2019", end: "Present"},
		{line: "Sept 2021 till date", start: "Sept 2021", end: "date"},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			m := DateRange.FindStringSubmatch(tt.line)
			if assert.NotNil(t, m) {
				assert.Equal(t, tt.start, m[1])
				assert.Equal(t, tt.end, m[2])
			}
		})
	}

	for _, line := range []string{"Graduated 2019", "served 1000 - 2000 users", "May the best team win"} {
		assert.False(t, DateRange.MatchString(line), line)
	}
}

func TestIsBareDateRange(t *testing.T) {
	assert.True(t, IsBareDateRange("Jan 2020 - Present"))
	assert.True(t, IsBareDateRange("(2015 - 2019)"))
	assert.False(t, IsBareDateRange("Acme Corp, 2015 - 2019"))
	assert.False(t, IsBareDateRange("no dates here"))
}

func TestFindPhone(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{text: "(415) 555-0100", want: "(415) 555-0100"},
		{text: "Phone: +1 415 555 0100", want: "+1 415 555 0100"},
		{text: "call 415.555.0100 today", want: "415.555.0100"},
		{text: "+91 98765 43210", want: "+91 98765 43210"},
		{text: "2015 - 2019", want: ""},
		{text: "2019-2020", want: ""},
		{text: "10,000 users", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, FindPhone(tt.text))
		})
	}
}

func TestFindDegree(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{line: "Bachelor of Science, State University, 2019", want: "Bachelor of Science"},
		{line: "B.Tech in Computer Science", want: "B.Tech"},
		{line: "Master of Business Administration", want: "Master of Business Administration"},
		{line: "PhD, Physics", want: "PhD"},
		{line: "MBA - Finance", want: "MBA"},
		{line: "BS in Physics, MIT", want: "BS in Physics"},
		{line: "MSc Data Science", want: "MSc"},
		{line: "Scrum Master for two teams", want: ""},
		{line: "Advanced MS Excel user", want: ""},
		{line: "Certified AWS Solutions Architect, 2022", want: ""},
		{line: "Be the best", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.want, FindDegree(tt.line))
		})
	}
}

func TestQuantified(t *testing.T) {
	got := Quantified.FindAllString("Reduced latency by 30%, saved $5k, 3x throughput for 10,000 users", -1)
	assert.Equal(t, []string{"30%", "$5k", "3x", "10,000 users"}, got)
}

func TestBullets(t *testing.T) {
	assert.True(t, IsBullet("• Built a billing pipeline"))
	assert.True(t, IsBullet("- Reduced latency"))
	assert.False(t, IsBullet("Built a billing pipeline"))
	assert.Equal(t, "Built a billing pipeline", StripBullet("•   Built a billing pipeline"))
}

func TestGitHubProfileVersusRepository(t *testing.T) {
	assert.True(t, GitHubProfile.MatchString("github.com/janedoe"))
	assert.True(t, GitHubProfile.MatchString("GitHub: https://github.com/janedoe | LinkedIn"))
	assert.False(t, GitHubProfile.MatchString("github.com/janedoe/expense-tracker"))
	assert.True(t, Repository.MatchString("github.com/janedoe/expense-tracker"))
}
