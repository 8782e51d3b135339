// Package patterns holds the regular expressions shared by section detection and entity extraction.
package patterns

import (
	"regexp"
	"strings"
	"unicode"
)

const (
	month   = `(?:jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|june?|july?|aug(?:ust)?|sep(?:t(?:ember)?)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)\.?`
	year    = `(?:19|20)\d{2}`
	point   = `(?:` + month + `\s*'?,?\s*` + year + `|\d{1,2}/` + year + `|` + year + `)`
	present = `(?:present|current|now|today|ongoing|date)`
)

//nolint:gochecknoglobals // Compiled once, read-only
var (
	// DateRange captures start (1) and end (2) of "Jan 2020 - Present", "2015 - 2019", "03/2020 to 05/2021".
	DateRange = regexp.MustCompile(`(?i)\b(` + point + `)\s*(?:-|to|until|till)\s*(` + point + `|` + present + `)\b`)

	// Year matches a plausible four-digit year.
	Year = regexp.MustCompile(`\b` + year + `\b`)

	// Degree captures a degree phrase in group 1. Abbreviations need their dots unless they are unambiguous.
	Degree = regexp.MustCompile(`(?i)(?:^|[^a-z])(` +
		`bachelor(?:'?s)?(?:\s+(?:of|in)\s+[a-z][a-z &]*[a-z])?` +
		`|master(?:'?s)?\s+(?:of|in)\s+[a-z][a-z &]*[a-z]` +
		`|(?:doctor of philosophy|doctorate)(?:\s+in\s+[a-z][a-z &]*[a-z])?` +
		`|ph\.?\s?d\.?` +
		`|b\.\s?tech|m\.\s?tech|btech|mtech` +
		`|b\.\s?sc\.?|m\.\s?sc\.?|bsc|msc` +
		`|b\.\s?e\.|m\.\s?e\.|b\.\s?s\.|m\.\s?s\.|b\.\s?a\.|m\.\s?a\.` +
		`|b\.\s?com|m\.\s?com` +
		`|associate(?:'?s)?\s+(?:degree|of|in)(?:\s+[a-z][a-z &]*[a-z])?` +
		`|high school diploma|diploma(?:\s+in\s+[a-z][a-z &]*[a-z])?` +
		`|certificate\s+(?:in|of)\s+[a-z][a-z &]*[a-z]` +
		`|mba|bca|mca|bba` +
		`)(?:[^a-z]|$)`)

	// ShortDegree catches bare upper-case forms such as "BS in Physics" or "MS, Stanford".
	ShortDegree = regexp.MustCompile(`(?:^|[^A-Za-z])((?:BS|MS|BA|BE)(?:\s+(?:in|of)\s+[A-Za-z][A-Za-z &]*[A-Za-z])?)(?:,|$|\s+(?:in|of)\s)`)

	// Institution matches words naming a place of study.
	Institution = regexp.MustCompile(`(?i)\b(?:university|college|institute|school|academy|polytechnic|iit|nit)\b`)

	// Email matches local@domain.tld.
	Email = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)

	// phoneCandidate matches digit groups; FindPhone checks the digit count.
	phoneCandidate = regexp.MustCompile(`(?:\+\d{1,3}[\s.-]?)?\(?\d{2,5}\)?(?:[\s.-]?\d{2,5}){1,3}`)

	// LinkedIn matches a LinkedIn profile URL.
	LinkedIn = regexp.MustCompile(`(?i)(?:https?://)?(?:[a-z]{2,3}\.)?linkedin\.com/(?:in|pub)/[A-Za-z0-9_%-]+/?`)

	// GitHubProfile matches a GitHub user URL that is not a repository link.
	GitHubProfile = regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?github\.com/[A-Za-z0-9-]+/?(?:$|[\s|,;)])`)

	// Repository matches a GitHub or GitLab repository URL.
	Repository = regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?(?:github|gitlab)\.com/[A-Za-z0-9_.-]+/[A-Za-z0-9_.-]+`)

	// URL matches any http(s) or www link.
	URL = regexp.MustCompile(`(?i)(?:https?://|www\.)[^\s|,;)]+`)

	// Quantified matches measurable claims: "30%", "$5k", "3x", "10,000 users".
	Quantified = regexp.MustCompile(`(?i)\d+(?:\.\d+)?\s?%|\$\s?\d[\d,.]*\s?[kmb]?\b|\b\d+(?:\.\d+)?x\b|\b\d[\d,]*\+?\s+(?:users|customers|clients|downloads|requests|visitors|stars|members|students|transactions|employees|engineers)\b`)

	// JobTitle matches role nouns found on experience header lines.
	JobTitle = regexp.MustCompile(`(?i)\b(?:engineer|developer|programmer|architect|manager|lead|director|analyst|consultant|designer|intern|internship|scientist|specialist|administrator|coordinator|officer|executive|head of|vp|president|founder|co-founder|cto|ceo|technician|researcher|assistant|trainee|freelancer?)\b`)

	bullet = regexp.MustCompile(`^(?:•|-|\*|>)\s*`)
)

// FindPhone returns the first phone-like digit group with 10 to 15 digits.
func FindPhone(s string) (phone string) {
	for _, candidate := range phoneCandidate.FindAllString(s, -1) {
		digits := 0
		for _, r := range candidate {
			if unicode.IsDigit(r) {
				digits++
			}
		}
		if digits >= 10 && digits <= 15 {
			phone = strings.TrimSpace(candidate)
			return phone
		}
	}
	return phone
}

// IsBullet reports whether a line starts with a bullet glyph.
func IsBullet(line string) (ok bool) {
	ok = bullet.MatchString(line)
	return ok
}

// StripBullet removes a leading bullet glyph and the space after it.
func StripBullet(line string) (stripped string) {
	stripped = strings.TrimSpace(bullet.ReplaceAllString(line, ""))
	return stripped
}

// IsBareDateRange reports whether a line holds a date range and nothing else of substance.
func IsBareDateRange(line string) (ok bool) {
	loc := DateRange.FindStringIndex(line)
	if loc == nil {
		return ok
	}

	rest := line[:loc[0]] + line[loc[1]:]
	rest = strings.TrimFunc(rest, func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsPunct(r)
	})
	ok = rest == ""
	return ok
}

// FindDegree returns the degree phrase on a line, if any.
func FindDegree(line string) (degree string) {
	if m := Degree.FindStringSubmatch(line); m != nil {
		degree = strings.TrimSpace(m[1])
		return degree
	}
	if m := ShortDegree.FindStringSubmatch(line); m != nil {
		degree = strings.TrimSpace(m[1])
		return degree
	}
	return degree
}

// WordCount counts whitespace-separated words.
func WordCount(line string) (n int) {
	n = len(strings.Fields(line))
	return n
}
