package extract

import (
	"regexp"
	"strings"
)

//nolint:gochecknoglobals // Compiled once, read-only
var summaryHeading = regexp.MustCompile(`(?i)^(?:professional |career |executive )?(?:summary|profile|objective|about(?: me)?)\b\s*:?\s*`)

// Summary returns the body of a summary section as one paragraph, without its heading.
func (e *Extractor) Summary(text string) (summary string) {
	body := []string{}
	for i, line := range lines(text) {
		if i == 0 {
			line = strings.TrimSpace(summaryHeading.ReplaceAllString(line, ""))
		}
		if line != "" {
			body = append(body, line)
		}
	}
	summary = strings.Join(body, " ")
	return summary
}
