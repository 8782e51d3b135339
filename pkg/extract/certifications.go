package extract

import (
	"regexp"
	"strings"

	"github.com/nikogura/resume-parser/pkg/patterns"
)

const maxCertificationLength = 150

//nolint:gochecknoglobals // Compiled once, read-only
var (
	certWord     = regexp.MustCompile(`(?i)\b(?:certified|certificate|certification)\b`)
	certAcronym  = regexp.MustCompile(`\b(?:PMP|CKA|CKAD|CKS|CISSP|CCNA|CCNP|CISA|CISM|ITIL|TOGAF|PSM|CSM|CompTIA|Six Sigma)\b`)
	certProvider = regexp.MustCompile(`(?i)\b(?:aws|azure|google cloud|gcp|scrum|oracle|cisco|microsoft|salesforce|hashicorp)\b.*\b(?:associate|professional|practitioner|specialty|specialist|expert|master)\b`)
	certHeading  = regexp.MustCompile(`(?i)^(?:licenses?\s*(?:&|and)\s*)?certifications?(?:\s*(?:&|and)\s*licenses?)?\s*(?::\s*|$)`)
)

// Certifications sweeps text for certification lines. A labelled line such as "Certifications: CKA, PMP"
// yields one entry per listed item.
func (e *Extractor) Certifications(text string) (certifications []string) {
	certifications = []string{}
	seen := make(map[string]bool)

	for _, line := range lines(text) {
		line = patterns.StripBullet(line)

		items := []string{line}
		if loc := certHeading.FindStringIndex(line); loc != nil {
			rest := strings.TrimSpace(line[loc[1]:])
			if rest == "" {
				continue
			}
			items = strings.Split(rest, ",")
			for i := range items {
				items[i] = strings.TrimSpace(items[i])
			}
		}

		for _, item := range items {
			if !isCertification(item) {
				continue
			}
			certifications = dedupeFold(certifications, seen, truncate(item, maxCertificationLength))
		}
	}

	return certifications
}

func isCertification(line string) (ok bool) {
	if line == "" || patterns.DateRange.MatchString(line) {
		return ok
	}
	ok = certWord.MatchString(line) || certAcronym.MatchString(line) || certProvider.MatchString(line)
	return ok
}
