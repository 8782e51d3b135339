package normalize

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// MinViableLength is the shortest normalized text worth parsing.
const MinViableLength = 50

// Mis-decoded UTF-8 punctuation, typically UTF-8 bytes read as Windows-1252.
// Longer keys come first so "â€" alone is only a fallback.
//
//nolint:gochecknoglobals // Read-only replacement table
var mojibake = strings.NewReplacer(
	"â€™", "'",
	"â€˜", "'",
	"â€œ", `"`,
	"â€¢", "•",
	"â€“", "-",
	"â€”", "-",
	"â€¦", "...",
	"â€", `"`,
	"Â\u00a0", " ",
	"Ã©", "é",
	"Ã¨", "è",
	"Ã¶", "ö",
	"Ã¼", "ü",
)

//nolint:gochecknoglobals // Read-only replacement table
var glyphs = strings.NewReplacer(
	// quotes
	"‘", "'",
	"’", "'",
	"‚", "'",
	"‛", "'",
	"′", "'",
	"“", `"`,
	"”", `"`,
	"„", `"`,
	// bullets
	"●", "•",
	"▪", "•",
	"■", "•",
	"◦", "•",
	"‣", "•",
	"⁃", "•",
	"∙", "•",
	"►", "•",
	"➢", "•",
	"\uf0b7", "•",
	"\uf0a7", "•",
	// dashes
	"‐", "-",
	"‑", "-",
	"‒", "-",
	"–", "-",
	"—", "-",
	"―", "-",
	"−", "-",
)

//nolint:gochecknoglobals // Read-only replacement table
var lineBreaks = strings.NewReplacer(
	"\r\n", "\n",
	"\r", "\n",
	"\f", "\n",
	"\v", "\n",
	"\u2028", "\n",
	"\u2029", "\n",
)

//nolint:gochecknoglobals // Compiled once
var (
	blankRuns   = regexp.MustCompile(`\n{3,}`)
	gluedBullet = regexp.MustCompile(`•([^\s•])`)
)

// Mixed-case product names that must never be split at case boundaries.
//
//nolint:gochecknoglobals // Read-only word list
var builtinProtected = []string{
	"JavaScript", "TypeScript", "CoffeeScript", "ActionScript",
	"TensorFlow", "CloudFormation", "CloudWatch", "CloudFront",
	"ElasticSearch", "OpenShift", "OpenStack", "PowerShell",
	"PowerPoint", "SharePoint", "WordPress", "LeetCode",
	"HackerRank", "HackerEarth", "CodeChef", "CodeForces",
	"TeamCity", "SolidWorks", "LibreOffice", "MailChimp",
	"QuickBooks", "SalesForce", "NetSuite", "PagerDuty",
	"SonarQube", "SourceTree", "StackOverflow", "LinkedIn",
	"PlayStation", "ServiceNow", "WebStorm", "PyCharm",
	"PhpStorm", "DataGrip", "InfluxDB", "CockroachDB",
	"ClickHouse", "DynamoDB", "MongoDB", "CouchDB",
	"FireBase", "SageMaker", "BitBucket", "KeyCloak",
}

//nolint:gochecknoglobals // Built once, read-only
var defaultNormalizer = New()

// Normalizer turns raw extracted text into canonical text.
// It is safe for concurrent use.
type Normalizer struct {
	protected map[string]struct{}
}

// New creates a normalizer that, in addition to the built-in list, never splits the given terms.
func New(protected ...string) (n *Normalizer) {
	n = &Normalizer{
		protected: make(map[string]struct{}, len(builtinProtected)+len(protected)),
	}

	for _, term := range builtinProtected {
		n.protected[strings.ToLower(term)] = struct{}{}
	}
	for _, term := range protected {
		n.protected[strings.ToLower(term)] = struct{}{}
	}

	return n
}

// Normalize cleans raw text with the default normalizer.
func Normalize(raw string) (text string) {
	text = defaultNormalizer.Normalize(raw)
	return text
}

// IsViable reports whether normalized text is long enough to parse.
func IsViable(text string) (viable bool) {
	viable = utf8.RuneCountInString(text) >= MinViableLength
	return viable
}

// Normalize cleans raw text. The result is a fixed point: normalizing it again changes nothing.
func (n *Normalizer) Normalize(raw string) (text string) {
	text = stripControl(raw)
	text = fixEncoding(text)
	text = lineBreaks.Replace(text)
	text = collapseWhitespace(text)
	text = n.splitGluedWords(text)
	return text
}

func stripControl(raw string) (text string) {
	raw = strings.ToValidUTF8(raw, "")

	var b strings.Builder
	b.Grow(len(raw))

	for _, r := range raw {
		switch {
		case r == '\n' || r == '\t' || r == '\r' || r == '\f' || r == '\v':
			b.WriteRune(r)
		case unicode.IsControl(r):
			continue
		case r == '\u200b' || r == '\u200c' || r == '\u200d' || r == '\u2060' || r == '\ufeff' || r == '\u00ad':
			continue
		default:
			b.WriteRune(r)
		}
	}

	text = b.String()
	return text
}

// fixEncoding repairs mojibake on composed text, before NFKC rewrites its "™" into "TM".
func fixEncoding(text string) (fixed string) {
	fixed = norm.NFC.String(text)
	fixed = mojibake.Replace(fixed)
	fixed = norm.NFKC.String(fixed)
	fixed = glyphs.Replace(fixed)
	return fixed
}

func collapseWhitespace(text string) (collapsed string) {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		line = gluedBullet.ReplaceAllString(line, "• $1")
		lines[i] = line
	}

	collapsed = strings.Join(lines, "\n")
	collapsed = blankRuns.ReplaceAllString(collapsed, "\n\n")
	collapsed = strings.TrimSpace(collapsed)

	return collapsed
}

func (n *Normalizer) splitGluedWords(text string) (split string) {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		tokens := strings.Split(line, " ")
		for j, token := range tokens {
			tokens[j] = n.splitToken(token)
		}
		lines[i] = strings.Join(tokens, " ")
	}

	split = strings.Join(lines, "\n")
	return split
}

// splitToken inserts spaces where extraction glued two words together.
// Emails, URLs, dotted names and protected terms pass through untouched.
func (n *Normalizer) splitToken(token string) (split string) {
	if token == "" || strings.ContainsAny(token, `@/.:\_#+`) {
		return token
	}

	bare := strings.TrimFunc(token, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	if _, ok := n.protected[strings.ToLower(bare)]; ok {
		return token
	}

	runes := []rune(token)

	var b strings.Builder
	b.Grow(len(token) + 4)

	for i, r := range runes {
		if i > 0 && isGlueBoundary(runes, i) {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}

	split = b.String()
	return split
}

// isGlueBoundary reports whether a space belongs before runes[i].
// A lower-to-upper boundary needs 3+ lowercase letters before and a capitalized word of 3+ letters after.
// A digit-to-letter boundary needs 3+ letters after, which keeps "3rd", "5k" and "10x" intact.
func isGlueBoundary(runes []rune, i int) (boundary bool) {
	if unicode.IsUpper(runes[i]) && lowerRunBefore(runes, i) >= 3 && lowerRunFrom(runes, i+1) >= 2 {
		boundary = true
		return boundary
	}

	if unicode.IsDigit(runes[i-1]) && unicode.IsLetter(runes[i]) && letterRunFrom(runes, i) >= 3 {
		boundary = true
		return boundary
	}

	return boundary
}

func lowerRunBefore(runes []rune, i int) (count int) {
	for j := i - 1; j >= 0 && unicode.IsLower(runes[j]); j-- {
		count++
	}
	return count
}

func lowerRunFrom(runes []rune, i int) (count int) {
	for j := i; j < len(runes) && unicode.IsLower(runes[j]); j++ {
		count++
	}
	return count
}

func letterRunFrom(runes []rune, i int) (count int) {
	for j := i; j < len(runes) && unicode.IsLetter(runes[j]); j++ {
		count++
	}
	return count
}
