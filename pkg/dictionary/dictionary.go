package dictionary

import (
	_ "embed"
	"os"
	"regexp"
	"sort"
	"strings"
	"sync"
	"unicode"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

//go:embed skills.yaml
var embeddedSkills []byte

// Category names a skill family.
type Category string

const (
	CategoryLanguages  Category = "languages"
	CategoryFrameworks Category = "frameworks"
	CategoryDatabases  Category = "databases"
	CategoryTools      Category = "tools"
	CategorySoftSkills Category = "softSkills"
	CategoryTechnical  Category = "technical"
)

// Priority is the order in which categories claim a skill. Technical is also the fallback.
//
//nolint:gochecknoglobals // Read-only enumeration
var Priority = []Category{
	CategoryLanguages,
	CategoryFrameworks,
	CategoryDatabases,
	CategoryTools,
	CategorySoftSkills,
	CategoryTechnical,
}

// Data is the YAML shape of a skill dictionary.
type Data struct {
	Version       int                   `yaml:"version"`
	Categories    map[Category][]string `yaml:"categories"`
	Abbreviations map[string]string     `yaml:"abbreviations"`
}

// Match is a canonical skill and the category that owns it.
type Match struct {
	Skill    string
	Category Category
}

type entry struct {
	canonical string
	category  Category
	variants  []string
	patterns  []*regexp.Regexp
	// Two-letter alphabetic forms such as "Go" or "JS" only match in these exact spellings.
	shortForms    []string
	shortPatterns []*regexp.Regexp
}

// Dictionary is an immutable, categorized skill lookup. It is safe for concurrent use.
type Dictionary struct {
	version    int
	entries    []*entry
	byTerm     map[string]*entry
	byCategory map[Category][]string
}

//nolint:gochecknoglobals // Built once per process, read-only afterwards
var defaultDictionary = sync.OnceValue(func() (d *Dictionary) {
	var err error
	d, err = Parse(embeddedSkills)
	if err != nil {
		panic(errors.Wrap(err, "embedded skill dictionary is invalid"))
	}
	return d
})

// Default returns the dictionary built from the embedded skill data.
func Default() (d *Dictionary) {
	d = defaultDictionary()
	return d
}

// Parse builds a dictionary from YAML bytes.
func Parse(raw []byte) (d *Dictionary, err error) {
	var data Data
	err = yaml.Unmarshal(raw, &data)
	if err != nil {
		err = errors.Wrap(err, "failed to parse skill dictionary YAML")
		return d, err
	}

	d, err = New(data)
	return d, err
}

// Load builds a dictionary from the embedded data extended by the YAML file at path.
// Skills in the file are appended to their categories; abbreviations override.
func Load(path string) (d *Dictionary, err error) {
	var raw []byte
	raw, err = os.ReadFile(path)
	if err != nil {
		err = errors.Wrapf(err, "failed to read skill dictionary: %s", path)
		return d, err
	}

	var base, extension Data
	err = yaml.Unmarshal(embeddedSkills, &base)
	if err != nil {
		err = errors.Wrap(err, "failed to parse embedded skill dictionary")
		return d, err
	}

	err = yaml.Unmarshal(raw, &extension)
	if err != nil {
		err = errors.Wrapf(err, "failed to parse skill dictionary: %s", path)
		return d, err
	}

	for category, skills := range extension.Categories {
		base.Categories[category] = append(base.Categories[category], skills...)
	}
	for abbreviation, canonical := range extension.Abbreviations {
		base.Abbreviations[abbreviation] = canonical
	}
	if extension.Version > base.Version {
		base.Version = extension.Version
	}

	d, err = New(base)
	if err != nil {
		err = errors.Wrapf(err, "invalid skill dictionary: %s", path)
		return d, err
	}

	return d, err
}

// New compiles dictionary data. Unknown categories and abbreviations pointing at unknown skills are errors.
func New(data Data) (d *Dictionary, err error) {
	known := make(map[Category]bool, len(Priority))
	for _, category := range Priority {
		known[category] = true
	}
	for category := range data.Categories {
		if !known[category] {
			err = errors.Errorf("unknown skill category: %s", category)
			return d, err
		}
	}

	d = &Dictionary{
		version:    data.Version,
		byTerm:     make(map[string]*entry),
		byCategory: make(map[Category][]string, len(Priority)),
	}

	byCanonical := make(map[string]*entry)
	for _, category := range Priority {
		d.byCategory[category] = []string{}
		for _, skill := range data.Categories[category] {
			skill = strings.TrimSpace(skill)
			key := strings.ToLower(skill)
			if skill == "" || byCanonical[key] != nil {
				continue
			}

			e := &entry{canonical: skill, category: category}
			byCanonical[key] = e
			d.entries = append(d.entries, e)
			d.byCategory[category] = append(d.byCategory[category], skill)
		}
	}

	// Abbreviations are attached in sorted order so variant lists are stable.
	abbreviations := make([]string, 0, len(data.Abbreviations))
	for abbreviation := range data.Abbreviations {
		abbreviations = append(abbreviations, abbreviation)
	}
	sort.Strings(abbreviations)

	extra := make(map[*entry][]string)
	for _, abbreviation := range abbreviations {
		canonical := data.Abbreviations[abbreviation]
		e := byCanonical[strings.ToLower(strings.TrimSpace(canonical))]
		if e == nil {
			err = errors.Errorf("abbreviation %q refers to unknown skill %q", abbreviation, canonical)
			return d, err
		}
		extra[e] = append(extra[e], strings.ToLower(strings.TrimSpace(abbreviation)))
	}

	for _, e := range d.entries {
		err = e.compile(append(variantsOf(e.canonical), extra[e]...))
		if err != nil {
			return d, err
		}

		for _, term := range append(append([]string{}, e.variants...), e.shortForms...) {
			key := strings.ToLower(term)
			if _, taken := d.byTerm[key]; !taken {
				d.byTerm[key] = e
			}
		}
	}

	return d, err
}

// compile builds the word-boundary patterns for a skill's variants.
func (e *entry) compile(variants []string) (err error) {
	seen := make(map[string]bool, len(variants))
	for _, v := range variants {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true

		if isShort(v) {
			forms := []string{strings.ToUpper(v)}
			if strings.EqualFold(e.canonical, v) && e.canonical != strings.ToUpper(v) {
				forms = append(forms, e.canonical)
			}
			for _, form := range forms {
				var re *regexp.Regexp
				re, err = boundaryPattern(form)
				if err != nil {
					return err
				}
				e.shortForms = append(e.shortForms, form)
				e.shortPatterns = append(e.shortPatterns, re)
			}
			continue
		}

		var re *regexp.Regexp
		re, err = boundaryPattern(v)
		if err != nil {
			return err
		}
		e.variants = append(e.variants, v)
		e.patterns = append(e.patterns, re)
	}

	return err
}

func (e *entry) matches(text, lower string) (found bool) {
	for i, v := range e.variants {
		if strings.Contains(lower, v) && e.patterns[i].MatchString(lower) {
			return true
		}
	}
	for i, form := range e.shortForms {
		if strings.Contains(text, form) && e.shortPatterns[i].MatchString(text) {
			return true
		}
	}
	return found
}

// boundaryPattern matches term when it is not glued to letters, digits, '+' or '#'.
func boundaryPattern(term string) (re *regexp.Regexp, err error) {
	re, err = regexp.Compile(`(?:^|[^\p{L}\p{N}+#])` + regexp.QuoteMeta(term) + `(?:$|[^\p{L}\p{N}+#])`)
	if err != nil {
		err = errors.Wrapf(err, "failed to compile pattern for skill variant %q", term)
		return re, err
	}
	return re, err
}

// isShort reports whether a variant is too short and too word-like to match case-insensitively.
func isShort(v string) (short bool) {
	if len(v) > 2 {
		return short
	}
	for _, r := range v {
		if !unicode.IsLetter(r) {
			return short
		}
	}
	short = true
	return short
}

// variantsOf generates the lowercase spellings a canonical skill name commonly takes.
func variantsOf(canonical string) (variants []string) {
	lower := strings.ToLower(canonical)
	variants = []string{lower}

	if strings.Contains(lower, "-") {
		variants = append(variants, strings.ReplaceAll(lower, "-", " "), strings.ReplaceAll(lower, "-", ""))
	}
	// A leading dot (".NET") is part of the name; dropping it leaves an ordinary word.
	if strings.Contains(lower, ".") && !strings.HasPrefix(lower, ".") {
		variants = append(variants, strings.ReplaceAll(lower, ".", ""), strings.ReplaceAll(lower, ".", " "))
	}
	if strings.Contains(lower, "/") {
		variants = append(variants, strings.ReplaceAll(lower, "/", ""), strings.ReplaceAll(lower, "/", " "))
	}

	return variants
}

// Match returns every skill occurring in text, in category priority order.
func (d *Dictionary) Match(text string) (matches []Match) {
	matches = []Match{}
	if text == "" {
		return matches
	}

	lower := strings.ToLower(text)
	for _, e := range d.entries {
		if e.matches(text, lower) {
			matches = append(matches, Match{Skill: e.canonical, Category: e.category})
		}
	}

	return matches
}

// Lookup canonicalizes a single term such as "k8s" or "node.js".
func (d *Dictionary) Lookup(term string) (match Match, ok bool) {
	e, found := d.byTerm[strings.ToLower(strings.TrimSpace(term))]
	if !found {
		return match, ok
	}

	match = Match{Skill: e.canonical, Category: e.category}
	ok = true
	return match, ok
}

// Skills returns the canonical skills of a category in data order.
func (d *Dictionary) Skills(category Category) (skills []string) {
	skills = append([]string{}, d.byCategory[category]...)
	return skills
}

// Categories returns the categories in priority order.
func (d *Dictionary) Categories() (categories []Category) {
	categories = append([]Category{}, Priority...)
	return categories
}

// Len returns the number of canonical skills.
func (d *Dictionary) Len() (n int) {
	n = len(d.entries)
	return n
}

// Version returns the data version.
func (d *Dictionary) Version() (version int) {
	version = d.version
	return version
}

// MixedCaseTerms returns single-word canonical names such as "PostgreSQL" whose casing carries meaning.
func (d *Dictionary) MixedCaseTerms() (terms []string) {
	terms = []string{}
	for _, e := range d.entries {
		name := e.canonical
		if strings.ContainsAny(name, " .-/") {
			continue
		}
		if name != strings.ToLower(name) && name != strings.ToUpper(name) {
			terms = append(terms, name)
		}
	}
	return terms
}
