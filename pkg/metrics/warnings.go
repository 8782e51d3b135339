package metrics

import "strings"

//nolint:gochecknoglobals // Read-only prefix table
var warningKinds = []struct {
	prefix string
	kind   string
}{
	{"Low overall confidence", "low_confidence"},
	{"Poor text quality", "poor_text"},
	{"No work experience", "no_experience"},
	{"Fewer than", "few_skills"},
	{"Could not detect candidate name", "no_name"},
	{"Could not detect email", "no_email"},
}

// WarningKind maps a warning message to a bounded label value.
func WarningKind(warning string) (kind string) {
	for _, wk := range warningKinds {
		if strings.HasPrefix(warning, wk.prefix) {
			kind = wk.kind
			return kind
		}
	}
	kind = "other"
	return kind
}
