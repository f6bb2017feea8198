package slug

import (
	"regexp"
	"strings"
)

var slugRegexp = regexp.MustCompile(`[^a-z0-9]+`)

// Make creates a storable key from a human-readable label. It is used
// wherever a label doubles as an identifier: review slugs, attribute and
// characteristic slugs, and the value keys inside a characteristic's
// label table ("Extra Large" → "extra-large").
func Make(label string) string {
	s := strings.ToLower(strings.TrimSpace(label))

	// Replace any non-alphanumeric run with a single hyphen.
	s = slugRegexp.ReplaceAllString(s, "-")

	return strings.Trim(s, "-")
}

// MakeValueMap turns an ordered list of human labels into the value-key →
// label table stored on a characteristic. Duplicate labels collapse to
// the last occurrence.
func MakeValueMap(labels []string) map[string]string {
	if len(labels) == 0 {
		return nil
	}

	values := make(map[string]string, len(labels))
	for _, label := range labels {
		label = strings.TrimSpace(label)
		if label == "" {
			continue
		}
		values[Make(label)] = label
	}

	if len(values) == 0 {
		return nil
	}
	return values
}
