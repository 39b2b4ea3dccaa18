package ingredient

import (
	"regexp"
	"strings"
)

var aliases = map[string]string{
	"aubergine": "eggplant",
	"capsicum":  "bell pepper",
	"coriander": "cilantro",
	"rocket":    "arugula",
	"courgette": "zucchini",
	"prawns":    "shrimp",
	"mince":     "ground beef",
	"catsup":    "ketchup",
}

var descriptivePrefixes = []string{
	"fresh",
	"dried",
	"frozen",
	"chopped",
	"minced",
	"diced",
	"sliced",
	"grated",
	"shredded",
	"whole",
	"ground",
	"crushed",
	"peeled",
	"boneless",
	"skinless",
	"organic",
	"raw",
	"cooked",
}

var (
	parentheticalRe = regexp.MustCompile(`\s*\([^)]*\)\s*`)
	spacesRe        = regexp.MustCompile(`\s+`)
)

// Normalize returns the merge key for an ingredient name. Two lines belong
// on the same shopping-list entry exactly when their keys are equal.
//
// The steps are repeated until the key stops changing, which makes
// Normalize idempotent even when an alias expands to a prefixed form
// ("mince" -> "ground beef" -> "beef").
func Normalize(name string) string {
	key := strings.ToLower(strings.TrimSpace(name))
	for {
		next := normalizeOnce(key)
		if next == key {
			return key
		}
		key = next
	}
}

func normalizeOnce(s string) string {
	for _, prefix := range descriptivePrefixes {
		if rest, ok := strings.CutPrefix(s, prefix); ok && rest != "" && (rest[0] == ' ' || rest[0] == '\t') {
			s = strings.TrimSpace(rest)
		}
	}

	s = parentheticalRe.ReplaceAllString(s, " ")
	s = strings.TrimSpace(spacesRe.ReplaceAllString(s, " "))

	if alias, ok := aliases[s]; ok {
		s = alias
	}

	return depluralize(s)
}

func depluralize(s string) string {
	switch {
	case strings.HasSuffix(s, "ies") && !strings.HasSuffix(s, "series") && len(s) > 4:
		return s[:len(s)-3] + "y"
	case strings.HasSuffix(s, "es") && !strings.HasSuffix(s, "cheese") && !strings.HasSuffix(s, "rice") && len(s) > 4:
		return s[:len(s)-2]
	case strings.HasSuffix(s, "s") && !strings.HasSuffix(s, "ss") && !strings.HasSuffix(s, "us") && len(s) > 3:
		return s[:len(s)-1]
	}
	return s
}
