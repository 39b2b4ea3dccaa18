package ingredient

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize_KnownCases(t *testing.T) {
	tests := map[string]string{
		"Fresh Tomatoes":             "tomato",
		"aubergine":                  "eggplant",
		"boneless chicken breasts":   "chicken breast",
		"Chicken (boneless) thighs":  "chicken thigh",
		"prawns":                     "shrimp",
		"berries":                    "berry",
		"peas":                       "pea",
		"glass":                      "glass",
		"hummus":                     "hummus",
		"cheese":                     "cheese",
		"rice":                       "rice",
		"fresh chopped parsley":      "parsley",
		"chopped fresh parsley":      "parsley",
		"  Courgette ":               "zucchini",
		"frozen":                     "frozen",
		"ground":                     "ground",
		"capsicum":                   "bell pepper",
		"grated parmesan (optional)": "parmesan",
	}
	for in, want := range tests {
		assert.Equal(t, want, Normalize(in), "input %q", in)
	}
}

func TestNormalize_AliasThenPrefix(t *testing.T) {
	// The alias expands to a prefixed form that is stripped on the next pass.
	assert.Equal(t, "beef", Normalize("mince"))
	assert.Equal(t, Normalize("ground beef"), Normalize("mince"))
}

func TestNormalize_Idempotent(t *testing.T) {
	names := []string{
		"Fresh Tomatoes", "aubergine", "boneless chicken breasts", "mince",
		"2 cups flour", "Cherry Tomatoes (halved)", "dried oregano leaves",
		"coriander", "rocket", "catsup", "skinless salmon fillets", "ss", "us",
		"", "   ", "(optional)", "fresh fresh fresh basil", "cookies", "sliced",
	}
	for _, name := range names {
		once := Normalize(name)
		assert.Equal(t, once, Normalize(once), "input %q", name)
	}
}

func TestNormalize_PrefixOnlyAsLeadingWord(t *testing.T) {
	assert.Equal(t, "freshwater fish", Normalize("freshwater fish"))
	assert.Equal(t, "rawhide", Normalize("rawhide"))
}
