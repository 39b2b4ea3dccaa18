package ingredient

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		line string
		want Parsed
	}{
		{"2 cups flour", Parsed{Quantity: 2, Unit: "cup", Name: "flour", Raw: "2 cups flour"}},
		{"1 1/2 cups sugar", Parsed{Quantity: 1.5, Unit: "cup", Name: "sugar", Raw: "1 1/2 cups sugar"}},
		{"3 Tablespoons Olive Oil", Parsed{Quantity: 3, Unit: "tbsp", Name: "olive oil", Raw: "3 Tablespoons Olive Oil"}},
		{"1/2 tsp salt", Parsed{Quantity: 0.5, Unit: "tsp", Name: "salt", Raw: "1/2 tsp salt"}},
		{"0.5 kg beef", Parsed{Quantity: 0.5, Unit: "kg", Name: "beef", Raw: "0.5 kg beef"}},
		{"2 lbs chicken thighs", Parsed{Quantity: 2, Unit: "lb", Name: "chicken thighs", Raw: "2 lbs chicken thighs"}},
		{"500 grams pasta", Parsed{Quantity: 500, Unit: "g", Name: "pasta", Raw: "500 grams pasta"}},
		{"1 litre stock", Parsed{Quantity: 1, Unit: "L", Name: "stock", Raw: "1 litre stock"}},
		{"2 large eggs", Parsed{Quantity: 2, Unit: "large", Name: "eggs", Raw: "2 large eggs"}},
		{"3 cloves garlic", Parsed{Quantity: 3, Unit: "clove", Name: "garlic", Raw: "3 cloves garlic"}},
		{"bunch cilantro", Parsed{Quantity: 1, Unit: "bunch", Name: "cilantro", Raw: "bunch cilantro"}},
		{"3 eggs", Parsed{Quantity: 3, Name: "eggs", Raw: "3 eggs"}},
		{"1 garlic bulb", Parsed{Quantity: 1, Name: "garlic bulb", Raw: "1 garlic bulb"}},
		{"salt to taste", Parsed{Quantity: 1, Name: "salt to taste", Raw: "salt to taste"}},
		{"  2 cups   flour  ", Parsed{Quantity: 2, Unit: "cup", Name: "flour", Raw: "2 cups   flour"}},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLine(tt.line))
		})
	}
}

func TestParseLine_Empty(t *testing.T) {
	assert.Equal(t, Parsed{}, ParseLine(""))
	assert.Equal(t, Parsed{}, ParseLine("   \t  "))
}

func TestParseLine_NeverPanics(t *testing.T) {
	inputs := []string{
		"", " ", "/", "//", "...", "1/0 cup milk", "1 / 2 cups x", "cups", "2 cups",
		"½ cup milk", "１ cup", "🍅 tomato", "1.2.3 g salt", "\x00\x01", "999999999999999999999 eggs",
	}
	for _, in := range inputs {
		assert.NotPanics(t, func() { ParseLine(in) }, "input %q", in)
	}
}

func TestParseLine_MalformedQuantityDefaultsToOne(t *testing.T) {
	got := ParseLine("1/0 cup milk")
	assert.Equal(t, 1.0, got.Quantity)
	assert.Equal(t, "cup", got.Unit)
	assert.Equal(t, "milk", got.Name)
}

func TestParseQuantity(t *testing.T) {
	tests := map[string]float64{
		"2":     2,
		"0.25":  0.25,
		"1/2":   0.5,
		"3/4":   0.75,
		"1 1/2": 1.5,
		"2 1/4": 2.25,
		"":      1,
		"abc":   1,
		"1/0":   1,
		"/":     1,
		"0":     1,
		"x 1/2": 1,
	}
	for in, want := range tests {
		assert.InDelta(t, want, ParseQuantity(in), 1e-9, "input %q", in)
	}
}

func TestNormalizeUnit(t *testing.T) {
	assert.Equal(t, "tbsp", NormalizeUnit("Tablespoons"))
	assert.Equal(t, "lb", NormalizeUnit("lbs"))
	assert.Equal(t, "lb", NormalizeUnit("pounds"))
	assert.Equal(t, "cup", NormalizeUnit("cups"))
	assert.Equal(t, "L", NormalizeUnit("liters"))
	assert.Equal(t, "ml", NormalizeUnit("ML"))
	assert.Equal(t, "pinch", NormalizeUnit("pinch"))
}

func TestFormatQuantity(t *testing.T) {
	assert.Equal(t, "2", FormatQuantity(2))
	assert.Equal(t, "1.5", FormatQuantity(1.5))
	assert.Equal(t, "0.25", FormatQuantity(0.25))
}
