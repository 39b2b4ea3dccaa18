package ingredient

import "strings"

// Category is a grocery store section.
type Category string

const (
	CategoryProduce   Category = "produce"
	CategoryDairy     Category = "dairy"
	CategoryMeat      Category = "meat"
	CategoryBakery    Category = "bakery"
	CategoryFrozen    Category = "frozen"
	CategoryPantry    Category = "pantry"
	CategorySpices    Category = "spices"
	CategoryBeverages Category = "beverages"
	CategoryOther     Category = "other"
)

// Categories lists every category in declaration order, other last.
var Categories = []Category{
	CategoryProduce,
	CategoryDairy,
	CategoryMeat,
	CategoryBakery,
	CategoryFrozen,
	CategoryPantry,
	CategorySpices,
	CategoryBeverages,
	CategoryOther,
}

// Label returns the display label for the category.
func (c Category) Label() string {
	switch c {
	case CategoryMeat:
		return "Meat & Fish"
	case "":
		return ""
	}
	s := string(c)
	return strings.ToUpper(s[:1]) + s[1:]
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

type categoryKeywords struct {
	category Category
	keywords []string
}

// Order matters: the first category with a matching keyword wins.
var keywordTable = []categoryKeywords{
	{CategoryProduce, []string{
		"apple", "banana", "orange", "lemon", "lime", "tomato", "onion", "garlic",
		"potato", "carrot", "celery", "lettuce", "spinach", "broccoli", "pepper",
		"cucumber", "avocado", "mushroom", "zucchini", "eggplant", "corn", "pea",
		"bean", "kale", "cabbage", "cauliflower", "asparagus", "artichoke",
		"beet", "radish", "turnip", "squash", "pumpkin", "ginger", "scallion",
		"shallot", "leek", "parsley", "basil", "mint", "cilantro", "dill",
		"chive", "arugula", "berry", "grape", "melon", "peach", "pear", "plum",
		"mango", "pineapple", "coconut",
	}},
	{CategoryDairy, []string{
		"milk", "cheese", "butter", "cream", "yogurt", "egg", "sour cream",
		"mozzarella", "cheddar", "parmesan", "ricotta", "feta", "gouda",
		"brie", "cottage cheese", "whipped cream", "half and half",
		"cream cheese", "mascarpone",
	}},
	{CategoryMeat, []string{
		"chicken", "beef", "pork", "lamb", "turkey", "bacon", "sausage", "ham",
		"steak", "fish", "salmon", "tuna", "shrimp", "crab", "lobster",
		"scallop", "anchovy", "sardine", "prosciutto", "pepperoni", "duck",
		"veal", "bison", "venison", "chorizo",
	}},
	{CategoryBakery, []string{
		"bread", "roll", "baguette", "croissant", "muffin", "bagel", "tortilla",
		"pita", "naan", "flatbread", "ciabatta", "sourdough", "brioche",
		"cracker", "breadcrumb",
	}},
	{CategoryFrozen, []string{
		"frozen", "ice cream", "frozen pizza", "frozen vegetable", "frozen fruit",
		"gelato", "sorbet", "frozen dinner",
	}},
	{CategoryPantry, []string{
		"flour", "sugar", "rice", "pasta", "noodle", "oil", "vinegar",
		"soy sauce", "honey", "broth", "stock", "tomato sauce", "tomato paste",
		"can", "canned", "dried bean", "lentil", "chickpea", "quinoa",
		"oat", "cereal", "maple syrup", "peanut butter", "jam", "jelly",
		"mustard", "ketchup", "mayonnaise", "hot sauce", "worcestershire",
		"coconut milk", "cornstarch", "baking powder", "baking soda", "yeast",
		"vanilla extract", "cocoa powder", "chocolate", "nut", "almond",
		"walnut", "pecan", "cashew", "sesame",
	}},
	{CategorySpices, []string{
		"salt", "pepper", "cumin", "paprika", "oregano", "thyme", "rosemary",
		"cinnamon", "ginger", "turmeric", "chili powder", "cayenne", "nutmeg",
		"coriander", "cardamom", "clove", "allspice", "bay leaf", "saffron",
		"curry", "garlic powder", "onion powder", "italian seasoning",
		"red pepper flake", "black pepper", "white pepper", "smoked paprika",
	}},
	{CategoryBeverages, []string{
		"water", "juice", "soda", "coffee", "tea", "wine", "beer",
		"sparkling water", "lemonade", "milk", "almond milk", "oat milk",
		"coconut water",
	}},
}

// Categorize assigns a grocery category by substring keyword match, so
// "limestone" lands in produce because it contains "lime".
func Categorize(name string) Category {
	lower := strings.ToLower(name)
	for _, entry := range keywordTable {
		for _, kw := range entry.keywords {
			if strings.Contains(lower, kw) {
				return entry.category
			}
		}
	}
	return CategoryOther
}
