package extract

import (
	"encoding/json"

	"pantryfy/internal/recipe"
)

// Outcome is the result of one extraction: a recipe, or a reason the user
// can act on.
type Outcome struct {
	Recipe *recipe.Recipe
	Reason string
}

// Success wraps a recipe.
func Success(r recipe.Recipe) Outcome {
	return Outcome{Recipe: &r}
}

// Failure wraps a user-facing reason.
func Failure(reason string) Outcome {
	return Outcome{Reason: reason}
}

// OK reports whether the outcome carries a recipe.
func (o Outcome) OK() bool {
	return o.Recipe != nil
}

type successJSON struct {
	Success bool `json:"success"`
	recipe.Recipe
}

type failureJSON struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// MarshalJSON renders {success:true, title, servings, imageUrl?,
// ingredients, source} or {success:false, error}.
func (o Outcome) MarshalJSON() ([]byte, error) {
	if o.OK() {
		return json.Marshal(successJSON{Success: true, Recipe: *o.Recipe})
	}
	return json.Marshal(failureJSON{Success: false, Error: o.Reason})
}

// UnmarshalJSON reads either shape written by MarshalJSON.
func (o *Outcome) UnmarshalJSON(data []byte) error {
	var probe struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}
	if !probe.Success {
		*o = Failure(probe.Error)
		return nil
	}
	var r recipe.Recipe
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	*o = Success(r)
	return nil
}
