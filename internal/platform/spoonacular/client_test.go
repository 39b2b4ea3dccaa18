package spoonacular

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pantryfy/internal/platform/web"
	"pantryfy/internal/platform/web/webtest"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	transport := webtest.NewTransport()
	transport.HandleFunc("api.spoonacular.com", handler)
	return NewClient("test-key", web.NewClient(web.WithTransport(transport)))
}

func TestExtractRecipe(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/recipes/extract", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "https://blog.example.com/soup", q.Get("url"))
		assert.Equal(t, "true", q.Get("analyze"))
		assert.Equal(t, "true", q.Get("forceExtraction"))
		assert.Equal(t, "test-key", q.Get("apiKey"))
		w.Write([]byte(`{
			"title": "Tomato Soup",
			"image": "https://img.example.com/soup.jpg",
			"servings": 2,
			"extendedIngredients": [
				{"name": "tomato", "amount": 4, "unit": "", "original": "4 ripe tomatoes"}
			]
		}`))
	})

	got, err := client.ExtractRecipe(context.Background(), "https://blog.example.com/soup")
	require.NoError(t, err)
	assert.Equal(t, "Tomato Soup", got.Title)
	assert.Equal(t, 2, got.Servings)
	require.Len(t, got.ExtendedIngredients, 1)
	assert.Equal(t, "4 ripe tomatoes", got.ExtendedIngredients[0].Original)
}

func TestExtractRecipe_QuotaExceeded(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
	})

	_, err := client.ExtractRecipe(context.Background(), "https://blog.example.com/soup")
	var statusErr *web.StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusPaymentRequired, statusErr.StatusCode)
}

func TestFindByIngredients(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/recipes/findByIngredients", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "egg,rice", q.Get("ingredients"))
		assert.Equal(t, "12", q.Get("number"))
		assert.Equal(t, "2", q.Get("ranking"))
		assert.Equal(t, "30", q.Get("maxReadyTime"))
		assert.Equal(t, "", q.Get("cuisine"))
		assert.Equal(t, "vegetarian", q.Get("diet"))
		w.Write([]byte(`[{"id": 7, "title": "Fried Rice", "usedIngredientCount": 2, "missedIngredientCount": 1,
			"missedIngredients": [{"id": 1, "name": "soy sauce"}]}]`))
	})

	got, err := client.FindByIngredients(context.Background(), []string{"egg", "rice"},
		SearchOptions{MaxTime: 30, Diet: "vegetarian"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Fried Rice", got[0].Title)
	assert.Equal(t, 1, got[0].MissedIngredientCount)
	assert.Equal(t, "soy sauce", got[0].MissedIngredients[0].Name)
}
