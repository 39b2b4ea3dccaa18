package extract

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"net/http"
	"sync"
	"testing"

	"go.uber.org/zap"

	"pantryfy/internal/llm"
	"pantryfy/internal/platform/spoonacular"
	"pantryfy/internal/platform/web"
	"pantryfy/internal/platform/web/webtest"
)

// mockModel is a mock of llm.Model. Responses are served in order and the
// last one repeats.
type mockModel struct {
	mu          sync.Mutex
	responses   []string
	returnError error
	panicWith   any
	prompts     []llm.Prompt
}

// GenerateJSON mocks the GenerateJSON method.
func (m *mockModel) GenerateJSON(ctx context.Context, p llm.Prompt) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prompts = append(m.prompts, p)
	if m.panicWith != nil {
		panic(m.panicWith)
	}
	if m.returnError != nil {
		return "", m.returnError
	}
	if len(m.responses) == 0 {
		return "{}", nil
	}
	r := m.responses[0]
	if len(m.responses) > 1 {
		m.responses = m.responses[1:]
	}
	return r, nil
}

// Calls returns the prompts received so far.
func (m *mockModel) Calls() []llm.Prompt {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]llm.Prompt(nil), m.prompts...)
}

// mockRecipeAPI is a mock of RecipeAPI.
type mockRecipeAPI struct {
	recipe      *spoonacular.ExtractedRecipe
	returnError error
	calls       int
}

// ExtractRecipe mocks the ExtractRecipe method.
func (m *mockRecipeAPI) ExtractRecipe(ctx context.Context, pageURL string) (*spoonacular.ExtractedRecipe, error) {
	m.calls++
	if m.returnError != nil {
		return nil, m.returnError
	}
	return m.recipe, nil
}

// stubFetcher returns fixed content.
type stubFetcher struct {
	content   VideoContent
	panicWith any
	calls     int
}

func (f *stubFetcher) Fetch(ctx context.Context, rawURL string, target Target) VideoContent {
	f.calls++
	if f.panicWith != nil {
		panic(f.panicWith)
	}
	return f.content
}

func newWebClient(transport *webtest.Transport) *web.Client {
	return web.NewClient(web.WithTransport(transport))
}

// testJPEG returns a JPEG of the given size filled with one color.
func testJPEG(t *testing.T, width, height int, c color.Color) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("encode test image: %v", err)
	}
	return buf.Bytes()
}

func serveBytes(data []byte) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		if r.Method == http.MethodHead {
			return
		}
		w.Write(data)
	}
}

func nopLogger() *zap.Logger {
	return zap.NewNop()
}
