package extract

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"

	"github.com/nfnt/resize"
	"go.uber.org/zap"

	"pantryfy/internal/llm"
	"pantryfy/internal/platform/web"
)

const (
	maxVisionImages = 4
	maxImageWidth   = 768
	jpegQuality     = 85

	visionSystemPrompt = "You are a recipe extraction assistant. You identify dishes and their ingredients from video frames. Always return valid JSON."
)

// VisionExtractor asks a vision-capable language model to infer a recipe
// from video thumbnails.
type VisionExtractor struct {
	model  llm.Model
	web    *web.Client
	logger *zap.Logger
}

// NewVisionExtractor creates a VisionExtractor.
func NewVisionExtractor(model llm.Model, client *web.Client, logger *zap.Logger) *VisionExtractor {
	return &VisionExtractor{model: model, web: client, logger: logger}
}

// Extract returns the recipe inferred from the thumbnails, or (nil, false).
// With no thumbnails, or none that download, the model is not called.
func (e *VisionExtractor) Extract(ctx context.Context, thumbnails []string, content VideoContent, platform Platform) (*Draft, bool) {
	images := e.loadImages(ctx, thumbnails)
	if len(images) == 0 {
		return nil, false
	}

	answer, err := e.model.GenerateJSON(ctx, llm.Prompt{
		System: visionSystemPrompt,
		User:   visionPrompt(content, platform),
		Images: images,
	})
	if err != nil {
		e.logger.Warn("vision extraction failed", zap.String("stage", StageVision), zap.Error(err))
		return nil, false
	}

	draft, ok := decodeDraft(answer)
	if !ok {
		e.logger.Warn("vision extraction returned no recipe", zap.String("stage", StageVision))
	}
	return draft, ok
}

// loadImages downloads up to maxVisionImages distinct thumbnails and
// re-encodes them as downscaled JPEGs.
func (e *VisionExtractor) loadImages(ctx context.Context, thumbnails []string) []llm.Image {
	var images []llm.Image
	seen := make(map[string]bool)
	for _, u := range thumbnails {
		if len(images) == maxVisionImages {
			break
		}
		data, err := e.web.Get(ctx, u)
		if err != nil {
			e.logger.Debug("thumbnail download failed", zap.String("url", u), zap.Error(err))
			continue
		}
		hash := llm.ImageHash(data)
		if seen[hash] {
			continue
		}
		seen[hash] = true

		jpg, err := downscale(data)
		if err != nil {
			e.logger.Debug("thumbnail is not a usable image", zap.String("url", u), zap.Error(err))
			continue
		}
		images = append(images, llm.Image{MIMEType: "image/jpeg", Data: jpg})
	}
	return images
}

// downscale decodes an image, shrinks it to maxImageWidth if wider, and
// encodes it as JPEG.
func downscale(data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	if img.Bounds().Dx() > maxImageWidth {
		img = resize.Resize(maxImageWidth, 0, img, resize.Lanczos3)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}

func visionPrompt(content VideoContent, platform Platform) string {
	return fmt.Sprintf(`These are frames from a %s cooking video titled %q.
Caption: %s

Identify the dish being made and list EVERY ingredient needed to make it, including seasonings, oils, sauces and garnishes that are visible or implied. Estimate quantities from portion cues in the frames, for 4 servings if nothing suggests otherwise.

%s`, platform, content.Title, web.Truncate(content.Description, 1000), recipeSchema)
}
