package generator

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"google.golang.org/genai"

	"github.com/julianstephens/manifest/internal/logger"
	"github.com/julianstephens/manifest/internal/models"
)

var (
	// ErrUnavailable is returned when a generator cannot serve a request at all.
	ErrUnavailable = errors.New("generator unavailable")
	// ErrNoImage is returned when the model answered without image data.
	ErrNoImage = errors.New("response contained no image")
)

// contentModel is the slice of *genai.Models the generator uses.
type contentModel interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type Config struct {
	APIKey     string
	TextModel  string
	ImageModel string
	MediaDir   string
}

// Gemini generates affirmations and images through the Gemini API.
type Gemini struct {
	models     contentModel
	textModel  string
	imageModel string
	mediaDir   string
}

// NewGemini creates a Gemini-backed generator.
func NewGemini(ctx context.Context, cfg Config) (*Gemini, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: API key is required", ErrUnavailable)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return newGemini(client.Models, cfg), nil
}

func newGemini(m contentModel, cfg Config) *Gemini {
	return &Gemini{
		models:     m,
		textModel:  cfg.TextModel,
		imageModel: cfg.ImageModel,
		mediaDir:   cfg.MediaDir,
	}
}

func (g *Gemini) GenerateAffirmation(ctx context.Context, profile models.UserProfile, goals []models.VisionGoal, kind models.AffirmationType) (string, error) {
	prompt := AffirmationPrompt(profile, goals, kind)

	resp, err := g.models.GenerateContent(ctx, g.textModel, genai.Text(prompt), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(affirmationSystemInstruction, genai.RoleUser),
		Temperature:       genai.Ptr[float32](0.9),
	})
	if err != nil {
		return "", fmt.Errorf("GenAI affirmation failed: %w", err)
	}

	text := CleanAffirmation(resp.Text())
	if text == "" {
		return "", errors.New("empty affirmation returned")
	}
	return text, nil
}

func (g *Gemini) GenerateGoalImage(ctx context.Context, title string, categories []string, referencePhoto string) (string, error) {
	return g.generateImage(ctx, GoalImagePrompt(title, categories, referencePhoto != ""), referencePhoto)
}

func (g *Gemini) SimulateLifestyle(ctx context.Context, photoRef, description string) (string, error) {
	if photoRef == "" {
		return "", errors.New("lifestyle simulation needs a reference photo")
	}
	return g.generateImage(ctx, LifestylePrompt(description), photoRef)
}

func (g *Gemini) generateImage(ctx context.Context, prompt, referencePhoto string) (string, error) {
	parts := []*genai.Part{genai.NewPartFromText(prompt)}
	if referencePhoto != "" {
		data, err := os.ReadFile(referencePhoto)
		if err != nil {
			return "", fmt.Errorf("failed to read reference photo: %w", err)
		}
		parts = append(parts, genai.NewPartFromBytes(data, http.DetectContentType(data)))
	}

	resp, err := g.models.GenerateContent(ctx, g.imageModel,
		[]*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)},
		&genai.GenerateContentConfig{ResponseModalities: []string{"TEXT", "IMAGE"}},
	)
	if err != nil {
		return "", fmt.Errorf("GenAI image failed: %w", err)
	}

	blob := firstImage(resp)
	if blob == nil {
		return "", ErrNoImage
	}
	return g.save(blob)
}

func firstImage(resp *genai.GenerateContentResponse) *genai.Blob {
	if resp == nil {
		return nil
	}
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part != nil && part.InlineData != nil && strings.HasPrefix(part.InlineData.MIMEType, "image/") {
				return part.InlineData
			}
		}
	}
	return nil
}

// save writes image bytes to the media directory and returns the file path,
// which is the image reference stored on goals and history entries.
func (g *Gemini) save(blob *genai.Blob) (string, error) {
	if err := os.MkdirAll(g.mediaDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create media directory: %w", err)
	}

	ext := ".png"
	switch blob.MIMEType {
	case "image/jpeg":
		ext = ".jpg"
	case "image/webp":
		ext = ".webp"
	}

	path := filepath.Join(g.mediaDir, uuid.New().String()+ext)
	if err := os.WriteFile(path, blob.Data, 0600); err != nil {
		return "", fmt.Errorf("failed to write image: %w", err)
	}
	logger.Debug("Saved generated image", "path", path, "bytes", len(blob.Data))
	return path, nil
}
