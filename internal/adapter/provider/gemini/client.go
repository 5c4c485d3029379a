// Package gemini adapts the Google GenAI API to the generation interfaces
// consumed by the services. Every upstream failure is normalized into a
// domain.GenerationError so callers never see transport details.
package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/heartmarshall/dreamboard-backend/internal/config"
	"github.com/heartmarshall/dreamboard-backend/internal/domain"
)

// Client calls the Gemini models for text and image generation.
type Client struct {
	client     *genai.Client
	textModel  string
	imageModel string
	timeout    time.Duration
	log        *slog.Logger
}

// New creates a Client from configuration. The API key is validated here so
// a misconfigured deployment fails at startup, not on first request.
func New(ctx context.Context, cfg config.GenerationConfig, logger *slog.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini: API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}

	return &Client{
		client:     client,
		textModel:  cfg.TextModel,
		imageModel: cfg.ImageModel,
		timeout:    cfg.RequestTimeout,
		log:        logger.With("adapter", "gemini"),
	}, nil
}

// GenerateText sends a prompt to the text model and returns the response
// text. With expectJSON the model is asked for a JSON response, markdown
// code fences are stripped, and the payload is checked to be valid JSON.
func (c *Client) GenerateText(ctx context.Context, prompt string, expectJSON bool) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}

	var genCfg *genai.GenerateContentConfig
	if expectJSON {
		genCfg = &genai.GenerateContentConfig{ResponseMIMEType: "application/json"}
	}

	start := time.Now()
	resp, err := c.client.Models.GenerateContent(ctx, c.textModel, contents, genCfg)
	if err != nil {
		c.log.ErrorContext(ctx, "text generation failed",
			slog.String("model", c.textModel),
			slog.String("error", err.Error()),
		)
		return "", domain.NewGenerationError("generate text", err)
	}

	c.log.DebugContext(ctx, "text generated",
		slog.String("model", c.textModel),
		slog.Duration("took", time.Since(start)),
	)

	return normalizeText(resp.Text(), expectJSON)
}

// GenerateImage sends a prompt plus optional reference images to the image
// model and returns the first inline image of the response.
func (c *Client) GenerateImage(ctx context.Context, prompt string, refImages []domain.ImageRef) (*domain.ImageRef, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	parts := []*genai.Part{genai.NewPartFromText(prompt)}
	for _, img := range refImages {
		parts = append(parts, genai.NewPartFromBytes(img.Data, img.MIMEType))
	}

	contents := []*genai.Content{
		genai.NewContentFromParts(parts, genai.RoleUser),
	}

	genCfg := &genai.GenerateContentConfig{
		ResponseModalities: []string{"IMAGE", "TEXT"},
	}

	start := time.Now()
	resp, err := c.client.Models.GenerateContent(ctx, c.imageModel, contents, genCfg)
	if err != nil {
		c.log.ErrorContext(ctx, "image generation failed",
			slog.String("model", c.imageModel),
			slog.String("error", err.Error()),
		)
		return nil, domain.NewGenerationError("generate image", err)
	}

	img := firstInlineImage(resp)
	if img == nil {
		return nil, domain.NewGenerationError("generate image", errors.New("response contains no image data"))
	}

	c.log.DebugContext(ctx, "image generated",
		slog.String("model", c.imageModel),
		slog.String("mime_type", img.MIMEType),
		slog.Int("bytes", len(img.Data)),
		slog.Duration("took", time.Since(start)),
	)

	return img, nil
}

// normalizeText strips markdown code fences and, when JSON is expected,
// verifies the remaining payload parses.
func normalizeText(text string, expectJSON bool) (string, error) {
	text = stripCodeFences(text)

	if text == "" {
		return "", domain.NewGenerationError("generate text", errors.New("empty response"))
	}

	if expectJSON && !json.Valid([]byte(text)) {
		return "", domain.NewGenerationError("generate text", errors.New("response is not valid JSON"))
	}

	return text, nil
}

// stripCodeFences removes a surrounding markdown code fence, with or without
// a language tag. Text without fences is returned trimmed.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)

	if !strings.HasPrefix(s, "```") {
		return s
	}

	s = strings.TrimPrefix(s, "```")
	if idx := strings.Index(s, "\n"); idx >= 0 {
		// drop the language tag line (e.g. "json")
		s = s[idx+1:]
	} else {
		return strings.TrimSpace(strings.TrimSuffix(s, "```"))
	}

	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func firstInlineImage(resp *genai.GenerateContentResponse) *domain.ImageRef {
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				return &domain.ImageRef{
					MIMEType: part.InlineData.MIMEType,
					Data:     part.InlineData.Data,
				}
			}
		}
	}
	return nil
}
