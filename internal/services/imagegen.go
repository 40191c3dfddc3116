package services

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// ImageGenService renders a first-frame image from a prompt with Google's
// Imagen model.
type ImageGenService struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

func NewImageGenService(ctx context.Context, apiKey string, timeout time.Duration) (*ImageGenService, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return &ImageGenService{
		client:  client,
		model:   "imagen-3.0-generate-001",
		timeout: timeout,
	}, nil
}

func (s *ImageGenService) Close() error {
	return s.client.Close()
}

// GenerateImage returns the image as a base64 data URL. Generation
// exceeding the timeout surfaces as a timeout error rather than hanging
// the request.
func (s *ImageGenService) GenerateImage(ctx context.Context, prompt string) (string, error) {
	if prompt == "" {
		return "", &ValidationError{Message: "请提供图片描述"}
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	model := s.client.GenerativeModel(s.model)
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", fmt.Errorf("image generation timed out after %s", s.timeout)
		}
		return "", fmt.Errorf("image generation failed: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("image generation returned no candidates")
	}

	for _, part := range resp.Candidates[0].Content.Parts {
		if blob, ok := part.(genai.Blob); ok {
			encoded := base64.StdEncoding.EncodeToString(blob.Data)
			return fmt.Sprintf("data:%s;base64,%s", blob.MIMEType, encoded), nil
		}
	}
	return "", fmt.Errorf("image generation returned no image data")
}
