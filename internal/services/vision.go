package services

import (
	"context"
	"encoding/base64"
	"fmt"

	"mukbang-backend/internal/prompts"
)

// VisionService reverse-engineers a frame description from an uploaded
// mukbang image via the Gemini proxy's vision endpoint.
type VisionService struct {
	chat *ChatClient
}

func NewVisionService(chat *ChatClient) *VisionService {
	return &VisionService{chat: chat}
}

func (s *VisionService) AnalyzeImage(ctx context.Context, imageBytes []byte, mimeType string) (string, error) {
	if mimeType == "" {
		mimeType = "image/jpeg"
	}
	dataURL := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(imageBytes))

	return s.chat.CreateChatCompletion(ctx, []ChatMessage{
		VisionMessage(prompts.AnalyzeImagePrompt, dataURL),
	}, ChatOptions{Temperature: 0.7, MaxTokens: 1000})
}
