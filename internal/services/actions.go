package services

import (
	"context"
	"fmt"
	"strings"

	"mukbang-backend/internal/prompts"
)

// ActionService forwards action-description requests to the Gemini proxy.
type ActionService struct {
	chat *ChatClient
}

func NewActionService(chat *ChatClient) *ActionService {
	return &ActionService{chat: chat}
}

// ExpandAction turns a handful of picked action tags plus an optional
// free-text action into one fluent English action description.
func (s *ActionService) ExpandAction(ctx context.Context, actions []string, customAction string) (string, error) {
	parts := make([]string, 0, len(actions)+1)
	for _, a := range actions {
		if a = strings.TrimSpace(a); a != "" {
			parts = append(parts, a)
		}
	}
	if customAction = strings.TrimSpace(customAction); customAction != "" {
		parts = append(parts, customAction)
	}
	if len(parts) == 0 {
		return "", &ValidationError{Message: "请输入动作描述"}
	}
	userInput := strings.Join(parts, "，")

	return s.chat.CreateChatCompletion(ctx, []ChatMessage{
		TextMessage("system", prompts.ExpandActionSystemPrompt),
		TextMessage("user", "请将以下动作描述扩写成详细的英文动作提示词：\n"+userInput),
	}, ChatOptions{Temperature: 0.7, MaxTokens: 500})
}

// ImproveAction rewrites an existing action description per the user's
// improvement note.
func (s *ActionService) ImproveAction(ctx context.Context, originalAction, improvement string) (string, error) {
	if strings.TrimSpace(originalAction) == "" {
		return "", &ValidationError{Message: "请提供原动作描述"}
	}
	if strings.TrimSpace(improvement) == "" {
		return "", &ValidationError{Message: "请提供改进意见"}
	}

	userMessage := fmt.Sprintf("原动作描述：\n%s\n\n用户的改进意见：\n%s\n\n请根据改进意见修改动作描述：", originalAction, improvement)

	return s.chat.CreateChatCompletion(ctx, []ChatMessage{
		TextMessage("system", prompts.ImproveActionSystemPrompt),
		TextMessage("user", userMessage),
	}, ChatOptions{Temperature: 0.7, MaxTokens: 500})
}
