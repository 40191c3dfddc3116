package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func chatServer(t *testing.T, handler http.HandlerFunc) *ChatClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewChatClient(srv.URL, "test-key", "test-model", 5*time.Second)
}

func TestCreateChatCompletion_Success(t *testing.T) {
	var gotPath, gotAuth string
	var gotPayload map[string]any

	client := chatServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		json.NewDecoder(r.Body).Decode(&gotPayload)

		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": "  generated prompt  \n"}},
			},
		})
	})

	content, err := client.CreateChatCompletion(context.Background(),
		[]ChatMessage{TextMessage("system", "sys"), TextMessage("user", "hello")},
		ChatOptions{Temperature: 0.7, MaxTokens: 500})
	if err != nil {
		t.Fatalf("Expected success, got %v", err)
	}
	if content != "generated prompt" {
		t.Errorf("Expected trimmed content, got %q", content)
	}
	if gotPath != "/chat/completions" {
		t.Errorf("Expected /chat/completions path, got %q", gotPath)
	}
	if gotAuth != "Bearer test-key" {
		t.Errorf("Expected bearer auth header, got %q", gotAuth)
	}
	if gotPayload["model"] != "test-model" {
		t.Errorf("Expected model in payload, got %v", gotPayload["model"])
	}
	if gotPayload["max_tokens"] != float64(500) {
		t.Errorf("Expected max_tokens 500, got %v", gotPayload["max_tokens"])
	}
}

func TestCreateChatCompletion_UpstreamError(t *testing.T) {
	client := chatServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":"rate limited"}`))
	})

	_, err := client.CreateChatCompletion(context.Background(),
		[]ChatMessage{TextMessage("user", "hi")}, ChatOptions{})
	if err == nil {
		t.Fatalf("Expected error on non-2xx status")
	}
	if !strings.Contains(err.Error(), "status=429") {
		t.Errorf("Expected status in error, got %v", err)
	}
}

func TestCreateChatCompletion_EmptyChoices(t *testing.T) {
	client := chatServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	})

	_, err := client.CreateChatCompletion(context.Background(),
		[]ChatMessage{TextMessage("user", "hi")}, ChatOptions{})
	if !errors.Is(err, ErrEmptyCompletion) {
		t.Errorf("Expected ErrEmptyCompletion, got %v", err)
	}
}

func TestCreateChatCompletion_BlankContent(t *testing.T) {
	client := chatServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[{"message":{"content":"   "}}]}`))
	})

	_, err := client.CreateChatCompletion(context.Background(),
		[]ChatMessage{TextMessage("user", "hi")}, ChatOptions{})
	if !errors.Is(err, ErrEmptyCompletion) {
		t.Errorf("Expected ErrEmptyCompletion for whitespace content, got %v", err)
	}
}

func TestVisionMessage(t *testing.T) {
	msg := VisionMessage("describe this image", "data:image/png;base64,AAAA")

	parts, ok := msg.Content.([]ContentPart)
	if !ok {
		t.Fatalf("Expected content parts, got %T", msg.Content)
	}
	if len(parts) != 2 {
		t.Fatalf("Expected 2 parts, got %d", len(parts))
	}
	if parts[0].Type != "text" || parts[0].Text != "describe this image" {
		t.Errorf("Expected text part first, got %+v", parts[0])
	}
	if parts[1].Type != "image_url" || parts[1].ImageURL == nil || parts[1].ImageURL.URL != "data:image/png;base64,AAAA" {
		t.Errorf("Expected image part with data URL, got %+v", parts[1])
	}
}
