package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"gorm.io/gorm"

	"therapy-directory/internal/model"
)

// LLMService talks to an OpenAI-compatible chat completions endpoint.
// Provider settings live in app_configs rows so administrators can change
// endpoint, key and model at runtime without a restart.
type LLMService struct {
	db     *gorm.DB
	client *http.Client
}

type LLMSettings struct {
	ApiURL string
	ApiKey string
	Model  string
}

type ChatRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

type ModelsResponse struct {
	Data []struct {
		ID      string `json:"id"`
		Object  string `json:"object"`
		Created int64  `json:"created"`
		OwnedBy string `json:"owned_by"`
	} `json:"data"`
}

func NewLLMService(db *gorm.DB) *LLMService {
	return &LLMService{
		db:     db,
		client: &http.Client{},
	}
}

// GetSettings reads the provider settings from the config table.
func (s *LLMService) GetSettings() (*LLMSettings, error) {
	var items []model.AppConfig
	if err := s.db.Find(&items).Error; err != nil {
		return nil, err
	}

	settings := make(map[string]string)
	for _, item := range items {
		settings[item.Key] = item.Value
	}

	return &LLMSettings{
		ApiURL: settings[model.ConfigLLMApiURL],
		ApiKey: settings[model.ConfigLLMApiKey],
		Model:  settings[model.ConfigLLMModel],
	}, nil
}

// Chat sends a system message plus one user message and returns the
// completion text. An absent or empty completion is a valid empty
// string, not an error; callers decide what to do with it.
func (s *LLMService) Chat(ctx context.Context, system, user string) (string, error) {
	cfg, err := s.GetSettings()
	if err != nil {
		return "", err
	}

	messages := make([]Message, 0, 2)
	if system != "" {
		messages = append(messages, Message{Role: "system", Content: system})
	}
	messages = append(messages, Message{Role: "user", Content: user})

	reqBody := ChatRequest{
		Model:    cfg.Model,
		Messages: messages,
	}

	jsonBody, _ := json.Marshal(reqBody)

	req, err := http.NewRequestWithContext(ctx, "POST",
		cfg.ApiURL+"/chat/completions", bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+cfg.ApiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("llm api error (%d): %s", resp.StatusCode, string(body))
	}

	var chatResp ChatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", err
	}

	if len(chatResp.Choices) == 0 {
		return "", nil
	}

	return chatResp.Choices[0].Message.Content, nil
}

// GetModels lists the models available at the configured endpoint.
func (s *LLMService) GetModels(ctx context.Context) ([]string, error) {
	cfg, err := s.GetSettings()
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "GET",
		cfg.ApiURL+"/models", nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Authorization", "Bearer "+cfg.ApiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("llm api error: %d", resp.StatusCode)
	}

	body, _ := io.ReadAll(resp.Body)

	var modelsResp ModelsResponse
	if err := json.Unmarshal(body, &modelsResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %v", err)
	}

	models := make([]string, 0, len(modelsResp.Data))
	for _, m := range modelsResp.Data {
		models = append(models, m.ID)
	}

	return models, nil
}

// TestConnection verifies the configured provider answers a trivial
// prompt. Used by the admin settings page.
func (s *LLMService) TestConnection(ctx context.Context) (string, error) {
	cfg, err := s.GetSettings()
	if err != nil {
		return "", err
	}

	if cfg.ApiURL == "" {
		return "", fmt.Errorf("llm api url not configured")
	}
	if cfg.ApiKey == "" {
		return "", fmt.Errorf("llm api key not configured")
	}
	if cfg.Model == "" {
		return "", fmt.Errorf("llm model not configured")
	}

	reqBody := ChatRequest{
		Model: cfg.Model,
		Messages: []Message{
			{Role: "user", Content: "Hi"},
		},
	}

	jsonBody, _ := json.Marshal(reqBody)

	req, err := http.NewRequestWithContext(ctx, "POST",
		cfg.ApiURL+"/chat/completions", bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %v", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+cfg.ApiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("llm api error (%d): %s", resp.StatusCode, string(body))
	}

	var chatResp ChatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", fmt.Errorf("failed to parse response: %v", err)
	}

	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("no response from llm")
	}

	return chatResp.Choices[0].Message.Content, nil
}
