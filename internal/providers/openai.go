package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	embedModel = "text-embedding-ada-002"
	chatModel  = "gpt-4"

	// Sampling tuned to cover several candidates without repeating itself.
	chatTemperature      = 0.7
	chatMaxTokens        = 1500
	chatPresencePenalty  = 0.6
	chatFrequencyPenalty = 0.3
)

// OpenAIProvider calls the standard OpenAI REST APIs. It implements both
// Embedder and Completer with fixed model identifiers.
type OpenAIProvider struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewOpenAIProvider(apiKey string) *OpenAIProvider {
	return &OpenAIProvider{
		apiKey:  apiKey,
		baseURL: "https://api.openai.com/v1",
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

func (o *OpenAIProvider) Embed(ctx context.Context, text string) ([]float32, error) {
	if o.apiKey == "" {
		return nil, fmt.Errorf("openai api key is not configured")
	}
	payload, _ := json.Marshal(map[string]any{"model": embedModel, "input": text})
	body, err := o.post(ctx, o.baseURL+"/embeddings", payload)
	if err != nil {
		return nil, fmt.Errorf("openai embedding request failed: %w", err)
	}
	var parsed struct {
		Data []struct {
			Embedding []float32 `json:"embedding"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode embedding response: %w", err)
	}
	if len(parsed.Data) == 0 {
		return nil, fmt.Errorf("openai returned no embedding data")
	}
	return parsed.Data[0].Embedding, nil
}

func (o *OpenAIProvider) Complete(ctx context.Context, system, user string) (string, error) {
	if o.apiKey == "" {
		return "", fmt.Errorf("openai api key is not configured")
	}
	payload, _ := json.Marshal(map[string]any{
		"model": chatModel,
		"messages": []map[string]string{
			{"role": "system", "content": system},
			{"role": "user", "content": user},
		},
		"temperature":       chatTemperature,
		"max_tokens":        chatMaxTokens,
		"presence_penalty":  chatPresencePenalty,
		"frequency_penalty": chatFrequencyPenalty,
	})
	body, err := o.post(ctx, o.baseURL+"/chat/completions", payload)
	if err != nil {
		return "", fmt.Errorf("openai completion request failed: %w", err)
	}
	var parsed struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("decode completion response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("openai returned empty choices")
	}
	return parsed.Choices[0].Message.Content, nil
}

func (o *OpenAIProvider) post(ctx context.Context, url string, payload []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+o.apiKey)
	req.Header.Set("Content-Type", "application/json")
	resp, err := o.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, string(body))
	}
	return body, nil
}
