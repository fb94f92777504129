package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/vbonduro/tastetrails/internal/narrate"
	"github.com/vbonduro/tastetrails/internal/places"
)

const Source = "ollama"

type generateRequest struct {
	Model  string `json:"model"`
	System string `json:"system"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type OllamaNarrator struct {
	host   string
	model  string
	client *http.Client
}

func NewOllamaNarrator(host, model string) *OllamaNarrator {
	return &OllamaNarrator{
		host:   host,
		model:  model,
		client: &http.Client{},
	}
}

func (n *OllamaNarrator) Narrate(ctx context.Context, stats places.WrappedStats) (*narrate.Story, error) {
	story := narrate.Template(stats)
	if stats.Locked {
		return story, nil
	}

	payload, err := json.Marshal(generateRequest{
		Model:  n.model,
		System: narrate.SystemPrompt,
		Prompt: narrate.Prompt(stats, story),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.host+"/api/generate", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call ollama: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			slog.Error("failed to close ollama response body", "error", err)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ollama returned status %d", resp.StatusCode)
	}

	var respBody struct {
		Response string `json:"response"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&respBody); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return narrate.Apply(story, narrate.ParseResponse(respBody.Response), Source), nil
}
