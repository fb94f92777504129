package claude

import (
	"context"
	"fmt"

	"github.com/liushuangls/go-anthropic/v2"

	"github.com/vbonduro/tastetrails/internal/narrate"
	"github.com/vbonduro/tastetrails/internal/places"
)

const Source = "claude"

type ClaudeNarrator struct {
	client *anthropic.Client
	model  string
}

func NewClaudeNarrator(apiKey, model string) *ClaudeNarrator {
	return newClaudeNarrator(anthropic.NewClient(apiKey), model)
}

func newClaudeNarrator(client *anthropic.Client, model string) *ClaudeNarrator {
	return &ClaudeNarrator{client: client, model: model}
}

// Narrate asks Claude to rewrite the template copy. Locked recaps are returned
// as-is without calling the API.
func (n *ClaudeNarrator) Narrate(ctx context.Context, stats places.WrappedStats) (*narrate.Story, error) {
	story := narrate.Template(stats)
	if stats.Locked {
		return story, nil
	}

	resp, err := n.client.CreateMessages(ctx, anthropic.MessagesRequest{
		Model:  anthropic.Model(n.model),
		System: narrate.SystemPrompt,
		Messages: []anthropic.Message{
			anthropic.NewUserTextMessage(narrate.Prompt(stats, story)),
		},
		// Eight slides of one line each fit comfortably.
		MaxTokens: 1024,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to call claude: %w", err)
	}

	return narrate.Apply(story, narrate.ParseResponse(resp.GetFirstContentText()), Source), nil
}
