package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// ReplyRequest carries everything the model needs to speak as a specific
// honey badger inside a specific challenge.
type ReplyRequest struct {
	SystemPrompt         string
	BadgerName           string
	BadgerLevel          int
	ChallengeTitle       string
	ChallengeDescription string
	UserFirstName        string
	UserMessage          string
}

type GeminiClient struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewGeminiClient(apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is not configured")
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	model := client.GenerativeModel("gemini-1.5-pro")
	// Upper-middle temperature keeps replies varied but on-character; the
	// token cap holds them to 1-2 sentences.
	model.SetTemperature(0.8)
	model.SetMaxOutputTokens(150)

	return &GeminiClient{
		client: client,
		model:  model,
	}, nil
}

func (c *GeminiClient) Close() {
	c.client.Close()
}

// GenerateBadgerReply produces an in-character companion reply to a user
// message. Callers are expected to bound ctx and fall back to phrase banks on
// any error. Safe for concurrent use: the per-request system instruction is
// set on a copy of the model, never on the shared instance.
func (c *GeminiClient) GenerateBadgerReply(ctx context.Context, req ReplyRequest) (string, error) {
	model := *c.model
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(fmt.Sprintf(
			"%s\n\nContext: You are %s, a level %d honey badger helping %s with their challenge %q. The challenge is about: %s. Keep responses short (1-2 sentences), energetic, and true to your personality.",
			req.SystemPrompt, req.BadgerName, req.BadgerLevel, req.UserFirstName,
			req.ChallengeTitle, req.ChallengeDescription,
		))},
	}

	resp, err := model.GenerateContent(ctx, genai.Text(req.UserMessage))
	if err != nil {
		return "", fmt.Errorf("gemini generation failed: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("no content generated")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}

	reply := strings.TrimSpace(sb.String())
	if reply == "" {
		return "", fmt.Errorf("empty reply")
	}
	return reply, nil
}
