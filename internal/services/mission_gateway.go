package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	openai "github.com/sashabaranov/go-openai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"photowalk/internal/config"
	"photowalk/internal/walk"
	"photowalk/pkg/utils"
)

const (
	missionMaxTokens   = 500
	missionTemperature = 0.8
)

const missionSystemPrompt = `あなたは散歩中の写真撮影ミッションを作成するアシスタントです。場所と季節に応じて、3つのシンプルで達成可能なミッションを提案してください。各ミッションは1-3語の短い名前と、簡潔な説明をつけてください。JSON形式で回答してください。`

// MissionPrompt carries the four inputs embedded in the generation prompt.
type MissionPrompt struct {
	StartLocation string
	EndLocation   string
	Season        string
	TimeOfDay     string
}

func (p MissionPrompt) String() string {
	return strings.TrimSpace(fmt.Sprintf(`
%sから%sへの散歩で、%sの%sに撮影するミッションを3つ作成してください。

要求：
- 各ミッションは達成回数3回
- 場所の特徴や季節感を考慮
- 一眼レフカメラでの撮影を想定
- 簡潔で分かりやすい内容

以下の形式のJSONで回答してください：
{
  "missions": [
    {"name": "ミッション名", "description": "説明"},
    {"name": "ミッション名", "description": "説明"},
    {"name": "ミッション名", "description": "説明"}
  ]
}
`, p.StartLocation, p.EndLocation, p.Season, p.TimeOfDay))
}

// MissionGateway asks an external text generator for mission drafts. It
// never substitutes defaults itself; every failure comes back typed.
type MissionGateway interface {
	Generate(ctx context.Context, prompt MissionPrompt) ([]walk.MissionDraft, error)
}

// ParseMissionDrafts pulls the {"missions": [...]} object out of free-form
// generated text.
func ParseMissionDrafts(text string) ([]walk.MissionDraft, error) {
	if strings.TrimSpace(text) == "" {
		return nil, utils.ErrEmptyGeneration
	}

	span, ok := utils.ExtractJSONObject(text)
	if !ok {
		return nil, utils.ErrNoJSONSpan
	}

	var payload struct {
		Missions []walk.MissionDraft `json:"missions"`
	}
	if err := json.Unmarshal([]byte(span), &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrMalformedGeneration, err)
	}
	if payload.Missions == nil {
		return nil, fmt.Errorf("%w: missions key absent", utils.ErrMalformedGeneration)
	}
	return payload.Missions, nil
}

// ---------------- OpenAI ----------------

type openAIMissionGateway struct {
	client *openai.Client
	model  string
}

func NewOpenAIMissionGateway(cfg config.Config) MissionGateway {
	if cfg.OpenAIAPIKey == "" {
		return &openAIMissionGateway{model: cfg.OpenAIModel}
	}

	clientCfg := openai.DefaultConfig(cfg.OpenAIAPIKey)
	if cfg.OpenAIBaseURL != "" {
		clientCfg.BaseURL = cfg.OpenAIBaseURL
	}
	return &openAIMissionGateway{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.OpenAIModel,
	}
}

func (g *openAIMissionGateway) Generate(ctx context.Context, prompt MissionPrompt) ([]walk.MissionDraft, error) {
	if g.client == nil {
		return nil, utils.ErrMissingCredentials
	}

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: missionSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt.String()},
		},
		MaxTokens:   missionMaxTokens,
		Temperature: missionTemperature,
	})
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) && apiErr.HTTPStatusCode != 0 {
			return nil, &utils.StatusError{Kind: utils.ErrGenerationStatus, StatusCode: apiErr.HTTPStatusCode}
		}
		var reqErr *openai.RequestError
		if errors.As(err, &reqErr) && reqErr.HTTPStatusCode != 0 {
			return nil, &utils.StatusError{Kind: utils.ErrGenerationStatus, StatusCode: reqErr.HTTPStatusCode}
		}
		return nil, fmt.Errorf("openai chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, utils.ErrEmptyGeneration
	}
	return ParseMissionDrafts(resp.Choices[0].Message.Content)
}

// ---------------- Gemini ----------------

type geminiMissionGateway struct {
	client *genai.Client
	model  string
}

func NewGeminiMissionGateway(ctx context.Context, cfg config.Config) (MissionGateway, error) {
	model := cfg.GeminiModel
	if model == "" {
		model = "gemini-1.5-flash"
	}
	if cfg.GeminiAPIKey == "" {
		return &geminiMissionGateway{model: model}, nil
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiAPIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &geminiMissionGateway{client: client, model: model}, nil
}

func (g *geminiMissionGateway) Generate(ctx context.Context, prompt MissionPrompt) ([]walk.MissionDraft, error) {
	if g.client == nil {
		return nil, utils.ErrMissingCredentials
	}

	m := g.client.GenerativeModel(g.model)
	m.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(missionSystemPrompt)}}
	m.SetTemperature(missionTemperature)
	m.SetMaxOutputTokens(missionMaxTokens)

	resp, err := m.GenerateContent(ctx, genai.Text(prompt.String()))
	if err != nil {
		var gErr *googleapi.Error
		if errors.As(err, &gErr) {
			return nil, &utils.StatusError{Kind: utils.ErrGenerationStatus, StatusCode: gErr.Code}
		}
		return nil, fmt.Errorf("gemini: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, utils.ErrEmptyGeneration
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			text.WriteString(string(t))
		}
	}
	return ParseMissionDrafts(text.String())
}

// Close releases the Gemini client
func (g *geminiMissionGateway) Close() error {
	if g.client == nil {
		return nil
	}
	return g.client.Close()
}
