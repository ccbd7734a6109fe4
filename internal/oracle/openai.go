package oracle

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"yqt-signal-desk/internal/domain"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const (
	defaultModel   = "gpt-4o-mini"
	defaultTimeout = 20 * time.Second
)

const systemPrompt = "You are a short-term market analyst. " +
	"Given an asset, its current price, an analysis timeframe, and recent prices, " +
	"respond with a single JSON object and nothing else: " +
	`{"action": "BUY"|"SELL"|"HOLD", "confidence": <integer 0-100>, "reasoning": "<one or two sentences>"}`

// OpenAIOracle implements Oracle against the OpenAI chat completions
// API.
type OpenAIOracle struct {
	client  openai.Client
	model   string
	timeout time.Duration
}

func NewOpenAIOracle(apiKey, model string, timeout time.Duration) *OpenAIOracle {
	if model == "" {
		model = defaultModel
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &OpenAIOracle{
		client:  openai.NewClient(option.WithAPIKey(apiKey)),
		model:   model,
		timeout: timeout,
	}
}

func (o *OpenAIOracle) GenerateSignal(ctx context.Context, req Request) (domain.SignalDraft, error) {
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	completion, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(o.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(buildPrompt(req)),
		},
	})
	if err != nil {
		return domain.SignalDraft{}, fmt.Errorf("oracle call: %w", err)
	}
	if len(completion.Choices) == 0 {
		return domain.SignalDraft{}, fmt.Errorf("oracle returned no choices")
	}

	return parseDraft(completion.Choices[0].Message.Content)
}

func buildPrompt(req Request) string {
	prices := req.RecentPrices
	if len(prices) > domain.OracleLookback {
		prices = prices[len(prices)-domain.OracleLookback:]
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Asset: %s\n", req.Asset)
	fmt.Fprintf(&sb, "Current price: %v\n", req.CurrentPrice)
	fmt.Fprintf(&sb, "Timeframe: %s\n", req.Timeframe)
	sb.WriteString("Recent prices (oldest first): ")
	for i, p := range prices {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%v", p)
	}
	return sb.String()
}

// parseDraft decodes the model's reply, tolerating markdown code
// fences around the JSON object. Any shape violation is an error.
func parseDraft(content string) (domain.SignalDraft, error) {
	trimmed := strings.TrimSpace(content)
	if strings.HasPrefix(trimmed, "```") {
		trimmed = strings.TrimPrefix(trimmed, "```json")
		trimmed = strings.TrimPrefix(trimmed, "```")
		trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
		trimmed = strings.TrimSpace(trimmed)
	}

	var raw struct {
		Action     string `json:"action"`
		Confidence int    `json:"confidence"`
		Reasoning  string `json:"reasoning"`
	}
	if err := json.Unmarshal([]byte(trimmed), &raw); err != nil {
		return domain.SignalDraft{}, fmt.Errorf("malformed oracle response: %w", err)
	}

	draft := domain.SignalDraft{
		Action:     domain.SignalAction(strings.ToUpper(strings.TrimSpace(raw.Action))),
		Confidence: raw.Confidence,
		Reasoning:  strings.TrimSpace(raw.Reasoning),
	}
	if err := draft.Validate(); err != nil {
		return domain.SignalDraft{}, fmt.Errorf("invalid oracle response: %w", err)
	}
	return draft, nil
}
