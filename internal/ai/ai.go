// Package ai is the second classification layer: an LLM consulted only
// when the pattern classifier is unsure. Pattern detection handles the
// bulk of queries for free; the model is reserved for the ambiguous
// tail.
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/citeflow/citeflow/internal/citation"
	"github.com/citeflow/citeflow/internal/classify"
)

// DefaultThreshold is the pattern-classifier confidence below which the
// model is consulted.
const DefaultThreshold = 0.5

const requestTimeout = 10 * time.Second

// Classifier refines a low-confidence classification. Implementations
// return an error when the model is unreachable; callers treat that as
// "no refinement".
type Classifier interface {
	Classify(ctx context.Context, query string, hints map[string]string) (*classify.Result, error)
}

// OpenAI classifies via the OpenAI chat completions API.
type OpenAI struct {
	client *openai.Client
	model  string
}

// Option configures an OpenAI classifier.
type Option func(*OpenAI)

// WithModel overrides the default model.
func WithModel(model string) Option {
	return func(o *OpenAI) {
		if model != "" {
			o.model = model
		}
	}
}

// WithBaseURL points the client at a different endpoint, mainly for
// tests.
func WithBaseURL(apiKey, baseURL string) Option {
	return func(o *OpenAI) {
		cfg := openai.DefaultConfig(apiKey)
		cfg.BaseURL = baseURL
		o.client = openai.NewClientWithConfig(cfg)
	}
}

// NewOpenAI creates a classifier using the given API key.
func NewOpenAI(apiKey string, opts ...Option) (*OpenAI, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("ai: API key is required")
	}
	o := &OpenAI{
		client: openai.NewClient(apiKey),
		model:  openai.GPT4oMini,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o, nil
}

const systemPrompt = "You are a citation classifier. You respond with JSON only."

// response is the JSON contract the model is asked to follow.
type response struct {
	Type       string  `json:"type"`
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning"`
}

// Classify asks the model for the source type of query.
func (o *OpenAI) Classify(ctx context.Context, query string, hints map[string]string) (*classify.Result, error) {
	cctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	resp, err := o.client.CreateChatCompletion(cctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: buildPrompt(query, hints)},
		},
		MaxTokens:   256,
		Temperature: 0.1,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("ai: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("ai: empty completion")
	}

	var parsed response
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return nil, fmt.Errorf("ai: parse completion: %w", err)
	}

	return &classify.Result{
		Type:       citation.ParseSourceType(parsed.Type),
		Confidence: parsed.Confidence,
		Query:      query,
		Hints:      map[string]string{"ai_reasoning": parsed.Reasoning},
	}, nil
}

func buildPrompt(query string, hints map[string]string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Analyze this citation query and determine what type of source it refers to.\n\nQuery: %q\n", query)
	if len(hints) > 0 {
		encoded, _ := json.Marshal(hints)
		fmt.Fprintf(&sb, "Hints from pattern detection: %s\n", encoded)
	}
	sb.WriteString(`
Classify into exactly ONE of these types:
- journal: academic journal article, research paper, scholarly publication
- book: book, monograph, edited volume, textbook
- legal: court case, legal opinion, statute, regulation
- interview: oral interview, personal communication
- newspaper: news article from a newspaper or magazine
- government: government document, report, official publication
- medical: medical/clinical article, PubMed source
- url: generic website or online source
- unknown: cannot determine type

Respond with JSON only:
{"type": "TYPE", "confidence": 0.0-1.0, "reasoning": "brief explanation"}`)
	return sb.String()
}

// Refine applies the escalation policy: consult the model only when the
// pattern result's confidence is below threshold, and adopt the model's
// answer only when it is strictly more confident. Model failure leaves
// the pattern result untouched.
func Refine(ctx context.Context, c Classifier, pattern classify.Result, threshold float64) classify.Result {
	if c == nil || pattern.Confidence >= threshold {
		return pattern
	}
	refined, err := c.Classify(ctx, pattern.Query, pattern.Hints)
	if err != nil || refined == nil {
		return pattern
	}
	if refined.Confidence > pattern.Confidence {
		return *refined
	}
	return pattern
}
