package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/secmon-lab/mnemosyne/pkg/domain/interfaces"
	"github.com/secmon-lab/mnemosyne/pkg/domain/model"
)

// client implements interfaces.Enricher on top of a gollem LLM client
type client struct {
	llmClient gollem.LLMClient
	prompt    string
}

// Option is a functional option for client configuration
type Option func(*client)

// WithPrompt overrides the default analysis instruction
func WithPrompt(prompt string) Option {
	return func(c *client) {
		if prompt != "" {
			c.prompt = prompt
		}
	}
}

// New creates an LLM-backed enricher
func New(llmClient gollem.LLMClient, opts ...Option) (interfaces.Enricher, error) {
	if llmClient == nil {
		return nil, goerr.New("LLM client is required")
	}

	c := &client{
		llmClient: llmClient,
		prompt:    defaultAnalysisPrompt,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

const defaultAnalysisPrompt = "Analyze this captured moment and describe it for the person who lived it.\nBe concrete and warm; do not invent details that are not in the input."

// Analyze derives an analysis from the capture's content via a single
// JSON-schema LLM generation
func (c *client) Analyze(ctx context.Context, capture *model.Capture) (*model.Analysis, error) {
	session, err := c.llmClient.NewSession(ctx,
		gollem.WithSessionContentType(gollem.ContentTypeJSON),
		gollem.WithSessionResponseSchema(c.buildResponseSchema()),
		gollem.WithSessionSystemPrompt(buildSystemPrompt()),
	)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create LLM session")
	}

	resp, err := session.GenerateContent(ctx, gollem.Text(c.buildUserPrompt(capture)))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to generate analysis", goerr.V("captureID", capture.ID))
	}
	if len(resp.Texts) == 0 {
		return nil, goerr.New("empty LLM response", goerr.V("captureID", capture.ID))
	}

	var llmResp llmResponse
	if err := json.Unmarshal([]byte(resp.Texts[0]), &llmResp); err != nil {
		return nil, goerr.Wrap(err, "failed to parse LLM response",
			goerr.V("captureID", capture.ID),
			goerr.V("response", resp.Texts[0]),
		)
	}

	return llmResp.toAnalysis(), nil
}

// buildSystemPrompt creates the fixed system prompt for capture analysis
func buildSystemPrompt() string {
	var sb strings.Builder

	sb.WriteString("You are a memory analysis assistant. Your task is to turn one captured moment into a short structured analysis.\n\n")
	sb.WriteString("## Instructions:\n\n")
	sb.WriteString("1. Read the transcript and location hint of the capture.\n")
	sb.WriteString("2. Produce:\n")
	sb.WriteString("   - title: a short title for the moment (in the same language as the transcript)\n")
	sb.WriteString("   - highlights: one to three notable phrases, verbatim or lightly condensed from the transcript\n")
	sb.WriteString("   - mood: one of positive, neutral, negative\n")
	sb.WriteString("   - location_hint: the place name if one is evident, otherwise empty\n")
	sb.WriteString("   - themes: one to three lowercase theme words (e.g. friends, work, travel, food, outdoors)\n")
	sb.WriteString("3. If the transcript is empty, say so in the highlights rather than inventing content.\n")

	return sb.String()
}

// buildUserPrompt creates the per-capture prompt
func (c *client) buildUserPrompt(capture *model.Capture) string {
	var sb strings.Builder

	sb.WriteString(c.prompt)
	sb.WriteString("\n\n## Capture:\n\n")
	fmt.Fprintf(&sb, "**Captured at:** %s\n", model.FormatTimestamp(capture.Timestamp))
	if capture.Transcript != "" {
		fmt.Fprintf(&sb, "**Transcript:** %s\n", capture.Transcript)
	} else {
		sb.WriteString("**Transcript:** (none)\n")
	}
	if capture.Location != nil && capture.Location.Name != "" {
		fmt.Fprintf(&sb, "**Location:** %s\n", capture.Location.Name)
	}
	if capture.PhotoRef != "" {
		sb.WriteString("**Photo:** attached (reference only, content not available)\n")
	}
	if capture.AudioRef != "" {
		sb.WriteString("**Audio:** attached (reference only, content not available)\n")
	}

	return sb.String()
}

// buildResponseSchema creates the JSON schema for structured output
func (c *client) buildResponseSchema() *gollem.Parameter {
	return &gollem.Parameter{
		Title:       "CaptureAnalysisResponse",
		Description: "Structured analysis of one captured moment",
		Type:        gollem.TypeObject,
		Properties: map[string]*gollem.Parameter{
			"title": {
				Type:        gollem.TypeString,
				Description: "A short title for the moment",
				Required:    true,
			},
			"highlights": {
				Type:        gollem.TypeArray,
				Description: "Notable phrases from the transcript",
				Items:       &gollem.Parameter{Type: gollem.TypeString},
				Required:    true,
			},
			"mood": {
				Type:        gollem.TypeString,
				Description: "One of positive, neutral, negative",
				Required:    true,
			},
			"location_hint": {
				Type:        gollem.TypeString,
				Description: "Place name if evident, otherwise empty",
			},
			"themes": {
				Type:        gollem.TypeArray,
				Description: "Lowercase theme words",
				Items:       &gollem.Parameter{Type: gollem.TypeString},
			},
		},
	}
}

// llmResponse is the structured output from the LLM
type llmResponse struct {
	Title        string   `json:"title"`
	Highlights   []string `json:"highlights"`
	Mood         string   `json:"mood"`
	LocationHint string   `json:"location_hint"`
	Themes       []string `json:"themes"`
}

func (r *llmResponse) toAnalysis() *model.Analysis {
	return &model.Analysis{
		Title:        r.Title,
		Highlights:   r.Highlights,
		Mood:         r.Mood,
		LocationHint: r.LocationHint,
		Themes:       r.Themes,
	}
}
