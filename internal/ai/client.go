package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"go.uber.org/zap"

	"github.com/nikoly240702/tender-sniper/internal/apperr"
)

// Client wraps the Anthropic SDK behind three provider-agnostic LLM
// collaborator operations: Intent, Relevance, Extract. A nil Client (no API
// key configured) is a valid zero value — every caller treats that as
// "no LLM backend configured", never a panic.
type Client struct {
	sdk        *anthropic.Client
	model      string
	timeout    time.Duration
	maxRetries int
	retryDelay time.Duration
	log        *zap.SugaredLogger
}

// New builds a Client, or returns nil if apiKey is empty — callers must
// handle a nil *Client as "AI disabled" rather than dereferencing it blindly.
func New(apiKey, model string, timeout time.Duration, maxRetries int, retryDelay time.Duration, log *zap.SugaredLogger) *Client {
	if apiKey == "" {
		return nil
	}
	sdk := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &Client{
		sdk:        &sdk,
		model:      model,
		timeout:    timeout,
		maxRetries: maxRetries,
		retryDelay: retryDelay,
		log:        log,
	}
}

// Configured reports whether c is a usable LLM backend (nil-safe).
func (c *Client) Configured() bool {
	return c != nil
}

var jsonObjectPattern = regexp.MustCompile(`(?s)\{.*\}`)

// complete issues a single prompted completion request with the retry policy
// shared by all three operations, and extracts the first JSON object found
// in the response text — the model is asked for strict JSON but, per the
// original implementation's defensive parsing, a stray preamble is
// tolerated rather than treated as a hard failure.
func (c *Client) complete(ctx context.Context, op, systemPrompt, userPrompt string, maxTokens int) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var lastErr error
	delay := c.retryDelay
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		msg, err := c.sdk.Messages.New(ctx, anthropic.MessageNewParams{
			Model:     anthropic.Model(c.model),
			MaxTokens: int64(maxTokens),
			System: []anthropic.TextBlockParam{
				{Text: systemPrompt},
			},
			Messages: []anthropic.MessageParam{
				anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt)),
			},
		})
		if err == nil {
			return extractText(msg), nil
		}
		lastErr = err
		if attempt == c.maxRetries {
			break
		}
		c.log.Warnw("llm request failed, retrying", "op", op, "attempt", attempt+1, "error", err)
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return "", apperr.New(apperr.KindNetwork, op, ctx.Err())
		}
		delay *= 2
	}
	return "", apperr.New(apperr.KindNetwork, op, lastErr)
}

func extractText(msg *anthropic.Message) string {
	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	return sb.String()
}

func extractJSON(raw string, dest any) error {
	match := jsonObjectPattern.FindString(raw)
	if match == "" {
		return fmt.Errorf("no JSON object found in LLM response")
	}
	return json.Unmarshal([]byte(match), dest)
}
