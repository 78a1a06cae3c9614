package tiebreak

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/posiumhq/posium-codegen/internal/config"
	"github.com/posiumhq/posium-codegen/internal/entity"
	"github.com/posiumhq/posium-codegen/internal/ports"
	"github.com/posiumhq/posium-codegen/pkg/apperr"
	"github.com/posiumhq/posium-codegen/pkg/logg"
	"github.com/posiumhq/posium-codegen/pkg/tracing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	tieBreakerName   = "AITieBreaker"
	tieBreakTracer   = "tiebreak.client"
	messagesURL      = "https://api.anthropic.com/v1/messages"
	anthropicVersion = "2023-06-01"
	maxTokens        = 1024
)

// Client proposes a replacement selector by asking a model to pick the most
// durable option for an element. The caller re-validates every proposal;
// this client never decides on its own.
type Client struct {
	config     *config.Config
	logger     *zap.Logger
	tracer     trace.Tracer
	httpClient *http.Client
}

type Params struct {
	fx.In

	Config *config.Config
	Logger *zap.Logger
}

// NewTieBreaker yields nil when the adapter is not configured; the resolver
// treats nil as "no tie-break".
func NewTieBreaker(params Params) ports.TieBreaker {
	if !params.Config.AIConfig.Enabled || params.Config.AIConfig.APIKey == "" {
		return nil
	}

	return NewClient(params)
}

func NewClient(params Params) *Client {
	return &Client{
		config:     params.Config,
		logger:     params.Logger.With(zap.String(logg.Layer, tieBreakerName)),
		tracer:     otel.Tracer(tieBreakTracer),
		httpClient: &http.Client{},
	}
}

type claudeRequest struct {
	Model     string          `json:"model"`
	MaxTokens int             `json:"max_tokens"`
	Messages  []claudeMessage `json:"messages"`
}

type claudeMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type claudeResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text,omitempty"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
}

func (c *Client) ProposeSelector(ctx context.Context, req *entity.TieBreakRequest) (proposal *entity.TieBreakProposal, err error) {
	const op = "ProposeSelector"
	logger := c.logger.With(zap.String(logg.Operation, op), zap.String(logg.XPath, req.OriginalXPath))

	ctx, step := tracing.StartSpan(ctx, c.tracer, logger, op,
		attribute.Int("candidates_count", len(req.Candidates)))
	defer func() {
		step.End(err)
	}()

	ctx, cancel := context.WithTimeout(ctx, time.Duration(c.config.AIConfig.Timeout)*time.Millisecond)
	defer cancel()

	prompt, err := buildPrompt(req)
	if err != nil {
		return nil, apperr.Wrap(op, apperr.CodeAdapterError, err, map[string]any{
			apperr.MetaReason: "prompt_build_failed",
			apperr.MetaStage:  apperr.StageTieBreak,
		})
	}

	reqBody := claudeRequest{
		Model:     c.config.AIConfig.Model,
		MaxTokens: maxTokens,
		Messages: []claudeMessage{
			{Role: "user", Content: prompt},
		},
	}

	step.AddEvent("marshaling request")

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, apperr.Wrap(op, apperr.CodeInternal, err, map[string]any{
			apperr.MetaReason: "marshal_failed",
			apperr.MetaStage:  apperr.StageTieBreak,
		})
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, messagesURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, apperr.Wrap(op, apperr.CodeInternal, err, map[string]any{
			apperr.MetaReason: "request_create_failed",
			apperr.MetaStage:  apperr.StageTieBreak,
		})
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", c.config.AIConfig.APIKey)
	httpReq.Header.Set("anthropic-version", anthropicVersion)

	step.AddEvent("sending HTTP request")

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, apperr.Wrap(op, apperr.CodeAdapterError, err, map[string]any{
			apperr.MetaReason: "http_request_failed",
			apperr.MetaStage:  apperr.StageTieBreak,
		})
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, apperr.Wrap(op, apperr.CodeAdapterError, err, map[string]any{
			apperr.MetaReason: "read_body_failed",
			apperr.MetaStage:  apperr.StageTieBreak,
		})
	}

	if httpResp.StatusCode != http.StatusOK {
		return nil, apperr.Wrap(op, apperr.CodeAdapterError,
			fmt.Errorf("API error (status %d): %s", httpResp.StatusCode, string(body)), map[string]any{
				apperr.MetaReason: "api_error",
				apperr.MetaStage:  apperr.StageTieBreak,
				"status_code":     httpResp.StatusCode,
			})
	}

	step.AddEvent("parsing response")

	var claudeResp claudeResponse

	if err := json.Unmarshal(body, &claudeResp); err != nil {
		return nil, apperr.Wrap(op, apperr.CodeAdapterError, err, map[string]any{
			apperr.MetaReason: "unmarshal_failed",
			apperr.MetaStage:  apperr.StageTieBreak,
		})
	}

	proposal, err = parseProposal(&claudeResp)
	if err != nil {
		return nil, err
	}

	logger.Debug("Received tie-break proposal",
		zap.String(logg.Kind, string(proposal.Kind)),
		zap.String(logg.Selector, proposal.Selector))

	return proposal, nil
}

func buildPrompt(req *entity.TieBreakRequest) (string, error) {
	candidates, err := json.MarshalIndent(req.Candidates, "", "  ")
	if err != nil {
		return "", err
	}

	attrs, err := json.Marshal(req.ElementAttributes)
	if err != nil {
		return "", err
	}

	var b strings.Builder

	b.WriteString("You help choose the most durable Playwright selector for a DOM element.\n\n")
	fmt.Fprintf(&b, "Original xpath: %s\n\n", req.OriginalXPath)
	fmt.Fprintf(&b, "Element HTML:\n%s\n\n", req.ElementHTML)
	fmt.Fprintf(&b, "Element attributes: %s\n\n", attrs)
	fmt.Fprintf(&b, "Ranked candidates:\n%s\n\n", candidates)
	b.WriteString("Pick the candidate most likely to survive page changes, or propose a better one you can derive from the element data. ")
	b.WriteString("Role selectors are written as \"role|name\". ")
	b.WriteString(`Respond with JSON only, no prose: {"type": "...", "selector": "...", "reliability": "high|medium|low", "explanation": "..."}`)

	return b.String(), nil
}

func parseProposal(resp *claudeResponse) (*entity.TieBreakProposal, error) {
	const op = "parseProposal"

	var text string

	for _, content := range resp.Content {
		if content.Type == "text" && content.Text != "" {
			text = content.Text

			break
		}
	}

	if text == "" {
		return nil, apperr.WrapErrorWithReason(op, apperr.CodeAdapterError, "empty_response")
	}

	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var proposal entity.TieBreakProposal

	if err := json.Unmarshal([]byte(text), &proposal); err != nil {
		return nil, apperr.Wrap(op, apperr.CodeAdapterError, err, map[string]any{
			apperr.MetaReason: "malformed_proposal",
			apperr.MetaStage:  apperr.StageTieBreak,
		})
	}

	if !proposal.Kind.Valid() || proposal.Selector == "" {
		return nil, apperr.WrapErrorWithReason(op, apperr.CodeAdapterError, "invalid_proposal")
	}

	return &proposal, nil
}
