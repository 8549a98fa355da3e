// Package integrations adapts AI providers into the single generation call
// the documentation generator needs.
package integrations

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/doxai/doxai/internal/errors"
	"github.com/doxai/doxai/internal/logging"
	"github.com/doxai/doxai/internal/provider"
)

// ErrEmptyResponse is returned when the provider finished without text.
var ErrEmptyResponse = errors.Mark(errors.New("AI provider returned no text"), provider.ErrProvider)

// GatewayConfig controls generation requests.
type GatewayConfig struct {
	Model             string
	MaxTokens         int
	Temperature       *float64
	RequestsPerMinute int
	Logger            *zap.SugaredLogger
}

// Usage accumulates token counts over a run.
type Usage struct {
	Requests     int
	InputTokens  int
	OutputTokens int
}

// Gateway wraps an LLMProvider into a (system, user) -> text call. It paces
// requests with a token bucket and never retries: callers see rate-limit
// and safety-block failures as classified provider errors.
type Gateway struct {
	provider provider.LLMProvider
	cfg      GatewayConfig
	limiter  *rate.Limiter
	logger   *zap.SugaredLogger

	mu    sync.Mutex
	usage Usage
}

// NewGateway creates a Gateway. RequestsPerMinute <= 0 disables pacing.
func NewGateway(p provider.LLMProvider, cfg GatewayConfig) *Gateway {
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 4096
	}
	limiter := rate.NewLimiter(rate.Inf, 1)
	if cfg.RequestsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Limit(float64(cfg.RequestsPerMinute)/60.0), 1)
	}
	return &Gateway{
		provider: p,
		cfg:      cfg,
		limiter:  limiter,
		logger:   logging.OrNop(cfg.Logger),
	}
}

// Generate sends one request and returns the complete response text.
func (g *Gateway) Generate(ctx context.Context, system, user string) (string, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("waiting for AI rate limiter: %w", err)
	}

	req := provider.CompletionRequest{
		Model:       g.cfg.Model,
		System:      system,
		Messages:    []provider.Message{provider.NewUserMessage(user)},
		MaxTokens:   g.cfg.MaxTokens,
		Temperature: g.cfg.Temperature,
	}

	ch, err := g.provider.Stream(ctx, req)
	if err != nil {
		return "", fmt.Errorf("ai generate: %w", err)
	}

	var b strings.Builder
	var stop provider.StreamEvent
	for evt := range ch {
		switch evt.Type {
		case provider.EventTextDelta:
			b.WriteString(evt.Text)
		case provider.EventStop:
			stop = evt
		case provider.EventError:
			// Let the producer finish without blocking on an abandoned channel.
			go func() {
				for range ch {
				}
			}()
			return "", fmt.Errorf("ai stream: %w", evt.Error)
		}
	}

	g.record(stop)
	if stop.StopReason == "max_tokens" || stop.StopReason == "length" {
		g.logger.Warnw("AI response truncated at token limit", "max_tokens", g.cfg.MaxTokens)
	}

	text := cleanOutput(b.String())
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

// Usage returns the accumulated token counts.
func (g *Gateway) Usage() Usage {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.usage
}

func (g *Gateway) record(stop provider.StreamEvent) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.usage.Requests++
	g.usage.InputTokens += stop.InputTokens
	g.usage.OutputTokens += stop.OutputTokens
}

// cleanOutput trims whitespace and removes a code fence wrapping the whole
// answer, which models add despite instructions.
func cleanOutput(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") || !strings.HasSuffix(s, "```") || len(s) < 6 {
		return s
	}
	inner := strings.TrimSuffix(s, "```")
	nl := strings.IndexByte(inner, '\n')
	if nl < 0 {
		return s
	}
	return strings.TrimSpace(inner[nl+1:])
}
