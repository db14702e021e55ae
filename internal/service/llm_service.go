package service

import (
	"context"
	"fmt"

	"hrcentral/pkg/config"

	"github.com/Role1776/gigago"
	"go.uber.org/zap"
)

// LLMService wraps the external GigaChat text-generation API. It is consumed
// as a black box: given a prompt it returns an answer string or fails, and
// every failure is recoverable by the deterministic fallback composer.
type LLMService struct {
	client *gigago.Client
	model  *gigago.GenerativeModel
	config *config.GigaChatConfig
	logger *zap.Logger
}

func buildSystemInstruction() string {
	return `You are an intelligent business assistant for HRCentral, a manufacturing company. You answer questions for company executives (CEO, CFO, COO, HR) using context retrieved from internal dashboards, reports and operational databases.

Principles:
- Answer strictly from the provided context when it is relevant.
- Cite concrete figures from the context whenever they are present.
- If the context does not cover the question, say so politely instead of guessing.
- Be concise and professional.`
}

func NewLLMService(cfg *config.GigaChatConfig, logger *zap.Logger) (*LLMService, error) {
	ctx := context.Background()

	opts := []gigago.Option{
		gigago.WithCustomScope(cfg.Scope),
	}
	if cfg.InsecureSkipVerify {
		opts = append(opts, gigago.WithCustomInsecureSkipVerify(true))
		logger.Warn("GigaChat TLS certificate verification is disabled")
	}

	client, err := gigago.NewClient(ctx, cfg.APIKey, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GigaChat client: %w", err)
	}

	model := client.GenerativeModel(cfg.Model)
	model.SystemInstruction = buildSystemInstruction()
	model.Temperature = 0.3

	logger.Info("Using GigaChat model", zap.String("model", cfg.Model))

	return &LLMService{
		client: client,
		model:  model,
		config: cfg,
		logger: logger,
	}, nil
}

// Generate sends a single-turn prompt to the model and returns the answer
// text verbatim. The call is bounded by the configured generation timeout.
func (s *LLMService) Generate(ctx context.Context, prompt string) (string, error) {
	if s.config.GenerateTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.GenerateTimeout)
		defer cancel()
	}

	messages := []gigago.Message{
		{Role: gigago.RoleUser, Content: prompt},
	}

	resp, err := s.model.Generate(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("failed to generate response: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from LLM")
	}

	return resp.Choices[0].Message.Content, nil
}

func (s *LLMService) Close() error {
	if s.client != nil {
		s.client.Close()
	}
	return nil
}
