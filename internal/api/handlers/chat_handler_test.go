package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"hrcentral/internal/dto"
	"hrcentral/internal/service"
	"hrcentral/pkg/config"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type unavailableEmbedder struct{}

func (unavailableEmbedder) Embed(context.Context, []string) ([][]float32, error) {
	return nil, service.ErrModelUnavailable
}

type stubGenerator struct {
	answer string
	err    error
}

func (g stubGenerator) Generate(context.Context, string) (string, error) {
	return g.answer, g.err
}

func newChatApp(t *testing.T, gen service.Generator) *fiber.App {
	t.Helper()

	retriever := service.NewRetrievalService(
		nil, unavailableEmbedder{}, nil, nil, nil, nil,
		&config.RAGConfig{TopK: 3, RecentLimit: 50}, zap.NewNop(),
	)
	chatService := service.NewChatService(retriever, gen, zap.NewNop())
	handler := NewChatHandler(chatService, zap.NewNop())

	app := fiber.New()
	app.Post("/chat", handler.Chat)
	return app
}

func postChat(t *testing.T, app *fiber.App, body string) (int, dto.ChatResponse) {
	t.Helper()

	req := httptest.NewRequest("POST", "/chat", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var parsed dto.ChatResponse
	require.NoError(t, json.Unmarshal(raw, &parsed))
	return resp.StatusCode, parsed
}

func TestChatEndpoint(t *testing.T) {
	t.Run("Returns generator answer with followups", func(t *testing.T) {
		app := newChatApp(t, stubGenerator{answer: "All good."})

		status, body := postChat(t, app, `{"user_id":"1","role":"CFO","query":"how is revenue"}`)
		assert.Equal(t, fiber.StatusOK, status)
		assert.Equal(t, "All good.", body.Answer)
		assert.Len(t, body.SuggestedFollowups, 4)
		assert.NotNil(t, body.Sources)
	})

	t.Run("Generator failure still returns 200 with an answer", func(t *testing.T) {
		app := newChatApp(t, stubGenerator{err: errors.New("upstream down")})

		status, body := postChat(t, app, `{"user_id":"1","role":"CEO","query":"how is revenue"}`)
		assert.Equal(t, fiber.StatusOK, status)
		assert.NotEmpty(t, body.Answer)
	})

	t.Run("Role is normalized case-insensitively", func(t *testing.T) {
		app := newChatApp(t, stubGenerator{answer: "ok"})

		status, body := postChat(t, app, `{"user_id":"1","role":"hr","query":"anything"}`)
		assert.Equal(t, fiber.StatusOK, status)
		assert.Equal(t, []string{"Safety incidents", "Training status", "Recruitment pipeline", "Retention metrics"}, body.SuggestedFollowups)
	})

	t.Run("Unknown role gets generic followup", func(t *testing.T) {
		app := newChatApp(t, stubGenerator{answer: "ok"})

		status, body := postChat(t, app, `{"user_id":"1","role":"INTERN","query":"anything"}`)
		assert.Equal(t, fiber.StatusOK, status)
		assert.Equal(t, []string{"Tell me more"}, body.SuggestedFollowups)
	})

	t.Run("Malformed body still returns 200 with an answer", func(t *testing.T) {
		app := newChatApp(t, stubGenerator{answer: "ok"})

		status, body := postChat(t, app, `{not json`)
		assert.Equal(t, fiber.StatusOK, status)
		assert.NotEmpty(t, body.Answer)
	})
}
