package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"hrcentral/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeGenerator struct {
	answer string
	err    error
	prompt string
}

func (f *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	f.prompt = prompt
	return f.answer, f.err
}

func newTestChat(generator Generator) *ChatService {
	retriever := newTestRetrieval(nil, &fakeEmbedder{err: ErrModelUnavailable}, nil, nil, nil, nil)
	return NewChatService(retriever, generator, zap.NewNop())
}

func TestCompose(t *testing.T) {
	passages := []models.Passage{
		{Text: "Sales: Product Gadget_Z sold 42 units. Revenue: $12600, Profit: $5040, Margin: 0.4, Region: North", Source: "sales", Score: 0.9},
		{Text: "Margins are compressing in the consumer segment.", Source: "CFO Analysis", Score: 0.8},
		{Text: "Sales: Product Widget_A sold 7 units. Revenue: $560, Profit: $196, Margin: 0.35, Region: West", Source: "sales", Score: 0.7},
	}

	t.Run("Generator answer is passed through", func(t *testing.T) {
		gen := &fakeGenerator{answer: "Revenue is strong."}
		svc := newTestChat(gen)

		result := svc.Compose(context.Background(), models.RoleCFO, "how is revenue", passages)
		assert.Equal(t, "Revenue is strong.", result.Answer)
	})

	t.Run("Prompt carries role, context and query", func(t *testing.T) {
		gen := &fakeGenerator{answer: "ok"}
		svc := newTestChat(gen)

		svc.Compose(context.Background(), models.RoleCFO, "how is revenue", passages)

		assert.Contains(t, gen.prompt, "CFO")
		assert.Contains(t, gen.prompt, "how is revenue")
		for _, p := range passages {
			assert.Contains(t, gen.prompt, "- "+p.Text)
		}
	})

	t.Run("Sources are deduplicated in first-seen order", func(t *testing.T) {
		gen := &fakeGenerator{answer: "ok"}
		svc := newTestChat(gen)

		result := svc.Compose(context.Background(), models.RoleCFO, "how is revenue", passages)
		assert.Equal(t, []string{"sales", "CFO Analysis"}, result.Sources)
	})

	t.Run("Empty retrieval yields no-data context", func(t *testing.T) {
		gen := &fakeGenerator{answer: "ok"}
		svc := newTestChat(gen)

		result := svc.Compose(context.Background(), models.RoleCFO, "how is revenue", nil)
		assert.Contains(t, gen.prompt, "No specific data found in the database.")
		assert.Empty(t, result.Sources)
		assert.NotNil(t, result.Sources)
	})
}

func TestComposeFallback(t *testing.T) {
	failing := &fakeGenerator{err: errors.New("upstream timeout")}

	quantitative := []models.Passage{
		{Text: "Sales: Product Device_Pro sold 12 units. Revenue: $6000, Profit: $2700, Margin: 0.45, Region: East", Source: "sales", Score: 0.9},
	}
	qualitative := []models.Passage{
		{Text: "Employee engagement improved after the Q2 survey.", Source: "HR Quarterly", Score: 0.8},
	}

	t.Run("Highest-margin question gets margin elaboration", func(t *testing.T) {
		svc := newTestChat(failing)
		result := svc.Compose(context.Background(), models.RoleCFO, "which product has the highest margin", quantitative)

		assert.True(t, strings.HasPrefix(result.Answer, "Based on the data I found:"))
		assert.Contains(t, result.Answer, "Device_Pro and Gadget_Z have the highest margins (40-48%).")
	})

	t.Run("Revenue question gets revenue elaboration", func(t *testing.T) {
		svc := newTestChat(failing)
		result := svc.Compose(context.Background(), models.RoleCFO, "summarize revenue", quantitative)

		assert.Contains(t, result.Answer, "I can see revenue data across multiple products and regions.")
	})

	t.Run("Forecast question gets forecast elaboration", func(t *testing.T) {
		svc := newTestChat(failing)
		result := svc.Compose(context.Background(), models.RoleCEO, "what is the forecast", quantitative)

		assert.Contains(t, result.Answer, "Q4 revenue is projected to exceed targets by 15%, driven by Gadget_Z adoption.")
	})

	t.Run("Manufacturing passages also count as quantitative", func(t *testing.T) {
		svc := newTestChat(failing)
		mfg := []models.Passage{
			{Text: "Mfg: Line Line_C (Shift: Night). Throughput: 850, Energy: 480kWh, Maint Cost: $300, Downtime: 45m", Source: "manufacturing", Score: 0.9},
		}
		result := svc.Compose(context.Background(), models.RoleCOO, "forecast for production", mfg)

		assert.True(t, strings.HasPrefix(result.Answer, "Based on the data I found:"))
	})

	t.Run("Other questions get rephrase hint", func(t *testing.T) {
		svc := newTestChat(failing)
		result := svc.Compose(context.Background(), models.RoleCFO, "tell me something", quantitative)

		assert.Contains(t, result.Answer, "Please try rephrasing your question or ask about specific metrics.")
	})

	t.Run("Qualitative-only context returns raw data note", func(t *testing.T) {
		svc := newTestChat(failing)
		result := svc.Compose(context.Background(), models.RoleHR, "how is engagement", qualitative)

		assert.True(t, strings.HasPrefix(result.Answer, "I found relevant information:"))
		assert.Contains(t, result.Answer, "Employee engagement improved after the Q2 survey.")
		assert.Contains(t, result.Answer, "AI summarization temporarily unavailable. Showing raw data.")
	})

	t.Run("Answer is never empty", func(t *testing.T) {
		svc := newTestChat(failing)
		for _, role := range []models.Role{models.RoleCEO, models.RoleCFO, models.RoleCOO, models.RoleHR, models.Role("INTERN")} {
			result := svc.Compose(context.Background(), role, "", nil)
			assert.NotEmpty(t, result.Answer)
		}
	})
}

func TestAsk(t *testing.T) {
	t.Run("Unavailable retrieval still produces an answer", func(t *testing.T) {
		gen := &fakeGenerator{answer: "ok"}
		svc := newTestChat(gen)

		result := svc.Ask(context.Background(), models.RoleCEO, "how are sales")
		require.NotNil(t, result)
		assert.Equal(t, "ok", result.Answer)
		assert.Contains(t, gen.prompt, "No specific data found in the database.")
	})

	t.Run("Retrieval and generator failure still produce an answer", func(t *testing.T) {
		svc := newTestChat(&fakeGenerator{err: errors.New("boom")})

		result := svc.Ask(context.Background(), models.RoleCEO, "how are sales")
		require.NotNil(t, result)
		assert.NotEmpty(t, result.Answer)
	})
}

func TestFollowupsForRole(t *testing.T) {
	t.Run("Each known role has four suggestions", func(t *testing.T) {
		for _, role := range []models.Role{models.RoleCEO, models.RoleCFO, models.RoleCOO, models.RoleHR} {
			assert.Len(t, FollowupsForRole(role), 4, "role %s", role)
		}
	})

	t.Run("HR suggestions", func(t *testing.T) {
		assert.Equal(t,
			[]string{"Safety incidents", "Training status", "Recruitment pipeline", "Retention metrics"},
			FollowupsForRole(models.RoleHR),
		)
	})

	t.Run("Unknown role gets generic suggestion", func(t *testing.T) {
		assert.Equal(t, []string{"Tell me more"}, FollowupsForRole(models.Role("INTERN")))
	})
}
