package service

import (
	"context"
	"errors"
	"testing"

	"hrcentral/internal/models"
	"hrcentral/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeEmbedder maps known texts to fixed vectors. Unknown texts get a vector
// orthogonal to everything else so they never pass a similarity threshold.
type fakeEmbedder struct {
	vectors map[string][]float32
	err     error
	calls   int
}

func (f *fakeEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := make([][]float32, len(texts))
	for i, text := range texts {
		if vec, ok := f.vectors[text]; ok {
			out[i] = vec
		} else {
			out[i] = []float32{0, 0, 0, 1}
		}
	}
	return out, nil
}

type fakeSales struct {
	records []*models.SalesRecord
	err     error
}

func (f *fakeSales) Recent(_ context.Context, _ int) ([]*models.SalesRecord, error) {
	return f.records, f.err
}

type fakeManufacturing struct {
	records []*models.ManufacturingRecord
	err     error
}

func (f *fakeManufacturing) Recent(_ context.Context, _ int) ([]*models.ManufacturingRecord, error) {
	return f.records, f.err
}

type fakeField struct {
	records []*models.FieldIncident
	err     error
}

func (f *fakeField) Recent(_ context.Context, _ int) ([]*models.FieldIncident, error) {
	return f.records, f.err
}

type fakeEmployees struct {
	records []*models.Employee
	err     error
}

func (f *fakeEmployees) Recent(_ context.Context, _ int) ([]*models.Employee, error) {
	return f.records, f.err
}

func testRAGConfig() *config.RAGConfig {
	return &config.RAGConfig{TopK: 3, RecentLimit: 50}
}

func newTestRetrieval(
	kb []models.KnowledgeEntry,
	embedder Embedder,
	sales salesSource,
	mfg manufacturingSource,
	field fieldSource,
	employees employeeSource,
) *RetrievalService {
	if sales == nil {
		sales = &fakeSales{}
	}
	if mfg == nil {
		mfg = &fakeManufacturing{}
	}
	if field == nil {
		field = &fakeField{}
	}
	if employees == nil {
		employees = &fakeEmployees{}
	}
	return NewRetrievalService(kb, embedder, sales, mfg, field, employees, testRAGConfig(), zap.NewNop())
}

func TestSearchKnowledgeBase(t *testing.T) {
	kb := []models.KnowledgeEntry{
		{Text: "supply chain risk is elevated", Source: "Risk Report", Roles: []models.Role{models.RoleCEO}},
		{Text: "liquidity position remains strong", Source: "Treasury Report", Roles: []models.Role{models.RoleCFO}},
		{Text: "unrelated trivia", Source: "Misc", Roles: []models.Role{models.RoleCEO}},
	}

	embedder := &fakeEmbedder{vectors: map[string][]float32{
		"what are our top risks":            {1, 0, 0, 0},
		"supply chain risk is elevated":     {0.9, 0.1, 0, 0},
		"liquidity position remains strong": {0.9, 0, 0.1, 0},
		"unrelated trivia":                  {0, 1, 0, 0},
	}}

	t.Run("Returns only passages above threshold", func(t *testing.T) {
		svc := newTestRetrieval(kb, embedder, nil, nil, nil, nil)
		passages := svc.Search(context.Background(), "what are our top risks", models.RoleCEO, 3)

		require.Len(t, passages, 1)
		assert.Equal(t, "supply chain risk is elevated", passages[0].Text)
		assert.Equal(t, "Risk Report", passages[0].Source)
		assert.Greater(t, passages[0].Score, kbScoreThreshold)
	})

	t.Run("Entries for other roles are invisible", func(t *testing.T) {
		svc := newTestRetrieval(kb, embedder, nil, nil, nil, nil)
		passages := svc.Search(context.Background(), "what are our top risks", models.RoleCEO, 3)

		for _, p := range passages {
			assert.NotEqual(t, "Treasury Report", p.Source)
		}
	})

	t.Run("CFO sees CFO entries", func(t *testing.T) {
		svc := newTestRetrieval(kb, embedder, nil, nil, nil, nil)
		passages := svc.Search(context.Background(), "what are our top risks", models.RoleCFO, 3)

		require.Len(t, passages, 1)
		assert.Equal(t, "Treasury Report", passages[0].Source)
	})
}

func TestSearchTables(t *testing.T) {
	salesRec := &models.SalesRecord{ProductID: "Gadget_Z", UnitsSold: 10, Revenue: 3000, Profit: 1200, Margin: 0.4, Region: "East"}
	salesSentence := renderSales(salesRec)

	mfgRec := &models.ManufacturingRecord{LineID: "Line_C", ShiftID: "Night", Throughput: 850, EnergyConsumption: 480, MaintenanceCost: 300, DowntimeMinutes: 45}
	mfgSentence := renderManufacturing(mfgRec)

	embedder := &fakeEmbedder{vectors: map[string][]float32{
		"revenue for Gadget_Z": {1, 0, 0, 0},
		salesSentence:          {0.95, 0.05, 0, 0},
		mfgSentence:            {0.5, 0.5, 0, 0},
	}}

	t.Run("CFO revenue query scores sales rows", func(t *testing.T) {
		svc := newTestRetrieval(nil, embedder, &fakeSales{records: []*models.SalesRecord{salesRec}}, nil, nil, nil)
		passages := svc.Search(context.Background(), "revenue for Gadget_Z", models.RoleCFO, 3)

		require.Len(t, passages, 1)
		assert.Equal(t, salesSentence, passages[0].Text)
		assert.Equal(t, string(models.TableSales), passages[0].Source)
	})

	t.Run("Results are ranked by descending score", func(t *testing.T) {
		svc := newTestRetrieval(nil, embedder,
			&fakeSales{records: []*models.SalesRecord{salesRec}},
			&fakeManufacturing{records: []*models.ManufacturingRecord{mfgRec}},
			nil, nil)
		passages := svc.Search(context.Background(), "revenue for Gadget_Z", models.RoleCEO, 3)

		require.GreaterOrEqual(t, len(passages), 2)
		for i := 1; i < len(passages); i++ {
			assert.GreaterOrEqual(t, passages[i-1].Score, passages[i].Score)
		}
		assert.Equal(t, salesSentence, passages[0].Text)
	})

	t.Run("TopK truncates", func(t *testing.T) {
		var records []*models.SalesRecord
		vectors := map[string][]float32{"revenue everywhere": {1, 0, 0, 0}}
		for i := 0; i < 10; i++ {
			rec := &models.SalesRecord{ProductID: "Widget_A", UnitsSold: i + 1, Revenue: 100, Profit: 30, Margin: 0.3, Region: "West"}
			records = append(records, rec)
			vectors[renderSales(rec)] = []float32{1, 0, 0, 0}
		}
		svc := newTestRetrieval(nil, &fakeEmbedder{vectors: vectors}, &fakeSales{records: records}, nil, nil, nil)

		passages := svc.Search(context.Background(), "revenue everywhere", models.RoleCFO, 3)
		assert.Len(t, passages, 3)
	})

	t.Run("Zero topK falls back to configured default", func(t *testing.T) {
		var records []*models.SalesRecord
		vectors := map[string][]float32{"revenue everywhere": {1, 0, 0, 0}}
		for i := 0; i < 10; i++ {
			rec := &models.SalesRecord{ProductID: "Widget_B", UnitsSold: i + 1, Revenue: 100, Profit: 30, Margin: 0.3, Region: "West"}
			records = append(records, rec)
			vectors[renderSales(rec)] = []float32{1, 0, 0, 0}
		}
		svc := newTestRetrieval(nil, &fakeEmbedder{vectors: vectors}, &fakeSales{records: records}, nil, nil, nil)

		passages := svc.Search(context.Background(), "revenue everywhere", models.RoleCFO, 0)
		assert.Len(t, passages, testRAGConfig().TopK)
	})

	t.Run("Failing table scan is skipped, not fatal", func(t *testing.T) {
		svc := newTestRetrieval(nil, embedder,
			&fakeSales{err: errors.New("connection refused")},
			&fakeManufacturing{records: []*models.ManufacturingRecord{mfgRec}},
			nil, nil)

		passages := svc.Search(context.Background(), "revenue for Gadget_Z", models.RoleCEO, 3)
		require.Len(t, passages, 1)
		assert.Equal(t, mfgSentence, passages[0].Text)
	})

	t.Run("Low-scoring rows are filtered", func(t *testing.T) {
		svc := newTestRetrieval(nil, embedder, nil, &fakeManufacturing{records: []*models.ManufacturingRecord{mfgRec}}, nil, nil)
		// The mfg sentence scores ~0.707 against this query, above threshold.
		passages := svc.Search(context.Background(), "revenue for Gadget_Z", models.RoleCOO, 3)
		require.Len(t, passages, 1)

		// Against an orthogonal query it scores 0 and is dropped.
		orthogonal := &fakeEmbedder{vectors: map[string][]float32{
			"maintenance schedule": {0, 0, 1, 0},
			mfgSentence:            {1, 0, 0, 0},
		}}
		svc = newTestRetrieval(nil, orthogonal, nil, &fakeManufacturing{records: []*models.ManufacturingRecord{mfgRec}}, nil, nil)
		passages = svc.Search(context.Background(), "maintenance schedule", models.RoleCOO, 3)
		assert.Empty(t, passages)
	})
}

func TestSearchModelUnavailable(t *testing.T) {
	embedder := &fakeEmbedder{err: ErrModelUnavailable}
	svc := newTestRetrieval(nil, embedder, &fakeSales{records: []*models.SalesRecord{{ProductID: "Gadget_X"}}}, nil, nil, nil)

	passages := svc.Search(context.Background(), "revenue", models.RoleCFO, 3)
	assert.Empty(t, passages)
}

func TestSearchIdempotent(t *testing.T) {
	kb := []models.KnowledgeEntry{
		{Text: "margins are compressing", Source: "CFO Analysis", Roles: []models.Role{models.RoleCFO}},
	}
	embedder := &fakeEmbedder{vectors: map[string][]float32{
		"margin outlook":          {1, 0, 0, 0},
		"margins are compressing": {0.8, 0.2, 0, 0},
	}}
	svc := newTestRetrieval(kb, embedder, nil, nil, nil, nil)

	first := svc.Search(context.Background(), "margin outlook", models.RoleCFO, 3)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, svc.Search(context.Background(), "margin outlook", models.RoleCFO, 3))
	}
}

func TestCosineSimilarity(t *testing.T) {
	t.Run("Identical vectors score 1", func(t *testing.T) {
		assert.InDelta(t, 1.0, cosineSimilarity([]float32{1, 2, 3}, []float32{1, 2, 3}), 1e-9)
	})

	t.Run("Orthogonal vectors score 0", func(t *testing.T) {
		assert.InDelta(t, 0.0, cosineSimilarity([]float32{1, 0}, []float32{0, 1}), 1e-9)
	})

	t.Run("Opposite vectors score -1", func(t *testing.T) {
		assert.InDelta(t, -1.0, cosineSimilarity([]float32{1, 0}, []float32{-1, 0}), 1e-9)
	})

	t.Run("Mismatched lengths score 0", func(t *testing.T) {
		assert.Equal(t, 0.0, cosineSimilarity([]float32{1, 2}, []float32{1, 2, 3}))
	})

	t.Run("Zero vector scores 0", func(t *testing.T) {
		assert.Equal(t, 0.0, cosineSimilarity([]float32{0, 0}, []float32{1, 2}))
	})
}
