package service

import (
	"context"
	"errors"
	"math"
	"sort"

	"hrcentral/internal/models"
	"hrcentral/pkg/config"

	"go.uber.org/zap"
)

const (
	// kbScoreThreshold is the minimum cosine similarity for knowledge-base
	// passages. Lower than the table threshold since the entries are short,
	// high-signal strategic text.
	kbScoreThreshold = 0.25
	// tableScoreThreshold is the minimum cosine similarity for record-derived
	// passages, which are noisier and more repetitive than the knowledge base.
	tableScoreThreshold = 0.3
)

// Embedder converts a batch of texts into dense vectors. The returned slice
// is parallel to the input. Implementations must be safe for concurrent use.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// Per-table record sources. The retrieval path is strictly read-only over
// these; "most recent" means descending identifier order.
type salesSource interface {
	Recent(ctx context.Context, limit int) ([]*models.SalesRecord, error)
}

type manufacturingSource interface {
	Recent(ctx context.Context, limit int) ([]*models.ManufacturingRecord, error)
}

type fieldSource interface {
	Recent(ctx context.Context, limit int) ([]*models.FieldIncident, error)
}

type employeeSource interface {
	Recent(ctx context.Context, limit int) ([]*models.Employee, error)
}

// RetrievalService fuses the static role-tagged knowledge base with live
// record scans into a single ranked context for a query. It is the core of
// the chat pipeline.
type RetrievalService struct {
	kb            []models.KnowledgeEntry
	embedder      Embedder
	sales         salesSource
	manufacturing manufacturingSource
	field         fieldSource
	employees     employeeSource
	config        *config.RAGConfig
	logger        *zap.Logger
}

func NewRetrievalService(
	kb []models.KnowledgeEntry,
	embedder Embedder,
	sales salesSource,
	manufacturing manufacturingSource,
	field fieldSource,
	employees employeeSource,
	cfg *config.RAGConfig,
	logger *zap.Logger,
) *RetrievalService {
	return &RetrievalService{
		kb:            kb,
		embedder:      embedder,
		sales:         sales,
		manufacturing: manufacturing,
		field:         field,
		employees:     employees,
		config:        cfg,
		logger:        logger,
	}
}

// Search returns the top-K passages most similar to the query, scoped to the
// given role. Knowledge-base candidates are role-filtered; record candidates
// come from the role's default tables plus any keyword-triggered tables.
//
// Search never fails: if the embedding model is unavailable it returns an
// empty slice, and a table whose scan errors is skipped rather than aborting
// the whole search. Callers must treat an empty result as "no data found".
func (s *RetrievalService) Search(ctx context.Context, query string, role models.Role, topK int) []models.Passage {
	if topK <= 0 {
		topK = s.config.TopK
	}

	queryVecs, err := s.embedder.Embed(ctx, []string{query})
	if err != nil {
		if errors.Is(err, ErrModelUnavailable) {
			s.logger.Warn("Embedding model unavailable, returning empty retrieval results")
		} else {
			s.logger.Warn("Failed to embed query", zap.Error(err))
		}
		return nil
	}
	queryVec := queryVecs[0]

	var results []models.Passage
	results = append(results, s.searchKnowledgeBase(ctx, queryVec, role)...)

	for _, table := range selectTables(role, query) {
		sentences, err := s.renderTable(ctx, table)
		if err != nil {
			// A broken table must not take down the whole search.
			s.logger.Warn("Table scan failed, skipping",
				zap.String("table", string(table)),
				zap.Error(err),
			)
			continue
		}
		if len(sentences) == 0 {
			continue
		}
		results = append(results, s.scorePassages(ctx, queryVec, sentences, string(table), tableScoreThreshold)...)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > topK {
		results = results[:topK]
	}

	s.logger.Info("Retrieval completed",
		zap.String("role", role.String()),
		zap.Int("passages", len(results)),
	)

	return results
}

func (s *RetrievalService) searchKnowledgeBase(ctx context.Context, queryVec []float32, role models.Role) []models.Passage {
	var docs []models.KnowledgeEntry
	for _, entry := range s.kb {
		if entry.HasRole(role) {
			docs = append(docs, entry)
		}
	}
	if len(docs) == 0 {
		return nil
	}

	texts := make([]string, len(docs))
	for i, doc := range docs {
		texts[i] = doc.Text
	}

	embeddings, err := s.embedder.Embed(ctx, texts)
	if err != nil {
		s.logger.Warn("Failed to embed knowledge base, skipping", zap.Error(err))
		return nil
	}

	var passages []models.Passage
	for i, vec := range embeddings {
		score := cosineSimilarity(queryVec, vec)
		if score > kbScoreThreshold {
			passages = append(passages, models.Passage{
				Text:   docs[i].Text,
				Source: docs[i].Source,
				Score:  score,
			})
		}
	}
	return passages
}

// renderTable fetches the most recent records of the table and renders each
// into one natural-language sentence.
func (s *RetrievalService) renderTable(ctx context.Context, table models.TableName) ([]string, error) {
	limit := s.config.RecentLimit

	switch table {
	case models.TableSales:
		records, err := s.sales.Recent(ctx, limit)
		if err != nil {
			return nil, err
		}
		sentences := make([]string, len(records))
		for i, rec := range records {
			sentences[i] = renderSales(rec)
		}
		return sentences, nil

	case models.TableManufacturing:
		records, err := s.manufacturing.Recent(ctx, limit)
		if err != nil {
			return nil, err
		}
		sentences := make([]string, len(records))
		for i, rec := range records {
			sentences[i] = renderManufacturing(rec)
		}
		return sentences, nil

	case models.TableField:
		incidents, err := s.field.Recent(ctx, limit)
		if err != nil {
			return nil, err
		}
		sentences := make([]string, len(incidents))
		for i, inc := range incidents {
			sentences[i] = renderFieldIncident(inc)
		}
		return sentences, nil

	case models.TableUsers:
		employees, err := s.employees.Recent(ctx, limit)
		if err != nil {
			return nil, err
		}
		sentences := make([]string, len(employees))
		for i, emp := range employees {
			sentences[i] = renderEmployee(emp)
		}
		return sentences, nil
	}

	return nil, nil
}

func (s *RetrievalService) scorePassages(ctx context.Context, queryVec []float32, texts []string, source string, threshold float64) []models.Passage {
	embeddings, err := s.embedder.Embed(ctx, texts)
	if err != nil {
		s.logger.Warn("Failed to embed candidates, skipping",
			zap.String("source", source),
			zap.Error(err),
		)
		return nil
	}

	var passages []models.Passage
	for i, vec := range embeddings {
		score := cosineSimilarity(queryVec, vec)
		if score > threshold {
			passages = append(passages, models.Passage{
				Text:   texts[i],
				Source: source,
				Score:  score,
			})
		}
	}
	return passages
}

// cosineSimilarity is the normalized dot product of two vectors, in [-1, 1].
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}
