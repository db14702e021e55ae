package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"hrcentral/pkg/config"

	"github.com/knights-analytics/hugot"
	"go.uber.org/zap"
)

// ErrModelUnavailable is returned when the sentence-embedding model could not
// be initialized. Callers are expected to degrade to empty retrieval results
// rather than surface this to the end user.
var ErrModelUnavailable = errors.New("embedding model unavailable")

// EmbeddingService turns batches of text into fixed-size vectors using a local
// ONNX sentence-transformer pipeline. The model is process-wide state: it is
// loaded lazily on first use, exactly once, and shared by all requests.
type EmbeddingService struct {
	config *config.RAGConfig
	logger *zap.Logger

	once    sync.Once
	run     func(texts []string) ([][]float32, error)
	initErr error
}

func NewEmbeddingService(cfg *config.RAGConfig, logger *zap.Logger) *EmbeddingService {
	return &EmbeddingService{
		config: cfg,
		logger: logger,
	}
}

// Embed converts a batch of texts into their embeddings. The returned slice is
// parallel to the input. The first call triggers model initialization;
// concurrent first callers block until the single load attempt finishes.
func (s *EmbeddingService) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	s.once.Do(s.load)
	if s.initErr != nil {
		return nil, fmt.Errorf("%w: %s", ErrModelUnavailable, s.initErr)
	}
	if len(texts) == 0 {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	embeddings, err := s.run(texts)
	if err != nil {
		return nil, fmt.Errorf("failed to generate embeddings: %w", err)
	}
	if len(embeddings) != len(texts) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(texts), len(embeddings))
	}

	return embeddings, nil
}

func (s *EmbeddingService) load() {
	s.logger.Info("Loading embedding model", zap.String("model", s.config.EmbeddingModel))

	modelPath, err := s.prepareModel()
	if err != nil {
		s.initErr = err
		s.logger.Error("Failed to prepare embedding model", zap.Error(err))
		return
	}

	session, err := hugot.NewGoSession()
	if err != nil {
		s.initErr = fmt.Errorf("failed to create hugot session: %w", err)
		s.logger.Error("Failed to create embedding session", zap.Error(err))
		return
	}

	pipelineConfig := hugot.FeatureExtractionConfig{
		ModelPath: modelPath,
		Name:      "hrcentral-embedder",
	}
	sentencePipeline, err := hugot.NewPipeline(session, pipelineConfig)
	if err != nil {
		if destroyErr := session.Destroy(); destroyErr != nil {
			s.logger.Warn("Failed to destroy embedding session", zap.Error(destroyErr))
		}
		s.initErr = fmt.Errorf("failed to create sentence pipeline: %w", err)
		s.logger.Error("Failed to create embedding pipeline", zap.Error(err))
		return
	}

	s.run = func(texts []string) ([][]float32, error) {
		result, err := sentencePipeline.RunPipeline(texts)
		if err != nil {
			return nil, err
		}
		return result.Embeddings, nil
	}

	s.logger.Info("Embedding model loaded", zap.String("path", modelPath))
}

// prepareModel downloads the model into the configured directory if it is not
// already present, and returns its path.
func (s *EmbeddingService) prepareModel() (string, error) {
	modelDir := s.config.ModelDir
	localName := strings.ReplaceAll(s.config.EmbeddingModel, "/", "_")
	modelPath := filepath.Join(modelDir, localName)

	if _, err := os.Stat(modelPath); os.IsNotExist(err) {
		if err := os.MkdirAll(modelDir, 0755); err != nil {
			return "", fmt.Errorf("failed to create model directory: %w", err)
		}
		downloadOptions := hugot.NewDownloadOptions()
		downloadOptions.OnnxFilePath = "onnx/model.onnx"
		downloadedPath, err := hugot.DownloadModel(s.config.EmbeddingModel, modelDir, downloadOptions)
		if err != nil {
			return "", fmt.Errorf("failed to download model: %w", err)
		}
		modelPath = downloadedPath
	}

	return modelPath, nil
}
