package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/spigell/ats-scorer/internal/ai"
	"github.com/spigell/ats-scorer/internal/logger"
	"github.com/spigell/ats-scorer/internal/utils"
)

const (
	providerName  = "gemini"
	defaultModel  = "text-embedding-004"
	taskType      = "SEMANTIC_SIMILARITY"
	defaultLogLen = 200
)

// embedService is the part of genai.Models the embedder relies on.
type embedService interface {
	EmbedContent(ctx context.Context, model string, contents []*genai.Content, config *genai.EmbedContentConfig) (*genai.EmbedContentResponse, error)
}

// Options configure the Gemini embedder.
type Options struct {
	Model string
	// Dimensions truncates the returned vectors when positive.
	Dimensions   int32
	MaxLogLength int
	Logger       *zap.Logger
}

// Embedder wraps the Google GenAI client to produce text embeddings.
type Embedder struct {
	models     embedService
	model      string
	dimensions int32
	maxLogLen  int
	logger     *zap.Logger
}

// NewEmbedder creates a new Embedder configured for the Gemini API backend.
func NewEmbedder(ctx context.Context, apiKey string, opts Options) (*Embedder, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required: %w", ai.ErrUnavailable)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return newEmbedder(client.Models, opts), nil
}

func newEmbedder(models embedService, opts Options) *Embedder {
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = defaultModel
	}

	maxLogLen := opts.MaxLogLength
	if maxLogLen <= 0 {
		maxLogLen = defaultLogLen
	}

	return &Embedder{
		models:     models,
		model:      model,
		dimensions: opts.Dimensions,
		maxLogLen:  maxLogLen,
		logger:     logger.WithCommonFields(opts.Logger, providerName, model),
	}
}

// Embed returns the embedding of text. Empty responses are reported as
// ai.ErrEmptyEmbedding.
func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if e == nil || e.models == nil {
		return nil, errors.New("gemini embedder is not initialized")
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("empty input: %w", ai.ErrEmptyEmbedding)
	}

	cfg := &genai.EmbedContentConfig{TaskType: taskType}
	if e.dimensions > 0 {
		dims := e.dimensions
		cfg.OutputDimensionality = &dims
	}

	e.logger.Debug("gemini embed content request",
		zap.Int("text_length", utf8.RuneCountInString(text)),
		zap.String("text_preview", utils.TruncateForLog(text, e.maxLogLen)),
	)

	resp, err := e.models.EmbedContent(ctx, e.model, genai.Text(text), cfg)
	if err != nil {
		return nil, fmt.Errorf("embed content: %w", describeError(err))
	}

	if resp == nil || len(resp.Embeddings) == 0 || resp.Embeddings[0] == nil || len(resp.Embeddings[0].Values) == 0 {
		return nil, ai.ErrEmptyEmbedding
	}

	values := resp.Embeddings[0].Values
	e.logger.Debug("gemini embed content response", zap.Int("dimensions", len(values)))

	out := make([]float32, len(values))
	copy(out, values)
	return out, nil
}

// describeError flattens genai API errors so callers never depend on the SDK type.
func describeError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("gemini api error %d %s: %s", apiErr.Code, apiErr.Status, apiErr.Message)
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return fmt.Errorf("gemini api error %d %s: %s", apiErrPtr.Code, apiErrPtr.Status, apiErrPtr.Message)
	}
	return err
}

func (e *Embedder) Provider() string { return providerName }

func (e *Embedder) Model() string {
	if e == nil {
		return ""
	}
	return e.model
}
