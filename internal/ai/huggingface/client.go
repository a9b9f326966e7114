package huggingface

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"

	"github.com/spigell/ats-scorer/internal/ai"
	"github.com/spigell/ats-scorer/internal/logger"
	"github.com/spigell/ats-scorer/internal/utils"
)

const (
	providerName = "huggingface"
	apiURL       = "https://api-inference.huggingface.co/pipeline/feature-extraction"
	defaultModel = "sentence-transformers/all-MiniLM-L6-v2"
	userAgent    = "spigell/ats-scorer"
	contentType  = "application/json"
	// Error bodies are only kept for log previews.
	maxErrorBody = 4 << 10
)

// Options configure the Hugging Face embedder.
type Options struct {
	// URL overrides the full feature-extraction endpoint.
	URL          string
	Model        string
	MaxLogLength int
	Logger       *zap.Logger
}

// Client calls the Hugging Face feature-extraction inference API.
type Client struct {
	token      string
	model      string
	maxLogLen  int
	logger     *zap.Logger
	HTTPClient *http.Client
	UserAgent  string
	URL        string
}

type request struct {
	Inputs string `json:"inputs"`
}

// New creates a client. The token is mandatory; without it the provider is
// unavailable.
func New(token string, opts Options) (*Client, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, fmt.Errorf("hugging face token is required: %w", ai.ErrUnavailable)
	}

	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = defaultModel
	}

	url := strings.TrimSpace(opts.URL)
	if url == "" {
		url = fmt.Sprintf("%s/%s", apiURL, model)
	}

	maxLogLen := opts.MaxLogLength
	if maxLogLen <= 0 {
		maxLogLen = 200
	}

	return &Client{
		token:     token,
		model:     model,
		maxLogLen: maxLogLen,
		logger:    logger.WithCommonFields(opts.Logger, providerName, model),
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		UserAgent: userAgent,
		URL:       url,
	}, nil
}

// Embed posts text to the inference API and returns the pooled sentence
// vector. Any non-2xx status, empty body or unexpected payload is an error.
func (c *Client) Embed(ctx context.Context, text string) ([]float32, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("empty input: %w", ai.ErrEmptyEmbedding)
	}

	body, err := json.Marshal(request{Inputs: text})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req = c.setHeaders(req)

	c.logger.Debug("make request",
		zap.String("url", req.URL.String()),
		zap.Int("text_length", utf8.RuneCountInString(text)),
		zap.String("text_preview", utils.TruncateForLog(text, c.maxLogLen)),
	)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("feature extraction request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		preview, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		c.logger.Debug("bad response from inference api",
			zap.Int("status", resp.StatusCode),
			zap.String("body_preview", utils.TruncateForLog(string(preview), c.maxLogLen)),
		)
		return nil, fmt.Errorf("bad status: %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	vec, err := parseEmbedding(data)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("got embedding", zap.Int("dimensions", len(vec)))
	return vec, nil
}

// parseEmbedding accepts both a flat vector and a batch of one vector.
func parseEmbedding(data []byte) ([]float32, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ai.ErrEmptyEmbedding
	}

	var payload []any
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("parse feature extraction response: %w", err)
	}

	if len(payload) == 0 {
		return nil, ai.ErrEmptyEmbedding
	}

	var raw any = payload
	if nested, ok := payload[0].([]any); ok {
		raw = nested
	}

	var vec []float32
	if err := mapstructure.Decode(raw, &vec); err != nil {
		return nil, fmt.Errorf("decode embedding: %w", err)
	}

	if len(vec) == 0 {
		return nil, ai.ErrEmptyEmbedding
	}

	return vec, nil
}

func (c *Client) setHeaders(req *http.Request) *http.Request {
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.token))
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Content-Type", contentType)

	return req
}

func (c *Client) Provider() string { return providerName }

func (c *Client) Model() string {
	if c == nil {
		return ""
	}
	return c.model
}

