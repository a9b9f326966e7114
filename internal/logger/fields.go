package logger

import (
	"strings"

	"go.uber.org/zap"
)

// Field keys shared by the scorer, the HTTP server and the embedding providers.
const (
	FieldProvider    = "ai_provider"  // embedding backend, e.g. gemini or huggingface
	FieldModel       = "ai_model"     // embedding model name
	FieldScoreSource = "score_source" // "ai" or "keyword"
	FieldATSScore    = "ats_score"    // final 0-100 score
	FieldRequestID   = "request_id"   // X-Request-ID of the HTTP call
)

// StringField is a key/value pair that is logged only when both sides are set.
type StringField struct {
	Key   string
	Value string
}

// StringFields turns pairs into zap fields. Blank keys and values are dropped
// so an unconfigured provider or a missing request id leaves no empty field.
func StringFields(pairs ...StringField) []zap.Field {
	fields := make([]zap.Field, 0, len(pairs))
	for _, p := range pairs {
		key, value := strings.TrimSpace(p.Key), strings.TrimSpace(p.Value)
		if key == "" || value == "" {
			continue
		}
		fields = append(fields, zap.String(key, value))
	}
	return fields
}

// WithFields returns logger.With(fields...). Nil loggers become no-ops.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(fields) == 0 {
		return logger
	}
	return logger.With(fields...)
}

// CommonFields tags entries with the embedding provider and model.
func CommonFields(provider, model string) []zap.Field {
	return StringFields(
		StringField{Key: FieldProvider, Value: provider},
		StringField{Key: FieldModel, Value: model},
	)
}

// WithCommonFields scopes a logger to one embedding provider.
func WithCommonFields(logger *zap.Logger, provider, model string) *zap.Logger {
	return WithFields(logger, CommonFields(provider, model)...)
}

// ScoreFields records where a final score came from and its value.
func ScoreFields(source string, score int) []zap.Field {
	fields := StringFields(StringField{Key: FieldScoreSource, Value: source})
	return append(fields, zap.Int(FieldATSScore, score))
}

// WithRequestID scopes a logger to one HTTP request.
func WithRequestID(logger *zap.Logger, requestID string) *zap.Logger {
	return WithFields(logger, StringFields(StringField{Key: FieldRequestID, Value: requestID})...)
}
