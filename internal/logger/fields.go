package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldResume is the structured log field key for the resume name.
	FieldResume = "resume"
	// FieldJob is the structured log field key for the job name.
	FieldJob = "job"
	// FieldRunID is the structured log field key for a batch run id.
	FieldRunID = "run_id"
)

// StringField describes a string-valued structured logging field.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts the provided key/value pairs into zap fields, trimming
// whitespace and omitting entries with empty keys or values.
func StringFields(fields ...StringField) []zap.Field {
	result := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		key := strings.TrimSpace(field.Key)
		if key == "" {
			continue
		}

		value := strings.TrimSpace(field.Value)
		if value == "" {
			continue
		}

		result = append(result, zap.String(key, value))
	}

	return result
}

// WithFields safely attaches the provided fields to the logger.
// A nil logger is replaced with a no-op logger.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// PairFields describes one resume/job pair. Empty names are left out.
func PairFields(resume, job string) []zap.Field {
	return StringFields(
		StringField{Key: FieldResume, Value: resume},
		StringField{Key: FieldJob, Value: job},
	)
}

// WithPair attaches the pair fields to the provided logger.
func WithPair(logger *zap.Logger, resume, job string) *zap.Logger {
	return WithFields(logger, PairFields(resume, job)...)
}
