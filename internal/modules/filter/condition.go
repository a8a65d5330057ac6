// Package filter provides implementations for filter modules.
// Condition module filters records based on conditional expressions.
package filter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/jbec2912-cell/pervious-service-filter/internal/logger"
)

// Error codes for condition module
const (
	ErrCodeInvalidExpression = "INVALID_EXPRESSION"
	ErrCodeEvaluationFailed  = "EVALUATION_FAILED"
)

// Common errors for condition module
var (
	// ErrInvalidExpression is returned when the expression syntax is invalid
	ErrInvalidExpression = errors.New("invalid expression syntax")
)

// Routing behavior constants
const (
	OnConditionContinue = "continue"
	OnConditionSkip     = "skip"
)

// ConditionConfig represents the configuration for a condition filter module.
type ConditionConfig struct {
	// Expression is the condition expression string (required)
	Expression string `json:"expression"`
	// OnTrue specifies behavior when condition is true: "continue" (default) or "skip"
	OnTrue string `json:"onTrue,omitempty"`
	// OnFalse specifies behavior when condition is false: "continue" or "skip" (default)
	OnFalse string `json:"onFalse,omitempty"`
	// OnError specifies error handling mode: "fail" (default), "skip", "log"
	OnError string `json:"onError,omitempty"`
}

// ConditionModule filters records by evaluating an expression against each
// one. Record columns are exposed to the expression as string variables
// under their column names; missing columns evaluate as undefined.
type ConditionModule struct {
	expression string
	onTrue     string
	onFalse    string
	onError    string
	program    *vm.Program
}

// ConditionError carries structured context for condition evaluation failures.
type ConditionError struct {
	Code        string
	Message     string
	Expression  string
	RecordIndex int
}

func (e *ConditionError) Error() string {
	return e.Message
}

// NewConditionFromConfig creates a new condition filter module from configuration.
// It compiles the expression and returns an error if the syntax is invalid.
func NewConditionFromConfig(config ConditionConfig) (*ConditionModule, error) {
	hasExpression := len(config.Expression) > 0 && !isWhitespaceOnly(config.Expression)

	onTrue := config.OnTrue
	if onTrue == "" {
		onTrue = OnConditionContinue
	}

	onFalse := config.OnFalse
	if onFalse == "" {
		onFalse = OnConditionSkip
	}

	onError := config.OnError
	if onError == "" {
		onError = OnErrorFail
	}
	if onError != OnErrorFail && onError != OnErrorSkip && onError != OnErrorLog {
		logger.Warn("invalid onError value for condition module; defaulting to fail",
			slog.String("on_error", onError),
		)
		onError = OnErrorFail
	}

	// AllowUndefinedVariables() handles missing columns gracefully
	var (
		program *vm.Program
		err     error
	)
	if hasExpression {
		program, err = expr.Compile(config.Expression, expr.AllowUndefinedVariables())
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidExpression, err)
		}
	}

	logger.Debug("condition module initialized",
		slog.String("expression", config.Expression),
		slog.String("on_true", onTrue),
		slog.String("on_false", onFalse),
		slog.String("on_error", onError),
	)

	return &ConditionModule{
		expression: config.Expression,
		onTrue:     onTrue,
		onFalse:    onFalse,
		onError:    onError,
		program:    program,
	}, nil
}

// ParseConditionConfig parses a raw configuration map into ConditionConfig.
func ParseConditionConfig(config map[string]interface{}) (ConditionConfig, error) {
	var cfg ConditionConfig

	expression, ok := config["expression"].(string)
	if !ok || isWhitespaceOnly(expression) {
		return cfg, errors.New("'expression' is required and must be a non-empty string")
	}
	cfg.Expression = expression

	if onTrue, ok := config["onTrue"].(string); ok {
		cfg.OnTrue = onTrue
	}
	if onFalse, ok := config["onFalse"].(string); ok {
		cfg.OnFalse = onFalse
	}
	if onError, ok := config["onError"].(string); ok {
		cfg.OnError = onError
	}

	return cfg, nil
}

// isWhitespaceOnly checks if a string contains only whitespace characters.
func isWhitespaceOnly(s string) bool {
	for _, r := range s {
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			return false
		}
	}
	return true
}

// Process filters records based on the condition expression.
// Records evaluating true follow the onTrue behavior, records evaluating
// false the onFalse behavior; "continue" keeps the record, "skip" drops it.
func (c *ConditionModule) Process(ctx context.Context, records []map[string]string) ([]map[string]string, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if records == nil {
		return []map[string]string{}, nil
	}

	result := make([]map[string]string, 0, len(records))

	for recordIdx, record := range records {
		if recordIdx > 0 && recordIdx%100 == 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}
		}

		keep := true
		if c.program != nil {
			env := make(map[string]interface{}, len(record))
			for k, v := range record {
				env[k] = v
			}

			output, err := expr.Run(c.program, env)
			if err != nil {
				condErr := &ConditionError{
					Code:        ErrCodeEvaluationFailed,
					Message:     fmt.Sprintf("condition evaluation failed at record %d: %v", recordIdx, err),
					Expression:  c.expression,
					RecordIndex: recordIdx,
				}

				switch c.onError {
				case OnErrorSkip:
					logger.Warn("skipping record due to condition evaluation error",
						slog.Int("record_index", recordIdx),
						slog.String("expression", c.expression),
						slog.String("error", err.Error()),
					)
					continue
				case OnErrorLog:
					logger.Error("condition evaluation error (continuing)",
						slog.Int("record_index", recordIdx),
						slog.String("expression", c.expression),
						slog.String("error", err.Error()),
					)
					continue
				default:
					return nil, condErr
				}
			}

			conditionResult, ok := output.(bool)
			if !ok {
				conditionResult = toBool(output)
			}
			keep = conditionResult
		}

		if keep {
			if c.onTrue == OnConditionContinue {
				result = append(result, record)
			}
			continue
		}
		if c.onFalse == OnConditionContinue {
			result = append(result, record)
		}
	}

	return result, nil
}

// toBool converts a non-boolean expression result to a truthiness value.
func toBool(value interface{}) bool {
	if value == nil {
		return false
	}
	switch v := value.(type) {
	case bool:
		return v
	case int:
		return v != 0
	case int64:
		return v != 0
	case float64:
		return v != 0
	case string:
		return v != ""
	default:
		return true
	}
}

// Verify interface compliance at compile time
var _ Module = (*ConditionModule)(nil)
