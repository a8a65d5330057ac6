// Package filter provides implementations for filter modules.
// Script module executes JavaScript transformations using the Goja engine.
package filter

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/dop251/goja"

	"github.com/jbec2912-cell/pervious-service-filter/internal/logger"
)

// Error codes for script module
const (
	ErrCodeScriptEmpty          = "SCRIPT_EMPTY"
	ErrCodeScriptTooLong        = "SCRIPT_TOO_LONG"
	ErrCodeCompilationFailed    = "COMPILATION_FAILED"
	ErrCodeMissingTransform     = "MISSING_TRANSFORM"
	ErrCodeNotFunction          = "NOT_FUNCTION"
	ErrCodeExecutionFailed      = "EXECUTION_FAILED"
	ErrCodeInvalidScriptFile    = "INVALID_SCRIPT_FILE"
	ErrCodeScriptFileReadFailed = "SCRIPT_FILE_READ_FAILED"
)

// MaxScriptLength is the maximum allowed script length in bytes (100KB).
const MaxScriptLength = 100 * 1024

// ScriptConfig represents the configuration for a script filter module.
// Either Script or ScriptFile must be provided (but not both).
type ScriptConfig struct {
	// Script is the inline JavaScript source code containing a transform(record) function
	Script string `json:"script,omitempty"`
	// ScriptFile is the path to a JavaScript file containing the transform(record) function
	ScriptFile string `json:"scriptFile,omitempty"`
	// OnError specifies error handling mode: "fail" (default), "skip", "log"
	OnError string `json:"onError,omitempty"`
}

// ScriptModule executes a user-defined transform(record) JavaScript function
// against each record. Records cross into JavaScript as objects with string
// values and the returned object's values are stringified on the way back.
//
// Goja runtime instances are not goroutine-safe; each module instance owns
// one runtime and Process must not be called concurrently on the same
// instance.
type ScriptModule struct {
	scriptSource string
	onError      string
	runtime      *goja.Runtime
	transformFn  goja.Callable
	interruptMu  sync.Mutex
}

// ScriptError carries structured context for script execution failures.
type ScriptError struct {
	Code        string
	Message     string
	RecordIndex int
}

func (e *ScriptError) Error() string {
	return e.Message
}

func newScriptError(code, message string, recordIdx int) *ScriptError {
	return &ScriptError{
		Code:        code,
		Message:     message,
		RecordIndex: recordIdx,
	}
}

// NewScriptFromConfig creates a new script filter module from configuration.
// It validates the script, compiles it, and verifies the transform function
// exists. Goja sandboxes the script: no file system or network access.
func NewScriptFromConfig(config ScriptConfig) (*ScriptModule, error) {
	scriptSource, err := resolveScriptSource(config)
	if err != nil {
		return nil, err
	}

	if len(scriptSource) == 0 || isWhitespaceOnly(scriptSource) {
		return nil, newScriptError(ErrCodeScriptEmpty, "script cannot be empty", -1)
	}
	if len(scriptSource) > MaxScriptLength {
		return nil, newScriptError(ErrCodeScriptTooLong,
			fmt.Sprintf("script exceeds maximum length: %d bytes exceeds maximum %d bytes", len(scriptSource), MaxScriptLength), -1)
	}

	onError := config.OnError
	if onError == "" {
		onError = OnErrorFail
	}
	if onError != OnErrorFail && onError != OnErrorSkip && onError != OnErrorLog {
		logger.Warn("invalid onError value for script module; defaulting to fail",
			slog.String("on_error", onError),
		)
		onError = OnErrorFail
	}

	vm := goja.New()

	if _, err := vm.RunString(scriptSource); err != nil {
		return nil, newScriptError(ErrCodeCompilationFailed, fmt.Sprintf("script compilation failed: %v", err), -1)
	}

	transformVal := vm.Get("transform")
	if transformVal == nil || goja.IsUndefined(transformVal) {
		return nil, newScriptError(ErrCodeMissingTransform, "transform function not found in script", -1)
	}
	transformFn, ok := goja.AssertFunction(transformVal)
	if !ok {
		return nil, newScriptError(ErrCodeNotFunction, "transform is not a function", -1)
	}

	logger.Debug("script module initialized",
		slog.Int("script_length", len(scriptSource)),
		slog.String("on_error", onError),
		slog.Bool("from_file", config.ScriptFile != ""),
	)

	return &ScriptModule{
		scriptSource: scriptSource,
		onError:      onError,
		runtime:      vm,
		transformFn:  transformFn,
	}, nil
}

// resolveScriptSource returns the script source code, either from inline
// config or from file. Script file paths must not traverse upward.
func resolveScriptSource(config ScriptConfig) (string, error) {
	if config.Script != "" && config.ScriptFile != "" {
		return "", newScriptError(ErrCodeInvalidScriptFile, "cannot specify both 'script' and 'scriptFile' - use only one", -1)
	}

	if config.Script != "" {
		return config.Script, nil
	}

	if config.ScriptFile != "" {
		if err := validateScriptFilePath(config.ScriptFile); err != nil {
			return "", err
		}

		info, err := os.Stat(config.ScriptFile)
		if err != nil {
			return "", newScriptError(ErrCodeScriptFileReadFailed, fmt.Sprintf("failed to stat script file %q: %v", config.ScriptFile, err), -1)
		}
		if info.Size() > MaxScriptLength {
			return "", newScriptError(ErrCodeScriptTooLong,
				fmt.Sprintf("script file %q exceeds maximum length: %d bytes exceeds maximum %d bytes", config.ScriptFile, info.Size(), MaxScriptLength), -1)
		}

		content, err := os.ReadFile(config.ScriptFile)
		if err != nil {
			return "", newScriptError(ErrCodeScriptFileReadFailed, fmt.Sprintf("failed to read script file %q: %v", config.ScriptFile, err), -1)
		}

		return string(content), nil
	}

	return "", newScriptError(ErrCodeScriptEmpty, "either 'script' or 'scriptFile' must be provided", -1)
}

// validateScriptFilePath rejects script paths that traverse upward.
func validateScriptFilePath(filePath string) error {
	if strings.Contains(filePath, "\x00") {
		return newScriptError(ErrCodeInvalidScriptFile, "scriptFile path contains invalid characters", -1)
	}

	normalized := filepath.ToSlash(filepath.Clean(filePath))
	for _, segment := range strings.Split(normalized, "/") {
		if segment == ".." {
			return newScriptError(ErrCodeInvalidScriptFile, fmt.Sprintf("scriptFile path contains path traversal: %q", filePath), -1)
		}
	}

	return nil
}

// ParseScriptConfig parses a raw configuration map into ScriptConfig.
func ParseScriptConfig(config map[string]interface{}) (ScriptConfig, error) {
	var cfg ScriptConfig

	script, hasScript := config["script"].(string)
	scriptFile, hasScriptFile := config["scriptFile"].(string)

	if hasScript && hasScriptFile {
		return cfg, fmt.Errorf("cannot specify both 'script' and 'scriptFile' - use only one")
	}
	if !hasScript && !hasScriptFile {
		if config["script"] != nil {
			return cfg, fmt.Errorf("field 'script' must be a string")
		}
		if config["scriptFile"] != nil {
			return cfg, fmt.Errorf("field 'scriptFile' must be a string")
		}
		return cfg, fmt.Errorf("either 'script' or 'scriptFile' is required in script config")
	}

	cfg.Script = script
	cfg.ScriptFile = scriptFile

	if onError, ok := config["onError"].(string); ok {
		cfg.OnError = onError
	}

	return cfg, nil
}

// Process applies the JavaScript transform function to each input record.
// Errors follow the onError configuration: "fail" aborts, "skip" drops the
// record, "log" keeps the original record untransformed.
func (m *ScriptModule) Process(ctx context.Context, records []map[string]string) ([]map[string]string, error) {
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
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		transformed, err := m.processRecord(ctx, record, recordIdx)
		if err != nil {
			switch m.onError {
			case OnErrorSkip:
				logger.Warn("skipping record due to script error",
					slog.Int("record_index", recordIdx),
					slog.String("error", err.Error()),
				)
				continue
			case OnErrorLog:
				logger.Error("script error (continuing)",
					slog.Int("record_index", recordIdx),
					slog.String("error", err.Error()),
				)
				result = append(result, record)
				continue
			default:
				return nil, err
			}
		}
		result = append(result, transformed)
	}

	return result, nil
}

// processRecord transforms a single record using the JavaScript function.
// A monitor goroutine interrupts JavaScript execution if the context is
// canceled mid-call.
func (m *ScriptModule) processRecord(ctx context.Context, record map[string]string, recordIdx int) (map[string]string, error) {
	interruptDone := make(chan struct{})
	defer close(interruptDone)

	go func() {
		select {
		case <-ctx.Done():
			m.interruptMu.Lock()
			m.runtime.Interrupt(ctx.Err().Error())
			m.interruptMu.Unlock()
		case <-interruptDone:
			m.interruptMu.Lock()
			m.runtime.ClearInterrupt()
			m.interruptMu.Unlock()
		}
	}()

	jsRecord := make(map[string]interface{}, len(record))
	for k, v := range record {
		jsRecord[k] = v
	}

	value, err := m.transformFn(goja.Undefined(), m.runtime.ToValue(jsRecord))
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, newScriptError(ErrCodeExecutionFailed, fmt.Sprintf("script execution failed at record %d: %v", recordIdx, err), recordIdx)
	}

	m.interruptMu.Lock()
	m.runtime.ClearInterrupt()
	m.interruptMu.Unlock()

	return exportToRecord(value, recordIdx)
}

// exportToRecord converts the JavaScript return value back to a flat record.
// The transform function must return an object; its values are stringified.
func exportToRecord(value goja.Value, recordIdx int) (map[string]string, error) {
	if value == nil || goja.IsUndefined(value) || goja.IsNull(value) {
		return nil, newScriptError(ErrCodeExecutionFailed,
			fmt.Sprintf("script at record %d returned null or undefined - transform function must return an object", recordIdx), recordIdx)
	}

	exported := value.Export()

	if _, ok := exported.([]interface{}); ok {
		return nil, newScriptError(ErrCodeExecutionFailed,
			fmt.Sprintf("script at record %d returned an array - transform function must return an object, not an array", recordIdx), recordIdx)
	}

	obj, ok := exported.(map[string]interface{})
	if !ok {
		return nil, newScriptError(ErrCodeExecutionFailed,
			fmt.Sprintf("script at record %d returned invalid type %T - transform function must return an object", recordIdx, exported), recordIdx)
	}

	record := make(map[string]string, len(obj))
	for k, v := range obj {
		switch val := v.(type) {
		case string:
			record[k] = val
		case nil:
			record[k] = ""
		default:
			record[k] = fmt.Sprint(val)
		}
	}

	return record, nil
}

// Verify interface compliance at compile time
var _ Module = (*ScriptModule)(nil)
