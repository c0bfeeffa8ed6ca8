package errors

import (
	"encoding/json"
	"errors"

	"github.com/sml-lang/interp/internal/ast"
)

const schemaV1 = "sml.error/v1"

// Report is the canonical structured error value. Every phase builder
// in this package returns one, wrapped as a *ReportError so it survives
// errors.As unwrapping through ordinary Go error plumbing.
type Report struct {
	Schema  string         `json:"schema"`
	Code    string         `json:"code"`
	Phase   string         `json:"phase"`
	Message string         `json:"message"`
	Pos     ast.Pos        `json:"pos"`
	Data    map[string]any `json:"data,omitempty"`
}

// ReportError wraps a Report as an error.
type ReportError struct {
	Rep *Report
}

func (e *ReportError) Error() string {
	if e.Rep == nil {
		return "unknown error"
	}
	return e.Rep.Pos.String() + ": " + e.Rep.Code + ": " + e.Rep.Message
}

// AsReport extracts a Report from an error chain, if one is present.
func AsReport(err error) (*Report, bool) {
	var re *ReportError
	if errors.As(err, &re) {
		return re.Rep, true
	}
	return nil, false
}

func wrap(r *Report) error {
	return &ReportError{Rep: r}
}

// ToJSON renders a Report as JSON, indented unless compact is set (the
// CLI's -json flag uses the indented form).
func (r *Report) ToJSON(compact bool) (string, error) {
	var data []byte
	var err error
	if compact {
		data, err = json.Marshal(r)
	} else {
		data, err = json.MarshalIndent(r, "", "  ")
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func newReport(phase, code, message string, pos ast.Pos, data map[string]any) *Report {
	return &Report{Schema: schemaV1, Code: code, Phase: phase, Message: message, Pos: pos, Data: data}
}

// NewParse builds a parser-phase report.
func NewParse(code, message string, pos ast.Pos, data map[string]any) error {
	return wrap(newReport("parser", code, message, pos, data))
}

// NewTypecheck builds a type-inference-phase report.
func NewTypecheck(code, message string, pos ast.Pos, data map[string]any) error {
	return wrap(newReport("typecheck", code, message, pos, data))
}

// NewCompile builds a resolver/compiler-phase report.
func NewCompile(code, message string, pos ast.Pos, data map[string]any) error {
	return wrap(newReport("compile", code, message, pos, data))
}

// NewEval builds an evaluation-phase report.
func NewEval(code, message string, pos ast.Pos, data map[string]any) error {
	return wrap(newReport("eval", code, message, pos, data))
}
