// Package errors centralises the structured error taxonomy used across
// every compilation phase: parsing, type inference, resolution,
// compilation and evaluation each report through the same Report shape
// so a caller (REPL, CLI -json flag, tests) can format or machine-read
// them uniformly.
package errors

// Error codes, grouped by the phase that raises them.
const (
	// Parser errors (PAR###).
	PAR001 = "PAR001" // unexpected token
	PAR002 = "PAR002" // missing closing delimiter
	PAR003 = "PAR003" // invalid pattern syntax
	PAR004 = "PAR004" // invalid datatype declaration
	PAR005 = "PAR005" // invalid from-query syntax

	// Type checking errors (TC###).
	TC001 = "TC001" // type mismatch
	TC002 = "TC002" // unbound identifier
	TC003 = "TC003" // occurs check failed
	TC004 = "TC004" // unknown record field
	TC005 = "TC005" // arity mismatch
	TC006 = "TC006" // unresolved ellipsis record pattern
	TC007 = "TC007" // duplicate name in one pattern

	// Resolver / compiler errors (CMP###).
	CMP001 = "CMP001" // unsupported surface construct
	CMP002 = "CMP002" // unknown constructor
	CMP003 = "CMP003" // val rec binding cannot be linked
	CMP004 = "CMP004" // record pattern not fully expanded

	// Evaluation errors (EVA###).
	EVA001 = "EVA001" // pattern match failure
	EVA100 = "EVA100" // division by zero
	EVA101 = "EVA101" // empty list operation (hd/tl of [])
	EVA102 = "EVA102" // index out of bounds
)

// Info describes one error code for documentation/lookup purposes.
type Info struct {
	Code     string
	Phase    string
	Category string
}

var registry = map[string]Info{
	PAR001: {PAR001, "parser", "syntax"},
	PAR002: {PAR002, "parser", "syntax"},
	PAR003: {PAR003, "parser", "syntax"},
	PAR004: {PAR004, "parser", "syntax"},
	PAR005: {PAR005, "parser", "syntax"},

	TC001: {TC001, "typecheck", "type"},
	TC002: {TC002, "typecheck", "scope"},
	TC003: {TC003, "typecheck", "type"},
	TC004: {TC004, "typecheck", "record"},
	TC005: {TC005, "typecheck", "arity"},
	TC006: {TC006, "typecheck", "record"},
	TC007: {TC007, "typecheck", "pattern"},

	CMP001: {CMP001, "compile", "lowering"},
	CMP002: {CMP002, "compile", "datatype"},
	CMP003: {CMP003, "compile", "binding"},
	CMP004: {CMP004, "compile", "pattern"},

	EVA001: {EVA001, "eval", "pattern"},
	EVA100: {EVA100, "eval", "arithmetic"},
	EVA101: {EVA101, "eval", "list"},
	EVA102: {EVA102, "eval", "index"},
}

// GetErrorInfo looks up a code's phase/category, for tests and the
// -json CLI output.
func GetErrorInfo(code string) (Info, bool) {
	info, ok := registry[code]
	return info, ok
}
