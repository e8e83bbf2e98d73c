// Package errors provides the error taxonomy and source-context diagnostic
// formatting shared by the scanner, parser, and evaluator (spec.md §7),
// grounded on the teacher's internal/errors package.
package errors

import (
	"fmt"
	"strings"

	"github.com/cwbudde/vanilla/internal/token"
)

// Kind classifies a VanillaError by the taxonomy in spec.md §7.
type Kind string

const (
	KindInvalidToken             Kind = "invalid-token"
	KindUnexpectedToken          Kind = "unexpected-token"
	KindExpectedPrimary          Kind = "expected-primary-expression"
	KindInvalidEscape            Kind = "invalid-escape-sequence"
	KindUndefinedValue           Kind = "undefined-value"
	KindBadUnary                 Kind = "bad-unary"
	KindBadBinary                Kind = "bad-binary"
	KindBadCast                  Kind = "bad-cast"
	KindNotCallable               Kind = "value-not-callable"
	KindInvalidOperation          Kind = "invalid-operation"
	KindUnsupportedOperation      Kind = "unsupported-operation"
	KindInvalidIndex              Kind = "invalid-index"
	KindNotEnoughArguments        Kind = "not-enough-arguments"
	KindTooManyArguments          Kind = "too-many-arguments"
	KindMissingDefaultArgument    Kind = "missing-default-argument"
	KindIntegerConversionOverflow Kind = "integer-conversion-overflow"
	KindFloatConversionOverflow   Kind = "float-conversion-overflow"
	KindNativeLibraryLoading      Kind = "native-library-loading"
	KindNativeSymbolNotFound      Kind = "native-symbol-not-found"
	KindUnknownNativeTypeName     Kind = "unknown-native-type-name"
	KindVoidAsArgumentType        Kind = "void-as-argument-type"
)

// Stage names the pipeline stage that raised the error, used to produce
// the CLI diagnostic line format of spec.md §6.
type Stage string

const (
	StageScanning   Stage = "Scanning"
	StageParsing    Stage = "Parsing"
	StageEvaluation Stage = "Evaluation"
)

// VanillaError is a single diagnostic: a classified message tagged with the
// source position where it was raised (or first observed as it
// propagated, per spec.md §7's propagation policy).
type VanillaError struct {
	Kind    Kind
	Stage   Stage
	Pos     token.Position
	Message string
	Source  string // full source text, for context rendering
	File    string
}

// New creates a VanillaError.
func New(kind Kind, stage Stage, pos token.Position, format string, args ...any) *VanillaError {
	return &VanillaError{
		Kind:    kind,
		Stage:   stage,
		Pos:     pos,
		Message: fmt.Sprintf(format, args...),
	}
}

// Error implements the error interface with the §6 one-line format:
// "[<line>:<col>] <stage> error : <message>".
func (e *VanillaError) Error() string {
	return fmt.Sprintf("[%d:%d] %s error : %s", e.Pos.Line, e.Pos.Column, e.Stage, e.Message)
}

// WithLocation returns a copy of e tagged with pos if e does not already
// carry a non-zero position. This implements the "first node with no
// location tag attaches its own" propagation policy of spec.md §7.
func (e *VanillaError) WithLocation(pos token.Position) *VanillaError {
	if e.Pos.Line != 0 || e.Pos.Column != 0 {
		return e
	}
	cp := *e
	cp.Pos = pos
	return &cp
}

// WithSource attaches source text and a file name for context rendering.
func (e *VanillaError) WithSource(source, file string) *VanillaError {
	cp := *e
	cp.Source = source
	cp.File = file
	return &cp
}

// Format renders the error with a source-line-and-caret context, mirroring
// the teacher's CompilerError.Format.
func (e *VanillaError) Format() string {
	var sb strings.Builder

	if e.File != "" {
		fmt.Fprintf(&sb, "%s:%d:%d: ", e.File, e.Pos.Line, e.Pos.Column)
	}
	fmt.Fprintf(&sb, "%s error : %s\n", e.Stage, e.Message)

	if line := sourceLine(e.Source, e.Pos.Line); line != "" {
		lineNumStr := fmt.Sprintf("%4d | ", e.Pos.Line)
		sb.WriteString(lineNumStr)
		sb.WriteString(line)
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat(" ", len(lineNumStr)+max0(e.Pos.Column-1)))
		sb.WriteString("^\n")
	}

	return sb.String()
}

func sourceLine(source string, line int) string {
	if source == "" || line < 1 {
		return ""
	}
	lines := strings.Split(source, "\n")
	if line > len(lines) {
		return ""
	}
	return lines[line-1]
}

func max0(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
