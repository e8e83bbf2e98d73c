package interp

import "github.com/cwbudde/vanilla/internal/errors"

// ControlFlow is the non-error... and error... control signal threaded
// through statement execution, re-architected from the teacher's
// exception-based return/error propagation (source:
// go-dws/internal/interp/runtime.ControlFlow) into the explicit result sum
// spec.md §9 calls for: { Normal, Returned(value), Errored(err) }. Folding
// evaluation errors into the same sum (rather than a second error return
// value threaded alongside it) keeps every statement executor's signature
// down to a single result to check and propagate.
type ControlFlow struct {
	returning bool
	value     Value
	err       *errors.VanillaError
}

// Normal is the absence of a control-flow signal.
func Normal() *ControlFlow { return &ControlFlow{} }

// Return creates a signal carrying a function's return value.
func Return(v Value) *ControlFlow { return &ControlFlow{returning: true, value: v} }

// Raise creates a signal carrying a propagating error.
func Raise(err *errors.VanillaError) *ControlFlow { return &ControlFlow{err: err} }

// IsReturn reports whether this signal is a return.
func (c *ControlFlow) IsReturn() bool { return c != nil && c.returning }

// IsError reports whether this signal carries an error.
func (c *ControlFlow) IsError() bool { return c != nil && c.err != nil }

// IsNormal reports whether this signal is neither a return nor an error.
func (c *ControlFlow) IsNormal() bool { return c == nil || (!c.returning && c.err == nil) }

// Value returns the value carried by a return signal.
func (c *ControlFlow) Value() Value { return c.value }

// Err returns the error carried by an error signal.
func (c *ControlFlow) Err() *errors.VanillaError { return c.err }
