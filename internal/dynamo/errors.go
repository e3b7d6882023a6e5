package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for simulation and rendering.
var (
	// ErrInvalidParameter indicates an input rejected before any work starts.
	ErrInvalidParameter = errors.New("dynamo: invalid parameter")

	// ErrInvalidState indicates the state became non-finite during a run.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrEmptyHistory indicates a history without any recorded position.
	ErrEmptyHistory = errors.New("dynamo: history has no positions")
)

// ParameterError names the offending input.
type ParameterError struct {
	Name   string
	Value  float64
	Reason string
}

func (e *ParameterError) Error() string {
	return fmt.Sprintf("%s: %s = %g: %s", ErrInvalidParameter, e.Name, e.Value, e.Reason)
}

func (e *ParameterError) Unwrap() error {
	return ErrInvalidParameter
}

// InvalidParameter builds a ParameterError.
func InvalidParameter(name string, value float64, reason string) error {
	return &ParameterError{Name: name, Value: value, Reason: reason}
}

// RenderStage identifies where rendering failed.
type RenderStage string

const (
	StageSetup     RenderStage = "setup"
	StageRasterize RenderStage = "rasterize"
	StageEncode    RenderStage = "encode"
	StageWrite     RenderStage = "write"
)

// RenderError wraps a rendering failure with its stage.
type RenderError struct {
	Stage   RenderStage
	Wrapped error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render %s: %v", e.Stage, e.Wrapped)
}

func (e *RenderError) Unwrap() error {
	return e.Wrapped
}

// SimError reports the step at which a run stopped.
type SimError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *SimError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Wrapped)
}

func (e *SimError) Unwrap() error {
	return e.Wrapped
}
