package dynamo

import "errors"

// Domain errors for engine construction and parameter handling.
var (
	// ErrNoSurface indicates the host did not provide a drawing surface.
	ErrNoSurface = errors.New("dynamo: no drawing surface")

	// ErrNoFrameLoop indicates the host did not provide a frame scheduling primitive.
	ErrNoFrameLoop = errors.New("dynamo: no frame loop")

	// ErrParameterBounds indicates a parameter value is outside valid range.
	ErrParameterBounds = errors.New("dynamo: parameter out of valid bounds")

	// ErrUnknownParam indicates a parameter name the system does not expose.
	ErrUnknownParam = errors.New("dynamo: unknown parameter")

	// ErrUnknownVariant indicates a visualization variant name that is not registered.
	ErrUnknownVariant = errors.New("dynamo: unknown variant")

	// ErrDestroyed indicates an operation on an engine that was already destroyed.
	ErrDestroyed = errors.New("dynamo: engine destroyed")
)

// ParamError wraps a parameter failure with its name and value.
type ParamError struct {
	Name    string
	Value   float64
	Wrapped error
}

func (e *ParamError) Error() string {
	return e.Name + ": " + e.Wrapped.Error()
}

func (e *ParamError) Unwrap() error {
	return e.Wrapped
}
