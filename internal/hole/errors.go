package hole

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig wraps every Config.Validate failure.
	ErrInvalidConfig = errors.New("invalid hole configuration")

	// ErrMissingAnchor is reported when no green surface could be assembled.
	// Anchor getters then return ok == false; assembly itself still succeeds.
	ErrMissingAnchor = errors.New("missing anchor: no green assembled")
)

// ResourceLoadError reports a texture that could not be loaded. The surface
// keeps its flat color material.
type ResourceLoadError struct {
	Path string
	Err  error
}

func (e *ResourceLoadError) Error() string {
	return fmt.Sprintf("loading texture %s: %v", e.Path, e.Err)
}

func (e *ResourceLoadError) Unwrap() error {
	return e.Err
}
