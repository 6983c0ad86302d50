package refresh

import (
	"errors"
	"fmt"
)

// ErrUnknownModel is returned when a reference's type has no registered model.
var ErrUnknownModel = errors.New("unknown model type")

// FetchError reports a failed batch fetch. It wraps the transport error.
type FetchError struct {
	Model string
	IDs   []string
	Err   error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s (%d ids): %v", e.Model, len(e.IDs), e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
