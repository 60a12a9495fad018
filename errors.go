package bench

import (
	"errors"
	"fmt"
)

var (
	ErrFileNotFound = errors.New("result file not found")
	ErrParse        = errors.New("malformed result file")
	ErrInvalidData  = errors.New("invalid result data")
)

// RowError reports a problem with a single record of a result file.
type RowError struct {
	Line int
	Err  error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}
