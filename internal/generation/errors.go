package generation

import "errors"

var (
	ErrEmptyQuery  = errors.New("generation: query is empty")
	ErrUnavailable = errors.New("generation: unavailable")
)
