package classifier

import "errors"

var (
	ErrEmptyText      = errors.New("classifier: text is empty")
	ErrInvalidModel   = errors.New("classifier: invalid model artifact")
	ErrUnavailable    = errors.New("classifier: backend unavailable")
	ErrUnknownBackend = errors.New("classifier: unknown backend")
)
