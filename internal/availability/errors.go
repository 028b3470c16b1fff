package availability

import "errors"

var (
	// ErrClosed координатор остановлен
	ErrClosed = errors.New("availability: coordinator is closed")
)
