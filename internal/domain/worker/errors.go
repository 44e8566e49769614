package worker

import "errors"

var (
	ErrEmailExists = errors.New("email already registered")
)
