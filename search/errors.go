package search

import (
	"errors"
)

var ErrInvalidConfig = errors.New("search config error")
