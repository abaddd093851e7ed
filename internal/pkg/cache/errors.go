package cache

import "github.com/pkg/errors"

// ErrNotFound is returned when a cache key does not exist.
var ErrNotFound = errors.New("cache: not found")
