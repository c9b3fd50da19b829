package interfaces

import "github.com/m-mizutani/goerr/v2"

// ErrNotFound is wrapped by every repository when a requested record does not exist
var ErrNotFound = goerr.New("not found")
