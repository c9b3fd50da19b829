package firestore

import "github.com/cherish-app/cherish/pkg/domain/interfaces"

// ErrNotFound is returned when a requested document does not exist
var ErrNotFound = interfaces.ErrNotFound
