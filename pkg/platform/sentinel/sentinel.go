package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Adapters return these (optionally
// wrapped) and httputil.WriteError maps them to HTTP statuses:
// - ErrNotFound: the requested resource does not exist
// - ErrUnavailable: a backing collaborator is temporarily unavailable
var (
	ErrNotFound    = errors.New("not found")
	ErrUnavailable = errors.New("unavailable")
)
