package handler

import (
	"net/url"

	"datalayer/internal/datalayer/adapters/inline"
	dErrors "datalayer/pkg/domain-errors"
)

const (
	maxURLLength   = 8192
	maxQueryParams = 64
	maxErrorLength = 512
)

// DataLayerRequest is the HTTP request body for POST /v1/datalayer and
// POST /v1/datalayer/script.
type DataLayerRequest struct {
	inline.Body
}

// Validate implements the Validatable interface for httputil.DecodeAndPrepare.
// Only the request envelope is checked; fragment values are taken as given
// and degrade to null when malformed.
func (r *DataLayerRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if len(r.URL) > maxURLLength {
		return dErrors.New(dErrors.CodeValidation, "url is too long")
	}
	if r.URL != "" {
		if _, err := url.Parse(r.URL); err != nil {
			return dErrors.New(dErrors.CodeValidation, "url is not a valid URL")
		}
	}
	if len(r.Query) > maxQueryParams {
		return dErrors.New(dErrors.CodeValidation, "query has too many parameters")
	}
	for _, msg := range r.Errors {
		if len(msg) > maxErrorLength {
			return dErrors.New(dErrors.CodeValidation, "errors entries must be at most 512 characters")
		}
	}
	return nil
}

// ContactRequest is the HTTP request body for POST /v1/identity/contact.
type ContactRequest struct {
	inline.Contact
}
