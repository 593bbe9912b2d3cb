package httpapi

import (
	"net/http"

	"bisectbroker/internal/jobschema"
)

// statusForCreateError maps a ValidateCreate failure to its HTTP status;
// everything else (there should be nothing else) falls back to 400.
func statusForCreateError(err error) int {
	if _, ok := err.(*jobschema.ValidationError); ok {
		return http.StatusUnprocessableEntity
	}
	return http.StatusBadRequest
}

// statusForPatchError maps a Store.Apply failure to its HTTP status.
func statusForPatchError(err error) int {
	switch err.(type) {
	case *jobschema.NotFoundError:
		return http.StatusNotFound
	case *jobschema.PreconditionFailedError:
		return http.StatusPreconditionFailed
	case *jobschema.BadRequestError:
		return http.StatusBadRequest
	case *jobschema.ValidationError:
		return http.StatusBadRequest
	default:
		return http.StatusBadRequest
	}
}
