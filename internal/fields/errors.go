package fields

import (
	"errors"
	"net/http"

	"github.com/frenchcert/frenchcert/pkg/repository"
)

// Domain errors for field operations.
var (
	ErrNotFound = errors.New("field not found")
	ErrInUse    = errors.New("field is referenced")
	ErrInvalid  = errors.New("invalid field")
)

var domainErrors = repository.Errors{NotFound: ErrNotFound, InUse: ErrInUse, Invalid: ErrInvalid}

// MapHTTPStatus converts domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrInUse) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalid) {
		return http.StatusBadRequest
	}
	return http.StatusBadGateway
}
