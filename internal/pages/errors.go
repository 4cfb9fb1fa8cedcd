package pages

import (
	"errors"
	"net/http"

	"github.com/frenchcert/frenchcert/pkg/repository"
)

var (
	ErrNotFound = errors.New("page not found")
	ErrInUse    = errors.New("page is referenced")
	ErrInvalid  = errors.New("invalid page")
)

var domainErrors = repository.Errors{NotFound: ErrNotFound, InUse: ErrInUse, Invalid: ErrInvalid}

func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInUse):
		return http.StatusConflict
	case errors.Is(err, ErrInvalid):
		return http.StatusBadRequest
	default:
		return http.StatusBadGateway
	}
}
