package trainings

import (
	"errors"
	"net/http"

	"github.com/frenchcert/frenchcert/pkg/repository"
)

var (
	ErrNotFound = errors.New("training not found")
	ErrInUse    = errors.New("training is referenced")
	ErrInvalid  = errors.New("invalid training")
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
