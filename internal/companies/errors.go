package companies

import (
	"errors"
	"net/http"

	"github.com/frenchcert/frenchcert/pkg/repository"
)

var (
	ErrNotFound = errors.New("company not found")
	ErrInUse    = errors.New("company is referenced")
	ErrInvalid  = errors.New("invalid company")

	ErrRecordNotFound = errors.New("company record not found")
	ErrRecordInvalid  = errors.New("invalid company record")
)

var (
	domainErrors = repository.Errors{NotFound: ErrNotFound, InUse: ErrInUse, Invalid: ErrInvalid}
	recordErrors = repository.Errors{NotFound: ErrRecordNotFound, InUse: ErrInUse, Invalid: ErrRecordInvalid}
)

func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInUse):
		return http.StatusConflict
	case errors.Is(err, ErrInvalid), errors.Is(err, ErrRecordInvalid):
		return http.StatusBadRequest
	default:
		return http.StatusBadGateway
	}
}
