// Package repository maps backend client failures onto domain errors.
package repository

import (
	"errors"
	"fmt"

	"github.com/frenchcert/frenchcert/pkg/client"
)

// Errors names the domain sentinels a repository reports.
type Errors struct {
	NotFound error
	InUse    error
	Invalid  error
}

// MapError wraps a client error with the matching domain sentinel. The
// original error stays reachable through errors.Is and errors.As, so the
// server's message is never lost. Errors without a matching sentinel are
// returned unchanged.
func MapError(err error, errs Errors) error {
	if err == nil {
		return nil
	}

	var sentinel error
	switch client.KindOf(err) {
	case client.KindNotFound:
		sentinel = errs.NotFound
	case client.KindConflict:
		sentinel = errs.InUse
	case client.KindValidation:
		sentinel = errs.Invalid
	}
	if sentinel == nil || errors.Is(err, sentinel) {
		return err
	}
	return fmt.Errorf("%w: %w", sentinel, err)
}
