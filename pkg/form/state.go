package form

import (
	"context"
	"errors"
	"fmt"

	"github.com/looplab/fsm"
)

// Form states.
const (
	StateIdle        = "idle"
	StateLoading     = "loading"
	StateReady       = "ready"
	StateSubmitting  = "submitting"
	StateNavigating  = "navigating"
	StateFailed      = "failed"
	StateUnavailable = "unavailable"
)

// Form events.
const (
	EventOpen     = "open"
	EventLoad     = "load"
	EventLoaded   = "loaded"
	EventLoadFail = "load_fail"
	EventNotFound = "not_found"
	EventSubmit   = "submit"
	EventReject   = "reject"
	EventSucceed  = "succeed"
	EventFail     = "fail"
)

// ErrTransition is returned when an operation is not allowed in the
// current state, e.g. submitting while a submit is in flight.
var ErrTransition = errors.New("invalid form transition")

func events() fsm.Events {
	return fsm.Events{
		{Name: EventOpen, Src: []string{StateIdle}, Dst: StateReady},
		{Name: EventLoad, Src: []string{StateIdle, StateUnavailable}, Dst: StateLoading},
		{Name: EventLoaded, Src: []string{StateLoading}, Dst: StateReady},
		{Name: EventLoadFail, Src: []string{StateLoading}, Dst: StateUnavailable},
		{Name: EventNotFound, Src: []string{StateLoading}, Dst: StateNavigating},
		{Name: EventSubmit, Src: []string{StateReady, StateFailed}, Dst: StateSubmitting},
		{Name: EventReject, Src: []string{StateReady, StateFailed}, Dst: StateFailed},
		{Name: EventSucceed, Src: []string{StateSubmitting}, Dst: StateNavigating},
		{Name: EventFail, Src: []string{StateSubmitting}, Dst: StateFailed},
	}
}

func newMachine() *fsm.FSM {
	return fsm.NewFSM(StateIdle, events(), nil)
}

// transition fires event, treating a self transition as success.
func transition(ctx context.Context, machine *fsm.FSM, event string) error {
	err := machine.Event(ctx, event)
	if err == nil {
		return nil
	}

	var noTransition fsm.NoTransitionError
	if errors.As(err, &noTransition) {
		return nil
	}

	var (
		invalid      fsm.InvalidEventError
		inTransition fsm.InTransitionError
	)
	if errors.As(err, &invalid) || errors.As(err, &inTransition) {
		return fmt.Errorf("%w: %s from %s", ErrTransition, event, machine.Current())
	}
	return err
}
