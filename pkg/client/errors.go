package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/tidwall/gjson"
)

// Kind classifies a failed call.
type Kind string

// Error kinds.
const (
	KindTransport  Kind = "transport"
	KindValidation Kind = "validation"
	KindConflict   Kind = "conflict"
	KindNotFound   Kind = "not_found"
	KindServer     Kind = "server"
	KindCanceled   Kind = "canceled"
)

// Sentinels matched by errors.Is against an *Error of the same kind.
var (
	ErrTransport  = errors.New("transport failure")
	ErrValidation = errors.New("validation failed")
	ErrConflict   = errors.New("conflict")
	ErrNotFound   = errors.New("not found")
	ErrServer     = errors.New("server error")
	ErrCanceled   = errors.New("request canceled")
)

func (k Kind) sentinel() error {
	switch k {
	case KindTransport:
		return ErrTransport
	case KindValidation:
		return ErrValidation
	case KindConflict:
		return ErrConflict
	case KindNotFound:
		return ErrNotFound
	case KindCanceled:
		return ErrCanceled
	default:
		return ErrServer
	}
}

// References counts the entities still pointing at a resource the server
// refused to delete.
type References struct {
	Certifications int `json:"certifications"`
	Trainings      int `json:"trainings"`
	Companies      int `json:"companies"`
}

// Total returns the sum of all reference counts.
func (r References) Total() int {
	return r.Certifications + r.Trainings + r.Companies
}

// String renders the non-zero counts, e.g. "3 certifications, 1 training".
func (r References) String() string {
	parts := make([]string, 0, 3)
	if r.Certifications > 0 {
		parts = append(parts, plural(r.Certifications, "certification", "certifications"))
	}
	if r.Trainings > 0 {
		parts = append(parts, plural(r.Trainings, "training", "trainings"))
	}
	if r.Companies > 0 {
		parts = append(parts, plural(r.Companies, "company", "companies"))
	}
	return strings.Join(parts, ", ")
}

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}

// Error is returned by every failed client call.
type Error struct {
	Kind       Kind
	Status     int
	Message    string
	Errors     map[string]string
	References *References
	Err        error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Kind))
	if e.Status != 0 {
		fmt.Fprintf(&b, " (%d)", e.Status)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel of e's kind.
func (e *Error) Is(target error) bool {
	return target == e.Kind.sentinel()
}

// KindOf returns the kind of err, or KindTransport for foreign errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	if errors.Is(err, context.Canceled) {
		return KindCanceled
	}
	return KindTransport
}

// Message returns the user-facing text for err: the reference conflict when
// present, then the server message, then the first field error, then fallback.
func Message(err error, fallback string) string {
	var e *Error
	if !errors.As(err, &e) {
		return fallback
	}
	if e.References != nil && e.References.Total() > 0 {
		return "Cannot delete: referenced by " + e.References.String()
	}
	if e.Message != "" {
		return e.Message
	}
	if len(e.Errors) > 0 {
		keys := make([]string, 0, len(e.Errors))
		for k := range e.Errors {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		return e.Errors[keys[0]]
	}
	return fallback
}

func transportError(err error) *Error {
	kind := KindTransport
	if errors.Is(err, context.Canceled) {
		kind = KindCanceled
	}
	return &Error{Kind: kind, Err: err}
}

// responseError classifies a non-2xx reply, or a 2xx reply with success=false.
func responseError(status int, body []byte) *Error {
	e := &Error{Status: status}

	if gjson.ValidBytes(body) {
		doc := gjson.ParseBytes(body)
		e.Message = strings.TrimSpace(firstString(doc, "message", "error"))

		if errs := doc.Get("errors"); errs.IsObject() {
			e.Errors = make(map[string]string)
			errs.ForEach(func(key, value gjson.Result) bool {
				msg := value.String()
				if value.IsObject() {
					msg = value.Get("message").String()
				}
				e.Errors[key.String()] = msg
				return true
			})
		}

		if refs := doc.Get("references"); refs.IsObject() {
			e.References = &References{
				Certifications: int(refs.Get("certifications").Int()),
				Trainings:      int(refs.Get("trainings").Int()),
				Companies:      int(refs.Get("companies").Int()),
			}
		}
	}

	switch {
	case status == http.StatusNotFound:
		e.Kind = KindNotFound
	case status == http.StatusConflict, e.References != nil && e.References.Total() > 0:
		e.Kind = KindConflict
	case status >= 500:
		e.Kind = KindServer
	default:
		e.Kind = KindValidation
	}

	return e
}

func firstString(doc gjson.Result, paths ...string) string {
	for _, p := range paths {
		if r := doc.Get(p); r.Type == gjson.String {
			return r.String()
		}
	}
	return ""
}
