package reconcile

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrAssetNotFound is returned when the media host has no asset for the id.
	ErrAssetNotFound = errors.New("asset not found")

	// ErrProductNotFound is returned when no single product carries the SKU.
	ErrProductNotFound = errors.New("product not found")

	// ErrVariantNotFound is returned when the located product has no variant with the SKU.
	ErrVariantNotFound = errors.New("variant not found")

	// ErrVersionConflict is returned when the product changed since it was read.
	ErrVersionConflict = errors.New("product version conflict")
)

// ValidationError collects every missing or malformed request field.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Errors, "; ")
}

// Add records a failure message.
func (e *ValidationError) Add(format string, args ...any) {
	e.Errors = append(e.Errors, fmt.Sprintf(format, args...))
}

// OrNil returns the error when at least one failure was recorded.
func (e *ValidationError) OrNil() error {
	if e == nil || len(e.Errors) == 0 {
		return nil
	}
	return e
}

// UpstreamError is a failed call to an external service.
type UpstreamError struct {
	Service    string
	StatusCode int
	Body       string
	Err        error
}

func (e *UpstreamError) Error() string {
	switch {
	case e.Err != nil && e.StatusCode != 0:
		return fmt.Sprintf("%s: status %d: %v", e.Service, e.StatusCode, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Service, e.Err)
	default:
		return fmt.Sprintf("%s: status %d: %s", e.Service, e.StatusCode, e.Body)
	}
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// IsUpstream reports whether err came from the named service.
func IsUpstream(err error, service string) bool {
	var ue *UpstreamError
	return errors.As(err, &ue) && ue.Service == service
}
