package omnivox

import (
	"errors"
	"fmt"
)

var (
	// ErrTransport wraps network failures, timeouts and HTTP error statuses.
	ErrTransport = errors.New("omnivox: transport failure")
	// ErrPortalShape means an element we depend on is missing, the portal has most likely changed its layout.
	ErrPortalShape = errors.New("omnivox: unexpected portal page shape")
	// ErrNavigationNotFound means the landing page has no link to the schedule subsystem.
	ErrNavigationNotFound = fmt.Errorf("%w: schedule navigation link not found", ErrPortalShape)
	// ErrMalformedRedirect means a page-load script redirect could not be read.
	ErrMalformedRedirect = errors.New("omnivox: malformed script redirect")
	// ErrMalformedRow means a schedule row has fewer cells than expected.
	ErrMalformedRow = errors.New("omnivox: malformed schedule row")
	// ErrNotDiscovered is returned when schedule page state is read before discovery.
	ErrNotDiscovered = errors.New("omnivox: schedule page has not been discovered")
)
