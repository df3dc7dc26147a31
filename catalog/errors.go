package catalog

import (
	"context"
	"net"

	"github.com/pkg/errors"
)

// Failure taxonomy shared by the remote clients. Anything not matched
// by a sentinel is an unexpected error and is surfaced wrapped, with
// its message intact.
var (
	// ErrUnauthenticated means no bearer token is available; the
	// caller should redirect to sign-in rather than retry.
	ErrUnauthenticated = errors.New("missing auth token")

	// ErrNotFound maps HTTP 404; surfaced as an empty-result message,
	// not an exception.
	ErrNotFound = errors.New("not found")

	// ErrNetwork covers timeouts and connection failures; retryable.
	ErrNetwork = errors.New("network failure")

	// ErrConfiguration means a required key or URL is absent. Never
	// retried; callers fall back to defaults.
	ErrConfiguration = errors.New("missing configuration")
)

// ClassifyTransport folds transport-level failures into the taxonomy.
func ClassifyTransport(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return errors.Wrap(ErrNetwork, err.Error())
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return errors.Wrap(ErrNetwork, err.Error())
	}
	return err
}
