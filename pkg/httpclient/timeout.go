package httpclient

import (
	"context"
	"errors"
	"net"
	"time"

	apperrors "github.com/utafrali/storefront/pkg/errors"
)

// errClientDeadline is the cancellation cause installed by WithTimeout.
var errClientDeadline = errors.New("client-side deadline exceeded")

// WithTimeout derives a context that is aborted after d. It is the one place
// a per-call deadline is set; d <= 0 only makes the context cancellable.
func WithTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeoutCause(ctx, d, errClientDeadline)
}

// TransportError classifies a failure that produced no HTTP response. Deadline
// expiry becomes a timeout error, caller cancellation is returned as is, and
// everything else is a network error naming the endpoint.
func TransportError(ctx context.Context, endpoint string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(context.Cause(ctx), errClientDeadline) || errors.Is(err, context.DeadlineExceeded) {
		return apperrors.Timeout(endpoint)
	}
	if errors.Is(err, context.Canceled) {
		return err
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return apperrors.Timeout(endpoint)
	}

	return apperrors.Network(endpoint, err)
}
