package vision

import (
	"context"
	"errors"
	"net"
	"net/url"
)

// ErrNotConfigured indicates no live credentials; the classifier runs synthetic.
var ErrNotConfigured = errors.New("vision api not configured")

// unreachable reports whether err is a transport failure or deadline rather
// than an error reported by the service or a malformed response.
func unreachable(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}

	var urlErr *url.Error
	var netErr net.Error
	return errors.As(err, &urlErr) || errors.As(err, &netErr)
}
