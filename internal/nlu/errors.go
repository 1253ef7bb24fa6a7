package nlu

import (
	"context"
	"errors"
	"net"
	"os"
	"syscall"
)

var (
	ErrUnreachable = errors.New("nlu server unreachable")
	ErrTimeout     = errors.New("nlu server timeout")
	ErrBadResponse = errors.New("nlu server returned an unexpected response")
)

// classify maps transport failures onto the package sentinels so callers can
// pick a user-facing message with errors.Is.
func classify(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, syscall.ECONNREFUSED) {
		return errors.Join(ErrUnreachable, err)
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, os.ErrDeadlineExceeded) {
		return errors.Join(ErrTimeout, err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return errors.Join(ErrTimeout, err)
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return errors.Join(ErrUnreachable, err)
	}

	return err
}
