package engine

import (
	"context"
	"errors"
	"net"
	"syscall"
)

// isConnectError reports whether err represents a DNS failure or a
// refused/unreachable TCP connect, matching reqwest's is_connect() used
// by the original implementation's hit_connection_errors branch.
func isConnectError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return false
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		if opErr.Op == "dial" {
			return true
		}
	}

	return errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.EHOSTUNREACH) || errors.Is(err, syscall.ENETUNREACH)
}
