package client

import (
	"errors"
	"fmt"
	"net"
	"strings"
	"syscall"
)

// TransportError is returned when no usable response arrived: the request
// could not be sent, or the server answered with a non-2xx status.
type TransportError struct {
	StatusCode int // 0 when the server was never reached
	Body       string
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode == 0 {
		if e.Err != nil {
			return e.Err.Error()
		}
		return "request failed"
	}
	if e.Body != "" {
		return e.Body
	}
	return fmt.Sprintf("Server error: %d", e.StatusCode)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

var offlineSignatures = []string{
	"connection refused",
	"no such host",
	"network is unreachable",
	"connection reset",
	"failed to fetch",
}

// IsOffline reports whether err means the server could not be reached at
// all. A server that answered, even with 5xx, is not offline.
func IsOffline(err error) bool {
	if err == nil {
		return false
	}

	var te *TransportError
	if errors.As(err, &te) && te.StatusCode != 0 {
		return false
	}

	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ENETUNREACH) || errors.Is(err, syscall.EHOSTUNREACH) {
		return true
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, sig := range offlineSignatures {
		if strings.Contains(msg, sig) {
			return true
		}
	}
	return false
}
