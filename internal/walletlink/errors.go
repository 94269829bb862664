package walletlink

import (
	"errors"
	"fmt"

	"xprlink/internal/domain"
)

var (
	// ErrNoStoredSession is domain.ErrNoStoredSession, re-exported for callers
	// that only import this package.
	ErrNoStoredSession = domain.ErrNoStoredSession
	// ErrRejected marks a request the wallet declined or failed to execute.
	ErrRejected = errors.New("wallet rejected request")
	// ErrMalformedCallback is returned when the wallet's answer lacks the
	// fields the request needs.
	ErrMalformedCallback = errors.New("malformed wallet callback")
	// ErrChainMismatch is returned when the wallet authorized an account on
	// a different chain than requested.
	ErrChainMismatch = errors.New("wallet answered for a different chain")
	// ErrSessionRemoved is returned by Transact after RemoveSession.
	ErrSessionRemoved = errors.New("session was removed")
	// ErrBadSignature is returned by Request.Verify.
	ErrBadSignature = errors.New("bad request signature")
)

// RejectedError carries the wallet's reason for declining a request.
type RejectedError struct {
	Code   int
	Reason string
}

func (e *RejectedError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("%s: %s (code %d)", ErrRejected, e.Reason, e.Code)
	}
	return fmt.Sprintf("%s: %s", ErrRejected, e.Reason)
}

func (e *RejectedError) Unwrap() error { return ErrRejected }
