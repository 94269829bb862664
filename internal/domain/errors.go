package domain

import "errors"

// ErrNoStoredSession is returned by a WalletConnector asked to restore a
// session that was never persisted (or was removed).
var ErrNoStoredSession = errors.New("no stored session to restore")
