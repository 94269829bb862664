// Package walletlink is the relay-backed implementation of
// domain.WalletConnector.
//
// A login generates a fresh ed25519 request key, subscribes to a callback
// channel on the relay, posts a signed identity request to a request channel
// and shows the user a link URI (through a domain.Presenter) that the wallet
// opens. The wallet answers on the callback channel with the account it
// authorized and a link channel for later requests. The resulting session is
// persisted through a domain.SessionStore so a later OpenSession with
// RestoreSession set can resume it without any network traffic.
//
// Transact and RemoveSession post signed requests to the link channel; the
// wallet signs and broadcasts transactions itself and reports back on a
// per-request callback channel.
package walletlink
