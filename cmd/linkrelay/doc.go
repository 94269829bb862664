// Package main runs the in-memory channel relay that carries wallet-link
// requests and callbacks. See package relay for the HTTP API.
//
// Usage
//
//	linkrelay [--addr :8080] [--max-queue N] [--max-message BYTES] [--idle-ttl 10m] [--log-level L]
//
// The relay never sees private keys. It forwards signed requests and wallet
// callbacks, holding at most --max-queue undelivered messages per channel.
package main
