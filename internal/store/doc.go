// Package store provides file-based persistence for linked wallet sessions.
//
// SessionFileStore implements domain.SessionStore, keeping one JSON document
// of sessions keyed by application and chain under the configured home
// directory. When a passphrase is configured the document is sealed with
// scrypt + ChaCha20-Poly1305 before it reaches disk, since each entry holds
// a request private key. All methods are concurrency-safe via internal
// locking, and writes replace the file atomically.
package store
