// Package session is the application's session controller.
//
// A Controller holds the active wallet link and session, restores or opens
// them through a domain.WalletConnector, tears them down on logout, and
// builds token-transfer transactions for the session to sign and broadcast.
//
// The two handles live behind a mutex for memory safety only; Login and
// Logout are not serialized against each other. A Logout that races a Login
// may clear handles the Login just stored, and a second Login simply
// overwrites the first.
package session
