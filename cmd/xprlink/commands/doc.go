// Package commands defines the xprlink CLI and wires dependencies for subcommands.
//
// Commands
//
//   - login     Link a wallet, or report the restored session
//   - logout    Drop the wallet session
//   - transfer  Send XPR from the linked account
//   - status    Print the linked account and request-key fingerprint
//
// # Implementation
//
// The root command resolves configuration from flags, XPRLINK_* environment
// variables and $HOME/.xprlink/config.yaml, builds the app, and restores any
// persisted session before a subcommand runs.
package commands
