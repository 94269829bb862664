// Package app wires application dependencies for the CLI.
//
// It resolves Config from viper (flags, environment, config file), builds
// the session store, the walletlink connector and the session controller,
// and exposes them through App for commands to use.
package app
