package types

// AccountName is an on-chain account identifier, e.g. "alice".
type AccountName string

// String returns the string form of the account name.
func (a AccountName) String() string { return string(a) }

// PermissionName names a permission of an account, e.g. "active".
type PermissionName string

// String returns the string form of the permission name.
func (p PermissionName) String() string { return string(p) }

// ActionName names a contract action, e.g. "transfer".
type ActionName string

// String returns the string form of the action name.
func (n ActionName) String() string { return string(n) }

// ChainID is the hex chain identifier a session is bound to.
type ChainID string

// String returns the string form of the chain identifier.
func (id ChainID) String() string { return string(id) }

// AppIdentifier is the account the application requests sessions for. It
// also keys persisted sessions.
type AppIdentifier string

// String returns the string form of the application identifier.
func (id AppIdentifier) String() string { return string(id) }

// ChannelID addresses a relay channel.
type ChannelID string

// String returns the string form of the channel identifier.
func (id ChannelID) String() string { return string(id) }
