package types

// PermissionLevel is an actor/permission pair used both as a session's auth
// and as an action authorization.
type PermissionLevel struct {
	Actor      AccountName    `json:"actor"`
	Permission PermissionName `json:"permission"`
}

// String renders the level as actor@permission.
func (p PermissionLevel) String() string {
	return p.Actor.String() + "@" + p.Permission.String()
}

// IsZero reports whether no actor is set.
func (p PermissionLevel) IsZero() bool { return p.Actor == "" }

// Action is a single contract invocation with structured data.
type Action struct {
	Account       AccountName       `json:"account"`
	Name          ActionName        `json:"name"`
	Authorization []PermissionLevel `json:"authorization"`
	Data          any               `json:"data"`
}

// TransferData is the payload of a token contract "transfer" action.
type TransferData struct {
	From     AccountName `json:"from"`
	To       AccountName `json:"to"`
	Quantity string      `json:"quantity"`
	Memo     string      `json:"memo"`
}
