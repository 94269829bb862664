package interfaces

import (
	"context"

	domaintypes "xprlink/internal/domain/types"
)

// WalletConnector is the wallet-link collaborator. OpenSession negotiates (or
// restores) a session with a wallet and returns its link and session handles.
type WalletConnector interface {
	OpenSession(ctx context.Context, opts domaintypes.LinkOptions) (Link, Session, error)
}

// Link is the transport handle that owns a session on the wallet side.
type Link interface {
	RemoveSession(
		ctx context.Context,
		appID domaintypes.AppIdentifier,
		auth domaintypes.PermissionLevel,
		chainID domaintypes.ChainID,
	) error
}

// Session is bound to one account/permission on one chain and can ask the
// wallet to sign transactions.
type Session interface {
	Auth() domaintypes.PermissionLevel
	ChainID() domaintypes.ChainID
	Transact(
		ctx context.Context,
		args domaintypes.TransactArgs,
		opts domaintypes.TransactOptions,
	) (domaintypes.TransactResult, error)
}

// Presenter shows a pending login request to the user.
type Presenter interface {
	PresentLogin(prompt domaintypes.LoginPrompt) error
}
