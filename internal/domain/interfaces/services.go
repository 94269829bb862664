package interfaces

import (
	"context"

	domaintypes "xprlink/internal/domain/types"
)

// SessionController owns the active link/session pair for the application.
type SessionController interface {
	Login(ctx context.Context, restoreSession bool) error
	Logout(ctx context.Context) error
	Transfer(
		ctx context.Context,
		req domaintypes.TransferRequest,
	) (domaintypes.TransactResult, error)
	Current() (Session, bool)
}
