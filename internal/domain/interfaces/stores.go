package interfaces

import domaintypes "xprlink/internal/domain/types"

// SessionStore persists linked sessions per (app, chain).
type SessionStore interface {
	SaveLinkSession(session domaintypes.StoredSession) error
	LoadLinkSession(
		appID domaintypes.AppIdentifier,
		chainID domaintypes.ChainID,
	) (domaintypes.StoredSession, bool, error)
	DeleteLinkSession(appID domaintypes.AppIdentifier, chainID domaintypes.ChainID) error
}
